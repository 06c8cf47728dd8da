// Package sentiment defines the text-classification contract the analyze
// pipeline depends on, plus a built-in lexicon classifier so the tool
// works without an external model.
package sentiment

import "strings"

// Sentiment labels returned by every classifier.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Result is a classified sentiment: a label and a confidence score in
// [0, 1].
type Result struct {
	Label string
	Score float64
}

// Classifier turns review text into a sentiment label with a confidence
// score. Implementations may call out to external models; the pipeline
// treats them as opaque.
type Classifier interface {
	Classify(text string) (Result, error)
}

// Classify applies the blank-text contract and delegates to the given
// classifier: empty or whitespace-only text returns (neutral, 0.0)
// without invoking the classifier at all.
func Classify(c Classifier, text string) (Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{Label: Neutral, Score: 0}, nil
	}
	return c.Classify(trimmed)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(text string) (Result, error)

// Classify calls f.
func (f ClassifierFunc) Classify(text string) (Result, error) {
	return f(text)
}
