// Package keywords extracts ranked (term, weight) pairs from a corpus of
// review texts. The primary strategy is TF-IDF over unigrams and bigrams;
// a plain lemma-frequency count is the fallback when the corpus is too
// small or degenerate for TF-IDF.
package keywords

import (
	"fmt"
	"regexp"
	"strings"
)

// Keyword is a normalized unigram or bigram with a corpus-relative weight.
// Weight is non-negative; higher means more discriminative for the corpus.
type Keyword struct {
	Term   string
	Weight float64
}

// Strategy is one keyword-extraction method. Extract returns an error when
// the strategy cannot produce keywords for the given corpus, letting the
// caller try the next strategy in the chain.
type Strategy interface {
	Name() string
	Extract(texts []string) ([]Keyword, error)
}

// DefaultStrategies returns the standard extraction chain: TF-IDF first,
// lemma frequency as fallback.
func DefaultStrategies() []Strategy {
	return []Strategy{
		NewTFIDFExtractor(100),
		NewFrequencyExtractor(100),
	}
}

// Extract runs the default strategy chain over the corpus and returns the
// first successful result. Returns nil when every strategy fails; callers
// degrade to "Other"-only tagging in that case.
func Extract(texts []string) []Keyword {
	return ExtractWith(DefaultStrategies(), texts)
}

// ExtractWith runs the given strategies in order and returns the first
// successful non-empty result.
func ExtractWith(strategies []Strategy, texts []string) []Keyword {
	for _, s := range strategies {
		kws, err := s.Extract(texts)
		if err == nil && len(kws) > 0 {
			return kws
		}
	}
	return nil
}

var (
	urlPattern     = regexp.MustCompile(`(?:https?://|www\.)\S+`)
	nonWordPattern = regexp.MustCompile(`[^a-z0-9_\s]+`)
)

// Normalize lowercases text, strips URLs, replaces punctuation with
// spaces, and collapses runs of whitespace.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, " ")
	text = nonWordPattern.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// tokenize splits normalized text into non-stopword tokens.
func tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if isStopword(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// ngrams returns the unigrams and bigrams of a token sequence. Bigrams
// are formed over adjacent surviving tokens, space-joined.
func ngrams(tokens []string) []string {
	grams := make([]string, 0, 2*len(tokens))
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

// validateCorpus tokenizes the corpus and rejects it when fewer than two
// documents contain any usable tokens.
func validateCorpus(texts []string) ([][]string, error) {
	var docs [][]string
	for _, t := range texts {
		tokens := tokenize(t)
		if len(tokens) == 0 {
			continue
		}
		docs = append(docs, tokens)
	}
	if len(docs) < 2 {
		return nil, fmt.Errorf("corpus too small: %d non-empty documents", len(docs))
	}
	return docs, nil
}
