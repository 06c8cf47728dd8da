package keywords

import (
	"fmt"
	"sort"
	"strings"
)

// FrequencyExtractor is the fallback strategy: a plain frequency count
// over stopword-filtered, crudely lemmatized tokens. It works on corpora
// too small or uniform for TF-IDF, at the cost of no discriminativeness
// weighting.
type FrequencyExtractor struct {
	TopN int
}

// NewFrequencyExtractor returns a frequency extractor keeping the top n
// terms by count.
func NewFrequencyExtractor(topN int) *FrequencyExtractor {
	return &FrequencyExtractor{TopN: topN}
}

func (e *FrequencyExtractor) Name() string { return "frequency" }

// Extract counts lemmatized tokens of length > 2 across the corpus and
// returns the TopN most frequent, weight being the raw count.
func (e *FrequencyExtractor) Extract(texts []string) ([]Keyword, error) {
	counts := make(map[string]int)
	for _, t := range texts {
		for _, tok := range tokenize(t) {
			lemma := Lemmatize(tok)
			if len(lemma) <= 2 || isStopword(lemma) {
				continue
			}
			counts[lemma]++
		}
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no tokens to count")
	}

	kws := make([]Keyword, 0, len(counts))
	for term, c := range counts {
		kws = append(kws, Keyword{Term: term, Weight: float64(c)})
	}

	sort.Slice(kws, func(i, j int) bool {
		if kws[i].Weight != kws[j].Weight {
			return kws[i].Weight > kws[j].Weight
		}
		return kws[i].Term < kws[j].Term
	})

	if e.TopN > 0 && len(kws) > e.TopN {
		kws = kws[:e.TopN]
	}
	return kws, nil
}

// Lemmatize strips common English inflection suffixes. It is a crude
// rule-based reduction, not a dictionary lemmatizer: "crashes" → "crash",
// "loading" → "load", "delayed" → "delay".
func Lemmatize(token string) string {
	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "shes") || strings.HasSuffix(token, "ches") || strings.HasSuffix(token, "xes"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ing") && len(token) > 5:
		stem := token[:len(token)-3]
		// Undouble final consonants: "stopping" → "stop".
		if len(stem) > 2 && stem[len(stem)-1] == stem[len(stem)-2] {
			stem = stem[:len(stem)-1]
		}
		return stem
	case strings.HasSuffix(token, "ed") && len(token) > 4:
		stem := token[:len(token)-2]
		if len(stem) > 2 && stem[len(stem)-1] == stem[len(stem)-2] {
			stem = stem[:len(stem)-1]
		}
		return stem
	case strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") && len(token) > 3:
		return token[:len(token)-1]
	}
	return token
}
