package keywords

import (
	"fmt"
	"math"
	"sort"
)

// TFIDFExtractor ranks unigrams and bigrams by their mean TF-IDF weight
// across the corpus. Terms appearing in fewer than MinDocFreq documents or
// in more than MaxDocRatio of documents are discarded, which removes both
// one-off noise and stopword-like ubiquitous terms.
type TFIDFExtractor struct {
	MaxFeatures int
	MinDocFreq  int
	MaxDocRatio float64
}

// NewTFIDFExtractor returns a TF-IDF extractor with the standard document
// frequency bounds (df >= 2, df <= 80% of the corpus).
func NewTFIDFExtractor(maxFeatures int) *TFIDFExtractor {
	return &TFIDFExtractor{
		MaxFeatures: maxFeatures,
		MinDocFreq:  2,
		MaxDocRatio: 0.8,
	}
}

func (e *TFIDFExtractor) Name() string { return "tfidf" }

// Extract computes mean TF-IDF weights for every surviving term and
// returns them sorted descending by weight, capped at MaxFeatures.
// Per-document weights are L2-normalized before averaging so long reviews
// do not dominate the ranking.
func (e *TFIDFExtractor) Extract(texts []string) ([]Keyword, error) {
	docs, err := validateCorpus(texts)
	if err != nil {
		return nil, err
	}

	n := len(docs)
	maxDF := int(e.MaxDocRatio * float64(n))

	// Term counts per document and document frequencies.
	termCounts := make([]map[string]int, n)
	docFreq := make(map[string]int)
	for i, tokens := range docs {
		counts := make(map[string]int)
		for _, g := range ngrams(tokens) {
			counts[g]++
		}
		termCounts[i] = counts
		for term := range counts {
			docFreq[term]++
		}
	}

	// Apply document frequency bounds.
	vocab := make(map[string]bool, len(docFreq))
	for term, df := range docFreq {
		if df < e.MinDocFreq || df > maxDF {
			continue
		}
		vocab[term] = true
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("no terms survive document frequency bounds (n=%d)", n)
	}

	// Smoothed IDF.
	idf := make(map[string]float64, len(vocab))
	for term := range vocab {
		idf[term] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	// Sum of L2-normalized per-document TF-IDF weights per term.
	sums := make(map[string]float64, len(vocab))
	for _, counts := range termCounts {
		var norm float64
		weights := make(map[string]float64, len(counts))
		for term, tf := range counts {
			if !vocab[term] {
				continue
			}
			w := float64(tf) * idf[term]
			weights[term] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term, w := range weights {
			sums[term] += w / norm
		}
	}

	kws := make([]Keyword, 0, len(sums))
	for term, sum := range sums {
		kws = append(kws, Keyword{Term: term, Weight: sum / float64(n)})
	}

	sort.Slice(kws, func(i, j int) bool {
		if kws[i].Weight != kws[j].Weight {
			return kws[i].Weight > kws[j].Weight
		}
		return kws[i].Term < kws[j].Term
	})

	if e.MaxFeatures > 0 && len(kws) > e.MaxFeatures {
		kws = kws[:e.MaxFeatures]
	}
	return kws, nil
}
