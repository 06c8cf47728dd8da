// Package insights rolls tagged reviews and theme bindings up into the
// summary tables the reporting commands render: per-bank theme summaries,
// per-rating sentiment aggregates, and satisfaction drivers / pain points.
// All functions are read-only folds over their inputs.
package insights

import (
	"sort"
	"strings"

	"github.com/blackwell-systems/reviewlens/internal/review"
	"github.com/blackwell-systems/reviewlens/internal/sentiment"
	"github.com/blackwell-systems/reviewlens/internal/themes"
)

// ThemeSummary is one row of the per-bank theme table.
type ThemeSummary struct {
	Bank         string
	Theme        string
	KeywordCount int
	TopKeywords  string // comma-joined, highest weight first
}

// topKeywordCount is how many keywords are surfaced per theme row.
const topKeywordCount = 10

// SummarizeThemes flattens a bank's theme binding into summary rows in
// taxonomy order. Themes with no bound keywords produce no row.
func SummarizeThemes(bank string, binding themes.Binding) []ThemeSummary {
	var rows []ThemeSummary
	for _, theme := range themes.Taxonomy {
		bound, ok := binding[theme.Name]
		if !ok {
			continue
		}

		n := len(bound)
		if n > topKeywordCount {
			n = topKeywordCount
		}
		top := make([]string, n)
		for i := 0; i < n; i++ {
			top[i] = bound[i].Term
		}

		rows = append(rows, ThemeSummary{
			Bank:         bank,
			Theme:        theme.Name,
			KeywordCount: len(bound),
			TopKeywords:  strings.Join(top, ", "),
		})
	}
	return rows
}

// RatingSentiment is one row of the per-bank, per-rating sentiment table.
// Percentages sum to 100 for any non-empty bucket.
type RatingSentiment struct {
	Bank        string
	Rating      int
	ReviewCount int
	MeanScore   float64
	PositivePct float64
	NegativePct float64
	NeutralPct  float64
}

// AggregateSentiment buckets reviews by (bank, rating) and computes the
// count, mean sentiment score, and label percentages for each bucket.
// Rows are ordered by bank name then rating ascending. The input is not
// modified.
func AggregateSentiment(reviews []review.Review) []RatingSentiment {
	type bucket struct {
		count    int
		scoreSum float64
		pos      int
		neg      int
		neu      int
	}
	type key struct {
		bank   string
		rating int
	}

	buckets := make(map[key]*bucket)
	for _, r := range reviews {
		k := key{bank: r.Bank, rating: r.Rating}
		b := buckets[k]
		if b == nil {
			b = &bucket{}
			buckets[k] = b
		}
		b.count++
		b.scoreSum += r.SentimentScore
		switch r.SentimentLabel {
		case sentiment.Positive:
			b.pos++
		case sentiment.Negative:
			b.neg++
		default:
			b.neu++
		}
	}

	rows := make([]RatingSentiment, 0, len(buckets))
	for k, b := range buckets {
		n := float64(b.count)
		rows = append(rows, RatingSentiment{
			Bank:        k.bank,
			Rating:      k.rating,
			ReviewCount: b.count,
			MeanScore:   b.scoreSum / n,
			PositivePct: float64(b.pos) / n * 100,
			NegativePct: float64(b.neg) / n * 100,
			NeutralPct:  float64(b.neu) / n * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Bank != rows[j].Bank {
			return rows[i].Bank < rows[j].Bank
		}
		return rows[i].Rating < rows[j].Rating
	})
	return rows
}
