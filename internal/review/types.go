// Package review defines the core review record and the preprocessing
// steps that turn raw scraped CSV rows into clean, analyzable data.
package review

import "time"

// Review is a single app-store review for one bank's mobile app.
// Sentiment fields are populated by the analyze pipeline; Themes is
// populated exactly once per run by the theme assigner.
type Review struct {
	ID             int64
	Bank           string
	Source         string
	Text           string
	Rating         int
	Date           time.Time // zero if the scraped date was unparseable
	SentimentLabel string
	SentimentScore float64
	Themes         []string
}

// QualityMetrics records what the cleaning pass dropped and why.
// Counts are per input batch, not cumulative.
type QualityMetrics struct {
	Total             int
	Kept              int
	DroppedDuplicates int
	DroppedEmptyText  int
	DroppedBadRating  int
	MissingDates      int
}

// MissingDataPct returns the fraction of dropped or degraded rows as a
// percentage of the input batch. Returns 0 for an empty batch.
func (m QualityMetrics) MissingDataPct() float64 {
	if m.Total == 0 {
		return 0
	}
	bad := m.DroppedDuplicates + m.DroppedEmptyText + m.DroppedBadRating + m.MissingDates
	return float64(bad) / float64(m.Total) * 100
}
