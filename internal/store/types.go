package store

import "time"

// Bank is one source-group whose reviews form an independent corpus.
type Bank struct {
	ID        int64
	Name      string
	AppID     string
	CreatedAt time.Time
}

// Run records one execution of the analyze pipeline.
type Run struct {
	ID                string
	StartedAt         time.Time
	FinishedAt        time.Time
	ReviewsAnalyzed   int
	SentimentCoverage float64 // percent of reviews with a sentiment label
	ThemeCoverage     float64 // percent of reviews with at least one theme
}

// ThemeKeyword is one bound (keyword, weight) pair within a bank's theme.
// Position preserves the weight-descending order of the binding.
type ThemeKeyword struct {
	BankID   int64
	Theme    string
	Keyword  string
	Weight   float64
	Position int
}
