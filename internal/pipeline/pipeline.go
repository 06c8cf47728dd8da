// Package pipeline orchestrates the analyze run: sentiment scoring,
// per-bank keyword extraction, theme binding, per-review tagging, and
// persisting the results. Banks are processed independently and in
// sequence; a failure in one bank degrades that bank's output without
// aborting the run.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/reviewlens/internal/keywords"
	"github.com/blackwell-systems/reviewlens/internal/sentiment"
	"github.com/blackwell-systems/reviewlens/internal/store"
	"github.com/blackwell-systems/reviewlens/internal/themes"
)

// Report summarizes one analyze run.
type Report struct {
	RunID             string
	ReviewsAnalyzed   int
	Banks             []BankReport
	SentimentCoverage float64
	ThemeCoverage     float64
	Duration          time.Duration
}

// BankReport summarizes the keyword and theme results for one bank.
type BankReport struct {
	Bank          string
	Reviews       int
	Keywords      int
	ThemesMatched int
	Degraded      bool // extraction failed; all reviews tagged "Other"
}

// Pipeline runs the full analysis over stored reviews.
type Pipeline struct {
	store      *store.Store
	classifier sentiment.Classifier
	strategies []keywords.Strategy
	log        *logrus.Logger
}

// New creates a Pipeline over the given store and sentiment classifier.
func New(st *store.Store, classifier sentiment.Classifier, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		store:      st,
		classifier: classifier,
		strategies: keywords.DefaultStrategies(),
		log:        log,
	}
}

// Run executes the pipeline over every stored review. Per-bank extraction
// failures are logged and degrade that bank to "Other"-only tagging; they
// never abort the run. Only storage failures return an error.
func (p *Pipeline) Run() (*Report, error) {
	started := time.Now()
	runID := uuid.NewString()

	if err := p.store.StartRun(runID, started); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	reviews, err := p.store.ListReviews("")
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	if len(reviews) == 0 {
		p.log.Warn("no reviews in database; nothing to analyze")
		return &Report{RunID: runID, Duration: time.Since(started)}, nil
	}

	banks, err := p.store.ListBanks()
	if err != nil {
		return nil, fmt.Errorf("failed to load banks: %w", err)
	}

	report := &Report{RunID: runID}

	// Sentiment pass over every review. Classifier errors degrade the
	// single review to neutral rather than failing the run.
	for i := range reviews {
		res, err := sentiment.Classify(p.classifier, reviews[i].Text)
		if err != nil {
			p.log.WithError(err).WithField("review_id", reviews[i].ID).
				Warn("sentiment classification failed; defaulting to neutral")
			res = sentiment.Result{Label: sentiment.Neutral, Score: 0}
		}
		reviews[i].SentimentLabel = res.Label
		reviews[i].SentimentScore = res.Score
	}

	// Per-bank keyword extraction, binding, and tagging, in input order.
	byBank := make(map[string][]int, len(banks))
	for i, r := range reviews {
		byBank[r.Bank] = append(byBank[r.Bank], i)
	}

	for _, bank := range banks {
		indices := byBank[bank.Name]
		if len(indices) == 0 {
			continue
		}

		texts := make([]string, len(indices))
		for i, idx := range indices {
			texts[i] = reviews[idx].Text
		}

		log := p.log.WithField("bank", bank.Name)
		log.WithField("reviews", len(texts)).Info("extracting keywords")

		kws := keywords.ExtractWith(p.strategies, texts)
		if len(kws) == 0 {
			log.Warn("keyword extraction failed; tagging all reviews as Other")
		}

		binding := themes.BindKeywords(kws)
		if err := p.store.ReplaceThemeKeywords(bank.ID, flattenBinding(bank.ID, binding)); err != nil {
			return nil, fmt.Errorf("failed to store theme keywords for %s: %w", bank.Name, err)
		}

		for _, idx := range indices {
			reviews[idx].Themes = themes.TagReview(reviews[idx].Text, binding)
		}

		report.Banks = append(report.Banks, BankReport{
			Bank:          bank.Name,
			Reviews:       len(indices),
			Keywords:      len(kws),
			ThemesMatched: len(binding),
			Degraded:      len(kws) == 0,
		})
	}

	if err := p.store.UpdateAnalysis(reviews); err != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	sentimentPct, themePct, err := p.store.Coverage()
	if err != nil {
		return nil, fmt.Errorf("failed to compute coverage: %w", err)
	}

	report.ReviewsAnalyzed = len(reviews)
	report.SentimentCoverage = sentimentPct
	report.ThemeCoverage = themePct
	report.Duration = time.Since(started)

	if err := p.store.FinishRun(runID, time.Now(), len(reviews), sentimentPct, themePct); err != nil {
		return nil, fmt.Errorf("failed to finalize run: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"run_id":             runID,
		"reviews":            len(reviews),
		"sentiment_coverage": fmt.Sprintf("%.1f%%", sentimentPct),
		"theme_coverage":     fmt.Sprintf("%.1f%%", themePct),
	}).Info("analysis complete")

	return report, nil
}

// flattenBinding converts a theme binding into store rows, preserving the
// weight-descending order within each theme.
func flattenBinding(bankID int64, binding themes.Binding) []store.ThemeKeyword {
	var rows []store.ThemeKeyword
	for _, theme := range themes.Taxonomy {
		bound, ok := binding[theme.Name]
		if !ok {
			continue
		}
		for pos, kw := range bound {
			rows = append(rows, store.ThemeKeyword{
				BankID:   bankID,
				Theme:    theme.Name,
				Keyword:  kw.Term,
				Weight:   kw.Weight,
				Position: pos,
			})
		}
	}
	return rows
}
