package app

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reviewlens/internal/output"
	"github.com/blackwell-systems/reviewlens/internal/pipeline"
	"github.com/blackwell-systems/reviewlens/internal/sentiment"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run sentiment and theme analysis over stored reviews",
	Long: `Run the full analysis pipeline over every review in the database:

  1. Score each review's sentiment (positive/negative/neutral with a
     confidence score).
  2. Extract ranked keywords per bank (TF-IDF, falling back to lemma
     frequency on small or degenerate corpora).
  3. Bind keywords to the fixed theme taxonomy, earlier themes claiming
     keywords first.
  4. Tag each review with every theme whose keywords appear in its text;
     reviews matching nothing are tagged "Other".

A failed extraction for one bank degrades that bank to "Other"-only
tagging; it never aborts the run. Re-running is safe: bindings and tags
are recomputed from scratch each time.`,
	Example: `  # Run the analysis
  reviewlens analyze

  # Then inspect the results
  reviewlens themes
  reviewlens stats`,
	RunE: runAnalyze,
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	spinner := output.NewSpinner("Analyzing reviews")
	spinner.Start()

	p := pipeline.New(st, sentiment.NewLexiconClassifier(), logrus.StandardLogger())
	report, err := p.Run()

	spinner.Stop()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if report.ReviewsAnalyzed == 0 {
		fmt.Println("No reviews to analyze. Run 'reviewlens import' first.")
		return nil
	}

	fmt.Printf("Analyzed %d reviews in %s\n", report.ReviewsAnalyzed, report.Duration.Round(time.Millisecond))
	fmt.Printf("  sentiment coverage: %.1f%%\n", report.SentimentCoverage)
	fmt.Printf("  theme coverage:     %.1f%%\n", report.ThemeCoverage)
	fmt.Println()
	for _, b := range report.Banks {
		status := fmt.Sprintf("%d keywords, %d themes", b.Keywords, b.ThemesMatched)
		if b.Degraded {
			status = "extraction failed; tagged as Other"
		}
		fmt.Printf("  %-30s %4d reviews  %s\n", b.Bank, b.Reviews, status)
	}
	return nil
}
