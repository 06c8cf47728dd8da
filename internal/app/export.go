package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reviewlens/internal/insights"
	"github.com/blackwell-systems/reviewlens/internal/review"
)

var (
	exportDir string

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export analyzed reviews and summary tables as CSV",
		Long: `Write the analysis results as CSV files for downstream reporting:

  reviews_analyzed.csv       all reviews with sentiment and themes
  theme_summary.csv          per-bank theme keyword summaries
  sentiment_aggregation.csv  per-bank per-rating sentiment aggregates

Themes in reviews_analyzed.csv are joined with "; " in one column.`,
		Example: `  # Export into ./out
  reviewlens export --dir out`,
		RunE: runExport,
	}
)

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "out", "output directory for CSV files")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	reviews, err := st.ListReviews("")
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews to export. Run 'reviewlens import' first.")
		return nil
	}

	// Tagged reviews.
	reviewsPath := filepath.Join(exportDir, "reviews_analyzed.csv")
	f, err := os.Create(reviewsPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", reviewsPath, err)
	}
	if err := review.WriteAnalyzedCSV(f, reviews); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", reviewsPath, err)
	}
	fmt.Printf("Wrote %s (%d reviews)\n", reviewsPath, len(reviews))

	// Theme summary.
	banks, err := st.ListBanks()
	if err != nil {
		return err
	}
	var themeRows []insights.ThemeSummary
	for _, bank := range banks {
		binding, err := loadBinding(st, bank.ID)
		if err != nil {
			return err
		}
		themeRows = append(themeRows, insights.SummarizeThemes(bank.Name, binding)...)
	}
	themePath := filepath.Join(exportDir, "theme_summary.csv")
	if err := writeThemeSummaryCSV(themePath, themeRows); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d rows)\n", themePath, len(themeRows))

	// Sentiment aggregation.
	aggRows := insights.AggregateSentiment(reviews)
	aggPath := filepath.Join(exportDir, "sentiment_aggregation.csv")
	if err := writeSentimentCSV(aggPath, aggRows); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d rows)\n", aggPath, len(aggRows))

	return nil
}

func writeThemeSummaryCSV(path string, rows []insights.ThemeSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"bank", "theme", "keyword_count", "top_keywords"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Bank, row.Theme, strconv.Itoa(row.KeywordCount), row.TopKeywords}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSentimentCSV(path string, rows []insights.RatingSentiment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := []string{"bank", "rating", "review_count", "mean_sentiment_score", "positive_pct", "negative_pct", "neutral_pct"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Bank,
			strconv.Itoa(row.Rating),
			strconv.Itoa(row.ReviewCount),
			strconv.FormatFloat(row.MeanScore, 'f', 4, 64),
			strconv.FormatFloat(row.PositivePct, 'f', 1, 64),
			strconv.FormatFloat(row.NegativePct, 'f', 1, 64),
			strconv.FormatFloat(row.NeutralPct, 'f', 1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
