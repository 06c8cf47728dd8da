package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database contents and analysis coverage",
	Long: `Display the database location, per-bank review counts, and the
coverage KPIs from the most recent analyze run (percentage of reviews
with a sentiment label and with at least one theme tag).`,
	Example: `  # Check status
  reviewlens status`,
	RunE: runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	path, err := getDBPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Database: %s (not created yet)\n", path)
		fmt.Println("Run 'reviewlens import <csv>' to get started.")
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	total, err := st.CountReviews()
	if err != nil {
		return err
	}

	fmt.Printf("Database: %s\n", path)
	fmt.Printf("Reviews:  %d\n", total)

	banks, err := st.ListBanks()
	if err != nil {
		return err
	}
	for _, bank := range banks {
		reviews, err := st.ListReviews(bank.Name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-30s %d\n", bank.Name, len(reviews))
	}

	run, err := st.LastRun()
	if err != nil {
		return err
	}
	if run == nil {
		fmt.Println("\nNo analyze run recorded yet. Run 'reviewlens analyze'.")
		return nil
	}

	fmt.Printf("\nLast run: %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  reviews analyzed:   %d\n", run.ReviewsAnalyzed)
	fmt.Printf("  sentiment coverage: %.1f%%\n", run.SentimentCoverage)
	fmt.Printf("  theme coverage:     %.1f%%\n", run.ThemeCoverage)
	return nil
}
