package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reviewlens/internal/insights"
	"github.com/blackwell-systems/reviewlens/internal/output"
)

var (
	statsBank string

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show sentiment aggregates by bank and rating",
		Long: `Display per-bank, per-rating sentiment aggregates computed from the
last analyze run: review count, mean sentiment score, and the share of
positive, negative, and neutral reviews in each rating bucket.

Percentages in each row sum to 100.`,
		Example: `  # All banks
  reviewlens stats

  # One bank
  reviewlens stats --bank "Bank of Abyssinia"`,
		RunE: runStats,
	}
)

func init() {
	statsCmd.Flags().StringVar(&statsBank, "bank", "", "restrict output to one bank")
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	reviews, err := st.ListReviews(statsBank)
	if err != nil {
		return err
	}

	rows := insights.AggregateSentiment(reviews)
	fmt.Print(output.RenderSentimentTable(rows))
	return nil
}
