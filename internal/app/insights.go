package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reviewlens/internal/insights"
	"github.com/blackwell-systems/reviewlens/internal/output"
)

var (
	insightsBank string

	insightsCmd = &cobra.Command{
		Use:   "insights",
		Short: "Show satisfaction drivers and pain points per bank",
		Long: `Identify what reviewers praise and what they complain about: the
themes most mentioned in 4-5 star reviews (drivers) and the themes most
mentioned in 1-2 star reviews (pain points) for each bank.

"Other" tags are excluded since they carry no thematic signal.`,
		Example: `  # All banks
  reviewlens insights

  # One bank
  reviewlens insights --bank "Commercial Bank of Ethiopia"`,
		RunE: runInsights,
	}
)

func init() {
	insightsCmd.Flags().StringVar(&insightsBank, "bank", "", "restrict output to one bank")
	RootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	reviews, err := st.ListReviews("")
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews in database. Run 'reviewlens import' first.")
		return nil
	}

	banks, err := st.ListBanks()
	if err != nil {
		return err
	}

	for _, bank := range banks {
		if insightsBank != "" && bank.Name != insightsBank {
			continue
		}
		fmt.Print(output.RenderInsights(insights.ComputeInsights(bank.Name, reviews)))
		fmt.Println()
	}
	return nil
}
