package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reviewlens/internal/insights"
	"github.com/blackwell-systems/reviewlens/internal/keywords"
	"github.com/blackwell-systems/reviewlens/internal/output"
	"github.com/blackwell-systems/reviewlens/internal/store"
	"github.com/blackwell-systems/reviewlens/internal/themes"
)

var (
	themesBank string

	themesCmd = &cobra.Command{
		Use:   "themes",
		Short: "Show per-bank theme summaries",
		Long: `Display the theme-keyword bindings computed by the last analyze run:
for each bank and theme, the number of bound keywords and the top
keywords by weight.

Themes with no bound keywords for a bank are omitted.`,
		Example: `  # All banks
  reviewlens themes

  # One bank
  reviewlens themes --bank "Dashen Bank"`,
		RunE: runThemes,
	}
)

func init() {
	themesCmd.Flags().StringVar(&themesBank, "bank", "", "restrict output to one bank")
	RootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	banks, err := st.ListBanks()
	if err != nil {
		return err
	}

	var rows []insights.ThemeSummary
	for _, bank := range banks {
		if themesBank != "" && bank.Name != themesBank {
			continue
		}
		binding, err := loadBinding(st, bank.ID)
		if err != nil {
			return err
		}
		rows = append(rows, insights.SummarizeThemes(bank.Name, binding)...)
	}

	fmt.Print(output.RenderThemeTable(rows))
	return nil
}

// loadBinding reconstructs a bank's theme binding from stored rows,
// preserving the original binding order.
func loadBinding(st *store.Store, bankID int64) (themes.Binding, error) {
	rows, err := st.GetThemeKeywords(bankID)
	if err != nil {
		return nil, err
	}

	binding := make(themes.Binding)
	for _, row := range rows {
		binding[row.Theme] = append(binding[row.Theme], keywords.Keyword{
			Term:   row.Keyword,
			Weight: row.Weight,
		})
	}
	return binding, nil
}
