package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reviewlens/internal/config"
	"github.com/blackwell-systems/reviewlens/internal/output"
	"github.com/blackwell-systems/reviewlens/internal/review"
	"github.com/blackwell-systems/reviewlens/internal/store"
)

var (
	importQuiet bool

	importCmd = &cobra.Command{
		Use:   "import <csv-file>...",
		Short: "Import and clean scraped review CSV files",
		Long: `Load one or more scraped review CSV files, clean them, and store the
surviving rows in the reviewlens database.

Cleaning removes duplicate (text, bank) pairs, rows with empty review
text, and rows with a rating outside 1-5. Dates are normalized across
the common scraped formats; unparseable dates are kept but counted as
missing. Quality metrics for each file are printed after import.

Expected columns: review, rating, date, bank, source. Extra columns and
arbitrary ordering are tolerated; columns are matched by header name.`,
		Example: `  # Import a single scrape
  reviewlens import data/raw/all_reviews_raw.csv

  # Import several per-bank files at once
  reviewlens import data/raw/reviews_CBE_raw.csv data/raw/reviews_BOA_raw.csv

  # Import quietly (suppress metrics output)
  reviewlens import --quiet reviews.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}
)

func init() {
	importCmd.Flags().BoolVar(&importQuiet, "quiet", false, "suppress quality metrics output")
	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, path := range args {
		if err := importFile(st, path, !importQuiet); err != nil {
			return err
		}
	}
	return nil
}

// importFile loads, cleans, and stores one CSV file, grouping rows by
// bank so each batch lands under the right bank ID.
func importFile(st *store.Store, path string, verbose bool) error {
	raw, err := review.ReadCSVFile(path)
	if err != nil {
		return err
	}

	cleaned, metrics := review.Clean(raw)

	// The app registry supplies Play Store app IDs for known banks.
	registry := config.DefaultRegistry()
	if dir, err := config.Dir(); err == nil {
		if reg, err := config.LoadRegistry(dir); err == nil {
			registry = reg
		}
	}

	byBank := make(map[string][]review.Review)
	for _, r := range cleaned {
		byBank[r.Bank] = append(byBank[r.Bank], r)
	}

	total := 0
	for bank, reviews := range byBank {
		bankID, err := st.GetOrCreateBank(bank, registry.AppID(bank))
		if err != nil {
			return err
		}
		n, err := st.InsertReviews(bankID, reviews)
		if err != nil {
			return fmt.Errorf("failed to insert reviews for %s: %w", bank, err)
		}
		total += n
	}

	if verbose {
		fmt.Printf("%s:\n", path)
		fmt.Print(output.RenderQualityMetrics(metrics))
		fmt.Printf("Imported %d reviews across %d banks.\n\n", total, len(byBank))
	}
	return nil
}
