package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reviewlens/internal/config"
)

var (
	dbPath string

	// RootCmd is the root command for reviewlens
	RootCmd = &cobra.Command{
		Use:   "reviewlens",
		Short: "Banking app review analytics: sentiment, themes, insights",
		Long: `reviewlens ingests app-store reviews for banking apps, scores their
sentiment, clusters keywords into themes, and renders per-bank summary
tables and CSV exports.

Workflow:
  1. reviewlens import reviews.csv      # load and clean scraped reviews
  2. reviewlens analyze                 # sentiment + theme assignment
  3. reviewlens themes                  # per-bank theme summaries
  4. reviewlens stats                   # sentiment by bank and rating
  5. reviewlens insights                # drivers and pain points
  6. reviewlens export --dir out/       # CSV exports for reporting

Each bank's reviews are processed as an independent corpus: keywords are
extracted per bank, bound to a fixed theme taxonomy, and every review is
tagged with the themes whose keywords it contains ("Other" when nothing
matches).

Examples:
  # Import a scraped CSV
  reviewlens import data/raw/all_reviews_raw.csv

  # Run the full analysis
  reviewlens analyze

  # Watch an inbox directory for new CSV drops
  reviewlens watch data/inbox`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := getDBPath()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("reviewlens: banking app review analytics")
				fmt.Println()
				fmt.Println("Run 'reviewlens import <csv>' to get started.")
				fmt.Println("Run 'reviewlens --help' for the full reference.")
			} else {
				fmt.Println("reviewlens: banking app review analytics")
				fmt.Println()
				fmt.Println("Tip: Run 'reviewlens status' to check the database.")
				fmt.Println("     Run 'reviewlens analyze' to refresh the analysis.")
				fmt.Println("     Run 'reviewlens --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.reviewlens/reviewlens.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command.
func Execute() error {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	if lvl, err := logrus.ParseLevel(config.LogLevel()); err == nil {
		logrus.SetLevel(lvl)
	}

	return RootCmd.Execute()
}

// getDBPath returns the database path: the --db flag, then the
// REVIEWLENS_DB env var, then the default under the home directory.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := config.DBPathOverride(); env != "" {
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".reviewlens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reviewlens directory: %w", err)
	}

	return filepath.Join(dir, "reviewlens.db"), nil
}
