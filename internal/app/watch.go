package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/reviewlens/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and import review CSVs as they appear",
	Long: `Watch an inbox directory for new or updated CSV files and import each
one through the normal cleaning path once its writes settle.

Useful when a scraper drops per-bank CSV files on a schedule: reviewlens
picks them up without manual imports. Run 'reviewlens analyze' afterward
to refresh sentiment and themes.

Press Ctrl+C to stop.`,
	Example: `  # Watch the scraper's output directory
  reviewlens watch data/inbox`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	w, err := watcher.New(dir, func(path string) error {
		return importFile(st, path, false)
	}, logrus.StandardLogger())
	if err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		return err
	}

	fmt.Printf("Watching %s for review CSV files. Press Ctrl+C to stop.\n", dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nStopping watcher...")
	return w.Stop()
}
