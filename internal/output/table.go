// Package output provides terminal output utilities for reviewlens:
// ASCII table rendering for theme summaries, sentiment aggregates, and
// insights, plus a spinner for the analyze pass. Tables use ANSI color
// codes only when stdout is a TTY and NO_COLOR is unset.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/reviewlens/internal/insights"
	"github.com/blackwell-systems/reviewlens/internal/review"
)

// ANSI color codes for sentiment display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// truncate shortens s to max runes, appending "…" when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// RenderThemeTable renders per-bank theme summary rows.
func RenderThemeTable(rows []insights.ThemeSummary) string {
	if len(rows) == 0 {
		return "No themes identified. Run 'reviewlens analyze' first.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %-28s %-9s %s\n",
		"Bank", "Theme", "Keywords", "Top Keywords"))
	sb.WriteString(strings.Repeat("─", 110))
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-28s %-28s %-9d %s\n",
			truncate(row.Bank, 28),
			truncate(row.Theme, 28),
			row.KeywordCount,
			truncate(row.TopKeywords, 42)))
	}

	return sb.String()
}

// RenderSentimentTable renders per-bank, per-rating sentiment aggregates.
// Positive percentages are colored green, negative red, when color is on.
func RenderSentimentTable(rows []insights.RatingSentiment) string {
	if len(rows) == 0 {
		return "No sentiment data. Run 'reviewlens analyze' first.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %-7s %-8s %-11s %-7s %-7s %s\n",
		"Bank", "Rating", "Reviews", "Mean Score", "Pos%", "Neg%", "Neu%"))
	sb.WriteString(strings.Repeat("─", 84))
	sb.WriteString("\n")

	for _, row := range rows {
		pos := colorize(colorGreen, fmt.Sprintf("%-7.1f", row.PositivePct))
		neg := colorize(colorRed, fmt.Sprintf("%-7.1f", row.NegativePct))
		sb.WriteString(fmt.Sprintf("%-28s %-7d %-8d %-11.3f %s %s %.1f\n",
			truncate(row.Bank, 28),
			row.Rating,
			row.ReviewCount,
			row.MeanScore,
			pos,
			neg,
			row.NeutralPct))
	}

	return sb.String()
}

// RenderInsights renders a bank's drivers and pain points as two short
// lists.
func RenderInsights(ins insights.BankInsights) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", ins.Bank))
	sb.WriteString(strings.Repeat("─", len([]rune(ins.Bank))))
	sb.WriteString("\n")

	sb.WriteString(colorize(colorGreen, "  Drivers (rated 4-5):\n"))
	if len(ins.Drivers) == 0 {
		sb.WriteString(colorize(colorGray, "    none identified\n"))
	}
	for _, m := range ins.Drivers {
		sb.WriteString(fmt.Sprintf("    %-28s %d mentions\n", m.Theme, m.Count))
	}

	sb.WriteString(colorize(colorRed, "  Pain points (rated 1-2):\n"))
	if len(ins.PainPoints) == 0 {
		sb.WriteString(colorize(colorGray, "    none identified\n"))
	}
	for _, m := range ins.PainPoints {
		sb.WriteString(fmt.Sprintf("    %-28s %d mentions\n", m.Theme, m.Count))
	}

	return sb.String()
}

// RenderQualityMetrics renders the cleaning summary printed after import.
func RenderQualityMetrics(m review.QualityMetrics) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed %d rows: kept %d\n", m.Total, m.Kept))
	if m.DroppedDuplicates > 0 {
		sb.WriteString(fmt.Sprintf("  duplicates removed:   %d\n", m.DroppedDuplicates))
	}
	if m.DroppedEmptyText > 0 {
		sb.WriteString(fmt.Sprintf("  empty text dropped:   %d\n", m.DroppedEmptyText))
	}
	if m.DroppedBadRating > 0 {
		sb.WriteString(fmt.Sprintf("  bad ratings dropped:  %d\n", m.DroppedBadRating))
	}
	if m.MissingDates > 0 {
		sb.WriteString(fmt.Sprintf("  missing dates:        %d\n", m.MissingDates))
	}
	sb.WriteString(fmt.Sprintf("  missing data: %.1f%%\n", m.MissingDataPct()))
	return sb.String()
}
