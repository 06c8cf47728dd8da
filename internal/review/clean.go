package review

import (
	"strings"
	"time"
)

// Default values applied when a scraped row is missing metadata.
const (
	DefaultBank   = "Unknown"
	DefaultSource = "Google Play Store"
)

// dateFormats are the layouts accepted when normalizing scraped dates,
// tried in order. Anything that fails every layout is treated as missing.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
	time.RFC3339,
}

// Clean normalizes a batch of raw reviews and filters out rows that
// cannot be analyzed. It deduplicates on (text, bank) keeping the first
// occurrence, drops rows with empty text or a rating outside [1,5], and
// fills missing bank/source fields with defaults. Unparseable dates are
// zeroed and counted but do not drop the row.
//
// The input slice is not modified.
func Clean(raw []Review) ([]Review, QualityMetrics) {
	metrics := QualityMetrics{Total: len(raw)}

	seen := make(map[string]bool, len(raw))
	cleaned := make([]Review, 0, len(raw))

	for _, r := range raw {
		r.Text = strings.TrimSpace(r.Text)
		if r.Text == "" {
			metrics.DroppedEmptyText++
			continue
		}

		if r.Rating < 1 || r.Rating > 5 {
			metrics.DroppedBadRating++
			continue
		}

		if r.Bank == "" {
			r.Bank = DefaultBank
		}
		if r.Source == "" {
			r.Source = DefaultSource
		}

		key := r.Text + "\x00" + r.Bank
		if seen[key] {
			metrics.DroppedDuplicates++
			continue
		}
		seen[key] = true

		if r.Date.IsZero() {
			metrics.MissingDates++
		}

		cleaned = append(cleaned, r)
	}

	metrics.Kept = len(cleaned)
	return cleaned, metrics
}

// ParseDate normalizes a scraped date string to a time.Time, trying each
// accepted layout in order. Returns the zero time for empty input or when
// no layout matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
