package review

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Analyzed CSV column order written by the export command.
var analyzedHeader = []string{
	"review_id", "review_text", "rating", "date", "bank", "source",
	"sentiment_label", "sentiment_score", "identified_themes",
}

// ReadCSV parses raw scraped reviews from a CSV stream. The first row must
// be a header; columns are resolved by name so extra columns and arbitrary
// ordering are tolerated. Rows with an unparseable rating get rating 0 and
// are left for Clean to filter.
func ReadCSV(r io.Reader) ([]Review, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["review"]; !ok {
		// Accept the analyzed-file column name too.
		if i, ok := col["review_text"]; ok {
			col["review"] = i
		} else {
			return nil, fmt.Errorf("CSV missing required column %q", "review")
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var reviews []Review
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		rating, _ := strconv.Atoi(field(record, "rating"))
		reviews = append(reviews, Review{
			Text:   field(record, "review"),
			Rating: rating,
			Date:   ParseDate(field(record, "date")),
			Bank:   field(record, "bank"),
			Source: field(record, "source"),
		})
	}

	return reviews, nil
}

// ReadCSVFile opens and parses a raw review CSV file.
func ReadCSVFile(path string) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reviews, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return reviews, nil
}

// WriteAnalyzedCSV writes fully analyzed reviews in the export column
// order, with themes joined by "; ".
func WriteAnalyzedCSV(w io.Writer, reviews []Review) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(analyzedHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range reviews {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format("2006-01-02")
		}
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.Text,
			strconv.Itoa(r.Rating),
			date,
			r.Bank,
			r.Source,
			r.SentimentLabel,
			strconv.FormatFloat(r.SentimentScore, 'f', 4, 64),
			strings.Join(r.Themes, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
