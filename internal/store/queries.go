package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/reviewlens/internal/review"
)

// themeSeparator joins theme names in the reviews.themes column.
const themeSeparator = "; "

// Bank operations

// GetOrCreateBank returns the ID of the named bank, creating the row if
// it does not exist yet. The app ID is only written on creation.
func (s *Store) GetOrCreateBank(name, appID string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT bank_id FROM banks WHERE bank_name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, wrapQueryErr(fmt.Sprintf("failed to look up bank %s", name), err)
	}

	res, err := s.db.Exec(
		`INSERT INTO banks (bank_name, app_id, created_at) VALUES (?, ?, ?)`,
		name, appID, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return 0, wrapQueryErr(fmt.Sprintf("failed to create bank %s", name), err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get bank id for %s: %w", name, err)
	}
	return id, nil
}

// ListBanks returns all banks ordered by name.
func (s *Store) ListBanks() ([]Bank, error) {
	rows, err := s.db.Query(`SELECT bank_id, bank_name, app_id, created_at FROM banks ORDER BY bank_name`)
	if err != nil {
		return nil, wrapQueryErr("failed to list banks", err)
	}
	defer rows.Close()

	var banks []Bank
	for rows.Next() {
		var b Bank
		var appID sql.NullString
		var createdAt string
		if err := rows.Scan(&b.ID, &b.Name, &appID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		b.AppID = appID.String
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		banks = append(banks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating banks: %w", err)
	}
	return banks, nil
}

// Review operations

// InsertReviews inserts a batch of cleaned reviews for one bank inside a
// single transaction. Rating and text validity are enforced here as the
// storage boundary: any invalid row aborts the whole batch.
func (s *Store) InsertReviews(bankID int64, reviews []review.Review) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO reviews (bank_id, review_text, rating, review_date, sentiment_label, sentiment_score, themes, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, wrapQueryErr("failed to prepare review insert", err)
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, r := range reviews {
		if strings.TrimSpace(r.Text) == "" {
			return 0, fmt.Errorf("review for bank %d has empty text", bankID)
		}
		if r.Rating < 1 || r.Rating > 5 {
			return 0, fmt.Errorf("review rating %d out of range [1,5]", r.Rating)
		}

		var date interface{}
		if !r.Date.IsZero() {
			date = r.Date.Format("2006-01-02")
		}
		var label, themes interface{}
		var score interface{}
		if r.SentimentLabel != "" {
			label = r.SentimentLabel
			score = r.SentimentScore
		}
		if len(r.Themes) > 0 {
			themes = strings.Join(r.Themes, themeSeparator)
		}

		source := r.Source
		if source == "" {
			source = review.DefaultSource
		}

		if _, err := stmt.Exec(bankID, r.Text, r.Rating, date, label, score, themes, source, now); err != nil {
			return 0, fmt.Errorf("failed to insert review: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit review batch: %w", err)
	}
	return len(reviews), nil
}

// ListReviews returns stored reviews joined with their bank name. Pass an
// empty bank name for all banks. Rows come back in insertion order.
func (s *Store) ListReviews(bank string) ([]review.Review, error) {
	query := `
		SELECT r.review_id, b.bank_name, r.source, r.review_text, r.rating,
		       r.review_date, r.sentiment_label, r.sentiment_score, r.themes
		FROM reviews r
		JOIN banks b ON b.bank_id = r.bank_id
	`
	args := []interface{}{}
	if bank != "" {
		query += ` WHERE b.bank_name = ?`
		args = append(args, bank)
	}
	query += ` ORDER BY r.review_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapQueryErr("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []review.Review
	for rows.Next() {
		var r review.Review
		var date, label, themes sql.NullString
		var score sql.NullFloat64

		err := rows.Scan(&r.ID, &r.Bank, &r.Source, &r.Text, &r.Rating,
			&date, &label, &score, &themes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}

		if date.Valid {
			r.Date = review.ParseDate(date.String)
		}
		r.SentimentLabel = label.String
		r.SentimentScore = score.Float64
		if themes.Valid && themes.String != "" {
			r.Themes = strings.Split(themes.String, themeSeparator)
		}

		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}

// UpdateAnalysis writes sentiment and theme results back to stored
// reviews in one transaction, keyed by review ID.
func (s *Store) UpdateAnalysis(reviews []review.Review) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE reviews
		SET sentiment_label = ?, sentiment_score = ?, themes = ?
		WHERE review_id = ?
	`)
	if err != nil {
		return wrapQueryErr("failed to prepare analysis update", err)
	}
	defer stmt.Close()

	for _, r := range reviews {
		themes := strings.Join(r.Themes, themeSeparator)
		if _, err := stmt.Exec(r.SentimentLabel, r.SentimentScore, themes, r.ID); err != nil {
			return fmt.Errorf("failed to update review %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis update: %w", err)
	}
	return nil
}

// CountReviews returns the total number of stored reviews.
func (s *Store) CountReviews() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&n); err != nil {
		return 0, wrapQueryErr("failed to count reviews", err)
	}
	return n, nil
}

// Coverage returns the percentage of reviews carrying a sentiment label
// and the percentage carrying at least one theme. Both are 0 for an
// empty database.
func (s *Store) Coverage() (sentimentPct, themePct float64, err error) {
	var total, withSentiment, withThemes int
	err = s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(sentiment_label),
		       COUNT(themes)
		FROM reviews
	`).Scan(&total, &withSentiment, &withThemes)
	if err != nil {
		return 0, 0, wrapQueryErr("failed to compute coverage", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(withSentiment) / float64(total) * 100,
		float64(withThemes) / float64(total) * 100, nil
}

// Theme keyword operations

// ReplaceThemeKeywords atomically replaces a bank's theme-keyword binding
// with the given rows. Bindings are fully recomputed each run, so the old
// rows are simply discarded.
func (s *Store) ReplaceThemeKeywords(bankID int64, kws []ThemeKeyword) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM theme_keywords WHERE bank_id = ?`, bankID); err != nil {
		return wrapQueryErr("failed to clear theme keywords", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO theme_keywords (bank_id, theme, keyword, weight, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return wrapQueryErr("failed to prepare theme keyword insert", err)
	}
	defer stmt.Close()

	for _, kw := range kws {
		if _, err := stmt.Exec(bankID, kw.Theme, kw.Keyword, kw.Weight, kw.Position); err != nil {
			return fmt.Errorf("failed to insert theme keyword %s/%s: %w", kw.Theme, kw.Keyword, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit theme keywords: %w", err)
	}
	return nil
}

// GetThemeKeywords returns a bank's bound keywords ordered by theme and
// binding position.
func (s *Store) GetThemeKeywords(bankID int64) ([]ThemeKeyword, error) {
	rows, err := s.db.Query(`
		SELECT bank_id, theme, keyword, weight, position
		FROM theme_keywords
		WHERE bank_id = ?
		ORDER BY theme, position
	`, bankID)
	if err != nil {
		return nil, wrapQueryErr("failed to get theme keywords", err)
	}
	defer rows.Close()

	var kws []ThemeKeyword
	for rows.Next() {
		var kw ThemeKeyword
		if err := rows.Scan(&kw.BankID, &kw.Theme, &kw.Keyword, &kw.Weight, &kw.Position); err != nil {
			return nil, fmt.Errorf("failed to scan theme keyword row: %w", err)
		}
		kws = append(kws, kw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theme keywords: %w", err)
	}
	return kws, nil
}

// Run operations

// StartRun records the beginning of an analyze run.
func (s *Store) StartRun(runID string, startedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, started_at) VALUES (?, ?)`,
		runID, startedAt.Format(time.RFC3339),
	)
	return wrapQueryErr("failed to start run", err)
}

// FinishRun records completion stats for an analyze run.
func (s *Store) FinishRun(runID string, finishedAt time.Time, analyzed int, sentimentPct, themePct float64) error {
	_, err := s.db.Exec(`
		UPDATE runs
		SET finished_at = ?, reviews_analyzed = ?, sentiment_coverage = ?, theme_coverage = ?
		WHERE run_id = ?
	`, finishedAt.Format(time.RFC3339), analyzed, sentimentPct, themePct, runID)
	return wrapQueryErr("failed to finish run", err)
}

// LastRun returns the most recent run, or nil if none exist.
func (s *Store) LastRun() (*Run, error) {
	var r Run
	var startedAt string
	var finishedAt sql.NullString
	err := s.db.QueryRow(`
		SELECT run_id, started_at, finished_at, reviews_analyzed, sentiment_coverage, theme_coverage
		FROM runs
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(&r.ID, &startedAt, &finishedAt, &r.ReviewsAnalyzed, &r.SentimentCoverage, &r.ThemeCoverage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryErr("failed to get last run", err)
	}

	r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if finishedAt.Valid {
		r.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt.String)
	}
	return &r, nil
}
