package store

import (
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/reviewlens/internal/review"
)

// testStore creates an in-memory store with the schema applied.
func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	return s
}

func TestUninitializedDatabase(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	_, err = s.ListReviews("")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ListReviews() error = %v, want ErrNotInitialized", err)
	}

	_, err = s.CountReviews()
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("CountReviews() error = %v, want ErrNotInitialized", err)
	}
}

func TestGetOrCreateBank(t *testing.T) {
	s := testStore(t)

	id1, err := s.GetOrCreateBank("CBE", "com.combanketh.mobilebanking")
	if err != nil {
		t.Fatalf("GetOrCreateBank() error = %v", err)
	}
	if id1 == 0 {
		t.Error("GetOrCreateBank() returned zero id")
	}

	// Second call must return the same row, not create a duplicate.
	id2, err := s.GetOrCreateBank("CBE", "different.app.id")
	if err != nil {
		t.Fatalf("GetOrCreateBank() second call error = %v", err)
	}
	if id2 != id1 {
		t.Errorf("GetOrCreateBank() second call id = %d, want %d", id2, id1)
	}

	banks, err := s.ListBanks()
	if err != nil {
		t.Fatalf("ListBanks() error = %v", err)
	}
	if len(banks) != 1 {
		t.Fatalf("ListBanks() returned %d banks, want 1", len(banks))
	}
	if banks[0].AppID != "com.combanketh.mobilebanking" {
		t.Errorf("app_id = %q, want the one set at creation", banks[0].AppID)
	}
}

func TestInsertAndListReviews(t *testing.T) {
	s := testStore(t)

	bankID, err := s.GetOrCreateBank("CBE", "")
	if err != nil {
		t.Fatalf("GetOrCreateBank() error = %v", err)
	}

	reviews := []review.Review{
		{Text: "Great app", Rating: 5, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Text: "Always crashes", Rating: 1, Source: "Apple App Store"},
	}

	n, err := s.InsertReviews(bankID, reviews)
	if err != nil {
		t.Fatalf("InsertReviews() error = %v", err)
	}
	if n != 2 {
		t.Errorf("InsertReviews() = %d, want 2", n)
	}

	got, err := s.ListReviews("CBE")
	if err != nil {
		t.Fatalf("ListReviews() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListReviews() returned %d reviews, want 2", len(got))
	}

	if got[0].Text != "Great app" || got[0].Rating != 5 {
		t.Errorf("first review = %+v", got[0])
	}
	if got[0].Bank != "CBE" {
		t.Errorf("bank = %q, want CBE", got[0].Bank)
	}
	if got[0].Date.Format("2006-01-02") != "2024-06-01" {
		t.Errorf("date = %v, want 2024-06-01", got[0].Date)
	}
	if got[0].Source != review.DefaultSource {
		t.Errorf("source = %q, want default", got[0].Source)
	}
	if got[1].Source != "Apple App Store" {
		t.Errorf("source = %q, want Apple App Store", got[1].Source)
	}
	if got[1].SentimentLabel != "" || got[1].Themes != nil {
		t.Errorf("unanalyzed review carries analysis fields: %+v", got[1])
	}
}

func TestInsertReviews_RejectsInvalidRows(t *testing.T) {
	s := testStore(t)
	bankID, _ := s.GetOrCreateBank("CBE", "")

	cases := []struct {
		name    string
		reviews []review.Review
	}{
		{"empty text", []review.Review{{Text: "   ", Rating: 3}}},
		{"rating zero", []review.Review{{Text: "ok", Rating: 0}}},
		{"rating six", []review.Review{{Text: "ok", Rating: 6}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.InsertReviews(bankID, tc.reviews); err == nil {
				t.Error("InsertReviews() did not reject invalid row")
			}
		})
	}

	// An invalid row aborts the whole batch.
	batch := []review.Review{
		{Text: "fine", Rating: 4},
		{Text: "bad rating", Rating: 9},
	}
	if _, err := s.InsertReviews(bankID, batch); err == nil {
		t.Error("InsertReviews() did not reject mixed batch")
	}
	n, err := s.CountReviews()
	if err != nil {
		t.Fatalf("CountReviews() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountReviews() = %d after rejected batch, want 0", n)
	}
}

func TestUpdateAnalysisAndCoverage(t *testing.T) {
	s := testStore(t)
	bankID, _ := s.GetOrCreateBank("CBE", "")

	if _, err := s.InsertReviews(bankID, []review.Review{
		{Text: "login never works", Rating: 1},
		{Text: "smooth and fast", Rating: 5},
	}); err != nil {
		t.Fatalf("InsertReviews() error = %v", err)
	}

	sentPct, themePct, err := s.Coverage()
	if err != nil {
		t.Fatalf("Coverage() error = %v", err)
	}
	if sentPct != 0 || themePct != 0 {
		t.Errorf("Coverage() before analysis = %.1f/%.1f, want 0/0", sentPct, themePct)
	}

	reviews, err := s.ListReviews("")
	if err != nil {
		t.Fatalf("ListReviews() error = %v", err)
	}
	reviews[0].SentimentLabel = "negative"
	reviews[0].SentimentScore = 0.7
	reviews[0].Themes = []string{"Account Access Issues", "App Reliability & Bugs"}
	reviews[1].SentimentLabel = "positive"
	reviews[1].SentimentScore = 0.8
	reviews[1].Themes = []string{"Other"}

	if err := s.UpdateAnalysis(reviews); err != nil {
		t.Fatalf("UpdateAnalysis() error = %v", err)
	}

	got, err := s.ListReviews("")
	if err != nil {
		t.Fatalf("ListReviews() error = %v", err)
	}
	if got[0].SentimentLabel != "negative" {
		t.Errorf("label = %q, want negative", got[0].SentimentLabel)
	}
	if len(got[0].Themes) != 2 || got[0].Themes[1] != "App Reliability & Bugs" {
		t.Errorf("themes round trip = %v", got[0].Themes)
	}

	sentPct, themePct, err = s.Coverage()
	if err != nil {
		t.Fatalf("Coverage() error = %v", err)
	}
	if sentPct != 100 || themePct != 100 {
		t.Errorf("Coverage() after analysis = %.1f/%.1f, want 100/100", sentPct, themePct)
	}
}

func TestReplaceThemeKeywords(t *testing.T) {
	s := testStore(t)
	bankID, _ := s.GetOrCreateBank("CBE", "")

	first := []ThemeKeyword{
		{Theme: "Account Access Issues", Keyword: "login", Weight: 0.9, Position: 0},
		{Theme: "Account Access Issues", Keyword: "password", Weight: 0.5, Position: 1},
		{Theme: "Customer Support", Keyword: "support", Weight: 0.7, Position: 0},
	}
	if err := s.ReplaceThemeKeywords(bankID, first); err != nil {
		t.Fatalf("ReplaceThemeKeywords() error = %v", err)
	}

	// A rerun fully replaces the previous binding.
	second := []ThemeKeyword{
		{Theme: "App Reliability & Bugs", Keyword: "crash", Weight: 0.8, Position: 0},
	}
	if err := s.ReplaceThemeKeywords(bankID, second); err != nil {
		t.Fatalf("ReplaceThemeKeywords() rerun error = %v", err)
	}

	got, err := s.GetThemeKeywords(bankID)
	if err != nil {
		t.Fatalf("GetThemeKeywords() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("GetThemeKeywords() returned %d rows, want 1", len(got))
	}
	if got[0].Keyword != "crash" || got[0].Theme != "App Reliability & Bugs" {
		t.Errorf("row = %+v", got[0])
	}
}

func TestRunLifecycle(t *testing.T) {
	s := testStore(t)

	last, err := s.LastRun()
	if err != nil {
		t.Fatalf("LastRun() error = %v", err)
	}
	if last != nil {
		t.Errorf("LastRun() on empty table = %+v, want nil", last)
	}

	started := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if err := s.StartRun("run-1", started); err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if err := s.FinishRun("run-1", started.Add(2*time.Second), 120, 100, 97.5); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	// A later run becomes the last one.
	if err := s.StartRun("run-2", started.Add(time.Hour)); err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	last, err = s.LastRun()
	if err != nil {
		t.Fatalf("LastRun() error = %v", err)
	}
	if last == nil || last.ID != "run-2" {
		t.Errorf("LastRun() = %+v, want run-2", last)
	}

	if err := s.FinishRun("run-2", started.Add(time.Hour).Add(time.Second), 130, 100, 98.0); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}
	last, _ = s.LastRun()
	if last.ReviewsAnalyzed != 130 {
		t.Errorf("ReviewsAnalyzed = %d, want 130", last.ReviewsAnalyzed)
	}
	if last.ThemeCoverage != 98.0 {
		t.Errorf("ThemeCoverage = %.1f, want 98.0", last.ThemeCoverage)
	}
}
