package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/reviewlens/internal/keywords"
	"github.com/blackwell-systems/reviewlens/internal/review"
	"github.com/blackwell-systems/reviewlens/internal/sentiment"
	"github.com/blackwell-systems/reviewlens/internal/themes"
)

func mkReview(bank string, rating int, label string, score float64) review.Review {
	return review.Review{
		Bank:           bank,
		Rating:         rating,
		Text:           "some text",
		SentimentLabel: label,
		SentimentScore: score,
	}
}

func TestAggregateSentiment_Buckets(t *testing.T) {
	reviews := []review.Review{
		mkReview("CBE", 1, sentiment.Negative, 0.8),
		mkReview("CBE", 1, sentiment.Negative, 0.6),
		mkReview("CBE", 2, sentiment.Negative, 0.7),
		mkReview("CBE", 2, sentiment.Negative, 0.5),
		mkReview("CBE", 4, sentiment.Negative, 0.4),
		mkReview("CBE", 4, sentiment.Positive, 0.9),
		mkReview("CBE", 5, sentiment.Positive, 0.8),
		mkReview("CBE", 5, sentiment.Positive, 0.7),
		mkReview("CBE", 5, sentiment.Positive, 0.9),
		mkReview("CBE", 5, sentiment.Positive, 0.6),
	}

	rows := AggregateSentiment(reviews)
	require.Len(t, rows, 4)

	byRating := make(map[int]RatingSentiment)
	total := 0
	for _, row := range rows {
		assert.Equal(t, "CBE", row.Bank)
		byRating[row.Rating] = row
		total += row.ReviewCount
	}
	assert.Equal(t, len(reviews), total, "every review lands in exactly one bucket")

	assert.Equal(t, 2, byRating[1].ReviewCount)
	assert.Equal(t, 2, byRating[2].ReviewCount)
	assert.Equal(t, 2, byRating[4].ReviewCount)
	assert.Equal(t, 4, byRating[5].ReviewCount)

	assert.Equal(t, 100.0, byRating[1].NegativePct)
	assert.Equal(t, 100.0, byRating[5].PositivePct)
	assert.Equal(t, 50.0, byRating[4].PositivePct)
	assert.Equal(t, 50.0, byRating[4].NegativePct)

	for _, row := range rows {
		sum := row.PositivePct + row.NegativePct + row.NeutralPct
		assert.InDelta(t, 100.0, sum, 1e-9, "rating %d", row.Rating)
	}

	assert.InDelta(t, 0.7, byRating[1].MeanScore, 1e-9)
}

func TestAggregateSentiment_OrderedByBankThenRating(t *testing.T) {
	reviews := []review.Review{
		mkReview("Dashen", 5, sentiment.Positive, 0.9),
		mkReview("BOA", 3, sentiment.Neutral, 0.1),
		mkReview("BOA", 1, sentiment.Negative, 0.8),
		mkReview("Dashen", 2, sentiment.Negative, 0.6),
	}

	rows := AggregateSentiment(reviews)
	require.Len(t, rows, 4)

	assert.Equal(t, "BOA", rows[0].Bank)
	assert.Equal(t, 1, rows[0].Rating)
	assert.Equal(t, "BOA", rows[1].Bank)
	assert.Equal(t, 3, rows[1].Rating)
	assert.Equal(t, "Dashen", rows[2].Bank)
	assert.Equal(t, 2, rows[2].Rating)
	assert.Equal(t, "Dashen", rows[3].Bank)
	assert.Equal(t, 5, rows[3].Rating)
}

func TestAggregateSentiment_Empty(t *testing.T) {
	assert.Empty(t, AggregateSentiment(nil))
}

func TestSummarizeThemes(t *testing.T) {
	binding := themes.Binding{
		"Account Access Issues": {
			{Term: "login", Weight: 0.9},
			{Term: "password", Weight: 0.5},
		},
		"Customer Support": {
			{Term: "support", Weight: 0.7},
		},
	}

	rows := SummarizeThemes("CBE", binding)
	require.Len(t, rows, 2)

	assert.Equal(t, "Account Access Issues", rows[0].Theme)
	assert.Equal(t, 2, rows[0].KeywordCount)
	assert.Equal(t, "login, password", rows[0].TopKeywords)

	assert.Equal(t, "Customer Support", rows[1].Theme)
	assert.Equal(t, 1, rows[1].KeywordCount)
}

func TestSummarizeThemes_CapsTopKeywords(t *testing.T) {
	bound := make([]keywords.Keyword, 15)
	for i := range bound {
		bound[i] = keywords.Keyword{Term: "login", Weight: float64(15 - i)}
	}
	binding := themes.Binding{"Account Access Issues": bound}

	rows := SummarizeThemes("CBE", binding)
	require.Len(t, rows, 1)
	assert.Equal(t, 15, rows[0].KeywordCount)

	commas := 0
	for _, r := range rows[0].TopKeywords {
		if r == ',' {
			commas++
		}
	}
	assert.Equal(t, 9, commas, "top keywords list is capped at ten terms")
}

func TestComputeInsights(t *testing.T) {
	tagged := func(rating int, tags ...string) review.Review {
		r := mkReview("CBE", rating, sentiment.Neutral, 0.0)
		r.Themes = tags
		return r
	}

	reviews := []review.Review{
		tagged(5, "User Interface & Experience"),
		tagged(5, "User Interface & Experience", "Transaction Performance"),
		tagged(4, "User Interface & Experience"),
		tagged(1, "App Reliability & Bugs", "Account Access Issues"),
		tagged(2, "App Reliability & Bugs"),
		tagged(1, themes.OtherTheme),
		tagged(3, "Customer Support"), // mid rating, neither driver nor pain
	}
	// A different bank's reviews must not leak in.
	foreign := mkReview("BOA", 5, sentiment.Positive, 0.9)
	foreign.Themes = []string{"Customer Support"}
	reviews = append(reviews, foreign)

	got := ComputeInsights("CBE", reviews)

	require.NotEmpty(t, got.Drivers)
	assert.Equal(t, "User Interface & Experience", got.Drivers[0].Theme)
	assert.Equal(t, 3, got.Drivers[0].Count)

	require.NotEmpty(t, got.PainPoints)
	assert.Equal(t, "App Reliability & Bugs", got.PainPoints[0].Theme)
	assert.Equal(t, 2, got.PainPoints[0].Count)

	for _, m := range append(got.Drivers, got.PainPoints...) {
		assert.NotEqual(t, themes.OtherTheme, m.Theme)
		assert.NotEqual(t, "Customer Support", m.Theme)
	}
}

func TestRankMentions_TiesFollowTaxonomyOrder(t *testing.T) {
	counts := map[string]int{
		"Customer Support":      2,
		"Account Access Issues": 2,
		"Feature Requests":      5,
	}

	mentions := rankMentions(counts)
	require.Len(t, mentions, 3)
	assert.Equal(t, "Feature Requests", mentions[0].Theme)
	assert.Equal(t, "Account Access Issues", mentions[1].Theme)
	assert.Equal(t, "Customer Support", mentions[2].Theme)
}
