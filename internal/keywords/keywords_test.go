package keywords

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "crashes on login", Normalize("Crashes   on LOGIN!!"))
	assert.Equal(t, "check out", Normalize("check out https://example.com/page"))
	assert.Equal(t, "", Normalize("   ...   "))
}

func TestTFIDF_DocumentFrequencyBounds(t *testing.T) {
	// "transfer" appears in 2 of 10 docs, "rare" in 1, and "app" in all 10.
	texts := make([]string, 10)
	for i := range texts {
		texts[i] = "app banking mobile"
	}
	texts[0] += " transfer rare"
	texts[1] += " transfer"

	kws, err := NewTFIDFExtractor(100).Extract(texts)
	require.NoError(t, err)

	terms := make(map[string]bool)
	for _, kw := range kws {
		terms[kw.Term] = true
	}

	assert.True(t, terms["transfer"], "df=2 term should survive")
	assert.False(t, terms["rare"], "df=1 term should be discarded")
	assert.False(t, terms["app"], "df=100%% term should be discarded")
}

func TestTFIDF_SortedDescending(t *testing.T) {
	texts := []string{
		"transfer money fast",
		"transfer failed again",
		"transfer delay payment",
		"login screen froze",
		"login blocked me",
	}

	kws, err := NewTFIDFExtractor(100).Extract(texts)
	require.NoError(t, err)
	require.NotEmpty(t, kws)

	for i := 1; i < len(kws); i++ {
		assert.GreaterOrEqual(t, kws[i-1].Weight, kws[i].Weight,
			"keywords must be sorted descending by weight")
	}
	for _, kw := range kws {
		assert.GreaterOrEqual(t, kw.Weight, 0.0)
	}
}

func TestTFIDF_IncludesBigrams(t *testing.T) {
	texts := []string{
		"customer service terrible",
		"customer service slow",
		"customer service never responds",
		"nice interface design",
		"nice interface overall",
	}

	kws, err := NewTFIDFExtractor(100).Extract(texts)
	require.NoError(t, err)

	var foundBigram bool
	for _, kw := range kws {
		if kw.Term == "customer service" {
			foundBigram = true
		}
	}
	assert.True(t, foundBigram, "expected bigram 'customer service' in %v", kws)
}

func TestTFIDF_FailsOnTinyCorpus(t *testing.T) {
	_, err := NewTFIDFExtractor(100).Extract([]string{"only one document"})
	assert.Error(t, err)

	_, err = NewTFIDFExtractor(100).Extract(nil)
	assert.Error(t, err)

	// Two docs with no shared terms: nothing reaches df >= 2.
	_, err = NewTFIDFExtractor(100).Extract([]string{"alpha bravo", "charlie delta"})
	assert.Error(t, err)
}

func TestTFIDF_MaxFeaturesCap(t *testing.T) {
	texts := []string{
		"transfer money payment wallet send receive",
		"transfer money payment wallet send receive",
		"login password network device register activate",
		"login password network device register activate",
	}

	kws, err := NewTFIDFExtractor(5).Extract(texts)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(kws), 5)
}

func TestFrequencyExtractor_CountsLemmas(t *testing.T) {
	texts := []string{
		"app crashes constantly",
		"app crashed yesterday",
		"crashing again today",
	}

	kws, err := NewFrequencyExtractor(50).Extract(texts)
	require.NoError(t, err)

	weights := make(map[string]float64)
	for _, kw := range kws {
		weights[kw.Term] = kw.Weight
	}
	assert.Equal(t, 3.0, weights["crash"], "all crash inflections should fold to one lemma: %v", kws)
}

func TestFrequencyExtractor_EmptyCorpus(t *testing.T) {
	_, err := NewFrequencyExtractor(50).Extract([]string{"", "   "})
	assert.Error(t, err)
}

func TestLemmatize(t *testing.T) {
	cases := map[string]string{
		"crashes":  "crash",
		"bugs":     "bug",
		"loading":  "load",
		"delayed":  "delay",
		"stopping": "stop",
		"policies": "policy",
		"access":   "access",
		"slow":     "slow",
	}
	for input, want := range cases {
		assert.Equal(t, want, Lemmatize(input), "Lemmatize(%q)", input)
	}
}

func TestExtract_FallsBackToFrequency(t *testing.T) {
	// One document: TF-IDF cannot run, frequency can.
	kws := Extract([]string{"app keeps crashing and crashing"})
	require.NotEmpty(t, kws, "fallback strategy should produce keywords")
}

func TestExtract_EmptyCorpusReturnsNil(t *testing.T) {
	assert.Empty(t, Extract(nil))
	assert.Empty(t, Extract([]string{"", ""}))
}

// failingStrategy always errors, for exercising the chain order.
type failingStrategy struct{}

func (failingStrategy) Name() string { return "failing" }
func (failingStrategy) Extract([]string) ([]Keyword, error) {
	return nil, fmt.Errorf("always fails")
}

func TestExtractWith_TriesStrategiesInOrder(t *testing.T) {
	kws := ExtractWith(
		[]Strategy{failingStrategy{}, NewFrequencyExtractor(10)},
		[]string{"transfer failed", "transfer failed"},
	)
	require.NotEmpty(t, kws)
}
