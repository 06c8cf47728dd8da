package sentiment

import (
	"math"
	"strings"
)

// Neutral band: compound scores within ±0.05 of zero are neutral.
const neutralBand = 0.05

// valence maps sentiment-bearing words to a signed strength. Values follow
// the usual valence-lexicon scale of roughly -4 to +4, curated for the
// vocabulary of app-store reviews.
var valence = map[string]float64{
	"amazing": 3.0, "awesome": 3.1, "excellent": 2.7, "fantastic": 2.6,
	"great": 2.5, "good": 1.9, "love": 2.9, "loved": 2.5, "best": 3.2,
	"nice": 1.8, "perfect": 2.7, "helpful": 1.9, "fast": 1.7,
	"easy": 1.9, "convenient": 1.9, "smooth": 1.7, "reliable": 2.0,
	"simple": 1.4, "friendly": 1.9, "secure": 1.6, "works": 1.3,
	"working": 1.2, "improved": 1.6, "like": 1.5, "happy": 2.1,
	"thanks": 1.8, "thank": 1.8, "useful": 1.8, "wonderful": 2.7,

	"bad": -2.5, "worst": -3.1, "terrible": -3.0, "horrible": -2.9,
	"awful": -2.7, "poor": -2.1, "useless": -2.4, "hate": -2.7,
	"crash": -2.3, "crashes": -2.3, "crashing": -2.3, "crashed": -2.3,
	"bug": -1.8, "bugs": -1.8, "buggy": -2.1, "slow": -1.7,
	"broken": -2.2, "error": -1.7, "errors": -1.7, "fail": -2.1,
	"failed": -2.1, "fails": -2.1, "failure": -2.2, "problem": -1.7,
	"problems": -1.7, "issue": -1.4, "issues": -1.4, "annoying": -2.0,
	"frustrating": -2.2, "disappointed": -2.2, "disappointing": -2.2,
	"stuck": -1.7, "freeze": -1.9, "freezes": -1.9, "frozen": -1.9,
	"waste": -2.1, "wrong": -1.6, "difficult": -1.5, "confusing": -1.6,
	"complicated": -1.4, "scam": -3.0, "stupid": -2.3,
	"unreliable": -2.2, "uninstall": -1.9, "uninstalled": -1.9,
}

// negators flip the valence of a following sentiment word.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "cant": true, "cannot": true,
	"dont": true, "doesnt": true, "didnt": true, "wont": true,
	"isnt": true, "wasnt": true, "couldnt": true, "without": true,
}

// negationScale dampens a flipped valence; "not good" is negative but
// weaker than "bad".
const negationScale = 0.74

// LexiconClassifier scores text with a valence lexicon and simple
// negation handling, normalizing the summed valence into [-1, 1] the way
// compound scoring does. It is the built-in stand-in for a pretrained
// model and needs no external resources.
type LexiconClassifier struct{}

// NewLexiconClassifier returns the built-in lexicon classifier.
func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{}
}

// Classify computes a compound valence score for the text and maps it to
// positive/negative/neutral with the ±0.05 neutral band. The returned
// confidence is the absolute compound score.
func (c *LexiconClassifier) Classify(text string) (Result, error) {
	tokens := splitTokens(text)

	var sum float64
	for i, tok := range tokens {
		v, ok := valence[tok]
		if !ok {
			continue
		}
		// Look back up to two tokens for a negator.
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			if negators[tokens[j]] {
				v = -v * negationScale
				break
			}
		}
		sum += v
	}

	// Normalize into [-1, 1]; the constant keeps short texts from
	// saturating on a single strong word.
	compound := sum / math.Sqrt(sum*sum+15)

	switch {
	case compound >= neutralBand:
		return Result{Label: Positive, Score: compound}, nil
	case compound <= -neutralBand:
		return Result{Label: Negative, Score: math.Abs(compound)}, nil
	default:
		return Result{Label: Neutral, Score: math.Abs(compound)}, nil
	}
}

// splitTokens lowercases and splits text on non-letter boundaries,
// folding apostrophes so "doesn't" matches the negator list.
func splitTokens(text string) []string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, "’", "")

	return strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	})
}
