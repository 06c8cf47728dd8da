package themes

import (
	"sort"
	"strings"

	"github.com/blackwell-systems/reviewlens/internal/keywords"
)

// Binding maps theme names to the keywords bound to them for one bank's
// corpus. Lists are sorted descending by weight; themes with no bound
// keywords are absent.
type Binding map[string][]keywords.Keyword

// BindKeywords assigns each extracted keyword to at most one theme,
// scanning the taxonomy in order so that earlier themes claim keywords
// first. A seed term matches a keyword on exact equality or when either
// contains the other as a substring. The result is deterministic and
// idempotent for a given keyword ranking.
func BindKeywords(kws []keywords.Keyword) Binding {
	weightByTerm := make(map[string]float64, len(kws))
	for _, kw := range kws {
		term := strings.ToLower(kw.Term)
		if _, ok := weightByTerm[term]; !ok {
			weightByTerm[term] = kw.Weight
		}
	}

	binding := make(Binding)
	claimed := make(map[string]bool, len(kws))

	for _, theme := range Taxonomy {
		var bound []keywords.Keyword

		for _, seed := range theme.Seeds {
			seed = strings.ToLower(seed)

			// Exact match against the extracted vocabulary.
			if w, ok := weightByTerm[seed]; ok && !claimed[seed] {
				bound = append(bound, keywords.Keyword{Term: seed, Weight: w})
				claimed[seed] = true
			}

			// Substring match in either direction.
			for _, kw := range kws {
				term := strings.ToLower(kw.Term)
				if claimed[term] {
					continue
				}
				if strings.Contains(term, seed) || strings.Contains(seed, term) {
					bound = append(bound, keywords.Keyword{Term: term, Weight: kw.Weight})
					claimed[term] = true
				}
			}
		}

		if len(bound) == 0 {
			continue
		}
		sort.SliceStable(bound, func(i, j int) bool {
			return bound[i].Weight > bound[j].Weight
		})
		binding[theme.Name] = bound
	}

	return binding
}

// TagReview returns the themes whose bound keywords appear as substrings
// of the review text. Unlike binding, tagging is not exclusive: a review
// may match any number of themes, one keyword hit per theme sufficing.
// Empty text or zero matches yields just OtherTheme. Results follow
// taxonomy declaration order.
func TagReview(text string, binding Binding) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return []string{OtherTheme}
	}

	var matched []string
	for _, theme := range Taxonomy {
		bound, ok := binding[theme.Name]
		if !ok {
			continue
		}
		for _, kw := range bound {
			if strings.Contains(text, strings.ToLower(kw.Term)) {
				matched = append(matched, theme.Name)
				break
			}
		}
	}

	if len(matched) == 0 {
		return []string{OtherTheme}
	}
	return matched
}
