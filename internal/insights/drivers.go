package insights

import (
	"sort"

	"github.com/blackwell-systems/reviewlens/internal/review"
	"github.com/blackwell-systems/reviewlens/internal/themes"
)

// ThemeMention is a theme with how many reviews in a filtered slice were
// tagged with it.
type ThemeMention struct {
	Theme string
	Count int
}

// BankInsights captures satisfaction drivers and pain points for one
// bank: the themes most mentioned in high-rating reviews and the themes
// most mentioned in low-rating reviews, respectively.
type BankInsights struct {
	Bank       string
	Drivers    []ThemeMention // from reviews rated 4-5
	PainPoints []ThemeMention // from reviews rated 1-2
}

// Rating cutoffs separating satisfied from dissatisfied reviewers.
const (
	driverMinRating    = 4
	painPointMaxRating = 2
)

// ComputeInsights derives drivers and pain points for a bank from its
// tagged reviews. "Other" tags are excluded since they carry no signal.
// Mentions are sorted by count descending, ties broken by taxonomy order.
func ComputeInsights(bank string, reviews []review.Review) BankInsights {
	drivers := make(map[string]int)
	pains := make(map[string]int)

	for _, r := range reviews {
		if r.Bank != bank {
			continue
		}
		for _, theme := range r.Themes {
			if theme == themes.OtherTheme {
				continue
			}
			if r.Rating >= driverMinRating {
				drivers[theme]++
			}
			if r.Rating <= painPointMaxRating {
				pains[theme]++
			}
		}
	}

	return BankInsights{
		Bank:       bank,
		Drivers:    rankMentions(drivers),
		PainPoints: rankMentions(pains),
	}
}

// rankMentions converts a theme→count map to a slice sorted by count
// descending, ties broken by taxonomy declaration order.
func rankMentions(counts map[string]int) []ThemeMention {
	order := make(map[string]int, len(themes.Taxonomy))
	for i, t := range themes.Taxonomy {
		order[t.Name] = i
	}

	mentions := make([]ThemeMention, 0, len(counts))
	for theme, c := range counts {
		mentions = append(mentions, ThemeMention{Theme: theme, Count: c})
	}
	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Count != mentions[j].Count {
			return mentions[i].Count > mentions[j].Count
		}
		return order[mentions[i].Theme] < order[mentions[j].Theme]
	})
	return mentions
}
