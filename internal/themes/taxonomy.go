// Package themes maps extracted keywords onto a fixed taxonomy of review
// themes and tags individual reviews with the themes whose keywords they
// contain.
package themes

// OtherTheme is assigned to any review no taxonomy theme matches.
const OtherTheme = "Other"

// Theme is one entry of the fixed taxonomy: a name and the ordered seed
// terms that pull extracted keywords into it.
type Theme struct {
	Name  string
	Seeds []string
}

// Taxonomy is the fixed, ordered list of themes for banking-app reviews.
// Order matters twice: it is the binding priority (an earlier theme claims
// a keyword before a later one can) and the display order of per-review
// tags.
var Taxonomy = []Theme{
	{
		Name: "Account Access Issues",
		Seeds: []string{
			"login", "access", "password", "authentication", "authorization",
			"offline", "connection", "network", "error", "failed", "blocked",
			"uninstall", "device", "register", "activate",
		},
	},
	{
		Name: "Transaction Performance",
		Seeds: []string{
			"transfer", "payment", "transaction", "slow", "fast", "speed",
			"delay", "timeout", "processing", "complete", "success", "fail",
			"wallet", "send", "receive", "money",
		},
	},
	{
		Name: "User Interface & Experience",
		Seeds: []string{
			"ui", "interface", "design", "layout", "user", "friendly",
			"easy", "simple", "complex", "confusing", "navigation",
			"screen", "button", "feature", "functionality",
		},
	},
	{
		Name: "App Reliability & Bugs",
		Seeds: []string{
			"crash", "bug", "error", "issue", "problem", "glitch",
			"freeze", "hang", "stuck", "loading", "spinning", "down",
			"unreliable", "broken", "not work", "doesn't work",
		},
	},
	{
		Name: "Customer Support",
		Seeds: []string{
			"support", "help", "service", "contact", "branch", "visit",
			"assistance", "response", "complaint", "feedback",
		},
	},
	{
		Name: "Security & Privacy",
		Seeds: []string{
			"security", "safe", "secure", "privacy", "data", "protection",
			"screenshot", "restriction", "policy", "authorization",
		},
	},
	{
		Name: "Feature Requests",
		Seeds: []string{
			"feature", "request", "add", "need", "want", "missing",
			"suggestion", "improve", "enhance", "wish", "would like",
			"should have", "could have", "multiple account",
		},
	},
}

// Names returns the taxonomy theme names in declaration order.
func Names() []string {
	names := make([]string, len(Taxonomy))
	for i, t := range Taxonomy {
		names[i] = t.Name
	}
	return names
}
