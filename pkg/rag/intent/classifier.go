package intent

import "strings"

// Intent is the coarse purpose of a user query; it drives how the
// orchestrator blends retrieval with computed metrics.
type Intent string

const (
	IntentCalculation Intent = "calculation"
	IntentDefinition  Intent = "definition"
	IntentRetrieval   Intent = "retrieval"
	IntentGeneral     Intent = "general"
)

type rule struct {
	intent   Intent
	keywords []string
}

// Rules are checked in order; first hit wins. "calculate the IRR and
// list all distributions" is a calculation, not a retrieval.
var rules = []rule{
	{IntentCalculation, []string{
		"calculate", "what is the", "current", "dpi", "irr", "tvpi",
		"rvpi", "pic", "paid-in capital", "return", "performance",
	}},
	{IntentDefinition, []string{
		"what does", "mean", "define", "explain", "definition",
		"what is a", "what are",
	}},
	{IntentRetrieval, []string{
		"show me", "list", "all", "find", "search", "when",
		"how many", "which",
	}},
}

// Classify maps a query to exactly one intent. Pure function over the
// lowercased query; no scoring, no state.
func Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.intent
			}
		}
	}
	return IntentGeneral
}
