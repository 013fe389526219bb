package extract

import "strings"

// TableType labels the financial nature of an extracted table.
type TableType string

const (
	TableCapitalCall  TableType = "capital_call"
	TableDistribution TableType = "distribution"
	TableAdjustment   TableType = "adjustment"
	TableUnknown      TableType = "unknown"
)

type classifierRule struct {
	label    TableType
	keywords []string
}

// Rules are checked in order; the first label with a keyword hit wins.
// A table mentioning both "capital" and "distribution" is a capital call.
var classifierRules = []classifierRule{
	{TableCapitalCall, []string{"capital", "commitment", "call"}},
	{TableDistribution, []string{"distribution", "payout"}},
	{TableAdjustment, []string{"adjustment", "reconciliation"}},
}

// Classify labels a table grid by keyword membership over its flattened,
// lowercased cell content. Pure function, deterministic.
func Classify(grid Grid) TableType {
	var flat strings.Builder
	for _, row := range grid {
		for _, cell := range row {
			if cell == nil || *cell == "" {
				continue
			}
			if flat.Len() > 0 {
				flat.WriteByte(' ')
			}
			flat.WriteString(*cell)
		}
	}

	content := strings.ToLower(flat.String())
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(content, kw) {
				return rule.label
			}
		}
	}
	return TableUnknown
}
