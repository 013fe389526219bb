package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"metric keyword", "What is the current DPI of the fund?", IntentCalculation},
		{"irr keyword", "Give me the IRR for Q3", IntentCalculation},
		{"performance keyword", "How has performance been this year", IntentCalculation},
		{"definition question", "What does TVPI mean?", IntentCalculation}, // "tvpi" outranks "mean"
		{"pure definition", "Define a clawback provision", IntentDefinition},
		{"explain", "Explain the waterfall structure", IntentDefinition},
		{"show me", "Show me the distributions from March", IntentRetrieval},
		{"how many", "How many portfolio companies were added?", IntentRetrieval},
		{"fallback", "Thanks, that was helpful", IntentGeneral},
		{"empty query", "", IntentGeneral},
		{"priority order", "calculate the IRR and list all distributions", IntentCalculation},
		{"case insensitive", "CALCULATE THE DPI", IntentCalculation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	known := map[Intent]bool{
		IntentCalculation: true,
		IntentDefinition:  true,
		IntentRetrieval:   true,
		IntentGeneral:     true,
	}
	for _, q := range []string{"", "   ", "asdf", "何ですか", "a list of all ирр"} {
		if got := Classify(q); !known[got] {
			t.Errorf("Classify(%q) = %q, not one of the four labels", q, got)
		}
	}
}
