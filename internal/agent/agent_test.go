package agent

import "testing"

func TestKeywordPredicateMatch(t *testing.T) {
	p := NewKeywordPredicate([]string{"how many", "Events", " count "})

	tests := []struct {
		query string
		want  bool
	}{
		{"How many registrations?", true},
		{"Upcoming EVENTS this week", true},
		{"give me the count", true},
		{"tell me a story", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := p.Match(tt.query); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestKeywordPredicateEmptyTable(t *testing.T) {
	p := NewKeywordPredicate(nil)
	if p.Match("anything") {
		t.Fatal("empty table must match nothing")
	}
}
