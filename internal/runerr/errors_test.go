package runerr

import (
	"strings"
	"testing"
)

func TestConsistencyErrorEnumeratesKeys(t *testing.T) {
	err := &ConsistencyError{
		Check: "home_team != away_team",
		Keys:  []string{"g2", "g1"},
	}
	msg := err.Error()
	if !strings.Contains(msg, "g1, g2") {
		t.Errorf("keys should be sorted and enumerated, got: %s", msg)
	}
	if !strings.Contains(msg, "home_team != away_team") {
		t.Errorf("check name missing from message: %s", msg)
	}
}

func TestRunSummaryRecord(t *testing.T) {
	s := &RunSummary{}
	s.Record(nil)
	s.Record(nil)
	s.Record(&ParseError{Table: "scoreboard", Row: "1975-04-09#2", Reason: "no R column"})

	if s.RowsSeen != 3 || s.RowsSkipped != 1 {
		t.Fatalf("unexpected tallies: %+v", s)
	}
	if s.SkipFraction() != 1.0/3.0 {
		t.Errorf("SkipFraction = %f", s.SkipFraction())
	}
}

func TestRunSummaryMerge(t *testing.T) {
	a := &RunSummary{RowsSeen: 10, RowsSkipped: 1, Skipped: []*ParseError{{Table: "a"}}}
	b := &RunSummary{RowsSeen: 5, RowsSkipped: 2, Skipped: []*ParseError{{Table: "b"}, {Table: "b"}}}

	a.Merge(b)
	a.Merge(nil)

	if a.RowsSeen != 15 || a.RowsSkipped != 3 || len(a.Skipped) != 3 {
		t.Errorf("merge wrong: %+v", a)
	}
}

func TestCheckBudget(t *testing.T) {
	tests := []struct {
		name    string
		seen    int
		skipped int
		max     float64
		wantErr bool
	}{
		{"under budget", 100, 4, 0.05, false},
		{"at budget", 100, 5, 0.05, false},
		{"over budget", 100, 6, 0.05, true},
		{"nothing seen", 0, 0, 0.05, false},
		{"zero budget all clean", 100, 0, 0, false},
		{"zero budget one skip", 100, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &RunSummary{RowsSeen: tt.seen, RowsSkipped: tt.skipped}
			err := s.CheckBudget(tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckBudget = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
