package schedule

import (
	"testing"
	"time"
)

// buildPostseason lays out a regular season for six teams followed by
// three rounds: six teams, then four, then the last two.
func buildPostseason() []Cell {
	b := &seasonBuilder{}
	regular := span(day(1975, time.April, 7), day(1975, time.September, 28))
	for teamID := 1; teamID <= 6; teamID++ {
		b.played(teamID, regular...)
	}

	firstRound := span(day(1975, time.October, 1), day(1975, time.October, 6))
	for teamID := 1; teamID <= 6; teamID++ {
		b.played(teamID, firstRound...)
	}

	secondRound := span(day(1975, time.October, 9), day(1975, time.October, 14))
	for teamID := 1; teamID <= 4; teamID++ {
		b.played(teamID, secondRound...)
	}

	finals := span(day(1975, time.October, 17), day(1975, time.October, 23))
	for teamID := 1; teamID <= 2; teamID++ {
		b.played(teamID, finals...)
	}
	return b.cells
}

func TestDetectPlayoffSpans(t *testing.T) {
	set, err := Detect(NewGrid(buildPostseason()), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	// All six teams play the first round, so those dates read as full
	// slates and the final day lands on its last date.
	if !set.FinalDay.Equal(day(1975, time.October, 6)) {
		t.Errorf("final day = %s, want 1975-10-06", set.FinalDay.Format("2006-01-02"))
	}

	if len(set.PlayoffSpans) == 0 {
		t.Fatal("expected playoff spans")
	}

	rounds := make(map[string]PlayoffSpan)
	for _, s := range set.PlayoffSpans {
		rounds[s.Round] = s
	}
	if _, ok := rounds["first_round"]; ok {
		t.Error("first round should be absorbed into the regular season here")
	}

	second, ok := rounds["second_round"]
	if !ok {
		t.Fatalf("missing second round: %+v", set.PlayoffSpans)
	}
	if !second.Start.Equal(day(1975, time.October, 9)) || second.Days != 6 {
		t.Errorf("unexpected second round: %+v", second)
	}

	finals, ok := rounds["finals"]
	if !ok {
		t.Fatalf("missing finals: %+v", set.PlayoffSpans)
	}
	if !finals.Start.Equal(day(1975, time.October, 17)) || !finals.End.Equal(day(1975, time.October, 23)) {
		t.Errorf("unexpected finals: %+v", finals)
	}
}

func TestShortRoundIsDropped(t *testing.T) {
	b := &seasonBuilder{}
	regular := span(day(1975, time.April, 7), day(1975, time.September, 28))
	for teamID := 1; teamID <= 6; teamID++ {
		b.played(teamID, regular...)
	}
	// A two-day exhibition for four clubs, then a real seven-day finals.
	for teamID := 1; teamID <= 4; teamID++ {
		b.played(teamID, span(day(1975, time.October, 1), day(1975, time.October, 2))...)
	}
	for teamID := 1; teamID <= 2; teamID++ {
		b.played(teamID, span(day(1975, time.October, 10), day(1975, time.October, 16))...)
	}

	set, err := Detect(NewGrid(b.cells), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	for _, s := range set.PlayoffSpans {
		if s.Round == "second_round" {
			t.Fatalf("two-day round should have been dropped: %+v", s)
		}
	}

	rounds := make(map[string]PlayoffSpan)
	for _, s := range set.PlayoffSpans {
		rounds[s.Round] = s
	}
	finals, ok := rounds["finals"]
	if !ok {
		t.Fatalf("expected finals despite the dropped round: %+v", set.PlayoffSpans)
	}
	if !finals.Start.Equal(day(1975, time.October, 10)) {
		t.Errorf("finals start = %s, want 1975-10-10", finals.Start.Format("2006-01-02"))
	}
}

func TestNoPlayoffsDetected(t *testing.T) {
	b := &seasonBuilder{}
	for teamID := 1; teamID <= 4; teamID++ {
		b.played(teamID, span(day(1975, time.April, 7), day(1975, time.September, 28))...)
	}
	set, err := Detect(NewGrid(b.cells), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(set.PlayoffSpans) != 0 {
		t.Errorf("expected no playoff spans, got %+v", set.PlayoffSpans)
	}
}
