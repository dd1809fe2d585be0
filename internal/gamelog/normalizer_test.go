package gamelog

import (
	"errors"
	"testing"
	"time"

	"github.com/fortuna/pennant/internal/runerr"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeMirrorsEveryGame(t *testing.T) {
	games := []GameRecord{
		{GameID: "g2", SeasonYear: 1975, LeagueID: 1, Date: day(1975, time.April, 10), HomeTeamID: 3, AwayTeamID: 4, HomeRuns: 2, AwayRuns: 2},
		{GameID: "g1", SeasonYear: 1975, LeagueID: 1, Date: day(1975, time.April, 9), HomeTeamID: 1, AwayTeamID: 2, HomeRuns: 5, AwayRuns: 3},
	}

	ledger, err := Normalize(games)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(ledger) != 4 {
		t.Fatalf("expected 4 ledger entries, got %d", len(ledger))
	}

	// Sorted by date, so g1's two entries come first, home team before away.
	first := ledger[0]
	if first.GameID != "g1" || first.TeamID != 1 || !first.IsHome {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if first.Win == nil || !*first.Win {
		t.Errorf("home side of 5-3 game should be a win, got %v", first.Win)
	}
	second := ledger[1]
	if second.TeamID != 2 || second.IsHome {
		t.Errorf("unexpected second entry: %+v", second)
	}
	if second.Win == nil || *second.Win {
		t.Errorf("away side of 5-3 game should be a loss, got %v", second.Win)
	}
	if second.RunsFor != 3 || second.RunsAgainst != 5 {
		t.Errorf("away runs not mirrored: %+v", second)
	}
	if second.RunDiff() != -2 {
		t.Errorf("expected run diff -2, got %d", second.RunDiff())
	}

	// The tied game carries nil on both sides.
	for _, e := range ledger[2:] {
		if e.Win != nil {
			t.Errorf("tie should have nil Win, got %v for team %d", *e.Win, e.TeamID)
		}
	}
}

func TestNormalizeRejectsSelfGames(t *testing.T) {
	games := []GameRecord{
		{GameID: "bad1", Date: day(1975, time.May, 1), HomeTeamID: 7, AwayTeamID: 7, HomeRuns: 1, AwayRuns: 0},
		{GameID: "ok", Date: day(1975, time.May, 1), HomeTeamID: 1, AwayTeamID: 2, HomeRuns: 1, AwayRuns: 0},
		{GameID: "bad2", Date: day(1975, time.May, 2), HomeTeamID: 9, AwayTeamID: 9, HomeRuns: 4, AwayRuns: 4},
	}

	_, err := Normalize(games)
	var cerr *runerr.ConsistencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConsistencyError, got %v", err)
	}
	if len(cerr.Keys) != 2 {
		t.Errorf("expected both offending games enumerated, got %v", cerr.Keys)
	}
}

func TestNormalizeRejectsNegativeRuns(t *testing.T) {
	games := []GameRecord{
		{GameID: "neg", Date: day(1975, time.May, 3), HomeTeamID: 1, AwayTeamID: 2, HomeRuns: -1, AwayRuns: 3},
	}

	_, err := Normalize(games)
	var cerr *runerr.ConsistencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConsistencyError, got %v", err)
	}
	if cerr.Check != "runs >= 0" {
		t.Errorf("unexpected check name: %s", cerr.Check)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	games := []GameRecord{
		{GameID: "a", Date: day(1975, time.June, 1), HomeTeamID: 2, AwayTeamID: 1, HomeRuns: 3, AwayRuns: 1},
		{GameID: "b", Date: day(1975, time.June, 1), HomeTeamID: 4, AwayTeamID: 3, HomeRuns: 0, AwayRuns: 2},
	}
	reversed := []GameRecord{games[1], games[0]}

	first, err := Normalize(games)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	second, err := Normalize(reversed)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	for i := range first {
		if first[i].GameID != second[i].GameID || first[i].TeamID != second[i].TeamID {
			t.Fatalf("order differs at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
