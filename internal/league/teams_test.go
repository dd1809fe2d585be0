package league

import (
	"strings"
	"testing"
)

func referenceTeams() []Team {
	return []Team{
		{TeamID: 1, LeagueID: 1, Abbreviation: "ATL", City: "Atlanta", Nickname: "Kings"},
		{TeamID: 2, LeagueID: 1, Abbreviation: "BOS", City: "Boston", Nickname: "Harbormen"},
		{TeamID: 3, LeagueID: 1, Abbreviation: "CHI", City: "Chicago", Nickname: "Blues"},
	}
}

func TestResolveAliases(t *testing.T) {
	idx, err := NewIndex(referenceTeams())
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	tests := []struct {
		label  string
		teamID int
	}{
		{"ATL", 1},
		{"atl", 1},
		{"Atlanta", 1},
		{"Atlanta Kings", 1},
		{"  Atlanta  Kings ", 1},
		{"Atlanta(Georgia)", 1},
		{"Kings (ATL)", 1},
		{"BOS", 2},
		{"Harbormen", 2},
		{"Chicago Blues", 3},
	}

	for _, tt := range tests {
		team, err := idx.Resolve(tt.label)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", tt.label, err)
			continue
		}
		if team.TeamID != tt.teamID {
			t.Errorf("Resolve(%q) = team %d, want %d", tt.label, team.TeamID, tt.teamID)
		}
	}
}

func TestResolveUnknownLabelFails(t *testing.T) {
	idx, err := NewIndex(referenceTeams())
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	if _, err := idx.Resolve("Denver Peaks"); err == nil {
		t.Error("expected error for unknown label")
	}
	if _, err := idx.Resolve("   "); err == nil {
		t.Error("expected error for blank label")
	}
}

func TestNewIndexRejectsAmbiguousAlias(t *testing.T) {
	teams := []Team{
		{TeamID: 1, Abbreviation: "NYK", City: "New York", Nickname: "Knights"},
		{TeamID: 2, Abbreviation: "NY", City: "New York", Nickname: "Sentinels"},
	}

	_, err := NewIndex(teams)
	if err == nil {
		t.Fatal("expected ambiguity error for shared city alias")
	}
	if !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewIndexRejectsDuplicateID(t *testing.T) {
	teams := []Team{
		{TeamID: 1, Abbreviation: "AAA", Nickname: "Alphas"},
		{TeamID: 1, Abbreviation: "BBB", Nickname: "Betas"},
	}
	if _, err := NewIndex(teams); err == nil {
		t.Fatal("expected error for duplicate team ID")
	}
}

func TestTeamsSortedByID(t *testing.T) {
	idx, err := NewIndex(referenceTeams())
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	teams := idx.Teams()
	for i := 1; i < len(teams); i++ {
		if teams[i-1].TeamID >= teams[i].TeamID {
			t.Fatalf("teams not sorted: %v", teams)
		}
	}
}
