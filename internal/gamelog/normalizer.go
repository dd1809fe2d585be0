// Package gamelog turns raw per-game score rows into the per-team-per-game
// ledger that the calendar and series stages consume.
package gamelog

import (
	"fmt"
	"sort"
	"time"

	"github.com/fortuna/pennant/internal/runerr"
)

// GameRecord is one played game as the extractor reports it. Records are
// immutable once produced.
type GameRecord struct {
	GameID     string    `json:"game_id"`
	SeasonYear int       `json:"season_year"`
	LeagueID   int       `json:"league_id"`
	Date       time.Time `json:"date"`
	HomeTeamID int       `json:"home_team_id"`
	AwayTeamID int       `json:"away_team_id"`
	HomeRuns   int       `json:"home_runs"`
	AwayRuns   int       `json:"away_runs"`
}

// TeamGameEntry is one team's perspective of a game. Win is nil for a tie.
type TeamGameEntry struct {
	GameID      string    `json:"game_id"`
	TeamID      int       `json:"team_id"`
	OpponentID  int       `json:"opponent_id"`
	Date        time.Time `json:"date"`
	RunsFor     int       `json:"runs_for"`
	RunsAgainst int       `json:"runs_against"`
	Win         *bool     `json:"win"`
	IsHome      bool      `json:"is_home"`
}

// RunDiff returns runs for minus runs against.
func (e TeamGameEntry) RunDiff() int {
	return e.RunsFor - e.RunsAgainst
}

// Normalize derives the season ledger from game records: exactly two
// mirrored entries per game. Pure function; the input slice is not
// modified and the output is sorted by date, then game ID, then team ID
// so repeated runs produce identical ledgers.
func Normalize(games []GameRecord) ([]TeamGameEntry, error) {
	if err := validate(games); err != nil {
		return nil, err
	}

	ledger := make([]TeamGameEntry, 0, 2*len(games))
	for _, g := range games {
		homeWin := winFlag(g.HomeRuns, g.AwayRuns)
		awayWin := winFlag(g.AwayRuns, g.HomeRuns)
		ledger = append(ledger,
			TeamGameEntry{
				GameID:      g.GameID,
				TeamID:      g.HomeTeamID,
				OpponentID:  g.AwayTeamID,
				Date:        g.Date,
				RunsFor:     g.HomeRuns,
				RunsAgainst: g.AwayRuns,
				Win:         homeWin,
				IsHome:      true,
			},
			TeamGameEntry{
				GameID:      g.GameID,
				TeamID:      g.AwayTeamID,
				OpponentID:  g.HomeTeamID,
				Date:        g.Date,
				RunsFor:     g.AwayRuns,
				RunsAgainst: g.HomeRuns,
				Win:         awayWin,
				IsHome:      false,
			},
		)
	}

	sort.SliceStable(ledger, func(i, j int) bool {
		a, b := ledger[i], ledger[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		return a.TeamID < b.TeamID
	})
	return ledger, nil
}

// validate rejects structurally broken records: a team playing itself or
// negative run totals. All offenders are enumerated in one error.
func validate(games []GameRecord) error {
	var selfGames, negativeRuns []string
	for _, g := range games {
		if g.HomeTeamID == g.AwayTeamID {
			selfGames = append(selfGames, gameKey(g))
		}
		if g.HomeRuns < 0 || g.AwayRuns < 0 {
			negativeRuns = append(negativeRuns, gameKey(g))
		}
	}
	if len(selfGames) > 0 {
		return &runerr.ConsistencyError{Check: "home_team != away_team", Keys: selfGames}
	}
	if len(negativeRuns) > 0 {
		return &runerr.ConsistencyError{Check: "runs >= 0", Keys: negativeRuns}
	}
	return nil
}

func gameKey(g GameRecord) string {
	return fmt.Sprintf("%s (%d@%d %s)", g.GameID, g.AwayTeamID, g.HomeTeamID, g.Date.Format("2006-01-02"))
}

// winFlag returns true/false for a decided game, nil for a tie.
func winFlag(runsFor, runsAgainst int) *bool {
	if runsFor == runsAgainst {
		return nil
	}
	w := runsFor > runsAgainst
	return &w
}
