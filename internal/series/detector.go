// Package series clusters consecutive games between the same ordered
// (home, away) pair into discrete series and classifies each one.
package series

import (
	"fmt"
	"sort"
	"time"

	"github.com/fortuna/pennant/internal/gamelog"
)

// Config holds the clustering and classification thresholds.
type Config struct {
	// MaxLength caps how many games one series may hold.
	MaxLength int
	// DecisiveRunDiff is the aggregate run margin that marks a series
	// decisive.
	DecisiveRunDiff int
}

// DefaultConfig returns the standard 4-game / 10-run thresholds.
func DefaultConfig() Config {
	return Config{MaxLength: 4, DecisiveRunDiff: 10}
}

// Summary describes one detected series from the home club's side.
type Summary struct {
	SeriesID        string    `json:"series_id"`
	HomeTeamID      int       `json:"home_team_id"`
	AwayTeamID      int       `json:"away_team_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	NumGames        int       `json:"num_games"`
	GameIDs         []string  `json:"game_ids"`
	HomeWins        int       `json:"home_series_wins"`
	HomeLosses      int       `json:"home_series_losses"`
	HomeRuns        int       `json:"home_runs_scored"`
	HomeRunsAllowed int       `json:"home_runs_allowed"`
	HomeRunDiff     int       `json:"home_run_diff"`
	Sweep           bool      `json:"sweep"`
	AvoidedSweep    bool      `json:"avoided_sweep"`
	Split           bool      `json:"split"`
	Decisive        bool      `json:"decisive"`
}

// Detect walks each ordered (home, away) pair chronologically, closing a
// cluster whenever the date gap exceeds one day or the cluster is full.
// Single games are not series and are discarded. Dates compare by
// calendar day only; a back-to-back pair straddling midnight is treated
// as consecutive days, an accepted simplification.
func Detect(games []gamelog.GameRecord, cfg Config) []Summary {
	if cfg.MaxLength <= 0 {
		cfg = DefaultConfig()
	}

	byPair := make(map[[2]int][]gamelog.GameRecord)
	for _, g := range games {
		key := [2]int{g.HomeTeamID, g.AwayTeamID}
		byPair[key] = append(byPair[key], g)
	}

	pairs := make([][2]int, 0, len(byPair))
	for k := range byPair {
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	var summaries []Summary
	for _, pair := range pairs {
		group := byPair[pair]
		sort.Slice(group, func(i, j int) bool {
			if !group[i].Date.Equal(group[j].Date) {
				return group[i].Date.Before(group[j].Date)
			}
			return group[i].GameID < group[j].GameID
		})

		var cluster []gamelog.GameRecord
		flush := func() {
			if len(cluster) >= 2 {
				summaries = append(summaries, summarize(cluster, cfg))
			}
			cluster = nil
		}
		for _, g := range group {
			if len(cluster) > 0 {
				gap := int(g.Date.Sub(cluster[len(cluster)-1].Date).Hours() / 24)
				if gap > 1 || len(cluster) >= cfg.MaxLength {
					flush()
				}
			}
			cluster = append(cluster, g)
		}
		flush()
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].StartDate.Equal(summaries[j].StartDate) {
			return summaries[i].StartDate.Before(summaries[j].StartDate)
		}
		if summaries[i].HomeTeamID != summaries[j].HomeTeamID {
			return summaries[i].HomeTeamID < summaries[j].HomeTeamID
		}
		return summaries[i].AwayTeamID < summaries[j].AwayTeamID
	})
	return summaries
}

func summarize(cluster []gamelog.GameRecord, cfg Config) Summary {
	first := cluster[0]
	s := Summary{
		HomeTeamID: first.HomeTeamID,
		AwayTeamID: first.AwayTeamID,
		StartDate:  first.Date,
		EndDate:    cluster[len(cluster)-1].Date,
		NumGames:   len(cluster),
	}
	s.SeriesID = fmt.Sprintf("%d_%d_%s", s.HomeTeamID, s.AwayTeamID, s.StartDate.Format("20060102"))

	lastWinner := 0 // +1 home, -1 away, 0 tie
	for _, g := range cluster {
		s.GameIDs = append(s.GameIDs, g.GameID)
		s.HomeRuns += g.HomeRuns
		s.HomeRunsAllowed += g.AwayRuns
		switch {
		case g.HomeRuns > g.AwayRuns:
			s.HomeWins++
			lastWinner = 1
		case g.AwayRuns > g.HomeRuns:
			s.HomeLosses++
			lastWinner = -1
		default:
			lastWinner = 0
		}
	}
	s.HomeRunDiff = s.HomeRuns - s.HomeRunsAllowed

	awayWins := s.HomeLosses
	s.Sweep = s.HomeWins == s.NumGames || awayWins == s.NumGames
	s.Split = s.HomeWins == awayWins

	// Avoided sweep: the trailing club's only win came in the finale.
	if !s.Sweep {
		trailingWins, trailingSide := s.HomeWins, 1
		if awayWins < s.HomeWins {
			trailingWins, trailingSide = awayWins, -1
		}
		if trailingWins == 1 && lastWinner == trailingSide && !s.Split {
			s.AvoidedSweep = true
		}
	}

	if !s.Split && abs(s.HomeRunDiff) >= cfg.DecisiveRunDiff {
		s.Decisive = true
	}
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
