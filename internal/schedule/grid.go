// Package schedule mines season-level structural events out of the
// team-by-date played grid: opening and final day, the All-Star break,
// playoff round spans, rest distribution, and brutal stretches.
package schedule

import (
	"sort"
	"time"
)

// Cell is one team-by-date entry of the played grid. HomeGame and
// OpponentID are populated when the source cell carries them.
type Cell struct {
	TeamID     int       `json:"team_id"`
	Date       time.Time `json:"date"`
	Played     bool      `json:"played"`
	HomeGame   *bool     `json:"home_game,omitempty"`
	OpponentID *int      `json:"opponent_id,omitempty"`
}

// Grid indexes played cells for date and team queries. Built once per
// run from the extractor's rows; read-only afterwards.
type Grid struct {
	played  map[int]map[int64]bool
	byDate  map[int64]map[int]bool
	teamIDs []int
}

func dayKey(d time.Time) int64 {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Unix()
}

func keyDay(k int64) time.Time {
	return time.Unix(k, 0).UTC()
}

// NewGrid builds a Grid from extractor cells. Cells marked not played
// still register the team so idle clubs keep their identity.
func NewGrid(cells []Cell) *Grid {
	g := &Grid{
		played: make(map[int]map[int64]bool),
		byDate: make(map[int64]map[int]bool),
	}
	for _, c := range cells {
		if _, ok := g.played[c.TeamID]; !ok {
			g.played[c.TeamID] = make(map[int64]bool)
			g.teamIDs = append(g.teamIDs, c.TeamID)
		}
		if !c.Played {
			continue
		}
		k := dayKey(c.Date)
		g.played[c.TeamID][k] = true
		if _, ok := g.byDate[k]; !ok {
			g.byDate[k] = make(map[int]bool)
		}
		g.byDate[k][c.TeamID] = true
	}
	sort.Ints(g.teamIDs)
	return g
}

// Teams returns all team IDs present in the grid, ascending.
func (g *Grid) Teams() []int {
	return g.teamIDs
}

// PlayedOn reports whether a team played on a date.
func (g *Grid) PlayedOn(teamID int, d time.Time) bool {
	return g.played[teamID][dayKey(d)]
}

// TeamsPlaying returns how many distinct teams played on a date.
func (g *Grid) TeamsPlaying(d time.Time) int {
	return len(g.byDate[dayKey(d)])
}

// PlayedDates returns every date with at least one game, ascending.
func (g *Grid) PlayedDates() []time.Time {
	keys := make([]int64, 0, len(g.byDate))
	for k := range g.byDate {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]time.Time, len(keys))
	for i, k := range keys {
		out[i] = keyDay(k)
	}
	return out
}

// Empty reports whether the grid holds no cells at all.
func (g *Grid) Empty() bool {
	return len(g.teamIDs) == 0
}

// daysBetween returns every calendar date in [start, end] inclusive.
func daysBetween(start, end time.Time) []time.Time {
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
