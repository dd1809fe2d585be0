package schedule

import (
	"sort"
	"time"
)

// TeamRest is one team's off-day profile within the regular season.
type TeamRest struct {
	TeamID  int `json:"team_id"`
	Games   int `json:"games"`
	OffDays int `json:"off_days"`
	Rank    int `json:"rank"`
}

// Stretch is a team's densest fixed-size scheduling window.
type Stretch struct {
	TeamID     int       `json:"team_id"`
	Games      int       `json:"games"`
	WindowDays int       `json:"window_days"`
	OffDays    int       `json:"off_days"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// restDistribution ranks teams by regular-season off-days and returns the
// topN most-rested and least-rested clubs. Ties break by team ID
// ascending so reruns order identically.
func restDistribution(grid *Grid, opening, final time.Time, topN int) (most, least []TeamRest) {
	days := daysBetween(opening, final)
	rests := make([]TeamRest, 0, len(grid.Teams()))
	for _, teamID := range grid.Teams() {
		r := TeamRest{TeamID: teamID}
		for _, d := range days {
			if grid.PlayedOn(teamID, d) {
				r.Games++
			} else {
				r.OffDays++
			}
		}
		rests = append(rests, r)
	}

	byOffDays := func(desc bool) []TeamRest {
		out := append([]TeamRest(nil), rests...)
		sort.Slice(out, func(i, j int) bool {
			if out[i].OffDays != out[j].OffDays {
				if desc {
					return out[i].OffDays > out[j].OffDays
				}
				return out[i].OffDays < out[j].OffDays
			}
			return out[i].TeamID < out[j].TeamID
		})
		if len(out) > topN {
			out = out[:topN]
		}
		for i := range out {
			out[i].Rank = i + 1
		}
		return out
	}
	return byOffDays(true), byOffDays(false)
}

// brutalStretches slides a fixed window across each team's played/idle
// sequence with a running sum, keeps each team's single best window, and
// reports the league's worst stretches: games descending, then fewest
// off-days, then earliest start.
func brutalStretches(grid *Grid, opening, final time.Time, cfg Config) []Stretch {
	days := daysBetween(opening, final)
	window := cfg.StretchWindowDays
	if len(days) < window {
		return nil
	}

	var stretches []Stretch
	for _, teamID := range grid.Teams() {
		vals := make([]int, len(days))
		for i, d := range days {
			if grid.PlayedOn(teamID, d) {
				vals[i] = 1
			}
		}

		sum := 0
		for i := 0; i < window; i++ {
			sum += vals[i]
		}
		best, bestStart := sum, 0
		for start := 1; start <= len(vals)-window; start++ {
			sum += vals[start+window-1] - vals[start-1]
			if sum > best {
				best = sum
				bestStart = start
			}
		}

		if best >= cfg.StretchMinGames {
			stretches = append(stretches, Stretch{
				TeamID:     teamID,
				Games:      best,
				WindowDays: window,
				OffDays:    window - best,
				StartDate:  days[bestStart],
				EndDate:    days[bestStart+window-1],
			})
		}
	}

	sort.Slice(stretches, func(i, j int) bool {
		if stretches[i].Games != stretches[j].Games {
			return stretches[i].Games > stretches[j].Games
		}
		if stretches[i].OffDays != stretches[j].OffDays {
			return stretches[i].OffDays < stretches[j].OffDays
		}
		return stretches[i].StartDate.Before(stretches[j].StartDate)
	})
	if len(stretches) > cfg.StretchReportLimit {
		stretches = stretches[:cfg.StretchReportLimit]
	}
	return stretches
}
