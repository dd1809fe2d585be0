package schedule

import (
	"fmt"
	"time"

	"github.com/fortuna/pennant/internal/runerr"
)

// Config carries the detection thresholds. Several of these are
// heuristics tuned to the league's historical schedule shape, so they
// stay configurable rather than inferred.
type Config struct {
	// PreseasonIdleRun is the league-wide idle run length that marks an
	// early played date as exhibition noise before opening day.
	PreseasonIdleRun int
	// AllStarMinIdleRun is the minimum July idle run to call a break.
	AllStarMinIdleRun int
	// PlayoffTeamThresholds are the distinct-team counts for the first
	// round, second round, and finals, in order.
	PlayoffTeamThresholds [3]int
	// PlayoffMinSpanDays is the minimum calendar length of a real span.
	PlayoffMinSpanDays int
	// RestTopN is how many teams to list on each end of the rest report.
	RestTopN int
	// StretchWindowDays and StretchMinGames define a brutal stretch.
	StretchWindowDays int
	StretchMinGames   int
	// StretchReportLimit caps the league-wide brutal-stretch report.
	StretchReportLimit int
}

// DefaultConfig returns the thresholds observed in league history.
func DefaultConfig() Config {
	return Config{
		PreseasonIdleRun:      3,
		AllStarMinIdleRun:     3,
		PlayoffTeamThresholds: [3]int{5, 3, 2},
		PlayoffMinSpanDays:    4,
		RestTopN:              3,
		StretchWindowDays:     15,
		StretchMinGames:       14,
		StretchReportLimit:    8,
	}
}

// AllStarWindow is the detected three-day break: derby, game, travel day.
type AllStarWindow struct {
	Derby  time.Time `json:"derby"`
	Game   time.Time `json:"game"`
	Travel time.Time `json:"travel"`
}

// EventSet is the full structural read of one season's schedule. AllStar
// is nil and PlayoffSpans may be empty when nothing was detected; both
// are legitimate outcomes, not errors.
type EventSet struct {
	OpeningDay      time.Time      `json:"opening_day"`
	FinalDay        time.Time      `json:"final_day"`
	AllStar         *AllStarWindow `json:"all_star_window"`
	PlayoffSpans    []PlayoffSpan  `json:"playoff_spans"`
	MostRest        []TeamRest     `json:"most_rest"`
	LeastRest       []TeamRest     `json:"least_rest"`
	BrutalStretches []Stretch      `json:"brutal_stretches"`
}

// Detect runs every schedule analysis over the grid. An empty grid or a
// grid with zero played dates is fatal; undetected All-Star breaks and
// playoff rounds are reported as absent, not failed.
func Detect(grid *Grid, cfg Config) (*EventSet, error) {
	if grid == nil || grid.Empty() {
		return nil, &runerr.MissingInputError{Table: "schedule_grid"}
	}
	playedDates := grid.PlayedDates()
	if len(playedDates) == 0 {
		return nil, fmt.Errorf("schedule grid has no played dates: %w",
			&runerr.MissingInputError{Table: "schedule_grid.played"})
	}

	opening := openingDay(playedDates, cfg.PreseasonIdleRun)
	final := finalDay(grid, playedDates, opening)

	set := &EventSet{
		OpeningDay: opening,
		FinalDay:   final,
		AllStar:    detectAllStar(grid, opening, final, cfg.AllStarMinIdleRun),
	}
	set.PlayoffSpans = detectPlayoffSpans(grid, final, cfg)
	set.MostRest, set.LeastRest = restDistribution(grid, opening, final, cfg.RestTopN)
	set.BrutalStretches = brutalStretches(grid, opening, final, cfg)
	return set, nil
}

// openingDay picks the first real played date. A leading date followed by
// a league-wide idle run of at least noiseRun days is treated as
// exhibition noise and skipped.
func openingDay(playedDates []time.Time, noiseRun int) time.Time {
	for i := 0; i < len(playedDates)-1; i++ {
		idle := int(playedDates[i+1].Sub(playedDates[i]).Hours()/24) - 1
		if idle >= noiseRun {
			continue
		}
		return playedDates[i]
	}
	return playedDates[len(playedDates)-1]
}

// finalDay is the latest full-slate date: the last date on which every
// team in the league played. Seasons that never produce a full slate
// fall back to the latest played date overall.
func finalDay(grid *Grid, playedDates []time.Time, opening time.Time) time.Time {
	teamCount := len(grid.Teams())
	for i := len(playedDates) - 1; i >= 0; i-- {
		d := playedDates[i]
		if d.Before(opening) {
			break
		}
		if grid.TeamsPlaying(d) == teamCount {
			return d
		}
	}
	return playedDates[len(playedDates)-1]
}

// detectAllStar looks for the longest run of league-wide idle days inside
// July of the season span. Ties between equally long runs go to the
// earlier run. Runs shorter than minRun yield no window.
func detectAllStar(grid *Grid, opening, final time.Time, minRun int) *AllStarWindow {
	var bestStart time.Time
	bestLen := 0

	var runStart time.Time
	runLen := 0
	flush := func() {
		if runLen > bestLen {
			bestLen = runLen
			bestStart = runStart
		}
		runLen = 0
	}

	for _, d := range daysBetween(opening, final) {
		if d.Month() != time.July {
			flush()
			continue
		}
		if grid.TeamsPlaying(d) == 0 {
			if runLen == 0 {
				runStart = d
			}
			runLen++
		} else {
			flush()
		}
	}
	flush()

	if bestLen < minRun {
		return nil
	}
	return &AllStarWindow{
		Derby:  bestStart,
		Game:   bestStart.AddDate(0, 0, 1),
		Travel: bestStart.AddDate(0, 0, 2),
	}
}
