package schedule

import "time"

// PlayoffSpan is one post-season round's date range.
type PlayoffSpan struct {
	Round string    `json:"round"`
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
	Days  int       `json:"days"`
}

var roundNames = [3]string{"first_round", "second_round", "finals"}

// detectPlayoffSpans segments the post-season by how many distinct teams
// are active per date. Rounds are searched in order with descending team
// thresholds. Candidate runs shorter than the minimum span are noise
// (exhibition dates, rainout makeups) and are skipped without claiming
// the round; an absent round leaves the cutoff unchanged, so later
// rounds still search from the same point.
func detectPlayoffSpans(grid *Grid, final time.Time, cfg Config) []PlayoffSpan {
	var spans []PlayoffSpan
	cutoff := final
	for i, threshold := range cfg.PlayoffTeamThresholds {
		searchFrom := cutoff
		for {
			run := firstRunAfter(grid, searchFrom, threshold)
			if run == nil {
				break
			}
			if run.Days < cfg.PlayoffMinSpanDays {
				searchFrom = run.End
				continue
			}
			spans = append(spans, PlayoffSpan{
				Round: roundNames[i],
				Start: run.Start,
				End:   run.End,
				Days:  run.Days,
			})
			cutoff = run.End
			break
		}
	}
	return spans
}

type dateRun struct {
	Start, End time.Time
	Days       int
}

// firstRunAfter finds the first maximal run of consecutive calendar dates
// strictly after cutoff on which at least threshold distinct teams play.
func firstRunAfter(grid *Grid, cutoff time.Time, threshold int) *dateRun {
	dates := grid.PlayedDates()
	var run *dateRun
	for _, d := range dates {
		if !d.After(cutoff) {
			continue
		}
		if grid.TeamsPlaying(d) < threshold {
			if run != nil {
				return run
			}
			continue
		}
		if run == nil {
			run = &dateRun{Start: d, End: d, Days: 1}
			continue
		}
		if int(d.Sub(run.End).Hours()/24) == 1 {
			run.End = d
			run.Days++
		} else {
			return run
		}
	}
	return run
}
