// Package report renders a season's mined tables into a markdown brief.
// The brief is a human-readable digest, not an API surface; the REST
// layer serves the raw tables and caches the rendered text.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fortuna/pennant/internal/calendar"
	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/schedule"
	"github.com/fortuna/pennant/internal/series"
)

const dateLayout = "Jan 2, 2006"

// Input carries everything the brief draws from. Teams resolves IDs to
// display names; an unknown ID renders as the raw number.
type Input struct {
	SeasonYear int
	LeagueID   int
	Teams      *league.Index
	Buckets    *calendar.BucketSet
	Series     []series.Summary
	Events     *schedule.EventSet
}

// Render produces the full markdown brief.
func Render(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d Season Brief\n\n", in.SeasonYear)

	renderScheduleShape(&b, in)
	renderMonthlyTimeline(&b, in)
	renderSeriesNotes(&b, in)
	renderScheduleLoad(&b, in)

	return b.String()
}

func renderScheduleShape(b *strings.Builder, in Input) {
	if in.Events == nil {
		return
	}
	ev := in.Events
	b.WriteString("## Season Shape\n\n")
	fmt.Fprintf(b, "- Opening day: %s\n", ev.OpeningDay.Format(dateLayout))
	fmt.Fprintf(b, "- Final day of the regular season: %s\n", ev.FinalDay.Format(dateLayout))
	if ev.AllStar != nil {
		fmt.Fprintf(b, "- All-Star break: derby %s, game %s, travel day %s\n",
			ev.AllStar.Derby.Format(dateLayout),
			ev.AllStar.Game.Format(dateLayout),
			ev.AllStar.Travel.Format(dateLayout))
	} else {
		b.WriteString("- All-Star break: none detected\n")
	}
	for _, span := range ev.PlayoffSpans {
		fmt.Fprintf(b, "- Playoffs, %s: %s to %s (%d days)\n",
			strings.ReplaceAll(span.Round, "_", " "),
			span.Start.Format(dateLayout), span.End.Format(dateLayout), span.Days)
	}
	b.WriteString("\n")
}

// renderMonthlyTimeline walks the monthly buckets in calendar order and
// calls out each team's hottest and coldest months by win-pct delta.
func renderMonthlyTimeline(b *strings.Builder, in Input) {
	if in.Buckets == nil || len(in.Buckets.Monthly) == 0 {
		return
	}
	b.WriteString("## Monthly Timeline\n\n")

	byMonth := make(map[string][]calendar.Bucket)
	var labels []string
	for _, bucket := range in.Buckets.Monthly {
		if _, seen := byMonth[bucket.Label]; !seen {
			labels = append(labels, bucket.Label)
		}
		byMonth[bucket.Label] = append(byMonth[bucket.Label], bucket)
	}
	sort.Strings(labels)

	for _, label := range labels {
		buckets := byMonth[label]
		fmt.Fprintf(b, "### %s\n\n", monthTitle(label))
		b.WriteString("| Team | W-L-T | Win% | vs Season | Run Diff |\n")
		b.WriteString("|------|-------|------|-----------|----------|\n")

		sorted := append([]calendar.Bucket(nil), buckets...)
		sort.Slice(sorted, func(i, j int) bool {
			return deltaOf(sorted[i]) > deltaOf(sorted[j])
		})
		for _, bucket := range sorted {
			fmt.Fprintf(b, "| %s | %d-%d-%d | %s | %s | %+d |\n",
				in.teamName(bucket.TeamID),
				bucket.Wins, bucket.Losses, bucket.Ties,
				pct(bucket.WinPct), signedPct(bucket.WinPctDeltaVsSeason),
				bucket.RunDiff)
		}
		b.WriteString("\n")
	}
}

// renderSeriesNotes surfaces only the series worth a sentence: sweeps,
// avoided sweeps, and decisive margins.
func renderSeriesNotes(b *strings.Builder, in Input) {
	var notable []series.Summary
	for _, s := range in.Series {
		if s.Sweep || s.AvoidedSweep || s.Decisive {
			notable = append(notable, s)
		}
	}
	if len(notable) == 0 {
		return
	}
	b.WriteString("## Series of Note\n\n")
	for _, s := range notable {
		home := in.teamName(s.HomeTeamID)
		away := in.teamName(s.AwayTeamID)
		line := fmt.Sprintf("- %s vs %s, %s (%d games, %d-%d home): ",
			home, away, s.StartDate.Format(dateLayout), s.NumGames, s.HomeWins, s.HomeLosses)
		var tags []string
		switch {
		case s.Sweep && s.HomeWins == s.NumGames:
			tags = append(tags, fmt.Sprintf("sweep by %s", home))
		case s.Sweep:
			tags = append(tags, fmt.Sprintf("sweep by %s", away))
		}
		if s.AvoidedSweep {
			tags = append(tags, "sweep avoided in the finale")
		}
		if s.Decisive {
			tags = append(tags, fmt.Sprintf("decisive margin (%+d runs)", s.HomeRunDiff))
		}
		b.WriteString(line + strings.Join(tags, ", ") + "\n")
	}
	b.WriteString("\n")
}

func renderScheduleLoad(b *strings.Builder, in Input) {
	if in.Events == nil {
		return
	}
	ev := in.Events
	if len(ev.MostRest) == 0 && len(ev.BrutalStretches) == 0 {
		return
	}
	b.WriteString("## Schedule Load\n\n")
	if len(ev.MostRest) > 0 {
		b.WriteString("Most rested clubs:\n\n")
		for _, r := range ev.MostRest {
			fmt.Fprintf(b, "%d. %s, %d off-days across %d games\n",
				r.Rank, in.teamName(r.TeamID), r.OffDays, r.Games)
		}
		b.WriteString("\nLeast rested clubs:\n\n")
		for _, r := range ev.LeastRest {
			fmt.Fprintf(b, "%d. %s, %d off-days across %d games\n",
				r.Rank, in.teamName(r.TeamID), r.OffDays, r.Games)
		}
		b.WriteString("\n")
	}
	if len(ev.BrutalStretches) > 0 {
		b.WriteString("Hardest stretches:\n\n")
		for _, s := range ev.BrutalStretches {
			fmt.Fprintf(b, "- %s: %d games in %d days starting %s\n",
				in.teamName(s.TeamID), s.Games, s.WindowDays,
				s.StartDate.Format(dateLayout))
		}
		b.WriteString("\n")
	}
}

func (in Input) teamName(teamID int) string {
	if in.Teams != nil {
		if t, ok := in.Teams.ByID(teamID); ok {
			return t.FullName()
		}
	}
	return fmt.Sprintf("team %d", teamID)
}

// monthTitle turns a "2006-01" bucket label into "January 2006". Labels
// that do not parse render as-is.
func monthTitle(label string) string {
	t, err := time.Parse("2006-01", label)
	if err != nil {
		return label
	}
	return t.Format("January 2006")
}

func pct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strings.TrimPrefix(fmt.Sprintf("%.3f", *v), "0")
}

func signedPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.3f", *v)
}

func deltaOf(b calendar.Bucket) float64 {
	if b.WinPctDeltaVsSeason == nil {
		return -2
	}
	return *b.WinPctDeltaVsSeason
}
