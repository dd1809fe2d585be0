package report

import (
	"strings"
	"testing"
	"time"

	"github.com/fortuna/pennant/internal/calendar"
	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/schedule"
	"github.com/fortuna/pennant/internal/series"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }

func briefInput(t *testing.T) Input {
	t.Helper()
	idx, err := league.NewIndex([]league.Team{
		{TeamID: 1, Abbreviation: "ATL", City: "Atlanta", Nickname: "Kings"},
		{TeamID: 2, Abbreviation: "BOS", City: "Boston", Nickname: "Harbormen"},
	})
	if err != nil {
		t.Fatalf("building index: %v", err)
	}

	return Input{
		SeasonYear: 1975,
		LeagueID:   1,
		Teams:      idx,
		Buckets: &calendar.BucketSet{
			Monthly: []calendar.Bucket{
				{
					TeamID: 1, Kind: calendar.KindMonth, Label: "1975-04",
					Games: 10, Wins: 8, Losses: 2,
					WinPct:              floatPtr(0.8),
					WinPctDeltaVsSeason: floatPtr(0.3),
					RunDiff:             15,
				},
				{
					TeamID: 2, Kind: calendar.KindMonth, Label: "1975-04",
					Games: 10, Wins: 2, Losses: 8,
					WinPct:              floatPtr(0.2),
					WinPctDeltaVsSeason: floatPtr(-0.3),
					RunDiff:             -15,
				},
			},
		},
		Series: []series.Summary{
			{
				SeriesID: "1_2_19750407", HomeTeamID: 1, AwayTeamID: 2,
				StartDate: day(1975, time.April, 7), NumGames: 3,
				HomeWins: 3, HomeRunDiff: 12, Sweep: true, Decisive: true,
			},
			{
				SeriesID: "2_1_19750415", HomeTeamID: 2, AwayTeamID: 1,
				StartDate: day(1975, time.April, 15), NumGames: 2,
				HomeWins: 1, HomeLosses: 1, Split: true,
			},
		},
		Events: &schedule.EventSet{
			OpeningDay: day(1975, time.April, 7),
			FinalDay:   day(1975, time.September, 28),
			AllStar: &schedule.AllStarWindow{
				Derby:  day(1975, time.July, 14),
				Game:   day(1975, time.July, 15),
				Travel: day(1975, time.July, 16),
			},
			PlayoffSpans: []schedule.PlayoffSpan{
				{Round: "finals", Start: day(1975, time.October, 4), End: day(1975, time.October, 10), Days: 7},
			},
			MostRest:  []schedule.TeamRest{{TeamID: 2, Games: 150, OffDays: 25, Rank: 1}},
			LeastRest: []schedule.TeamRest{{TeamID: 1, Games: 160, OffDays: 15, Rank: 1}},
			BrutalStretches: []schedule.Stretch{
				{TeamID: 1, Games: 14, WindowDays: 15, OffDays: 1, StartDate: day(1975, time.August, 1)},
			},
		},
	}
}

func TestRenderSections(t *testing.T) {
	out := Render(briefInput(t))

	for _, want := range []string{
		"# 1975 Season Brief",
		"## Season Shape",
		"## Monthly Timeline",
		"### April 1975",
		"## Series of Note",
		"## Schedule Load",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("brief missing %q", want)
		}
	}
}

func TestRenderResolvesTeamNames(t *testing.T) {
	out := Render(briefInput(t))

	if !strings.Contains(out, "Atlanta Kings") || !strings.Contains(out, "Boston Harbormen") {
		t.Error("team IDs should render as full names")
	}
	if strings.Contains(out, "team 1 ") {
		t.Error("known team IDs should not fall back to raw numbers")
	}
}

func TestRenderSeriesNotes(t *testing.T) {
	out := Render(briefInput(t))

	if !strings.Contains(out, "sweep by Atlanta Kings") {
		t.Errorf("sweep note missing:\n%s", out)
	}
	if !strings.Contains(out, "decisive margin (+12 runs)") {
		t.Errorf("decisive note missing:\n%s", out)
	}
	// The split series is not notable and stays out of the brief.
	if strings.Contains(out, "1975-04-15") || strings.Contains(out, "Apr 15") {
		t.Error("split series should not appear")
	}
}

func TestRenderScheduleShape(t *testing.T) {
	out := Render(briefInput(t))

	if !strings.Contains(out, "Opening day: Apr 7, 1975") {
		t.Errorf("opening day line missing:\n%s", out)
	}
	if !strings.Contains(out, "All-Star break: derby Jul 14, 1975") {
		t.Errorf("All-Star line missing:\n%s", out)
	}
	if !strings.Contains(out, "Playoffs, finals:") {
		t.Errorf("playoff line missing:\n%s", out)
	}
}

func TestRenderWithoutAllStar(t *testing.T) {
	in := briefInput(t)
	in.Events.AllStar = nil

	out := Render(in)
	if !strings.Contains(out, "All-Star break: none detected") {
		t.Errorf("absent break should be stated:\n%s", out)
	}
}

func TestRenderUnknownTeamFallsBack(t *testing.T) {
	in := briefInput(t)
	in.Teams = nil

	out := Render(in)
	if !strings.Contains(out, "team 1") {
		t.Error("nil index should fall back to raw IDs")
	}
}
