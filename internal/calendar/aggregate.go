// Package calendar groups the season ledger into month, week-index, and
// half-season buckets and attaches momentum deltas against each team's
// season-long baseline.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/fortuna/pennant/internal/gamelog"
	"github.com/fortuna/pennant/internal/runerr"
)

// Kind names the calendar unit a bucket covers.
type Kind string

const (
	KindMonth Kind = "month"
	KindWeek  Kind = "week"
	KindHalf  Kind = "half"
)

// Baseline is one team's full-season record, joined onto every bucket row.
type Baseline struct {
	TeamID        int     `json:"team_id"`
	SeasonGames   int     `json:"season_games"`
	SeasonWins    int     `json:"season_wins"`
	SeasonLosses  int     `json:"season_losses"`
	SeasonTies    int     `json:"season_ties"`
	SeasonWinPct  float64 `json:"season_win_pct"`
	SeasonRunDiff int     `json:"season_run_diff"`
}

// Bucket is one team's aggregate over one calendar unit. WinPct and the
// win-pct delta are nil when the bucket holds no decided games, so a
// missing value is explicit rather than a NaN leaking downstream.
type Bucket struct {
	TeamID      int    `json:"team_id"`
	Kind        Kind   `json:"kind"`
	Label       string `json:"label"`
	WeekIndex   int    `json:"week_index,omitempty"`
	Games       int    `json:"games"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Ties        int    `json:"ties"`
	RunsFor     int    `json:"runs_for"`
	RunsAgainst int    `json:"runs_against"`
	RunDiff     int    `json:"run_diff"`

	WinPct *float64 `json:"win_pct"`

	SeasonWinPct  float64 `json:"season_win_pct"`
	SeasonRunDiff int     `json:"season_run_diff"`

	WinPctDeltaVsSeason  *float64 `json:"win_pct_delta_vs_season"`
	RunDiffDeltaVsSeason float64  `json:"run_diff_delta_vs_season"`
}

// BucketSet is the full calendar output for one season.
type BucketSet struct {
	Monthly []Bucket `json:"monthly"`
	Weekly  []Bucket `json:"weekly"`
	Halves  []Bucket `json:"halves"`
}

// BuildBaselines computes each team's season record from the ledger.
func BuildBaselines(ledger []gamelog.TeamGameEntry) map[int]Baseline {
	byTeam := make(map[int]Baseline)
	for _, e := range ledger {
		b := byTeam[e.TeamID]
		b.TeamID = e.TeamID
		b.SeasonGames++
		switch {
		case e.Win == nil:
			b.SeasonTies++
		case *e.Win:
			b.SeasonWins++
		default:
			b.SeasonLosses++
		}
		b.SeasonRunDiff += e.RunDiff()
		byTeam[e.TeamID] = b
	}
	for id, b := range byTeam {
		if decided := b.SeasonWins + b.SeasonLosses; decided > 0 {
			b.SeasonWinPct = float64(b.SeasonWins) / float64(decided)
		}
		byTeam[id] = b
	}
	return byTeam
}

// Aggregate buckets the ledger by month, week index, and season half.
// Buckets with zero games never appear. Every bucketed team must be
// present in baselines; a broken join is a ConsistencyError naming the
// missing teams.
func Aggregate(ledger []gamelog.TeamGameEntry, baselines map[int]Baseline) (*BucketSet, error) {
	if len(ledger) == 0 {
		return nil, &runerr.MissingInputError{Table: "team_game_ledger"}
	}
	if err := checkBaselineJoin(ledger, baselines); err != nil {
		return nil, err
	}

	seasonStart := minDate(ledger)
	minWeek, maxWeek := weekSpan(ledger, seasonStart)
	midWeek := (minWeek + maxWeek) / 2

	monthly := make(map[bucketKey]*Bucket)
	weekly := make(map[bucketKey]*Bucket)
	halves := make(map[bucketKey]*Bucket)

	for _, e := range ledger {
		monthLabel := e.Date.Format("2006-01")
		wk := weekIndex(e.Date, seasonStart)
		halfLabel := "first"
		if wk > midWeek {
			halfLabel = "second"
		}

		accumulate(monthly, KindMonth, monthLabel, 0, e)
		accumulate(weekly, KindWeek, fmt.Sprintf("%d", wk), wk, e)
		accumulate(halves, KindHalf, halfLabel, 0, e)
	}

	set := &BucketSet{
		Monthly: finish(monthly, baselines),
		Weekly:  finish(weekly, baselines),
		Halves:  finish(halves, baselines),
	}
	return set, nil
}

type bucketKey struct {
	teamID int
	label  string
}

func accumulate(m map[bucketKey]*Bucket, kind Kind, label string, week int, e gamelog.TeamGameEntry) {
	k := bucketKey{e.TeamID, label}
	b, ok := m[k]
	if !ok {
		b = &Bucket{TeamID: e.TeamID, Kind: kind, Label: label, WeekIndex: week}
		m[k] = b
	}
	b.Games++
	switch {
	case e.Win == nil:
		b.Ties++
	case *e.Win:
		b.Wins++
	default:
		b.Losses++
	}
	b.RunsFor += e.RunsFor
	b.RunsAgainst += e.RunsAgainst
}

// finish computes percentages and deltas and returns buckets in a stable
// team/label order.
func finish(buckets map[bucketKey]*Bucket, baselines map[int]Baseline) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		base := baselines[b.TeamID]
		b.RunDiff = b.RunsFor - b.RunsAgainst
		b.SeasonWinPct = base.SeasonWinPct
		b.SeasonRunDiff = base.SeasonRunDiff
		if decided := b.Wins + b.Losses; decided > 0 {
			pct := float64(b.Wins) / float64(decided)
			b.WinPct = &pct
			delta := pct - base.SeasonWinPct
			b.WinPctDeltaVsSeason = &delta
		}
		b.RunDiffDeltaVsSeason = runDiffDelta(*b, base)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		if out[i].WeekIndex != out[j].WeekIndex {
			return out[i].WeekIndex < out[j].WeekIndex
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// runDiffDelta compares a bucket's run differential to the slice of the
// season baseline it covers: halves against half the season total, months
// against a games-share-scaled baseline, weeks against the full total as
// a raw momentum signal.
func runDiffDelta(b Bucket, base Baseline) float64 {
	switch b.Kind {
	case KindHalf:
		return float64(b.RunDiff) - float64(base.SeasonRunDiff)/2
	case KindMonth:
		if base.SeasonGames == 0 {
			return float64(b.RunDiff)
		}
		share := float64(b.Games) / float64(base.SeasonGames)
		return float64(b.RunDiff) - float64(base.SeasonRunDiff)*share
	default:
		return float64(b.RunDiff) - float64(base.SeasonRunDiff)
	}
}

func checkBaselineJoin(ledger []gamelog.TeamGameEntry, baselines map[int]Baseline) error {
	missing := make(map[int]bool)
	for _, e := range ledger {
		if _, ok := baselines[e.TeamID]; !ok {
			missing[e.TeamID] = true
		}
	}
	if len(missing) == 0 {
		return nil
	}
	keys := make([]string, 0, len(missing))
	for id := range missing {
		keys = append(keys, fmt.Sprintf("team_%d", id))
	}
	return &runerr.ConsistencyError{Check: "baseline join", Keys: keys}
}

func minDate(ledger []gamelog.TeamGameEntry) time.Time {
	min := ledger[0].Date
	for _, e := range ledger[1:] {
		if e.Date.Before(min) {
			min = e.Date
		}
	}
	return min
}

// weekIndex is the number of whole weeks since the season's first date.
func weekIndex(d, seasonStart time.Time) int {
	return int(d.Sub(seasonStart).Hours()/24) / 7
}

func weekSpan(ledger []gamelog.TeamGameEntry, seasonStart time.Time) (int, int) {
	min, max := weekIndex(ledger[0].Date, seasonStart), weekIndex(ledger[0].Date, seasonStart)
	for _, e := range ledger[1:] {
		wk := weekIndex(e.Date, seasonStart)
		if wk < min {
			min = wk
		}
		if wk > max {
			max = wk
		}
	}
	return min, max
}
