package store

import (
	"database/sql"
	"time"
)

// LedgerRow is one persisted team-game ledger entry. Win is null for a
// tie, mirroring the in-memory representation.
type LedgerRow struct {
	ID          int          `json:"id" db:"id"`
	SeasonYear  int          `json:"season_year" db:"season_year"`
	LeagueID    int          `json:"league_id" db:"league_id"`
	GameID      string       `json:"game_id" db:"game_id"`
	TeamID      int          `json:"team_id" db:"team_id"`
	OpponentID  int          `json:"opponent_id" db:"opponent_id"`
	GameDate    time.Time    `json:"game_date" db:"game_date"`
	RunsFor     int          `json:"runs_for" db:"runs_for"`
	RunsAgainst int          `json:"runs_against" db:"runs_against"`
	Win         sql.NullBool `json:"win" db:"win"`
	IsHome      bool         `json:"is_home" db:"is_home"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// BucketRow is one persisted calendar bucket with its season baseline
// and deltas. WinPct and its delta are null when no games were decided.
type BucketRow struct {
	ID          int    `json:"id" db:"id"`
	SeasonYear  int    `json:"season_year" db:"season_year"`
	LeagueID    int    `json:"league_id" db:"league_id"`
	TeamID      int    `json:"team_id" db:"team_id"`
	BucketKind  string `json:"bucket_kind" db:"bucket_kind"`
	BucketLabel string `json:"bucket_label" db:"bucket_label"`
	WeekIndex   int    `json:"week_index" db:"week_index"`
	Games       int    `json:"games" db:"games"`
	Wins        int    `json:"wins" db:"wins"`
	Losses      int    `json:"losses" db:"losses"`
	Ties        int    `json:"ties" db:"ties"`
	RunsFor     int    `json:"runs_for" db:"runs_for"`
	RunsAgainst int    `json:"runs_against" db:"runs_against"`
	RunDiff     int    `json:"run_diff" db:"run_diff"`

	WinPct               sql.NullFloat64 `json:"win_pct" db:"win_pct"`
	SeasonWinPct         float64         `json:"season_win_pct" db:"season_win_pct"`
	SeasonRunDiff        int             `json:"season_run_diff" db:"season_run_diff"`
	WinPctDeltaVsSeason  sql.NullFloat64 `json:"win_pct_delta_vs_season" db:"win_pct_delta_vs_season"`
	RunDiffDeltaVsSeason float64         `json:"run_diff_delta_vs_season" db:"run_diff_delta_vs_season"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SeriesRow is one persisted series summary.
type SeriesRow struct {
	ID              int       `json:"id" db:"id"`
	SeasonYear      int       `json:"season_year" db:"season_year"`
	LeagueID        int       `json:"league_id" db:"league_id"`
	SeriesID        string    `json:"series_id" db:"series_id"`
	HomeTeamID      int       `json:"home_team_id" db:"home_team_id"`
	AwayTeamID      int       `json:"away_team_id" db:"away_team_id"`
	StartDate       time.Time `json:"start_date" db:"start_date"`
	EndDate         time.Time `json:"end_date" db:"end_date"`
	NumGames        int       `json:"num_games" db:"num_games"`
	HomeWins        int       `json:"home_series_wins" db:"home_series_wins"`
	HomeLosses      int       `json:"home_series_losses" db:"home_series_losses"`
	HomeRuns        int       `json:"home_runs_scored" db:"home_runs_scored"`
	HomeRunsAllowed int       `json:"home_runs_allowed" db:"home_runs_allowed"`
	HomeRunDiff     int       `json:"home_run_diff" db:"home_run_diff"`
	Sweep           bool      `json:"sweep" db:"sweep"`
	AvoidedSweep    bool      `json:"avoided_sweep" db:"avoided_sweep"`
	Split           bool      `json:"split" db:"split"`
	Decisive        bool      `json:"decisive" db:"decisive"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// EventSetRow is the one-per-season schedule event record. The All-Star
// fields are null when no break was detected; playoff spans and stretch
// reports live in JSONB payload columns since their length varies.
type EventSetRow struct {
	ID         int       `json:"id" db:"id"`
	SeasonYear int       `json:"season_year" db:"season_year"`
	LeagueID   int       `json:"league_id" db:"league_id"`
	OpeningDay time.Time `json:"opening_day" db:"opening_day"`
	FinalDay   time.Time `json:"final_day" db:"final_day"`

	AllStarDerby  sql.NullTime `json:"all_star_derby" db:"all_star_derby"`
	AllStarGame   sql.NullTime `json:"all_star_game" db:"all_star_game"`
	AllStarTravel sql.NullTime `json:"all_star_travel" db:"all_star_travel"`

	PlayoffSpans    []byte `json:"playoff_spans" db:"playoff_spans"`
	RestMost        []byte `json:"rest_most" db:"rest_most"`
	RestLeast       []byte `json:"rest_least" db:"rest_least"`
	BrutalStretches []byte `json:"brutal_stretches" db:"brutal_stretches"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RunSummaryRow records one pipeline run's skip tallies.
type RunSummaryRow struct {
	ID          int       `json:"id" db:"id"`
	SeasonYear  int       `json:"season_year" db:"season_year"`
	LeagueID    int       `json:"league_id" db:"league_id"`
	RowsSeen    int       `json:"rows_seen" db:"rows_seen"`
	RowsSkipped int       `json:"rows_skipped" db:"rows_skipped"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
