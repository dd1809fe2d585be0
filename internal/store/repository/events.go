package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fortuna/pennant/internal/runerr"
	"github.com/fortuna/pennant/internal/schedule"
	"github.com/fortuna/pennant/internal/store"
)

// EventRepository handles the one-per-season schedule event record and
// the run summary log.
type EventRepository struct {
	db *store.Database
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *store.Database) *EventRepository {
	return &EventRepository{db: db}
}

// ReplaceSeason stores a freshly detected event set for one season and
// league, overwriting any previous record.
func (r *EventRepository) ReplaceSeason(ctx context.Context, seasonYear, leagueID int, set *schedule.EventSet) error {
	spans, err := json.Marshal(set.PlayoffSpans)
	if err != nil {
		return fmt.Errorf("encoding playoff spans: %w", err)
	}
	most, err := json.Marshal(set.MostRest)
	if err != nil {
		return fmt.Errorf("encoding rest report: %w", err)
	}
	least, err := json.Marshal(set.LeastRest)
	if err != nil {
		return fmt.Errorf("encoding rest report: %w", err)
	}
	stretches, err := json.Marshal(set.BrutalStretches)
	if err != nil {
		return fmt.Errorf("encoding brutal stretches: %w", err)
	}

	derby, game, travel := sql.NullTime{}, sql.NullTime{}, sql.NullTime{}
	if set.AllStar != nil {
		derby = sql.NullTime{Time: set.AllStar.Derby, Valid: true}
		game = sql.NullTime{Time: set.AllStar.Game, Valid: true}
		travel = sql.NullTime{Time: set.AllStar.Travel, Valid: true}
	}

	query := `
		INSERT INTO schedule_events (season_year, league_id, opening_day, final_day,
			all_star_derby, all_star_game, all_star_travel, playoff_spans,
			rest_most, rest_least, brutal_stretches)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (season_year, league_id) DO UPDATE SET
			opening_day = EXCLUDED.opening_day,
			final_day = EXCLUDED.final_day,
			all_star_derby = EXCLUDED.all_star_derby,
			all_star_game = EXCLUDED.all_star_game,
			all_star_travel = EXCLUDED.all_star_travel,
			playoff_spans = EXCLUDED.playoff_spans,
			rest_most = EXCLUDED.rest_most,
			rest_least = EXCLUDED.rest_least,
			brutal_stretches = EXCLUDED.brutal_stretches
	`

	if _, err := r.db.DB().ExecContext(ctx, query, seasonYear, leagueID,
		set.OpeningDay, set.FinalDay, derby, game, travel,
		spans, most, least, stretches); err != nil {
		return fmt.Errorf("upserting schedule events: %w", err)
	}
	return nil
}

// GetSeason returns the stored event set for one season and league,
// decoded back to the domain type.
func (r *EventRepository) GetSeason(ctx context.Context, seasonYear, leagueID int) (*schedule.EventSet, error) {
	query := `
		SELECT opening_day, final_day, all_star_derby, all_star_game,
			all_star_travel, playoff_spans, rest_most, rest_least, brutal_stretches
		FROM schedule_events
		WHERE season_year = $1 AND league_id = $2
	`

	row := &store.EventSetRow{}
	err := r.db.DB().QueryRowContext(ctx, query, seasonYear, leagueID).Scan(
		&row.OpeningDay, &row.FinalDay, &row.AllStarDerby, &row.AllStarGame,
		&row.AllStarTravel, &row.PlayoffSpans, &row.RestMost, &row.RestLeast,
		&row.BrutalStretches,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no schedule events for season %d league %d", seasonYear, leagueID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying schedule events: %w", err)
	}

	set := &schedule.EventSet{
		OpeningDay: row.OpeningDay,
		FinalDay:   row.FinalDay,
	}
	if row.AllStarDerby.Valid {
		set.AllStar = &schedule.AllStarWindow{
			Derby:  row.AllStarDerby.Time,
			Game:   row.AllStarGame.Time,
			Travel: row.AllStarTravel.Time,
		}
	}
	for dst, src := range map[any][]byte{
		&set.PlayoffSpans:    row.PlayoffSpans,
		&set.MostRest:        row.RestMost,
		&set.LeastRest:       row.RestLeast,
		&set.BrutalStretches: row.BrutalStretches,
	} {
		if len(src) == 0 {
			continue
		}
		if err := json.Unmarshal(src, dst); err != nil {
			return nil, fmt.Errorf("decoding schedule events payload: %w", err)
		}
	}
	return set, nil
}

// RecordRunSummary appends one pipeline run's skip tallies.
func (r *EventRepository) RecordRunSummary(ctx context.Context, seasonYear, leagueID int, s *runerr.RunSummary) error {
	query := `
		INSERT INTO run_summaries (season_year, league_id, rows_seen, rows_skipped)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.DB().ExecContext(ctx, query, seasonYear, leagueID,
		s.RowsSeen, s.RowsSkipped); err != nil {
		return fmt.Errorf("recording run summary: %w", err)
	}
	return nil
}
