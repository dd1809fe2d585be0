package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/pennant/internal/gamelog"
	"github.com/fortuna/pennant/internal/store"
)

// LedgerRepository handles the per-team-per-game ledger table.
type LedgerRepository struct {
	db *store.Database
}

// NewLedgerRepository creates a new ledger repository.
func NewLedgerRepository(db *store.Database) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ReplaceSeason swaps in a freshly computed ledger for one season and
// league inside a single transaction. Output tables are recomputed
// wholesale per run, never patched in place.
func (r *LedgerRepository) ReplaceSeason(ctx context.Context, seasonYear, leagueID int, ledger []gamelog.TeamGameEntry) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning ledger replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM team_game_ledger WHERE season_year = $1 AND league_id = $2`,
		seasonYear, leagueID); err != nil {
		return fmt.Errorf("clearing ledger: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO team_game_ledger (season_year, league_id, game_id, team_id,
			opponent_id, game_date, runs_for, runs_against, win, is_home)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return fmt.Errorf("preparing ledger insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range ledger {
		win := sql.NullBool{}
		if e.Win != nil {
			win = sql.NullBool{Bool: *e.Win, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, seasonYear, leagueID, e.GameID, e.TeamID,
			e.OpponentID, e.Date, e.RunsFor, e.RunsAgainst, win, e.IsHome); err != nil {
			return fmt.Errorf("inserting ledger row %s/%d: %w", e.GameID, e.TeamID, err)
		}
	}

	return tx.Commit()
}

// GetSeason returns the full ledger for one season and league, ordered
// by date, game, team.
func (r *LedgerRepository) GetSeason(ctx context.Context, seasonYear, leagueID int) ([]*store.LedgerRow, error) {
	query := `
		SELECT id, season_year, league_id, game_id, team_id, opponent_id,
			game_date, runs_for, runs_against, win, is_home, created_at
		FROM team_game_ledger
		WHERE season_year = $1 AND league_id = $2
		ORDER BY game_date, game_id, team_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonYear, leagueID)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	return scanLedgerRows(rows)
}

// GetTeamSeason returns one team's ledger entries in date order.
func (r *LedgerRepository) GetTeamSeason(ctx context.Context, seasonYear, leagueID, teamID int) ([]*store.LedgerRow, error) {
	query := `
		SELECT id, season_year, league_id, game_id, team_id, opponent_id,
			game_date, runs_for, runs_against, win, is_home, created_at
		FROM team_game_ledger
		WHERE season_year = $1 AND league_id = $2 AND team_id = $3
		ORDER BY game_date, game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonYear, leagueID, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying team ledger: %w", err)
	}
	defer rows.Close()

	return scanLedgerRows(rows)
}

func scanLedgerRows(rows *sql.Rows) ([]*store.LedgerRow, error) {
	var out []*store.LedgerRow
	for rows.Next() {
		row := &store.LedgerRow{}
		err := rows.Scan(
			&row.ID, &row.SeasonYear, &row.LeagueID, &row.GameID, &row.TeamID,
			&row.OpponentID, &row.GameDate, &row.RunsFor, &row.RunsAgainst,
			&row.Win, &row.IsHome, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
