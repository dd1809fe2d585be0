package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/store"
)

// TeamRepository handles team reference data access.
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetByLeague returns every team in a league, ordered by ID.
func (r *TeamRepository) GetByLeague(ctx context.Context, leagueID int) ([]league.Team, error) {
	query := `
		SELECT team_id, league_id, abbreviation, city, nickname, conference, division
		FROM teams
		WHERE league_id = $1
		ORDER BY team_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []league.Team
	for rows.Next() {
		var t league.Team
		err := rows.Scan(&t.TeamID, &t.LeagueID, &t.Abbreviation, &t.City,
			&t.Nickname, &t.Conference, &t.Division)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

// Upsert inserts or updates one reference team.
func (r *TeamRepository) Upsert(ctx context.Context, t league.Team) error {
	query := `
		INSERT INTO teams (team_id, league_id, abbreviation, city, nickname, conference, division)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (team_id) DO UPDATE SET
			league_id = EXCLUDED.league_id,
			abbreviation = EXCLUDED.abbreviation,
			city = EXCLUDED.city,
			nickname = EXCLUDED.nickname,
			conference = EXCLUDED.conference,
			division = EXCLUDED.division
	`

	if _, err := r.db.DB().ExecContext(ctx, query, t.TeamID, t.LeagueID,
		t.Abbreviation, t.City, t.Nickname, t.Conference, t.Division); err != nil {
		return fmt.Errorf("upserting team %d: %w", t.TeamID, err)
	}
	return nil
}
