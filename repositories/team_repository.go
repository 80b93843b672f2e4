package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pitchside/tournament-scheduler/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, id int) (*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, tournament_id, division_id, name, created_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.TournamentID,
		&team.DivisionID,
		&team.Name,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}
