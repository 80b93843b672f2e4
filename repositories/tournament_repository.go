package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pitchside/tournament-scheduler/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, description, organizer_id, start_date, end_date, status, created_at
		FROM tournaments
		WHERE id = $1`

	tournament := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tournament.ID,
		&tournament.Name,
		&tournament.Description,
		&tournament.OrganizerID,
		&tournament.StartDate,
		&tournament.EndDate,
		&tournament.Status,
		&tournament.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}
