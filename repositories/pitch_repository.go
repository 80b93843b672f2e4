package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pitchside/tournament-scheduler/models"
)

var ErrPitchNotFound = errors.New("pitch not found")

type PitchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Pitch, error)
}

type postgresPitchRepository struct {
	db *sql.DB
}

func NewPostgresPitchRepository(db *sql.DB) PitchRepository {
	return &postgresPitchRepository{db: db}
}

func (r *postgresPitchRepository) GetByID(ctx context.Context, id int) (*models.Pitch, error) {
	query := `
		SELECT id, venue_id, name, created_at
		FROM pitches
		WHERE id = $1`

	pitch := &models.Pitch{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pitch.ID,
		&pitch.VenueID,
		&pitch.Name,
		&pitch.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPitchNotFound
		}
		return nil, err
	}
	return pitch, nil
}
