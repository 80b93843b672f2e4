package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pitchside/tournament-scheduler/models"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	UpdateMapKey(ctx context.Context, id int, mapKey *string) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `
		SELECT id, tournament_id, name, address, map_key, created_at
		FROM venues
		WHERE id = $1`

	venue := &models.Venue{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID,
		&venue.TournamentID,
		&venue.Name,
		&venue.Address,
		&venue.MapKey,
		&venue.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (r *postgresVenueRepository) UpdateMapKey(ctx context.Context, id int, mapKey *string) error {
	query := `UPDATE venues SET map_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, mapKey, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}
