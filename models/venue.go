package models

import "time"

type Venue struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Address      *string   `json:"address,omitempty" db:"address"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	MapKey *string `json:"-" db:"map_key"`
	MapURL *string `json:"map_url,omitempty" db:"-"`
}
