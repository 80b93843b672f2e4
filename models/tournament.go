package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusDraft     TournamentStatus = "draft"
	StatusPublished TournamentStatus = "published"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

// Tournament представляет турнир.
type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description,omitempty" db:"description"`
	OrganizerID int              `json:"organizer_id" db:"organizer_id"`
	StartDate   time.Time        `json:"start_date" db:"start_date"`
	EndDate     time.Time        `json:"end_date" db:"end_date"`
	Status      TournamentStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}
