package models

// Division groups teams inside a tournament. It is carried on match slots
// for display only: conflict detection deliberately ignores it, because a
// pitch or a team is double-booked regardless of which division the two
// matches belong to.
type Division struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Name         string `json:"name" db:"name"`
}
