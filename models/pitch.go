package models

import "time"

// Pitch is a single physical playing surface within a venue. For conflict
// purposes it is the scarce, exclusively-occupied resource.
type Pitch struct {
	ID        int       `json:"id" db:"id"`
	VenueID   int       `json:"venue_id" db:"venue_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Venue *Venue `json:"venue,omitempty" db:"-"`
}
