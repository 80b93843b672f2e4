package models

// ConflictType классифицирует, какой ресурс занят дважды.
type ConflictType string

const (
	ConflictTypePitch ConflictType = "pitch"
	ConflictTypeTeam  ConflictType = "team"
)

// Conflict describes one double-booking found while validating a proposed
// placement. Conflicts are derived data: they live only for the duration of
// one schedule-update call and are never persisted.
type Conflict struct {
	Type               ConflictType   `json:"conflict_type"`
	ConflictingMatchID int            `json:"conflicting_match_id"`
	ConflictingMatch   *MatchTimeSlot `json:"conflicting_match,omitempty"`
}
