package models

import "time"

// SchedulePlacement is one proposed assignment of a match to a pitch and
// time window. A placement with neither pitch nor start time unschedules
// the match.
type SchedulePlacement struct {
	MatchID       int        `json:"match_id"`
	PitchID       *int       `json:"pitch_id,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	MatchDuration *int       `json:"match_duration,omitempty"` // minutes
}

// ScheduleBatch is the unit of atomicity for schedule updates: either every
// placement in it is applied, or none of them is.
type ScheduleBatch struct {
	Placements []SchedulePlacement `json:"placements"`
}
