package models

import (
	"fmt"
	"time"
)

// MatchTimeSlot is the scheduling view of a match: where and when it is
// played. All placement-related fields are optional; a slot without a start
// time is unscheduled and never takes part in conflict evaluation.
type MatchTimeSlot struct {
	ID            int        `json:"id" db:"id"`
	TournamentID  int        `json:"tournament_id" db:"tournament_id"`
	DivisionID    *int       `json:"division_id,omitempty" db:"division_id"`
	PitchID       *int       `json:"pitch_id,omitempty" db:"pitch_id"`
	HomeTeamID    *int       `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID    *int       `json:"away_team_id,omitempty" db:"away_team_id"`
	StartTime     *time.Time `json:"start_time,omitempty" db:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty" db:"end_time"`
	MatchDuration *int       `json:"match_duration,omitempty" db:"duration_mins"` // minutes

	// Опциональные связанные сущности (не мапятся напрямую)
	HomeTeam *Team  `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team  `json:"away_team,omitempty" db:"-"`
	Pitch    *Pitch `json:"pitch,omitempty" db:"-"`
}

// TeamsLabel renders the fixture for diagnostics, e.g. "Foxes vs Badgers".
// Falls back to the match id when team entities are not loaded.
func (m *MatchTimeSlot) TeamsLabel() string {
	if m.HomeTeam != nil && m.AwayTeam != nil {
		return fmt.Sprintf("%s vs %s", m.HomeTeam.Name, m.AwayTeam.Name)
	}
	return fmt.Sprintf("match %d", m.ID)
}
