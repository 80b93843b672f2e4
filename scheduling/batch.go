package scheduling

import (
	"time"

	"github.com/pitchside/tournament-scheduler/models"
)

// FirstConflict returns the first conflict found between candidate and any
// of the existing matches, or nil when the candidate is clear. Used for
// fast-fail validation.
func FirstConflict(candidate *models.MatchTimeSlot, existing []*models.MatchTimeSlot, durationOverride *time.Duration) *models.Conflict {
	for _, other := range existing {
		if conflict := ResolveConflict(candidate, other, durationOverride); conflict != nil {
			return conflict
		}
	}
	return nil
}

// AllConflicts evaluates the pitch and team checks independently against
// every existing match and collects everything found. A candidate can
// conflict with several matches at once, and can have a pitch conflict and
// a team conflict against different matches; the caller gets the complete
// picture rather than the first problem.
func AllConflicts(candidate *models.MatchTimeSlot, existing []*models.MatchTimeSlot, durationOverride *time.Duration) []models.Conflict {
	var conflicts []models.Conflict
	for _, other := range existing {
		if conflict := CheckPitchConflict(candidate, other, durationOverride); conflict != nil {
			conflicts = append(conflicts, *conflict)
		}
		if conflict := CheckTeamConflict(candidate, other, durationOverride); conflict != nil {
			conflicts = append(conflicts, *conflict)
		}
	}
	return conflicts
}
