package scheduling

import (
	"time"

	"github.com/pitchside/tournament-scheduler/models"
)

// DefaultMatchDuration is assumed when a match carries neither an explicit
// end time nor a duration of its own.
const DefaultMatchDuration = 90 * time.Minute

// ResolveEndTime derives the effective end instant of a slot. An explicit
// end time always wins; otherwise the duration override, then the slot's
// own duration, then the default are added to the start time. Callers
// guarantee the slot has a start time.
func ResolveEndTime(slot *models.MatchTimeSlot, durationOverride *time.Duration) time.Time {
	if slot.EndTime != nil {
		return *slot.EndTime
	}
	duration := DefaultMatchDuration
	switch {
	case durationOverride != nil:
		duration = *durationOverride
	case slot.MatchDuration != nil:
		duration = time.Duration(*slot.MatchDuration) * time.Minute
	}
	return slot.StartTime.Add(duration)
}

// CheckPitchConflict reports whether candidate and existing claim the same
// pitch during overlapping windows. A pitch is a physical resource, so the
// divisions the two matches belong to are deliberately not consulted.
// Returns nil when there is no conflict.
func CheckPitchConflict(candidate, existing *models.MatchTimeSlot, durationOverride *time.Duration) *models.Conflict {
	if candidate.ID == existing.ID {
		return nil
	}
	if candidate.PitchID == nil || existing.PitchID == nil || *candidate.PitchID != *existing.PitchID {
		return nil
	}
	if candidate.StartTime == nil || existing.StartTime == nil {
		return nil
	}

	candidateEnd := ResolveEndTime(candidate, durationOverride)
	existingEnd := ResolveEndTime(existing, durationOverride)
	if !Overlaps(*candidate.StartTime, candidateEnd, *existing.StartTime, existingEnd) {
		return nil
	}

	return &models.Conflict{
		Type:               models.ConflictTypePitch,
		ConflictingMatchID: existing.ID,
		ConflictingMatch:   existing,
	}
}

// CheckTeamConflict reports whether candidate and existing require the same
// team during overlapping windows. A slot missing either of its two team
// references never produces a team conflict.
func CheckTeamConflict(candidate, existing *models.MatchTimeSlot, durationOverride *time.Duration) *models.Conflict {
	if candidate.ID == existing.ID {
		return nil
	}
	if candidate.StartTime == nil || existing.StartTime == nil {
		return nil
	}
	if candidate.HomeTeamID == nil || candidate.AwayTeamID == nil ||
		existing.HomeTeamID == nil || existing.AwayTeamID == nil {
		return nil
	}
	if !sharesTeam(candidate, existing) {
		return nil
	}

	candidateEnd := ResolveEndTime(candidate, durationOverride)
	existingEnd := ResolveEndTime(existing, durationOverride)
	if !Overlaps(*candidate.StartTime, candidateEnd, *existing.StartTime, existingEnd) {
		return nil
	}

	return &models.Conflict{
		Type:               models.ConflictTypeTeam,
		ConflictingMatchID: existing.ID,
		ConflictingMatch:   existing,
	}
}

// sharesTeam tests all four home/away pairings: a team cannot play two
// matches at once no matter which side it is listed on.
func sharesTeam(a, b *models.MatchTimeSlot) bool {
	return *a.HomeTeamID == *b.HomeTeamID ||
		*a.HomeTeamID == *b.AwayTeamID ||
		*a.AwayTeamID == *b.HomeTeamID ||
		*a.AwayTeamID == *b.AwayTeamID
}

// ResolveConflict checks candidate against one existing match. The pitch
// check runs first: it is the primary signal shown to schedulers, and the
// team check only gets a say when the pitch is clear.
func ResolveConflict(candidate, existing *models.MatchTimeSlot, durationOverride *time.Duration) *models.Conflict {
	if conflict := CheckPitchConflict(candidate, existing, durationOverride); conflict != nil {
		return conflict
	}
	return CheckTeamConflict(candidate, existing, durationOverride)
}
