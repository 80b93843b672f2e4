package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/tournament-scheduler/models"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// slot builds a fully placed match on pitch 1 between teams 10 and 20
// unless overridden by the mutators.
func slot(id int, start, end time.Time, mutators ...func(*models.MatchTimeSlot)) *models.MatchTimeSlot {
	s := &models.MatchTimeSlot{
		ID:           id,
		TournamentID: 1,
		PitchID:      intPtr(1),
		HomeTeamID:   intPtr(10),
		AwayTeamID:   intPtr(20),
		StartTime:    timePtr(start),
		EndTime:      timePtr(end),
	}
	for _, mutate := range mutators {
		mutate(s)
	}
	return s
}

func withPitch(id int) func(*models.MatchTimeSlot) {
	return func(s *models.MatchTimeSlot) { s.PitchID = intPtr(id) }
}

func withTeams(home, away int) func(*models.MatchTimeSlot) {
	return func(s *models.MatchTimeSlot) {
		s.HomeTeamID = intPtr(home)
		s.AwayTeamID = intPtr(away)
	}
}

func withDivision(id int) func(*models.MatchTimeSlot) {
	return func(s *models.MatchTimeSlot) { s.DivisionID = intPtr(id) }
}

func TestResolveEndTime(t *testing.T) {
	start := at(14, 0)

	t.Run("explicit end time wins", func(t *testing.T) {
		s := slot(1, start, at(15, 10))
		s.MatchDuration = intPtr(45)
		assert.Equal(t, at(15, 10), ResolveEndTime(s, nil))
	})

	t.Run("duration override beats slot duration", func(t *testing.T) {
		s := slot(1, start, at(15, 0))
		s.EndTime = nil
		s.MatchDuration = intPtr(45)
		override := 30 * time.Minute
		assert.Equal(t, at(14, 30), ResolveEndTime(s, &override))
	})

	t.Run("slot duration", func(t *testing.T) {
		s := slot(1, start, at(15, 0))
		s.EndTime = nil
		s.MatchDuration = intPtr(45)
		assert.Equal(t, at(14, 45), ResolveEndTime(s, nil))
	})

	t.Run("defaults to 90 minutes", func(t *testing.T) {
		s := slot(1, start, at(15, 0))
		s.EndTime = nil
		assert.Equal(t, at(15, 30), ResolveEndTime(s, nil))
	})
}

func TestCheckPitchConflict(t *testing.T) {
	existing := slot(2, at(14, 0), at(15, 30))

	t.Run("overlapping matches on one pitch conflict", func(t *testing.T) {
		candidate := slot(1, at(14, 30), at(16, 0), withTeams(30, 40))
		conflict := CheckPitchConflict(candidate, existing, nil)
		require.NotNil(t, conflict)
		assert.Equal(t, models.ConflictTypePitch, conflict.Type)
		assert.Equal(t, existing.ID, conflict.ConflictingMatchID)
		assert.Same(t, existing, conflict.ConflictingMatch)
	})

	t.Run("different pitch clears the conflict", func(t *testing.T) {
		candidate := slot(1, at(14, 30), at(16, 0), withPitch(2))
		assert.Nil(t, CheckPitchConflict(candidate, existing, nil))
	})

	t.Run("different divisions still conflict", func(t *testing.T) {
		candidate := slot(1, at(14, 30), at(16, 0), withDivision(7))
		other := slot(2, at(14, 0), at(15, 30), withDivision(8))
		assert.NotNil(t, CheckPitchConflict(candidate, other, nil))
	})

	t.Run("a match never conflicts with itself", func(t *testing.T) {
		candidate := slot(2, at(14, 0), at(15, 30))
		assert.Nil(t, CheckPitchConflict(candidate, existing, nil))
	})

	t.Run("missing pitch means no pitch conflict", func(t *testing.T) {
		candidate := slot(1, at(14, 30), at(16, 0))
		candidate.PitchID = nil
		assert.Nil(t, CheckPitchConflict(candidate, existing, nil))
	})

	t.Run("missing start time skips the check", func(t *testing.T) {
		candidate := slot(1, at(14, 30), at(16, 0))
		candidate.StartTime = nil
		assert.Nil(t, CheckPitchConflict(candidate, existing, nil))
	})

	t.Run("adjacent windows do not conflict", func(t *testing.T) {
		candidate := slot(1, at(15, 30), at(17, 0))
		assert.Nil(t, CheckPitchConflict(candidate, existing, nil))
	})
}

func TestCheckTeamConflict(t *testing.T) {
	existing := slot(2, at(14, 0), at(15, 30), withTeams(10, 20))

	t.Run("shared home team conflicts", func(t *testing.T) {
		candidate := slot(1, at(14, 15), at(15, 45), withPitch(2), withTeams(10, 30))
		conflict := CheckTeamConflict(candidate, existing, nil)
		require.NotNil(t, conflict)
		assert.Equal(t, models.ConflictTypeTeam, conflict.Type)
		assert.Equal(t, existing.ID, conflict.ConflictingMatchID)
	})

	t.Run("candidate away side against existing home side", func(t *testing.T) {
		candidate := slot(1, at(14, 15), at(15, 45), withPitch(2), withTeams(30, 10))
		assert.NotNil(t, CheckTeamConflict(candidate, existing, nil))
	})

	t.Run("same teams at disjoint times do not conflict", func(t *testing.T) {
		candidate := slot(1, at(16, 0), at(17, 30), withTeams(10, 20))
		assert.Nil(t, CheckTeamConflict(candidate, existing, nil))
	})

	t.Run("no shared team means no conflict", func(t *testing.T) {
		candidate := slot(1, at(14, 15), at(15, 45), withTeams(30, 40))
		assert.Nil(t, CheckTeamConflict(candidate, existing, nil))
	})

	t.Run("missing team reference skips the check", func(t *testing.T) {
		candidate := slot(1, at(14, 15), at(15, 45), withTeams(10, 30))
		candidate.AwayTeamID = nil
		assert.Nil(t, CheckTeamConflict(candidate, existing, nil))
	})

	t.Run("self comparison is excluded", func(t *testing.T) {
		candidate := slot(2, at(14, 0), at(15, 30), withTeams(10, 20))
		assert.Nil(t, CheckTeamConflict(candidate, existing, nil))
	})
}

func TestResolveConflict(t *testing.T) {
	t.Run("pitch conflict takes precedence over team conflict", func(t *testing.T) {
		// Same pitch, same teams, overlapping: both checks would fire.
		existing := slot(2, at(14, 0), at(15, 30))
		candidate := slot(1, at(14, 30), at(16, 0))
		conflict := ResolveConflict(candidate, existing, nil)
		require.NotNil(t, conflict)
		assert.Equal(t, models.ConflictTypePitch, conflict.Type)
	})

	t.Run("team conflict surfaces when pitches differ", func(t *testing.T) {
		existing := slot(2, at(14, 0), at(15, 30))
		candidate := slot(1, at(14, 30), at(16, 0), withPitch(2))
		conflict := ResolveConflict(candidate, existing, nil)
		require.NotNil(t, conflict)
		assert.Equal(t, models.ConflictTypeTeam, conflict.Type)
	})

	t.Run("no conflict", func(t *testing.T) {
		existing := slot(2, at(14, 0), at(15, 30))
		candidate := slot(1, at(15, 30), at(17, 0), withPitch(2), withTeams(30, 40))
		assert.Nil(t, ResolveConflict(candidate, existing, nil))
	})
}

func TestFirstConflict(t *testing.T) {
	existing := []*models.MatchTimeSlot{
		slot(2, at(9, 0), at(10, 30), withTeams(30, 40)),
		slot(3, at(14, 0), at(15, 30), withTeams(30, 40)),
		slot(4, at(14, 45), at(16, 15), withTeams(50, 60)),
	}
	candidate := slot(1, at(14, 30), at(16, 0), withTeams(70, 80))

	conflict := FirstConflict(candidate, existing, nil)
	require.NotNil(t, conflict)
	assert.Equal(t, 3, conflict.ConflictingMatchID)

	clear := slot(1, at(10, 30), at(12, 0), withTeams(70, 80))
	assert.Nil(t, FirstConflict(clear, existing, nil))
}

func TestAllConflicts(t *testing.T) {
	// Candidate clashes on the pitch with match 3 and on a team with
	// match 4, which sits on another pitch.
	existing := []*models.MatchTimeSlot{
		slot(3, at(14, 0), at(15, 30), withTeams(30, 40)),
		slot(4, at(14, 45), at(16, 15), withPitch(2), withTeams(50, 70)),
		slot(5, at(18, 0), at(19, 30), withTeams(30, 40)),
	}
	candidate := slot(1, at(14, 30), at(16, 0), withTeams(70, 80))

	conflicts := AllConflicts(candidate, existing, nil)
	require.Len(t, conflicts, 2)

	byMatch := map[int]models.ConflictType{}
	for _, c := range conflicts {
		byMatch[c.ConflictingMatchID] = c.Type
	}
	assert.Equal(t, models.ConflictTypePitch, byMatch[3])
	assert.Equal(t, models.ConflictTypeTeam, byMatch[4])
}
