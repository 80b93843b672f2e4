package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pitchside/tournament-scheduler/models"
	"github.com/pitchside/tournament-scheduler/realtime"
	"github.com/pitchside/tournament-scheduler/repositories"
	"github.com/pitchside/tournament-scheduler/scheduling"
)

// errBatchConflicts aborts the schedule transaction when the batch was
// rejected. It never leaves UpdateSchedule: conflicts are a normal outcome,
// reported as data.
var errBatchConflicts = errors.New("schedule batch has conflicts")

// ConflictDetail is one conflict as reported to the caller: which match is
// in the way, why, who plays in it and when.
type ConflictDetail struct {
	ConflictingMatchID int                 `json:"conflicting_match_id"`
	ConflictType       models.ConflictType `json:"conflict_type"`
	Teams              string              `json:"teams"`
	StartTime          time.Time           `json:"start_time"`
	EndTime            time.Time           `json:"end_time"`
}

// PlacementRejection aggregates every conflict found for one placement.
type PlacementRejection struct {
	MatchID   int              `json:"match_id"`
	Conflicts []ConflictDetail `json:"conflicts"`
}

// ScheduleUpdateResult is the outcome of one batch update: either the batch
// was applied in full, or it was rejected in full with the complete list of
// conflicts across all placements.
type ScheduleUpdateResult struct {
	Applied  []*models.MatchTimeSlot `json:"applied,omitempty"`
	Rejected []PlacementRejection    `json:"rejected,omitempty"`
}

func (r *ScheduleUpdateResult) HasConflicts() bool {
	return len(r.Rejected) > 0
}

type ScheduleService interface {
	// UpdateSchedule validates and applies a batch of placements for one
	// tournament as a single all-or-nothing unit.
	UpdateSchedule(ctx context.Context, tournamentID int, batch models.ScheduleBatch) (*ScheduleUpdateResult, error)
	ListSchedule(ctx context.Context, tournamentID int) ([]*models.MatchTimeSlot, error)
}

type scheduleService struct {
	slotRepo       repositories.MatchSlotRepository
	tournamentRepo repositories.TournamentRepository
	pitchRepo      repositories.PitchRepository
	teamRepo       repositories.TeamRepository
	hub            *realtime.Hub
	logger         *slog.Logger
}

func NewScheduleService(
	slotRepo repositories.MatchSlotRepository,
	tournamentRepo repositories.TournamentRepository,
	pitchRepo repositories.PitchRepository,
	teamRepo repositories.TeamRepository,
	hub *realtime.Hub,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		slotRepo:       slotRepo,
		tournamentRepo: tournamentRepo,
		pitchRepo:      pitchRepo,
		teamRepo:       teamRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, tournamentID int, batch models.ScheduleBatch) (*ScheduleUpdateResult, error) {
	if len(batch.Placements) == 0 {
		return nil, ErrScheduleBatchEmpty
	}

	batchIDs := make([]int, 0, len(batch.Placements))
	seen := make(map[int]struct{}, len(batch.Placements))
	for _, placement := range batch.Placements {
		if _, dup := seen[placement.MatchID]; dup {
			return nil, fmt.Errorf("%w: match %d", ErrScheduleBatchDuplicateMatch, placement.MatchID)
		}
		seen[placement.MatchID] = struct{}{}
		batchIDs = append(batchIDs, placement.MatchID)
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	existingByID, err := s.validateBatchMembership(ctx, tournamentID, batchIDs)
	if err != nil {
		return nil, err
	}

	if err := s.validatePitches(ctx, batch.Placements); err != nil {
		return nil, err
	}

	// The proposed slot is the stored match with the placement applied on
	// top: teams and division always come from the store, never from the
	// request.
	proposed := make([]*models.MatchTimeSlot, 0, len(batch.Placements))
	for _, placement := range batch.Placements {
		slot := *existingByID[placement.MatchID]
		slot.PitchID = placement.PitchID
		slot.StartTime = placement.StartTime
		slot.EndTime = placement.EndTime
		if placement.MatchDuration != nil {
			slot.MatchDuration = placement.MatchDuration
		}
		proposed = append(proposed, &slot)
	}

	var conflictsByMatch map[int][]models.Conflict
	txErr := s.slotRepo.InTx(ctx, func(store repositories.MatchSlotStore) error {
		// Reset on every attempt so a serialization retry starts clean.
		conflictsByMatch = make(map[int][]models.Conflict)

		for _, candidate := range proposed {
			// A placement without a pitch or a start time is being taken
			// off the board; nothing to check.
			if candidate.PitchID == nil || candidate.StartTime == nil {
				continue
			}

			candidates, err := s.collectCandidates(ctx, store, tournamentID, candidate, batchIDs, proposed)
			if err != nil {
				return err
			}

			if conflicts := scheduling.AllConflicts(candidate, candidates, nil); len(conflicts) > 0 {
				conflictsByMatch[candidate.ID] = conflicts
			}
		}

		if len(conflictsByMatch) > 0 {
			return errBatchConflicts
		}

		for _, placement := range batch.Placements {
			if err := store.UpdatePlacement(ctx, tournamentID, placement); err != nil {
				return fmt.Errorf("placement for match %d: %w", placement.MatchID, err)
			}
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, errBatchConflicts) {
			rejected, err := s.buildRejections(ctx, batch.Placements, conflictsByMatch)
			if err != nil {
				return nil, err
			}
			s.logger.Info("schedule batch rejected",
				slog.Int("tournament_id", tournamentID),
				slog.Int("placements", len(batch.Placements)),
				slog.Int("placements_with_conflicts", len(rejected)))
			return &ScheduleUpdateResult{Rejected: rejected}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrScheduleApplyFailed, txErr)
	}

	applied, err := s.slotRepo.FindByTournamentAndIDs(ctx, tournamentID, batchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to reload applied placements: %w", err)
	}

	s.logger.Info("schedule batch applied",
		slog.Int("tournament_id", tournamentID),
		slog.Int("placements", len(applied)))

	if s.hub != nil {
		s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), realtime.Message{
			Type:    realtime.MessageScheduleUpdated,
			Payload: applied,
		})
	}

	return &ScheduleUpdateResult{Applied: applied}, nil
}

func (s *scheduleService) ListSchedule(ctx context.Context, tournamentID int) ([]*models.MatchTimeSlot, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}
	return s.slotRepo.ListByTournament(ctx, tournamentID)
}

// validateBatchMembership checks that every placement names a match of this
// tournament. The whole batch fails on the first unknown id; no partial
// batch ever reaches conflict checking.
func (s *scheduleService) validateBatchMembership(ctx context.Context, tournamentID int, batchIDs []int) (map[int]*models.MatchTimeSlot, error) {
	matches, err := s.slotRepo.FindByTournamentAndIDs(ctx, tournamentID, batchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch matches: %w", err)
	}

	existingByID := make(map[int]*models.MatchTimeSlot, len(matches))
	for _, match := range matches {
		existingByID[match.ID] = match
	}
	for _, id := range batchIDs {
		if _, ok := existingByID[id]; !ok {
			return nil, fmt.Errorf("%w: match %d", ErrScheduleMatchNotInTournament, id)
		}
	}
	return existingByID, nil
}

func (s *scheduleService) validatePitches(ctx context.Context, placements []models.SchedulePlacement) error {
	checked := make(map[int]struct{})
	for _, placement := range placements {
		if placement.PitchID == nil {
			continue
		}
		if _, done := checked[*placement.PitchID]; done {
			continue
		}
		checked[*placement.PitchID] = struct{}{}

		if _, err := s.pitchRepo.GetByID(ctx, *placement.PitchID); err != nil {
			if errors.Is(err, repositories.ErrPitchNotFound) {
				return fmt.Errorf("%w: pitch %d", ErrSchedulePitchUnknown, *placement.PitchID)
			}
			return fmt.Errorf("failed to load pitch %d: %w", *placement.PitchID, err)
		}
	}
	return nil
}

// collectCandidates gathers every match the candidate has to be checked
// against: stored matches on the same pitch, stored matches involving
// either of its teams, and the proposed placements of its batch siblings.
// Stored rows of other batch members are excluded; their old placements are
// replaced by this very batch, and checking them would reject legal swaps.
func (s *scheduleService) collectCandidates(
	ctx context.Context,
	store repositories.MatchSlotStore,
	tournamentID int,
	candidate *models.MatchTimeSlot,
	batchIDs []int,
	proposed []*models.MatchTimeSlot,
) ([]*models.MatchTimeSlot, error) {
	from := *candidate.StartTime
	to := scheduling.ResolveEndTime(candidate, nil)

	candidates := make([]*models.MatchTimeSlot, 0)
	added := make(map[int]struct{})
	add := func(slots []*models.MatchTimeSlot) {
		for _, slot := range slots {
			if _, ok := added[slot.ID]; ok {
				continue
			}
			added[slot.ID] = struct{}{}
			candidates = append(candidates, slot)
		}
	}

	pitchCandidates, err := store.FindPitchCandidates(ctx, tournamentID, *candidate.PitchID, from, to, batchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load pitch candidates for match %d: %w", candidate.ID, err)
	}
	add(pitchCandidates)

	if candidate.HomeTeamID != nil && candidate.AwayTeamID != nil {
		teamCandidates, err := store.FindTeamCandidates(ctx, tournamentID, *candidate.HomeTeamID, *candidate.AwayTeamID, from, to, batchIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load team candidates for match %d: %w", candidate.ID, err)
		}
		add(teamCandidates)
	}

	for _, sibling := range proposed {
		if sibling.ID == candidate.ID {
			continue
		}
		add([]*models.MatchTimeSlot{sibling})
	}

	return candidates, nil
}

// buildRejections turns the raw conflicts into the report returned to the
// caller, resolving team names for every conflicting match concurrently.
func (s *scheduleService) buildRejections(ctx context.Context, placements []models.SchedulePlacement, conflictsByMatch map[int][]models.Conflict) ([]PlacementRejection, error) {
	teamIDs := make(map[int]struct{})
	for _, conflicts := range conflictsByMatch {
		for _, conflict := range conflicts {
			match := conflict.ConflictingMatch
			if match == nil {
				continue
			}
			if match.HomeTeamID != nil {
				teamIDs[*match.HomeTeamID] = struct{}{}
			}
			if match.AwayTeamID != nil {
				teamIDs[*match.AwayTeamID] = struct{}{}
			}
		}
	}

	var mu sync.Mutex
	teams := make(map[int]*models.Team, len(teamIDs))
	g, gCtx := errgroup.WithContext(ctx)
	for id := range teamIDs {
		id := id
		g.Go(func() error {
			team, err := s.teamRepo.GetByID(gCtx, id)
			if err != nil {
				if errors.Is(err, repositories.ErrTeamNotFound) {
					return nil // label falls back to the match id
				}
				return fmt.Errorf("failed to load team %d: %w", id, err)
			}
			mu.Lock()
			teams[id] = team
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Keep the batch order in the report.
	rejections := make([]PlacementRejection, 0, len(conflictsByMatch))
	for _, placement := range placements {
		conflicts, ok := conflictsByMatch[placement.MatchID]
		if !ok {
			continue
		}

		details := make([]ConflictDetail, 0, len(conflicts))
		for _, conflict := range conflicts {
			match := conflict.ConflictingMatch
			if match.HomeTeamID != nil {
				match.HomeTeam = teams[*match.HomeTeamID]
			}
			if match.AwayTeamID != nil {
				match.AwayTeam = teams[*match.AwayTeamID]
			}
			details = append(details, ConflictDetail{
				ConflictingMatchID: conflict.ConflictingMatchID,
				ConflictType:       conflict.Type,
				Teams:              match.TeamsLabel(),
				StartTime:          *match.StartTime,
				EndTime:            scheduling.ResolveEndTime(match, nil),
			})
		}
		rejections = append(rejections, PlacementRejection{
			MatchID:   placement.MatchID,
			Conflicts: details,
		})
	}
	return rejections, nil
}
