package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/pitchside/tournament-scheduler/models"
)

var (
	ErrMatchSlotNotFound     = errors.New("match time slot not found")
	ErrMatchSlotPitchInvalid = errors.New("match pitch conflict or invalid")
)

// serializationRetries bounds how often a schedule transaction is retried
// after a serialization failure before giving up.
const serializationRetries = 3

// MatchSlotStore is the slice of the repository available inside a schedule
// transaction. Candidate queries use the general half-open overlap
// condition against [from, to), and never filter by division or group.
type MatchSlotStore interface {
	// FindPitchCandidates returns scheduled matches of the tournament on the
	// given pitch whose window overlaps [from, to), excluding the given ids.
	FindPitchCandidates(ctx context.Context, tournamentID, pitchID int, from, to time.Time, excludeIDs []int) ([]*models.MatchTimeSlot, error)
	// FindTeamCandidates returns scheduled matches of the tournament that
	// involve either team and whose window overlaps [from, to), excluding
	// the given ids. Needed because a team double-booking can sit on any
	// pitch.
	FindTeamCandidates(ctx context.Context, tournamentID, homeTeamID, awayTeamID int, from, to time.Time, excludeIDs []int) ([]*models.MatchTimeSlot, error)
	// UpdatePlacement writes one placement of the batch.
	UpdatePlacement(ctx context.Context, tournamentID int, placement models.SchedulePlacement) error
}

type MatchSlotRepository interface {
	MatchSlotStore
	FindByTournamentAndIDs(ctx context.Context, tournamentID int, ids []int) ([]*models.MatchTimeSlot, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchTimeSlot, error)
	// InTx runs fn against a transaction-scoped store with serializable
	// isolation, retrying on serialization failure. The check-then-act
	// sequence of a schedule update must live entirely inside one call.
	InTx(ctx context.Context, fn func(MatchSlotStore) error) error
}

type postgresMatchSlotRepository struct {
	db   *sql.DB
	exec SQLExecutor
}

func NewPostgresMatchSlotRepository(db *sql.DB) MatchSlotRepository {
	return &postgresMatchSlotRepository{db: db, exec: db}
}

const matchSlotColumns = `id, tournament_id, division_id, pitch_id, home_team_id, away_team_id, start_time, end_time, duration_mins`

// resolvedEndExpr mirrors scheduling.ResolveEndTime in SQL: explicit end
// time, else start plus the match's duration, else start plus 90 minutes.
const resolvedEndExpr = `COALESCE(end_time, start_time + make_interval(mins => COALESCE(duration_mins, 90)))`

func (r *postgresMatchSlotRepository) InTx(ctx context.Context, fn func(MatchSlotStore) error) error {
	var lastErr error
	for attempt := 0; attempt < serializationRetries; attempt++ {
		tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return fmt.Errorf("failed to begin schedule transaction: %w", err)
		}

		err = fn(&postgresMatchSlotRepository{db: r.db, exec: tx})
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
			}
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err = tx.Commit(); err != nil {
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("failed to commit schedule transaction: %w", err)
		}
		return nil
	}
	return fmt.Errorf("schedule transaction aborted after %d serialization failures: %w", serializationRetries, lastErr)
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001" // serialization_failure
}

func (r *postgresMatchSlotRepository) FindByTournamentAndIDs(ctx context.Context, tournamentID int, ids []int) ([]*models.MatchTimeSlot, error) {
	query := `
		SELECT ` + matchSlotColumns + `
		FROM matches
		WHERE tournament_id = $1 AND id = ANY($2)
		ORDER BY id`

	rows, err := r.exec.QueryContext(ctx, query, tournamentID, pq.Array(int64Slice(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatchSlots(rows)
}

func (r *postgresMatchSlotRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchTimeSlot, error) {
	query := `
		SELECT m.id, m.tournament_id, m.division_id, m.pitch_id, m.home_team_id, m.away_team_id,
		       m.start_time, m.end_time, m.duration_mins,
		       ht.name, aw.name
		FROM matches m
		LEFT JOIN teams ht ON ht.id = m.home_team_id
		LEFT JOIN teams aw ON aw.id = m.away_team_id
		WHERE m.tournament_id = $1
		ORDER BY m.start_time ASC NULLS LAST, m.id ASC`

	rows, err := r.exec.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*models.MatchTimeSlot, 0)
	for rows.Next() {
		var slot models.MatchTimeSlot
		var homeName, awayName *string
		if scanErr := rows.Scan(
			&slot.ID,
			&slot.TournamentID,
			&slot.DivisionID,
			&slot.PitchID,
			&slot.HomeTeamID,
			&slot.AwayTeamID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.MatchDuration,
			&homeName,
			&awayName,
		); scanErr != nil {
			return nil, scanErr
		}
		if slot.HomeTeamID != nil && homeName != nil {
			slot.HomeTeam = &models.Team{ID: *slot.HomeTeamID, TournamentID: slot.TournamentID, Name: *homeName}
		}
		if slot.AwayTeamID != nil && awayName != nil {
			slot.AwayTeam = &models.Team{ID: *slot.AwayTeamID, TournamentID: slot.TournamentID, Name: *awayName}
		}
		slots = append(slots, &slot)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *postgresMatchSlotRepository) FindPitchCandidates(ctx context.Context, tournamentID, pitchID int, from, to time.Time, excludeIDs []int) ([]*models.MatchTimeSlot, error) {
	query := `
		SELECT ` + matchSlotColumns + `
		FROM matches
		WHERE tournament_id = $1
		  AND pitch_id = $2
		  AND id <> ALL($3)
		  AND start_time IS NOT NULL
		  AND start_time < $4
		  AND ` + resolvedEndExpr + ` > $5
		ORDER BY start_time ASC, id ASC`

	rows, err := r.exec.QueryContext(ctx, query, tournamentID, pitchID, pq.Array(int64Slice(excludeIDs)), to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatchSlots(rows)
}

func (r *postgresMatchSlotRepository) FindTeamCandidates(ctx context.Context, tournamentID, homeTeamID, awayTeamID int, from, to time.Time, excludeIDs []int) ([]*models.MatchTimeSlot, error) {
	query := `
		SELECT ` + matchSlotColumns + `
		FROM matches
		WHERE tournament_id = $1
		  AND id <> ALL($2)
		  AND home_team_id IS NOT NULL
		  AND away_team_id IS NOT NULL
		  AND (home_team_id IN ($3, $4) OR away_team_id IN ($3, $4))
		  AND start_time IS NOT NULL
		  AND start_time < $5
		  AND ` + resolvedEndExpr + ` > $6
		ORDER BY start_time ASC, id ASC`

	rows, err := r.exec.QueryContext(ctx, query, tournamentID, pq.Array(int64Slice(excludeIDs)), homeTeamID, awayTeamID, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatchSlots(rows)
}

func (r *postgresMatchSlotRepository) UpdatePlacement(ctx context.Context, tournamentID int, placement models.SchedulePlacement) error {
	// pitch_id, start_time and end_time are written exactly as proposed
	// (nil clears them, which is how a match is unscheduled); the stored
	// duration is only replaced when the placement carries one.
	query := `
		UPDATE matches
		SET pitch_id = $1,
		    start_time = $2,
		    end_time = $3,
		    duration_mins = COALESCE($4, duration_mins)
		WHERE id = $5 AND tournament_id = $6`

	result, err := r.exec.ExecContext(ctx, query,
		placement.PitchID,
		placement.StartTime,
		placement.EndTime,
		placement.MatchDuration,
		placement.MatchID,
		tournamentID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "matches_pitch_id_fkey" {
				return ErrMatchSlotPitchInvalid
			}
		}
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrMatchSlotNotFound
	}
	return nil
}

func scanMatchSlots(rows *sql.Rows) ([]*models.MatchTimeSlot, error) {
	slots := make([]*models.MatchTimeSlot, 0)
	for rows.Next() {
		var slot models.MatchTimeSlot
		if err := rows.Scan(
			&slot.ID,
			&slot.TournamentID,
			&slot.DivisionID,
			&slot.PitchID,
			&slot.HomeTeamID,
			&slot.AwayTeamID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.MatchDuration,
		); err != nil {
			return nil, err
		}
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func int64Slice(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
