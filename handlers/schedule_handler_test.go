package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/tournament-scheduler/models"
	"github.com/pitchside/tournament-scheduler/services"
)

type fakeScheduleService struct {
	updateResult    *services.ScheduleUpdateResult
	updateErr       error
	gotTournamentID int
	gotBatch        models.ScheduleBatch

	listSlots []*models.MatchTimeSlot
	listErr   error
}

func (f *fakeScheduleService) UpdateSchedule(ctx context.Context, tournamentID int, batch models.ScheduleBatch) (*services.ScheduleUpdateResult, error) {
	f.gotTournamentID = tournamentID
	f.gotBatch = batch
	return f.updateResult, f.updateErr
}

func (f *fakeScheduleService) ListSchedule(ctx context.Context, tournamentID int) ([]*models.MatchTimeSlot, error) {
	f.gotTournamentID = tournamentID
	return f.listSlots, f.listErr
}

func newScheduleRouter(service services.ScheduleService) *chi.Mux {
	handler := NewScheduleHandler(service)
	router := chi.NewRouter()
	router.Route("/tournaments/{tournamentID}/schedule", func(r chi.Router) {
		r.Get("/", handler.ListScheduleHandler)
		r.Put("/", handler.UpdateScheduleHandler)
	})
	return router
}

func TestUpdateScheduleHandlerApplied(t *testing.T) {
	fake := &fakeScheduleService{
		updateResult: &services.ScheduleUpdateResult{
			Applied: []*models.MatchTimeSlot{{ID: 1, TournamentID: 7}},
		},
	}
	router := newScheduleRouter(fake)

	body := `{"placements":[{"match_id":1,"pitch_id":2,"start_time":"2025-06-14T14:00:00","end_time":"2025-06-14T15:30:00Z"}]}`
	req := httptest.NewRequest(http.MethodPut, "/tournaments/7/schedule", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied"`)
	assert.Equal(t, 7, fake.gotTournamentID)

	// Timestamps with and without the Z marker both come through as UTC.
	require.Len(t, fake.gotBatch.Placements, 1)
	placement := fake.gotBatch.Placements[0]
	require.NotNil(t, placement.StartTime)
	assert.Equal(t, time.Date(2025, time.June, 14, 14, 0, 0, 0, time.UTC), *placement.StartTime)
	require.NotNil(t, placement.EndTime)
	assert.Equal(t, time.Date(2025, time.June, 14, 15, 30, 0, 0, time.UTC), *placement.EndTime)
}

func TestUpdateScheduleHandlerConflicts(t *testing.T) {
	fake := &fakeScheduleService{
		updateResult: &services.ScheduleUpdateResult{
			Rejected: []services.PlacementRejection{{
				MatchID: 1,
				Conflicts: []services.ConflictDetail{{
					ConflictingMatchID: 2,
					ConflictType:       models.ConflictTypePitch,
					Teams:              "Foxes vs Badgers",
				}},
			}},
		},
	}
	router := newScheduleRouter(fake)

	body := `{"placements":[{"match_id":1,"pitch_id":2,"start_time":"2025-06-14T14:00:00Z"}]}`
	req := httptest.NewRequest(http.MethodPut, "/tournaments/7/schedule", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rejected"`)
	assert.Contains(t, rec.Body.String(), `"conflicting_match_id": 2`)
}

func TestUpdateScheduleHandlerBadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
		body string
	}{
		{"malformed json", "/tournaments/7/schedule", `{"placements":`},
		{"unparseable timestamp", "/tournaments/7/schedule", `{"placements":[{"match_id":1,"start_time":"tomorrow-ish"}]}`},
		{"unknown field", "/tournaments/7/schedule", `{"matches":[]}`},
		{"bad tournament id", "/tournaments/zero/schedule", `{"placements":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newScheduleRouter(&fakeScheduleService{})
			req := httptest.NewRequest(http.MethodPut, tt.url, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateScheduleHandlerServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown tournament", services.ErrTournamentNotFound, http.StatusNotFound},
		{"empty batch", services.ErrScheduleBatchEmpty, http.StatusBadRequest},
		{"foreign match", services.ErrScheduleMatchNotInTournament, http.StatusUnprocessableEntity},
		{"unknown pitch", services.ErrSchedulePitchUnknown, http.StatusUnprocessableEntity},
		{"store failure", services.ErrScheduleApplyFailed, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newScheduleRouter(&fakeScheduleService{updateErr: tt.err})
			body := `{"placements":[{"match_id":1}]}`
			req := httptest.NewRequest(http.MethodPut, "/tournaments/7/schedule", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestListScheduleHandler(t *testing.T) {
	fake := &fakeScheduleService{
		listSlots: []*models.MatchTimeSlot{{ID: 1, TournamentID: 7}, {ID: 2, TournamentID: 7}},
	}
	router := newScheduleRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/tournaments/7/schedule", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"schedule"`)
	assert.Equal(t, 7, fake.gotTournamentID)
}

func TestListScheduleHandlerNotFound(t *testing.T) {
	router := newScheduleRouter(&fakeScheduleService{listErr: services.ErrTournamentNotFound})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/99/schedule", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
