package handlers

import (
	"fmt"
	"net/http"

	"github.com/pitchside/tournament-scheduler/models"
	"github.com/pitchside/tournament-scheduler/services"
	"github.com/pitchside/tournament-scheduler/utils"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// placementRequest carries timestamps as strings so that values with or
// without an explicit UTC marker are both accepted and read as UTC.
type placementRequest struct {
	MatchID       int     `json:"match_id"`
	PitchID       *int    `json:"pitch_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	MatchDuration *int    `json:"match_duration"`
}

type scheduleUpdateRequest struct {
	Placements []placementRequest `json:"placements"`
}

func (req *scheduleUpdateRequest) toBatch() (models.ScheduleBatch, error) {
	batch := models.ScheduleBatch{
		Placements: make([]models.SchedulePlacement, 0, len(req.Placements)),
	}
	for _, p := range req.Placements {
		placement := models.SchedulePlacement{
			MatchID:       p.MatchID,
			PitchID:       p.PitchID,
			MatchDuration: p.MatchDuration,
		}
		if p.StartTime != nil {
			start, err := utils.ParseUTCTime(*p.StartTime)
			if err != nil {
				return models.ScheduleBatch{}, fmt.Errorf("match %d: invalid start_time: %w", p.MatchID, err)
			}
			placement.StartTime = &start
		}
		if p.EndTime != nil {
			end, err := utils.ParseUTCTime(*p.EndTime)
			if err != nil {
				return models.ScheduleBatch{}, fmt.Errorf("match %d: invalid end_time: %w", p.MatchID, err)
			}
			placement.EndTime = &end
		}
		batch.Placements = append(batch.Placements, placement)
	}
	return batch, nil
}

// UpdateScheduleHandler applies a batch of placements to the tournament's
// schedule. The batch is all-or-nothing: any conflict rejects it entirely
// and the response lists every conflict found.
func (h *ScheduleHandler) UpdateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req scheduleUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	batch, err := req.toBatch()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scheduleService.UpdateSchedule(r.Context(), tournamentID, batch)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if result.HasConflicts() {
		if err := writeJSON(w, http.StatusConflict, jsonResponse{"rejected": result.Rejected}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"applied": result.Applied}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) ListScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	slots, err := h.scheduleService.ListSchedule(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": slots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
