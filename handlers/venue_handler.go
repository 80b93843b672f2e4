package handlers

import (
	"errors"
	"net/http"

	"github.com/pitchside/tournament-scheduler/services"
)

const maxMapUploadSize = 10 << 20 // 10MB

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(venueService services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) GetVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.GetVenue(r.Context(), venueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadVenueMapHandler accepts a multipart form with a "map" image and
// stores it as the venue's map.
func (h *VenueHandler) UploadVenueMapHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxMapUploadSize); err != nil {
		badRequestResponse(w, r, errors.New("request is not a valid multipart form"))
		return
	}

	file, header, err := r.FormFile("map")
	if err != nil {
		badRequestResponse(w, r, errors.New("form must contain a \"map\" file"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" && contentType != "image/webp" {
		badRequestResponse(w, r, errors.New("map must be a png, jpeg or webp image"))
		return
	}

	venue, err := h.venueService.UploadMap(r.Context(), venueID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
