package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pitchside/tournament-scheduler/models"
	"github.com/pitchside/tournament-scheduler/repositories"
	"github.com/pitchside/tournament-scheduler/storage"
)

type VenueService interface {
	GetVenue(ctx context.Context, id int) (*models.Venue, error)
	// UploadMap stores a venue map image and records its key, replacing a
	// previous map if one exists.
	UploadMap(ctx context.Context, venueID int, contentType string, reader io.Reader) (*models.Venue, error)
}

type venueService struct {
	venueRepo repositories.VenueRepository
	uploader  storage.FileUploader // nil when uploads are not configured
}

func NewVenueService(venueRepo repositories.VenueRepository, uploader storage.FileUploader) VenueService {
	return &venueService{
		venueRepo: venueRepo,
		uploader:  uploader,
	}
}

func (s *venueService) GetVenue(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	s.fillMapURL(venue)
	return venue, nil
}

func (s *venueService) UploadMap(ctx context.Context, venueID int, contentType string, reader io.Reader) (*models.Venue, error) {
	if s.uploader == nil {
		return nil, ErrUploadsNotConfigured
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("venues/%d/map-%d", venueID, time.Now().UnixNano())
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVenueMapUploadFailed, err)
	}

	oldKey := venue.MapKey
	if err := s.venueRepo.UpdateMapKey(ctx, venueID, &result.Key); err != nil {
		// Best effort: don't leave the freshly uploaded object orphaned.
		_ = s.uploader.Delete(ctx, result.Key)
		return nil, fmt.Errorf("failed to record venue map key: %w", err)
	}

	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	venue.MapKey = &result.Key
	s.fillMapURL(venue)
	return venue, nil
}

func (s *venueService) fillMapURL(venue *models.Venue) {
	if s.uploader == nil || venue.MapKey == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*venue.MapKey); url != "" {
		venue.MapURL = &url
	}
}
