package service

import (
	"context"
	"fmt"
	"log"

	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/geocode"
	"artisanhub/internal/model"
	"artisanhub/internal/repository"
)

// LocationService geocodes an artisan's stored address on demand.
type LocationService interface {
	// Locate re-geocodes the artisan's location, persists the refreshed
	// coordinates, and returns them.
	Locate(ctx context.Context, user *model.User) (lat, long float64, err error)
}

type locationService struct {
	artisans repository.ArtisanRepository
	geocoder geocode.Geocoder
}

// NewLocationService creates a location service.
func NewLocationService(artisans repository.ArtisanRepository, geocoder geocode.Geocoder) LocationService {
	return &locationService{artisans: artisans, geocoder: geocoder}
}

func (s *locationService) Locate(ctx context.Context, user *model.User) (float64, float64, error) {
	artisan, err := s.artisans.FindByUserID(ctx, user.ID)
	if err != nil {
		return 0, 0, apperrors.ErrArtisanNotFound
	}

	result, err := s.geocoder.Geocode(ctx, artisan.Location)
	if err != nil {
		log.Printf("locate user %d: geocode %q: %v", user.ID, artisan.Location, err)
		return 0, 0, apperrors.ErrGeocodeUnavailable
	}

	artisan.Latitude = result.Latitude
	artisan.Longitude = result.Longitude
	if err := s.artisans.Update(ctx, artisan); err != nil {
		return 0, 0, fmt.Errorf("persist coordinates: %w", err)
	}

	return artisan.Latitude, artisan.Longitude, nil
}
