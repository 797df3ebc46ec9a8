package service

import (
	"context"
	"log"
	"mime/multipart"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/geocode"
	"artisanhub/internal/model"
	"artisanhub/internal/repository"
)

// PictureSaver stores an uploaded profile picture and returns its generated
// file name. Implemented by imagestore.Store.
type PictureSaver interface {
	Save(file *multipart.FileHeader) (string, error)
}

// ProfileUpdate carries the validated form fields of a profile update.
type ProfileUpdate struct {
	Username       string
	Email          string
	PhoneNumber    string
	Location       string
	Specialization string
	Skills         string
	HourlyRate     decimal.Decimal
}

// ProfileService applies profile updates for artisan users and reads their
// profiles back.
type ProfileService interface {
	GetProfile(ctx context.Context, user *model.User) (*model.Artisan, error)
	// UpdateProfile overwrites the user's profile fields from the form,
	// lazily creating the artisan row on first update, stores an uploaded
	// picture when present, re-geocodes the location, and commits
	// everything in one transaction.
	UpdateProfile(ctx context.Context, user *model.User, upd ProfileUpdate, picture *multipart.FileHeader) (*model.Artisan, error)
}

type profileService struct {
	users    repository.UserRepository
	artisans repository.ArtisanRepository
	tx       repository.TxManager
	pictures PictureSaver
	geocoder geocode.Geocoder
}

// NewProfileService creates a new profile service.
func NewProfileService(
	users repository.UserRepository,
	artisans repository.ArtisanRepository,
	tx repository.TxManager,
	pictures PictureSaver,
	geocoder geocode.Geocoder,
) ProfileService {
	return &profileService{
		users:    users,
		artisans: artisans,
		tx:       tx,
		pictures: pictures,
		geocoder: geocoder,
	}
}

// GetProfile returns the user's artisan profile.
func (s *profileService) GetProfile(ctx context.Context, user *model.User) (*model.Artisan, error) {
	artisan, err := s.artisans.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.ErrArtisanNotFound
	}
	artisan.User = *user
	return artisan, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, user *model.User, upd ProfileUpdate, picture *multipart.FileHeader) (*model.Artisan, error) {
	// Any non-empty upload counts as a new picture. The previous file, if
	// any, stays on disk.
	if picture != nil && picture.Size > 0 {
		name, err := s.pictures.Save(picture)
		if err != nil {
			log.Printf("profile update for user %d: save picture: %v", user.ID, err)
			return nil, apperrors.ErrUpdateFailed
		}
		user.ImageFile = name
	}

	email := strings.ToLower(upd.Email)
	user.Username = upd.Username
	user.Email = email
	user.PhoneNumber = upd.PhoneNumber
	user.Location = upd.Location

	// Geocode outside the transaction; a failure keeps the previous
	// coordinates, which then lag the new address until the next lookup.
	var coords *geocode.Result
	if result, err := s.geocoder.Geocode(ctx, upd.Location); err != nil {
		log.Printf("profile update for user %d: geocode %q: %v", user.ID, upd.Location, err)
	} else {
		coords = result
	}

	var updated *model.Artisan
	err := s.tx.Do(ctx, func(ctx context.Context, users repository.UserRepository, artisans repository.ArtisanRepository) error {
		if err := users.Update(ctx, user); err != nil {
			return err
		}

		artisan, err := artisans.FindOrCreateByUserID(ctx, user.ID)
		if err != nil {
			return err
		}

		artisan.Name = upd.Username
		artisan.Email = email
		artisan.PhoneNumber = upd.PhoneNumber
		artisan.Location = upd.Location
		artisan.Specialization = upd.Specialization
		artisan.Skills = upd.Skills
		artisan.HourlyRate = upd.HourlyRate
		if coords != nil {
			artisan.Latitude = coords.Latitude
			artisan.Longitude = coords.Longitude
		}

		if err := artisans.Update(ctx, artisan); err != nil {
			return err
		}
		updated = artisan
		return nil
	})
	if err != nil {
		log.Printf("profile update for user %d: %v", user.ID, err)
		return nil, apperrors.ErrUpdateFailed
	}

	updated.User = *user
	return updated, nil
}
