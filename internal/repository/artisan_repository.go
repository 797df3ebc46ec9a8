package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artisanhub/internal/model"
)

// ArtisanRepository defines artisan persistence operations.
type ArtisanRepository interface {
	Update(ctx context.Context, artisan *model.Artisan) error
	FindByUserID(ctx context.Context, userID uint) (*model.Artisan, error)
	// FindOrCreateByUserID returns the artisan row for the user, inserting
	// an empty one if none exists. The insert is guarded by the unique
	// index on user_id: when two first-time updates race, the loser falls
	// back to fetching the winner's row.
	FindOrCreateByUserID(ctx context.Context, userID uint) (*model.Artisan, error)
	ListAll(ctx context.Context) ([]model.Artisan, error)
}

type artisanRepository struct {
	db *gorm.DB
}

// NewArtisanRepository builds a GORM-backed repository.
func NewArtisanRepository(db *gorm.DB) ArtisanRepository {
	return &artisanRepository{db: db}
}

func (r *artisanRepository) Update(ctx context.Context, artisan *model.Artisan) error {
	return r.db.WithContext(ctx).Save(artisan).Error
}

func (r *artisanRepository) FindByUserID(ctx context.Context, userID uint) (*model.Artisan, error) {
	var artisan model.Artisan
	if err := r.db.WithContext(ctx).Preload("Bookings").
		Where("user_id = ?", userID).First(&artisan).Error; err != nil {
		return nil, err
	}
	return &artisan, nil
}

func (r *artisanRepository) FindOrCreateByUserID(ctx context.Context, userID uint) (*model.Artisan, error) {
	var artisan model.Artisan
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&artisan).Error
	if err == nil {
		return &artisan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	artisan = model.Artisan{UserID: userID}
	if createErr := r.db.WithContext(ctx).Create(&artisan).Error; createErr != nil {
		// duplicate key: another request created the row first
		var existing model.Artisan
		if findErr := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; findErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &artisan, nil
}

func (r *artisanRepository) ListAll(ctx context.Context) ([]model.Artisan, error) {
	var artisans []model.Artisan
	if err := r.db.WithContext(ctx).Preload("User").Preload("Bookings").
		Find(&artisans).Error; err != nil {
		return nil, err
	}
	return artisans, nil
}
