package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Artisan is the service-provider profile attached to exactly one user.
// It is created lazily the first time an artisan-role user submits a
// profile update; the unique index on UserID guarantees a single row per
// user even under concurrent first updates.
type Artisan struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	Name           string          `json:"name" gorm:"size:255;index"`
	Email          string          `json:"email" gorm:"size:255"`
	PhoneNumber    string          `json:"phone_number" gorm:"size:64"`
	Location       string          `json:"location" gorm:"size:512"`
	// Latitude/Longitude are derived from Location by geocoding and may be
	// stale relative to it until the next successful lookup.
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Specialization string          `json:"specialization" gorm:"size:255"`
	Skills         string          `json:"skills" gorm:"type:text"`
	HourlyRate     decimal.Decimal `json:"salary_per_hour" gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:ArtisanID"`
}
