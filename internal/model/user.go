package model

import (
	"time"

	"gorm.io/gorm"
)

// Roles form a closed set; every user carries exactly one.
const (
	RoleClient  = "Client"
	RoleArtisan = "Artisan"
)

// User represents an authenticated user in the marketplace.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	PhoneNumber  string         `json:"phone_number" gorm:"size:64"`
	Location     string         `json:"location" gorm:"size:512"` // free-text address
	Role         string         `json:"role" gorm:"size:50;not null;index"`
	ImageFile    string         `json:"image_file" gorm:"size:255"` // generated picture name, not a path
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Artisan *Artisan `json:"artisan,omitempty" gorm:"foreignKey:UserID"`
}

// IsArtisan reports whether the user carries the provider role.
func (u *User) IsArtisan() bool {
	return u.Role == RoleArtisan
}
