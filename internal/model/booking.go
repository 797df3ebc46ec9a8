package model

import (
	"time"

	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusAccepted  BookingStatus = "Accepted"
	BookingStatusRejected  BookingStatus = "Rejected"
	BookingStatusCompleted BookingStatus = "Completed"
)

// Booking links a client to an artisan for a requested service. The profile
// endpoints expose bookings read-only; creating and transitioning them is
// handled by the booking flow, not this service.
type Booking struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	ClientID       uint           `json:"client_id" gorm:"not null;index"`
	ArtisanID      uint           `json:"artisan_id" gorm:"not null;index"`
	Title          string         `json:"title" gorm:"size:50;not null;default:'service'"`
	Status         BookingStatus  `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	RequestDate    time.Time      `json:"request_date" gorm:"autoCreateTime"`
	CompletionDate *time.Time     `json:"completion_date"`
	Details        string         `json:"details" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Client  User    `json:"-" gorm:"foreignKey:ClientID"`
	Artisan Artisan `json:"-" gorm:"foreignKey:ArtisanID"`
}
