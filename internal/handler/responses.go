package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"artisanhub/internal/model"
)

// BookingResponse is the read-only booking view embedded in artisan payloads.
type BookingResponse struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Details        string     `json:"details"`
	Status         string     `json:"status"`
	RequestDate    time.Time  `json:"request_date"`
	CompletionDate *time.Time `json:"completion_date"`
}

// ArtisanResponse is the serialized artisan profile returned by the profile
// and listing endpoints.
type ArtisanResponse struct {
	Username       string            `json:"username"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	PhoneNumber    string            `json:"phone_number"`
	Location       string            `json:"location"`
	Latitude       float64           `json:"latitude"`
	Longitude      float64           `json:"longitude"`
	Specialization string            `json:"specialization"`
	Skills         string            `json:"skills"`
	SalaryPerHour  string            `json:"salary_per_hour"`
	ImageFile      string            `json:"image_file"`
	Bookings       []BookingResponse `json:"bookings"`
}

// newArtisanResponse maps an artisan record (with its user loaded) to the
// wire representation.
func newArtisanResponse(a *model.Artisan) ArtisanResponse {
	bookings := make([]BookingResponse, 0, len(a.Bookings))
	for _, b := range a.Bookings {
		bookings = append(bookings, BookingResponse{
			ID:             b.ID,
			Title:          b.Title,
			Details:        b.Details,
			Status:         string(b.Status),
			RequestDate:    b.RequestDate,
			CompletionDate: b.CompletionDate,
		})
	}
	return ArtisanResponse{
		Username:       a.User.Username,
		Name:           a.Name,
		Email:          a.Email,
		PhoneNumber:    a.PhoneNumber,
		Location:       a.Location,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Specialization: a.Specialization,
		Skills:         a.Skills,
		SalaryPerHour:  a.HourlyRate.String(),
		ImageFile:      a.User.ImageFile,
		Bookings:       bookings,
	}
}

// Preflight acknowledges a CORS preflight request without touching any
// business logic.
func Preflight(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Preflight request"})
}
