package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"artisanhub/internal/auth"
	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/service"
)

// LocationHandler handles the artisan location endpoint.
type LocationHandler struct {
	locations service.LocationService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(locations service.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// LocationResponse holds the refreshed coordinates of the caller's address.
type LocationResponse struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Get godoc
// @Summary Geocode own address
// @Tags artisans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} LocationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /location [get]
func (h *LocationHandler) Get(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotAuthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	lat, long, err := h.locations.Locate(c.Request().Context(), user)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LocationResponse{Lat: lat, Long: long})
}
