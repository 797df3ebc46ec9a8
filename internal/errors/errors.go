package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotAuthenticated is returned when no user can be resolved from
	// the token, or when the path username does not match the caller.
	ErrUserNotAuthenticated = errors.New("User not authenticated")
	// ErrNotArtisan is returned when an artisan-only endpoint is called by
	// a user without the Artisan role.
	ErrNotArtisan = errors.New("User is not an artisan")
	// ErrNotClient is returned when a client-only endpoint is called by a
	// user without the Client role.
	ErrNotClient = errors.New("User is not a client")
	// ErrArtisanNotFound is returned when a user has no artisan profile yet.
	ErrArtisanNotFound = errors.New("artisan profile not found")
	// ErrUpdateFailed is returned when a profile update cannot be committed.
	// The underlying cause is logged server-side only.
	ErrUpdateFailed = errors.New("An error occurred during updating")
	// ErrGeocodeUnavailable is returned when the geocoding provider yields
	// no usable result for the stored address.
	ErrGeocodeUnavailable = errors.New("geocoding unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_NOT_AUTHENTICATED")
	case errors.Is(err, ErrNotArtisan):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_AN_ARTISAN")
	case errors.Is(err, ErrNotClient):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_A_CLIENT")
	case errors.Is(err, ErrArtisanNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ARTISAN_NOT_FOUND")
	case errors.Is(err, ErrUpdateFailed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UPDATE_FAILED")
	case errors.Is(err, ErrGeocodeUnavailable):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "GEOCODE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
