package auth

import (
	"github.com/labstack/echo/v4"

	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/model"
	"artisanhub/internal/repository"
)

// currentUserKey is the echo context key holding the resolved user record.
const currentUserKey = "currentUser"

// LoadUser resolves the identity claim of the already-validated bearer token
// to a user record and stores it on the context. Requests whose claim does
// not resolve to an existing user fail with 401.
func LoadUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*Claims)
			if !ok {
				return unauthenticated()
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return unauthenticated()
			}
			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose authenticated user does not carry the
// given role, responding with the role-specific 403 error.
func RequireRole(role string, roleErr error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthenticated()
			}
			if user.Role != role {
				httpErr := apperrors.MapErrorToHTTP(roleErr)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

func unauthenticated() error {
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotAuthenticated)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
