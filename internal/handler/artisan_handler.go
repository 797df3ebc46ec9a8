package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"artisanhub/internal/auth"
	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/model"
	"artisanhub/internal/service"
)

// ArtisanHandler handles the artisan profile endpoints.
type ArtisanHandler struct {
	profiles service.ProfileService
}

// NewArtisanHandler creates a new artisan handler.
func NewArtisanHandler(profiles service.ProfileService) *ArtisanHandler {
	return &ArtisanHandler{profiles: profiles}
}

// ArtisanProfileForm represents the multipart profile-update form.
type ArtisanProfileForm struct {
	Username       string `form:"username" validate:"required"`
	Email          string `form:"email" validate:"required,email"`
	PhoneNumber    string `form:"phone_number"`
	Location       string `form:"location"`
	Specialization string `form:"specialization"`
	Skills         string `form:"skills"`
	SalaryPerHour  string `form:"salary_per_hour" validate:"omitempty,numeric"`
}

// GetProfile godoc
// @Summary Get own artisan profile
// @Tags artisans
// @Produce json
// @Security BearerAuth
// @Param username path string false "Own username"
// @Success 200 {object} ArtisanResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /artisan [get]
func (h *ArtisanHandler) GetProfile(c echo.Context) error {
	user, err := h.ownProfileUser(c)
	if err != nil {
		return err
	}

	artisan, err := h.profiles.GetProfile(c.Request().Context(), user)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, newArtisanResponse(artisan))
}

// UpdateProfile godoc
// @Summary Update own artisan profile
// @Tags artisans
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param username path string false "Own username"
// @Param username formData string true "Display name"
// @Param email formData string true "Email, stored lowercased"
// @Param phone_number formData string false "Phone number"
// @Param location formData string false "Address"
// @Param specialization formData string false "Specialization"
// @Param skills formData string false "Skills"
// @Param salary_per_hour formData string false "Hourly rate"
// @Param picture formData file false "Profile picture"
// @Success 200 {object} ArtisanResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /artisan [post]
func (h *ArtisanHandler) UpdateProfile(c echo.Context) error {
	user, err := h.ownProfileUser(c)
	if err != nil {
		return err
	}

	var form ArtisanProfileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid form data",
			"error":   validationErrorMap(err),
		})
	}

	rate := decimal.Zero
	if form.SalaryPerHour != "" {
		parsed, err := decimal.NewFromString(form.SalaryPerHour)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "Invalid form data",
				"error":   map[string]string{"salary_per_hour": "must be a number"},
			})
		}
		rate = parsed
	}

	picture, err := c.FormFile("picture")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid picture upload")
	}

	upd := service.ProfileUpdate{
		Username:       form.Username,
		Email:          form.Email,
		PhoneNumber:    form.PhoneNumber,
		Location:       form.Location,
		Specialization: form.Specialization,
		Skills:         form.Skills,
		HourlyRate:     rate,
	}

	artisan, err := h.profiles.UpdateProfile(c.Request().Context(), user, upd, picture)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, newArtisanResponse(artisan))
}

// ownProfileUser returns the authenticated user, rejecting requests whose
// path username names someone else.
func (h *ArtisanHandler) ownProfileUser(c echo.Context) (*model.User, error) {
	user := auth.CurrentUser(c)
	if user == nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotAuthenticated)
		return nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if pathName := c.Param("username"); pathName != "" && pathName != user.Username {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotAuthenticated)
		return nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return user, nil
}

// validationErrorMap flattens validator errors into a field-level error map.
func validationErrorMap(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
		return fields
	}
	fields["form"] = err.Error()
	return fields
}
