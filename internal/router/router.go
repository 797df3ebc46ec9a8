package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"artisanhub/internal/auth"
	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/handler"
	"artisanhub/internal/model"
	"artisanhub/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	artisanHandler *handler.ArtisanHandler,
	listingHandler *handler.ListingHandler,
	locationHandler *handler.LocationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Preflight acknowledgments carry no auth and no business logic.
	for _, path := range []string{"/artisan", "/artisan/:username", "/all_artisans", "/location"} {
		api.OPTIONS(path, handler.Preflight)
	}

	// Secured routes: bearer token, then identity resolution.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
				return jwtService.ValidateToken(token)
			},
			// Missing and malformed tokens get the same 401 as invalid ones.
			ErrorHandler: func(c echo.Context, err error) error {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotAuthenticated)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			},
		}),
		auth.LoadUser(userRepo),
	)

	// Artisan-only routes
	artisans := secured.Group("", auth.RequireRole(model.RoleArtisan, apperrors.ErrNotArtisan))
	artisans.GET("/artisan", artisanHandler.GetProfile)
	artisans.GET("/artisan/:username", artisanHandler.GetProfile)
	artisans.POST("/artisan", artisanHandler.UpdateProfile)
	artisans.POST("/artisan/:username", artisanHandler.UpdateProfile)
	artisans.GET("/location", locationHandler.Get)

	// Client-only routes
	clients := secured.Group("", auth.RequireRole(model.RoleClient, apperrors.ErrNotClient))
	clients.GET("/all_artisans", listingHandler.List)
}

// CustomValidator wraps validator for Echo. Field names in validation errors
// follow the struct's form/json tags so error maps match the wire format.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the echo validator used by all handlers.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
