package main

import (
	"log"
	"net/http"
	"os"

	_ "artisanhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"artisanhub/internal/auth"
	"artisanhub/internal/cache"
	"artisanhub/internal/config"
	"artisanhub/internal/db"
	"artisanhub/internal/geocode"
	"artisanhub/internal/handler"
	"artisanhub/internal/imagestore"
	"artisanhub/internal/model"
	"artisanhub/internal/repository"
	"artisanhub/internal/router"
	"artisanhub/internal/service"
)

// @title Artisan Marketplace API
// @version 1.0
// @description Profile-management backend for a marketplace connecting clients and artisans, with JWT authentication, picture uploads, and geocoded locations.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Artisan{},
		&model.Booking{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Profile pictures live under a fixed directory that must exist before
	// the first upload.
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("create upload dir %s: %v", cfg.UploadDir, err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	artisanRepo := repository.NewArtisanRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize supporting infrastructure
	pictures := imagestore.New(cfg.UploadDir)
	geocoder := geocode.NewCached(
		geocode.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent),
		cacheClient,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(userRepo, artisanRepo, txManager, pictures, geocoder)
	listingService := service.NewListingService(artisanRepo, cfg.MaxPerPage)
	locationService := service.NewLocationService(artisanRepo, geocoder)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	artisanHandler := handler.NewArtisanHandler(profileService)
	listingHandler := handler.NewListingHandler(listingService)
	locationHandler := handler.NewLocationHandler(locationService)

	// Register routes
	router.Register(
		e,
		jwtService,
		userRepo,
		authHandler,
		artisanHandler,
		listingHandler,
		locationHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
