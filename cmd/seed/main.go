package main

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"artisanhub/internal/config"
	"artisanhub/internal/db"
	"artisanhub/internal/model"
	"artisanhub/internal/repository"
)

const seedPassword = "change-me-123"

type seedUser struct {
	Username       string
	Email          string
	Role           string
	Location       string
	Specialization string
	Skills         string
	HourlyRate     string
}

var seedUsers = []seedUser{
	{Username: "ada", Email: "ada@example.com", Role: model.RoleArtisan, Location: "Lagos, Nigeria", Specialization: "plumbing", Skills: "piping, fittings", HourlyRate: "25"},
	{Username: "bela", Email: "bela@example.com", Role: model.RoleArtisan, Location: "Accra, Ghana", Specialization: "carpentry", Skills: "framing, joinery", HourlyRate: "30"},
	{Username: "chidi", Email: "chidi@example.com", Role: model.RoleClient},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Artisan{}, &model.Booking{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	artisanRepo := repository.NewArtisanRepository(gormDB)
	ctx := context.Background()

	created := 0
	for _, s := range seedUsers {
		if _, err := userRepo.FindByUsername(ctx, s.Username); err == nil {
			log.Printf("User %s already exists, skipping", s.Username)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %s: %v", s.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &model.User{
			Username:     s.Username,
			Email:        s.Email,
			PasswordHash: string(hash),
			Role:         s.Role,
			Location:     s.Location,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", s.Username, err)
		}

		if s.Role == model.RoleArtisan {
			artisan, err := artisanRepo.FindOrCreateByUserID(ctx, user.ID)
			if err != nil {
				log.Fatalf("Failed to create artisan for %s: %v", s.Username, err)
			}
			rate, _ := decimal.NewFromString(s.HourlyRate)
			artisan.Name = s.Username
			artisan.Email = s.Email
			artisan.Location = s.Location
			artisan.Specialization = s.Specialization
			artisan.Skills = s.Skills
			artisan.HourlyRate = rate
			if err := artisanRepo.Update(ctx, artisan); err != nil {
				log.Fatalf("Failed to update artisan for %s: %v", s.Username, err)
			}
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Seed password for new users: %s", seedPassword)
}
