package database

import (
	"fmt"
	"log"

	"github.com/gradpath/consultancy-api/config"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("Database seeding completed.")
	return nil
}

// SeedAdminUser creates the initial admin account from ADMIN_USERNAME,
// ADMIN_EMAIL and ADMIN_PASSWORD. Skipped when any variable is missing or an
// admin already exists.
func (s *Seeder) SeedAdminUser() error {
	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	if getEnv.ADMIN_USERNAME == "" || getEnv.ADMIN_EMAIL == "" || getEnv.ADMIN_PASSWORD == "" {
		log.Println("Admin seed variables not set, skipping admin user seed")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(getEnv.ADMIN_PASSWORD)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     getEnv.ADMIN_USERNAME,
		Email:        getEnv.ADMIN_EMAIL,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin user %q", admin.Username)
	return nil
}
