package config

import (
	"log"
	"os"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the platform admin account. The password comes from
// ADMIN_PASSWORD; the seed is skipped when the variable is unset so a
// production deploy never ships a default credential.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Println("⚠️ Skipping admin seed: ADMIN_PASSWORD not set")
		return nil
	}

	hashedPassword, err := password.Hash(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:    "admin",
		Email:       os.Getenv("ADMIN_EMAIL"),
		PhoneNumber: os.Getenv("ADMIN_PHONE"),
		Password:    hashedPassword,
		FirstName:   "Platform",
		LastName:    "Admin",
		IsAdmin:     true,
		IsActive:    true,
		BadgeUUID:   uuid.NewString(),
	}
	if admin.Email == "" {
		admin.Email = "admin@fieldside.io"
	}
	if admin.PhoneNumber == "" {
		admin.PhoneNumber = "+10000000000"
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
