package config

import (
	"log"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/pkg/password"

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
	if err := s.seedLocations(); err != nil {
		log.Printf("⚠️ Location seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin user for development.
// In production, create admins through the staff endpoint instead.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        "admin@staynest.local",
		Password:     hashedPassword,
		Role:         models.RoleAdmin,
		ReferralCode: "ADMIN000",
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("✅ Default admin user seeded")
	return nil
}

// seedLocations seeds one location chain so property forms work out
// of the box on a fresh database.
func (s *Seeder) seedLocations() error {
	var count int64
	s.db.Model(&models.Country{}).Count(&count)
	if count > 0 {
		return nil
	}

	country := &models.Country{Name: "India", IsActive: true}
	if err := s.db.Create(country).Error; err != nil {
		return err
	}

	state := &models.State{CountryID: country.ID, Name: "Karnataka", IsActive: true}
	if err := s.db.Create(state).Error; err != nil {
		return err
	}

	city := &models.City{StateID: state.ID, Name: "Bengaluru", IsActive: true}
	if err := s.db.Create(city).Error; err != nil {
		return err
	}

	area := &models.Area{CityID: city.ID, Name: "Koramangala", Pincode: "560034", IsActive: true}
	if err := s.db.Create(area).Error; err != nil {
		return err
	}

	log.Println("✅ Default locations seeded")
	return nil
}
