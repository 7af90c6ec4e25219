package configs

import (
	"log/slog"

	"github.com/Hemachand25/FreshGrocery/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB, cfg *Config, log *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("admin already exists", slog.String("email", cfg.AdminEmail))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

func SeedCategories(db *gorm.DB, log *slog.Logger) error {
	for _, name := range []string{"Fruits", "Vegetables", "Dairy", "Bakery", "Beverages"} {
		if err := db.FirstOrCreate(&entity.Category{}, entity.Category{Name: name}).Error; err != nil {
			return err
		}
	}
	log.Info("categories seeded")
	return nil
}
