package database

import (
	"log"

	"dashboard/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Unique-index violations come back as gorm.ErrDuplicatedKey;
		// the upsert and membership paths in services depend on this.
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}

	if err := seedDefaultAdmin(); err != nil {
		return err
	}

	return nil
}

// seedDefaultAdmin makes sure a first sign-in as an administrator is
// possible on a fresh database. Identity is provisioned by email, so the
// seed is just a user row with the top tier.
func seedDefaultAdmin() error {
	var count int64
	if err := DB.Model(&models.User{}).Where("role = ?", models.RoleAdministrator).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		Email:        "admin@dashboard.local",
		DisplayName:  "Administrator",
		Role:         models.RoleAdministrator,
		Availability: models.StatusAvailable,
	}

	result := DB.Create(&admin)
	if result.Error != nil {
		return result.Error
	}

	log.Println("Default administrator created (admin@dashboard.local)")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
