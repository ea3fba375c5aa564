package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/fadyamr909/EcommApp/configs"
	"github.com/fadyamr909/EcommApp/internal/models"
)

var DB *gorm.DB

func Init(cfg config.DBConfig) error {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
	)

	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}

	err = DB.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate DB: %w", err)
	}

	return nil
}

func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}
