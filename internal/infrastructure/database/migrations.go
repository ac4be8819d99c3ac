package database

import (
	"github.com/Ak47-369/bookticket-payment-service/internal/infrastructure/database/migrations"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	return migrations.Run(db)
}
