package migrations

import (
	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"gorm.io/gorm"
)

func init() {
	Register(Migration{
		ID: "001_create_payments",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&domain.Payment{})
		},
	})
}
