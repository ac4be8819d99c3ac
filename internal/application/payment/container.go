package payment

import (
	"context"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"github.com/Ak47-369/bookticket-payment-service/internal/infrastructure/database/repositories"
	"github.com/Ak47-369/bookticket-payment-service/internal/infrastructure/stripegw"
	"github.com/Ak47-369/bookticket-payment-service/internal/utils/config"
	"gorm.io/gorm"
)

type Container struct {
	PaymentService domain.PaymentService
	Reaper         *Reaper
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	repo := repositories.NewPaymentRepo(db)
	gateway := stripegw.NewClient(stripegw.Options{
		SecretKey: cfg.StripeSecretKey,
		Currency:  cfg.StripeCurrency,
		Timeout:   cfg.StripeTimeout,
	})

	paymentService := NewService(
		db,
		repo,
		gateway,
		cfg.StripeSuccessURL,
		cfg.StripeCancelURL,
		cfg.StripeCurrency,
		cfg.CheckoutSessionExpiryMinutes,
	)

	reaper := NewReaper(db, repo, gateway, cfg.CheckoutSessionExpiryMinutes, cfg.ReaperInterval)

	return &Container{
		PaymentService: paymentService,
		Reaper:         reaper,
	}
}

// StartReaper launches the expiry loop; cancel the context on shutdown.
func (c *Container) StartReaper(ctx context.Context) {
	go c.Reaper.Run(ctx)
}
