package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Reaper forces expiry of stale pending sessions, both at the gateway and
// locally. It runs as a single goroutine; a tick that fires while a pass is
// still running is coalesced by the ticker.
type Reaper struct {
	db            *gorm.DB
	repo          domain.PaymentRepository
	gateway       domain.CheckoutGateway
	expiryMinutes int
	interval      time.Duration
}

func NewReaper(
	db *gorm.DB,
	repo domain.PaymentRepository,
	gateway domain.CheckoutGateway,
	expiryMinutes int,
	interval time.Duration,
) *Reaper {
	return &Reaper{
		db:            db,
		repo:          repo,
		gateway:       gateway,
		expiryMinutes: expiryMinutes,
		interval:      interval,
	}
}

// Run blocks until ctx is canceled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logrus.Infof("session reaper started, interval %s, expiry %d minutes", r.interval, r.expiryMinutes)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("session reaper stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single expiration pass over the pending snapshot.
func (r *Reaper) RunOnce(ctx context.Context) {
	pending, err := r.repo.FindByStatus(ctx, domain.PaymentStatusPending)
	if err != nil {
		logrus.Errorf("reaper failed to list pending payments: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	for i := range pending {
		if err := r.expireRecord(ctx, &pending[i]); err != nil {
			logrus.Errorf("error expiring session for payment %s: %v", pending[i].TransactionID, err)
		}
	}
}

func (r *Reaper) expireRecord(ctx context.Context, snapshot *domain.Payment) error {
	if strings.TrimSpace(snapshot.TransactionID) == "" || snapshot.CreatedAt.IsZero() {
		return nil
	}
	if !r.isStale(snapshot.CreatedAt) {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read under lock: a verify that committed after the snapshot
		// wins, and a terminal row must never move.
		payment, err := r.repo.FindByIDForUpdate(ctx, tx, snapshot.ID)
		if err != nil {
			return err
		}
		if payment == nil || payment.Status != domain.PaymentStatusPending {
			return nil
		}
		if !r.isStale(payment.CreatedAt) {
			return nil
		}

		logrus.Infof("expiring session %s for booking %d", payment.TransactionID, payment.BookingID)

		// Gateway failure leaves the row untouched; the next tick retries.
		if err := r.gateway.ExpireSession(ctx, payment.TransactionID); err != nil {
			return err
		}

		if !payment.TransitionTo(domain.PaymentStatusFailed) {
			return nil
		}
		payment.GatewayResponse = fmt.Sprintf("Payment session expired after %d minutes", r.expiryMinutes)
		if err := r.repo.UpdateInTx(ctx, tx, payment); err != nil {
			return err
		}

		logrus.Infof("expired session %s for booking %d", payment.TransactionID, payment.BookingID)
		return nil
	})
}

func (r *Reaper) isStale(createdAt time.Time) bool {
	age := time.Since(createdAt)
	return age >= time.Duration(r.expiryMinutes)*time.Minute
}
