package repositories

import (
	"context"
	"errors"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) domain.PaymentRepository {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	auditor := domain.AuditorFrom(ctx)
	payment.CreatedBy = auditor
	payment.UpdatedBy = auditor

	err := r.db.WithContext(ctx).Create(payment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateTransaction
	}
	return err
}

func (r *PaymentRepo) FindByID(ctx context.Context, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepo) FindByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByStatus returns a snapshot of all rows in the given status. The reaper
// iterates the result outside any transaction and re-locks per record.
func (r *PaymentRepo) FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepo) Update(ctx context.Context, payment *domain.Payment) error {
	payment.UpdatedBy = domain.AuditorFrom(ctx)
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *PaymentRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepo) FindByTransactionIDForUpdate(ctx context.Context, tx *gorm.DB, transactionID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("transaction_id = ?", transactionID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepo) CreateInTx(ctx context.Context, tx *gorm.DB, payment *domain.Payment) error {
	auditor := domain.AuditorFrom(ctx)
	payment.CreatedBy = auditor
	payment.UpdatedBy = auditor

	err := tx.WithContext(ctx).Create(payment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateTransaction
	}
	return err
}

func (r *PaymentRepo) UpdateInTx(ctx context.Context, tx *gorm.DB, payment *domain.Payment) error {
	payment.UpdatedBy = domain.AuditorFrom(ctx)
	return tx.WithContext(ctx).Save(payment).Error
}
