package domain

import (
	"context"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uint) (*Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
	FindByBookingID(ctx context.Context, bookingID int64) (*Payment, error)
	FindByStatus(ctx context.Context, status PaymentStatus) ([]Payment, error)
	Update(ctx context.Context, payment *Payment) error
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*Payment, error)
	FindByTransactionIDForUpdate(ctx context.Context, tx *gorm.DB, transactionID string) (*Payment, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, payment *Payment) error
	UpdateInTx(ctx context.Context, tx *gorm.DB, payment *Payment) error
}

// CheckoutGateway is the stateless facade over the hosted checkout provider.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*SessionHandle, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionView, error)
	ExpireSession(ctx context.Context, sessionID string) error
}

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSessionResponse, error)
	VerifyCheckoutSession(ctx context.Context, sessionID string) (*PaymentResponse, error)
	GetPaymentStatus(ctx context.Context, transactionID string) (*PaymentResponse, error)
}
