package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment is one booking-payment attempt. Rows are never deleted; a failed
// attempt stays around for audit and the booking service opens a new one.
type Payment struct {
	ID              uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	BookingID       int64           `json:"booking_id" gorm:"not null;index"`
	UserID          int64           `json:"user_id" gorm:"not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency        string          `json:"currency" gorm:"type:varchar(3)"`
	PaymentMethod   string          `json:"payment_method" gorm:"type:varchar(50);not null"`
	TransactionID   string          `json:"transaction_id" gorm:"type:varchar(255);uniqueIndex"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty" gorm:"type:varchar(255)"`
	Status          PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;index"`
	GatewayResponse string          `json:"gateway_response,omitempty" gorm:"type:varchar(1000)"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	CreatedBy       string          `json:"created_by" gorm:"type:varchar(100)"`
	UpdatedBy       string          `json:"updated_by" gorm:"type:varchar(100)"`
}

func (Payment) TableName() string {
	return "payments"
}

// TransitionTo applies a status change, guarding the terminal state.
// COMPLETED never transitions to any other value; the losing writer in a
// verify/reaper race sees false and must not persist.
func (p *Payment) TransitionTo(status PaymentStatus) bool {
	if p.Status == PaymentStatusCompleted && status != PaymentStatusCompleted {
		return false
	}
	p.Status = status
	return true
}

type CheckoutSessionRequest struct {
	BookingID  int64   `json:"bookingId" validate:"required"`
	UserID     int64   `json:"userId" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	SuccessURL string  `json:"successUrl,omitempty"`
	CancelURL  string  `json:"cancelUrl,omitempty"`
}

type CheckoutSessionResponse struct {
	SessionID  string  `json:"sessionId"`
	PaymentURL string  `json:"paymentUrl"`
	BookingID  int64   `json:"bookingId"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	ExpiresAt  int64   `json:"expiresAt"`
}

type PaymentResponse struct {
	PaymentID     *uint    `json:"paymentId"`
	BookingID     *int64   `json:"bookingId"`
	PaymentStatus string   `json:"paymentStatus"`
	TransactionID string   `json:"transactionId,omitempty"`
	Amount        *float64 `json:"amount"`
	Message       string   `json:"message"`
}
