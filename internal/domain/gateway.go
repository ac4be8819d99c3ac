package domain

import "fmt"

// GatewayErrorKind classifies a checkout gateway failure. The adapter is the
// only producer; everything above consumes these five kinds and never the
// SDK's own error types.
type GatewayErrorKind string

const (
	GatewayErrInvalidRequest GatewayErrorKind = "INVALID_REQUEST"
	GatewayErrAuthFailed     GatewayErrorKind = "AUTH_FAILED"
	GatewayErrRateLimited    GatewayErrorKind = "RATE_LIMITED"
	GatewayErrUnavailable    GatewayErrorKind = "UNAVAILABLE"
	GatewayErrUnknown        GatewayErrorKind = "UNKNOWN"
)

type GatewayError struct {
	Kind    GatewayErrorKind
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("gateway %s: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// CreateSessionParams carries everything the gateway needs for a hosted
// checkout session. AmountMinor is in the smallest currency unit.
type CreateSessionParams struct {
	BookingID   int64
	UserID      int64
	AmountMinor int64
	SuccessURL  string
	CancelURL   string
	ExpiresAt   int64
}

// SessionHandle is the gateway's answer to a create call.
type SessionHandle struct {
	ID        string
	URL       string
	ExpiresAt int64
}

// PaymentIntentView is the expanded inner payment attempt, when present.
type PaymentIntentView struct {
	ID               string
	Status           string
	LastErrorMessage string
}

// SessionView is the gateway's view of an existing session.
type SessionView struct {
	ID            string
	PaymentStatus string
	Status        string
	ExpiresAt     int64
	PaymentIntent *PaymentIntentView
}
