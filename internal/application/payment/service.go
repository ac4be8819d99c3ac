package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type service struct {
	db            *gorm.DB
	repo          domain.PaymentRepository
	gateway       domain.CheckoutGateway
	successURL    string
	cancelURL     string
	currency      string
	expiryMinutes int
}

func NewService(
	db *gorm.DB,
	repo domain.PaymentRepository,
	gateway domain.CheckoutGateway,
	successURL string,
	cancelURL string,
	currency string,
	expiryMinutes int,
) domain.PaymentService {
	return &service{
		db:            db,
		repo:          repo,
		gateway:       gateway,
		successURL:    successURL,
		cancelURL:     cancelURL,
		currency:      currency,
		expiryMinutes: expiryMinutes,
	}
}

func (s *service) CreateCheckoutSession(ctx context.Context, req domain.CheckoutSessionRequest) (*domain.CheckoutSessionResponse, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	logrus.Infof("creating checkout session for booking %d, amount %.2f", req.BookingID, req.Amount)

	amount := decimal.NewFromFloat(req.Amount)
	amountMinor := amount.Shift(2).Round(0).IntPart()
	if amountMinor <= 0 {
		return nil, domain.ErrInvalidRequest("amount must be greater than 0")
	}

	successURL := s.successURL
	if strings.TrimSpace(req.SuccessURL) != "" {
		successURL = req.SuccessURL
	}
	cancelURL := s.cancelURL
	if strings.TrimSpace(req.CancelURL) != "" {
		cancelURL = req.CancelURL
	}

	expiresAt := time.Now().Add(time.Duration(s.expiryMinutes) * time.Minute).Unix()

	// Gateway first, row second. A gateway failure leaves nothing behind; a
	// commit failure after a successful create leaves an orphan session that
	// Stripe expires on its own at expiresAt.
	session, err := s.gateway.CreateSession(ctx, domain.CreateSessionParams{
		BookingID:   req.BookingID,
		UserID:      req.UserID,
		AmountMinor: amountMinor,
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		logrus.Errorf("gateway create failed for booking %d: %v", req.BookingID, err)
		return nil, wrapGatewayError(err, "Failed to create checkout session. Please try again.")
	}

	logrus.Infof("checkout session created: %s", session.ID)

	payment := &domain.Payment{
		BookingID:       req.BookingID,
		UserID:          req.UserID,
		Amount:          amount,
		Currency:        s.currency,
		PaymentMethod:   "hosted_checkout",
		TransactionID:   session.ID,
		Status:          domain.PaymentStatusPending,
		GatewayResponse: "Checkout Session created: " + session.ID,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logrus.Errorf("failed to save payment for session %s: %v", session.ID, err)
		return nil, domain.ErrInternal()
	}

	return &domain.CheckoutSessionResponse{
		SessionID:  session.ID,
		PaymentURL: session.URL,
		BookingID:  req.BookingID,
		Amount:     req.Amount,
		Status:     "pending",
		Message:    "Checkout session created. Go to the provided paymentUrl to complete payment.",
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

func (s *service) VerifyCheckoutSession(ctx context.Context, sessionID string) (*domain.PaymentResponse, error) {
	logrus.Infof("verifying checkout session %s", sessionID)

	view, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		logrus.Errorf("gateway retrieve failed for session %s: %v", sessionID, err)
		return nil, wrapGatewayError(err, "Failed to verify checkout session. Please try again.")
	}

	var result *domain.PaymentResponse
	var returnErr error

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.repo.FindByTransactionIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			returnErr = domain.ErrInternal()
			return err
		}
		if payment == nil {
			returnErr = domain.ErrPaymentNotFound(sessionID)
			return returnErr
		}

		if strings.EqualFold(view.Status, "expired") {
			logrus.Warnf("checkout session expired: %s", sessionID)
			if payment.TransitionTo(domain.PaymentStatusFailed) {
				payment.GatewayResponse = fmt.Sprintf("Session expired: %s", view.ID)
				if err := s.repo.UpdateInTx(ctx, tx, payment); err != nil {
					returnErr = domain.ErrInternal()
					return err
				}
			}
			result = buildPaymentResponse(payment, "Checkout session expired. Please create a new payment.")
			return nil
		}

		// A failed attempt on an open session is retryable on the same
		// session; local state stays put until the outcome is final.
		if view.PaymentIntent != nil && view.PaymentIntent.Status == "requires_payment_method" {
			reason := view.PaymentIntent.LastErrorMessage
			if reason == "" {
				reason = "Unknown error"
			}
			logrus.Warnf("payment attempt failed for session %s: %s; customer can retry", sessionID, reason)
		}

		newStatus := mapSessionPaymentStatus(view.PaymentStatus)
		if newStatus == domain.PaymentStatusCompleted {
			intentID := ""
			if view.PaymentIntent != nil {
				intentID = view.PaymentIntent.ID
			}

			gatewayResponse := fmt.Sprintf("Session: %s, Status: %s, PaymentIntent: %s",
				view.ID, view.PaymentStatus, intentID)
			if view.PaymentIntent != nil && view.PaymentIntent.LastErrorMessage != "" {
				gatewayResponse += fmt.Sprintf(", Last Error: %s", view.PaymentIntent.LastErrorMessage)
			}

			if payment.TransitionTo(domain.PaymentStatusCompleted) {
				payment.PaymentIntentID = intentID
				payment.GatewayResponse = gatewayResponse
				if err := s.repo.UpdateInTx(ctx, tx, payment); err != nil {
					returnErr = domain.ErrInternal()
					return err
				}
				logrus.Infof("payment completed for session %s, intent %s", sessionID, intentID)
			}
			result = buildPaymentResponse(payment, "Payment verification successful")
			return nil
		}

		result = buildPaymentResponse(payment, "Payment is Pending. Please try again.")
		return nil
	})

	if txErr != nil {
		if returnErr != nil {
			return nil, returnErr
		}
		return nil, domain.ErrInternal()
	}

	return result, nil
}

func (s *service) GetPaymentStatus(ctx context.Context, transactionID string) (*domain.PaymentResponse, error) {
	payment, err := s.repo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		logrus.Errorf("failed to load payment %s: %v", transactionID, err)
		return nil, domain.ErrInternal()
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound(transactionID)
	}
	return buildPaymentResponse(payment, "Payment status retrieved"), nil
}

func validateCheckoutRequest(req domain.CheckoutSessionRequest) error {
	if req.BookingID <= 0 {
		return domain.ErrInvalidRequest("bookingId is required")
	}
	if req.UserID <= 0 {
		return domain.ErrInvalidRequest("userId is required")
	}
	if req.Amount <= 0 {
		return domain.ErrInvalidRequest("amount must be greater than 0")
	}
	return nil
}

func mapSessionPaymentStatus(paymentStatus string) domain.PaymentStatus {
	switch strings.ToLower(paymentStatus) {
	case "paid", "no_payment_required":
		return domain.PaymentStatusCompleted
	case "unpaid":
		return domain.PaymentStatusPending
	default:
		logrus.Warnf("unknown checkout session payment_status %q, defaulting to PENDING", paymentStatus)
		return domain.PaymentStatusPending
	}
}

// wrapGatewayError turns a gateway fault into the user-safe AppError the
// boundary may surface. fallback covers the Unavailable case so create and
// verify keep their own wording.
func wrapGatewayError(err error, fallback string) *domain.AppError {
	var gwErr *domain.GatewayError
	if !errors.As(err, &gwErr) {
		return domain.ErrInternal()
	}

	switch gwErr.Kind {
	case domain.GatewayErrInvalidRequest:
		return domain.ErrPaymentProcessing("Invalid payment request: " + gwErr.Message)
	case domain.GatewayErrAuthFailed:
		return domain.ErrPaymentUnavailable("Payment service authentication error. Please contact support.")
	case domain.GatewayErrRateLimited:
		return domain.ErrPaymentProcessing("Too many requests. Please try again in a few moments.")
	case domain.GatewayErrUnavailable:
		return domain.ErrPaymentUnavailable(fallback)
	default:
		return domain.ErrPaymentUnavailable("An unexpected error occurred. Please try again later.")
	}
}

func buildPaymentResponse(p *domain.Payment, message string) *domain.PaymentResponse {
	amount, _ := p.Amount.Float64()
	return &domain.PaymentResponse{
		PaymentID:     &p.ID,
		BookingID:     &p.BookingID,
		PaymentStatus: string(p.Status),
		TransactionID: p.TransactionID,
		Amount:        &amount,
		Message:       message,
	}
}
