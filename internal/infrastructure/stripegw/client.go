// Package stripegw adapts Stripe hosted checkout to the domain gateway port.
// It is the only package that imports the Stripe SDK; every failure leaves it
// as a domain.GatewayError.
package stripegw

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

type Client struct {
	api      *client.API
	currency string
}

type Options struct {
	SecretKey string
	Currency  string
	Timeout   time.Duration
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	})

	api := &client.API{}
	api.Init(opts.SecretKey, &stripe.Backends{API: backend})

	return &Client{
		api:      api,
		currency: opts.Currency,
	}
}

func (c *Client) CreateSession(ctx context.Context, p domain.CreateSessionParams) (*domain.SessionHandle, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		ExpiresAt:  stripe.Int64(p.ExpiresAt),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(p.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Booking Payment"),
						Description: stripe.String(fmt.Sprintf("Payment for booking ID: %d", p.BookingID)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("bookingId", fmt.Sprintf("%d", p.BookingID))
	params.AddMetadata("userId", fmt.Sprintf("%d", p.UserID))

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, mapError(err)
	}

	return &domain.SessionHandle{
		ID:        sess.ID,
		URL:       sess.URL,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	}
	params.AddExpand("payment_intent")

	sess, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, mapError(err)
	}

	view := &domain.SessionView{
		ID:            sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		Status:        string(sess.Status),
		ExpiresAt:     sess.ExpiresAt,
	}

	if sess.PaymentIntent != nil {
		intent := &domain.PaymentIntentView{
			ID:     sess.PaymentIntent.ID,
			Status: string(sess.PaymentIntent.Status),
		}
		if sess.PaymentIntent.LastPaymentError != nil {
			intent.LastErrorMessage = sess.PaymentIntent.LastPaymentError.Msg
		}
		view.PaymentIntent = intent
	}

	return view, nil
}

// ExpireSession is idempotent at Stripe for sessions that already completed
// or expired; such calls come back as invalid_request and the caller decides.
func (c *Client) ExpireSession(ctx context.Context, sessionID string) error {
	params := &stripe.CheckoutSessionExpireParams{
		Params: stripe.Params{Context: ctx},
	}

	if _, err := c.api.CheckoutSessions.Expire(sessionID, params); err != nil {
		return mapError(err)
	}
	logrus.Infof("expired gateway session %s", sessionID)
	return nil
}

// mapError is the single point where SDK error classes become internal kinds.
func mapError(err error) *domain.GatewayError {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
			return &domain.GatewayError{
				Kind:    domain.GatewayErrAuthFailed,
				Message: "gateway authentication failed",
				Cause:   err,
			}
		case stripeErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &domain.GatewayError{
				Kind:    domain.GatewayErrRateLimited,
				Message: "gateway rate limit exceeded",
				Cause:   err,
			}
		case stripeErr.Type == stripe.ErrorTypeInvalidRequest:
			return &domain.GatewayError{
				Kind:    domain.GatewayErrInvalidRequest,
				Message: stripeErr.Msg,
				Cause:   err,
			}
		case stripeErr.Type == stripe.ErrorTypeAPI:
			return &domain.GatewayError{
				Kind:    domain.GatewayErrUnavailable,
				Message: "gateway temporarily unavailable",
				Cause:   err,
			}
		default:
			return &domain.GatewayError{
				Kind:    domain.GatewayErrUnknown,
				Message: stripeErr.Msg,
				Cause:   err,
			}
		}
	}

	// Transport errors and timeouts never produce a *stripe.Error.
	return &domain.GatewayError{
		Kind:    domain.GatewayErrUnavailable,
		Message: "gateway unreachable",
		Cause:   err,
	}
}
