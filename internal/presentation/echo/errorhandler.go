package echo

import (
	"net/http"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	echofw "github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// CustomHTTPErrorHandler shapes every error as a PaymentResponse body. The
// code on an AppError doubles as the wire paymentStatus; nothing from the
// gateway SDK or the stack ever reaches the client.
func CustomHTTPErrorHandler(err error, c echofw.Context) {
	if c.Response().Committed {
		return
	}

	if appErr, ok := err.(*domain.AppError); ok {
		_ = c.JSON(appErr.HTTPCode, domain.PaymentResponse{
			PaymentStatus: appErr.Code,
			Message:       appErr.Message,
		})
		return
	}

	if echoErr, ok := err.(*echofw.HTTPError); ok {
		_ = c.JSON(echoErr.Code, domain.PaymentResponse{
			PaymentStatus: "ERROR",
			Message:       http.StatusText(echoErr.Code),
		})
		return
	}

	logrus.Errorf("unexpected error: %v", err)
	_ = c.JSON(http.StatusInternalServerError, domain.PaymentResponse{
		PaymentStatus: "ERROR",
		Message:       "An unexpected error occurred. Please try again later.",
	})
}
