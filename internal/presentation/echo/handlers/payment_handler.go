package handlers

import (
	"net/http"
	"strings"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService domain.PaymentService
	validate       *validator.Validate
}

func NewPaymentHandler(paymentService domain.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	var req domain.CheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidRequest("invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return domain.ErrValidation(validationMessage(err))
	}

	resp, err := h.paymentService.CreateCheckoutSession(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) VerifyCheckoutSession(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return domain.ErrInvalidRequest("sessionId is required")
	}

	resp, err := h.paymentService.VerifyCheckoutSession(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) GetPaymentStatus(c echo.Context) error {
	transactionID := c.Param("transactionId")
	if transactionID == "" {
		return domain.ErrInvalidRequest("transactionId is required")
	}

	resp, err := h.paymentService.GetPaymentStatus(c.Request().Context(), transactionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func validationMessage(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "validation failed"
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "gt":
			parts = append(parts, fe.Field()+" must be greater than "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, ", ")
}
