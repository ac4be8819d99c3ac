package echo

import (
	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"github.com/Ak47-369/bookticket-payment-service/internal/presentation/echo/handlers"
	"github.com/Ak47-369/bookticket-payment-service/internal/presentation/echo/middleware"
	echofw "github.com/labstack/echo/v4"
)

func ConfigureRoutes(e *echofw.Echo, paymentService domain.PaymentService) {
	e.Use(middleware.Recovery)
	e.Use(middleware.TraceID)
	e.Use(middleware.RequestLogger)
	e.Use(middleware.HeaderAuth)

	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Check)

	paymentHandler := handlers.NewPaymentHandler(paymentService)
	payments := e.Group("/api/v1/internal/payments", middleware.RequireRole(domain.RoleServiceAccount))
	payments.POST("/checkout/create", paymentHandler.CreateCheckoutSession)
	payments.GET("/checkout/verify/:sessionId", paymentHandler.VerifyCheckoutSession)
	payments.GET("/status/:transactionId", paymentHandler.GetPaymentStatus)
}
