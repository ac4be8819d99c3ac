package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	userIDHeader    = "X-User-Id"
	userRolesHeader = "X-User-Roles"
)

func TraceID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		traceID := c.Request().Header.Get("X-Trace-Id")
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Response().Header().Set("X-Trace-Id", traceID)
		c.Set("trace_id", traceID)
		return next(c)
	}
}

func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		duration := time.Since(start)
		logrus.Infof("[%s] %s %s %d %s",
			c.Get("trace_id"),
			c.Request().Method,
			c.Request().URL.Path,
			c.Response().Status,
			duration,
		)
		return err
	}
}

func Recovery(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logrus.Errorf("PANIC recovered: %v", r)
				_ = c.JSON(http.StatusInternalServerError, domain.PaymentResponse{
					PaymentStatus: "ERROR",
					Message:       "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		return next(c)
	}
}

// HeaderAuth turns the upstream gateway's identity headers into a request
// principal on the context. Requests without both headers pass through
// anonymous; RequireRole decides whether that matters.
func HeaderAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get(userIDHeader)
		rolesHeader := c.Request().Header.Get(userRolesHeader)

		if userID != "" && rolesHeader != "" {
			roles := strings.Split(rolesHeader, ",")
			for i := range roles {
				roles[i] = strings.TrimSpace(roles[i])
			}
			principal := domain.Principal{UserID: userID, Roles: roles}

			ctx := domain.WithPrincipal(c.Request().Context(), principal)
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

// RequireRole gates a route group on one role from the propagated principal.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := domain.PrincipalFrom(c.Request().Context())
			if !ok || !principal.HasRole(role) {
				return domain.ErrForbidden()
			}
			return next(c)
		}
	}
}
