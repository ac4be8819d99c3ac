package echo

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ak47-369/bookticket-payment-service/internal/utils/config"
	echofw "github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Server struct {
	echo   *echofw.Echo
	config *config.Config
}

func NewServer(cfg *config.Config) *Server {
	e := echofw.New()
	e.HideBanner = true
	e.HTTPErrorHandler = CustomHTTPErrorHandler

	return &Server{
		echo:   e,
		config: cfg,
	}
}

func (s *Server) Echo() *echofw.Echo {
	return s.echo
}

// Start runs the listener and a signal watcher; the returned channel yields
// the terminal error (or closes on clean shutdown).
func (s *Server) Start(onShutdown func()) <-chan error {
	errC := make(chan error, 1)

	go func() {
		if err := s.echo.Start(":" + s.config.AppPort); err != nil && err != http.ErrServerClosed {
			errC <- err
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
		<-quit

		logrus.Info("shutting down server")
		if onShutdown != nil {
			onShutdown()
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.config.GracefulTimeout)
		defer cancel()

		if err := s.echo.Shutdown(ctx); err != nil {
			errC <- err
		}
		close(errC)
	}()

	logrus.Infof("server started on port %s", s.config.AppPort)
	return errC
}
