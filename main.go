package main

import (
	"context"
	"os"

	"github.com/Ak47-369/bookticket-payment-service/internal/application/payment"
	"github.com/Ak47-369/bookticket-payment-service/internal/infrastructure/database"
	echoserver "github.com/Ak47-369/bookticket-payment-service/internal/presentation/echo"
	"github.com/Ak47-369/bookticket-payment-service/internal/utils/config"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Errorf("invalid configuration: %v", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		logrus.Errorf("failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(db); err != nil {
		logrus.Errorf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	container := payment.NewContainer(db, cfg)

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	container.StartReaper(reaperCtx)

	server := echoserver.NewServer(cfg)
	echoserver.ConfigureRoutes(server.Echo(), container.PaymentService)

	errC := server.Start(stopReaper)
	if err := <-errC; err != nil {
		logrus.Errorf("server error: %v", err)
		os.Exit(1)
	}
}
