package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	StripeSecretKey  string
	StripeSuccessURL string
	StripeCancelURL  string
	StripeCurrency   string
	StripeTimeout    time.Duration

	CheckoutSessionExpiryMinutes int

	ReaperInterval  time.Duration
	GracefulTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "payments"),
		DBPassword: getEnv("DB_PASSWORD", "payments123"),
		DBName:     getEnv("DB_NAME", "payments_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeSuccessURL: getEnv("STRIPE_SUCCESS_URL", "http://localhost:3000/payment/success"),
		StripeCancelURL:  getEnv("STRIPE_CANCEL_URL", "http://localhost:3000/payment/cancel"),
		StripeCurrency:   getEnv("STRIPE_CURRENCY", "inr"),
		StripeTimeout:    parseDuration(getEnv("STRIPE_TIMEOUT", "10s"), 10*time.Second),

		CheckoutSessionExpiryMinutes: parseInt(getEnv("CHECKOUT_SESSION_EXPIRY_MINUTES", "30"), 30),

		ReaperInterval:  parseDuration(getEnv("REAPER_INTERVAL", "60s"), 60*time.Second),
		GracefulTimeout: parseDuration(getEnv("GRACEFUL_TIMEOUT", "5s"), 5*time.Second),
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode
}

func (c *Config) SessionExpiry() time.Duration {
	return time.Duration(c.CheckoutSessionExpiryMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
