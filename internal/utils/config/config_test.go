package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "inr", cfg.StripeCurrency)
	assert.Equal(t, 30, cfg.CheckoutSessionExpiryMinutes)
	assert.Equal(t, 30*time.Minute, cfg.SessionExpiry())
	assert.Equal(t, 10*time.Second, cfg.StripeTimeout)
	assert.Equal(t, 60*time.Second, cfg.ReaperInterval)
}

func TestLoad_MissingSecretKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("CHECKOUT_SESSION_EXPIRY_MINUTES", "45")
	t.Setenv("REAPER_INTERVAL", "2m")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.CheckoutSessionExpiryMinutes)
	assert.Equal(t, 2*time.Minute, cfg.ReaperInterval)
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestParseHelpers_BadValues(t *testing.T) {
	assert.Equal(t, 30, parseInt("not-a-number", 30))
	assert.Equal(t, 30, parseInt("-5", 30))
	assert.Equal(t, time.Minute, parseDuration("bogus", time.Minute))
}
