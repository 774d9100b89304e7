package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "KAFKA_BROKERS", "PAYMENT_GATEWAY_TIMEOUT", "RECONCILER_WORKERS", "RUN_MIGRATIONS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 10*time.Second, cfg.PaymentGatewayTimeout)
	assert.Equal(t, 4, cfg.ReconcilerWorkers)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_overrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("PAYMENT_GATEWAY_TIMEOUT", "3s")
	t.Setenv("RECONCILER_WORKERS", "8")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("IMAGE_BASE_URL", "https://cdn.example.com")

	cfg := Load()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 3*time.Second, cfg.PaymentGatewayTimeout)
	assert.Equal(t, 8, cfg.ReconcilerWorkers)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, "https://cdn.example.com", cfg.ImageBaseURL)
}

func TestLoad_invalidNumbersFallBack(t *testing.T) {
	t.Setenv("RECONCILER_WORKERS", "-2")
	t.Setenv("PAYMENT_GATEWAY_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 4, cfg.ReconcilerWorkers)
	assert.Equal(t, 10*time.Second, cfg.PaymentGatewayTimeout)
}
