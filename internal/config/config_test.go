package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PAYMENT_PROVIDER", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "stripe", cfg.PaymentProvider)
	assert.Equal(t, "appointment.events", cfg.KafkaTopic)
	assert.Equal(t, 10*time.Minute, cfg.ScheduleCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PAYMENT_PROVIDER", "MercadoPago")
	t.Setenv("PUBLIC_RATE_LIMIT", "5")
	t.Setenv("SCHEDULE_CACHE_TTL", "30s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "mercadopago", cfg.PaymentProvider)
	assert.Equal(t, 5, cfg.PublicRateLimit)
	assert.Equal(t, 30*time.Second, cfg.ScheduleCacheTTL)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}
