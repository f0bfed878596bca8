package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "@every 1m", cfg.Scheduler.CloseSpec)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, "simulated", cfg.Payments.Mode)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Second, cfg.DB.LockTimeout)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, 3, cfg.Payments.MaxRetries)
}

func TestFromViper_ValoresDeEntorno(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("SCHEDULER_ENABLED", "false")
	v.Set("RATE_LIMIT_RPS", "0.5")
	v.Set("DB_PASSWORD", "p@ss:word")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.InDelta(t, 0.5, cfg.RateLimit.RPS, 1e-9)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword")
}

func TestFromViper_ProductionExigeSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_RateLimitInvalido(t *testing.T) {
	v := viper.New()
	v.Set("RATE_LIMIT_BURST", "0")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://x@db/dz", Host: "localhost"}
	assert.Equal(t, "postgres://x@db/dz", c.ConnectionString())
}
