package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eventiq", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Contains(t, cfg.Database.DSN(), "dbname=eventiq")
	assert.Equal(t, 1, cfg.Booking.MinSeats)
	assert.Equal(t, 2, cfg.Booking.MaxSeats)
	assert.Equal(t, 10, cfg.Booking.ShortCodeAttempts)
	assert.Equal(t, 24*time.Hour, cfg.Booking.SessionTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BOOKING_MAX_SEATS", "4")
	t.Setenv("DB_NAME", "eventiq_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Booking.MaxSeats)
	assert.Contains(t, cfg.Database.DSN(), "dbname=eventiq_test")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:    AppConfig{Environment: "development"},
			Server: ServerConfig{Port: 8080},
			JWT:    JWTConfig{Secret: "secret"},
			Booking: BookingConfig{
				MinSeats:          1,
				MaxSeats:          2,
				ShortCodeAttempts: 10,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"empty jwt secret", func(c *Config) { c.JWT.Secret = "" }, "JWT secret is required"},
		{
			"default secret in production",
			func(c *Config) {
				c.App.Environment = "production"
				c.JWT.Secret = "change-me-in-production"
			},
			"must be changed",
		},
		{"max below min", func(c *Config) { c.Booking.MaxSeats = 0 }, "seat bounds"},
		{"zero min seats", func(c *Config) { c.Booking.MinSeats = 0 }, "seat bounds"},
		{"zero code attempts", func(c *Config) { c.Booking.ShortCodeAttempts = 0 }, "attempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
