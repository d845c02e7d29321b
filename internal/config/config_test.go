package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, availability.CheckoutInclusive, cfg.Booking.Policy())
	assert.Equal(t, 30*time.Minute, cfg.Booking.FlowTTL())
	assert.Equal(t, 5*time.Second, cfg.Booking.StoreTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeFile(t, `
[database]
host = "db"
password = "from-file"
dbname = "hotel"

[booking]
checkout_policy = "exclusive"
flow_ttl_minutes = 10
store_timeout_seconds = 2
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Equal(t, availability.CheckoutExclusive, cfg.Booking.Policy())
	assert.Equal(t, 10*time.Minute, cfg.Booking.FlowTTL())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown policy", content: "[booking]\ncheckout_policy = \"sometimes\"\n"},
		{name: "zero ttl", content: "[booking]\nflow_ttl_minutes = 0\n"},
		{name: "bad port", content: "[server]\nhttp_port = 70000\n"},
		{name: "notifier without url", content: "[notifier]\nenabled = true\nurl = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadMailRelay(t *testing.T) {
	t.Setenv("SMTP_PASSWORD", "secret")

	cfg, err := LoadMailRelay(writeFile(t, "[smtp]\nuser = \"hotel@example.com\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.SMTP.Password)
	assert.Equal(t, "hotel@example.com", cfg.SMTP.From)
	assert.Equal(t, 5000, cfg.Server.HTTPPort)

	_, err = LoadMailRelay(writeFile(t, ""))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
