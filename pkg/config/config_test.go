package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sqlite://sweeper.db", cfg.DatabaseURL)
	assert.Equal(t, "./migrations", cfg.MigrationsDir)
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, 8888, cfg.WSPort)
	assert.Equal(t, 50*time.Millisecond, cfg.TimerPeriod)
	assert.Equal(t, 100, cfg.SaveQueueSize)
	assert.False(t, cfg.TLSEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SWEEPER_LOG_LEVEL", "debug")
	t.Setenv("SWEEPER_DATABASE_URL", "postgresql://sweeper@localhost/sweeper")
	t.Setenv("SWEEPER_WS_PORT", "7000")
	t.Setenv("SWEEPER_ALLOW_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SWEEPER_TIMER_PERIOD", "20ms")
	t.Setenv("SWEEPER_TLS_CERT_FILE", "cert.pem")
	t.Setenv("SWEEPER_TLS_KEY_FILE", "key.pem")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgresql://sweeper@localhost/sweeper", cfg.DatabaseURL)
	assert.Equal(t, 7000, cfg.WSPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.Equal(t, 20*time.Millisecond, cfg.TimerPeriod)
	assert.True(t, cfg.TLSEnabled())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "malformed port",
			env:     map[string]string{"SWEEPER_API_PORT": "not-an-int"},
			wantErr: "parse env:",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"SWEEPER_LOG_LEVEL": "verbose"},
			wantErr: "unknown log level",
		},
		{
			name:    "timer period too short",
			env:     map[string]string{"SWEEPER_TIMER_PERIOD": "1ms"},
			wantErr: "below the minimum",
		},
		{
			name:    "empty save queue",
			env:     map[string]string{"SWEEPER_SAVE_QUEUE_SIZE": "0"},
			wantErr: "save queue size",
		},
		{
			name:    "certificate without key",
			env:     map[string]string{"SWEEPER_TLS_CERT_FILE": "cert.pem"},
			wantErr: "TLS",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
