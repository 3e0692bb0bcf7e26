package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cbodonnell/sweeper/pkg/game/constants"
	"github.com/cbodonnell/sweeper/pkg/log"
)

// Config is the server configuration read from SWEEPER_* environment variables
type Config struct {
	LogLevel      string        `env:"SWEEPER_LOG_LEVEL"       envDefault:"info"`
	DatabaseURL   string        `env:"SWEEPER_DATABASE_URL"    envDefault:"sqlite://sweeper.db"`
	MigrationsDir string        `env:"SWEEPER_MIGRATIONS_DIR"  envDefault:"./migrations"`
	APIPort       int           `env:"SWEEPER_API_PORT"        envDefault:"9090"`
	WSPort        int           `env:"SWEEPER_WS_PORT"         envDefault:"8888"`
	AllowOrigins  []string      `env:"SWEEPER_ALLOW_ORIGINS"   envSeparator:","`
	TimerPeriod   time.Duration `env:"SWEEPER_TIMER_PERIOD"    envDefault:"50ms"`
	TLSCertFile   string        `env:"SWEEPER_TLS_CERT_FILE"`
	TLSKeyFile    string        `env:"SWEEPER_TLS_KEY_FILE"`
	SaveQueueSize int           `env:"SWEEPER_SAVE_QUEUE_SIZE" envDefault:"100"`
	SaveTimeout   time.Duration `env:"SWEEPER_SAVE_TIMEOUT"    envDefault:"5s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the server configuration
func Load() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot
func (c *Config) Validate() error {
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.TimerPeriod < constants.MinTimerPeriod {
		return fmt.Errorf("timer period %s is below the minimum of %s", c.TimerPeriod, constants.MinTimerPeriod)
	}
	if c.SaveQueueSize <= 0 {
		return fmt.Errorf("save queue size must be positive, got %d", c.SaveQueueSize)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("both SWEEPER_TLS_CERT_FILE and SWEEPER_TLS_KEY_FILE must be set to enable TLS")
	}
	return nil
}

// TLSEnabled returns true if a certificate and key are configured
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
