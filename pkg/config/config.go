// Package config reads service settings from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. Empty optional values switch the
// corresponding integration off.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8443"`
	TLSCertFile     string        `envconfig:"TLS_CERT_FILE"`
	TLSKeyFile      string        `envconfig:"TLS_KEY_FILE"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	RedisAddr       string        `envconfig:"REDIS_ADDR"`
	OtelHost        string        `envconfig:"OTEL_HOST"`
	OtelProbability float64       `envconfig:"OTEL_PROBABILITY" default:"1.0"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"1h"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// TLS reports whether both certificate files are configured.
func (c Config) TLS() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
