package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains service configuration parameters.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"social-service"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`

	Database Database `envPrefix:"DB_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Friends  Friends  `envPrefix:"FRIENDS_"`
	JWT      JWT      `envPrefix:"JWT_"`
	AMQP     AMQP     `envPrefix:""`
}

// Database contains relational store parameters.
type Database struct {
	DSN string `env:"DSN"`
}

// Redis contains cache backend parameters. An empty Addr selects the
// in-process cache.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Friends contains the friend-request domain knobs. The rate limit window
// and threshold are fixed and not read from the environment.
type Friends struct {
	CooldownHours   int `env:"COOLDOWN_HOURS" envDefault:"24"`
	CacheTTLSeconds int `env:"CACHE_TTL_SECONDS" envDefault:"300"`
}

// JWT contains auth token parameters.
type JWT struct {
	Secret string `env:"SECRET"`
}

// AMQP contains event publishing parameters.
type AMQP struct {
	URL           string `env:"AMQP_URL"`
	LogsExchange  string `env:"LOGS_EXCHANGE" envDefault:"logs.events"`
	EventExchange string `env:"EVENT_EXCHANGE" envDefault:"app.events"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DB_DSN must be set")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &cfg, nil
}

// Cooldown returns the rejected-pair cooldown window as a duration.
func (f Friends) Cooldown() time.Duration {
	return time.Duration(f.CooldownHours) * time.Hour
}

// CacheTTL returns the friend-list cache TTL as a duration.
func (f Friends) CacheTTL() time.Duration {
	return time.Duration(f.CacheTTLSeconds) * time.Second
}
