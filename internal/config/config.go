// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/listenrightmeow/mcps/internal/applog"
)

const (
	DefaultPort              = 3001
	DefaultEnvironment       = "development"
	DefaultLogLevel          = "debug"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
)

// Config is the process configuration. Defaults are applied both through
// struct tags and in code, so a zero Config passed to Normalize is usable.
type Config struct {
	// Port to listen on. ENV: PORT
	Port int `env:"PORT,default=3001"`
	// Host interface to bind; empty means all interfaces. ENV: HOST
	Host string `env:"HOST"`
	// Environment name, logged at startup. ENV: ENVIRONMENT
	Environment string `env:"ENVIRONMENT,default=development"`
	// LogLevel is one of debug, http, info, warn, error. ENV: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL,default=debug"`
	// ShutdownTimeout bounds graceful HTTP shutdown. ENV: SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	// ReadHeaderTimeout bounds reading request headers. ENV: READ_HEADER_TIMEOUT
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT,default=10s"`

	level slog.Level
}

// Load decodes the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize fills unset fields with defaults and validates the result.
func (c *Config) Normalize() error {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}

	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must not be negative"))
	}
	if c.ReadHeaderTimeout < 0 {
		errs = append(errs, fmt.Errorf("READ_HEADER_TIMEOUT must not be negative"))
	}
	lvl, err := applog.ParseLevel(c.LogLevel)
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	c.level = lvl

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr is the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Level is the parsed LogLevel. Only meaningful after Normalize.
func (c Config) Level() slog.Level { return c.level }
