package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"expression-calculator/internal/expression"
)

// Config holds the runtime settings of the calculator service.
type Config struct {
	// HTTPAddr is the listen address of the API server.
	HTTPAddr string
	// MaxDepth limits parenthesis nesting in evaluated expressions; 0 disables
	// the limit.
	MaxDepth int
	// ShutdownTimeout bounds graceful server shutdown.
	ShutdownTimeout time.Duration
	// OTLPLogs tees application logs to the OTLP log exporter.
	OTLPLogs bool
}

const (
	envHTTPAddr        = "CALC_HTTP_ADDR"
	envMaxDepth        = "CALC_MAX_DEPTH"
	envShutdownTimeout = "CALC_SHUTDOWN_TIMEOUT"
	envOTLPLogs        = "CALC_OTLP_LOGS"
)

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		MaxDepth:        expression.DefaultMaxDepth,
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load reads .env and the process environment on top of Default.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

// FromEnv reads the process environment on top of Default.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv(envHTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}

	if v := os.Getenv(envMaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("parse %s=%q: must be a non-negative integer", envMaxDepth, v)
		}
		cfg.MaxDepth = n
	}

	if v := os.Getenv(envShutdownTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envShutdownTimeout, err)
		}
		cfg.ShutdownTimeout = d
	}

	if v := os.Getenv(envOTLPLogs); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envOTLPLogs, err)
		}
		cfg.OTLPLogs = b
	}

	return cfg, nil
}

// Calculator builds the expression calculator these settings describe.
func (c Config) Calculator() *expression.Calculator {
	return expression.New(expression.WithMaxDepth(c.MaxDepth))
}
