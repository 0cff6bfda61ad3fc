package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/sirupsen/logrus"
)

// AppConfig is the process configuration, read from IMOBCALC_* variables.
type AppConfig struct {
	HTTPAddr     string        `env:"IMOBCALC_HTTP_ADDR" envDefault:":8080"`
	LogLevel     string        `env:"IMOBCALC_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"IMOBCALC_LOG_FORMAT" envDefault:"text"`
	BCBBaseURL   string        `env:"IMOBCALC_BCB_BASE_URL" envDefault:"https://api.bcb.gov.br/dados/serie"`
	RateTimeout  time.Duration `env:"IMOBCALC_RATE_TIMEOUT" envDefault:"5s"`
	WeightPolicy string        `env:"IMOBCALC_WEIGHT_POLICY" envDefault:"permissive"`
	CORSOrigins  []string      `env:"IMOBCALC_CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// LoadAppConfig reads the configuration from the process environment.
// Variables from the given .env files (".env" when none are named) fill in
// whatever the environment does not already set. A missing default .env is
// not an error.
func LoadAppConfig(dotenvFiles ...string) (*AppConfig, error) {
	environment := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environment[k] = v
		}
	}

	values, err := godotenv.Read(dotenvFiles...)
	if err != nil && len(dotenvFiles) > 0 {
		return nil, fmt.Errorf("failed to read env files: %w", err)
	}
	for k, v := range values {
		if _, set := environment[k]; !set {
			environment[k] = v
		}
	}

	return ParseAppConfig(environment)
}

// ParseAppConfig builds the configuration from an explicit environment.
func ParseAppConfig(environment map[string]string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *AppConfig) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (valid: text, json)", c.LogFormat)
	}
	if _, err := valuation.ParseWeightPolicy(c.WeightPolicy); err != nil {
		return err
	}
	if c.RateTimeout <= 0 {
		return fmt.Errorf("rate timeout must be positive, got %s", c.RateTimeout)
	}
	return nil
}

// NewLogger builds the process logger writing to out.
func (c *AppConfig) NewLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// Policy returns the configured weight policy.
func (c *AppConfig) Policy() valuation.WeightPolicy {
	p, _ := valuation.ParseWeightPolicy(c.WeightPolicy)
	return p
}
