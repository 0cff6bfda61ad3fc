package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig_Defaults(t *testing.T) {
	cfg, err := ParseAppConfig(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "https://api.bcb.gov.br/dados/serie", cfg.BCBBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RateTimeout)
	assert.Equal(t, valuation.PolicyPermissive, cfg.Policy())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestParseAppConfig_Overrides(t *testing.T) {
	cfg, err := ParseAppConfig(map[string]string{
		"IMOBCALC_HTTP_ADDR":     "127.0.0.1:9000",
		"IMOBCALC_LOG_LEVEL":     "debug",
		"IMOBCALC_LOG_FORMAT":    "json",
		"IMOBCALC_RATE_TIMEOUT":  "750ms",
		"IMOBCALC_WEIGHT_POLICY": "strict",
		"IMOBCALC_CORS_ORIGINS":  "https://a.example,https://b.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, 750*time.Millisecond, cfg.RateTimeout)
	assert.Equal(t, valuation.PolicyStrict, cfg.Policy())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestParseAppConfig_Invalid(t *testing.T) {
	for name, environment := range map[string]map[string]string{
		"level":   {"IMOBCALC_LOG_LEVEL": "loud"},
		"format":  {"IMOBCALC_LOG_FORMAT": "xml"},
		"policy":  {"IMOBCALC_WEIGHT_POLICY": "lenient"},
		"timeout": {"IMOBCALC_RATE_TIMEOUT": "soon"},
		"zero":    {"IMOBCALC_RATE_TIMEOUT": "0s"},
	} {
		_, err := ParseAppConfig(environment)
		assert.Error(t, err, name)
	}
}

func TestLoadAppConfig_DotenvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("IMOBCALC_HTTP_ADDR=:7000\nIMOBCALC_LOG_LEVEL=warn\n"), 0o644))
	t.Setenv("IMOBCALC_LOG_LEVEL", "error")

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadAppConfig_MissingNamedFile(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &AppConfig{LogLevel: "warn", LogFormat: "json"}

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
