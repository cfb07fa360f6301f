package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("TEST_LCD_HOST", "lcd.test.internal")

	assert.Equal(t, "lcd.test.internal", SubstituteEnvVars("${TEST_LCD_HOST}"))
	assert.Equal(t, "fallback", SubstituteEnvVars("${TEST_UNSET_VAR:fallback}"))
	assert.Equal(t, "", SubstituteEnvVars("${TEST_UNSET_VAR}"))
	assert.Equal(t, "plain string", SubstituteEnvVars("plain string"))
}

func TestSubstituteEnvVarsInConfig(t *testing.T) {
	t.Setenv("TEST_CHAIN_ID", "secretdev-1")

	cfg := &Config{
		Network: &NetworkConfig{ChainID: "${TEST_CHAIN_ID}"},
		Logging: &LoggingConfig{Level: "${TEST_UNSET_LEVEL:warn}"},
	}

	SubstituteEnvVarsInConfig(cfg)

	assert.Equal(t, "secretdev-1", cfg.Network.ChainID)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSubstituteEnvVarsInConfig_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		SubstituteEnvVarsInConfig(nil)
	})
}

func TestGetEnvironment(t *testing.T) {
	os.Unsetenv("SECRETJS_ENV")
	os.Unsetenv("ENVIRONMENT")
	assert.Equal(t, "development", GetEnvironment())

	t.Setenv("ENVIRONMENT", "Production")
	assert.Equal(t, "production", GetEnvironment())

	t.Setenv("SECRETJS_ENV", "Staging")
	assert.Equal(t, "staging", GetEnvironment())
}

func TestIsProductionIsDevelopment(t *testing.T) {
	t.Setenv("SECRETJS_ENV", "production")
	assert.True(t, IsProduction())
	assert.False(t, IsDevelopment())

	t.Setenv("SECRETJS_ENV", "local")
	assert.False(t, IsProduction())
	assert.True(t, IsDevelopment())
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv("SECRETJS_LCD_ENDPOINT", "https://override.example.com")
	t.Setenv("SECRETJS_LOG_LEVEL", "debug")
	t.Setenv("SECRETJS_METRICS_ENABLED", "true")

	cfg := &Config{}
	setDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	assert.Equal(t, "https://override.example.com", cfg.Network.LCDEndpoint)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}
