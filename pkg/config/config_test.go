package config

import (
	"testing"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shopConfig struct {
	Port     int             `env:"SHOP_CFG_PORT" envDefault:"8080"`
	Dataset  string          `env:"SHOP_CFG_DATASET" envDefault:"production"`
	Shipping decimal.Decimal `env:"SHOP_CFG_SHIPPING" envDefault:"50"`
	Brokers  []string        `env:"SHOP_CFG_BROKERS" envDefault:"a:9092,b:9092" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg shopConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Dataset)
	assert.True(t, decimal.NewFromInt(50).Equal(cfg.Shipping))
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("SHOP_CFG_PORT", "9090")
	t.Setenv("SHOP_CFG_DATASET", "staging")
	t.Setenv("SHOP_CFG_SHIPPING", "12.50")

	var cfg shopConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "staging", cfg.Dataset)
	assert.Equal(t, "12.5", cfg.Shipping.String())
}

func TestLoad_InvalidDecimal(t *testing.T) {
	t.Setenv("SHOP_CFG_SHIPPING", "fifty")

	var cfg shopConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type requiredConfig struct {
	ProjectID string `env:"SHOP_CFG_PROJECT_ID,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadWithOptions_InjectedEnvironment(t *testing.T) {
	var cfg requiredConfig
	err := LoadWithOptions(&cfg, env.Options{
		Environment: map[string]string{"SHOP_CFG_PROJECT_ID": "abc123"},
	})

	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.ProjectID)
}
