// Package config provides configuration management for secretjs-go.
package config

import "time"

// Config is the top-level configuration for a secretjs-go client.
type Config struct {
	Environment string          `yaml:"environment" json:"environment"`
	Network     *NetworkConfig  `yaml:"network" json:"network"`
	Fees        *FeeTableConfig `yaml:"fees" json:"fees"`
	Logging     *LoggingConfig  `yaml:"logging" json:"logging"`
	Metrics     *MetricsConfig  `yaml:"metrics" json:"metrics"`
	Health      *HealthConfig   `yaml:"health" json:"health"`
}

// NetworkConfig describes how to reach the chain.
type NetworkConfig struct {
	LCDEndpoint    string        `yaml:"lcd_endpoint" json:"lcd_endpoint"`
	RPCEndpoint    string        `yaml:"rpc_endpoint" json:"rpc_endpoint"`
	ChainID        string        `yaml:"chain_id" json:"chain_id"`
	BroadcastMode  string        `yaml:"broadcast_mode" json:"broadcast_mode"` // block | sync | async
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries" json:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay" json:"retry_delay"`
}

// FeeAmount is a single coin/gas pair, e.g. amount="25000" denom="ucosm".
type FeeAmount struct {
	Amount string `yaml:"amount" json:"amount"`
	Denom  string `yaml:"denom" json:"denom"`
	Gas    uint64 `yaml:"gas" json:"gas"`
}

// FeeTableConfig holds the per-operation default gas/fee table. Zero-value
// fields are filled from the built-in defaults by setDefaults; any
// non-zero field supplied by the caller overrides that operation only.
type FeeTableConfig struct {
	Upload FeeAmount `yaml:"upload" json:"upload"`
	Init   FeeAmount `yaml:"init" json:"init"`
	Exec   FeeAmount `yaml:"exec" json:"exec"`
	Send   FeeAmount `yaml:"send" json:"send"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // json, text
	Output string `yaml:"output" json:"output"` // stdout, stderr, file path
}

// MetricsConfig configures the prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Port    int    `yaml:"port" json:"port"`
	Path    string `yaml:"path" json:"path"`
}

// HealthConfig configures the health-check endpoint.
type HealthConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Port    int           `yaml:"port" json:"port"`
	Path    string        `yaml:"path" json:"path"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}
