package config

import (
	"strings"
	"time"
)

// NetworkPresets defines preset configurations for known Secret Network
// environments.
var NetworkPresets = map[string]*NetworkConfig{
	"localsecret": {
		LCDEndpoint:    "http://localhost:1317",
		RPCEndpoint:    "http://localhost:26657",
		ChainID:        "secretdev-1",
		BroadcastMode:  "block",
		RequestTimeout: 30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second,
	},
	"pulsar": {
		LCDEndpoint:    "https://api.pulsar.scrttestnet.com",
		RPCEndpoint:    "https://rpc.pulsar.scrttestnet.com",
		ChainID:        "pulsar-3",
		BroadcastMode:  "sync",
		RequestTimeout: 30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	},
	"mainnet": {
		LCDEndpoint:    "https://lcd.mainnet.secretsaturn.net",
		RPCEndpoint:    "https://rpc.mainnet.secretsaturn.net",
		ChainID:        "secret-4",
		BroadcastMode:  "block",
		RequestTimeout: 30 * time.Second,
		MaxRetries:     5,
		RetryDelay:     3 * time.Second,
	},
}

// NetworkPreset returns a copy of the named preset, falling back to
// "localsecret" if the name is unknown.
func NetworkPreset(name string) *NetworkConfig {
	preset, ok := NetworkPresets[strings.ToLower(name)]
	if !ok {
		preset = NetworkPresets["localsecret"]
	}
	cp := *preset
	return &cp
}

// Validate checks that the network configuration is usable.
func (n *NetworkConfig) Validate() error {
	if n.LCDEndpoint == "" {
		return errRequiredField("network.lcd_endpoint")
	}
	if n.ChainID == "" {
		return errRequiredField("network.chain_id")
	}
	switch n.BroadcastMode {
	case "block", "sync", "async":
	default:
		return errInvalidBroadcastMode(n.BroadcastMode)
	}
	return nil
}

// IsLocal returns true if the configuration targets a local devnet.
func (n *NetworkConfig) IsLocal() bool {
	return strings.Contains(n.LCDEndpoint, "localhost") ||
		strings.Contains(n.LCDEndpoint, "127.0.0.1")
}
