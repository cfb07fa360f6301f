// Copyright (C) 2025 scrtlabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// defaultFeeTable is the built-in gas/fee table from the chain's amino
// tx-fee conventions, denominated in ucosm.
var defaultFeeTable = FeeTableConfig{
	Upload: FeeAmount{Amount: "25000", Denom: "ucosm", Gas: 1000000},
	Init:   FeeAmount{Amount: "12500", Denom: "ucosm", Gas: 500000},
	Exec:   FeeAmount{Amount: "5000", Denom: "ucosm", Gas: 200000},
	Send:   FeeAmount{Amount: "2000", Denom: "ucosm", Gas: 80000},
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}

	// Try to parse as YAML first
	if err := yaml.Unmarshal(data, cfg); err != nil {
		// Try JSON if YAML fails
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file (tried YAML and JSON): %w", err)
		}
	}

	setDefaults(cfg)

	return cfg, nil
}

// SaveToFile saves configuration to a file. Format is chosen by extension.
func SaveToFile(cfg *Config, path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setDefaults fills zero-value fields with the client's built-in defaults.
func setDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if cfg.Network == nil {
		cfg.Network = &NetworkConfig{}
	}
	if cfg.Network.BroadcastMode == "" {
		cfg.Network.BroadcastMode = "block"
	}
	if cfg.Network.RequestTimeout == 0 {
		cfg.Network.RequestTimeout = 30 * time.Second
	}
	if cfg.Network.MaxRetries == 0 {
		cfg.Network.MaxRetries = 3
	}
	if cfg.Network.RetryDelay == 0 {
		cfg.Network.RetryDelay = 1 * time.Second
	}

	if cfg.Fees == nil {
		cfg.Fees = &FeeTableConfig{}
	}
	mergeFeeDefaults(cfg.Fees)

	if cfg.Logging == nil {
		cfg.Logging = &LoggingConfig{}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Health == nil {
		cfg.Health = &HealthConfig{}
	}
	if cfg.Health.Path == "" {
		cfg.Health.Path = "/healthz"
	}
	if cfg.Health.TTL == 0 {
		cfg.Health.TTL = 10 * time.Second
	}
}

// mergeFeeDefaults overrides any zero-valued FeeAmount field with the
// built-in default for that operation, field-wise, per the spec's
// "user-supplied overrides merge field-wise atop defaults" rule.
func mergeFeeDefaults(fees *FeeTableConfig) {
	mergeFeeAmount(&fees.Upload, defaultFeeTable.Upload)
	mergeFeeAmount(&fees.Init, defaultFeeTable.Init)
	mergeFeeAmount(&fees.Exec, defaultFeeTable.Exec)
	mergeFeeAmount(&fees.Send, defaultFeeTable.Send)
}

func mergeFeeAmount(dst *FeeAmount, def FeeAmount) {
	if dst.Amount == "" {
		dst.Amount = def.Amount
	}
	if dst.Denom == "" {
		dst.Denom = def.Denom
	}
	if dst.Gas == 0 {
		dst.Gas = def.Gas
	}
}
