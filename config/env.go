// SAGE - Secure Agent Guarantee Engine
// Copyright (C) 2025 SAGE-X-project
//
// This file is part of SAGE.
//
// SAGE is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SAGE is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with SAGE. If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR} or ${VAR:default}
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

// SubstituteEnvVars replaces ${VAR} or ${VAR:default} with environment variable values
func SubstituteEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultValue := ""
		if len(parts) > 2 {
			defaultValue = parts[2]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

// SubstituteEnvVarsInConfig recursively substitutes environment variables in config
func SubstituteEnvVarsInConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Network != nil {
		cfg.Network.LCDEndpoint = SubstituteEnvVars(cfg.Network.LCDEndpoint)
		cfg.Network.RPCEndpoint = SubstituteEnvVars(cfg.Network.RPCEndpoint)
		cfg.Network.ChainID = SubstituteEnvVars(cfg.Network.ChainID)
		cfg.Network.BroadcastMode = SubstituteEnvVars(cfg.Network.BroadcastMode)
	}

	if cfg.Fees != nil {
		cfg.Fees.Upload.Amount = SubstituteEnvVars(cfg.Fees.Upload.Amount)
		cfg.Fees.Init.Amount = SubstituteEnvVars(cfg.Fees.Init.Amount)
		cfg.Fees.Exec.Amount = SubstituteEnvVars(cfg.Fees.Exec.Amount)
		cfg.Fees.Send.Amount = SubstituteEnvVars(cfg.Fees.Send.Amount)
	}

	if cfg.Logging != nil {
		cfg.Logging.Level = SubstituteEnvVars(cfg.Logging.Level)
		cfg.Logging.Format = SubstituteEnvVars(cfg.Logging.Format)
		cfg.Logging.Output = SubstituteEnvVars(cfg.Logging.Output)
	}

	if cfg.Health != nil {
		cfg.Health.Path = SubstituteEnvVars(cfg.Health.Path)
	}

	if cfg.Metrics != nil {
		cfg.Metrics.Path = SubstituteEnvVars(cfg.Metrics.Path)
	}
}

// GetEnvironment returns the current environment from SECRETJS_ENV or defaults to development
func GetEnvironment() string {
	env := os.Getenv("SECRETJS_ENV")
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	if env == "" {
		env = "development"
	}
	return strings.ToLower(env)
}

// IsProduction returns true if running in production environment
func IsProduction() bool {
	return GetEnvironment() == "production"
}

// IsDevelopment returns true if running in development or local environment
func IsDevelopment() bool {
	env := GetEnvironment()
	return env == "development" || env == "local"
}

// applyEnvironmentOverrides overrides config with environment variables.
// This is the highest-priority layer, applied after file load and
// ${VAR}-substitution.
func applyEnvironmentOverrides(cfg *Config) {
	if cfg.Network != nil {
		if v := os.Getenv("SECRETJS_LCD_ENDPOINT"); v != "" {
			cfg.Network.LCDEndpoint = v
		}
		if v := os.Getenv("SECRETJS_RPC_ENDPOINT"); v != "" {
			cfg.Network.RPCEndpoint = v
		}
		if v := os.Getenv("SECRETJS_CHAIN_ID"); v != "" {
			cfg.Network.ChainID = v
		}
		if v := os.Getenv("SECRETJS_BROADCAST_MODE"); v != "" {
			cfg.Network.BroadcastMode = v
		}
	}

	if cfg.Logging != nil {
		if v := os.Getenv("SECRETJS_LOG_LEVEL"); v != "" {
			cfg.Logging.Level = v
		}
		if v := os.Getenv("SECRETJS_LOG_FORMAT"); v != "" {
			cfg.Logging.Format = v
		}
	}

	if cfg.Metrics != nil {
		if os.Getenv("SECRETJS_METRICS_ENABLED") == "true" {
			cfg.Metrics.Enabled = true
		}
		if os.Getenv("SECRETJS_METRICS_ENABLED") == "false" {
			cfg.Metrics.Enabled = false
		}
	}
}
