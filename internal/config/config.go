// Package config manages server configuration stored in server_config.json.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config stores all server-wide configuration.
// Loaded from server_config.json, created with defaults if missing.
type Config struct {
	// GateSecret signs and verifies JWT bearer tokens accepted by the
	// auth gate. Auto-generated if empty on first load.
	GateSecret []byte `json:"gate_secret"`

	// APITokens are static bearer tokens accepted by the auth gate.
	// One is auto-generated on first load so the API is never open.
	APITokens []string `json:"api_tokens"`

	// RateLimits defines rate limiting configuration.
	RateLimits RateLimits `json:"rate_limits"`

	// Limits defines request size caps.
	Limits Limits `json:"limits"`
}

// RateLimits defines rate limiting configuration (requests per minute).
type RateLimits struct {
	// WriteRatePerMin limits mutating operations per client IP.
	// 0 means unlimited.
	WriteRatePerMin int `json:"write_rate_per_min"`
}

// Validate checks that rate limit values are non-negative.
func (r *RateLimits) Validate() error {
	if r.WriteRatePerMin < 0 {
		return errors.New("write_rate_per_min must be non-negative")
	}
	return nil
}

// Limits defines request size caps.
type Limits struct {
	// MaxRequestBodyBytes limits the size of any single HTTP request body,
	// uploads included.
	MaxRequestBodyBytes int64 `json:"max_request_body_bytes"`
}

// Validate checks that limit values are non-negative.
func (l *Limits) Validate() error {
	if l.MaxRequestBodyBytes < 0 {
		return errors.New("max_request_body_bytes must be non-negative")
	}
	return nil
}

// Default returns the default configuration, without secrets.
func Default() Config {
	return Config{
		RateLimits: RateLimits{WriteRatePerMin: 120},
		Limits:     Limits{MaxRequestBodyBytes: 10 * 1024 * 1024},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if len(c.GateSecret) < 32 {
		return errors.New("gate_secret must be at least 32 bytes")
	}
	if len(c.APITokens) == 0 {
		return errors.New("at least one api token is required")
	}
	if err := c.RateLimits.Validate(); err != nil {
		return fmt.Errorf("rate_limits: %w", err)
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	return nil
}

// Load loads configuration from dataDir/server_config.json, creating the
// file with defaults if it doesn't exist. The gate secret and a bootstrap
// API token are auto-generated when missing.
func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, "server_config.json")

	cfg := Default()
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from dataDir, not user input
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read server_config.json: %w", err)
		}
		// File doesn't exist, will create with defaults.
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse server_config.json: %w", err)
		}
	}

	modified := false
	if len(cfg.GateSecret) == 0 {
		cfg.GateSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.GateSecret); err != nil {
			return nil, fmt.Errorf("failed to generate gate secret: %w", err)
		}
		modified = true
	}
	if len(cfg.APITokens) == 0 {
		tok := make([]byte, 24)
		if _, err := rand.Read(tok); err != nil {
			return nil, fmt.Errorf("failed to generate api token: %w", err)
		}
		cfg.APITokens = []string{hex.EncodeToString(tok)}
		modified = true
	}

	if modified || os.IsNotExist(err) {
		if err := cfg.Save(dataDir); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server_config.json: %w", err)
	}
	return &cfg, nil
}

// Save saves configuration to dataDir/server_config.json.
func (c *Config) Save(dataDir string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dataDir, "server_config.json"), data, 0o600); err != nil {
		return fmt.Errorf("failed to write server_config.json: %w", err)
	}
	return nil
}
