package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the API. It is loaded once in
// main and passed down explicitly; packages never read the environment
// themselves.
type Config struct {
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string

	// ChainID selects the chain environment (delegation manager, enforcers,
	// token registry). Defaults to Base Sepolia.
	ChainID uint64

	// BundlerURL is the JSON-RPC endpoint of the bundler/paymaster pipeline.
	BundlerURL string

	// SessionTokenSecret verifies HS256 session tokens on protected routes.
	SessionTokenSecret string

	// KeyEncryptionSecret encrypts per-user signing keys at rest. When
	// KeyEncryptionSecretID is set the secret is fetched from AWS Secrets
	// Manager instead.
	KeyEncryptionSecret   string
	KeyEncryptionSecretID string

	// ReceiptTimeout bounds how long redemption waits for a user operation
	// receipt before giving up.
	ReceiptTimeout time.Duration

	// GinMode mirrors GIN_MODE and selects the logger encoder.
	GinMode string
}

// Load reads configuration from the environment and validates the required
// values.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		BundlerURL:            os.Getenv("BUNDLER_URL"),
		SessionTokenSecret:    os.Getenv("SESSION_TOKEN_SECRET"),
		KeyEncryptionSecret:   os.Getenv("PRIVATE_KEY_ENCRYPTION_SECRET"),
		KeyEncryptionSecretID: os.Getenv("PRIVATE_KEY_ENCRYPTION_SECRET_ID"),
		GinMode:               os.Getenv("GIN_MODE"),
		ChainID:               84532,
		ReceiptTimeout:        2 * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.BundlerURL == "" {
		return nil, fmt.Errorf("BUNDLER_URL environment variable is required")
	}
	if cfg.SessionTokenSecret == "" {
		return nil, fmt.Errorf("SESSION_TOKEN_SECRET environment variable is required")
	}
	if cfg.KeyEncryptionSecret == "" && cfg.KeyEncryptionSecretID == "" {
		return nil, fmt.Errorf("PRIVATE_KEY_ENCRYPTION_SECRET or PRIVATE_KEY_ENCRYPTION_SECRET_ID is required")
	}

	if raw := os.Getenv("CHAIN_ID"); raw != "" {
		chainID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAIN_ID %q: %w", raw, err)
		}
		cfg.ChainID = chainID
	}

	if raw := os.Getenv("RECEIPT_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid RECEIPT_TIMEOUT_SECONDS %q", raw)
		}
		cfg.ReceiptTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}
