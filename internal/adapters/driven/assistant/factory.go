// Package assistant provides factory functions for creating the
// assistant backend from stored configuration.
package assistant

import (
	"time"

	"github.com/dextr-labs/dextr-cli/internal/adapters/driven/assistant/remote"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
	"github.com/dextr-labs/dextr-cli/internal/logger"
)

// Config keys for assistant settings.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyEndpoint          = "assistant.endpoint"
	KeyAPIKey            = "assistant.api_key"
	KeyTimeoutSeconds    = "assistant.timeout_seconds"
	KeyRequestsPerMinute = "assistant.requests_per_minute"
)

// FromConfig builds the remote assistant from stored configuration.
// Returns nil when no endpoint is configured; local sniffing and the
// project lifecycle keep working without a backend.
func FromConfig(config driven.ConfigStore) (driven.Assistant, error) {
	endpoint := config.GetString(KeyEndpoint)
	if endpoint == "" {
		logger.Debug("No assistant endpoint configured")
		return nil, nil
	}

	cfg := remote.Config{
		Endpoint: endpoint,
		APIKey:   config.GetString(KeyAPIKey),
	}
	if secs := config.GetInt(KeyTimeoutSeconds); secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if rpm := config.GetInt(KeyRequestsPerMinute); rpm > 0 {
		cfg.RequestsPerMinute = rpm
	}

	logger.Debug("Assistant endpoint: %s", endpoint)
	return remote.NewAssistant(cfg)
}
