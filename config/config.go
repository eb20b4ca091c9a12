package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Network holds the network selected by the CLI's persistent flag.
var Network string

// Config carries the process wide settings that are not part of the static
// network table: upstream credentials and the bound on every outbound call.
type Config struct {
	// HTTPTimeout bounds every outbound HTTP and RPC call. It must be finite;
	// a timed out call is reported as a normal failure.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`

	EtherscanAPIKey string `envconfig:"ETHERSCAN_API_KEY"`
	AlchemyAPIKey   string `envconfig:"ALCHEMY_API_KEY"`

	// TraceServiceURL overrides the per-network trace endpoint when set.
	TraceServiceURL string `envconfig:"TRACE_SERVICE_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}
	return cfg, nil
}
