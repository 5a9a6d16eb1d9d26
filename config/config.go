package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		Port int `env:"SERVER_PORT" envDefault:"5250"`
	}

	// Upstream query API configuration
	Upstream struct {
		// Base URL of the remote query service
		BaseURL string `env:"UPSTREAM_BASE_URL" envDefault:"https://dash-production-b25c.up.railway.app"`

		// Session key passed on every run_query call
		SessionKey string `env:"UPSTREAM_SESSION_KEY"`

		// Query identifier for the leasing dataset
		QueryID string `env:"UPSTREAM_QUERY_ID" envDefault:"get_client_data"`

		// Request timeout in seconds
		Timeout int `env:"UPSTREAM_TIMEOUT" envDefault:"30"`
	}

	// Snapshot refresh configuration
	Refresh struct {
		// Minutes between upstream refreshes
		IntervalMinutes int `env:"REFRESH_INTERVAL_MINUTES" envDefault:"60"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/leasedash.db"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Maximum number of records to accumulate before processing
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
