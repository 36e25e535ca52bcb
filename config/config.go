package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server port
	Port string `env:"PORT" envDefault:"5260"`

	// Directory for persisted report JSON and the history database
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// Optional directory holding keyword/cost rule YAML overrides
	RulesDir string `env:"RULES_DIR" envDefault:"config"`

	// Permits with a status date before this year are dropped at normalization
	PermitCutoffYear int `env:"PERMIT_CUTOFF_YEAR" envDefault:"2020"`

	// Narrative generator collaborator; empty key disables the API call and
	// the deterministic fallback is used instead
	Narrative struct {
		APIKey         string `env:"NARRATIVE_API_KEY"`
		URL            string `env:"NARRATIVE_API_URL" envDefault:"https://api.1min.ai/api/features"`
		TimeoutSeconds int    `env:"NARRATIVE_TIMEOUT" envDefault:"120"`
	}

	// Batch report queue
	Batch struct {
		// Maximum queued report jobs before Push rejects
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"50"`

		// Number of concurrent report workers
		WorkerCount int `env:"BATCH_WORKER_COUNT" envDefault:"2"`

		// Maximum number of retries for a failed report job
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"2"`

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
