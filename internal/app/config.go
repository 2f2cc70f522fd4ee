package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Taskfile string // path to the plzfile.hcl
	EnvFile  string // path to the .env file

	LogFormat string
	LogLevel  string
	DryRun    bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Taskfile == "" {
		return nil, errors.New("Taskfile is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
