package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath is the project file. Empty means discovery in WorkDir.
	ConfigPath string
	// WorkDir is the directory builds run in. Empty means the process
	// working directory.
	WorkDir string

	LogFormat       string
	LogLevel        string
	NoColor         bool
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if _, ok := logLevels[cfg.LogLevel]; !ok && cfg.LogLevel != "" {
		return nil, fmt.Errorf("invalid log-level '%s': must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format '%s': must be 'text' or 'json'", cfg.LogFormat)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port must be between 0 and 65535, got %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
