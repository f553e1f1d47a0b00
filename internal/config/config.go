// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration for the compile-and-report CLI.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Snapshot is the path to the season snapshot file to compile.
	Snapshot string `koanf:"snapshot"`

	// MetricsAddr configures the Prometheus listen address, e.g. ":9090".
	// Empty disables the metrics endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// SurvivalCap bounds the per-episode survival bonus. Zero means
	// uncapped.
	SurvivalCap int `koanf:"survival_cap"`

	// BasePoints overrides base direct event point values per league
	// setting, keyed by event name.
	BasePoints map[string]float64 `koanf:"base_points"`
}

// New creates a Config with league-default values.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Snapshot:    "season.json",
		MetricsAddr: "",
		SurvivalCap: 5,
	}
}
