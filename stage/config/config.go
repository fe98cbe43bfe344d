// Package config centralizes perfstage configuration with environment
// variable overrides.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults used throughout perfstage
const (
	// DefaultK6Binary is the k6 executable resolved from PATH
	DefaultK6Binary = "k6"

	// DefaultOutputDir is where archives land; empty means the current
	// working directory
	DefaultOutputDir = ""

	// DefaultParallelism bounds how many scripts are staged concurrently
	DefaultParallelism = 1

	// DefaultCleanupRetryAttempts is how often a failed retract is retried
	// during cleanup
	DefaultCleanupRetryAttempts = 3

	// DefaultCleanupRetryDelay is the initial backoff between retract retries
	DefaultCleanupRetryDelay = 1 * time.Second
)

// Environment variable names for configuration overrides
const (
	EnvK6Binary             = "PERFSTAGE_K6_BINARY"
	EnvOutputDir            = "PERFSTAGE_OUTPUT_DIR"
	EnvParallelism          = "PERFSTAGE_PARALLELISM"
	EnvCleanupRetryAttempts = "PERFSTAGE_CLEANUP_RETRY_ATTEMPTS"
	EnvCleanupRetryDelay    = "PERFSTAGE_CLEANUP_RETRY_DELAY"
)

// Config holds perfstage configuration with optional overrides
type Config struct {
	// K6Binary is the k6 executable name or path
	K6Binary string

	// OutputDir is the directory archives are written to
	OutputDir string

	// Parallelism bounds concurrent staging operations
	Parallelism int

	// Cleanup retract retry policy (caller-side; publish and retract
	// themselves stay single-attempt)
	CleanupRetryAttempts int
	CleanupRetryDelay    time.Duration
}

// Default returns a Config with all default values
func Default() *Config {
	return &Config{
		K6Binary:             DefaultK6Binary,
		OutputDir:            DefaultOutputDir,
		Parallelism:          DefaultParallelism,
		CleanupRetryAttempts: DefaultCleanupRetryAttempts,
		CleanupRetryDelay:    DefaultCleanupRetryDelay,
	}
}

// FromEnv returns a Config with values from environment variables, falling
// back to defaults
func FromEnv() *Config {
	cfg := Default()

	if v := os.Getenv(EnvK6Binary); v != "" {
		cfg.K6Binary = v
	}

	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}

	if v := os.Getenv(EnvParallelism); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Parallelism = n
		}
	}

	if v := os.Getenv(EnvCleanupRetryAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CleanupRetryAttempts = n
		}
	}

	if v := os.Getenv(EnvCleanupRetryDelay); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CleanupRetryDelay = d
		}
	}

	return cfg
}

// WithK6Binary returns a copy with an updated k6 binary
func (c *Config) WithK6Binary(binary string) *Config {
	cp := *c
	cp.K6Binary = binary
	return &cp
}

// WithOutputDir returns a copy with an updated output directory
func (c *Config) WithOutputDir(dir string) *Config {
	cp := *c
	cp.OutputDir = dir
	return &cp
}

// WithParallelism returns a copy with updated staging parallelism
func (c *Config) WithParallelism(n int) *Config {
	cp := *c
	cp.Parallelism = n
	return &cp
}
