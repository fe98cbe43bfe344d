package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.K6Binary != DefaultK6Binary {
		t.Errorf("expected binary %q, got %q", DefaultK6Binary, cfg.K6Binary)
	}
	if cfg.Parallelism != DefaultParallelism {
		t.Errorf("expected parallelism %d, got %d", DefaultParallelism, cfg.Parallelism)
	}
	if cfg.CleanupRetryAttempts != DefaultCleanupRetryAttempts {
		t.Errorf("expected %d retry attempts, got %d", DefaultCleanupRetryAttempts, cfg.CleanupRetryAttempts)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvK6Binary, "/opt/k6/k6")
	t.Setenv(EnvParallelism, "4")
	t.Setenv(EnvCleanupRetryDelay, "250ms")

	cfg := FromEnv()

	if cfg.K6Binary != "/opt/k6/k6" {
		t.Errorf("binary override ignored: %q", cfg.K6Binary)
	}
	if cfg.Parallelism != 4 {
		t.Errorf("parallelism override ignored: %d", cfg.Parallelism)
	}
	if cfg.CleanupRetryDelay != 250*time.Millisecond {
		t.Errorf("retry delay override ignored: %v", cfg.CleanupRetryDelay)
	}
	// Untouched values fall back to defaults.
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("unexpected output dir %q", cfg.OutputDir)
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	t.Setenv(EnvParallelism, "zero")
	t.Setenv(EnvCleanupRetryAttempts, "-1")
	t.Setenv(EnvCleanupRetryDelay, "soon")

	cfg := FromEnv()

	if cfg.Parallelism != DefaultParallelism {
		t.Errorf("invalid parallelism should fall back, got %d", cfg.Parallelism)
	}
	if cfg.CleanupRetryAttempts != DefaultCleanupRetryAttempts {
		t.Errorf("invalid attempts should fall back, got %d", cfg.CleanupRetryAttempts)
	}
	if cfg.CleanupRetryDelay != DefaultCleanupRetryDelay {
		t.Errorf("invalid delay should fall back, got %v", cfg.CleanupRetryDelay)
	}
}

func TestWithCopies(t *testing.T) {
	base := Default()
	modified := base.WithK6Binary("xk6").WithParallelism(8).WithOutputDir("/tmp/archives")

	if base.K6Binary != DefaultK6Binary || base.Parallelism != DefaultParallelism {
		t.Error("With* mutated the base config")
	}
	if modified.K6Binary != "xk6" || modified.Parallelism != 8 || modified.OutputDir != "/tmp/archives" {
		t.Errorf("With* lost a value: %+v", modified)
	}
}
