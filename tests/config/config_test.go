package config_test

import (
	"testing"
	"time"

	"github.com/jslate/intake/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("default port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Processing.Workers != 4 {
		t.Errorf("default workers = %d, want 4", cfg.Processing.Workers)
	}
	if cfg.Processing.MaxRetries != 3 {
		t.Errorf("default max_retries = %d, want 3", cfg.Processing.MaxRetries)
	}
	if cfg.API.MaxUploadSizeBytes() != 10*1024*1024 {
		t.Errorf("default max upload = %d, want 10MB", cfg.API.MaxUploadSizeBytes())
	}
	if cfg.Extractor.Model != "gpt-4.1" {
		t.Errorf("default model = %s, want gpt-4.1", cfg.Extractor.Model)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("default shutdown timeout = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServerPort, "9000")
	t.Setenv(config.EnvProcessingWorkers, "8")
	t.Setenv(config.EnvExtractorModel, "gpt-4o-mini")
	t.Setenv(config.EnvExtractorAPIKey, "test-key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Processing.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Processing.Workers)
	}
	if cfg.Extractor.Model != "gpt-4o-mini" {
		t.Errorf("model = %s, want gpt-4o-mini", cfg.Extractor.Model)
	}
	if cfg.Extractor.APIKey != "test-key" {
		t.Errorf("api key not applied from environment")
	}
}

func TestMergeOverlay(t *testing.T) {
	base := &config.Config{}
	overlay := &config.Config{Version: "2.0.0"}
	overlay.Server.Port = 9999
	overlay.Processing.MaxRetries = 5

	base.Merge(overlay)

	if base.Version != "2.0.0" {
		t.Errorf("version = %s, want 2.0.0", base.Version)
	}
	if base.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", base.Server.Port)
	}
	if base.Processing.MaxRetries != 5 {
		t.Errorf("max_retries = %d, want 5", base.Processing.MaxRetries)
	}
}

func TestMergeIgnoresZeroValues(t *testing.T) {
	base := &config.Config{Version: "1.0.0"}
	base.Server.Port = 8000

	base.Merge(&config.Config{})

	if base.Version != "1.0.0" {
		t.Errorf("version = %s, want 1.0.0", base.Version)
	}
	if base.Server.Port != 8000 {
		t.Errorf("port = %d, want 8000", base.Server.Port)
	}
}

func TestProcessingValidation(t *testing.T) {
	cfg := &config.ProcessingConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.Workers != 4 || cfg.MaxRetries != 3 || cfg.QueueSize != 64 {
		t.Errorf("finalized processing config = %+v, want defaults", cfg)
	}

	bad := &config.ProcessingConfig{Workers: -1}
	if err := bad.Finalize(); err == nil {
		t.Error("expected error for negative workers")
	}
}

func TestExtractorValidation(t *testing.T) {
	cfg := &config.ExtractorConfig{Temperature: 3.5}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for temperature out of range")
	}

	cfg = &config.ExtractorConfig{Timeout: "not-a-duration"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

func TestEnvName(t *testing.T) {
	cfg := &config.Config{}
	if cfg.Env() != "local" {
		t.Errorf("default env = %s, want local", cfg.Env())
	}

	t.Setenv(config.EnvIntakeEnv, "prod")
	if cfg.Env() != "prod" {
		t.Errorf("env = %s, want prod", cfg.Env())
	}
}
