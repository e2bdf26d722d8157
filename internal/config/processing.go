package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvProcessingWorkers    = "INTAKE_PROCESSING_WORKERS"
	EnvProcessingMaxRetries = "INTAKE_PROCESSING_MAX_RETRIES"
	EnvProcessingQueueSize  = "INTAKE_PROCESSING_QUEUE_SIZE"
)

// ProcessingConfig holds the worker pool and retry policy parameters.
type ProcessingConfig struct {
	Workers    int `toml:"workers"`
	MaxRetries int `toml:"max_retries"`
	QueueSize  int `toml:"queue_size"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ProcessingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ProcessingConfig) Merge(overlay *ProcessingConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.QueueSize != 0 {
		c.QueueSize = overlay.QueueSize
	}
}

func (c *ProcessingConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.QueueSize == 0 {
		c.QueueSize = 64
	}
}

func (c *ProcessingConfig) loadEnv() {
	if v := os.Getenv(EnvProcessingWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvProcessingMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv(EnvProcessingQueueSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.QueueSize = n
		}
	}
}

func (c *ProcessingConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("invalid max_retries: %d", c.MaxRetries)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("invalid queue_size: %d", c.QueueSize)
	}
	return nil
}
