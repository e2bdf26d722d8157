package storage

import (
	"fmt"
	"os"
)

// Config holds filesystem storage parameters for one artifact root.
type Config struct {
	Root string `toml:"root"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Root string
}

// Finalize applies the default root, environment variable overrides, and validation.
func (c *Config) Finalize(defaultRoot string, env *Env) error {
	if c.Root == "" {
		c.Root = defaultRoot
	}
	if env != nil && env.Root != "" {
		if v := os.Getenv(env.Root); v != "" {
			c.Root = v
		}
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Root != "" {
		c.Root = overlay.Root
	}
}

func (c *Config) validate() error {
	if c.Root == "" {
		return fmt.Errorf("root required")
	}
	return nil
}
