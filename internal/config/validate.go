package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks that the configuration can drive an audit run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TemplatePath) == "" {
		return fmt.Errorf("template path is required")
	}
	if err := validateFileExists(c.TemplatePath); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	if !c.Simulation {
		if len(c.Devices) == 0 {
			return fmt.Errorf("at least one device is required (or set simulation: true)")
		}
		if strings.TrimSpace(c.ConfigDir) == "" {
			return fmt.Errorf("config_dir is required when simulation is disabled")
		}
		if err := validateDirExists(c.ConfigDir); err != nil {
			return fmt.Errorf("config_dir: %w", err)
		}
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency cannot be negative")
	}

	seen := make(map[string]bool, len(c.Devices))
	for _, id := range c.Devices {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("device identifier cannot be empty")
		}
		if seen[id] {
			return fmt.Errorf("duplicate device %q", id)
		}
		seen[id] = true
	}
	return nil
}

// validateFileExists checks that the path points to an existing file.
func validateFileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// validateDirExists checks that the path points to an existing directory.
func validateDirExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory not found: %s", path)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}
