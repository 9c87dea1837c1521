// Package config provides the netaudit run-configuration file,
// matching the schema of configs/netaudit.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full netaudit configuration file.
type Config struct {
	// TemplatePath points to the golden-configuration template document.
	TemplatePath string `yaml:"template"`

	// Devices lists the device identifiers to audit, in report order.
	Devices []string `yaml:"devices"`

	// ConfigDir holds saved config dumps (<device>.txt or <device>.cfg).
	// Ignored when Simulation is set.
	ConfigDir string `yaml:"config_dir,omitempty"`

	// Simulation audits the built-in sample fleet instead of ConfigDir.
	Simulation bool `yaml:"simulation,omitempty"`

	// Concurrency caps parallel device audits (0 means the default).
	Concurrency int `yaml:"concurrency,omitempty"`

	// HistoryDB is the SQLite run-history path; empty disables history.
	HistoryDB string `yaml:"history_db,omitempty"`

	// ExportDir receives timestamped YAML reports; empty disables export.
	ExportDir string `yaml:"export_dir,omitempty"`
}

// ReadConfig loads and parses a configuration file.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// WriteConfig serializes the configuration to a file.
func WriteConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
