// Package device provides configuration sources for network devices.
//
// A ConfigSource hands raw running-configuration text to the audit engine.
// Sources are deliberately thin: protocol-level session handling belongs to
// whatever sits behind the source, not to the auditor.
package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigSource yields the raw running configuration for a device.
type ConfigSource interface {
	Fetch(ctx context.Context, deviceID string) (string, error)
}

// RetrievalError reports a failure to obtain a device's configuration.
// The audit engine treats any retrieval failure as "no configuration
// available"; it never inspects the underlying cause.
type RetrievalError struct {
	Device string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve config for %s: %v", e.Device, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// DirSource reads configurations from a directory of saved config dumps,
// one file per device named <device>.txt or <device>.cfg.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source backed by the given directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Fetch reads the device's saved configuration file.
func (s *DirSource) Fetch(ctx context.Context, deviceID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &RetrievalError{Device: deviceID, Err: err}
	}
	for _, ext := range []string{".txt", ".cfg"} {
		path := filepath.Join(s.Dir, deviceID+ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", &RetrievalError{Device: deviceID, Err: err}
		}
	}
	return "", &RetrievalError{
		Device: deviceID,
		Err:    fmt.Errorf("no config file in %s", s.Dir),
	}
}
