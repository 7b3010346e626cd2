// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gsconvert/pkg/types"
)

// Manifest is the YAML document written for --manifest.
type Manifest struct {
	Results []types.ConversionResult `yaml:"results"`
}

// WriteManifest writes results to path as YAML, creating parent directories.
func WriteManifest(path string, results ...types.ConversionResult) error {
	data, err := yaml.Marshal(Manifest{Results: results})
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest: %w", err)
	}
	return m, nil
}

// LoadProfile reads a render profile: a YAML document holding a
// RenderConfig. The device tag is normalised through the catalogue.
func LoadProfile(path string) (types.RenderConfig, error) {
	var cfg types.RenderConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	cfg.Device = types.ParseDevice(string(cfg.Device))
	return cfg, nil
}
