// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// ReadManifest loads a standalone source manifest from a YAML file. The
// manifest carries the same shape as the "scrape" section of the main
// config file and replaces it wholesale when given, so a curated source
// list can be versioned and shared independently of local settings.
func ReadManifest(path string) (types.ScrapeConfig, error) {
	var cfg types.ScrapeConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading source manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing source manifest %s: %w", path, err)
	}
	return cfg, nil
}

// WriteManifest saves a scrape configuration as a YAML source manifest.
func WriteManifest(path string, cfg types.ScrapeConfig) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling source manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
