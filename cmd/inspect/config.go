package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/extpack/inspect/render"
)

type config struct {
	// Style names the syntax highlight style.
	Style string `yaml:"style"`
	// Workers bounds concurrent file hashing. 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Exclude lists base-name glob patterns skipped during comparison.
	Exclude []string `yaml:"exclude"`
}

func defaultConfig() *config {
	return &config{
		Style: render.DefaultStyle,
		Exclude: []string{
			".git",
			".svn",
			"node_modules",
			".DS_Store",
			"Thumbs.db",
		},
	}
}

// loadConfig reads the YAML config at path, falling back to defaults when
// the file does not exist.
func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}
