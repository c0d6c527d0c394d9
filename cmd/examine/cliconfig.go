package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML config file for the CLI. All fields
// are defaults; command-line flags win.
type fileConfig struct {
	// Converter is an external command used for legacy equation
	// objects; "{}" in the command line is replaced by the blob path.
	Converter string `yaml:"converter"`

	// Source overrides the source label recorded in output.
	Source string `yaml:"source"`

	// Compact disables JSON pretty-printing.
	Compact bool `yaml:"compact"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}
