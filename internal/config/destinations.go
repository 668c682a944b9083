package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Destination is one named SAP system in a destinations file.
type Destination struct {
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	Client      string `yaml:"client"`
	TLSInsecure bool   `yaml:"tlsInsecure"`
}

// DestinationsFile is the on-disk shape of destinations.yaml.
type DestinationsFile struct {
	Destinations map[string]Destination `yaml:"destinations"`
}

// LoadDestination reads a destinations file and applies the named destination
// on top of the given config. The environment still wins for fields it set;
// callers load the base config first and only fill empty fields from the file.
func LoadDestination(path, name string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read destinations file: %w", err)
	}

	var file DestinationsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse destinations file: %w", err)
	}

	dest, ok := file.Destinations[name]
	if !ok {
		return nil, fmt.Errorf("destination %q not found (available: %v)", name, destinationNames(file))
	}

	cfg := *base
	if cfg.BaseURL == "" {
		cfg.BaseURL = dest.URL
	}
	if cfg.Username == "" {
		cfg.Username = dest.Username
	}
	if cfg.Password == "" {
		cfg.Password = dest.Password
	}
	if cfg.Client == "" {
		cfg.Client = dest.Client
	}
	if dest.TLSInsecure {
		cfg.TLSInsecure = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func destinationNames(file DestinationsFile) []string {
	names := make([]string, 0, len(file.Destinations))
	for name := range file.Destinations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
