// Package config loads the certificate server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coagen/pkg/output"
)

// Config is the main configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Variants VariantsConfig `yaml:"variants"`
	Output   OutputConfig   `yaml:"output"`
	Theme    ThemeConfig    `yaml:"theme"`
	UI       UIConfig       `yaml:"ui"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr      string        `yaml:"addr"`
	Grace     time.Duration `yaml:"grace"`
	Templates string        `yaml:"templates"`
	PublicURL string        `yaml:"public_url"`
}

// VariantsConfig points at variant definition files. An empty Dir uses the
// embedded variants.
type VariantsConfig struct {
	Dir     string `yaml:"dir"`
	Default string `yaml:"default"`
}

// OutputConfig controls PDF serialization.
type OutputConfig struct {
	Compress     bool   `yaml:"compress"`
	CreationDate string `yaml:"creation_date"`
	Creator      string `yaml:"creator"`
}

// ThemeConfig selects the form page theme.
type ThemeConfig struct {
	Name     string `yaml:"name"`
	Variant  string `yaml:"variant"`
	Disabled bool   `yaml:"disabled"`
}

// UIConfig points at optional form overlays (titles, captions,
// placeholders).
type UIConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:  ":8383",
			Grace: 5 * time.Second,
		},
		Output: OutputConfig{
			Compress:     true,
			CreationDate: output.DefaultCreationDate.Format(time.DateOnly),
			Creator:      "coagen",
		},
		Theme: ThemeConfig{
			Name:    "coagen",
			Variant: "light",
		},
	}
}

// Load loads configuration from a file. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the default if path is
// empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.Grace < 0 {
		return fmt.Errorf("server.grace must not be negative, got %s", c.Server.Grace)
	}
	if _, err := c.Output.Created(); err != nil {
		return err
	}
	return nil
}

// Created parses CreationDate. Both a plain date and RFC 3339 are accepted;
// an empty value yields the zero time.
func (o OutputConfig) Created() (time.Time, error) {
	raw := strings.TrimSpace(o.CreationDate)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("output.creation_date: %q is neither a date nor RFC 3339", o.CreationDate)
	}
	return t, nil
}

// SerializerOptions converts the output section into serializer options.
func (o OutputConfig) SerializerOptions() ([]output.Option, error) {
	created, err := o.Created()
	if err != nil {
		return nil, err
	}
	opts := []output.Option{
		output.WithCompression(o.Compress),
		output.WithCreationDate(created),
	}
	if strings.TrimSpace(o.Creator) != "" {
		opts = append(opts, output.WithCreator(o.Creator))
	}
	return opts, nil
}
