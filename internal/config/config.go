// Package config manages the buildrun configuration file at ~/.buildrun/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("config file not found")

const (
	DefaultCompiler = "g++"
	DefaultSource   = "test.cpp"
	DefaultStd      = "c++20"
	DefaultWarnings = "-Wall"
	DefaultOutput   = "test"
)

type Config struct {
	Compiler string `yaml:"compiler"`
	Source   string `yaml:"source"`
	Std      string `yaml:"std"`
	Warnings string `yaml:"warnings"`

	// Output is the binary name without an executable extension.
	Output  string `yaml:"output"`
	LogFile string `yaml:"log_file,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Dir returns the config directory path (~/.buildrun).
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".buildrun")
}

// Path returns the config file path (~/.buildrun/config.yaml).
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Exists checks if the config file exists.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads and parses the config file. Returns ErrNotFound if it doesn't exist.
// Keys missing from the file keep their default values.
func Load() (*Config, error) {
	return loadFrom(Path())
}

// LoadOrDefault is Load with a missing file treated as the default config.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return cfg, err
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := marshalConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(Path(), data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func marshalConfig(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Validate checks that the config describes a runnable compile command.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Compiler) == "" {
		return fmt.Errorf("compiler cannot be empty")
	}
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("source cannot be empty")
	}
	if !strings.HasPrefix(c.Std, "c++") && !strings.HasPrefix(c.Std, "gnu++") {
		return fmt.Errorf("invalid std %q: must start with c++ or gnu++", c.Std)
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output cannot be empty")
	}
	if filepath.Base(c.Output) != c.Output || c.Output == "." || c.Output == ".." {
		return fmt.Errorf("invalid output %q: must be a bare file name", c.Output)
	}
	return nil
}

// Default returns the config matching the stock build: g++ test.cpp -std=c++20 -Wall -o test.
func Default() *Config {
	return &Config{
		Compiler: DefaultCompiler,
		Source:   DefaultSource,
		Std:      DefaultStd,
		Warnings: DefaultWarnings,
		Output:   DefaultOutput,
	}
}
