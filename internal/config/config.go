package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for wordmask.
type FileConfig struct {
	Dictionary      *string `yaml:"dictionary,omitempty"`
	Encoding        *string `yaml:"encoding,omitempty"`
	Policy          *string `yaml:"policy,omitempty"`
	Mask            *string `yaml:"mask,omitempty"`
	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	MaxBytes        *int64  `yaml:"max_bytes,omitempty"`
	Threads         *int    `yaml:"threads,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (fc FileConfig) validate() error {
	if fc.Mask != nil && utf8.RuneCountInString(*fc.Mask) != 1 {
		return fmt.Errorf("mask must be a single character, got %q", *fc.Mask)
	}
	return nil
}

// LoadLocal searches for a project-local config file in the given root.
// It supports .wordmask.yml/.yaml and wordmask.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".wordmask.yml", ".wordmask.yaml", "wordmask.yml", "wordmask.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "wordmask", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// MaskRune returns the configured mask character, or 0 if unset.
func (fc FileConfig) MaskRune() rune {
	if fc.Mask == nil {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(*fc.Mask)
	return r
}
