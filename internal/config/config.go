// Package config loads the portfolio server settings: defaults, then an
// optional YAML file, then PORTFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Om-Ravindra-Patil/portfolio/internal/contact"
	"github.com/Om-Ravindra-Patil/portfolio/internal/section"
)

const envPrefix = "PORTFOLIO_"

// Config holds all server settings. Keys are flat so env names map directly:
// PORTFOLIO_ADMIN_USERNAME -> admin_username.
type Config struct {
	Port             int     `koanf:"port"`
	GinMode          string  `koanf:"gin_mode"`
	DBPath           string  `koanf:"db_path"`
	LogLevel         string  `koanf:"log_level"`
	LogFormat        string  `koanf:"log_format"`
	AdminUsername    string  `koanf:"admin_username"`
	AdminPassword    string  `koanf:"admin_password"`
	ContactRecipient string  `koanf:"contact_recipient"`
	ContactSubject   string  `koanf:"contact_subject"`
	ProbeOffset      float64 `koanf:"probe_offset"`
}

// Default returns development defaults.
func Default() *Config {
	return &Config{
		Port:             8080,
		GinMode:          "debug",
		DBPath:           "data/portfolio.db",
		LogLevel:         "info",
		LogFormat:        "json",
		AdminUsername:    "admin",
		AdminPassword:    "admin123",
		ContactRecipient: "ompatil.uk@gmail.com",
		ContactSubject:   contact.DefaultSubject,
		ProbeOffset:      section.DefaultProbeOffset,
	}
}

// Load reads path if it exists and overlays the environment. PORT is honoured
// for hosting platforms that inject it; PORTFOLIO_PORT wins over it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		if err := k.Set("port", port); err != nil {
			return nil, fmt.Errorf("applying PORT: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

// Validate checks value ranges and that the contact settings can build a
// mailto composer.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if !validModes[c.GinMode] {
		errs = append(errs, fmt.Errorf("gin_mode must be debug, release or test, got %q", c.GinMode))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if c.ProbeOffset < 0 {
		errs = append(errs, fmt.Errorf("probe_offset must not be negative, got %v", c.ProbeOffset))
	}
	if !contact.ValidEmail(c.ContactRecipient) {
		errs = append(errs, fmt.Errorf("contact_recipient is not a valid address: %q", c.ContactRecipient))
	} else if _, err := contact.NewComposer(c.ContactRecipient, c.ContactSubject); err != nil {
		errs = append(errs, fmt.Errorf("contact_subject: %w", err))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
