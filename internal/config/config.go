// Package config loads server configuration from defaults, an optional
// YAML file, VOCADUE_-prefixed environment variables, and command-line
// flags, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "VOCADUE_"

// Config holds the server settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `koanf:"addr"`
	// DBPath is the sqlite database file.
	DBPath string `koanf:"db"`
	// Timezone anchors all calendar-day boundaries (due-today, streaks,
	// calendar projections). IANA zone name; UTC unless the deployment
	// decides otherwise.
	Timezone string `koanf:"timezone"`
	// DefaultScheduleName and DefaultIntervals form the curve used for
	// owners who have not saved a schedule of their own.
	DefaultScheduleName string `koanf:"default_schedule_name"`
	DefaultIntervals    []int  `koanf:"default_intervals"`
}

// Flags returns the flag set Load understands, pre-populated with defaults.
func Flags() *pflag.FlagSet {
	f := pflag.NewFlagSet("vocadue", pflag.ExitOnError)
	f.String("config", "", "Path to a YAML config file")
	f.String("addr", ":8080", "HTTP listen address")
	f.String("db", "vocadue.db", "Path to the SQLite database file")
	f.String("timezone", "UTC", "IANA timezone for calendar-day boundaries")
	f.String("default_schedule_name", "Default", "Name of the built-in review schedule")
	f.IntSlice("default_intervals", []int{1, 7, 30, 365}, "Built-in interval curve in days")
	return f
}

// Load merges file, environment, and flag configuration.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flag config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	if len(cfg.DefaultIntervals) == 0 {
		return nil, fmt.Errorf("default_intervals must not be empty")
	}
	for _, d := range cfg.DefaultIntervals {
		if d <= 0 {
			return nil, fmt.Errorf("default_intervals must be positive, got %d", d)
		}
	}
	return &cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
