// Package config defines the session settings shared by the play, simulate,
// server and bot commands, and how they are layered from defaults, an
// optional YAML file and GOLF_ environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	golfenv "github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/shot"
)

// EnvPrefix prefixes every environment override, e.g. GOLF_PAR=5.
// Nested keys use a double underscore: GOLF_REWARDS__GREEN=20.
const EnvPrefix = "GOLF_"

// ConfigEnv names the variable holding an optional YAML settings file.
const ConfigEnv = EnvPrefix + "CONFIG"

// Settings contains everything needed to run episodes.
type Settings struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Par and Difficulty drive hole generation.
	Par        int `koanf:"par"`
	Difficulty int `koanf:"difficulty"`

	// Profile is a club profile file; empty uses the built-in profile.
	Profile string `koanf:"profile"`

	// Seed for the random source; zero picks one from the clock.
	Seed int64 `koanf:"seed"`

	// RasterCell is the observation raster cell size; zero disables it.
	RasterCell int `koanf:"raster_cell"`

	// Addr is the stepping server listen address.
	Addr string `koanf:"addr"`

	// IdleTimeout closes server sessions that send nothing for this long.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// MaxSessions caps concurrent server sessions; zero means unlimited.
	MaxSessions int `koanf:"max_sessions"`

	Rewards golfenv.Rewards `koanf:"rewards"`
}

// New returns the default settings.
func New(_ context.Context) *Settings {
	return &Settings{
		LogLevel:    "info",
		Par:         4,
		Difficulty:  1,
		RasterCell:  20,
		Addr:        ":8080",
		IdleTimeout: 5 * time.Minute,
		Rewards:     golfenv.DefaultRewards(),
	}
}

// Load builds Settings by layering, lowest precedence first:
//  1. defaults (New)
//  2. the YAML file at path, or at $GOLF_CONFIG when path is empty
//  3. GOLF_ environment variables
func Load(ctx context.Context, path string) (*Settings, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for values no command can run with.
func (s *Settings) Validate() error {
	if s.Par <= 0 {
		return fmt.Errorf("par must be positive, got %d", s.Par)
	}
	if s.Difficulty < 0 {
		return fmt.Errorf("difficulty must not be negative, got %d", s.Difficulty)
	}
	if s.RasterCell < 0 {
		return fmt.Errorf("raster_cell must not be negative, got %d", s.RasterCell)
	}
	if s.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if s.IdleTimeout < 0 {
		return errors.New("idle_timeout must not be negative")
	}
	if s.MaxSessions < 0 {
		return errors.New("max_sessions must not be negative")
	}
	return s.Rewards.Validate()
}

// LoadProfile returns the configured club profile.
func (s *Settings) LoadProfile() (*shot.Profile, error) {
	if s.Profile == "" {
		return shot.DefaultProfile(), nil
	}
	return shot.LoadProfile(s.Profile)
}

// ResolveSeed returns Seed, or a clock-derived seed when Seed is zero.
func (s *Settings) ResolveSeed() int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}
