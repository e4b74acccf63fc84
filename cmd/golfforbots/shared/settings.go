package shared

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/config"
)

// SettingsFlags select the settings file and override common values.
type SettingsFlags struct {
	Config     string `type:"path" help:"YAML settings file (defaults to $GOLF_CONFIG)"`
	Par        *int   `help:"Par of generated holes"`
	Difficulty *int   `help:"Hazard difficulty of generated holes"`
	Seed       *int64 `help:"Deterministic RNG seed (0 picks one from the clock)"`
	Profile    string `type:"existingfile" help:"Club profile file (HCL or JSON)"`
}

// Load layers the settings file and environment, applies flag overrides and
// builds a logger from the result.
func Load(ctx context.Context, flags SettingsFlags, logFlags LogFlags) (*config.Settings, *log.Logger, error) {
	settings, err := config.Load(ctx, flags.Config)
	if err != nil {
		return nil, nil, err
	}
	if flags.Par != nil {
		settings.Par = *flags.Par
	}
	if flags.Difficulty != nil {
		settings.Difficulty = *flags.Difficulty
	}
	if flags.Seed != nil {
		settings.Seed = *flags.Seed
	}
	if flags.Profile != "" {
		settings.Profile = flags.Profile
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := SetupLogger(logFlags, settings.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return settings, logger, nil
}
