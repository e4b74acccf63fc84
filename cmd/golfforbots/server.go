package main

import (
	"time"

	"github.com/lox/golfforbots/cmd/golfforbots/shared"
	"github.com/lox/golfforbots/internal/server"
)

// ServerCmd runs the remote stepping server
type ServerCmd struct {
	shared.SettingsFlags `embed:""`
	shared.LogFlags      `embed:""`

	Addr        string        `help:"Server address (overrides settings)"`
	IdleTimeout time.Duration `help:"Close sessions idle this long (overrides settings)"`
	MaxSessions *int          `help:"Maximum concurrent sessions (overrides settings)"`
}

func (c *ServerCmd) Run() error {
	ctx, cancel, settings, logger, err := loadWithSignals(c.SettingsFlags, c.LogFlags)
	if err != nil {
		return err
	}
	defer cancel()

	profile, err := settings.LoadProfile()
	if err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	cfg.Addr = settings.Addr
	cfg.Seed = settings.ResolveSeed()
	cfg.Par = settings.Par
	cfg.Difficulty = settings.Difficulty
	cfg.RasterCell = settings.RasterCell
	cfg.IdleTimeout = settings.IdleTimeout
	cfg.MaxSessions = settings.MaxSessions
	cfg.Rewards = settings.Rewards
	cfg.Profile = profile
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.IdleTimeout > 0 {
		cfg.IdleTimeout = c.IdleTimeout
	}
	if c.MaxSessions != nil {
		cfg.MaxSessions = *c.MaxSessions
	}

	s, err := server.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting golfforbots server",
		"address", cfg.Addr,
		"seed", cfg.Seed,
		"par", cfg.Par,
		"difficulty", cfg.Difficulty,
		"raster_cell", cfg.RasterCell,
		"idle_timeout", cfg.IdleTimeout,
		"max_sessions", cfg.MaxSessions)

	return s.Start(ctx)
}
