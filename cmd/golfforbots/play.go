package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/golfforbots/cmd/golfforbots/shared"
	"github.com/lox/golfforbots/internal/game"
	"github.com/lox/golfforbots/internal/randutil"
	"github.com/lox/golfforbots/internal/tui"
)

// PlayCmd runs interactive play
type PlayCmd struct {
	shared.SettingsFlags `embed:""`
	shared.LogFlags      `embed:""`

	Cell    int    `default:"20" help:"Yards per character cell"`
	LogFile string `type:"path" help:"Write logs to this file instead of discarding them"`
}

func (c *PlayCmd) Run() error {
	settings, logger, err := shared.Load(context.Background(), c.SettingsFlags, c.LogFlags)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI while it runs.
	var w io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	logger.SetOutput(w)

	profile, err := settings.LoadProfile()
	if err != nil {
		return err
	}

	seed := settings.ResolveSeed()
	logger.Info("Starting play", "seed", seed, "par", settings.Par, "difficulty", settings.Difficulty)

	engine, err := game.NewEngine(randutil.New(seed), settings.Par, settings.Difficulty,
		game.WithProfile(profile),
		game.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	m := tui.NewModel(engine, lipgloss.NewRenderer(os.Stdout), c.Cell, logger)
	return tui.Run(m, tea.WithAltScreen())
}
