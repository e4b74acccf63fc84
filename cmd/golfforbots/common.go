package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/cmd/golfforbots/shared"
	"github.com/lox/golfforbots/internal/config"
)

// loadWithSignals loads settings and returns a context cancelled on
// interrupt.
func loadWithSignals(flags shared.SettingsFlags, logFlags shared.LogFlags) (context.Context, context.CancelFunc, *config.Settings, *log.Logger, error) {
	settings, logger, err := shared.Load(context.Background(), flags, logFlags)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ctx, cancel := shared.SetupSignalHandler(logger)
	return ctx, cancel, settings, logger, nil
}
