package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lox/golfforbots/cmd/golfforbots/shared"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/shot"
)

// ProfileCmd validates and prints a club profile
type ProfileCmd struct {
	shared.SettingsFlags `embed:""`
	shared.LogFlags      `embed:""`

	Source bool `help:"Print the built-in profile source instead of the table"`
}

func (c *ProfileCmd) Run() error {
	settings, logger, err := shared.Load(context.Background(), c.SettingsFlags, c.LogFlags)
	if err != nil {
		return err
	}

	if c.Source {
		_, err := os.Stdout.Write(shot.DefaultProfileSource())
		return err
	}

	profile, err := settings.LoadProfile()
	if err != nil {
		return err
	}
	logger.Debug("Loaded profile", "path", settings.Profile, "clubs", profile.Len())

	fmt.Printf("%-12s", "Club")
	for _, lie := range course.Lies {
		fmt.Printf(" %-20s", lie)
	}
	fmt.Println()
	for i, name := range profile.Names() {
		fmt.Printf("%-12s", name)
		for _, lie := range course.Lies {
			p, err := profile.Params(i, lie)
			if err != nil {
				return err
			}
			fmt.Printf(" %-20s", fmt.Sprintf("%.0f (%.1f/%.1f)", p.Distance, p.HorizontalStd, p.VerticalStd))
		}
		fmt.Println()
	}
	return nil
}
