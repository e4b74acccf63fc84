package main

import (
	"errors"
	"fmt"

	"github.com/lox/golfforbots/cmd/golfforbots/shared"
	"github.com/lox/golfforbots/internal/bot"
	"github.com/lox/golfforbots/internal/client"
	"github.com/lox/golfforbots/internal/randutil"
	"github.com/lox/golfforbots/internal/statistics"
)

// BotCmd plays remote episodes with a built-in policy
type BotCmd struct {
	shared.SettingsFlags `embed:""`
	shared.LogFlags      `embed:""`

	Server   string `default:"ws://localhost:8080/ws" help:"Stepping server URL"`
	Policy   string `default:"pinseeker" enum:"pinseeker,random" help:"Policy to play with (pinseeker, random)"`
	Episodes int    `default:"10" help:"Episodes to play before disconnecting"`
}

func (c *BotCmd) Run() error {
	ctx, cancel, settings, logger, err := loadWithSignals(c.SettingsFlags, c.LogFlags)
	if err != nil {
		return err
	}
	defer cancel()

	// Club distances are read from the local profile; the server only
	// reports club names.
	profile, err := settings.LoadProfile()
	if err != nil {
		return err
	}

	cl, err := client.Dial(ctx, c.Server, logger)
	if err != nil {
		return err
	}
	defer func() { _ = cl.Close() }()

	if got, want := cl.Welcome().Clubs, profile.Names(); len(got) != len(want) {
		return fmt.Errorf("server has %d clubs, local profile has %d", len(got), len(want))
	}

	seed := settings.ResolveSeed()
	policy, err := bot.New(c.Policy, randutil.New(seed), logger)
	if err != nil {
		return err
	}

	stats := &statistics.Statistics{}
	for i := range c.Episodes {
		obs, err := cl.Reset(ctx)
		if err != nil {
			return err
		}
		hole, err := cl.Describe(ctx)
		if err != nil {
			return err
		}

		result := statistics.HoleResult{Seed: cl.Welcome().Seed, Par: hole.Par}
		current := obs.Observation
		for {
			res, err := cl.Step(ctx, policy.Act(bot.State{Observation: current, Cup: hole.Cup, Profile: profile}))
			if err != nil {
				return err
			}
			stroke := res.Info.Stroke
			result.Shots++
			result.Landings = append(result.Landings, stroke.Terrain)
			if stroke.Terrain.IsPenalty() {
				result.Penalties += stroke.Strokes
			}
			result.Score = res.Info.Score
			result.Holed = res.Terminated
			result.Truncated = res.Truncated && !res.Terminated
			current = res.Observation
			if res.Done() {
				break
			}
		}

		stats.Add(result)
		logger.Info("Episode complete",
			"episode", i+1,
			"hole", obs.Hole,
			"score", result.Score,
			"to_par", result.ToPar(),
			"holed", result.Holed)
	}

	if stats.Holes == 0 {
		return errors.New("no episodes played")
	}
	logger.Info("Session complete",
		"episodes", stats.Holes,
		"mean", stats.Mean(),
		"holed", stats.Holed,
		"penalties", stats.Penalties)
	return nil
}
