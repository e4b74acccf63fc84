package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/bot"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/game"
	"github.com/lox/golfforbots/internal/randutil"
	"github.com/lox/golfforbots/internal/shot"
	"github.com/lox/golfforbots/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Holes      int
	Workers    int
	Seed       int64
	Par        int
	Difficulty int
	Policy     string
	Profile    *shot.Profile
	Layout     course.Params
	Rewards    env.Rewards
	Logger     *log.Logger
}

// DefaultConfig returns a config for 1000 par 4 holes with the pin seeker.
func DefaultConfig() Config {
	return Config{
		Holes:      1000,
		Workers:    runtime.GOMAXPROCS(0),
		Par:        4,
		Difficulty: 1,
		Policy:     "pinseeker",
		Profile:    shot.DefaultProfile(),
		Layout:     course.DefaultParams(),
		Rewards:    env.DefaultRewards(),
		Logger:     log.Default(),
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Holes <= 0 {
		return fmt.Errorf("holes must be positive, got %d", c.Holes)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Profile == nil {
		return errors.New("profile is required")
	}
	if _, err := bot.New(c.Policy, randutil.New(0), log.Default()); err != nil {
		return err
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	return c.Rewards.Validate()
}

// Simulator plays many independent holes with one policy
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulator config: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}, nil
}

// Run plays every hole and aggregates the results. Hole i uses seed
// Seed+i, so results do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]statistics.HoleResult, s.config.Holes)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Holes {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.PlayHole(seed)
			if err != nil {
				return fmt.Errorf("hole %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Debug("Simulation complete", "holes", stats.Holes, "mean", stats.Mean(), "holed", stats.Holed)
	return stats, nil
}

// PlayHole plays one episode on the hole generated from seed.
func (s *Simulator) PlayHole(seed int64) (statistics.HoleResult, error) {
	logger := s.logger.With("seed", seed)
	engine, err := game.NewEngine(randutil.New(seed), s.config.Par, s.config.Difficulty,
		game.WithProfile(s.config.Profile),
		game.WithLayoutParams(s.config.Layout),
		game.WithLogger(logger),
	)
	if err != nil {
		return statistics.HoleResult{}, err
	}
	e, err := env.New(engine, env.WithRewards(s.config.Rewards), env.WithRasterCell(0), env.WithLogger(logger))
	if err != nil {
		return statistics.HoleResult{}, err
	}
	policy, err := bot.New(s.config.Policy, randutil.New(randutil.Derive(seed, 1)), logger)
	if err != nil {
		return statistics.HoleResult{}, err
	}

	obs, err := e.Reset()
	if err != nil {
		return statistics.HoleResult{}, err
	}

	result := statistics.HoleResult{Seed: seed, Par: engine.Par()}
	cup := engine.Layout().Cup()
	for !e.Done() {
		res, err := e.Step(policy.Act(bot.State{Observation: obs, Cup: cup, Profile: engine.Profile()}))
		if err != nil {
			return result, err
		}
		stroke := res.Info.Stroke
		result.Shots++
		result.Landings = append(result.Landings, stroke.Terrain)
		if stroke.Outcome == game.OutcomePenalty {
			result.Penalties += stroke.Strokes
		}
		result.Score = res.Info.Score
		result.Holed = res.Terminated
		result.Truncated = res.Truncated && !res.Terminated
		obs = res.Observation
	}
	return result, nil
}
