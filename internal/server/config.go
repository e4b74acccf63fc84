package server

import (
	"fmt"
	"time"

	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/shot"
)

// Config is everything the stepping server needs to open sessions.
type Config struct {
	Addr        string
	Seed        int64
	Par         int
	Difficulty  int
	RasterCell  int
	IdleTimeout time.Duration
	MaxSessions int
	Rewards     env.Rewards
	Profile     *shot.Profile
	Layout      course.Params
}

// DefaultConfig returns a config with the stock hole, profile and rewards.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		Par:         4,
		Difficulty:  1,
		RasterCell:  20,
		IdleTimeout: 5 * time.Minute,
		Rewards:     env.DefaultRewards(),
		Profile:     shot.DefaultProfile(),
		Layout:      course.DefaultParams(),
	}
}

// Validate checks the server configuration.
func (c *Config) Validate() error {
	if c.Par <= 0 {
		return fmt.Errorf("par must be positive, got %d", c.Par)
	}
	if c.Difficulty < 0 {
		return fmt.Errorf("difficulty must not be negative, got %d", c.Difficulty)
	}
	if c.RasterCell < 0 {
		return fmt.Errorf("raster cell must not be negative, got %d", c.RasterCell)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle timeout must not be negative")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max sessions must not be negative")
	}
	if c.Profile == nil {
		return fmt.Errorf("profile is required")
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return c.Rewards.Validate()
}
