package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(holes, workers int) Config {
	cfg := DefaultConfig()
	cfg.Holes = holes
	cfg.Workers = workers
	cfg.Seed = 500
	cfg.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return cfg
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no holes", func(c *Config) { c.Holes = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"no profile", func(c *Config) { c.Profile = nil }},
		{"unknown policy", func(c *Config) { c.Policy = "caddie" }},
		{"bad rewards", func(c *Config) { c.Rewards.ScoreCap = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(1, 1)
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}

func TestPlayHole(t *testing.T) {
	t.Parallel()

	sim, err := New(testConfig(1, 1))
	require.NoError(t, err)

	r, err := sim.PlayHole(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), r.Seed)
	assert.Equal(t, 4, r.Par)
	assert.Len(t, r.Landings, r.Shots)
	assert.True(t, r.Holed != r.Truncated, "a finished hole is either holed or truncated")
	assert.LessOrEqual(t, r.Score, r.Shots+r.Penalties)

	again, err := sim.PlayHole(42)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestRunIsIndependentOfWorkers(t *testing.T) {
	t.Parallel()

	serial, err := New(testConfig(24, 1))
	require.NoError(t, err)
	parallel, err := New(testConfig(24, 6))
	require.NoError(t, err)

	a, err := serial.Run(context.Background())
	require.NoError(t, err)
	b, err := parallel.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 24, a.Holes)
	assert.Equal(t, a.Values, b.Values)
	assert.Equal(t, a.Landings, b.Landings)
	assert.Equal(t, a.Holes, a.Holed+a.Truncated)
	assert.Positive(t, a.Holed)
	assert.GreaterOrEqual(t, a.Mean(), 1.0)
}

func TestRandomPolicy(t *testing.T) {
	t.Parallel()

	cfg := testConfig(8, 2)
	cfg.Policy = "random"
	sim, err := New(cfg)
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, stats.Holes)
	assert.NoError(t, stats.Validate())
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	sim, err := New(testConfig(100, 2))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHoledOverTheCapCountsAsHoled(t *testing.T) {
	t.Parallel()

	cfg := testConfig(30, 3)
	cfg.Rewards.ScoreCap = 1
	sim, err := New(cfg)
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, stats.Validate())
	assert.Equal(t, stats.Holes, stats.Holed+stats.Truncated)
}
