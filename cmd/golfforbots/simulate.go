package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/lox/golfforbots/cmd/golfforbots/shared"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/fileutil"
	"github.com/lox/golfforbots/internal/game"
	"github.com/lox/golfforbots/internal/simulator"
	"github.com/lox/golfforbots/internal/statistics"
)

// SimulateCmd plays many holes with one policy
type SimulateCmd struct {
	shared.SettingsFlags `embed:""`
	shared.LogFlags      `embed:""`

	Holes   int    `default:"1000" help:"Number of holes to play"`
	Workers int    `default:"0" help:"Concurrent workers (0 uses GOMAXPROCS)"`
	Policy  string `default:"pinseeker" enum:"pinseeker,random" help:"Policy to play with (pinseeker, random)"`
	Report  string `type:"path" help:"Write a JSON summary to this file"`
}

// report is the JSON summary written by --report.
type report struct {
	Seed       int64          `json:"seed"`
	Policy     string         `json:"policy"`
	Par        int            `json:"par"`
	Difficulty int            `json:"difficulty"`
	Holes      int            `json:"holes"`
	Mean       float64        `json:"mean"`
	StdDev     float64        `json:"stddev"`
	CI95       [2]float64     `json:"ci95"`
	Median     float64        `json:"median"`
	MeanToPar  float64        `json:"mean_to_par"`
	Holed      int            `json:"holed"`
	Truncated  int            `json:"truncated"`
	Shots      int            `json:"shots"`
	Penalties  int            `json:"penalty_strokes"`
	Landings   map[string]int `json:"landings"`
}

func newReport(cfg simulator.Config, stats *statistics.Statistics) report {
	low, high := stats.ConfidenceInterval95()
	landings := make(map[string]int, len(stats.Landings))
	for t, n := range stats.Landings {
		landings[t.String()] = n
	}
	return report{
		Seed:       cfg.Seed,
		Policy:     cfg.Policy,
		Par:        cfg.Par,
		Difficulty: cfg.Difficulty,
		Holes:      stats.Holes,
		Mean:       stats.Mean(),
		StdDev:     stats.StdDev(),
		CI95:       [2]float64{low, high},
		Median:     stats.Median(),
		MeanToPar:  stats.MeanToPar(),
		Holed:      stats.Holed,
		Truncated:  stats.Truncated,
		Shots:      stats.Shots,
		Penalties:  stats.Penalties,
		Landings:   landings,
	}
}

func (c *SimulateCmd) Run() error {
	ctx, cancel, settings, logger, err := loadWithSignals(c.SettingsFlags, c.LogFlags)
	if err != nil {
		return err
	}
	defer cancel()

	profile, err := settings.LoadProfile()
	if err != nil {
		return err
	}

	cfg := simulator.DefaultConfig()
	cfg.Holes = c.Holes
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	cfg.Seed = settings.ResolveSeed()
	cfg.Par = settings.Par
	cfg.Difficulty = settings.Difficulty
	cfg.Policy = c.Policy
	cfg.Profile = profile
	cfg.Rewards = settings.Rewards
	cfg.Logger = logger

	sim, err := simulator.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting simulation: %d par %d holes with %s (seed: %d)\n",
		cfg.Holes, cfg.Par, cfg.Policy, cfg.Seed)

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	printResults(stats, time.Since(start))

	if c.Report != "" {
		if err := fileutil.WriteJSON(c.Report, newReport(cfg, stats)); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}

func printResults(stats *statistics.Statistics, duration time.Duration) {
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== RESULTS (%d holes in %s) ===\n", stats.Holes, duration.Round(time.Millisecond))
	fmt.Printf("Score: %.3f ± %.3f SE (stddev %.3f)\n", stats.Mean(), stats.StdError(), stats.StdDev())
	fmt.Printf("95%% CI: [%.3f, %.3f]\n", low, high)
	fmt.Printf("To par: %+.3f per hole\n", stats.MeanToPar())
	fmt.Printf("Median: %.1f  P10: %.1f  P90: %.1f\n", stats.Median(), stats.Percentile(0.1), stats.Percentile(0.9))
	fmt.Printf("Holed: %d (%.1f%%)  Truncated: %d\n", stats.Holed, 100*stats.HoledRate(), stats.Truncated)
	fmt.Printf("Shots: %d  Penalty strokes: %d\n", stats.Shots, stats.Penalties)

	toPar := make([]int, 0, len(stats.ToParCounts))
	for d := range stats.ToParCounts {
		toPar = append(toPar, d)
	}
	sort.Ints(toPar)
	fmt.Printf("\nScore distribution:\n")
	for _, d := range toPar {
		fmt.Printf("  %4s: %d\n", game.ToParString(d), stats.ToParCounts[d])
	}

	fmt.Printf("\nLandings:\n")
	for _, t := range []course.Terrain{course.Fairway, course.Rough, course.Green, course.Bunker, course.WaterHazard, course.OutOfBounds, course.Teebox} {
		if n := stats.Landings[t]; n > 0 {
			fmt.Printf("  %-13s %d\n", t.String()+":", n)
		}
	}
}
