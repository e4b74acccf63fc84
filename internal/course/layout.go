package course

import (
	"errors"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/lox/golfforbots/internal/randutil"
)

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	params Params
	logger *log.Logger
}

// WithParams replaces the default generator parameters.
func WithParams(p Params) Option {
	return func(c *buildConfig) { c.params = p }
}

// WithLogger sets the logger used to report regenerations.
func WithLogger(l *log.Logger) Option {
	return func(c *buildConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Layout is a generated hole. It is never mutated after Build returns, so a
// single layout may be classified from many goroutines.
type Layout struct {
	Par        int
	Difficulty int
	Params     Params

	ControlPoints []geom.Point
	Fairway       Path
	Rough         Path
	FairwayWidths []float64
	RoughWidths   []float64

	Teebox  Region
	Green   Region
	Bunkers []Region
	Water   []Region

	// Attempts is how many generations it took to produce this layout.
	Attempts int

	fairway ribbon
	rough   ribbon

	rasterMu sync.Mutex
	rasters  map[int]*Raster
}

// Build generates a hole for the given par and difficulty using rng for
// every random draw. If a placement loop runs out of retries the whole hole
// is regenerated, up to Params.LayoutAttempts times.
//
//	rng := randutil.New(42)
//	layout, err := course.Build(4, 1, rng)
func Build(par, difficulty int, rng *rand.Rand, opts ...Option) (*Layout, error) {
	if rng == nil {
		panic("rng is required for layout generation")
	}
	cfg := &buildConfig{
		params: DefaultParams(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if par <= 0 {
		return nil, fmt.Errorf("par must be positive, got %d", par)
	}
	if difficulty < 0 {
		return nil, fmt.Errorf("difficulty must not be negative, got %d", difficulty)
	}
	if err := cfg.params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout params: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.params.LayoutAttempts; attempt++ {
		l, err := generate(par, difficulty, cfg.params, rng)
		if err == nil {
			l.Attempts = attempt
			if attempt > 1 {
				cfg.logger.Debug("Hole generated after regeneration", "attempts", attempt)
			}
			return l, nil
		}
		if !errors.Is(err, ErrPlacementExhausted) {
			return nil, err
		}
		lastErr = err
		cfg.logger.Debug("Regenerating hole", "attempt", attempt, "error", err)
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrLayoutGeneration, cfg.params.LayoutAttempts, lastErr)
}

func generate(par, difficulty int, p Params, rng *rand.Rand) (*Layout, error) {
	cps := NewControlPoints(p.CourseRect, p.ControlPoints, p.VerticalMargin, rng)

	fairGen, err := NewPathGenerator(cps)
	if err != nil {
		return nil, fmt.Errorf("fairway path: %w", err)
	}
	roughGen, err := NewPathGenerator(RoughControlPoints(cps, p.RoughMargin))
	if err != nil {
		return nil, fmt.Errorf("rough path: %w", err)
	}
	fairway := fairGen.Generate(p.Samples)
	rough := roughGen.Generate(p.Samples)

	env := p.Envelope()
	fw, err := env.Profile(fairway)
	if err != nil {
		return nil, fmt.Errorf("fairway envelope: %w", err)
	}
	rw, err := env.Profile(rough)
	if err != nil {
		return nil, fmt.Errorf("rough envelope: %w", err)
	}

	l := &Layout{
		Par:           par,
		Difficulty:    difficulty,
		Params:        p,
		ControlPoints: cps,
		Fairway:       fairway,
		Rough:         rough,
		FairwayWidths: fw,
		RoughWidths:   rw,
		fairway:       newRibbon(Fairway, fairway, fw, p.SegmentLength, 1),
		rough:         newRibbon(Rough, rough, rw, p.SegmentLength, p.RoughHeightMultiplier),
	}

	dir0 := fairway.Direction(0)
	l.Teebox = newRectRegion(Teebox, geom.OrientedRect{
		Center: fairway.Start().Add(dir0.Mul(p.TeeboxMargin)),
		Width:  p.TeeboxSize.W,
		Height: p.TeeboxSize.H,
		Angle:  dir0.Angle(),
	})

	dirN := fairway.Direction(len(fairway) - 1)
	l.Green = newEllipseRegion(Green, geom.Ellipse{
		Center: fairway.End().Sub(dirN.Mul(p.GreenMargin)),
		Width:  p.GreenSize.W + float64(randutil.IntRange(rng, p.GreenJitter.Min, p.GreenJitter.Max)),
		Height: p.GreenSize.H + float64(randutil.IntRange(rng, p.GreenJitter.Min, p.GreenJitter.Max)),
		Angle:  dirN.Angle(),
	})

	cup, err := placeCup(l.Green, p, rng)
	if err != nil {
		return nil, err
	}
	l.Green.Cup = cup

	bunkers, water := HazardCounts(par, difficulty)
	placed := make([]Region, 0, bunkers+water)
	for i := 0; i < bunkers; i++ {
		h, err := placeHazard(Bunker, p.BunkerWidth, p.BunkerHeight, fairway, l, placed, p, rng)
		if err != nil {
			return nil, fmt.Errorf("bunker %d: %w", i, err)
		}
		placed = append(placed, h)
		l.Bunkers = append(l.Bunkers, h)
	}
	for i := 0; i < water; i++ {
		h, err := placeHazard(WaterHazard, p.WaterWidth, p.WaterHeight, fairway, l, placed, p, rng)
		if err != nil {
			return nil, fmt.Errorf("water hazard %d: %w", i, err)
		}
		placed = append(placed, h)
		l.Water = append(l.Water, h)
	}
	return l, nil
}

// HazardCounts returns how many bunkers and water hazards a hole of the given
// par and difficulty carries.
func HazardCounts(par, difficulty int) (bunkers, water int) {
	bunkers = max(0, difficulty*par/2-1)
	water = difficulty * par / 6
	return bunkers, water
}

func placeCup(green Region, p Params, rng *rand.Rand) (geom.Point, error) {
	box := green.Bounds().Inset(p.CupMargin)
	if box.Width() <= 0 || box.Height() <= 0 {
		return geom.Point{}, fmt.Errorf("%w: green %vx%v too small for cup margin", ErrPlacementExhausted, green.Width, green.Height)
	}
	el := green.Ellipse()
	for range p.PlacementRetries {
		c := geom.Point{
			X: randutil.Uniform(rng, box.Min.X, box.Max.X),
			Y: randutil.Uniform(rng, box.Min.Y, box.Max.Y),
		}
		if el.NormalizedDistance(c) <= p.CupMaxDistance {
			return c, nil
		}
	}
	return geom.Point{}, fmt.Errorf("%w: cup after %d tries", ErrPlacementExhausted, p.PlacementRetries)
}

// hazardIndexRange returns the inclusive range of path indices hazards are
// anchored to: roughly the middle half of the hole.
func hazardIndexRange(n int) (lo, hi int) {
	lo = n / 4
	hi = int(2.75 * float64(n) / 4)
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

func placeHazard(t Terrain, ws, hs IntSpan, path Path, l *Layout, placed []Region, p Params, rng *rand.Rand) (Region, error) {
	lo, hi := hazardIndexRange(len(path))
	for range p.PlacementRetries {
		idx := randutil.IntRange(rng, lo, hi)
		normal := path.Direction(idx).Perp()
		offset := randutil.Uniform(rng, p.HazardOffset.Min, p.HazardOffset.Max) * randutil.Sign(rng)

		h := newEllipseRegion(t, geom.Ellipse{
			Center: path[idx].Add(normal.Mul(offset)),
			Width:  float64(randutil.IntRange(rng, ws.Min, ws.Max)),
			Height: float64(randutil.IntRange(rng, hs.Min, hs.Max)),
			Angle:  float64(rng.IntN(360)) * math.Pi / 180,
		})
		if hazardFits(h, l, placed) {
			return h, nil
		}
	}
	return Region{}, fmt.Errorf("%w: %s after %d tries", ErrPlacementExhausted, t, p.PlacementRetries)
}

func hazardFits(h Region, l *Layout, placed []Region) bool {
	b := h.Bounds()
	if b.Intersects(l.Teebox.Bounds()) || b.Intersects(l.Green.Bounds()) {
		return false
	}
	for _, o := range placed {
		if b.Intersects(o.Bounds()) {
			return false
		}
	}
	return true
}

// TeeAnchor is where the ball starts: the teebox centre.
func (l *Layout) TeeAnchor() geom.Point {
	return l.Teebox.Center
}

// Cup returns the cup position on the green.
func (l *Layout) Cup() geom.Point {
	return l.Green.Cup
}
