// Package env wraps a game engine in the reset/step interface training
// clients expect: discrete-or-box actions in, observation, reward and
// termination flags out.
package env

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/game"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/lox/golfforbots/internal/shot"
)

// ErrEpisodeDone is returned by Step once the episode has terminated or been
// truncated. Call Reset to start another.
var ErrEpisodeDone = errors.New("episode is done, call reset")

// Rewards holds the reward shaping and episode limits.
type Rewards struct {
	Penalty     float64 `koanf:"penalty" json:"penalty"`
	Green       float64 `koanf:"green" json:"green"`
	Stroke      float64 `koanf:"stroke" json:"stroke"`
	ScoreCap    int     `koanf:"score_cap" json:"score_cap"`
	AimDistance float64 `koanf:"aim_distance" json:"aim_distance"`
}

// DefaultRewards returns the stock reward settings.
func DefaultRewards() Rewards {
	return Rewards{
		Penalty:     -2,
		Green:       10,
		Stroke:      -1,
		ScoreCap:    20,
		AimDistance: 100,
	}
}

// Validate checks the settings are usable.
func (r Rewards) Validate() error {
	if r.ScoreCap <= 0 {
		return fmt.Errorf("score cap must be positive, got %d", r.ScoreCap)
	}
	if r.AimDistance <= 0 {
		return fmt.Errorf("aim distance must be positive, got %v", r.AimDistance)
	}
	return nil
}

// For returns the reward for a resolved stroke.
func (r Rewards) For(outcome game.Outcome) float64 {
	switch outcome {
	case game.OutcomePenalty:
		return r.Penalty
	case game.OutcomeHoled:
		return r.Green
	default:
		return r.Stroke
	}
}

// Action is a club index and an aim direction in radians. The stroke is
// aimed at the point AimDistance away from the ball in that direction.
type Action struct {
	Club      int     `json:"club"`
	Direction float64 `json:"direction"`
}

// ActionFromBox maps a continuous action in [-1, 1]² to a club and a
// direction in [0, 2π].
func ActionFromBox(a0, a1 float64, clubs int) Action {
	club := int((a0 + 1) * float64(clubs) / 2)
	club = max(0, min(clubs-1, club))
	return Action{Club: club, Direction: (a1 + 1) * math.Pi}
}

// Observation is what the agent sees before each stroke.
type Observation struct {
	Ball  geom.Point `json:"ball"`
	Lie   []float64  `json:"lie"`
	Club  int        `json:"club"`
	Score int        `json:"score"`

	// Raster holds terrain codes row-major, RasterWidth per row. It is
	// omitted when the environment was built without a raster.
	Raster       []uint8 `json:"raster,omitempty"`
	RasterWidth  int     `json:"raster_width,omitempty"`
	RasterHeight int     `json:"raster_height,omitempty"`
	RasterCell   int     `json:"raster_cell,omitempty"`
}

// Info carries diagnostics that are not part of the observation.
type Info struct {
	Stroke game.StrokeResult `json:"stroke"`
	Hole   int               `json:"hole"`
	Par    int               `json:"par"`
	Score  int               `json:"score"`
}

// StepResult is returned by Step.
type StepResult struct {
	Observation Observation `json:"observation"`
	Reward      float64     `json:"reward"`
	Terminated  bool        `json:"terminated"`
	Truncated   bool        `json:"truncated"`
	Info        Info        `json:"info"`
}

// Done reports whether the episode is over.
func (s StepResult) Done() bool { return s.Terminated || s.Truncated }

// LieOneHot encodes a lie over Teebox, Fairway, Rough and Bunker. Any other
// terrain encodes as all zeros.
func LieOneHot(lie course.Terrain) []float64 {
	out := make([]float64, len(course.Lies))
	for i, l := range course.Lies {
		if l == lie {
			out[i] = 1
		}
	}
	return out
}

// LieFromOneHot decodes the largest entry of a lie encoding. An all-zero
// encoding decodes as Green.
func LieFromOneHot(v []float64) course.Terrain {
	lie, best := course.Green, 0.0
	for i, x := range v {
		if i < len(course.Lies) && x > best {
			lie, best = course.Lies[i], x
		}
	}
	return lie
}

// Option configures an Env.
type Option func(*Env)

// WithRewards replaces the default rewards.
func WithRewards(r Rewards) Option {
	return func(e *Env) { e.rewards = r }
}

// WithRasterCell includes a terrain raster of the given cell size in every
// observation. Zero disables it.
func WithRasterCell(cell int) Option {
	return func(e *Env) { e.cell = cell }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Env) { e.logger = l }
}

// Env is a single-agent episode runner over one engine. Each episode is one
// hole.
type Env struct {
	engine  *game.Engine
	rewards Rewards
	cell    int
	logger  *log.Logger

	resets int
	done   bool
}

// New wraps engine. The engine's current hole is the first episode.
func New(engine *game.Engine, opts ...Option) (*Env, error) {
	if engine == nil {
		panic("engine is required")
	}
	e := &Env{
		engine:  engine,
		rewards: DefaultRewards(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.rewards.Validate(); err != nil {
		return nil, err
	}
	if e.cell < 0 {
		return nil, fmt.Errorf("raster cell must not be negative, got %d", e.cell)
	}
	return e, nil
}

func (e *Env) Engine() *game.Engine { return e.engine }
func (e *Env) Rewards() Rewards     { return e.rewards }
func (e *Env) Clubs() []string      { return e.engine.Profile().Names() }
func (e *Env) Done() bool           { return e.done }

// Reset starts a new episode on a freshly generated hole. The first call
// plays the hole the engine was created with.
func (e *Env) Reset() (Observation, error) {
	if e.resets > 0 || e.engine.Score() > 0 || e.engine.IsComplete() {
		if err := e.engine.NewHole(); err != nil {
			return Observation{}, err
		}
	}
	e.resets++
	e.done = false
	e.logger.Debug("Episode reset", "hole", e.engine.Hole(), "par", e.engine.Par())
	return e.Observe(), nil
}

// Observe returns the current observation without advancing.
func (e *Env) Observe() Observation {
	obs := Observation{
		Ball:  e.engine.Ball(),
		Lie:   LieOneHot(e.engine.Lie()),
		Club:  e.engine.Club(),
		Score: e.engine.Score(),
	}
	if e.cell > 0 {
		r := e.engine.Layout().Raster(e.cell)
		obs.Raster = r.Codes()
		obs.RasterWidth = r.Width
		obs.RasterHeight = r.Height
		obs.RasterCell = r.Cell
	}
	return obs
}

// AimPoint returns the point a stroke in direction is aimed at.
func (e *Env) AimPoint(direction float64) geom.Point {
	return e.engine.Ball().Add(geom.Unit(direction).Mul(e.rewards.AimDistance))
}

func checkDirection(a Action) error {
	if math.IsNaN(a.Direction) || math.IsInf(a.Direction, 0) {
		return fmt.Errorf("invalid action: direction %v", a.Direction)
	}
	return nil
}

// Dispersion returns the landing distribution the action would be drawn
// from, without playing it.
func (e *Env) Dispersion(a Action) (shot.Dispersion, error) {
	if e.done || e.engine.IsComplete() {
		return shot.Dispersion{}, ErrEpisodeDone
	}
	if err := checkDirection(a); err != nil {
		return shot.Dispersion{}, err
	}
	p, err := e.engine.Profile().Params(a.Club, e.engine.Lie())
	if err != nil {
		return shot.Dispersion{}, fmt.Errorf("invalid action: %w", err)
	}
	d, err := shot.NewDistribution(p, e.engine.Ball(), e.AimPoint(a.Direction))
	if err != nil {
		return shot.Dispersion{}, err
	}
	return d.Summary(), nil
}

// Step selects the action's club and strikes towards its direction.
func (e *Env) Step(a Action) (StepResult, error) {
	if e.done || e.engine.IsComplete() {
		return StepResult{}, ErrEpisodeDone
	}
	if err := checkDirection(a); err != nil {
		return StepResult{}, err
	}
	if err := e.engine.SelectClub(a.Club); err != nil {
		return StepResult{}, fmt.Errorf("invalid action: %w", err)
	}

	res, err := e.engine.Stroke(e.AimPoint(a.Direction))
	if err != nil {
		return StepResult{}, err
	}

	out := StepResult{
		Observation: e.Observe(),
		Reward:      e.rewards.For(res.Outcome),
		Terminated:  e.engine.IsComplete(),
		Info: Info{
			Stroke: res,
			Hole:   e.engine.Hole(),
			Par:    e.engine.Par(),
			Score:  e.engine.Score(),
		},
	}
	out.Truncated = e.engine.Score() > e.rewards.ScoreCap
	e.done = out.Done()
	return out, nil
}

// StepBox is Step for a continuous action in [-1, 1]².
func (e *Env) StepBox(a0, a1 float64) (StepResult, error) {
	return e.Step(ActionFromBox(a0, a1, e.engine.Profile().Len()))
}
