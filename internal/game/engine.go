package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/lox/golfforbots/internal/shot"
)

// DefaultPenaltyStrokes is what a ball out of bounds or in water costs.
const DefaultPenaltyStrokes = 2

var (
	// ErrHoleComplete is returned for actions that need the hole to be in play.
	ErrHoleComplete = errors.New("hole is complete")
	// ErrNotAiming is returned when a stroke is requested mid-resolution.
	ErrNotAiming = errors.New("engine is not aiming")
)

// Phase is where the engine is in the play cycle.
type Phase uint8

const (
	Aiming Phase = iota
	Resolving
	HoleComplete
)

func (p Phase) String() string {
	switch p {
	case Aiming:
		return "aiming"
	case Resolving:
		return "resolving"
	case HoleComplete:
		return "hole_complete"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Outcome classifies how a stroke ended.
type Outcome string

const (
	OutcomeAdvanced Outcome = "advanced"
	OutcomePenalty  Outcome = "penalty"
	OutcomeHoled    Outcome = "on_green"
)

// StrokeResult describes one resolved stroke. Landing is where the ball came
// down; Final is where it is played from next, which differs from Landing
// after a penalty.
type StrokeResult struct {
	Hole      int            `json:"hole"`
	Club      string         `json:"club"`
	ClubIndex int            `json:"club_index"`
	Lie       course.Terrain `json:"lie"`
	From      geom.Point     `json:"from"`
	Aim       geom.Point     `json:"aim"`
	Direction geom.Point     `json:"direction"`
	Landing   geom.Point     `json:"landing"`
	Final     geom.Point     `json:"final"`
	Terrain   course.Terrain `json:"terrain"`
	Outcome   Outcome        `json:"outcome"`
	Strokes   int            `json:"strokes"`
	Score     int            `json:"score"`
	NextLie   course.Terrain `json:"next_lie"`

	Dispersion shot.Dispersion `json:"dispersion"`
}

// Distance returns how far the ball travelled through the air.
func (r StrokeResult) Distance() float64 {
	return r.From.Distance(r.Landing)
}

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	profile        *shot.Profile
	logger         *log.Logger
	eventBus       EventBus
	penaltyStrokes int
	layoutOpts     []course.Option
}

// WithProfile sets the club profile. Defaults to shot.DefaultProfile.
func WithProfile(p *shot.Profile) Option {
	return func(c *engineConfig) { c.profile = p }
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(c *engineConfig) { c.logger = l }
}

// WithEventBus publishes engine events on bus instead of a private one.
func WithEventBus(bus EventBus) Option {
	return func(c *engineConfig) { c.eventBus = bus }
}

// WithPenaltyStrokes overrides the penalty for out of bounds and water.
func WithPenaltyStrokes(n int) Option {
	return func(c *engineConfig) { c.penaltyStrokes = n }
}

// WithLayoutParams sets the parameters used to generate every hole.
func WithLayoutParams(p course.Params) Option {
	return func(c *engineConfig) { c.layoutOpts = append(c.layoutOpts, course.WithParams(p)) }
}

// Engine plays one hole at a time. It is not safe for concurrent use; run
// one engine per goroutine.
type Engine struct {
	rng        *rand.Rand
	par        int
	difficulty int
	penalty    int
	layoutOpts []course.Option
	logger     *log.Logger
	eventBus   EventBus

	model  *shot.Model
	layout *course.Layout
	ball   geom.Point
	lie    course.Terrain
	aim    geom.Point
	score  int
	phase  Phase
	hole   int
	last   *StrokeResult
}

// NewEngine creates an engine and generates its first hole. The RNG is
// required so that a seed reproduces every layout and every stroke.
func NewEngine(rng *rand.Rand, par, difficulty int, opts ...Option) (*Engine, error) {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	cfg := &engineConfig{penaltyStrokes: DefaultPenaltyStrokes}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.profile == nil {
		cfg.profile = shot.DefaultProfile()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.eventBus == nil {
		cfg.eventBus = NewEventBus()
	}
	if cfg.penaltyStrokes < 0 {
		return nil, fmt.Errorf("penalty strokes must not be negative, got %d", cfg.penaltyStrokes)
	}

	e := &Engine{
		rng:        rng,
		par:        par,
		difficulty: difficulty,
		penalty:    cfg.penaltyStrokes,
		layoutOpts: append(cfg.layoutOpts, course.WithLogger(cfg.logger)),
		logger:     cfg.logger,
		eventBus:   cfg.eventBus,
		model:      shot.NewModel(cfg.profile),
	}
	if err := e.NewHole(); err != nil {
		return nil, err
	}
	return e, nil
}

// GetEventBus returns the event bus for subscribing to game events
func (e *Engine) GetEventBus() EventBus { return e.eventBus }

func (e *Engine) Layout() *course.Layout { return e.layout }
func (e *Engine) Ball() geom.Point       { return e.ball }
func (e *Engine) Lie() course.Terrain    { return e.lie }
func (e *Engine) Score() int             { return e.score }
func (e *Engine) Phase() Phase           { return e.phase }
func (e *Engine) Par() int               { return e.par }
func (e *Engine) Difficulty() int        { return e.difficulty }
func (e *Engine) Hole() int              { return e.hole }
func (e *Engine) Club() int              { return e.model.Club() }
func (e *Engine) ClubName() string       { return e.model.ClubName() }
func (e *Engine) Profile() *shot.Profile { return e.model.Profile() }
func (e *Engine) PenaltyStrokes() int    { return e.penalty }

// IsComplete reports whether the ball has reached the green.
func (e *Engine) IsComplete() bool { return e.phase == HoleComplete }

// LastStroke returns the most recent stroke on this hole, if any.
func (e *Engine) LastStroke() (StrokeResult, bool) {
	if e.last == nil {
		return StrokeResult{}, false
	}
	return *e.last, true
}

// Aim returns the aim point of the last stroke on this hole. It is the zero
// point until the first stroke.
func (e *Engine) Aim() geom.Point { return e.aim }

// Distribution returns the landing distribution the next stroke towards the
// aim point aimAt would be drawn from.
func (e *Engine) Distribution(aimAt geom.Point) (shot.Distribution, error) {
	return e.model.Distribution(e.ball, aimAt)
}

// NewHole generates a fresh layout and resets the ball, score, club and lie.
// It is valid in any phase. On failure the current hole is left untouched.
func (e *Engine) NewHole() error {
	layout, err := course.Build(e.par, e.difficulty, e.rng, e.layoutOpts...)
	if err != nil {
		return fmt.Errorf("failed to generate hole: %w", err)
	}
	model := shot.NewModel(e.model.Profile())

	e.layout = layout
	e.model = model
	e.ball = layout.TeeAnchor()
	e.lie = course.Teebox
	e.aim = geom.Point{}
	e.score = 0
	e.phase = Aiming
	e.last = nil
	e.hole++

	e.logger.Debug("New hole",
		"hole", e.hole,
		"par", e.par,
		"difficulty", e.difficulty,
		"bunkers", len(layout.Bunkers),
		"water", len(layout.Water),
		"attempts", layout.Attempts)
	e.eventBus.Publish(NewNewHoleEvent(e.hole, e.par, e.difficulty, layout.TeeAnchor(), layout.Cup(), layout.Attempts))
	return nil
}

// SelectClub picks club i.
func (e *Engine) SelectClub(i int) error {
	if e.phase == HoleComplete {
		return ErrHoleComplete
	}
	if err := e.model.SetClub(i); err != nil {
		return err
	}
	e.eventBus.Publish(NewClubChangeEvent(i, e.model.ClubName()))
	return nil
}

// NextClub cycles to the next club, wrapping after the last.
func (e *Engine) NextClub() error {
	n := e.model.Profile().Len()
	return e.SelectClub((e.model.Club() + 1) % n)
}

// PrevClub cycles to the previous club, wrapping before the first.
func (e *Engine) PrevClub() error {
	n := e.model.Profile().Len()
	return e.SelectClub((e.model.Club() - 1 + n) % n)
}

// Stroke plays the current club from the ball towards the aim point aimAt.
// How far away aimAt is does not matter, only its direction. The landing point
// is drawn from the club's dispersion for the current lie and classified
// against the layout:
//
//   - out of bounds or water: penalty strokes, the ball is replayed from
//     where it was struck
//   - green: one stroke, the hole is complete
//   - anything else: one stroke, the ball is played from where it landed
func (e *Engine) Stroke(aimAt geom.Point) (StrokeResult, error) {
	switch e.phase {
	case Aiming:
	case HoleComplete:
		return StrokeResult{}, ErrHoleComplete
	default:
		return StrokeResult{}, ErrNotAiming
	}

	dist, err := e.model.Distribution(e.ball, aimAt)
	if err != nil {
		return StrokeResult{}, err
	}

	e.phase = Resolving
	landing := dist.Sample(e.rng)
	terrain := e.layout.Classify(landing)

	res := StrokeResult{
		Hole:      e.hole,
		Club:      e.model.ClubName(),
		ClubIndex: e.model.Club(),
		Lie:       e.lie,
		From:      e.ball,
		Aim:       aimAt,
		Direction: dist.Aim,
		Landing:   landing,
		Terrain:   terrain,

		Dispersion: dist.Summary(),
	}

	next := Aiming
	var lie course.Terrain
	switch {
	case terrain.IsPenalty():
		res.Outcome = OutcomePenalty
		res.Strokes = e.penalty
		res.Final = e.ball
		lie = e.layout.Classify(e.ball)
	case terrain == course.Green:
		res.Outcome = OutcomeHoled
		res.Strokes = 1
		res.Final = landing
		lie = course.Green
		next = HoleComplete
	default:
		res.Outcome = OutcomeAdvanced
		res.Strokes = 1
		res.Final = landing
		lie = terrain
	}
	if next == Aiming {
		if err := e.model.SetLie(lie); err != nil {
			e.phase = Aiming
			return StrokeResult{}, fmt.Errorf("ball at %v: %w", res.Final, err)
		}
	}

	e.ball = res.Final
	e.lie = lie
	e.aim = aimAt
	e.score += res.Strokes
	res.Score = e.score
	res.NextLie = e.lie
	e.last = &res

	e.logger.Debug("Stroke",
		"club", res.Club,
		"lie", res.Lie,
		"landing", res.Landing,
		"terrain", res.Terrain,
		"outcome", res.Outcome,
		"score", e.score)

	e.eventBus.Publish(NewStrokeEvent(res))
	e.phase = next
	if res.Outcome == OutcomePenalty {
		e.eventBus.Publish(NewPenaltyEvent(res, res.Strokes))
	}
	if next == HoleComplete {
		e.logger.Debug("Hole complete", "hole", e.hole, "score", e.score, "par", e.par)
		e.eventBus.Publish(NewHoleCompleteEvent(e.hole, e.par, e.score))
	}
	return res, nil
}
