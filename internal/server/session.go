package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/game"
	"github.com/lox/golfforbots/internal/metrics"
	"github.com/lox/golfforbots/internal/randutil"
)

// Session is one client's environment. Handle is called from a single
// goroutine per connection.
type Session struct {
	ID      string
	Seed    int64
	cfg     Config
	env     *env.Env
	logger  *log.Logger
	metrics *metrics.Manager
	clock   quartz.Clock
}

// NewSession creates the n-th session of a server. Its seed is derived from
// the server seed and n so every session plays a different, reproducible
// sequence of holes.
func NewSession(cfg Config, n int64, logger *log.Logger, m *metrics.Manager, clock quartz.Clock) (*Session, error) {
	id := uuid.NewString()
	seed := randutil.Derive(cfg.Seed, n)
	logger = logger.With("session", id[:8])

	bus := game.NewEventBus()
	if m != nil {
		bus.Subscribe(m)
	}
	engine, err := game.NewEngine(randutil.New(seed), cfg.Par, cfg.Difficulty,
		game.WithProfile(cfg.Profile),
		game.WithLayoutParams(cfg.Layout),
		game.WithLogger(logger),
		game.WithEventBus(bus),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	e, err := env.New(engine,
		env.WithRewards(cfg.Rewards),
		env.WithRasterCell(cfg.RasterCell),
		env.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:      id,
		Seed:    seed,
		cfg:     cfg,
		env:     e,
		logger:  logger,
		metrics: m,
		clock:   clock,
	}, nil
}

// Env returns the session's environment.
func (s *Session) Env() *env.Env { return s.env }

// Info describes the session.
func (s *Session) Info() CourseInfoData {
	lies := make([]string, len(course.Lies))
	for i, l := range course.Lies {
		lies[i] = l.String()
	}
	return CourseInfoData{
		SessionID:  s.ID,
		Seed:       s.Seed,
		Clubs:      s.env.Clubs(),
		Lies:       lies,
		Par:        s.cfg.Par,
		Difficulty: s.cfg.Difficulty,
		Rewards:    s.env.Rewards(),
		RasterCell: s.cfg.RasterCell,
	}
}

// Handle answers one client message.
func (s *Session) Handle(msg *Message) *Message {
	reply := s.handle(msg)
	reply.RequestID = msg.RequestID
	return reply
}

func (s *Session) handle(msg *Message) *Message {
	s.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeReset:
		obs, err := s.env.Reset()
		if err != nil {
			s.logger.Error("Reset failed", "error", err)
			return s.errorMessage(ErrorCodeInternal, err.Error())
		}
		return s.reply(MessageTypeObservation, ObservationData{Hole: s.env.Engine().Hole(), Observation: obs})

	case MessageTypeStep:
		var data StepData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return s.errorMessage(ErrorCodeInvalidMessage, "Failed to parse step data")
		}
		return s.step(data)

	case MessageTypeStepBox:
		var data StepBoxData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return s.errorMessage(ErrorCodeInvalidMessage, "Failed to parse step_box data")
		}
		return s.step(env.ActionFromBox(data.A0, data.A1, len(s.env.Clubs())))

	case MessageTypeInfo:
		return s.reply(MessageTypeCourseInfo, s.Info())

	case MessageTypeDescribe:
		return s.reply(MessageTypeHole, s.env.Engine().Layout().Description())

	case MessageTypeDispersion:
		var data DispersionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return s.errorMessage(ErrorCodeInvalidMessage, "Failed to parse dispersion data")
		}
		d, err := s.env.Dispersion(data)
		switch {
		case errors.Is(err, env.ErrEpisodeDone):
			return s.errorMessage(ErrorCodeEpisodeDone, err.Error())
		case err != nil:
			return s.errorMessage(ErrorCodeInvalidAction, err.Error())
		}
		return s.reply(MessageTypeSpread, SpreadData(d))

	default:
		return s.errorMessage(ErrorCodeUnknownType, fmt.Sprintf("Unknown message type %q", msg.Type))
	}
}

func (s *Session) step(a env.Action) *Message {
	start := s.clock.Now()
	res, err := s.env.Step(a)
	s.metrics.ObserveStep(s.clock.Since(start))

	switch {
	case errors.Is(err, env.ErrEpisodeDone):
		return s.errorMessage(ErrorCodeEpisodeDone, err.Error())
	case err != nil:
		return s.errorMessage(ErrorCodeInvalidAction, err.Error())
	}
	if res.Truncated {
		s.metrics.RecordTruncation()
	}
	return s.reply(MessageTypeStepResult, res)
}

func (s *Session) reply(t MessageType, data any) *Message {
	msg, err := NewMessage(t, data)
	if err != nil {
		s.logger.Error("Failed to encode reply", "type", t, "error", err)
		return s.errorMessage(ErrorCodeInternal, "Failed to encode reply")
	}
	return msg
}

func (s *Session) errorMessage(code, text string) *Message {
	s.metrics.RecordError(code)
	msg, _ := NewMessage(MessageTypeError, ErrorData{Code: code, Message: text})
	return msg
}
