package bot

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/env"
)

// DefaultTolerance is how far past the cup a PinSeeker will hit.
const DefaultTolerance = 10.0

// PinSeeker aims straight at the cup with the longest club that does not
// carry more than Tolerance past it, falling back to the shortest club.
type PinSeeker struct {
	Tolerance float64
	logger    *log.Logger
}

// NewPinSeeker creates a PinSeeker.
func NewPinSeeker(tolerance float64, logger *log.Logger) *PinSeeker {
	return &PinSeeker{Tolerance: tolerance, logger: logger.WithPrefix("pinseeker")}
}

func (p *PinSeeker) Name() string { return "pinseeker" }

func (p *PinSeeker) Act(s State) env.Action {
	obs := s.Observation
	lie := env.LieFromOneHot(obs.Lie)
	target := s.Cup.Sub(obs.Ball)
	remaining := target.Length()

	longest, longestDist := -1, math.Inf(-1)
	shortest, shortestDist := 0, math.Inf(1)
	for i := range s.Profile.Len() {
		params, err := s.Profile.Params(i, lie)
		if err != nil {
			continue
		}
		if params.Distance < shortestDist {
			shortest, shortestDist = i, params.Distance
		}
		if params.Distance <= remaining+p.Tolerance && params.Distance > longestDist {
			longest, longestDist = i, params.Distance
		}
	}

	club := longest
	if club < 0 {
		club = shortest
	}
	p.logger.Debug("Choosing club", "lie", lie, "remaining", remaining, "club", s.Profile.Clubs[club].Name)
	return env.Action{Club: club, Direction: target.Angle()}
}
