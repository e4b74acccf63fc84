// Package bot provides stroke policies for driving an environment.
package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/lox/golfforbots/internal/shot"
)

// State is everything a policy may look at before a stroke.
type State struct {
	Observation env.Observation
	Cup         geom.Point
	Profile     *shot.Profile
}

// Policy picks the next action.
type Policy interface {
	Name() string
	Act(s State) env.Action
}

// Factory builds a policy from its own random stream.
type Factory func(rng *rand.Rand, logger *log.Logger) Policy

var registry = map[string]Factory{
	"random": func(rng *rand.Rand, logger *log.Logger) Policy {
		return NewRandomPolicy(rng)
	},
	"pinseeker": func(rng *rand.Rand, logger *log.Logger) Policy {
		return NewPinSeeker(DefaultTolerance, logger)
	},
}

// Names lists the registered policies.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the named policy.
func New(name string, rng *rand.Rand, logger *log.Logger) (Policy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (have %v)", name, Names())
	}
	return f(rng, logger), nil
}
