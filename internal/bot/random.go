package bot

import (
	"math/rand/v2"

	"github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/randutil"
)

// RandomPolicy samples the continuous action box uniformly.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy creates a RandomPolicy drawing from rng.
func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rng: rng}
}

func (p *RandomPolicy) Name() string { return "random" }

func (p *RandomPolicy) Act(s State) env.Action {
	a0 := randutil.Uniform(p.rng, -1, 1)
	a1 := randutil.Uniform(p.rng, -1, 1)
	return env.ActionFromBox(a0, a1, s.Profile.Len())
}
