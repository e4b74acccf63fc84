package bot

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/game"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/lox/golfforbots/internal/randutil"
	"github.com/lox/golfforbots/internal/shot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func stateAt(ball, cup geom.Point, lie course.Terrain) State {
	return State{
		Observation: env.Observation{Ball: ball, Lie: env.LieOneHot(lie)},
		Cup:         cup,
		Profile:     shot.DefaultProfile(),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"pinseeker", "random"}, Names())
	for _, name := range Names() {
		p, err := New(name, randutil.New(1), quietLogger())
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := New("caddie", randutil.New(1), quietLogger())
	assert.ErrorContains(t, err, "unknown policy")
}

func TestRandomPolicyStaysInRange(t *testing.T) {
	t.Parallel()

	p := NewRandomPolicy(randutil.New(7))
	s := stateAt(geom.Pt(100, 400), geom.Pt(1000, 400), course.Teebox)
	seen := make(map[int]bool)
	for range 2000 {
		a := p.Act(s)
		require.GreaterOrEqual(t, a.Club, 0)
		require.Less(t, a.Club, s.Profile.Len())
		require.GreaterOrEqual(t, a.Direction, 0.0)
		require.LessOrEqual(t, a.Direction, 2*math.Pi)
		seen[a.Club] = true
	}
	assert.Len(t, seen, s.Profile.Len())
}

func TestPinSeekerClubChoice(t *testing.T) {
	t.Parallel()

	profile := shot.DefaultProfile()
	driver, _ := profile.Lookup("Driver")
	lob, _ := profile.Lookup("Lob Wedge")
	p := NewPinSeeker(DefaultTolerance, quietLogger())

	// A long way out the driver is the longest club that fits.
	a := p.Act(stateAt(geom.Pt(100, 400), geom.Pt(1000, 400), course.Teebox))
	assert.Equal(t, driver, a.Club)
	assert.InDelta(t, 0, a.Direction, 1e-12)

	// Closer than every club flies, so the shortest one is used.
	a = p.Act(stateAt(geom.Pt(500, 400), geom.Pt(500, 390), course.Fairway))
	assert.Equal(t, lob, a.Club)
	assert.InDelta(t, -math.Pi/2, a.Direction, 1e-12)
}

func TestPinSeekerNeverOvershoots(t *testing.T) {
	t.Parallel()

	profile := shot.DefaultProfile()
	p := NewPinSeeker(DefaultTolerance, quietLogger())
	for _, lie := range course.Lies {
		for d := 60.0; d < 400; d += 17 {
			a := p.Act(stateAt(geom.Pt(0, 0), geom.Pt(d, 0), lie))
			params, err := profile.Params(a.Club, lie)
			require.NoError(t, err)
			assert.LessOrEqual(t, params.Distance, d+DefaultTolerance, "lie %s distance %v", lie, d)
		}
	}
}

func TestPinSeekerPlaysTowardsTheCup(t *testing.T) {
	t.Parallel()

	p := NewPinSeeker(DefaultTolerance, quietLogger())
	for seed := range int64(10) {
		e, err := game.NewEngine(randutil.New(seed), 4, 1)
		require.NoError(t, err)
		ev, err := env.New(e)
		require.NoError(t, err)

		obs, err := ev.Reset()
		require.NoError(t, err)
		tee, cup := obs.Ball, e.Layout().Cup()

		steps := 0
		for !ev.Done() {
			res, err := ev.Step(p.Act(State{Observation: obs, Cup: cup, Profile: e.Profile()}))
			require.NoError(t, err)
			if steps == 0 {
				assert.Equal(t, "Driver", res.Info.Stroke.Club)
				assert.Less(t, res.Info.Stroke.Landing.Distance(cup), tee.Distance(cup)-150)
			}
			obs = res.Observation
			steps++
		}
		assert.LessOrEqual(t, steps, ev.Rewards().ScoreCap+1)
	}
}
