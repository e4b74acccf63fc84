package game

import (
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/shot"
)

// exactProfile returns a two club profile with no dispersion: "Long" carries
// distance and "Short" half of it from every lie.
func exactProfile(distance float64) *shot.Profile {
	lies := func(d float64) map[course.Terrain]shot.Params {
		m := make(map[course.Terrain]shot.Params, len(course.Lies))
		for _, lie := range course.Lies {
			m[lie] = shot.Params{Distance: d}
		}
		return m
	}
	p := &shot.Profile{Clubs: []shot.Club{
		{Name: "Long", Lies: lies(distance)},
		{Name: "Short", Lies: lies(distance / 2)},
	}}
	if err := p.Validate(); err != nil {
		panic(err)
	}
	return p
}

// recorder collects published events.
type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}
