package course

import (
	"fmt"
	"math"

	"github.com/lox/golfforbots/internal/geom"
)

// positionTolerance absorbs rounding when projecting the path's own end
// points onto the start→end axis.
const positionTolerance = 1e-9

// Envelope maps a normalized position along a path to a half-width:
//
//	(-(2u-1)^10 + Wobble*sin(Frequency*(3u-1)) + 1) * Scale
//
// clamped at zero. The curve is flat through the middle of the hole and
// pinches to nothing at both ends.
type Envelope struct {
	Scale     float64
	Wobble    float64
	Frequency float64
}

// Position returns where p falls along the start→end axis, 0 at start and 1
// at end.
func (e Envelope) Position(p, start, end geom.Point) (float64, error) {
	axis := end.Sub(start)
	l2 := axis.Dot(axis)
	if l2 == 0 {
		return 0, fmt.Errorf("%w: start and end coincide at %v", ErrOutsideEnvelope, start)
	}
	u := p.Sub(start).Dot(axis) / l2
	switch {
	case u < 0 && u > -positionTolerance:
		u = 0
	case u > 1 && u < 1+positionTolerance:
		u = 1
	}
	if u < 0 || u > 1 {
		return u, fmt.Errorf("%w: %v projects to %.6f", ErrOutsideEnvelope, p, u)
	}
	return u, nil
}

// At evaluates the envelope at normalized position u.
func (e Envelope) At(u float64) (float64, error) {
	if u < 0 || u > 1 || math.IsNaN(u) {
		return 0, fmt.Errorf("%w: u=%v", ErrOutsideEnvelope, u)
	}
	v := -math.Pow(2*u-1, 10) + e.Wobble*math.Sin(e.Frequency*(3*u-1)) + 1
	return math.Max(0, v*e.Scale), nil
}

// HalfWidth returns the envelope half-width at p for a path running from
// start to end.
func (e Envelope) HalfWidth(p, start, end geom.Point) (float64, error) {
	u, err := e.Position(p, start, end)
	if err != nil {
		return 0, err
	}
	return e.At(u)
}

// Profile returns the half-width at every sample of path.
func (e Envelope) Profile(path Path) ([]float64, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: got %d samples", ErrTooFewControlPoints, len(path))
	}
	start, end := path.Start(), path.End()
	widths := make([]float64, len(path))
	for i, p := range path {
		w, err := e.HalfWidth(p, start, end)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		widths[i] = w
	}
	return widths, nil
}
