package course

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/golfforbots/internal/geom"
	"github.com/lox/golfforbots/internal/randutil"
)

// Path is an ordered list of sample points along a hole's centreline.
type Path []geom.Point

// Start returns the first sample.
func (p Path) Start() geom.Point { return p[0] }

// End returns the last sample.
func (p Path) End() geom.Point { return p[len(p)-1] }

// Direction returns the unit tangent at sample i: towards the next sample,
// or from the previous one for the last sample.
func (p Path) Direction(i int) geom.Point {
	var d geom.Point
	if i < len(p)-1 {
		d = p[i+1].Sub(p[i])
	} else {
		d = p[i].Sub(p[i-1])
	}
	u, ok := d.Normalize()
	if !ok {
		return geom.Pt(1, 0)
	}
	return u
}

// NewControlPoints draws n control points across rect with evenly spaced x
// and y uniform in [top+margin, bottom-margin]. n must be at least 2.
func NewControlPoints(rect geom.Rect, n int, margin float64, rng *rand.Rand) []geom.Point {
	if n < 2 {
		panic("course: NewControlPoints needs at least 2 points")
	}
	pts := make([]geom.Point, n)
	step := rect.Width() / float64(n-1)
	for i := range pts {
		pts[i] = geom.Point{
			X: rect.Min.X + float64(i)*step,
			Y: randutil.Uniform(rng, rect.Min.Y+margin, rect.Max.Y-margin),
		}
	}
	return pts
}

// RoughControlPoints returns a copy of points with the first x pulled left
// and the last x pushed right by margin.
func RoughControlPoints(points []geom.Point, margin float64) []geom.Point {
	out := make([]geom.Point, len(points))
	copy(out, points)
	if len(out) > 0 {
		out[0].X -= margin
		out[len(out)-1].X += margin
	}
	return out
}

// PathGenerator turns control points into a smooth sampled path.
type PathGenerator struct {
	points []geom.Point
}

// NewPathGenerator validates the control points and returns a generator.
func NewPathGenerator(points []geom.Point) (*PathGenerator, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewControlPoints, len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return nil, fmt.Errorf("%w: point %d x=%v follows x=%v",
				ErrControlPointOrder, i, points[i].X, points[i-1].X)
		}
	}
	pts := make([]geom.Point, len(points))
	copy(pts, points)
	return &PathGenerator{points: pts}, nil
}

// Generate samples one cubic Bezier per pair of adjacent control points and
// returns the concatenated samples with exact duplicates removed. Each
// segment gets samples/(n-1) parameter steps including both ends.
func (g *PathGenerator) Generate(samples int) Path {
	n := len(g.points)
	steps := samples / (n - 1)
	if steps < 2 {
		steps = 2
	}

	out := make(Path, 0, steps*(n-1))
	seen := make(map[geom.Point]struct{}, steps*(n-1))
	for i := 0; i < n-1; i++ {
		p0, p1, p2, p3 := g.handles(i)
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps-1)
			var pt geom.Point
			switch s {
			case 0:
				pt = p0
			case steps - 1:
				pt = p3
			default:
				pt = bezier(p0, p1, p2, p3, t)
			}
			if _, dup := seen[pt]; dup {
				continue
			}
			seen[pt] = struct{}{}
			out = append(out, pt)
		}
	}
	return out
}

// handles returns the four Bezier control points for segment i. Tangents
// are the secant between neighbours, one-sided at the path ends.
func (g *PathGenerator) handles(i int) (p0, p1, p2, p3 geom.Point) {
	pts := g.points
	p0, p3 = pts[i], pts[i+1]

	t0 := p3.Sub(p0)
	if i > 0 {
		t0 = pts[i+1].Sub(pts[i-1])
	}
	t1 := p3.Sub(p0)
	if i < len(pts)-2 {
		t1 = pts[i+2].Sub(pts[i])
	}
	p1 = p0.Add(t0.Mul(1.0 / 3))
	p2 = p3.Sub(t1.Mul(1.0 / 3))
	return p0, p1, p2, p3
}

func bezier(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return geom.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
