// Package geom provides the small amount of planar geometry the course and
// shot packages share: points, axis-aligned boxes and rotated rectangles and
// ellipses with exact containment tests.
//
// Coordinates are screen-style: x grows to the right and y grows downwards.
// Angles are radians measured with math.Atan2(dy, dx) in that frame.
package geom

import (
	"fmt"
	"math"
)

// Point is a 2D point or vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns the unit vector in the direction of p and false when p
// has zero length.
func (p Point) Normalize() (Point, bool) {
	l := p.Length()
	if l == 0 {
		return Point{}, false
	}
	return Point{X: p.X / l, Y: p.Y / l}, true
}

// Perp returns p rotated by +90 degrees.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Angle returns the direction of p in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Unit returns the unit vector at the given angle.
func Unit(angle float64) Point {
	return Point{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Rect is an axis-aligned box. Min is the top-left corner.
type Rect struct {
	Min, Max Point
}

// RectAround returns the box of the given size centred on c.
func RectAround(c Point, w, h float64) Rect {
	return Rect{
		Min: Point{X: c.X - w/2, Y: c.Y - h/2},
		Max: Point{X: c.X + w/2, Y: c.Y + h/2},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether the interiors of r and o overlap. Boxes that
// only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + d, Y: r.Min.Y + d},
		Max: Point{X: r.Max.X - d, Y: r.Max.Y - d},
	}
}

// toLocal expresses p in the frame centred on c and rotated by angle.
func toLocal(p, c Point, angle float64) (float64, float64) {
	d := p.Sub(c)
	cos, sin := math.Cos(angle), math.Sin(angle)
	return d.X*cos + d.Y*sin, -d.X*sin + d.Y*cos
}

// OrientedRect is a rectangle of Width along its angle and Height across it.
type OrientedRect struct {
	Center        Point
	Width, Height float64
	Angle         float64
}

// Contains reports whether p lies inside the rotated rectangle.
func (r OrientedRect) Contains(p Point) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	lx, ly := toLocal(p, r.Center, r.Angle)
	return math.Abs(lx) <= r.Width/2 && math.Abs(ly) <= r.Height/2
}

// Bounds returns the exact axis-aligned box of the rotated rectangle.
func (r OrientedRect) Bounds() Rect {
	cos, sin := math.Abs(math.Cos(r.Angle)), math.Abs(math.Sin(r.Angle))
	ex := r.Width/2*cos + r.Height/2*sin
	ey := r.Width/2*sin + r.Height/2*cos
	return RectAround(r.Center, 2*ex, 2*ey)
}

// Ellipse is the ellipse inscribed in a Width x Height box rotated by Angle.
type Ellipse struct {
	Center        Point
	Width, Height float64
	Angle         float64
}

// NormalizedDistance returns sqrt((x/a)^2 + (y/b)^2) for p in the ellipse's
// local frame: 0 at the centre, 1 on the rim.
func (e Ellipse) NormalizedDistance(p Point) float64 {
	a, b := e.Width/2, e.Height/2
	if a <= 0 || b <= 0 {
		return math.Inf(1)
	}
	lx, ly := toLocal(p, e.Center, e.Angle)
	return math.Sqrt((lx/a)*(lx/a) + (ly/b)*(ly/b))
}

// Contains reports whether p lies inside or on the ellipse.
func (e Ellipse) Contains(p Point) bool {
	return e.NormalizedDistance(p) <= 1
}

// Bounds returns the exact axis-aligned box of the rotated ellipse.
func (e Ellipse) Bounds() Rect {
	a, b := e.Width/2, e.Height/2
	cos, sin := math.Cos(e.Angle), math.Sin(e.Angle)
	ex := math.Sqrt(a*a*cos*cos + b*b*sin*sin)
	ey := math.Sqrt(a*a*sin*sin + b*b*cos*cos)
	return RectAround(e.Center, 2*ex, 2*ey)
}
