package course

import "github.com/lox/golfforbots/internal/geom"

// Shape is the geometric form of a region.
type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeEllipse
)

func (s Shape) String() string {
	if s == ShapeEllipse {
		return "ellipse"
	}
	return "rect"
}

// Region is one classified area of the hole: a ribbon segment, the teebox,
// the green or a hazard. Rect regions use oriented rectangle containment,
// ellipse regions elliptical containment.
type Region struct {
	Terrain Terrain
	Shape   Shape
	Center  geom.Point
	Width   float64
	Height  float64
	Angle   float64

	// Cup is only set on the green.
	Cup geom.Point

	bounds geom.Rect
}

func newRectRegion(t Terrain, r geom.OrientedRect) Region {
	return Region{
		Terrain: t,
		Shape:   ShapeRect,
		Center:  r.Center,
		Width:   r.Width,
		Height:  r.Height,
		Angle:   r.Angle,
		bounds:  r.Bounds(),
	}
}

func newEllipseRegion(t Terrain, e geom.Ellipse) Region {
	return Region{
		Terrain: t,
		Shape:   ShapeEllipse,
		Center:  e.Center,
		Width:   e.Width,
		Height:  e.Height,
		Angle:   e.Angle,
		bounds:  e.Bounds(),
	}
}

// Bounds returns the axis-aligned box enclosing the region.
func (r Region) Bounds() geom.Rect { return r.bounds }

// Ellipse returns the region as an ellipse.
func (r Region) Ellipse() geom.Ellipse {
	return geom.Ellipse{Center: r.Center, Width: r.Width, Height: r.Height, Angle: r.Angle}
}

// Rect returns the region as an oriented rectangle.
func (r Region) Rect() geom.OrientedRect {
	return geom.OrientedRect{Center: r.Center, Width: r.Width, Height: r.Height, Angle: r.Angle}
}

// Contains reports whether p lies in the region.
func (r Region) Contains(p geom.Point) bool {
	if r.Width <= 0 || r.Height <= 0 || !r.bounds.Contains(p) {
		return false
	}
	if r.Shape == ShapeEllipse {
		return r.Ellipse().Contains(p)
	}
	return r.Rect().Contains(p)
}

// ribbon is a run of rect regions along a path with a shared bounding box.
type ribbon struct {
	segments []Region
	bounds   geom.Rect
}

func newRibbon(t Terrain, path Path, halfWidths []float64, segLen, mult float64) ribbon {
	rb := ribbon{segments: make([]Region, 0, len(path)-1)}
	first := true
	for i := 0; i < len(path)-1; i++ {
		seg := newRectRegion(t, geom.OrientedRect{
			Center: path[i],
			Width:  segLen,
			Height: 2 * halfWidths[i] * mult,
			Angle:  path[i+1].Sub(path[i]).Angle(),
		})
		rb.segments = append(rb.segments, seg)
		if seg.Height <= 0 {
			continue
		}
		if first {
			rb.bounds = seg.bounds
			first = false
		} else {
			rb.bounds = rb.bounds.Union(seg.bounds)
		}
	}
	return rb
}

func (rb ribbon) contains(p geom.Point) bool {
	if !rb.bounds.Contains(p) {
		return false
	}
	for _, s := range rb.segments {
		if s.Contains(p) {
			return true
		}
	}
	return false
}
