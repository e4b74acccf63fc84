package course

import (
	"fmt"

	"github.com/lox/golfforbots/internal/geom"
)

// Play area dimensions. Anything outside is out of bounds.
const (
	PlayWidth  = 1200
	PlayHeight = 800
)

// PlayArea is the rectangle the classifier treats as in play.
var PlayArea = geom.Rect{Max: geom.Pt(PlayWidth, PlayHeight)}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// IntSpan is an inclusive integer range used for random sizes.
type IntSpan struct {
	Min, Max int
}

// Span is a half-open float range.
type Span struct {
	Min, Max float64
}

// Params holds every tunable the layout generator uses.
type Params struct {
	CourseRect     geom.Rect
	ControlPoints  int
	VerticalMargin float64
	Samples        int

	EnvelopeScale     float64
	EnvelopeWobble    float64
	EnvelopeFrequency float64

	RoughMargin           float64
	RoughHeightMultiplier float64
	SegmentLength         float64

	TeeboxSize   Size
	TeeboxMargin float64

	GreenSize      Size
	GreenJitter    IntSpan
	GreenMargin    float64
	CupMargin      float64
	CupMaxDistance float64

	BunkerWidth  IntSpan
	BunkerHeight IntSpan
	WaterWidth   IntSpan
	WaterHeight  IntSpan
	HazardOffset Span

	PlacementRetries int
	LayoutAttempts   int
}

// DefaultParams returns the stock generator settings.
func DefaultParams() Params {
	return Params{
		CourseRect:     geom.Rect{Min: geom.Pt(100, 100), Max: geom.Pt(1100, 700)},
		ControlPoints:  4,
		VerticalMargin: 150,
		Samples:        1000,

		EnvelopeScale:     40,
		EnvelopeWobble:    0.15,
		EnvelopeFrequency: 8,

		RoughMargin:           40,
		RoughHeightMultiplier: 2.0,
		SegmentLength:         10,

		TeeboxSize:   Size{W: 30, H: 20},
		TeeboxMargin: 20,

		GreenSize:      Size{W: 60, H: 40},
		GreenJitter:    IntSpan{Min: -10, Max: 50},
		GreenMargin:    20,
		CupMargin:      5,
		CupMaxDistance: 0.85,

		BunkerWidth:  IntSpan{Min: 20, Max: 90},
		BunkerHeight: IntSpan{Min: 20, Max: 55},
		WaterWidth:   IntSpan{Min: 60, Max: 120},
		WaterHeight:  IntSpan{Min: 50, Max: 100},
		HazardOffset: Span{Min: 20, Max: 55},

		PlacementRetries: 200,
		LayoutAttempts:   10,
	}
}

// Envelope returns the width envelope described by p.
func (p Params) Envelope() Envelope {
	return Envelope{Scale: p.EnvelopeScale, Wobble: p.EnvelopeWobble, Frequency: p.EnvelopeFrequency}
}

// Validate checks that p can produce a hole.
func (p Params) Validate() error {
	if p.ControlPoints < 4 {
		return fmt.Errorf("control points must be at least 4, got %d", p.ControlPoints)
	}
	if p.CourseRect.Width() <= 0 || p.CourseRect.Height() <= 2*p.VerticalMargin {
		return fmt.Errorf("course rect %v too small for vertical margin %v", p.CourseRect, p.VerticalMargin)
	}
	if p.Samples < p.ControlPoints-1 {
		return fmt.Errorf("samples must be at least %d, got %d", p.ControlPoints-1, p.Samples)
	}
	if p.SegmentLength <= 0 {
		return fmt.Errorf("segment length must be positive")
	}
	if p.PlacementRetries <= 0 || p.LayoutAttempts <= 0 {
		return fmt.Errorf("placement retries and layout attempts must be positive")
	}
	if p.CupMaxDistance <= 0 || p.CupMaxDistance > 1 {
		return fmt.Errorf("cup max distance must be in (0, 1], got %v", p.CupMaxDistance)
	}
	if p.HazardOffset.Min > p.HazardOffset.Max {
		return fmt.Errorf("hazard offset range inverted")
	}
	return nil
}
