package course

import (
	"math"

	"github.com/lox/golfforbots/internal/geom"
)

// Description is the geometric summary a renderer needs to draw a hole.
// Ribbons are given as centreline samples plus half-widths.
type Description struct {
	Par        int `json:"par"`
	Difficulty int `json:"difficulty"`
	PlayArea   struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"play_area"`
	Tee           geom.Point          `json:"tee"`
	Cup           geom.Point          `json:"cup"`
	ControlPoints []geom.Point        `json:"control_points"`
	Fairway       RibbonDescription   `json:"fairway"`
	Rough         RibbonDescription   `json:"rough"`
	Teebox        RegionDescription   `json:"teebox"`
	Green         RegionDescription   `json:"green"`
	Bunkers       []RegionDescription `json:"bunkers"`
	Water         []RegionDescription `json:"water"`
}

// RibbonDescription describes a fairway or rough ribbon.
type RibbonDescription struct {
	Path          []geom.Point `json:"path"`
	HalfWidths    []float64    `json:"half_widths"`
	SegmentLength float64      `json:"segment_length"`
	Multiplier    float64      `json:"multiplier"`
}

// RegionDescription describes one shape. Angle is in degrees.
type RegionDescription struct {
	Terrain Terrain    `json:"terrain"`
	Shape   string     `json:"shape"`
	Center  geom.Point `json:"center"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Angle   float64    `json:"angle"`
}

func describeRegion(r Region) RegionDescription {
	return RegionDescription{
		Terrain: r.Terrain,
		Shape:   r.Shape.String(),
		Center:  r.Center,
		Width:   r.Width,
		Height:  r.Height,
		Angle:   degrees(r.Angle),
	}
}

// Description returns the layout's rendering description.
func (l *Layout) Description() Description {
	d := Description{
		Par:           l.Par,
		Difficulty:    l.Difficulty,
		Tee:           l.TeeAnchor(),
		Cup:           l.Cup(),
		ControlPoints: l.ControlPoints,
		Fairway: RibbonDescription{
			Path:          l.Fairway,
			HalfWidths:    l.FairwayWidths,
			SegmentLength: l.Params.SegmentLength,
			Multiplier:    1,
		},
		Rough: RibbonDescription{
			Path:          l.Rough,
			HalfWidths:    l.RoughWidths,
			SegmentLength: l.Params.SegmentLength,
			Multiplier:    l.Params.RoughHeightMultiplier,
		},
		Teebox:  describeRegion(l.Teebox),
		Green:   describeRegion(l.Green),
		Bunkers: make([]RegionDescription, 0, len(l.Bunkers)),
		Water:   make([]RegionDescription, 0, len(l.Water)),
	}
	d.PlayArea.Width = PlayWidth
	d.PlayArea.Height = PlayHeight
	for _, b := range l.Bunkers {
		d.Bunkers = append(d.Bunkers, describeRegion(b))
	}
	for _, w := range l.Water {
		d.Water = append(d.Water, describeRegion(w))
	}
	return d
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
