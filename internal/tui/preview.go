package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/lox/golfforbots/internal/shot"
)

// Marker draws a single glyph over the cell containing At.
type Marker struct {
	At    geom.Point
	Glyph rune
	Style lipgloss.Style
}

// BallMarker marks the ball.
func BallMarker(s Styles, at geom.Point) Marker { return Marker{At: at, Glyph: '@', Style: s.Ball} }

// CupMarker marks the cup.
func CupMarker(s Styles, at geom.Point) Marker { return Marker{At: at, Glyph: '*', Style: s.Cup} }

// AimMarker marks where the current club would land without dispersion.
func AimMarker(s Styles, at geom.Point) Marker { return Marker{At: at, Glyph: '+', Style: s.Aim} }

// SpreadMarkers outline the landing distribution: one marker at each end of
// both principal axes, sigmas standard deviations from the mean.
func SpreadMarkers(s Styles, d shot.Distribution, sigmas float64) []Marker {
	out := make([]Marker, 0, 4)
	for _, axis := range d.Axes() {
		off := axis.Mul(sigmas)
		out = append(out,
			Marker{At: d.Mean.Add(off), Glyph: '.', Style: s.Aim},
			Marker{At: d.Mean.Sub(off), Glyph: '.', Style: s.Aim},
		)
	}
	return out
}

// Preview draws a layout with one styled glyph per cell x cell square.
// Later markers win when two share a cell; markers off the grid are
// dropped.
func Preview(l *course.Layout, r *lipgloss.Renderer, cell int, markers ...Marker) string {
	raster := l.Raster(cell)
	styles := NewStyles(r)

	overlay := make(map[[2]int]Marker, len(markers))
	for _, m := range markers {
		x, y := raster.CellOf(m.At)
		if m.At.X < 0 || m.At.Y < 0 || x >= raster.Width || y >= raster.Height {
			continue
		}
		overlay[[2]int{x, y}] = m
	}

	var b strings.Builder
	for y := range raster.Height {
		// Runs of the same terrain render as one styled span.
		var run strings.Builder
		runTerrain := course.Terrain(255)
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(styles.Terrain[runTerrain].Render(run.String()))
				run.Reset()
			}
		}
		for x := range raster.Width {
			t := raster.At(x, y)
			if m, ok := overlay[[2]int{x, y}]; ok {
				flush()
				b.WriteString(m.Style.Inherit(styles.Terrain[t]).Render(string(m.Glyph)))
				continue
			}
			if t != runTerrain {
				flush()
				runTerrain = t
			}
			run.WriteByte(t.Glyph())
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}
