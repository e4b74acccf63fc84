package course

import (
	"strings"

	"github.com/lox/golfforbots/internal/geom"
)

// Classify returns the terrain at p. Overlapping regions resolve by
// priority: water, bunker, green, teebox, fairway, rough. Points outside the
// play area or in no region are out of bounds.
func (l *Layout) Classify(p geom.Point) Terrain {
	if p.X < 0 || p.Y < 0 || p.X >= PlayWidth || p.Y >= PlayHeight {
		return OutOfBounds
	}
	for _, w := range l.Water {
		if w.Contains(p) {
			return WaterHazard
		}
	}
	for _, b := range l.Bunkers {
		if b.Contains(p) {
			return Bunker
		}
	}
	if l.Green.Contains(p) {
		return Green
	}
	if l.Teebox.Contains(p) {
		return Teebox
	}
	if l.fairway.contains(p) {
		return Fairway
	}
	if l.rough.contains(p) {
		return Rough
	}
	return OutOfBounds
}

// Raster is a grid of terrain classes sampled at cell centres, row-major.
type Raster struct {
	Cell   int
	Width  int
	Height int
	Cells  []Terrain
}

// At returns the terrain of the cell at column x, row y. Cells outside the
// grid are out of bounds.
func (r *Raster) At(x, y int) Terrain {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return OutOfBounds
	}
	return r.Cells[y*r.Width+x]
}

// CellOf returns the grid cell containing p.
func (r *Raster) CellOf(p geom.Point) (int, int) {
	return int(p.X) / r.Cell, int(p.Y) / r.Cell
}

// Codes returns the raster as terrain codes, suitable for observations.
func (r *Raster) Codes() []uint8 {
	out := make([]uint8, len(r.Cells))
	for i, t := range r.Cells {
		out[i] = uint8(t)
	}
	return out
}

// Count returns how many cells carry terrain t.
func (r *Raster) Count(t Terrain) int {
	n := 0
	for _, c := range r.Cells {
		if c == t {
			n++
		}
	}
	return n
}

// String draws the raster with one ASCII glyph per cell.
func (r *Raster) String() string {
	var b strings.Builder
	b.Grow((r.Width + 1) * r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			b.WriteByte(r.At(x, y).Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Raster classifies the centre of every cell x cell square of the play
// area. Results are cached per cell size.
func (l *Layout) Raster(cell int) *Raster {
	if cell < 1 {
		cell = 1
	}
	l.rasterMu.Lock()
	defer l.rasterMu.Unlock()
	if r, ok := l.rasters[cell]; ok {
		return r
	}

	w, h := PlayWidth/cell, PlayHeight/cell
	r := &Raster{Cell: cell, Width: w, Height: h, Cells: make([]Terrain, w*h)}
	half := float64(cell) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := geom.Pt(float64(x*cell)+half, float64(y*cell)+half)
			r.Cells[y*w+x] = l.Classify(p)
		}
	}
	if l.rasters == nil {
		l.rasters = make(map[int]*Raster)
	}
	l.rasters[cell] = r
	return r
}
