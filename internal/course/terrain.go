package course

import (
	"fmt"
	"strings"
)

// Terrain is the class of ground at a point on the hole.
type Terrain uint8

const (
	OutOfBounds Terrain = iota
	Teebox
	Fairway
	Rough
	Green
	Bunker
	WaterHazard
)

var terrainNames = [...]string{
	OutOfBounds: "Out of Bounds",
	Teebox:      "Teebox",
	Fairway:     "Fairway",
	Rough:       "Rough",
	Green:       "Green",
	Bunker:      "Bunker",
	WaterHazard: "Water Hazard",
}

// Lies are the terrains a stroke can be played from, in observation order.
var Lies = []Terrain{Teebox, Fairway, Rough, Bunker}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("Terrain(%d)", uint8(t))
}

var terrainGlyphs = [...]byte{
	OutOfBounds: ' ',
	Teebox:      'T',
	Fairway:     '=',
	Rough:       ':',
	Green:       'G',
	Bunker:      'o',
	WaterHazard: '~',
}

// Glyph is the ASCII character used to draw t.
func (t Terrain) Glyph() byte {
	if int(t) < len(terrainGlyphs) {
		return terrainGlyphs[t]
	}
	return '?'
}

// IsPenalty reports whether a ball coming to rest on t costs a penalty and
// is returned to where it was struck from.
func (t Terrain) IsPenalty() bool {
	return t == OutOfBounds || t == WaterHazard
}

// IsLie reports whether t is one of the playable lies.
func (t Terrain) IsLie() bool {
	for _, l := range Lies {
		if l == t {
			return true
		}
	}
	return false
}

// ParseTerrain accepts the display name in any case, with spaces,
// underscores or dashes, e.g. "water hazard", "Water_Hazard", "out-of-bounds".
func ParseTerrain(s string) (Terrain, error) {
	key := normalizeName(s)
	for i, name := range terrainNames {
		if normalizeName(name) == key {
			return Terrain(i), nil
		}
	}
	return OutOfBounds, fmt.Errorf("unknown terrain %q", s)
}

func normalizeName(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

func (t Terrain) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Terrain) UnmarshalText(b []byte) error {
	v, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
