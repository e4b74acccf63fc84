package shot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/golfforbots/internal/course"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	t.Parallel()

	p := DefaultProfile()
	require.Equal(t, 14, p.Len())
	assert.Equal(t, "Driver", p.Clubs[0].Name)
	assert.Equal(t, "Lob Wedge", p.Clubs[13].Name)

	driver, err := p.Params(0, course.Teebox)
	require.NoError(t, err)
	assert.Equal(t, 250.0, driver.Distance)

	for i, c := range p.Clubs {
		tee := c.Lies[course.Teebox].Distance
		assert.Less(t, c.Lies[course.Bunker].Distance, c.Lies[course.Rough].Distance, c.Name)
		assert.Less(t, c.Lies[course.Rough].Distance, c.Lies[course.Fairway].Distance, c.Name)
		assert.LessOrEqual(t, c.Lies[course.Fairway].Distance, tee, c.Name)
		if i > 0 {
			assert.Less(t, tee, p.Clubs[i-1].Lies[course.Teebox].Distance, "clubs should get shorter")
		}
	}

	i, ok := p.Lookup("7 Iron")
	require.True(t, ok)
	assert.Equal(t, 7, i)

	_, err = p.Params(0, course.Green)
	assert.Error(t, err)
	_, err = p.Params(14, course.Teebox)
	assert.ErrorIs(t, err, ErrUnknownClub)
}

const twoClubs = `
club "Big" {
  lie "Teebox" {
    distance = 200
    horizontal_std = 10
    vertical_std = 5
  }
  lie "Fairway" {
    distance = 190
    horizontal_std = 10
    vertical_std = 5
  }
  lie "Rough" {
    distance = 170
    horizontal_std = 12
    vertical_std = 6
  }
  lie "Bunker" {
    distance = 120
    horizontal_std = 15
    vertical_std = 9
  }
}

club "Small" {
  lie "Teebox" {
    distance = 50
    horizontal_std = 0
    vertical_std = 0
  }
  lie "Fairway" {
    distance = 50
    horizontal_std = 1
    vertical_std = 1
  }
  lie "Rough" {
    distance = 40
    horizontal_std = 2
    vertical_std = 2
  }
  lie "Bunker" {
    distance = 30
    horizontal_std = 3
    vertical_std = 3
  }
}
`

func TestParseProfile(t *testing.T) {
	t.Parallel()

	p, err := ParseProfile([]byte(twoClubs), "clubs.hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{"Big", "Small"}, p.Names())

	small, err := p.Params(1, course.Teebox)
	require.NoError(t, err)
	assert.Equal(t, Params{Distance: 50}, small)
}

func TestParseProfileJSON(t *testing.T) {
	t.Parallel()

	src := `{
  "club": {
    "Only": {
      "lie": {
        "Teebox":  {"distance": 100, "horizontal_std": 8, "vertical_std": 5},
        "Fairway": {"distance": 97, "horizontal_std": 8, "vertical_std": 5},
        "Rough":   {"distance": 85, "horizontal_std": 7, "vertical_std": 6},
        "Bunker":  {"distance": 60, "horizontal_std": 7, "vertical_std": 5}
      }
    }
  }
}`
	p, err := ParseProfile([]byte(src), "profile.json")
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())

	rough, err := p.Params(0, course.Rough)
	require.NoError(t, err)
	assert.Equal(t, 85.0, rough.Distance)
}

func TestParseProfileErrors(t *testing.T) {
	t.Parallel()

	lie := func(name string, d, h, v string) string {
		return `lie "` + name + `" {
  distance = ` + d + `
  horizontal_std = ` + h + `
  vertical_std = ` + v + `
}
`
	}
	full := lie("Teebox", "100", "1", "1") + lie("Fairway", "100", "1", "1") + lie("Rough", "100", "1", "1") + lie("Bunker", "100", "1", "1")

	tests := []struct {
		name string
		src  string
	}{
		{"empty", ``},
		{"syntax", `club "A" {`},
		{"missing lie", `club "A" {` + lie("Teebox", "100", "1", "1") + `}`},
		{"duplicate club", `club "A" {` + full + `}` + "\n" + `club "A" {` + full + `}`},
		{"duplicate lie", `club "A" {` + full + lie("Rough", "100", "1", "1") + `}`},
		{"unplayable lie", `club "A" {` + full + lie("Green", "100", "1", "1") + `}`},
		{"zero distance", `club "A" {` + lie("Teebox", "0", "1", "1") + lie("Fairway", "100", "1", "1") + lie("Rough", "100", "1", "1") + lie("Bunker", "100", "1", "1") + `}`},
		{"negative std", `club "A" {` + lie("Teebox", "100", "-1", "1") + lie("Fairway", "100", "1", "1") + lie("Rough", "100", "1", "1") + lie("Bunker", "100", "1", "1") + `}`},
		{"missing attribute", `club "A" { lie "Teebox" { distance = 10 } }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "clubs.hcl")
	require.NoError(t, os.WriteFile(path, []byte(twoClubs), 0o600))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	_, err = LoadProfile(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)

	again, err := ParseProfile(DefaultProfileSource(), "default.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile().Names(), again.Names())
}
