// Package shot models where a struck ball comes to rest: per-club, per-lie
// dispersion parameters loaded from a profile and a bivariate normal landing
// distribution oriented along the aim line.
package shot

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/golfforbots/internal/course"
)

//go:embed default_profile.hcl
var defaultProfileHCL []byte

// ErrUnknownClub is returned for a club index or name not in the profile.
var ErrUnknownClub = errors.New("unknown club")

// Params are the dispersion parameters of one club from one lie.
type Params struct {
	Distance      float64 `json:"distance"`
	HorizontalStd float64 `json:"horizontal_std"`
	VerticalStd   float64 `json:"vertical_std"`
}

// Club is a named club with parameters for every playable lie.
type Club struct {
	Name string
	Lies map[course.Terrain]Params
}

// Profile is an ordered set of clubs. The order is the club-selection cycle.
type Profile struct {
	Clubs []Club
	index map[string]int
}

type profileFile struct {
	Clubs []clubBlock `hcl:"club,block"`
}

type clubBlock struct {
	Name string     `hcl:"name,label"`
	Lies []lieBlock `hcl:"lie,block"`
}

type lieBlock struct {
	Name          string  `hcl:"name,label"`
	Distance      float64 `hcl:"distance"`
	HorizontalStd float64 `hcl:"horizontal_std"`
	VerticalStd   float64 `hcl:"vertical_std"`
}

// DefaultProfile returns the built-in 14 club profile.
func DefaultProfile() *Profile {
	p, err := ParseProfile(defaultProfileHCL, "default_profile.hcl")
	if err != nil {
		panic(fmt.Sprintf("embedded profile is invalid: %v", err))
	}
	return p
}

// DefaultProfileSource returns the HCL text of the built-in profile.
func DefaultProfileSource() []byte {
	return append([]byte(nil), defaultProfileHCL...)
}

// LoadProfile reads a profile from an HCL file, or from HCL-flavoured JSON
// when the file name ends in .json.
func LoadProfile(filename string) (*Profile, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return ParseProfile(src, filename)
}

// ParseProfile decodes and validates a profile. The filename selects the
// syntax and is used in diagnostics.
func ParseProfile(src []byte, filename string) (*Profile, error) {
	parser := hclparse.NewParser()
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile: %s", diags.Error())
	}

	var raw profileFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile: %s", diags.Error())
	}

	p := &Profile{Clubs: make([]Club, 0, len(raw.Clubs))}
	for _, cb := range raw.Clubs {
		club := Club{Name: cb.Name, Lies: make(map[course.Terrain]Params, len(cb.Lies))}
		for _, lb := range cb.Lies {
			lie, err := course.ParseTerrain(lb.Name)
			if err != nil || !lie.IsLie() {
				return nil, fmt.Errorf("club %q: %q is not a playable lie", cb.Name, lb.Name)
			}
			if _, dup := club.Lies[lie]; dup {
				return nil, fmt.Errorf("club %q: duplicate lie %q", cb.Name, lb.Name)
			}
			club.Lies[lie] = Params{
				Distance:      lb.Distance,
				HorizontalStd: lb.HorizontalStd,
				VerticalStd:   lb.VerticalStd,
			}
		}
		p.Clubs = append(p.Clubs, club)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that every club is unique and has sane parameters for
// every playable lie.
func (p *Profile) Validate() error {
	if len(p.Clubs) == 0 {
		return errors.New("profile has no clubs")
	}
	index := make(map[string]int, len(p.Clubs))
	for i, c := range p.Clubs {
		if c.Name == "" {
			return fmt.Errorf("club %d has no name", i)
		}
		if _, dup := index[c.Name]; dup {
			return fmt.Errorf("duplicate club %q", c.Name)
		}
		index[c.Name] = i
		for _, lie := range course.Lies {
			params, ok := c.Lies[lie]
			if !ok {
				return fmt.Errorf("club %q: missing lie %q", c.Name, lie)
			}
			if params.Distance <= 0 {
				return fmt.Errorf("club %q lie %q: distance must be positive", c.Name, lie)
			}
			if params.HorizontalStd < 0 || params.VerticalStd < 0 {
				return fmt.Errorf("club %q lie %q: standard deviations must not be negative", c.Name, lie)
			}
		}
	}
	p.index = index
	return nil
}

// Len returns the number of clubs.
func (p *Profile) Len() int { return len(p.Clubs) }

// Lookup returns the index of the named club.
func (p *Profile) Lookup(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Params returns the dispersion parameters of club i from lie.
func (p *Profile) Params(club int, lie course.Terrain) (Params, error) {
	if club < 0 || club >= len(p.Clubs) {
		return Params{}, fmt.Errorf("%w: index %d", ErrUnknownClub, club)
	}
	params, ok := p.Clubs[club].Lies[lie]
	if !ok {
		return Params{}, fmt.Errorf("club %q has no parameters for lie %q", p.Clubs[club].Name, lie)
	}
	return params, nil
}

// Names returns the club names in cycle order.
func (p *Profile) Names() []string {
	names := make([]string, len(p.Clubs))
	for i, c := range p.Clubs {
		names[i] = c.Name
	}
	return names
}
