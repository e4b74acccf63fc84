package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/golfforbots/internal/course"
)

// Styles holds every style the UI draws with, bound to one renderer.
type Styles struct {
	Header  lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Log     lipgloss.Style

	Ball lipgloss.Style
	Cup  lipgloss.Style
	Aim  lipgloss.Style

	Terrain map[course.Terrain]lipgloss.Style
}

// NewStyles builds the palette for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	terrain := func(fg, bg string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
	}
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")).
			Bold(true).
			Padding(0, 1),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Log:     r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),

		Ball: r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		Cup:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Aim:  r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),

		Terrain: map[course.Terrain]lipgloss.Style{
			course.OutOfBounds: terrain("#3A3A3A", "#1C1C1C"),
			course.Teebox:      terrain("#FAFAFA", "#558B2F"),
			course.Fairway:     terrain("#C5E1A5", "#689F38"),
			course.Rough:       terrain("#33691E", "#33691E"),
			course.Green:       terrain("#E8F5E9", "#81C784"),
			course.Bunker:      terrain("#8D6E63", "#FFE0B2"),
			course.WaterHazard: terrain("#E3F2FD", "#1565C0"),
		},
	}
}
