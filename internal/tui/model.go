package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/golfforbots/internal/game"
	"github.com/lox/golfforbots/internal/geom"
)

const (
	aimStep      = 5 * math.Pi / 180
	fineAimStep  = math.Pi / 180
	logLines     = 6
	spreadSigmas = 2
	// aimDistance places the aim point in front of the ball; only its
	// direction affects the stroke.
	aimDistance = 100
)

// Model is the Bubble Tea model for interactive play on one engine.
type Model struct {
	engine    *game.Engine
	logger    *log.Logger
	renderer  *lipgloss.Renderer
	styles    Styles
	formatter *game.EventFormatter
	cell      int

	keys     keyMap
	help     help.Model
	logView  viewport.Model
	entries  []string
	aim      float64
	err      error
	quitting bool
}

// NewModel creates a play model drawing the hole with cell-sized glyphs.
func NewModel(engine *game.Engine, r *lipgloss.Renderer, cell int, logger *log.Logger) *Model {
	vp := viewport.New(80, logLines)
	m := &Model{
		engine:    engine,
		logger:    logger.WithPrefix("tui"),
		renderer:  r,
		styles:    NewStyles(r),
		formatter: game.NewEventFormatter(game.FormattingOptions{}),
		cell:      cell,
		keys:      defaultKeyMap(),
		help:      help.New(),
		logView:   vp,
	}
	engine.GetEventBus().Subscribe(game.SubscriberFunc(m.onEvent))
	m.addEntry(fmt.Sprintf("Hole %d: par %d, %.0f yds to the cup",
		engine.Hole(), engine.Par(), engine.Ball().Distance(engine.Layout().Cup())))
	m.aimAtCup()
	return m
}

// Aim returns the aim direction in radians.
func (m *Model) Aim() float64 { return m.aim }

// AimPoint returns the point the next stroke is aimed at.
func (m *Model) AimPoint() geom.Point {
	return m.engine.Ball().Add(geom.Unit(m.aim).Mul(aimDistance))
}

// Entries returns the stroke log.
func (m *Model) Entries() []string { return m.entries }

func (m *Model) onEvent(event game.GameEvent) {
	if text := m.formatter.Format(event); text != "" {
		m.addEntry(text)
	}
}

func (m *Model) addEntry(text string) {
	m.entries = append(m.entries, text)
	m.logView.SetContent(m.styles.Log.Render(strings.Join(m.entries, "\n")))
	m.logView.GotoBottom()
}

func (m *Model) aimAtCup() {
	m.aim = m.engine.Layout().Cup().Sub(m.engine.Ball()).Angle()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logView.Width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.PrevClub):
			m.err = m.engine.PrevClub()
		case key.Matches(msg, m.keys.NextClub):
			m.err = m.engine.NextClub()
		case key.Matches(msg, m.keys.AimLeft):
			m.aim -= aimStep
		case key.Matches(msg, m.keys.AimRight):
			m.aim += aimStep
		case key.Matches(msg, m.keys.FineLeft):
			m.aim -= fineAimStep
		case key.Matches(msg, m.keys.FineRight):
			m.aim += fineAimStep
		case key.Matches(msg, m.keys.Strike):
			m.strike()
		case key.Matches(msg, m.keys.NewHole):
			if err := m.engine.NewHole(); err != nil {
				m.err = err
			} else {
				m.aimAtCup()
			}
		}
		m.aim = math.Mod(m.aim+2*math.Pi, 2*math.Pi)
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

func (m *Model) strike() {
	if m.engine.IsComplete() {
		m.err = game.ErrHoleComplete
		return
	}
	res, err := m.engine.Stroke(m.AimPoint())
	if err != nil {
		m.err = err
		m.logger.Error("Stroke failed", "error", err)
		return
	}
	if res.Outcome == game.OutcomeAdvanced {
		m.aimAtCup()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	e := m.engine

	status := fmt.Sprintf("Hole %d  Par %d  Score %d  Lie %s  Club %s",
		e.Hole(), e.Par(), e.Score(), e.Lie(), e.ClubName())
	markers := []Marker{CupMarker(m.styles, e.Layout().Cup())}
	if !e.IsComplete() {
		if d, err := e.Distribution(m.AimPoint()); err == nil {
			status += fmt.Sprintf(" (%.0f yds)  Aim %.0f°", d.Params.Distance, m.aim*180/math.Pi)
			markers = append(markers, SpreadMarkers(m.styles, d, spreadSigmas)...)
			markers = append(markers, AimMarker(m.styles, d.Mean))
		}
	}
	markers = append(markers, BallMarker(m.styles, e.Ball()))

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(status))
	b.WriteString("\n")
	b.WriteString(Preview(e.Layout(), m.renderer, m.cell, markers...))
	b.WriteString(m.logView.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(m.err.Error()))
	case e.IsComplete():
		b.WriteString(m.styles.Success.Render(fmt.Sprintf("Holed in %d (%s). Press n for a new hole.",
			e.Score(), game.ToParString(e.Score()-e.Par()))))
	default:
		b.WriteString(m.styles.Info.Render(fmt.Sprintf("%.0f yds to the cup", e.Ball().Distance(e.Layout().Cup()))))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts an interactive session.
func Run(m *Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
