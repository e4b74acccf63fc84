package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevClub  key.Binding
	NextClub  key.Binding
	AimLeft   key.Binding
	AimRight  key.Binding
	FineLeft  key.Binding
	FineRight key.Binding
	Strike    key.Binding
	NewHole   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevClub:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "longer club")),
		NextClub:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "shorter club")),
		AimLeft:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "aim left")),
		AimRight:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "aim right")),
		FineLeft:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "nudge left")),
		FineRight: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "nudge right")),
		Strike:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "strike")),
		NewHole:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new hole")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevClub, k.NextClub, k.AimLeft, k.AimRight, k.Strike, k.NewHole, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevClub, k.NextClub},
		{k.AimLeft, k.AimRight, k.FineLeft, k.FineRight},
		{k.Strike, k.NewHole},
		{k.Help, k.Quit},
	}
}
