// ABOUTME: Key bindings for the calculator TUI
// ABOUTME: Implements help.KeyMap so the footer and help overlay stay in sync with the handlers

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the app responds to
type KeyMap struct {
	Decrease     key.Binding
	Increase     key.Binding
	DecreaseFast key.Binding
	IncreaseFast key.Binding
	PurityTier   key.Binding
	Purity       key.Binding
	Pressure     key.Binding
	Revision     key.Binding
	Compare      key.Binding
	Edit         key.Binding
	Stages       key.Binding
	Calibration  key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the calculator bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-1 L/day"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+1 L/day"),
		),
		DecreaseFast: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("shift+←", "-5 L/day"),
		),
		IncreaseFast: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("shift+→", "+5 L/day"),
		),
		PurityTier: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "purity tier"),
		),
		Purity: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "purity"),
		),
		Pressure: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "pressure"),
		),
		Revision: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "revision"),
		),
		Compare: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compare"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Stages: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stages"),
		),
		Calibration: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "calibration"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Decrease, k.Increase, k.Purity, k.Pressure, k.Revision, k.Compare, k.Edit, k.Stages, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Decrease, k.Increase, k.DecreaseFast, k.IncreaseFast},
		{k.PurityTier, k.Purity, k.Pressure, k.Revision},
		{k.Compare, k.Edit, k.Stages, k.Calibration},
		{k.Help, k.Back, k.Quit},
	}
}

// screenHelp is the short help for screens other than the calculator
func (k KeyMap) screenHelp(screen Screen) []key.Binding {
	switch screen {
	case ScreenComparison:
		return []key.Binding{k.Revision, k.Edit, k.Back, k.Quit}
	case ScreenStages:
		return []key.Binding{k.Decrease, k.Increase, k.Purity, k.Pressure, k.Back, k.Quit}
	case ScreenWizard:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	case ScreenCalibration:
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	default:
		return k.ShortHelp()
	}
}
