// ABOUTME: Start menu for the calculator TUI
// ABOUTME: Picks the opening view and the formula revision before the dashboard starts

package menu

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// View is the screen the TUI opens on
type View int

const (
	ViewCalculator View = iota
	ViewCompare
	ViewStages
)

type option struct {
	label string
	value View
}

// Selection is the result of the start menu
type Selection struct {
	View     View
	Revision string
}

// Menu represents the start menu
type Menu struct {
	options   []option
	revisions []string
	selection Selection
}

// New creates a start menu preselecting the given revision
func New(defaultRevision string) *Menu {
	if defaultRevision == "" {
		defaultRevision = models.RevisionBaseline
	}
	return &Menu{
		options: []option{
			{label: "Interactive calculator", value: ViewCalculator},
			{label: "Compare baseline vs recuperated", value: ViewCompare},
			{label: "Process stages", value: ViewStages},
		},
		revisions: models.RevisionNames(),
		selection: Selection{View: ViewCalculator, Revision: defaultRevision},
	}
}

// Form builds the huh form bound to the menu's selection
func (m *Menu) Form() *huh.Form {
	views := make([]huh.Option[View], 0, len(m.options))
	for _, opt := range m.options {
		views = append(views, huh.NewOption(opt.label, opt.value))
	}

	revisions := make([]huh.Option[string], 0, len(m.revisions))
	for _, name := range m.revisions {
		revisions = append(revisions, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[View]().
				Title("Open").
				Options(views...).
				Value(&m.selection.View),
			huh.NewSelect[string]().
				Title("Formula revision").
				Options(revisions...).
				Value(&m.selection.Revision),
		),
	).WithTheme(huh.ThemeBase())
}

// Run displays the menu and returns the selection
func (m *Menu) Run() (Selection, error) {
	if err := m.Form().Run(); err != nil {
		return Selection{}, err
	}
	if _, err := models.LookupRevision(m.selection.Revision); err != nil {
		return Selection{}, fmt.Errorf("invalid selection: %w", err)
	}
	return m.selection, nil
}

// String returns the string representation of a View
func (v View) String() string {
	switch v {
	case ViewCalculator:
		return "calculator"
	case ViewCompare:
		return "compare"
	case ViewStages:
		return "stages"
	default:
		return "unknown"
	}
}
