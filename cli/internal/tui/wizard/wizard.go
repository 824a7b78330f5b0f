// ABOUTME: Sizing input wizard as a bubbletea model
// ABOUTME: Uses huh forms with a step indicator to collect production, purity, pressure, and revision

package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/icons"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/styles"
)

// CompleteMsg is sent when the wizard finishes successfully
type CompleteMsg struct {
	Request models.SizingRequest
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// Wizard collects a sizing request as a bubbletea model
type Wizard struct {
	request models.SizingRequest
	form    *huh.Form
	step    int
	width   int

	// Form field values bound to huh
	production string
	purity     float64
	pressure   float64
	revision   string
}

// Step names for progress indicator
var stepNames = []string{"Production", "Operating Point"}

// createTheme returns a huh theme in the calculator palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	cyan := styles.Primary
	cyanLight := styles.Accent
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(cyan).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(cyan)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(cyanLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(cyan).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(cyan).
		Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(cyan)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(cyan)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// purityOptions labels each O2 tier with the nitrogen purity it yields
func purityOptions() []huh.Option[float64] {
	opts := make([]huh.Option[float64], 0, len(models.PurityOptions))
	for _, p := range models.PurityOptions {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%g%% N₂ (%g%% O₂)", 100-p, p), p))
	}
	return opts
}

func pressureOptions() []huh.Option[float64] {
	opts := make([]huh.Option[float64], 0, len(models.PressureOptions))
	for _, p := range models.PressureOptions {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%g bar", p), p))
	}
	return opts
}

func revisionOptions() []huh.Option[string] {
	names := models.RevisionNames()
	opts := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		opts = append(opts, huh.NewOption(name, name))
	}
	return opts
}

// New creates a wizard prefilled from the current request
func New(current models.SizingRequest) *Wizard {
	if current.TargetProductionLitersPerDay <= 0 {
		current.SizingInputs = models.DefaultSizingInputs()
	}
	if current.Revision == "" {
		current.Revision = models.RevisionBaseline
	}

	w := &Wizard{
		request:    current,
		step:       1,
		production: strconv.FormatFloat(current.TargetProductionLitersPerDay, 'g', -1, 64),
		purity:     current.OxygenPurityPercent,
		pressure:   current.FeedPressureBar,
		revision:   current.Revision,
	}

	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target LN₂ production (L/day)").
				Description("Type a number and press Enter to continue").
				Placeholder("e.g., 10").
				CharLimit(8).
				Value(&w.production).
				Validate(validateProduction),
		).Title("Step 1: Production").
			Description("How much liquid nitrogen should the generator make per day?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Nitrogen purity").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(purityOptions()...).
				Value(&w.purity),
			huh.NewSelect[float64]().
				Title("Membrane feed pressure").
				Description("Higher pressure needs fewer modules").
				Options(pressureOptions()...).
				Value(&w.pressure),
			huh.NewSelect[string]().
				Title("Formula revision").
				Options(revisionOptions()...).
				Value(&w.revision),
		).Title("Step 2: Operating Point").
			Description("Pick the membrane operating point and the cryocooler estimate"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return w, func() tea.Msg { return CancelledMsg{} }
	}
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = msg.Width
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.request.TargetProductionLitersPerDay, _ = strconv.ParseFloat(strings.TrimSpace(w.production), 64)
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.request.OxygenPurityPercent = w.purity
		w.request.FeedPressureBar = w.pressure
		w.request.Revision = w.revision
		req := w.request
		return w, func() tea.Msg {
			return CompleteMsg{Request: req}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	return w.renderProgress() + "\n\n" + w.form.View()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := max(60, w.width-1)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │"
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	progressBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filledWidth))

	title := "Sizing Inputs"
	topBorder := "┌─ " + titleStyle.Render(title) + " " + strings.Repeat("─", max(0, width-5-lipgloss.Width(title))) + "┐"
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │"
	progressLinePadded := "│  " + progressBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

// Request returns the collected sizing request
func (w *Wizard) Request() models.SizingRequest {
	return w.request
}

// validateProduction accepts any positive finite rate. The slider tops out at
// 50 L/day but typed values may exceed it.
func validateProduction(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
