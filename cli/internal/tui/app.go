// ABOUTME: Root bubbletea model for the calculator TUI
// ABOUTME: Holds the sizing inputs, recomputes on every change, and routes keys to screens

package tui

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/comparison"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/dashboard"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/debuglog"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/filepicker"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/icons"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/menu"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/recentfiles"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/samples"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/stages"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/styles"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenStages
	ScreenComparison
	ScreenWizard
	ScreenCalibration
)

// Layout constants
const (
	minTerminalWidth = 80 // Frame never renders narrower than this
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// App is the root model for the TUI
type App struct {
	service  *services.SizingService
	scenario *services.ScenarioCalculator
	keys     KeyMap
	help     help.Model
	showHelp bool

	screen Screen
	width  int
	height int

	request    models.SizingRequest
	result     *models.SizingResponse
	err        error
	curve      []float64
	curveKey   string
	comparison *models.ScenarioComparison

	dashboard    *dashboard.Dashboard
	compView     *comparison.Comparison
	wizardScreen *wizard.Wizard
	picker       *filepicker.FilePicker

	// Calibration sources offered by the picker
	recent     *recentfiles.RecentFiles
	samplesDir string
}

// New creates a calculator app opening on the selected view
func New(service *services.SizingService, sel menu.Selection) *App {
	revision := sel.Revision
	if revision == "" {
		revision = service.DefaultRevision()
	}

	a := &App{
		service:  service,
		scenario: services.NewScenarioCalculator(service),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		screen:   ScreenDashboard,
		request: models.SizingRequest{
			SizingInputs: models.DefaultSizingInputs(),
			Revision:     revision,
		},
	}
	a.dashboard = dashboard.New(a.request, a.innerWidth(), a.contentHeight())
	a.recompute()

	switch sel.View {
	case menu.ViewStages:
		a.screen = ScreenStages
	case menu.ViewCompare:
		a.compare()
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(a.innerWidth(), a.contentHeight())
		if a.comparison != nil {
			a.compView = comparison.New(a.comparison, a.innerWidth())
		}
		if a.wizardScreen != nil {
			a.wizardScreen.SetWidth(a.frameWidth() - 1)
			return a.updateWizard(msg)
		}
		if a.picker != nil {
			a.picker.Update(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()})
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenComparison:
			return a.updateComparison(msg)
		case ScreenCalibration:
			return a.updatePicker(msg)
		default:
			return a.updateCalculator(msg)
		}

	case wizard.CompleteMsg:
		a.wizardScreen = nil
		a.screen = ScreenDashboard
		a.request = msg.Request
		a.recompute()
		return a, nil

	case wizard.CancelledMsg:
		a.wizardScreen = nil
		a.screen = ScreenDashboard
		return a, nil

	case filepicker.TableSelectedMsg:
		a.applyTable(msg.Path, msg.Table)
		return a, nil

	case filepicker.CancelledMsg:
		a.picker = nil
		a.screen = ScreenDashboard
		return a, nil

	default:
		// huh forms need their internal messages
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

// updateCalculator handles keys on the dashboard and stages screens
func (a *App) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
	case key.Matches(msg, a.keys.Decrease):
		a.stepProduction(-1)
	case key.Matches(msg, a.keys.Increase):
		a.stepProduction(1)
	case key.Matches(msg, a.keys.DecreaseFast):
		a.stepProduction(-5)
	case key.Matches(msg, a.keys.IncreaseFast):
		a.stepProduction(5)
	case key.Matches(msg, a.keys.PurityTier):
		idx := int(msg.Runes[0] - '1')
		a.request.OxygenPurityPercent = models.PurityOptions[idx]
		a.recompute()
	case key.Matches(msg, a.keys.Purity):
		a.request.OxygenPurityPercent = cycle(models.PurityOptions, a.request.OxygenPurityPercent)
		a.recompute()
	case key.Matches(msg, a.keys.Pressure):
		a.request.FeedPressureBar = cycle(models.PressureOptions, a.request.FeedPressureBar)
		a.recompute()
	case key.Matches(msg, a.keys.Revision):
		a.request.Revision = cycle(models.RevisionNames(), a.request.Revision)
		a.recompute()
	case key.Matches(msg, a.keys.Compare):
		a.compare()
	case key.Matches(msg, a.keys.Edit):
		return a, a.runWizard()
	case key.Matches(msg, a.keys.Calibration):
		return a, a.openPicker()
	case key.Matches(msg, a.keys.Stages):
		if a.screen == ScreenStages {
			a.screen = ScreenDashboard
		} else {
			a.screen = ScreenStages
		}
	case key.Matches(msg, a.keys.Back):
		a.screen = ScreenDashboard
		a.showHelp = false
	}
	return a, nil
}

func (a *App) updateComparison(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Back):
		a.screen = ScreenDashboard
		a.comparison = nil
		a.compView = nil
	case key.Matches(msg, a.keys.Edit):
		return a, a.runWizard()
	case key.Matches(msg, a.keys.Revision):
		// Swap sides so the recuperated revision can be the baseline
		if a.comparison != nil {
			input := models.ScenarioInput{
				Baseline: models.SizingRequest{SizingInputs: a.comparison.Proposed.Inputs, Revision: a.comparison.Proposed.Revision},
				Proposed: models.SizingRequest{SizingInputs: a.comparison.Baseline.Inputs, Revision: a.comparison.Baseline.Revision},
			}
			a.compareInput(input)
		}
	}
	return a, nil
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.picker == nil {
		return a, nil
	}
	model, cmd := a.picker.Update(msg)
	a.picker = model.(*filepicker.FilePicker)
	return a, cmd
}

// openPicker shows the calibration picker with recent and sample tables
func (a *App) openPicker() tea.Cmd {
	var recent []string
	if a.recent != nil {
		recent = a.recent.List()
	}
	found, err := samples.Discover(a.samplesDir)
	if err != nil {
		debuglog.Error("discover samples in "+a.samplesDir, err)
	}

	a.picker = filepicker.New(recent, found)
	a.picker.Update(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()})
	a.screen = ScreenCalibration
	return a.picker.Init()
}

// applyTable swaps the calibration table under the calculator and resizes
func (a *App) applyTable(source string, table models.PerformanceTable) {
	svc, err := services.NewSizingService(table, a.service.DefaultRevision())
	if err != nil {
		debuglog.Error("apply calibration "+source, err)
		if a.picker != nil {
			a.picker.SetError(err.Error())
		}
		return
	}

	a.service = svc
	a.scenario = services.NewScenarioCalculator(svc)
	a.picker = nil
	a.screen = ScreenDashboard
	a.curveKey = ""
	a.recompute()

	if a.recent != nil && source != services.BuiltinCalibrationSource {
		if err := a.recent.Add(source); err != nil {
			debuglog.Error("remember calibration "+source, err)
		}
	}
	debuglog.Log("calibration table %s %s from %s", table.Model, table.Version, source)
}

// stepProduction nudges production and clamps it to the slider range
func (a *App) stepProduction(delta float64) {
	p := a.request.TargetProductionLitersPerDay + delta
	a.request.TargetProductionLitersPerDay = max(models.MinProduction, min(models.MaxProduction, p))
	a.recompute()
}

// cycle returns the option after current, wrapping around. Values not in the
// list restart at the first option.
func cycle[T comparable](options []T, current T) T {
	idx := slices.Index(options, current)
	return options[(idx+1)%len(options)]
}

// recompute sizes the current request synchronously. Failures leave the
// dashboard showing placeholders.
func (a *App) recompute() {
	resp, err := a.service.Size(a.request)
	if err != nil {
		debuglog.Error("size "+a.request.String(), err)
		a.result, a.err = nil, err
	} else {
		a.result, a.err = &resp, nil
	}

	curveKey := fmt.Sprintf("%g/%g/%s", a.request.OxygenPurityPercent, a.request.FeedPressureBar, a.request.Revision)
	if curveKey != a.curveKey {
		a.curve = dashboard.PowerCurve(func(production float64) (float64, error) {
			req := a.request
			req.TargetProductionLitersPerDay = production
			r, err := a.service.Size(req)
			return r.Outputs.TotalPowerKW, err
		})
		a.curveKey = curveKey
	}

	a.dashboard.Update(a.request, a.result, a.err, a.curve)
	debuglog.Log("recomputed %s revision=%s err=%v", a.request.String(), a.request.Revision, err)
}

// compare runs the recuperator what-if for the current inputs
func (a *App) compare() {
	a.compareInput(services.RecuperatorScenario(a.request.SizingInputs))
}

func (a *App) compareInput(input models.ScenarioInput) {
	result, err := a.scenario.Compare(input)
	if err != nil {
		debuglog.Error("compare", err)
		a.err = err
		a.comparison = nil
		a.compView = comparison.New(nil, a.innerWidth())
	} else {
		a.comparison = &result
		a.compView = comparison.New(a.comparison, a.innerWidth())
	}
	a.screen = ScreenComparison
}

// runWizard transitions to the input form
func (a *App) runWizard() tea.Cmd {
	a.wizardScreen = wizard.New(a.request)
	a.wizardScreen.SetWidth(a.frameWidth() - 1)
	a.screen = ScreenWizard
	return a.wizardScreen.Init()
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenStages:
		content = a.viewStages()
	case ScreenComparison:
		content = a.viewComparison()
	case ScreenWizard:
		content = a.viewWizard()
	case ScreenCalibration:
		content = a.viewPicker()
	default:
		content = a.viewDashboard()
	}

	if a.showHelp && a.screen != ScreenWizard && a.screen != ScreenCalibration {
		content += "\n" + a.help.FullHelpView(a.keys.FullHelp())
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewDashboard() string {
	return styles.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())
}

func (a *App) viewStages() string {
	resp, err := a.service.Stages(a.request)
	if err != nil {
		return styles.StatusCritical.Render("Error: " + err.Error())
	}
	return stages.View(resp.Stages, a.contentWidth())
}

func (a *App) viewComparison() string {
	if a.compView == nil {
		return ""
	}
	body := a.compView.View()
	if a.comparison == nil && a.err != nil {
		body = styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n" + body
	}
	return styles.ActivePanel.Width(a.dashboardWidth()).Render(body)
}

func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

func (a *App) viewPicker() string {
	if a.picker == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.dashboardWidth()).Render(a.picker.View())
}

// frameWidth is the header/footer width. One column is left free to avoid
// wrapping on terminals that reserve the last cell.
func (a *App) frameWidth() int {
	return max(minTerminalWidth, a.width-1)
}

// dashboardWidth is the panel content width inside the frame
func (a *App) dashboardWidth() int {
	return a.frameWidth() - panelPadding - 2
}

// innerWidth is the content width inside an active panel
func (a *App) innerWidth() int {
	return a.dashboardWidth() - panelPadding
}

// contentWidth is the width available to unframed content
func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

// contentHeight is the height available for dashboard content
func (a *App) contentHeight() int {
	// header + newline + panel border and padding (4) + newline + footer
	return max(0, a.height-8)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("AMR LN₂ Generator Sizing"))
	rightText := " " + contextStyle.Render(fmt.Sprintf("%s · %s", a.request.Revision, a.service.Table().Model)) + " "

	// "╭─" + left + fill + right + "─╮"
	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText))
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	rightText := ""
	if a.result != nil && a.screen != ScreenWizard && a.screen != ScreenCalibration {
		rightText = " " + statusStyle.Render(a.result.Display.TotalPowerKW+" kW") + " "
	}

	a.help.Width = max(0, width-6-lipgloss.Width(rightText))
	leftText := " " + a.help.ShortHelpView(a.keys.screenHelp(a.screen)) + " "

	// "╰─" + left + fill + right + "─╯"
	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText))
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// WithCalibrationSources enables the recent-file list and sample directory in
// the calibration picker
func (a *App) WithCalibrationSources(recent *recentfiles.RecentFiles, samplesDir string) *App {
	a.recent = recent
	a.samplesDir = samplesDir
	return a
}

// Run starts the TUI
func Run(service *services.SizingService, sel menu.Selection) error {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	app := New(service, sel).WithCalibrationSources(
		recentfiles.New(recentfiles.DefaultConfigDir()),
		samples.FindSamplesDir(cwd),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
