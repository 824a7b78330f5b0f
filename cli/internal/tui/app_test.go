// ABOUTME: Integration tests for the calculator TUI
// ABOUTME: Tests key handling, recomputation, and screen transitions

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/filepicker"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/menu"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/recentfiles"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/wizard"
)

func newTestApp(t *testing.T, sel menu.Selection) *App {
	t.Helper()
	svc, err := services.NewSizingService(models.DefaultPerformanceTable(), "")
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	app := New(svc, sel)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(*App)
}

func press(t *testing.T, app *App, msg tea.KeyMsg) (*App, tea.Cmd) {
	t.Helper()
	model, cmd := app.Update(msg)
	return model.(*App), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	if app.screen != ScreenDashboard {
		t.Errorf("expected initial screen to be ScreenDashboard, got %d", app.screen)
	}
	if app.result == nil {
		t.Fatal("expected initial result")
	}
	if app.result.Outputs.ModuleCount != 2 {
		t.Errorf("expected 2 modules, got %d", app.result.Outputs.ModuleCount)
	}
	if app.request.Revision != "baseline" {
		t.Errorf("expected baseline revision, got %s", app.request.Revision)
	}
	if len(app.curve) != 50 {
		t.Errorf("expected 50 curve points, got %d", len(app.curve))
	}
}

func TestScreenConstants(t *testing.T) {
	if ScreenDashboard != 0 {
		t.Errorf("expected ScreenDashboard to be 0, got %d", ScreenDashboard)
	}
	if ScreenStages != 1 {
		t.Errorf("expected ScreenStages to be 1, got %d", ScreenStages)
	}
	if ScreenComparison != 2 {
		t.Errorf("expected ScreenComparison to be 2, got %d", ScreenComparison)
	}
	if ScreenWizard != 3 {
		t.Errorf("expected ScreenWizard to be 3, got %d", ScreenWizard)
	}
}

func TestAppProductionKeys(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want float64
	}{
		{"right", tea.KeyMsg{Type: tea.KeyRight}, 11},
		{"shift+right", tea.KeyMsg{Type: tea.KeyShiftRight}, 16},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, 15},
		{"shift+left", tea.KeyMsg{Type: tea.KeyShiftLeft}, 10},
		{"h", runes("h"), 9},
		{"l", runes("l"), 10},
	}

	for _, tc := range tests {
		app, _ = press(t, app, tc.msg)
		if got := app.request.TargetProductionLitersPerDay; got != tc.want {
			t.Errorf("%s: expected production %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestAppProductionClamps(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	for i := 0; i < 20; i++ {
		app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyShiftRight})
	}
	if got := app.request.TargetProductionLitersPerDay; got != 50 {
		t.Errorf("expected production clamped to 50, got %v", got)
	}
	if app.result.Outputs.ModuleCount != 7 {
		t.Errorf("expected 7 modules at 50 L/day, got %d", app.result.Outputs.ModuleCount)
	}

	for i := 0; i < 20; i++ {
		app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyShiftLeft})
	}
	if got := app.request.TargetProductionLitersPerDay; got != 1 {
		t.Errorf("expected production clamped to 1, got %v", got)
	}
	if app.result.Outputs.ModuleCount != 1 {
		t.Errorf("expected 1 module at 1 L/day, got %d", app.result.Outputs.ModuleCount)
	}
}

func TestAppPurityAndPressureKeys(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	app, _ = press(t, app, runes("3"))
	if app.request.OxygenPurityPercent != 2 {
		t.Errorf("expected purity 2 after '3', got %v", app.request.OxygenPurityPercent)
	}

	app, _ = press(t, app, runes("p"))
	if app.request.OxygenPurityPercent != 3 {
		t.Errorf("expected purity 3 after 'p', got %v", app.request.OxygenPurityPercent)
	}

	app, _ = press(t, app, runes("p"))
	if app.request.OxygenPurityPercent != 0.5 {
		t.Errorf("expected purity to wrap to 0.5, got %v", app.request.OxygenPurityPercent)
	}

	app, _ = press(t, app, runes("P"))
	if app.request.FeedPressureBar != 11 {
		t.Errorf("expected pressure 11 after 'P', got %v", app.request.FeedPressureBar)
	}
	if app.result.Outputs.ModuleCount != 1 {
		t.Errorf("expected 1 module at 11 bar, got %d", app.result.Outputs.ModuleCount)
	}
	if app.result.Display.FeedAirFlowLPM != "22.9" {
		t.Errorf("expected 22.9 LPM at 11 bar, got %s", app.result.Display.FeedAirFlowLPM)
	}
}

func TestAppRevisionKey(t *testing.T) {
	app := newTestApp(t, menu.Selection{})
	before := app.curve[9]

	app, _ = press(t, app, runes("r"))
	if app.request.Revision != "recuperated" {
		t.Fatalf("expected recuperated revision, got %s", app.request.Revision)
	}
	if app.result.Display.TotalPowerKW != "1.00" {
		t.Errorf("expected 1.00 kW, got %s", app.result.Display.TotalPowerKW)
	}
	if app.curve[9] >= before {
		t.Errorf("expected the power curve to drop, got %v then %v", before, app.curve[9])
	}

	app, _ = press(t, app, runes("r"))
	if app.request.Revision != "baseline" {
		t.Errorf("expected revision to wrap to baseline, got %s", app.request.Revision)
	}
}

func TestAppCompareAndBack(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	app, _ = press(t, app, runes("c"))
	if app.screen != ScreenComparison {
		t.Fatalf("expected ScreenComparison, got %d", app.screen)
	}
	if app.comparison == nil || app.compView == nil {
		t.Fatal("expected comparison to be computed")
	}
	if app.comparison.Delta.TotalPowerKW >= 0 {
		t.Errorf("expected recuperator to save power, got delta %v", app.comparison.Delta.TotalPowerKW)
	}

	app, _ = press(t, app, runes("r"))
	if app.comparison.Baseline.Revision != "recuperated" {
		t.Errorf("expected sides swapped, got baseline %s", app.comparison.Baseline.Revision)
	}

	app, _ = press(t, app, runes("b"))
	if app.screen != ScreenDashboard {
		t.Errorf("expected ScreenDashboard after back, got %d", app.screen)
	}
	if app.comparison != nil {
		t.Error("expected comparison to be cleared")
	}
}

func TestAppStagesToggle(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	app, _ = press(t, app, runes("s"))
	if app.screen != ScreenStages {
		t.Fatalf("expected ScreenStages, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "Membrane Separation") {
		t.Error("expected stage cards in view")
	}

	app, _ = press(t, app, runes("s"))
	if app.screen != ScreenDashboard {
		t.Errorf("expected ScreenDashboard after second toggle, got %d", app.screen)
	}
}

func TestAppWizardFlow(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	app, _ = press(t, app, runes("e"))
	if app.screen != ScreenWizard || app.wizardScreen == nil {
		t.Fatalf("expected wizard screen, got %d", app.screen)
	}

	// q is text input in the wizard, not quit
	_, cmd := press(t, app, runes("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q should not quit while the wizard is open")
		}
	}

	app, cmd = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	model, _ := app.Update(cmd())
	app = model.(*App)
	if app.screen != ScreenDashboard || app.wizardScreen != nil {
		t.Errorf("expected dashboard after cancel, got %d", app.screen)
	}

	req := models.SizingRequest{
		SizingInputs: models.SizingInputs{TargetProductionLitersPerDay: 50, OxygenPurityPercent: 0.5, FeedPressureBar: 9},
		Revision:     "baseline",
	}
	model, _ = app.Update(wizard.CompleteMsg{Request: req})
	app = model.(*App)
	if app.request != req {
		t.Errorf("expected request %+v, got %+v", req, app.request)
	}
	if app.result.Outputs.ModuleCount != 7 {
		t.Errorf("expected 7 modules, got %d", app.result.Outputs.ModuleCount)
	}
}

func TestAppCalibrationPicker(t *testing.T) {
	recent := recentfiles.New(t.TempDir())
	app := newTestApp(t, menu.Selection{}).WithCalibrationSources(recent, "")

	app, _ = press(t, app, runes("f"))
	if app.screen != ScreenCalibration || app.picker == nil {
		t.Fatalf("expected calibration screen, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "Select calibration table") {
		t.Error("expected picker in view")
	}

	// q belongs to the picker, not the app
	_, cmd := press(t, app, runes("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q should not quit while the picker is open")
		}
	}

	app, cmd = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	model, _ := app.Update(cmd())
	app = model.(*App)
	if app.screen != ScreenDashboard || app.picker != nil {
		t.Errorf("expected dashboard after cancel, got %d", app.screen)
	}
}

func TestAppApplyCalibrationTable(t *testing.T) {
	recent := recentfiles.New(t.TempDir())
	app := newTestApp(t, menu.Selection{}).WithCalibrationSources(recent, "")
	app, _ = press(t, app, runes("f"))

	// Halve nitrogen output at 9 bar so the default request needs twice the modules
	table := models.DefaultPerformanceTable()
	table.Model = "MNH-HALF"
	for i := range table.Rows {
		for j := range table.Rows[i].Points {
			table.Rows[i].Points[j].NitrogenOutputLPM /= 2
		}
	}

	model, _ := app.Update(filepicker.TableSelectedMsg{Path: "/tables/half.yaml", Table: table})
	app = model.(*App)

	if app.screen != ScreenDashboard {
		t.Errorf("expected dashboard after load, got %d", app.screen)
	}
	if app.result.Outputs.ModuleCount != 3 {
		t.Errorf("expected 3 modules with halved output, got %d", app.result.Outputs.ModuleCount)
	}
	if !strings.Contains(app.View(), "MNH-HALF") {
		t.Error("expected header to show the loaded model")
	}
	if files := recent.List(); len(files) != 1 || files[0] != "/tables/half.yaml" {
		t.Errorf("expected loaded path in recent files, got %v", files)
	}
}

func TestAppQuit(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	_, cmd := press(t, app, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestAppHelpToggle(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	app, _ = press(t, app, runes("?"))
	if !app.showHelp {
		t.Fatal("expected help to be shown")
	}
	if !strings.Contains(app.View(), "purity tier") {
		t.Error("expected full help in view")
	}
}

func TestAppStartViews(t *testing.T) {
	app := newTestApp(t, menu.Selection{View: menu.ViewCompare, Revision: "recuperated"})
	if app.screen != ScreenComparison {
		t.Errorf("expected comparison start screen, got %d", app.screen)
	}
	if app.request.Revision != "recuperated" {
		t.Errorf("expected recuperated revision, got %s", app.request.Revision)
	}

	app = newTestApp(t, menu.Selection{View: menu.ViewStages})
	if app.screen != ScreenStages {
		t.Errorf("expected stages start screen, got %d", app.screen)
	}
}

func TestAppViewReturnsContent(t *testing.T) {
	app := newTestApp(t, menu.Selection{})

	view := app.View()
	for _, want := range []string{"AMR LN₂ Generator Sizing", "1.82 kW", "34.7 LPM", "MNH-1522A"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	app, _ = press(t, app, runes("c"))
	if !strings.Contains(app.View(), "back") {
		t.Error("expected comparison footer to contain 'back' keybinding")
	}
}

func TestCycle(t *testing.T) {
	opts := []float64{5, 9, 11}
	tests := []struct {
		current float64
		want    float64
	}{
		{5, 9},
		{9, 11},
		{11, 5},
		{7, 5},
	}
	for _, tc := range tests {
		if got := cycle(opts, tc.current); got != tc.want {
			t.Errorf("cycle(%v): expected %v, got %v", tc.current, tc.want, got)
		}
	}
}
