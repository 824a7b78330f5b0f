// ABOUTME: Calculator dashboard showing the sizing inputs and live results
// ABOUTME: Renders the production slider, tier selectors, metric blocks, and summary

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/icons"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/styles"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/widgets"
)

const blockWidth = 26

// Dashboard displays the calculator state
type Dashboard struct {
	request models.SizingRequest
	result  *models.SizingResponse
	err     error
	curve   []float64 // total power at production 1..50 L/day
	width   int
	height  int
}

// New creates a dashboard for the given request
func New(request models.SizingRequest, width, height int) *Dashboard {
	return &Dashboard{
		request: request,
		width:   width,
		height:  height,
	}
}

// Update refreshes the dashboard. result is nil when err is set.
func (d *Dashboard) Update(request models.SizingRequest, result *models.SizingResponse, err error, curve []float64) {
	d.request = request
	d.result = result
	d.err = err
	d.curve = curve
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("LN₂ Generator Sizing"))
	sb.WriteString("\n")
	sb.WriteString(d.renderInputs())
	sb.WriteString("\n\n")

	if d.err != nil {
		sb.WriteString(widgets.StatusText(d.err.Error(), widgets.StatusCritical))
		sb.WriteString("\n\n")
	}
	if d.result != nil && d.result.Outputs.OperatingPoint.PressureFallback {
		op := d.result.Outputs.OperatingPoint
		sb.WriteString(widgets.FallbackBadge(op.RequestedPressureBar, op.PressureBar))
		sb.WriteString("\n\n")
	}

	sb.WriteString(d.renderMetrics())
	sb.WriteString("\n")

	if d.result != nil {
		summaryWidth := max(40, d.width-4)
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Width(summaryWidth).Render(d.result.Summary))
	}

	return lipgloss.NewStyle().
		Width(d.width).
		MaxHeight(max(0, d.height)).
		Render(sb.String())
}

func (d *Dashboard) renderInputs() string {
	in := d.request.SizingInputs
	label := lipgloss.NewStyle().Foreground(styles.Muted).Width(12)

	sliderCfg := widgets.DefaultSliderConfig()
	sliderCfg.Width = max(10, min(40, d.width-40))

	production := fmt.Sprintf("%s%s  %s",
		label.Render("Production"),
		widgets.Slider(in.TargetProductionLitersPerDay, sliderCfg),
		styles.ValueStyle.Render(fmt.Sprintf("%g L/day", in.TargetProductionLitersPerDay)))

	purity := label.Render("Purity") + optionRow(models.PurityOptions, in.OxygenPurityPercent, func(v float64) string {
		return fmt.Sprintf("%g%% N₂", 100-v)
	})
	pressure := label.Render("Pressure") + optionRow(models.PressureOptions, in.FeedPressureBar, func(v float64) string {
		return fmt.Sprintf("%g bar", v)
	})

	revision := d.request.Revision
	if d.result != nil {
		revision = d.result.Revision
	}
	rev := label.Render("Revision") + styles.ValueStyle.Render(revision)

	return strings.Join([]string{production, purity, pressure, rev}, "\n")
}

// optionRow renders the tier choices with the current one highlighted. A value
// outside the options is appended so the user sees what is being sized.
func optionRow(options []float64, current float64, format func(float64) string) string {
	found := false
	parts := make([]string, 0, len(options)+1)
	for _, v := range options {
		if v == current {
			found = true
			parts = append(parts, styles.KeyStyle.Render("["+format(v)+"]"))
			continue
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.Muted).Render(" "+format(v)+" "))
	}
	if !found {
		parts = append(parts, styles.StatusWarning.Render("["+format(current)+"]"))
	}
	return strings.Join(parts, " ")
}

func (d *Dashboard) renderMetrics() string {
	cfg := widgets.DefaultMetricBlockConfig()
	cfg.Width = blockWidth

	power, air, modules, cooling := models.Placeholder, models.Placeholder, models.Placeholder, models.Placeholder
	powerSub, airSub, modulesSub, coolingSub := "kW", "LPM feed air", "MNH-1522A", "W at 77 K"
	utilization := 0.0
	moduleCount := 0

	if d.result != nil {
		disp := d.result.Display
		out := d.result.Outputs
		power = disp.TotalPowerKW + " kW"
		air = disp.FeedAirFlowLPM + " LPM"
		modules = disp.ModuleCount
		cooling = disp.CoolingLoadWatts + " W"
		powerSub = fmt.Sprintf("comp %s + cryo %s",
			models.FormatFixed(out.Breakdown.CompressorPowerKW, models.PowerDecimals),
			models.FormatFixed(out.Breakdown.CryoPowerKW, models.PowerDecimals))
		airSub = fmt.Sprintf("at %g bar", out.OperatingPoint.PressureBar)
		modulesSub = fmt.Sprintf("%s LPM N₂ each", models.FormatFixed(out.OperatingPoint.NitrogenOutputLPM, 2))
		coolingSub = fmt.Sprintf("inlet %.0f K", out.Breakdown.InletTempK)
		utilization = out.Breakdown.ModuleUtilizationPct
		moduleCount = out.ModuleCount
	}

	blocks := []string{
		widgets.MetricBlockWithSparkline(icons.Power, "Total Power", power, d.curve, powerSub, cfg),
		widgets.MetricBlock(icons.Air, "Air Consumption", air, airSub, cfg),
		widgets.MetricBlock(icons.Membrane, "Modules", modules, modulesSub, cfg),
		widgets.MetricBlock(icons.Cooling, "Cooling Load", cooling, coolingSub, cfg),
	}

	var grid string
	if d.width >= 4*blockWidth+3 {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, blocks[0], " ", blocks[1], " ", blocks[2], " ", blocks[3])
	} else {
		grid = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, blocks[0], " ", blocks[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, blocks[2], " ", blocks[3]))
	}

	if d.result == nil {
		return grid
	}

	utilCfg := cfg
	utilCfg.Width = blockWidth + 8
	util := widgets.MetricBlockWithBar(icons.Gauge, "Module Utilization", utilization,
		fmt.Sprintf("of %d installed module(s)", moduleCount),
		widgets.UtilizationLevel(utilization), utilCfg)
	return grid + "\n" + util
}

// PowerCurve samples total power across the slider range. Failed points are
// skipped so the sparkline still renders.
func PowerCurve(size func(production float64) (float64, error)) []float64 {
	curve := make([]float64, 0, int(models.MaxProduction-models.MinProduction)+1)
	for p := models.MinProduction; p <= models.MaxProduction; p++ {
		kw, err := size(p)
		if err != nil {
			continue
		}
		curve = append(curve, kw)
	}
	return curve
}
