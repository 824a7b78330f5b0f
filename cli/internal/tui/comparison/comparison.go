// ABOUTME: Comparison view showing baseline vs proposed sizing results
// ABOUTME: Displays both configurations side by side with deltas and warnings

package comparison

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/icons"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/styles"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/widgets"
)

// Comparison displays scenario comparison results
type Comparison struct {
	result *models.ScenarioComparison
	width  int
}

// New creates a new comparison view
func New(result *models.ScenarioComparison, width int) *Comparison {
	return &Comparison{
		result: result,
		width:  width,
	}
}

// View renders the comparison
func (c *Comparison) View() string {
	if c.result == nil {
		return "No comparison data"
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Scenario Comparison", icons.Compare.String())))
	sb.WriteString("\n")

	colWidth := max(30, (c.width-4)/2)
	col := lipgloss.NewStyle().Width(colWidth)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		col.Render(c.renderScenario("Baseline", c.result.Baseline)),
		"  ",
		col.Render(c.renderScenario("Proposed", c.result.Proposed)),
	))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Changes"))
	sb.WriteString("\n")

	delta := c.result.Delta
	rows := []struct {
		label    string
		value    float64
		decimals int
		unit     string
	}{
		{"Total power", delta.TotalPowerKW, models.PowerDecimals, " kW"},
		{"Compressor", delta.CompressorPowerKW, models.PowerDecimals, " kW"},
		{"Cryocooler", delta.CryoPowerKW, models.PowerDecimals, " kW"},
		{"Feed air", delta.FeedAirFlowLPM, models.AirFlowDecimals, " LPM"},
		{"Modules", float64(delta.ModuleCount), 0, ""},
		{"Cooling load", delta.CoolingLoadWatts, models.CoolingDecimals, " W"},
	}
	label := lipgloss.NewStyle().Width(14)
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %s%s\n", label.Render(r.label), widgets.DeltaBadge(r.value, r.decimals, r.unit, true)))
	}

	savingsStyle := styles.DeltaPositiveStyle
	if delta.PowerSavingsPct < 0 {
		savingsStyle = styles.DeltaNegativeStyle
	}
	sb.WriteString(fmt.Sprintf("  %s%s\n", label.Render("Power savings"), savingsStyle.Render(fmt.Sprintf("%.1f%%", delta.PowerSavingsPct))))

	if len(c.result.Warnings) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render("Warnings"))
		sb.WriteString("\n")
		for _, w := range c.result.Warnings {
			sb.WriteString("  ")
			sb.WriteString(widgets.StatusText(w.Message, severityLevel(w.Severity)))
			sb.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(c.width).Render(sb.String())
}

func severityLevel(severity string) widgets.StatusLevel {
	switch severity {
	case "critical":
		return widgets.StatusCritical
	case "warning":
		return widgets.StatusWarning
	default:
		return widgets.StatusInfo
	}
}

func (c *Comparison) renderScenario(title string, s models.ScenarioResult) string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s (%s)", title, s.Revision)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Inputs: %s\n", s.Inputs.String()))
	sb.WriteString(fmt.Sprintf("Total power: %s kW\n", s.Display.TotalPowerKW))
	sb.WriteString(fmt.Sprintf("  compressor %s kW, cryo %s kW\n",
		models.FormatFixed(s.Outputs.Breakdown.CompressorPowerKW, models.PowerDecimals),
		models.FormatFixed(s.Outputs.Breakdown.CryoPowerKW, models.PowerDecimals)))
	sb.WriteString(fmt.Sprintf("Feed air: %s LPM\n", s.Display.FeedAirFlowLPM))
	sb.WriteString(fmt.Sprintf("Modules: %s\n", s.Display.ModuleCount))
	sb.WriteString(fmt.Sprintf("Cooling load: %s W\n", s.Display.CoolingLoadWatts))
	sb.WriteString(fmt.Sprintf("Cryocooler inlet: %.0f K", s.Outputs.Breakdown.InletTempK))
	return sb.String()
}
