// ABOUTME: Progress bar and slider widgets for bounded values
// ABOUTME: Renders the production slider and the module utilization bar

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SliderConfig holds configuration for a value slider
type SliderConfig struct {
	Width      int
	Min        float64
	Max        float64
	FillColor  lipgloss.Color
	KnobColor  lipgloss.Color
	EmptyColor lipgloss.Color
}

// DefaultSliderConfig returns the production slider range of 1 to 50 L/day
func DefaultSliderConfig() SliderConfig {
	return SliderConfig{
		Width:      30,
		Min:        1,
		Max:        50,
		FillColor:  lipgloss.Color("#06B6D4"), // Cyan
		KnobColor:  lipgloss.Color("#F9FAFB"), // Light
		EmptyColor: lipgloss.Color("#374151"), // Dark gray
	}
}

// Slider renders a horizontal slider with a knob at value and the range labels
func Slider(value float64, config SliderConfig) string {
	if config.Width <= 1 {
		config.Width = 30
	}
	if config.Max <= config.Min {
		config.Max = config.Min + 1
	}

	value = max(config.Min, min(config.Max, value))
	pos := int((value - config.Min) / (config.Max - config.Min) * float64(config.Width-1))

	fill := lipgloss.NewStyle().Foreground(config.FillColor)
	knob := lipgloss.NewStyle().Foreground(config.KnobColor).Bold(true)
	empty := lipgloss.NewStyle().Foreground(config.EmptyColor)

	var bar strings.Builder
	bar.WriteString(fmt.Sprintf("%g ", config.Min))
	bar.WriteString(fill.Render(strings.Repeat("━", pos)))
	bar.WriteString(knob.Render("●"))
	bar.WriteString(empty.Render(strings.Repeat("─", config.Width-pos-1)))
	bar.WriteString(fmt.Sprintf(" %g", config.Max))
	return bar.String()
}

// SimpleProgressBar renders a basic colored bar without zones
func SimpleProgressBar(percent float64, width int, filledColor, emptyColor lipgloss.Color) string {
	if width <= 0 {
		width = 20
	}

	percent = max(0, min(100, percent))
	filled := int(percent / 100.0 * float64(width))

	filledStyle := lipgloss.NewStyle().Foreground(filledColor)
	emptyStyle := lipgloss.NewStyle().Foreground(emptyColor)

	return "[" + filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) + "]"
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}

	percent = max(0, min(100, percent))
	filled := int(percent / 100.0 * float64(width))

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width-filled))
}
