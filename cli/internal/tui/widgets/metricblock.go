// ABOUTME: Compact metric block widget for calculator displays
// ABOUTME: Combines icon, value, sparkline or bar, and unit in a bordered panel

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       24,
		BorderColor: lipgloss.Color("#6B7280"), // Muted gray
		TitleColor:  lipgloss.Color("#06B6D4"), // Cyan
		ValueColor:  lipgloss.Color("#F9FAFB"), // Light
	}
}

// topBorder draws "┌─ title ───┐" sized to the block
func topBorder(icon icons.Icon, title string, innerWidth int, color lipgloss.Color) string {
	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), innerWidth-1)
	titleStyle := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-lipgloss.Width(titleStr)-1)))
}

// padLine wraps already-styled content in side borders, padding to innerWidth
func padLine(content string, innerWidth int) string {
	return "│  " + content + strings.Repeat(" ", max(0, innerWidth-lipgloss.Width(content))) + "│"
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title string, value string, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 24
	}

	// Calculate inner width (accounting for border + padding)
	innerWidth := config.Width - 4

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder(icon, title, innerWidth, config.TitleColor)),
		borderStyle.Render(padLine(valueStyle.Render(truncate(value, innerWidth)), innerWidth)),
		borderStyle.Render(padLine(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth)),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// MetricBlockWithBar renders a metric block with a percentage bar. The caller picks
// the status level since a high percentage is not always bad.
func MetricBlockWithBar(icon icons.Icon, title string, percent float64, details string, level StatusLevel, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 24
	}

	innerWidth := config.Width - 4
	barWidth := innerWidth - 2

	statusColor := levelColor(level)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(statusColor)

	valueLine := fmt.Sprintf("%s %s",
		valueStyle.Render(fmt.Sprintf("%5.1f%%", percent)),
		StatusIcon(level))

	bar := CompactProgressBar(percent, barWidth, statusColor)

	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder(icon, title, innerWidth, config.TitleColor)),
		borderStyle.Render(padLine(valueLine, innerWidth)),
		borderStyle.Render(padLine(bar, innerWidth)),
		borderStyle.Render(padLine(detailStyle.Render(truncate(details, innerWidth)), innerWidth)),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// MetricBlockWithSparkline renders a metric block with a sparkline
func MetricBlockWithSparkline(icon icons.Icon, title string, value string, sparkData []float64, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 24
	}

	innerWidth := config.Width - 4
	sparkWidth := max(0, min(10, innerWidth-lipgloss.Width(value)-2))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	spark := Sparkline(sparkData, sparkWidth, config.TitleColor)
	valueWithSpark := valueStyle.Render(value)
	if spark != "" {
		valueWithSpark += "  " + spark
	}

	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder(icon, title, innerWidth, config.TitleColor)),
		borderStyle.Render(padLine(valueWithSpark, innerWidth)),
		borderStyle.Render(padLine(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth)),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// truncate shortens a string to maxLen display cells with ellipsis if needed
func truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:max(0, min(len(runes), maxLen))])
	}
	for lipgloss.Width(string(runes))+3 > maxLen && len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
