// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, borders, and text styles used across components

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#06B6D4") // Cyan
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	BgDark    = lipgloss.Color("#1F2937") // Dark gray

	// Colors - Extended palette
	Accent        = lipgloss.Color("#22D3EE") // Lighter cyan for highlights
	Surface       = lipgloss.Color("#374151") // Elevated surface background
	DeltaPositive = lipgloss.Color("#10B981") // Green - savings
	DeltaNegative = lipgloss.Color("#F59E0B") // Amber - costs/increases
	DeltaNeutral  = lipgloss.Color("#6B7280") // Gray - no change
	Info          = lipgloss.Color("#3B82F6") // Blue - informational

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Key style for keyboard shortcuts
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Delta styles for change indicators
	DeltaPositiveStyle = lipgloss.NewStyle().
				Foreground(DeltaPositive).
				Bold(true)

	DeltaNegativeStyle = lipgloss.NewStyle().
				Foreground(DeltaNegative).
				Bold(true)
)

// stageColors maps the stage catalog color names onto the terminal palette
var stageColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("#3B82F6"),
	"purple": lipgloss.Color("#A855F7"),
	"orange": lipgloss.Color("#F97316"),
	"teal":   lipgloss.Color("#14B8A6"),
	"cyan":   lipgloss.Color("#06B6D4"),
	"slate":  lipgloss.Color("#64748B"),
}

// StageColor returns the border color for a stage card. Unknown names are muted.
func StageColor(name string) lipgloss.Color {
	if c, ok := stageColors[name]; ok {
		return c
	}
	return Muted
}
