// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges, delta badges, and the fallback notice

package widgets

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// levelColor is the accent color for a status level
func levelColor(level StatusLevel) lipgloss.Color {
	switch level {
	case StatusOK:
		return BadgeOKBg
	case StatusWarning:
		return BadgeWarnBg
	case StatusCritical:
		return BadgeCritBg
	case StatusInfo:
		return BadgeInfoBg
	default:
		return BadgeNeutralBg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	fg := BadgeNeutralFg
	switch level {
	case StatusOK:
		fg = BadgeOKFg
	case StatusWarning:
		fg = BadgeWarnFg
	case StatusCritical:
		fg = BadgeCritFg
	case StatusInfo:
		fg = BadgeInfoFg
	}

	style := lipgloss.NewStyle().
		Background(levelColor(level)).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// StatusBadge renders a predefined status badge (OK, WARN, CRIT)
func StatusBadge(level StatusLevel) string {
	switch level {
	case StatusOK:
		return Badge("OK", StatusOK)
	case StatusWarning:
		return Badge("WARN", StatusWarning)
	case StatusCritical:
		return Badge("CRIT", StatusCritical)
	case StatusInfo:
		return Badge("INFO", StatusInfo)
	default:
		return Badge("--", StatusNeutral)
	}
}

// UtilizationLevel grades how full the last membrane module is. A nearly
// empty module means capacity was bought and left idle.
func UtilizationLevel(percent float64) StatusLevel {
	switch {
	case percent >= 60:
		return StatusOK
	case percent >= 30:
		return StatusWarning
	default:
		return StatusInfo
	}
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	style := lipgloss.NewStyle().Foreground(levelColor(level))
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	textStyle := lipgloss.NewStyle().Foreground(levelColor(level))
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}

// DeltaBadge renders a change indicator with color. With invertColors set an
// increase is shown as a cost (power, air, modules).
func DeltaBadge(delta float64, decimals int, unit string, invertColors bool) string {
	text := strconv.FormatFloat(delta, 'f', decimals, 64) + unit
	level := StatusNeutral

	switch {
	case delta > 0:
		text = "+" + text
		level = StatusOK
		if invertColors {
			level = StatusWarning
		}
	case delta < 0:
		level = StatusWarning
		if invertColors {
			level = StatusOK
		}
	}

	return Badge(text, level)
}

// TrendIndicator returns an arrow icon for trend direction
func TrendIndicator(current, previous float64) string {
	if current > previous {
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.TrendUp.String())
	} else if current < previous {
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.TrendDown.String())
	}
	return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("→")
}

// FallbackBadge flags a feed pressure that was sized at the default tier
func FallbackBadge(requested, used float64) string {
	return Badge(fmt.Sprintf("%g bar not calibrated, sized at %g bar", requested, used), StatusWarning)
}
