// ABOUTME: Process stage cards for the terminal
// ABOUTME: Renders the stage catalog as colored lipgloss cards or as Markdown for glamour

package stages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/cli/internal/tui/styles"
)

const cardWidth = 34

// View renders compact stage cards in as many columns as fit in width
func View(stages []models.Stage, width int) string {
	if len(stages) == 0 {
		return lipgloss.NewStyle().Foreground(styles.Muted).Render("No stages")
	}

	cols := max(1, width/(cardWidth+1))
	var rows []string
	for start := 0; start < len(stages); start += cols {
		end := min(start+cols, len(stages))
		cards := make([]string, 0, 2*(end-start))
		for i, s := range stages[start:end] {
			if i > 0 {
				cards = append(cards, " ")
			}
			cards = append(cards, Card(s))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Card renders one stage with its live metrics
func Card(s models.Stage) string {
	color := styles.StageColor(s.Color)

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(s.Title))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(s.Subtitle))

	for _, m := range s.Metrics {
		value := m.Value
		if m.Unit != "" && m.Value != models.Placeholder {
			value += " " + m.Unit
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Foreground(styles.Muted).Render(m.Label+":"),
			styles.ValueStyle.Render(value)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(cardWidth - 2).
		Render(sb.String())
}

// Markdown renders the full stage catalog including spec tables and stream links
func Markdown(resp models.StagesResponse) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# AMR LN₂ Generator: %s\n\n", resp.Inputs.String())
	fmt.Fprintf(&sb, "Formula revision: **%s**\n\n", resp.Revision)
	if resp.Error != "" {
		fmt.Fprintf(&sb, "> Sizing failed: %s. Live values show %s.\n\n", resp.Error, models.Placeholder)
	}

	for _, s := range resp.Stages {
		fmt.Fprintf(&sb, "## %s\n\n*%s*. %s\n\n", s.Title, s.Subtitle, s.Description)

		if len(s.Metrics) > 0 {
			for _, m := range s.Metrics {
				unit := ""
				if m.Unit != "" && m.Value != models.Placeholder {
					unit = " " + m.Unit
				}
				fmt.Fprintf(&sb, "- **%s:** %s%s\n", m.Label, m.Value, unit)
			}
			sb.WriteString("\n")
		}

		if len(s.Specs) > 0 {
			sb.WriteString("| Parameter | Value | Note |\n|---|---|---|\n")
			for _, row := range s.Specs {
				fmt.Fprintf(&sb, "| %s | %s | %s |\n", escapeCell(row.Param), escapeCell(row.Value), escapeCell(row.Note))
			}
			sb.WriteString("\n")
		}
	}

	if len(resp.Links) > 0 {
		sb.WriteString("## Process Streams\n\n")
		for _, l := range resp.Links {
			if l.Label != "" {
				fmt.Fprintf(&sb, "- %s → %s (%s)\n", l.From, l.To, l.Label)
			} else {
				fmt.Fprintf(&sb, "- %s → %s\n", l.From, l.To)
			}
		}
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Render formats Markdown for the terminal. Styling follows the terminal
// background unless plain is set.
func Render(markdown string, width int, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(max(40, width)))
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render stages: %w", err)
	}
	return out, nil
}
