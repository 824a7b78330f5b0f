// ABOUTME: Sparkline widget renders mini curves using block characters
// ABOUTME: Used for the power-versus-production curve on the calculator

package widgets

import (
	"github.com/charmbracelet/lipgloss"
)

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a compact curve. Values are resampled to width.
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)

	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	result := make([]rune, len(sampled))
	for i, v := range sampled {
		result[i] = valueToBlock(v, lo, hi)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}

	return style.Render(string(result))
}

// SparklineMarked renders a sparkline with the sample nearest to index marked
// in a highlight color. index refers to the original values slice.
func SparklineMarked(values []float64, width, index int, color, markColor lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	mark := -1
	if index >= 0 && index < len(values) {
		if len(values) <= width {
			mark = width - len(values) + index
		} else {
			mark = int(float64(index) * float64(width) / float64(len(values)))
		}
	}

	base := lipgloss.NewStyle().Foreground(color)
	hl := lipgloss.NewStyle().Foreground(markColor).Bold(true)

	var out string
	for i, v := range sampled {
		block := string(valueToBlock(v, lo, hi))
		if i == mark {
			out += hl.Render(block)
		} else {
			out += base.Render(block)
		}
	}
	return out
}

// sampleValues resamples the values slice to the target width. Short slices
// are padded on the left with their first value so the curve stays flat.
func sampleValues(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}

	result := make([]float64, width)

	if len(values) < width {
		padding := width - len(values)
		for i := 0; i < padding; i++ {
			result[i] = values[0]
		}
		copy(result[padding:], values)
		return result
	}

	ratio := float64(len(values)) / float64(width)
	for i := 0; i < width; i++ {
		idx := min(int(float64(i)*ratio), len(values)-1)
		result[i] = values[idx]
	}
	return result
}

// valueToBlock converts a value to a block character based on its position in the range
func valueToBlock(value, lo, hi float64) rune {
	if hi == lo {
		return SparklineBlocks[len(SparklineBlocks)/2]
	}

	normalized := (value - lo) / (hi - lo)
	idx := int(normalized * float64(len(SparklineBlocks)-1))
	idx = max(0, min(len(SparklineBlocks)-1, idx))

	return SparklineBlocks[idx]
}
