package layout

import "strings"

// Measurer reports rendered text width in millimetres. The engine stays pure
// by depending on this interface; a renderer may supply exact font metrics.
type Measurer interface {
	Width(text string, size float64, bold bool) float64
}

// approxMeasurer estimates width from the glyph count at roughly half an em
// per glyph, which tracks Helvetica closely enough for wrapping decisions.
type approxMeasurer struct{}

const ptToMM = 0.3528

func (approxMeasurer) Width(text string, size float64, bold bool) float64 {
	em := size * ptToMM
	factor := 0.50
	if bold {
		factor = 0.54
	}
	return float64(len([]rune(text))) * em * factor
}

// wrap splits text into lines that fit width, breaking at spaces. A single
// word wider than the box gets its own line rather than being cut.
func wrap(m Measurer, text string, width, size float64, bold bool) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	words := strings.Fields(text)
	var lines []string
	current := ""
	for _, w := range words {
		candidate := w
		if current != "" {
			candidate = current + " " + w
		}
		if m.Width(candidate, size, bold) <= width || current == "" {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
