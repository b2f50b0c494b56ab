package labels

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/matzehuels/chartkit/pkg/textmetrics"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Truncate shortens text to fit width, appending an ellipsis when anything
// was cut. Text that already fits is returned unchanged. If not even the
// ellipsis fits, the result is empty.
func Truncate(text string, width, fontSize float64, m textmetrics.Measurer) string {
	if m.Measure(text, fontSize) <= width {
		return text
	}
	if m.Measure(Ellipsis, fontSize) > width {
		return ""
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		next := b.String() + g.Str()
		if m.Measure(strings.TrimRight(next, " ")+Ellipsis, fontSize) > width {
			break
		}
		b.WriteString(g.Str())
	}
	return strings.TrimRight(b.String(), " ") + Ellipsis
}

// Wrap breaks text into lines no wider than width, greedily by words.
// maxLines <= 0 means no line limit. A non-positive width yields no lines.
func Wrap(text string, width float64, maxLines int, fontSize float64, m textmetrics.Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return nil
	}

	var lines []string
	full := func() bool { return maxLines > 0 && len(lines) == maxLines }
	overflow := func(rest []string) []string {
		last := len(lines) - 1
		lines[last] = Truncate(lines[last]+" "+strings.Join(rest, " "), width, fontSize, m)
		return lines
	}

	line := ""
	for i, w := range words {
		if line != "" {
			if joined := line + " " + w; m.Measure(joined, fontSize) <= width {
				line = joined
				continue
			}
			lines = append(lines, line)
			line = ""
			if full() {
				return overflow(words[i:])
			}
		}
		if m.Measure(w, fontSize) > width {
			lines = append(lines, Truncate(w, width, fontSize, m))
			if full() && i < len(words)-1 {
				return overflow(words[i+1:])
			}
			continue
		}
		line = w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
