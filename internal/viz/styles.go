package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles of one theme.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Canvas  lipgloss.Style
	Panel   lipgloss.Style
	Graph   lipgloss.Style
	Help    lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Force   lipgloss.Style
	Torque  lipgloss.Style

	sparkHigh, sparkMid, sparkLow lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label:  lipgloss.NewStyle().Foreground(t.Muted).Width(16),
		Value:  lipgloss.NewStyle().Foreground(t.Text),
		Canvas: lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2),
		Graph:   lipgloss.NewStyle().Foreground(t.Accent),
		Help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Force:   lipgloss.NewStyle().Foreground(t.Accent),
		Torque:  lipgloss.NewStyle().Foreground(t.Error),

		sparkHigh: lipgloss.NewStyle().Foreground(t.Error),
		sparkMid:  lipgloss.NewStyle().Foreground(t.Warning),
		sparkLow:  lipgloss.NewStyle().Foreground(t.Success),
	}
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values scaled between their min and max.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(sparkChars)-1))
		idx = min(max(idx, 0), len(sparkChars)-1)
		c := string(sparkChars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(s.sparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(s.sparkMid.Render(c))
		default:
			b.WriteString(s.sparkLow.Render(c))
		}
	}
	return b.String()
}
