package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"number_generator/internal/widget"
)

const (
	barWidth    = 40
	maxBarRows  = 20
	maxHistory  = 10
	defaultWide = 72
)

type styles struct {
	frame   lipgloss.Style
	title   lipgloss.Style
	result  lipgloss.Style
	history lipgloss.Style
	bar     lipgloss.Style
	dim     lipgloss.Style
	err     lipgloss.Style
}

func newStyles(p widget.Palette) styles {
	fg := lipgloss.Color(p.Foreground)
	return styles{
		frame:   lipgloss.NewStyle().Background(lipgloss.Color(p.Background)).Foreground(fg).Padding(1, 2),
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Bar)),
		result:  lipgloss.NewStyle().Background(lipgloss.Color(p.ResultBox)).Foreground(fg).Padding(0, 1),
		history: lipgloss.NewStyle().Background(lipgloss.Color(p.HistoryBox)).Foreground(fg).Padding(0, 1),
		bar:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Bar)),
		dim:     lipgloss.NewStyle().Faint(true),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	st := m.state
	s := newStyles(st.Theme.Palette())
	width := m.width
	if width <= 0 {
		width = defaultWide
	}

	var b strings.Builder
	b.WriteString(s.title.Render("Random numbers"))
	b.WriteString("\n\n")

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("   ")
	}
	b.WriteString("\n")
	auto := "off"
	if st.AutoGenerate {
		auto = "on"
	}
	fmt.Fprintf(&b, "filter: %s   auto: %s   theme: %s\n", st.Params.Filter, auto, st.Theme)
	if m.errMsg != "" {
		b.WriteString(s.err.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	current := st.Current.String()
	if current == "" {
		current = " "
	}
	b.WriteString(s.result.Width(width - 6).Render(current))
	b.WriteString("\n\n")

	if bars := renderBars(st.Current, s); bars != "" {
		b.WriteString(bars)
		b.WriteString("\n")
	}

	b.WriteString(s.history.Width(width - 6).Render(renderHistory(st.History)))
	b.WriteString("\n\n")
	b.WriteString(s.dim.Render(m.help()))

	return s.frame.Render(b.String())
}

func (m *Model) help() string {
	if m.editing {
		return "tab next field • enter apply • esc cancel"
	}
	return "g generate • c clear • e edit • f filter • a auto • t theme • q quit"
}

// renderBars draws one horizontal bar per value, scaled to the largest magnitude.
func renderBars(rs widget.ResultSet, s styles) string {
	if len(rs) == 0 {
		return ""
	}
	var peak int64
	labelWidth := 0
	for _, v := range rs {
		if a := abs(v); a > peak {
			peak = a
		}
		if l := len(strconv.FormatInt(v, 10)); l > labelWidth {
			labelWidth = l
		}
	}

	var b strings.Builder
	shown := rs
	if len(shown) > maxBarRows {
		shown = shown[:maxBarRows]
	}
	for _, v := range shown {
		n := barLength(v, peak)
		fmt.Fprintf(&b, "%*d │%s\n", labelWidth, v, s.bar.Render(strings.Repeat("█", n)))
	}
	if extra := len(rs) - len(shown); extra > 0 {
		fmt.Fprintf(&b, "%s\n", s.dim.Render(fmt.Sprintf("… %d more", extra)))
	}
	return b.String()
}

func barLength(v, peak int64) int {
	if peak == 0 {
		return 0
	}
	n := int(float64(abs(v)) / float64(peak) * barWidth)
	if n == 0 && v != 0 {
		n = 1
	}
	return n
}

func renderHistory(history []widget.ResultSet) string {
	if len(history) == 0 {
		return "No history"
	}
	lines := make([]string, 0, maxHistory+1)
	for i, rs := range history {
		if i == maxHistory {
			lines = append(lines, fmt.Sprintf("… %d older", len(history)-maxHistory))
			break
		}
		lines = append(lines, rs.String())
	}
	return strings.Join(lines, "\n")
}

func abs(v int64) int64 {
	if v < 0 {
		// MinInt64 has no positive counterpart; clamp it
		if v == -v {
			return 1<<63 - 1
		}
		return -v
	}
	return v
}
