// ABOUTME: Compact metric block widget for dashboard displays
// ABOUTME: Draws a titled box holding a count or a donation goal bar

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns the dashboard defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: styles.Muted,
		TitleColor:  styles.Primary,
		ValueColor:  styles.Text,
	}
}

// box draws lines inside a border with the title set into the top edge.
func box(icon icons.Icon, title string, lines []string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}
	inner := config.Width - 4
	border := lipgloss.NewStyle().Foreground(config.BorderColor)

	heading := truncate(fmt.Sprintf("%s %s", icon.String(), title), inner)
	top := border.Render("┌─ ") +
		lipgloss.NewStyle().Foreground(config.TitleColor).Render(heading) +
		border.Render(" "+strings.Repeat("─", max(0, inner-lipgloss.Width(heading)-1))+"┐")

	out := []string{top}
	for _, line := range lines {
		pad := max(0, inner-lipgloss.Width(line))
		out = append(out, border.Render("│  ")+line+strings.Repeat(" ", pad)+border.Render("│"))
	}
	out = append(out, border.Render("└"+strings.Repeat("─", config.Width-2)+"┘"))
	return strings.Join(out, "\n")
}

// MetricBlock renders a value with a muted subtitle
func MetricBlock(icon icons.Icon, title, value, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}
	inner := config.Width - 4
	return box(icon, title, []string{
		lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true).Render(truncate(value, inner)),
		lipgloss.NewStyle().Foreground(styles.Muted).Render(truncate(subtitle, inner)),
	}, config)
}

// CountBlock renders an integer count
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// MetricBlockWithBar renders a percentage with a goal bar beneath it
func MetricBlockWithBar(icon icons.Icon, title string, percent float64, details string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}
	inner := config.Width - 4
	level := GoalLevel(percent)
	bg, _ := level.colors()

	value := lipgloss.NewStyle().Foreground(bg).Bold(true).Render(fmt.Sprintf("%3.0f%%", clamp(percent))) +
		" " + StatusIcon(level)
	bar := CompactProgressBar(percent, max(1, inner), bg)
	detail := lipgloss.NewStyle().Foreground(styles.Muted).Render(truncate(details, inner))

	return box(icon, title, []string{value, bar, detail}, config)
}

// truncate shortens s to maxLen runes with an ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}
