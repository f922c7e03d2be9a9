// ABOUTME: Progress bar widgets for donation collection displays
// ABOUTME: Fills toward a goal with a marker at the halfway point

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uiopaws/pawsctl/internal/tui/styles"
)

// ProgressBarConfig holds configuration for a goal bar
type ProgressBarConfig struct {
	Width      int
	ShowMarker bool
	FillChar   string
	EmptyChar  string
}

// DefaultProgressBarConfig returns the standard bar
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:      30,
		ShowMarker: true,
		FillChar:   "█",
		EmptyChar:  "░",
	}
}

// GoalBar renders collection progress colored by GoalLevel
func GoalBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 30
	}
	percent = clamp(percent)
	bg, _ := GoalLevel(percent).colors()
	filled := int(percent / 100 * float64(config.Width))
	marker := -1
	if config.ShowMarker {
		marker = config.Width / 2
	}

	fill := lipgloss.NewStyle().Foreground(bg)
	empty := lipgloss.NewStyle().Foreground(styles.Surface)
	markStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var sb strings.Builder
	for i := 0; i < config.Width; i++ {
		switch {
		case i < filled:
			sb.WriteString(fill.Render(config.FillChar))
		case i == marker:
			sb.WriteString(markStyle.Render("│"))
		default:
			sb.WriteString(empty.Render(config.EmptyChar))
		}
	}
	return sb.String()
}

// GoalBarWithLabel renders a bar followed by "collected/needed (pct%)"
func GoalBarWithLabel(collected, needed int, percent float64, width int) string {
	config := DefaultProgressBarConfig()
	config.Width = width
	bg, _ := GoalLevel(percent).colors()
	label := lipgloss.NewStyle().Foreground(bg).Bold(true).
		Render(fmt.Sprintf("%d/%d (%.0f%%)", collected, needed, clamp(percent)))
	return GoalBar(percent, config) + " " + label
}

// CompactProgressBar renders a bar in a single color
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	filled := int(clamp(percent) / 100 * float64(width))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("░", width-filled))
}

func clamp(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
