// ABOUTME: Badge widgets for adoption status, roles, and donation goals
// ABOUTME: Renders colored inline labels with icon fallbacks

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/session"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
)

// StatusLevel is the tone of a badge
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

func (l StatusLevel) colors() (bg, fg lipgloss.Color) {
	switch l {
	case StatusOK:
		return styles.Secondary, lipgloss.Color("#FFFFFF")
	case StatusWarning:
		return styles.Warning, lipgloss.Color("#000000")
	case StatusCritical:
		return styles.Danger, lipgloss.Color("#FFFFFF")
	case StatusInfo:
		return styles.Info, lipgloss.Color("#FFFFFF")
	}
	return styles.Muted, lipgloss.Color("#FFFFFF")
}

// Badge renders text on a colored background
func Badge(text string, level StatusLevel) string {
	bg, fg := level.colors()
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StatusIcon returns the colored icon for a level
func StatusIcon(level StatusLevel) string {
	bg, _ := level.colors()
	icon := "•"
	switch level {
	case StatusOK:
		icon = icons.CheckOK.String()
	case StatusWarning:
		icon = icons.Warning.String()
	case StatusCritical:
		icon = icons.Critical.String()
	case StatusInfo:
		icon = icons.Info.String()
	}
	return lipgloss.NewStyle().Foreground(bg).Render(icon)
}

// StatusText returns colored text prefixed by the level icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := level.colors()
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(bg).Render(text))
}

// AdoptionLevel maps an adoption status, in either language, to a tone.
func AdoptionLevel(status string) StatusLevel {
	switch catalog.StatusLabel(status) {
	case "Disponible":
		return StatusOK
	case "Adoptado":
		return StatusInfo
	case "Pendiente", "En tratamiento":
		return StatusWarning
	}
	return StatusNeutral
}

// AdoptionBadge renders the Spanish status label of an animal
func AdoptionBadge(status string) string {
	label := catalog.StatusLabel(status)
	if label == "" {
		label = "--"
	}
	return Badge(label, AdoptionLevel(status))
}

// RoleBadge renders the signed-in role with its icon
func RoleBadge(role session.Role) string {
	switch role {
	case session.RoleSuperAdmin:
		return Badge(icons.SuperAdmin.String()+" "+role.Label(), StatusCritical)
	case session.RoleAdmin:
		return Badge(icons.Admin.String()+" "+role.Label(), StatusWarning)
	case "":
		return Badge("guest", StatusNeutral)
	}
	return Badge(icons.User.String()+" "+role.Label(), StatusInfo)
}

// GoalLevel grades donation progress: complete is OK, stalled is critical.
func GoalLevel(percent float64) StatusLevel {
	switch {
	case percent >= 100:
		return StatusOK
	case percent >= 40:
		return StatusWarning
	}
	return StatusCritical
}
