// ABOUTME: Animal detail view with profile, photos, and medical records
// ABOUTME: Lays the profile and photo list side by side above the record history

package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
	"github.com/uiopaws/pawsctl/internal/tui/widgets"
)

// Detail displays one animal
type Detail struct {
	animal *client.Animal
	origin string
	width  int
}

// New creates a detail view. origin resolves relative media paths.
func New(animal *client.Animal, origin string, width int) *Detail {
	return &Detail{animal: animal, origin: origin, width: width}
}

// Animal returns the animal being shown
func (d *Detail) Animal() *client.Animal {
	return d.animal
}

// SetWidth updates the render width
func (d *Detail) SetWidth(width int) {
	d.width = width
}

// View renders the animal
func (d *Detail) View() string {
	a := d.animal
	if a == nil {
		return "No animal selected"
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s (#%d)", icons.Animal.String(), a.AnimalName, a.IDAnimal)))
	sb.WriteString("\n")
	sb.WriteString(widgets.AdoptionBadge(a.Status))
	sb.WriteString("\n\n")

	colWidth := max(30, (d.width-4)/2)
	col := lipgloss.NewStyle().Width(colWidth)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		col.Render(d.renderProfile()),
		"  ",
		col.Render(d.renderPhotos()),
	))
	sb.WriteString("\n")

	if a.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(a.Description)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(d.renderRecords())

	return lipgloss.NewStyle().Width(d.width).Render(sb.String())
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return styles.KeyStyle.Render(fmt.Sprintf("%-12s", label)) + value + "\n"
}

func (d *Detail) renderProfile() string {
	a := d.animal
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Profile"))
	sb.WriteString("\n")
	if a.Species != nil {
		sb.WriteString(field("Species", a.Species.SpeciesName))
	}
	if a.Breed != nil {
		sb.WriteString(field("Breed", a.Breed.BreedName))
	}
	sb.WriteString(field("Sex", catalog.SexLabel(a.Sex)))
	sb.WriteString(field("Size", a.Size))
	sb.WriteString(field("Age", fmt.Sprintf("%d", a.Age)))
	sb.WriteString(field("Color", a.Color))
	sterilized := "No"
	if a.IsSterilized {
		sterilized = "Sí"
	}
	sb.WriteString(field("Sterilized", sterilized))
	if a.Shelter != nil {
		sb.WriteString(field("Shelter", a.Shelter.ShelterName))
	}
	return sb.String()
}

func (d *Detail) renderPhotos() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s Photos (%d)", icons.Photo.String(), len(d.animal.Photos))))
	sb.WriteString("\n")
	sb.WriteString(field("Cover", d.animal.CoverURL(d.origin)))
	for _, p := range d.animal.Photos {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", p.IDPhoto, p.URL(d.origin)))
	}
	return sb.String()
}

func (d *Detail) renderRecords() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(icons.Medical.String() + " Medical records"))
	sb.WriteString("\n")
	if len(d.animal.MedicalRecords) == 0 {
		sb.WriteString(styles.Disabled.Render("  No medical records"))
		return sb.String()
	}
	for _, r := range d.animal.MedicalRecords {
		sb.WriteString(fmt.Sprintf("  %s  %s", styles.ValueStyle.Render(r.RecordDate), r.Description))
		if r.Veterinarian != "" {
			sb.WriteString(styles.Disabled.Render(" (" + r.Veterinarian + ")"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
