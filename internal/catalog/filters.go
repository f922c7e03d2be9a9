// ABOUTME: Animal listing filter state and pagination
// ABOUTME: Mirrors the public listing controls: "all" means unset, species changes reset breed

package catalog

import (
	"strconv"
	"strings"

	"github.com/uiopaws/pawsctl/internal/client"
)

// AllOption is the selector value meaning "no filter".
const AllOption = "all"

// Sizes accepted by the animals filter.
var Sizes = []string{"Pequeño", "Mediano", "Grande"}

// AnimalFilters is the editable filter form for the public listing.
// Empty string means unset for every field.
type AnimalFilters struct {
	AnimalName string
	IDSpecies  string
	IDBreed    string
	IDShelter  string
	Size       string
	Color      string
}

// Set updates one field. "all" is stored as unset and choosing a species
// clears the breed. It reports whether the value changed.
func (f *AnimalFilters) Set(field, value string) bool {
	if value == AllOption {
		value = ""
	}
	var target *string
	switch field {
	case "animal_name":
		target = &f.AnimalName
	case "id_species":
		target = &f.IDSpecies
	case "id_breed":
		target = &f.IDBreed
	case "id_shelter":
		target = &f.IDShelter
	case "size":
		target = &f.Size
	case "color":
		target = &f.Color
	default:
		return false
	}
	if *target == value {
		return false
	}
	*target = value
	if field == "id_species" {
		f.IDBreed = ""
	}
	return true
}

// Query converts the form into request parameters for page.
func (f AnimalFilters) Query(page int) client.AnimalFilter {
	return client.AnimalFilter{
		AnimalName: strings.TrimSpace(f.AnimalName),
		IDSpecies:  atoi(f.IDSpecies),
		IDBreed:    atoi(f.IDBreed),
		IDShelter:  atoi(f.IDShelter),
		Size:       f.Size,
		Color:      strings.TrimSpace(f.Color),
		Page:       page,
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Pager tracks the current and last page of a listing.
type Pager struct {
	Current int
	Last    int
}

// NewPager starts at page 1.
func NewPager() Pager {
	return Pager{Current: 1, Last: 1}
}

// Update records the bounds reported by the backend.
func (p *Pager) Update(current, last int) {
	if last < 1 {
		last = 1
	}
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}
	p.Current, p.Last = current, last
}

// Next advances one page, reporting whether it moved.
func (p *Pager) Next() bool {
	if p.Current >= p.Last {
		return false
	}
	p.Current++
	return true
}

// Prev goes back one page, reporting whether it moved.
func (p *Pager) Prev() bool {
	if p.Current <= 1 {
		return false
	}
	p.Current--
	return true
}

// Reset returns to page 1, used whenever filters change.
func (p *Pager) Reset() {
	p.Current = 1
}
