// ABOUTME: Case- and accent-insensitive substring search for catalog screens
// ABOUTME: "perro" matches "Perro", "cafe" matches "Café"

package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/uiopaws/pawsctl/internal/client"
)

// Fold lowercases s and strips diacritics for comparison.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// Match reports whether query occurs in any field. An empty query matches everything.
func Match(query string, fields ...string) bool {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}

// FilterSpecies keeps species whose name matches query.
func FilterSpecies(list []client.Species, query string) []client.Species {
	return filter(list, func(s client.Species) bool {
		return Match(query, s.SpeciesName)
	})
}

// FilterBreeds keeps breeds whose name or species name matches query.
func FilterBreeds(list []client.Breed, cats *Catalogs, query string) []client.Breed {
	return filter(list, func(b client.Breed) bool {
		speciesName := ""
		if b.Species != nil {
			speciesName = b.Species.SpeciesName
		} else if cats != nil {
			speciesName = cats.SpeciesName(b.IDSpecies)
		}
		return Match(query, b.BreedName, speciesName)
	})
}

// FilterShelters keeps shelters whose name, address or email matches query.
func FilterShelters(list []client.Shelter, query string) []client.Shelter {
	return filter(list, func(s client.Shelter) bool {
		return Match(query, s.ShelterName, s.Address.String(), s.EmailAddress())
	})
}

// FilterAnimals keeps animals whose name, status or breed matches query.
func FilterAnimals(list []client.Animal, query string) []client.Animal {
	return filter(list, func(a client.Animal) bool {
		breed := ""
		if a.Breed != nil {
			breed = a.Breed.BreedName
		}
		return Match(query, a.AnimalName, a.Status, StatusLabel(a.Status), breed)
	})
}

// FilterDonations keeps donation items whose name or category matches query.
func FilterDonations(list []client.DonationItem, query string) []client.DonationItem {
	return filter(list, func(d client.DonationItem) bool {
		return Match(query, d.ItemName, d.Category, d.Description)
	})
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
