// ABOUTME: Public animal browsing commands for the paws CLI
// ABOUTME: Lists adoptable animals with filters and shows one animal in detail

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
)

var (
	animalFilters catalog.AnimalFilters
	animalPage    int
)

var animalsCmd = &cobra.Command{
	Use:   "animals",
	Short: "Browse adoptable animals",
}

var animalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List animals",
	Long: `List adoptable animals, one page at a time.

Filters accept "all" to mean no filter. Choosing a species clears the breed.

Example:
  paws animals list --species 1 --size Mediano --page 2`,
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runAnimalsList(ctx, w, animalFilters, animalPage)
	}),
}

var animalsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one animal with photos and medical records",
	Args:  cobra.ExactArgs(1),
	Run: runWith(func(ctx context.Context, w io.Writer, args []string) int {
		return runAnimalsShow(ctx, w, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(animalsCmd)
	animalsCmd.AddCommand(animalsListCmd, animalsShowCmd)

	f := animalsListCmd.Flags()
	f.StringVar(&animalFilters.AnimalName, "name", "", "Filter by animal name")
	f.StringVar(&animalFilters.IDSpecies, "species", "", "Filter by species id")
	f.StringVar(&animalFilters.IDBreed, "breed", "", "Filter by breed id")
	f.StringVar(&animalFilters.IDShelter, "shelter", "", "Filter by shelter id")
	f.StringVar(&animalFilters.Size, "size", "", "Filter by size: "+strings.Join(catalog.Sizes, ", "))
	f.StringVar(&animalFilters.Color, "color", "", "Filter by color")
	f.IntVar(&animalPage, "page", 1, "Page number")
}

// normalizeFilters applies the form rules ("all" unsets, species clears breed)
// to values that arrived together on the command line.
func normalizeFilters(in catalog.AnimalFilters) catalog.AnimalFilters {
	var out catalog.AnimalFilters
	out.Set("id_species", in.IDSpecies)
	out.Set("id_breed", in.IDBreed)
	out.Set("animal_name", in.AnimalName)
	out.Set("id_shelter", in.IDShelter)
	out.Set("size", in.Size)
	out.Set("color", in.Color)
	return out
}

// runAnimalsList fetches one page of animals and returns exit code
func runAnimalsList(ctx context.Context, w io.Writer, filters catalog.AnimalFilters, page int) int {
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}
	if page < 1 {
		page = 1
	}

	query := normalizeFilters(filters).Query(page)
	result, err := d.api.ListAnimals(ctx, query)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(result))
		return 0
	}

	var cats *catalog.Catalogs
	if needsShelterLookup(result.Data) {
		cats = &catalog.Catalogs{}
		if shelters, err := d.catalogs.Shelters(ctx); err == nil {
			cats.Shelters = shelters
		} else {
			slog.Debug("Shelter lookup failed", "error", err)
		}
	}
	fmt.Fprintln(w, formatAnimalsHuman(result, cats))
	return 0
}

func needsShelterLookup(animals []client.Animal) bool {
	for _, a := range animals {
		if a.Shelter == nil && a.IDShelter != 0 {
			return true
		}
	}
	return false
}

// formatAnimalsHuman renders a page of animals as a table
func formatAnimalsHuman(page *client.Page[client.Animal], cats *catalog.Catalogs) string {
	if len(page.Data) == 0 {
		return "No animals match the current filters."
	}

	rows := make([][]string, 0, len(page.Data))
	for _, a := range page.Data {
		rows = append(rows, []string{
			strconv.Itoa(a.IDAnimal),
			a.AnimalName,
			breedName(a),
			catalog.SexLabel(a.Sex),
			a.Size,
			strconv.Itoa(a.Age),
			catalog.StatusLabel(a.Status),
			shelterName(a, cats),
		})
	}

	table := formatTable([]string{"ID", "Name", "Breed", "Sex", "Size", "Age", "Status", "Shelter"}, rows)
	return fmt.Sprintf("%s\nPage %d of %d (%d animals)", table, max(page.CurrentPage, 1), max(page.LastPage, 1), page.Total)
}

func breedName(a client.Animal) string {
	if a.Breed == nil {
		return "-"
	}
	return a.Breed.BreedName
}

func shelterName(a client.Animal, cats *catalog.Catalogs) string {
	if a.Shelter != nil {
		return a.Shelter.ShelterName
	}
	if cats != nil {
		if name := cats.ShelterName(a.IDShelter); name != "" {
			return name
		}
	}
	return "-"
}

// parseID parses a positive numeric id argument
func parseID(kind, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}

// runAnimalsShow prints one animal and returns exit code
func runAnimalsShow(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID("animal", rawID)
	if err != nil {
		return fail(w, err)
	}
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}

	animal, err := d.api.GetAnimal(ctx, id)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(animal))
	} else {
		fmt.Fprintln(w, formatAnimalHuman(animal, d.api.Origin()))
	}
	return 0
}

// formatAnimalHuman formats one animal for human readability
func formatAnimalHuman(a *client.Animal, origin string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (#%d)\n", a.AnimalName, a.IDAnimal)
	fmt.Fprintf(&sb, "Status:      %s\n", catalog.StatusLabel(a.Status))
	if a.Species != nil {
		fmt.Fprintf(&sb, "Species:     %s\n", a.Species.SpeciesName)
	}
	fmt.Fprintf(&sb, "Breed:       %s\n", breedName(*a))
	fmt.Fprintf(&sb, "Sex:         %s\n", catalog.SexLabel(a.Sex))
	fmt.Fprintf(&sb, "Size:        %s\n", a.Size)
	fmt.Fprintf(&sb, "Age:         %d\n", a.Age)
	fmt.Fprintf(&sb, "Color:       %s\n", a.Color)
	fmt.Fprintf(&sb, "Sterilized:  %t\n", a.IsSterilized)
	if a.Shelter != nil {
		fmt.Fprintf(&sb, "Shelter:     %s\n", a.Shelter.ShelterName)
	}
	fmt.Fprintf(&sb, "Cover:       %s\n", a.CoverURL(origin))
	if a.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", a.Description)
	}

	if len(a.Photos) > 0 {
		sb.WriteString("\nPhotos:\n")
		for _, p := range a.Photos {
			fmt.Fprintf(&sb, "  [%d] %s\n", p.IDPhoto, p.URL(origin))
		}
	}

	if len(a.MedicalRecords) > 0 {
		sb.WriteString("\nMedical records:\n")
		for _, r := range a.MedicalRecords {
			fmt.Fprintf(&sb, "  [%d] %s  %s (%s)\n", r.IDMedicalRecord, r.RecordDate, r.Description, r.Veterinarian)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
