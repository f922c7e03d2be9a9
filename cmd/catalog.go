// ABOUTME: Catalog lookup commands for the paws CLI
// ABOUTME: Lists species, breeds and shelters with accent-insensitive search

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
)

var (
	catalogSearch  string
	catalogSpecies int
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List species, breeds and shelters",
}

var catalogSpeciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List species",
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runCatalogSpecies(ctx, w, catalogSearch)
	}),
}

var catalogBreedsCmd = &cobra.Command{
	Use:   "breeds",
	Short: "List breeds",
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runCatalogBreeds(ctx, w, catalogSpecies, catalogSearch)
	}),
}

var catalogSheltersCmd = &cobra.Command{
	Use:   "shelters",
	Short: "List shelters",
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runCatalogShelters(ctx, w, catalogSearch)
	}),
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogSpeciesCmd, catalogBreedsCmd, catalogSheltersCmd)
	catalogCmd.PersistentFlags().StringVar(&catalogSearch, "search", "", "Case- and accent-insensitive search")
	catalogBreedsCmd.Flags().IntVar(&catalogSpecies, "species", 0, "Only breeds of this species id")
}

// runCatalogSpecies lists species and returns exit code
func runCatalogSpecies(ctx context.Context, w io.Writer, search string) int {
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}
	species, err := d.catalogs.Species(ctx)
	if err != nil {
		return fail(w, err)
	}
	species = catalog.FilterSpecies(species, search)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(species))
		return 0
	}
	rows := make([][]string, 0, len(species))
	for _, s := range species {
		rows = append(rows, []string{strconv.Itoa(s.IDSpecies), s.SpeciesName})
	}
	fmt.Fprintln(w, formatTable([]string{"ID", "Species"}, rows))
	return 0
}

// runCatalogBreeds lists breeds, optionally of one species, and returns exit code
func runCatalogBreeds(ctx context.Context, w io.Writer, speciesID int, search string) int {
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}
	cats, err := d.catalogs.LoadAll(ctx)
	if err != nil {
		return fail(w, err)
	}
	breeds := catalog.FilterBreeds(catalog.BreedsForSpecies(cats.Breeds, speciesID), cats, search)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(breeds))
		return 0
	}
	fmt.Fprintln(w, formatBreedsHuman(breeds, cats))
	return 0
}

func formatBreedsHuman(breeds []client.Breed, cats *catalog.Catalogs) string {
	rows := make([][]string, 0, len(breeds))
	for _, b := range breeds {
		species := cats.SpeciesName(b.IDSpecies)
		if b.Species != nil {
			species = b.Species.SpeciesName
		}
		rows = append(rows, []string{strconv.Itoa(b.IDBreed), b.BreedName, species})
	}
	return formatTable([]string{"ID", "Breed", "Species"}, rows)
}

// runCatalogShelters lists shelters and returns exit code
func runCatalogShelters(ctx context.Context, w io.Writer, search string) int {
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}
	shelters, err := d.catalogs.Shelters(ctx)
	if err != nil {
		return fail(w, err)
	}
	shelters = catalog.FilterShelters(shelters, search)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(shelters))
		return 0
	}
	fmt.Fprintln(w, formatSheltersHuman(shelters))
	return 0
}

func formatSheltersHuman(shelters []client.Shelter) string {
	rows := make([][]string, 0, len(shelters))
	for _, s := range shelters {
		rows = append(rows, []string{
			strconv.Itoa(s.IDShelter),
			s.ShelterName,
			s.Address.String(),
			s.PhoneNumber(),
			s.EmailAddress(),
		})
	}
	return formatTable([]string{"ID", "Shelter", "Address", "Phone", "Email"}, rows)
}
