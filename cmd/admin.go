// ABOUTME: Admin commands for the paws CLI
// ABOUTME: Catalog maintenance gated on the Admin role (SuperAdmin satisfies it)

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/uiopaws/pawsctl/internal/access"
	"github.com/uiopaws/pawsctl/internal/client"
)

// adminGuard protects every admin subcommand.
var adminGuard = access.Require("Admin")

var (
	payloadFile string

	speciesName string

	breedInputName string
	breedSpecies   int

	donationInput   client.DonationItemUpsertPayload
	donationShelter int

	recordInput client.MedicalRecord
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the catalog (requires Admin)",
	Long: `Manage animals, species, breeds, shelters, donation needs, photos and
medical records. Every subcommand requires a session with the Admin role;
SuperAdmin satisfies it.

Animal and shelter bodies are read from a JSON or YAML file with --file.

Exit codes:
  0 - Success
  1 - Signed in without the Admin role
  2 - Error (not signed in, backend error, invalid input)`,
}

// adminFunc is the body of an admin subcommand, run after the role check.
type adminFunc func(ctx context.Context, d *deps, w io.Writer, args []string) int

// adminRun wraps fn with the Admin role check.
func adminRun(fn adminFunc) func(*cobra.Command, []string) {
	return runWith(func(ctx context.Context, w io.Writer, args []string) int {
		return runAdmin(ctx, w, args, fn)
	})
}

func runAdmin(ctx context.Context, w io.Writer, args []string, fn adminFunc) int {
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}
	switch adminGuard.Decide(d.session) {
	case access.Allow:
		return fn(ctx, d, w, args)
	case access.RedirectDashboard:
		fmt.Fprintf(w, "Error: the %s role is required\n", adminGuard.Required().Label())
		return 1
	default:
		fmt.Fprintln(w, "Error: not logged in. Run 'paws login' first.")
		return 2
	}
}

func adminCommand(use, short string, args cobra.PositionalArgs, fn adminFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		Run:   adminRun(fn),
	}
}

func adminGroup(use, short string, children ...*cobra.Command) *cobra.Command {
	c := &cobra.Command{Use: use, Short: short}
	c.AddCommand(children...)
	return c
}

func init() {
	rootCmd.AddCommand(adminCmd)

	// animals
	animalCreate := adminCommand("create", "Create an animal from --file", cobra.NoArgs, runAdminAnimalCreate)
	animalUpdate := adminCommand("update <id>", "Update an animal from --file", cobra.ExactArgs(1), runAdminAnimalUpdate)
	for _, c := range []*cobra.Command{animalCreate, animalUpdate} {
		c.Flags().StringVarP(&payloadFile, "file", "f", "", "JSON or YAML animal body")
		c.MarkFlagRequired("file")
	}
	adminCmd.AddCommand(adminGroup("animals", "Manage animals",
		adminCommand("list", "List all animals", cobra.NoArgs, runAdminAnimalList),
		animalCreate,
		animalUpdate,
		adminCommand("delete <id>", "Delete an animal", cobra.ExactArgs(1), runAdminAnimalDelete),
	))

	// species
	speciesCreate := adminCommand("create", "Create a species", cobra.NoArgs, runAdminSpeciesCreate)
	speciesUpdate := adminCommand("update <id>", "Rename a species", cobra.ExactArgs(1), runAdminSpeciesUpdate)
	for _, c := range []*cobra.Command{speciesCreate, speciesUpdate} {
		c.Flags().StringVar(&speciesName, "name", "", "Species name")
		c.MarkFlagRequired("name")
	}
	adminCmd.AddCommand(adminGroup("species", "Manage species",
		speciesCreate,
		speciesUpdate,
		adminCommand("delete <id>", "Delete a species", cobra.ExactArgs(1), runAdminSpeciesDelete),
	))

	// breeds
	breedCreate := adminCommand("create", "Create a breed", cobra.NoArgs, runAdminBreedCreate)
	breedUpdate := adminCommand("update <id>", "Update a breed", cobra.ExactArgs(1), runAdminBreedUpdate)
	for _, c := range []*cobra.Command{breedCreate, breedUpdate} {
		c.Flags().StringVar(&breedInputName, "name", "", "Breed name")
		c.Flags().IntVar(&breedSpecies, "species", 0, "Species id")
		c.MarkFlagRequired("name")
		c.MarkFlagRequired("species")
	}
	adminCmd.AddCommand(adminGroup("breeds", "Manage breeds",
		breedCreate,
		breedUpdate,
		adminCommand("delete <id>", "Delete a breed", cobra.ExactArgs(1), runAdminBreedDelete),
	))

	// shelters
	shelterCreate := adminCommand("create", "Create a shelter from --file", cobra.NoArgs, runAdminShelterCreate)
	shelterUpdate := adminCommand("update <id>", "Update a shelter from --file", cobra.ExactArgs(1), runAdminShelterUpdate)
	for _, c := range []*cobra.Command{shelterCreate, shelterUpdate} {
		c.Flags().StringVarP(&payloadFile, "file", "f", "", "JSON or YAML shelter body")
		c.MarkFlagRequired("file")
	}
	adminCmd.AddCommand(adminGroup("shelters", "Manage shelters",
		adminCommand("list", "List shelters", cobra.NoArgs, runAdminShelterList),
		shelterCreate,
		shelterUpdate,
		adminCommand("delete <id>", "Delete a shelter", cobra.ExactArgs(1), runAdminShelterDelete),
	))

	// donation needs
	donationCreate := adminCommand("create", "Create a donation need", cobra.NoArgs, runAdminDonationCreate)
	donationUpdate := adminCommand("update <id>", "Update a donation need", cobra.ExactArgs(1), runAdminDonationUpdate)
	for _, c := range []*cobra.Command{donationCreate, donationUpdate} {
		f := c.Flags()
		f.StringVar(&donationInput.ItemName, "name", "", "Item name")
		f.StringVar(&donationInput.Category, "category", "", "Category")
		f.IntVar(&donationInput.QuantityNeeded, "quantity", 0, "Quantity needed")
		f.IntVar(&donationShelter, "shelter", 0, "Shelter id (0 for none)")
		f.StringVar(&donationInput.Description, "description", "", "Description")
		c.MarkFlagRequired("name")
		c.MarkFlagRequired("category")
	}
	adminCmd.AddCommand(adminGroup("donations", "Manage donation needs",
		adminCommand("list", "List donation needs", cobra.NoArgs, runAdminDonationList),
		donationCreate,
		donationUpdate,
		adminCommand("delete <id>", "Delete a donation need", cobra.ExactArgs(1), runAdminDonationDelete),
	))

	// photos
	adminCmd.AddCommand(adminGroup("photos", "Manage animal photos",
		adminCommand("upload <animal-id> <image>", "Upload a photo for an animal", cobra.ExactArgs(2), runAdminPhotoUpload),
		adminCommand("replace <photo-id> <image>", "Replace a photo's image", cobra.ExactArgs(2), runAdminPhotoReplace),
		adminCommand("delete <photo-id>", "Delete a photo", cobra.ExactArgs(1), runAdminPhotoDelete),
	))

	// medical records
	recordCreate := adminCommand("create <animal-id>", "Add a medical record to an animal", cobra.ExactArgs(1), runAdminRecordCreate)
	recordUpdate := adminCommand("update <record-id>", "Update a medical record", cobra.ExactArgs(1), runAdminRecordUpdate)
	for _, c := range []*cobra.Command{recordCreate, recordUpdate} {
		f := c.Flags()
		f.StringVar(&recordInput.RecordDate, "date", "", "Record date (YYYY-MM-DD)")
		f.StringVar(&recordInput.Description, "description", "", "Description")
		f.StringVar(&recordInput.Veterinarian, "vet", "", "Veterinarian")
		c.MarkFlagRequired("date")
		c.MarkFlagRequired("description")
	}
	adminCmd.AddCommand(adminGroup("records", "Manage medical records",
		recordCreate,
		recordUpdate,
		adminCommand("delete <record-id>", "Delete a medical record", cobra.ExactArgs(1), runAdminRecordDelete),
	))
}

// decodePayload reads a JSON or YAML file into out using the JSON field names.
func decodePayload(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if doc == nil {
		return fmt.Errorf("%s is empty", path)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// printResult writes a created/updated entity as JSON or a one-line summary.
func printResult(w io.Writer, v any, summary string) int {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(v))
	} else {
		fmt.Fprintln(w, "✓ "+summary)
	}
	return 0
}

func printDeleted(w io.Writer, kind string, id int) int {
	return printResult(w, map[string]any{"status": "deleted", "kind": kind, "id": id},
		fmt.Sprintf("Deleted %s %d", kind, id))
}

// --- animals ---

func runAdminAnimalList(ctx context.Context, d *deps, w io.Writer, _ []string) int {
	page, err := d.api.AdminListAnimals(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(page))
		return 0
	}
	fmt.Fprintln(w, formatAnimalsHuman(page, nil))
	return 0
}

func loadAnimalPayload() (client.AnimalUpsertPayload, error) {
	var p client.AnimalUpsertPayload
	if err := decodePayload(payloadFile, &p); err != nil {
		return p, err
	}
	if p.AnimalName == "" {
		return p, errors.New("animal_name is required")
	}
	if p.IDBreed == 0 || p.IDShelter == 0 {
		return p, errors.New("id_breed and id_shelter are required")
	}
	return p, nil
}

func runAdminAnimalCreate(ctx context.Context, d *deps, w io.Writer, _ []string) int {
	p, err := loadAnimalPayload()
	if err != nil {
		return fail(w, err)
	}
	a, err := d.api.CreateAnimal(ctx, p)
	if err != nil {
		return fail(w, err)
	}
	return printResult(w, a, fmt.Sprintf("Created animal %d (%s)", a.IDAnimal, a.AnimalName))
}

func runAdminAnimalUpdate(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("animal", args[0])
	if err != nil {
		return fail(w, err)
	}
	p, err := loadAnimalPayload()
	if err != nil {
		return fail(w, err)
	}
	a, err := d.api.UpdateAnimal(ctx, id, p)
	if err != nil {
		return fail(w, err)
	}
	return printResult(w, a, fmt.Sprintf("Updated animal %d (%s)", id, a.AnimalName))
}

func runAdminAnimalDelete(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("animal", args[0])
	if err != nil {
		return fail(w, err)
	}
	if err := d.api.DeleteAnimal(ctx, id); err != nil {
		return fail(w, err)
	}
	return printDeleted(w, "animal", id)
}

// --- species ---

func runAdminSpeciesCreate(ctx context.Context, d *deps, w io.Writer, _ []string) int {
	s, err := d.api.CreateSpecies(ctx, client.SpeciesUpsertPayload{SpeciesName: speciesName})
	if err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printResult(w, s, fmt.Sprintf("Created species %d (%s)", s.IDSpecies, s.SpeciesName))
}

func runAdminSpeciesUpdate(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("species", args[0])
	if err != nil {
		return fail(w, err)
	}
	s, err := d.api.UpdateSpecies(ctx, id, client.SpeciesUpsertPayload{SpeciesName: speciesName})
	if err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printResult(w, s, fmt.Sprintf("Updated species %d (%s)", id, s.SpeciesName))
}

func runAdminSpeciesDelete(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("species", args[0])
	if err != nil {
		return fail(w, err)
	}
	if err := d.api.DeleteSpecies(ctx, id); err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printDeleted(w, "species", id)
}

// --- breeds ---

func runAdminBreedCreate(ctx context.Context, d *deps, w io.Writer, _ []string) int {
	b, err := d.api.CreateBreed(ctx, client.BreedUpsertPayload{BreedName: breedInputName, IDSpecies: breedSpecies})
	if err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printResult(w, b, fmt.Sprintf("Created breed %d (%s)", b.IDBreed, b.BreedName))
}

func runAdminBreedUpdate(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("breed", args[0])
	if err != nil {
		return fail(w, err)
	}
	b, err := d.api.UpdateBreed(ctx, id, client.BreedUpsertPayload{BreedName: breedInputName, IDSpecies: breedSpecies})
	if err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printResult(w, b, fmt.Sprintf("Updated breed %d (%s)", id, b.BreedName))
}

func runAdminBreedDelete(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("breed", args[0])
	if err != nil {
		return fail(w, err)
	}
	if err := d.api.DeleteBreed(ctx, id); err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printDeleted(w, "breed", id)
}

// --- shelters ---

func runAdminShelterList(ctx context.Context, d *deps, w io.Writer, _ []string) int {
	shelters, err := d.api.AdminListShelters(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(shelters))
		return 0
	}
	fmt.Fprintln(w, formatSheltersHuman(shelters))
	return 0
}

// loadShelterPayload accepts either an upsert body or a full shelter record
// and normalizes it through ShelterPayloadFrom, dropping any id_shelter.
func loadShelterPayload() (client.ShelterUpsertPayload, error) {
	var s client.Shelter
	if err := decodePayload(payloadFile, &s); err != nil {
		return client.ShelterUpsertPayload{}, err
	}
	if s.ShelterName == "" {
		return client.ShelterUpsertPayload{}, errors.New("shelter_name is required")
	}
	return client.ShelterPayloadFrom(s), nil
}

func runAdminShelterCreate(ctx context.Context, d *deps, w io.Writer, _ []string) int {
	p, err := loadShelterPayload()
	if err != nil {
		return fail(w, err)
	}
	s, err := d.api.CreateShelter(ctx, p)
	if err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printResult(w, s, fmt.Sprintf("Created shelter %d (%s)", s.IDShelter, s.ShelterName))
}

func runAdminShelterUpdate(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("shelter", args[0])
	if err != nil {
		return fail(w, err)
	}
	p, err := loadShelterPayload()
	if err != nil {
		return fail(w, err)
	}
	s, err := d.api.UpdateShelter(ctx, id, p)
	if err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printResult(w, s, fmt.Sprintf("Updated shelter %d (%s)", id, s.ShelterName))
}

func runAdminShelterDelete(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("shelter", args[0])
	if err != nil {
		return fail(w, err)
	}
	if err := d.api.DeleteShelter(ctx, id); err != nil {
		return fail(w, err)
	}
	d.catalogs.Invalidate()
	return printDeleted(w, "shelter", id)
}

// --- donation needs ---

func runAdminDonationList(ctx context.Context, d *deps, w io.Writer, _ []string) int {
	items, err := d.api.AdminListDonationItems(ctx)
	if err != nil {
		return fail(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(items))
		return 0
	}
	fmt.Fprintln(w, formatDonationsHuman(&client.Page[client.DonationItem]{Data: items, CurrentPage: 1, LastPage: 1, Total: len(items)}))
	return 0
}

func donationPayload() client.DonationItemUpsertPayload {
	p := donationInput
	p.IDShelter = nil
	if donationShelter > 0 {
		id := donationShelter
		p.IDShelter = &id
	}
	return p
}

func runAdminDonationCreate(ctx context.Context, d *deps, w io.Writer, _ []string) int {
	p := donationPayload()
	if err := d.api.CreateDonationItem(ctx, p); err != nil {
		return fail(w, err)
	}
	return printResult(w, p, fmt.Sprintf("Created donation need %q", p.ItemName))
}

func runAdminDonationUpdate(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("donation item", args[0])
	if err != nil {
		return fail(w, err)
	}
	p := donationPayload()
	if err := d.api.UpdateDonationItem(ctx, id, p); err != nil {
		return fail(w, err)
	}
	return printResult(w, p, fmt.Sprintf("Updated donation need %d", id))
}

func runAdminDonationDelete(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("donation item", args[0])
	if err != nil {
		return fail(w, err)
	}
	if err := d.api.DeleteDonationItem(ctx, id); err != nil {
		return fail(w, err)
	}
	return printDeleted(w, "donation item", id)
}

// --- photos ---

func sendImage(path string, send func(filename string, r io.Reader) (*client.Photo, error)) (*client.Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return send(filepath.Base(path), f)
}

func runAdminPhotoUpload(ctx context.Context, d *deps, w io.Writer, args []string) int {
	animalID, err := parseID("animal", args[0])
	if err != nil {
		return fail(w, err)
	}
	photo, err := sendImage(args[1], func(name string, r io.Reader) (*client.Photo, error) {
		return d.api.UploadPhoto(ctx, animalID, name, r)
	})
	if err != nil {
		return fail(w, err)
	}
	return printResult(w, photo, fmt.Sprintf("Uploaded photo %d: %s", photo.IDPhoto, photo.URL(d.api.Origin())))
}

func runAdminPhotoReplace(ctx context.Context, d *deps, w io.Writer, args []string) int {
	photoID, err := parseID("photo", args[0])
	if err != nil {
		return fail(w, err)
	}
	photo, err := sendImage(args[1], func(name string, r io.Reader) (*client.Photo, error) {
		return d.api.ReplacePhoto(ctx, photoID, name, r)
	})
	if err != nil {
		return fail(w, err)
	}
	return printResult(w, photo, fmt.Sprintf("Replaced photo %d: %s", photoID, photo.URL(d.api.Origin())))
}

func runAdminPhotoDelete(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("photo", args[0])
	if err != nil {
		return fail(w, err)
	}
	if err := d.api.DeletePhoto(ctx, id); err != nil {
		return fail(w, err)
	}
	return printDeleted(w, "photo", id)
}

// --- medical records ---

func runAdminRecordCreate(ctx context.Context, d *deps, w io.Writer, args []string) int {
	animalID, err := parseID("animal", args[0])
	if err != nil {
		return fail(w, err)
	}
	rec, err := d.api.CreateMedicalRecord(ctx, animalID, recordInput)
	if err != nil {
		return fail(w, err)
	}
	return printResult(w, rec, fmt.Sprintf("Added medical record %d to animal %d", rec.IDMedicalRecord, animalID))
}

func runAdminRecordUpdate(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("medical record", args[0])
	if err != nil {
		return fail(w, err)
	}
	rec, err := d.api.UpdateMedicalRecord(ctx, id, recordInput)
	if err != nil {
		return fail(w, err)
	}
	return printResult(w, rec, "Updated medical record "+strconv.Itoa(id))
}

func runAdminRecordDelete(ctx context.Context, d *deps, w io.Writer, args []string) int {
	id, err := parseID("medical record", args[0])
	if err != nil {
		return fail(w, err)
	}
	if err := d.api.DeleteMedicalRecord(ctx, id); err != nil {
		return fail(w, err)
	}
	return printDeleted(w, "medical record", id)
}
