// ABOUTME: Tests for the animal registration wizard
// ABOUTME: Validates defaults, species-driven breed options, and the final payload

package wizard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
)

func testCatalogs() *catalog.Catalogs {
	return &catalog.Catalogs{
		Species: []client.Species{
			{IDSpecies: 1, SpeciesName: "Perro"},
			{IDSpecies: 2, SpeciesName: "Gato"},
			{IDSpecies: 3, SpeciesName: "Conejo"},
		},
		Breeds: []client.Breed{
			{IDBreed: 10, BreedName: "Labrador", IDSpecies: 1},
			{IDBreed: 11, BreedName: "Mestizo", IDSpecies: 1},
			{IDBreed: 20, BreedName: "Siamés", IDSpecies: 2},
		},
		Shelters: []client.Shelter{
			{IDShelter: 7, ShelterName: "Refugio Norte"},
		},
	}
}

func TestWizardDefaults(t *testing.T) {
	w := New(testCatalogs())

	if w.step != 1 {
		t.Errorf("expected step 1, got %d", w.step)
	}
	if w.speciesID != 1 || w.shelterID != 7 {
		t.Errorf("expected first species and shelter preselected, got %d/%d", w.speciesID, w.shelterID)
	}
	if w.sex != "Macho" || w.size != "Mediano" || w.status != "Disponible" {
		t.Errorf("unexpected defaults %q %q %q", w.sex, w.size, w.status)
	}
}

func TestWizardEmptyCatalogs(t *testing.T) {
	w := New(&catalog.Catalogs{})
	if w.speciesID != 0 || w.shelterID != 0 {
		t.Error("expected no preselection without catalogs")
	}
}

func TestBreedOptionsFollowSpecies(t *testing.T) {
	w := New(testCatalogs())

	w.speciesID = 1
	if got := len(w.breedOptions()); got != 2 {
		t.Errorf("expected 2 dog breeds, got %d", got)
	}

	w.speciesID = 2
	opts := w.breedOptions()
	if len(opts) != 1 || opts[0].Value != 20 {
		t.Errorf("expected only Siamés, got %+v", opts)
	}
}

func TestAdvanceThroughSteps(t *testing.T) {
	w := New(testCatalogs())
	w.name = "  Luna "
	w.age = "3"
	w.color = "Negro"

	w.advanceStep()
	if w.step != 2 {
		t.Fatalf("expected step 2, got %d", w.step)
	}

	w.speciesID = 2
	w.advanceStep()
	if w.step != 3 {
		t.Fatalf("expected step 3, got %d", w.step)
	}
	if w.breedID != 20 {
		t.Errorf("expected first breed of species preselected, got %d", w.breedID)
	}

	w.sterilized = true
	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	msg, ok := cmd().(WizardCompleteMsg)
	if !ok {
		t.Fatalf("expected WizardCompleteMsg, got %T", cmd())
	}

	want := client.AnimalUpsertPayload{
		AnimalName:   "Luna",
		Status:       "Disponible",
		Sex:          "Macho",
		Size:         "Mediano",
		IDBreed:      20,
		IDShelter:    7,
		IsSterilized: true,
		Age:          3,
		Color:        "Negro",
	}
	if msg.Payload != want {
		t.Errorf("unexpected payload\n got %+v\nwant %+v", msg.Payload, want)
	}
}

func TestSpeciesWithoutBreedsStaysOnStep2(t *testing.T) {
	w := New(testCatalogs())
	w.advanceStep()

	w.speciesID = 3
	w.advanceStep()

	if w.step != 2 {
		t.Errorf("expected to stay on step 2, got %d", w.step)
	}
	if !strings.Contains(w.View(), "No breeds registered for Conejo") {
		t.Error("expected missing breeds error in view")
	}
}

func TestEscCancels(t *testing.T) {
	w := New(testCatalogs())
	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(WizardCancelledMsg); !ok {
		t.Error("expected WizardCancelledMsg")
	}
}

func TestProgressShowsSteps(t *testing.T) {
	w := New(testCatalogs())
	w.SetWidth(80)
	view := w.renderProgress()
	for _, name := range stepNames {
		if !strings.Contains(view, name) {
			t.Errorf("expected progress to mention %q", name)
		}
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"0", false},
		{"12", false},
		{" 4 ", false},
		{"-1", true},
		{"abc", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := validateAge(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for input %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tc.input, err)
			}
		})
	}
}

func TestValidateRequired(t *testing.T) {
	if validateRequired("   ") == nil {
		t.Error("expected blank name to fail")
	}
	if validateRequired("Luna") != nil {
		t.Error("expected name to pass")
	}
}
