// ABOUTME: Tests for the public browsing commands (animals, catalog, donations)
// ABOUTME: Verifies query parameters, lookups and human/JSON output

package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
)

func catalogBackend(t *testing.T, hits *atomic.Int32) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/public/species", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		writeJSON(w, http.StatusOK, []client.Species{{IDSpecies: 1, SpeciesName: "Perro"}, {IDSpecies: 2, SpeciesName: "Gato"}})
	})
	mux.HandleFunc("GET /api/public/breeds", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []client.Breed{
			{IDBreed: 10, BreedName: "Labrador", IDSpecies: 1},
			{IDBreed: 11, BreedName: "Caniche", IDSpecies: 1},
			{IDBreed: 20, BreedName: "Siamés", IDSpecies: 2},
		})
	})
	mux.HandleFunc("GET /api/public/shelters", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []client.Shelter{
			{IDShelter: 5, ShelterName: "Refugio Quito", Address: client.Address{City: "Quito", Country: "Ecuador"}, ContactEmail: "hola@refugio.ec"},
			{IDShelter: 6, ShelterName: "Patitas Cuenca", Address: client.Address{Raw: "Av. Solano, Cuenca"}},
		})
	})
	return mux
}

func TestRunAnimalsList_SendsNormalizedFilters(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/public/animals", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, client.Page[client.Animal]{
			Data: []client.Animal{{
				IDAnimal: 1, AnimalName: "Luna", Status: "Available", Sex: "Female", Size: "Mediano", Age: 3,
				Breed:   &client.Breed{BreedName: "Labrador"},
				Shelter: &client.Shelter{ShelterName: "Refugio Quito"},
			}},
			CurrentPage: 2, LastPage: 4, Total: 31,
		})
	})
	env := newTestEnv(t, mux, nil)

	filters := catalog.AnimalFilters{IDSpecies: "1", IDBreed: "10", Size: "all", AnimalName: " luna ", Color: "negro"}
	var buf bytes.Buffer
	if code := runAnimalsList(env.ctx, &buf, filters, 2); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	for _, want := range []string{"id_species=1", "id_breed=10", "animal_name=luna", "color=negro", "page=2"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("expected query to contain %q, got %q", want, gotQuery)
		}
	}
	if strings.Contains(gotQuery, "size") {
		t.Errorf("expected size=all to be omitted, got %q", gotQuery)
	}

	out := buf.String()
	for _, want := range []string{"Luna", "Disponible", "Hembra", "Labrador", "Refugio Quito", "Page 2 of 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestRunAnimalsList_LooksUpShelterNames(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /api/public/shelters", catalogBackend(t, nil))
	mux.HandleFunc("GET /api/public/animals", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.Page[client.Animal]{
			Data:        []client.Animal{{IDAnimal: 2, AnimalName: "Toby", IDShelter: 6}},
			CurrentPage: 1, LastPage: 1, Total: 1,
		})
	})
	env := newTestEnv(t, mux, nil)

	var buf bytes.Buffer
	if code := runAnimalsList(env.ctx, &buf, catalog.AnimalFilters{}, 1); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Patitas Cuenca") {
		t.Errorf("expected shelter name from catalog, got %q", buf.String())
	}
}

func TestRunAnimalsList_Empty(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.Page[client.Animal]{CurrentPage: 1, LastPage: 1})
	}), nil)

	var buf bytes.Buffer
	if code := runAnimalsList(env.ctx, &buf, catalog.AnimalFilters{}, 1); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "No animals match") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRunAnimalsList_BackendError(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "mantenimiento"})
	}), nil)

	var buf bytes.Buffer
	if code := runAnimalsList(env.ctx, &buf, catalog.AnimalFilters{}, 1); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.HasPrefix(buf.String(), "Error: ") {
		t.Errorf("expected error line, got %q", buf.String())
	}
}

func TestRunAnimalsShow(t *testing.T) {
	var origin string
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public/animals/9" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, client.Animal{
			IDAnimal: 9, AnimalName: "Milo", Status: "Adopted", Sex: "Male",
			Photos:         []client.Photo{{IDPhoto: 4, ImageURL: "/storage/milo.jpg"}},
			MedicalRecords: []client.MedicalRecord{{IDMedicalRecord: 1, RecordDate: "2024-05-01", Description: "Vacuna", Veterinarian: "Dra. Ruiz"}},
		})
	}), nil)
	origin = env.server.URL

	var buf bytes.Buffer
	if code := runAnimalsShow(env.ctx, &buf, "9"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"Milo (#9)", "Adoptado", "Macho", origin + "/storage/milo.jpg", "Vacuna", "Dra. Ruiz"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestRunAnimalsShow_InvalidID(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler(), nil)

	for _, id := range []string{"abc", "0", "-3"} {
		var buf bytes.Buffer
		if code := runAnimalsShow(env.ctx, &buf, id); code != 2 {
			t.Errorf("id %q: expected exit 2, got %d", id, code)
		}
	}
}

func TestRunCatalogBreeds_FiltersBySpeciesAndSearch(t *testing.T) {
	env := newTestEnv(t, catalogBackend(t, nil), nil)

	var buf bytes.Buffer
	if code := runCatalogBreeds(env.ctx, &buf, 1, ""); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Labrador") || !strings.Contains(out, "Caniche") || strings.Contains(out, "Siamés") {
		t.Errorf("expected only dog breeds, got %q", out)
	}
	if !strings.Contains(out, "Perro") {
		t.Errorf("expected species name resolved, got %q", out)
	}

	buf.Reset()
	if code := runCatalogBreeds(env.ctx, &buf, 0, "siames"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Siamés") || strings.Contains(buf.String(), "Labrador") {
		t.Errorf("expected accent-insensitive match, got %q", buf.String())
	}
}

func TestRunCatalogSpecies_CachesAcrossCalls(t *testing.T) {
	var hits atomic.Int32
	env := newTestEnv(t, catalogBackend(t, &hits), nil)

	for i := 0; i < 3; i++ {
		var buf bytes.Buffer
		if code := runCatalogSpecies(env.ctx, &buf, ""); code != 0 {
			t.Fatalf("expected exit 0, got %d", code)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("expected one backend call, got %d", hits.Load())
	}
}

func TestRunCatalogShelters_JSON(t *testing.T) {
	withJSONOutput(t)
	env := newTestEnv(t, catalogBackend(t, nil), nil)

	var buf bytes.Buffer
	if code := runCatalogShelters(env.ctx, &buf, "quito"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var shelters []client.Shelter
	if err := json.Unmarshal(buf.Bytes(), &shelters); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(shelters) != 1 || shelters[0].IDShelter != 5 {
		t.Errorf("expected only Refugio Quito, got %+v", shelters)
	}
}

func TestFormatSheltersHuman_AddressShapes(t *testing.T) {
	out := formatSheltersHuman([]client.Shelter{
		{IDShelter: 5, ShelterName: "Refugio Quito", Address: client.Address{City: "Quito", Country: "Ecuador"}, ContactEmail: "hola@refugio.ec"},
		{IDShelter: 6, ShelterName: "Patitas Cuenca", Address: client.Address{Raw: "Av. Solano, Cuenca"}},
	})
	for _, want := range []string{"Quito, Ecuador", "Av. Solano, Cuenca", "hola@refugio.ec"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestRunDonationsList(t *testing.T) {
	var gotQuery string
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, client.Page[client.DonationItem]{
			Data: []client.DonationItem{
				{IDDonationItemCatalog: 1, ItemName: "Croquetas", Category: "Alimentos", QuantityNeeded: 40, CollectedQuantity: 10},
				{IDDonationItemCatalog: 2, ItemName: "Mantas", Category: "Ropa de cama", QuantityNeeded: 5, CollectedQuantity: 9},
			},
			CurrentPage: 1, LastPage: 1,
		})
	}), nil)

	var buf bytes.Buffer
	code := runDonationsList(env.ctx, &buf, client.DonationFilter{Category: "all", Search: "cro", Page: 1})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if strings.Contains(gotQuery, "category") {
		t.Errorf("expected category=all omitted, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "search=cro") {
		t.Errorf("expected search in query, got %q", gotQuery)
	}
	out := buf.String()
	if !strings.Contains(out, "25%") || !strings.Contains(out, "100%") {
		t.Errorf("expected progress 25%% and capped 100%%, got %q", out)
	}
}
