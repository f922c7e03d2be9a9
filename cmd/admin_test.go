// ABOUTME: Tests for the admin commands
// ABOUTME: Verifies the Admin role gate, payload files and catalog invalidation

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/uiopaws/pawsctl/internal/client"
)

func noop(t *testing.T) adminFunc {
	t.Helper()
	return func(_ context.Context, _ *deps, w io.Writer, _ []string) int {
		io.WriteString(w, "ran")
		return 0
	}
}

func TestRunAdmin_Gate(t *testing.T) {
	tests := []struct {
		name     string
		seed     map[string]string
		wantCode int
		wantRan  bool
	}{
		{"not signed in", nil, 2, false},
		{"user denied", signedIn(t, "User"), 1, false},
		{"admin allowed", signedIn(t, "Admin"), 0, true},
		{"super admin allowed", signedIn(t, "Super Admin"), 0, true},
		{"unknown role denied", signedIn(t, "Volunteer"), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, http.NotFoundHandler(), tt.seed)
			var buf bytes.Buffer
			code := runAdmin(env.ctx, &buf, nil, noop(t))
			if code != tt.wantCode {
				t.Errorf("expected exit %d, got %d: %s", tt.wantCode, code, buf.String())
			}
			if ran := strings.Contains(buf.String(), "ran"); ran != tt.wantRan {
				t.Errorf("expected ran=%v, output %q", tt.wantRan, buf.String())
			}
		})
	}
}

func TestDecodePayload_YAMLUsesJSONNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animal.yaml")
	doc := "animal_name: Luna\nstatus: Disponible\nsex: Hembra\nsize: Pequeño\nid_breed: 10\nid_shelter: 5\nis_sterilized: true\nage: 2\ncolor: negro\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	var p client.AnimalUpsertPayload
	if err := decodePayload(path, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AnimalName != "Luna" || p.IDBreed != 10 || p.IDShelter != 5 || !p.IsSterilized || p.Size != "Pequeño" {
		t.Errorf("unexpected payload %+v", p)
	}
}

func TestDecodePayload_JSONAndErrors(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "species.json")
	os.WriteFile(jsonPath, []byte(`{"species_name": "Conejo"}`), 0644)

	var s client.SpeciesUpsertPayload
	if err := decodePayload(jsonPath, &s); err != nil || s.SpeciesName != "Conejo" {
		t.Errorf("expected JSON decoded, got %+v (%v)", s, err)
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, nil, 0644)
	if err := decodePayload(empty, &s); err == nil {
		t.Error("expected error for empty file")
	}
	if err := decodePayload(filepath.Join(dir, "missing.yaml"), &s); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunAdminShelterCreate_SanitizesPayload(t *testing.T) {
	var body map[string]any
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/shelters" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-seeded" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, client.Shelter{IDShelter: 12, ShelterName: "Huellitas"})
	}), signedIn(t, "Admin"))

	path := filepath.Join(t.TempDir(), "shelter.yaml")
	os.WriteFile(path, []byte("id_shelter: 99\nshelter_name: Huellitas\nemail: info@huellitas.ec\ncontact_phone: '022345678'\naddress:\n  street: Av. Amazonas\n  city: Quito\n"), 0644)
	payloadFile = path
	defer func() { payloadFile = "" }()

	var buf bytes.Buffer
	if code := runAdminShelterCreate(env.ctx, env.deps, &buf, nil); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if _, ok := body["id_shelter"]; ok {
		t.Error("expected id_shelter stripped from body")
	}
	if body["contact_email"] != "info@huellitas.ec" || body["phone"] != "022345678" {
		t.Errorf("expected email/phone mapped, got %v", body)
	}
	if !strings.Contains(buf.String(), "Created shelter 12") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRunAdminSpeciesCreate_InvalidatesCatalog(t *testing.T) {
	var listHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/public/species", func(w http.ResponseWriter, r *http.Request) {
		listHits.Add(1)
		writeJSON(w, http.StatusOK, []client.Species{{IDSpecies: 1, SpeciesName: "Perro"}})
	})
	mux.HandleFunc("POST /api/admin/species", func(w http.ResponseWriter, r *http.Request) {
		var p client.SpeciesUpsertPayload
		json.NewDecoder(r.Body).Decode(&p)
		writeJSON(w, http.StatusCreated, client.Species{IDSpecies: 3, SpeciesName: p.SpeciesName})
	})
	env := newTestEnv(t, mux, signedIn(t, "Admin"))

	if _, err := env.deps.catalogs.Species(env.ctx); err != nil {
		t.Fatal(err)
	}

	speciesName = "Conejo"
	defer func() { speciesName = "" }()
	var buf bytes.Buffer
	if code := runAdminSpeciesCreate(env.ctx, env.deps, &buf, nil); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Created species 3 (Conejo)") {
		t.Errorf("unexpected output %q", buf.String())
	}

	if _, err := env.deps.catalogs.Species(env.ctx); err != nil {
		t.Fatal(err)
	}
	if listHits.Load() != 2 {
		t.Errorf("expected catalog refetch after create, got %d fetches", listHits.Load())
	}
}

func TestRunAdminDonationCreate_OptionalShelter(t *testing.T) {
	var bodies []map[string]any
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		w.WriteHeader(http.StatusCreated)
	}), signedIn(t, "Admin"))

	donationInput = client.DonationItemUpsertPayload{ItemName: "Croquetas", Category: "Alimentos", QuantityNeeded: 10}
	defer func() { donationInput = client.DonationItemUpsertPayload{}; donationShelter = 0 }()

	var buf bytes.Buffer
	if code := runAdminDonationCreate(env.ctx, env.deps, &buf, nil); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	donationShelter = 5
	if code := runAdminDonationCreate(env.ctx, env.deps, &buf, nil); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	if len(bodies) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(bodies))
	}
	if _, ok := bodies[0]["id_shelter"]; ok {
		t.Error("expected id_shelter omitted when unset")
	}
	if bodies[1]["id_shelter"] != float64(5) {
		t.Errorf("expected id_shelter 5, got %v", bodies[1]["id_shelter"])
	}
}

func TestRunAdminPhotoUpload(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/animals/4/photos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			t.Fatalf("expected photo part: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "luna.png" || string(data) != "png-bytes" {
			t.Errorf("unexpected upload %s %q", header.Filename, data)
		}
		writeJSON(w, http.StatusCreated, client.Photo{IDPhoto: 8, IDAnimal: 4, ImageURL: "storage/luna.png"})
	}), signedIn(t, "Admin"))

	img := filepath.Join(t.TempDir(), "luna.png")
	os.WriteFile(img, []byte("png-bytes"), 0644)

	var buf bytes.Buffer
	if code := runAdminPhotoUpload(env.ctx, env.deps, &buf, []string{"4", img}); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), env.server.URL+"/storage/luna.png") {
		t.Errorf("expected resolved photo URL, got %q", buf.String())
	}
}

func TestRunAdminPhotoUpload_MissingFile(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler(), signedIn(t, "Admin"))

	var buf bytes.Buffer
	code := runAdminPhotoUpload(env.ctx, env.deps, &buf, []string{"4", filepath.Join(t.TempDir(), "nope.png")})
	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestRunAdminAnimalDelete_ValidationError(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "No se puede eliminar",
			"errors":  map[string][]string{"id_animal": {"tiene adopciones"}},
		})
	}), signedIn(t, "Admin"))

	var buf bytes.Buffer
	if code := runAdminAnimalDelete(env.ctx, env.deps, &buf, []string{"3"}); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "tiene adopciones") {
		t.Errorf("expected field error in output, got %q", buf.String())
	}
}
