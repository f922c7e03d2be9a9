// ABOUTME: Admin CRUD endpoints for animals, catalogs, shelters, donations, photos and records
// ABOUTME: Every call here carries the bearer token

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

func (c *Client) admin(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, request{
		method: method,
		path:   authPrefix + "/admin" + path,
		body:   body,
		auth:   true,
	}, out)
}

// Animals

// AdminListAnimals calls GET /api/admin/animals
func (c *Client) AdminListAnimals(ctx context.Context) (*Page[Animal], error) {
	var out Page[Animal]
	if err := c.admin(ctx, http.MethodGet, "/animals", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminGetAnimal calls GET /api/admin/animals/{id}
func (c *Client) AdminGetAnimal(ctx context.Context, id int) (*Animal, error) {
	var out Animal
	if err := c.admin(ctx, http.MethodGet, idPath("/animals/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAnimal calls POST /api/admin/animals
func (c *Client) CreateAnimal(ctx context.Context, p AnimalUpsertPayload) (*Animal, error) {
	var out Animal
	if err := c.admin(ctx, http.MethodPost, "/animals", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAnimal calls PUT /api/admin/animals/{id}
func (c *Client) UpdateAnimal(ctx context.Context, id int, p AnimalUpsertPayload) (*Animal, error) {
	var out Animal
	if err := c.admin(ctx, http.MethodPut, idPath("/animals/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAnimal calls DELETE /api/admin/animals/{id}
func (c *Client) DeleteAnimal(ctx context.Context, id int) error {
	return c.admin(ctx, http.MethodDelete, idPath("/animals/%d", id), nil, nil)
}

// Shelters

// AdminListShelters calls GET /api/admin/shelters
func (c *Client) AdminListShelters(ctx context.Context) ([]Shelter, error) {
	var out []Shelter
	if err := c.admin(ctx, http.MethodGet, "/shelters", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateShelter calls POST /api/admin/shelters
func (c *Client) CreateShelter(ctx context.Context, p ShelterUpsertPayload) (*Shelter, error) {
	var out Shelter
	if err := c.admin(ctx, http.MethodPost, "/shelters", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateShelter calls PUT /api/admin/shelters/{id}
func (c *Client) UpdateShelter(ctx context.Context, id int, p ShelterUpsertPayload) (*Shelter, error) {
	var out Shelter
	if err := c.admin(ctx, http.MethodPut, idPath("/shelters/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteShelter calls DELETE /api/admin/shelters/{id}
func (c *Client) DeleteShelter(ctx context.Context, id int) error {
	return c.admin(ctx, http.MethodDelete, idPath("/shelters/%d", id), nil, nil)
}

// Species

// CreateSpecies calls POST /api/admin/species
func (c *Client) CreateSpecies(ctx context.Context, p SpeciesUpsertPayload) (*Species, error) {
	var out Species
	if err := c.admin(ctx, http.MethodPost, "/species", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSpecies calls PUT /api/admin/species/{id}
func (c *Client) UpdateSpecies(ctx context.Context, id int, p SpeciesUpsertPayload) (*Species, error) {
	var out Species
	if err := c.admin(ctx, http.MethodPut, idPath("/species/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSpecies calls DELETE /api/admin/species/{id}
func (c *Client) DeleteSpecies(ctx context.Context, id int) error {
	return c.admin(ctx, http.MethodDelete, idPath("/species/%d", id), nil, nil)
}

// Breeds

// CreateBreed calls POST /api/admin/breeds
func (c *Client) CreateBreed(ctx context.Context, p BreedUpsertPayload) (*Breed, error) {
	var out Breed
	if err := c.admin(ctx, http.MethodPost, "/breeds", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBreed calls PUT /api/admin/breeds/{id}
func (c *Client) UpdateBreed(ctx context.Context, id int, p BreedUpsertPayload) (*Breed, error) {
	var out Breed
	if err := c.admin(ctx, http.MethodPut, idPath("/breeds/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBreed calls DELETE /api/admin/breeds/{id}
func (c *Client) DeleteBreed(ctx context.Context, id int) error {
	return c.admin(ctx, http.MethodDelete, idPath("/breeds/%d", id), nil, nil)
}

// Donation items

// AdminListDonationItems calls GET /api/admin/donation-items-catalog ({data: [...]})
func (c *Client) AdminListDonationItems(ctx context.Context) ([]DonationItem, error) {
	var out struct {
		Data []DonationItem `json:"data"`
	}
	if err := c.admin(ctx, http.MethodGet, "/donation-items-catalog", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateDonationItem calls POST /api/admin/donation-items-catalog
func (c *Client) CreateDonationItem(ctx context.Context, p DonationItemUpsertPayload) error {
	return c.admin(ctx, http.MethodPost, "/donation-items-catalog", p, nil)
}

// UpdateDonationItem calls PUT /api/admin/donation-items-catalog/{id}
func (c *Client) UpdateDonationItem(ctx context.Context, id int, p DonationItemUpsertPayload) error {
	return c.admin(ctx, http.MethodPut, idPath("/donation-items-catalog/%d", id), p, nil)
}

// DeleteDonationItem calls DELETE /api/admin/donation-items-catalog/{id}
func (c *Client) DeleteDonationItem(ctx context.Context, id int) error {
	return c.admin(ctx, http.MethodDelete, idPath("/donation-items-catalog/%d", id), nil, nil)
}

// Photos

// UploadPhoto calls POST /api/admin/animals/{id}/photos with a multipart "photo" field
func (c *Client) UploadPhoto(ctx context.Context, animalID int, filename string, r io.Reader) (*Photo, error) {
	return c.sendPhoto(ctx, http.MethodPost, idPath("/animals/%d/photos", animalID), filename, r)
}

// ReplacePhoto calls PUT /api/admin/photos/{id} with a multipart "photo" field
func (c *Client) ReplacePhoto(ctx context.Context, photoID int, filename string, r io.Reader) (*Photo, error) {
	return c.sendPhoto(ctx, http.MethodPut, idPath("/photos/%d", photoID), filename, r)
}

// DeletePhoto calls DELETE /api/admin/photos/{id}
func (c *Client) DeletePhoto(ctx context.Context, photoID int) error {
	return c.admin(ctx, http.MethodDelete, idPath("/photos/%d", photoID), nil, nil)
}

func (c *Client) sendPhoto(ctx context.Context, method, path, filename string, r io.Reader) (*Photo, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	var out Photo
	if err := c.do(ctx, request{
		method:      method,
		path:        authPrefix + "/admin" + path,
		auth:        true,
		rawBody:     &buf,
		contentType: mw.FormDataContentType(),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Medical records

// CreateMedicalRecord calls POST /api/admin/animals/{id}/medical-records
func (c *Client) CreateMedicalRecord(ctx context.Context, animalID int, rec MedicalRecord) (*MedicalRecord, error) {
	var out MedicalRecord
	if err := c.admin(ctx, http.MethodPost, idPath("/animals/%d/medical-records", animalID), rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMedicalRecord calls PUT /api/admin/medical-records/{id}
func (c *Client) UpdateMedicalRecord(ctx context.Context, recordID int, rec MedicalRecord) (*MedicalRecord, error) {
	var out MedicalRecord
	if err := c.admin(ctx, http.MethodPut, idPath("/medical-records/%d", recordID), rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMedicalRecord calls DELETE /api/admin/medical-records/{id}
func (c *Client) DeleteMedicalRecord(ctx context.Context, recordID int) error {
	return c.admin(ctx, http.MethodDelete, idPath("/medical-records/%d", recordID), nil, nil)
}
