// ABOUTME: Public catalog endpoints (animals, species, breeds, shelters, donation needs)
// ABOUTME: No credential is attached to these calls

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AnimalFilter narrows GET /api/public/animals. Zero values are omitted.
type AnimalFilter struct {
	AnimalName string
	IDSpecies  int
	IDBreed    int
	IDShelter  int
	Size       string
	Color      string
	Page       int
}

func (f AnimalFilter) values() url.Values {
	v := url.Values{}
	setString(v, "animal_name", f.AnimalName)
	setInt(v, "id_species", f.IDSpecies)
	setInt(v, "id_breed", f.IDBreed)
	setInt(v, "id_shelter", f.IDShelter)
	setString(v, "size", f.Size)
	setString(v, "color", f.Color)
	setInt(v, "page", f.Page)
	return v
}

// DonationFilter narrows GET /api/public/donation-items. Zero values are omitted.
type DonationFilter struct {
	Category  string
	IDShelter int
	Search    string
	Page      int
}

func (f DonationFilter) values() url.Values {
	v := url.Values{}
	setString(v, "category", f.Category)
	setInt(v, "id_shelter", f.IDShelter)
	setString(v, "search", f.Search)
	setInt(v, "page", f.Page)
	return v
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, value int) {
	if value > 0 {
		v.Set(key, strconv.Itoa(value))
	}
}

// ListAnimals calls GET /api/public/animals
func (c *Client) ListAnimals(ctx context.Context, f AnimalFilter) (*Page[Animal], error) {
	var out Page[Animal]
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   publicPrefix + "/animals",
		query:  f.values(),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAnimal calls GET /api/public/animals/{id}
func (c *Client) GetAnimal(ctx context.Context, id int) (*Animal, error) {
	var out Animal
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   idPath(publicPrefix+"/animals/%d", id),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSpecies calls GET /api/public/species
func (c *Client) ListSpecies(ctx context.Context) ([]Species, error) {
	var out []Species
	if err := c.do(ctx, request{method: http.MethodGet, path: publicPrefix + "/species"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBreeds calls GET /api/public/breeds
func (c *Client) ListBreeds(ctx context.Context) ([]Breed, error) {
	var out []Breed
	if err := c.do(ctx, request{method: http.MethodGet, path: publicPrefix + "/breeds"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListShelters calls GET /api/public/shelters
func (c *Client) ListShelters(ctx context.Context) ([]Shelter, error) {
	var out []Shelter
	if err := c.do(ctx, request{method: http.MethodGet, path: publicPrefix + "/shelters"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDonationItems calls GET /api/public/donation-items
func (c *Client) ListDonationItems(ctx context.Context, f DonationFilter) (*Page[DonationItem], error) {
	var out Page[DonationItem]
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   publicPrefix + "/donation-items",
		query:  f.values(),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
