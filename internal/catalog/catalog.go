// ABOUTME: Cached access to the species, breeds and shelters catalogs
// ABOUTME: Collapses concurrent loads with singleflight and fetches all three in parallel

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/uiopaws/pawsctl/internal/cache"
	"github.com/uiopaws/pawsctl/internal/client"
)

// DefaultTTL is how long catalog listings are reused.
const DefaultTTL = 5 * time.Minute

// Source fetches the raw catalogs.
type Source interface {
	ListSpecies(ctx context.Context) ([]client.Species, error)
	ListBreeds(ctx context.Context) ([]client.Breed, error)
	ListShelters(ctx context.Context) ([]client.Shelter, error)
}

// Catalogs bundles the three lookup tables.
type Catalogs struct {
	Species  []client.Species
	Breeds   []client.Breed
	Shelters []client.Shelter
}

// SpeciesName returns the species name for id, or "" when unknown.
func (c *Catalogs) SpeciesName(id int) string {
	for _, s := range c.Species {
		if s.IDSpecies == id {
			return s.SpeciesName
		}
	}
	return ""
}

// ShelterName returns the shelter name for id, or "" when unknown.
func (c *Catalogs) ShelterName(id int) string {
	for _, s := range c.Shelters {
		if s.IDShelter == id {
			return s.ShelterName
		}
	}
	return ""
}

// Service serves catalogs from a TTL cache.
type Service struct {
	src      Source
	species  *cache.Cache[[]client.Species]
	breeds   *cache.Cache[[]client.Breed]
	shelters *cache.Cache[[]client.Shelter]
	group    singleflight.Group
}

// NewService creates a catalog service over src.
func NewService(src Source, ttl time.Duration) *Service {
	return &Service{
		src:      src,
		species:  cache.New[[]client.Species](ttl),
		breeds:   cache.New[[]client.Breed](ttl),
		shelters: cache.New[[]client.Shelter](ttl),
	}
}

func load[V any](ctx context.Context, g *singleflight.Group, c *cache.Cache[V], key string, fetch func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	res, err, shared := g.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
	if shared {
		slog.Debug("Catalog load shared", "key", key)
	}
	if err != nil {
		var zero V
		return zero, fmt.Errorf("load %s: %w", key, err)
	}
	return res.(V), nil
}

// Species returns all species.
func (s *Service) Species(ctx context.Context) ([]client.Species, error) {
	return load(ctx, &s.group, s.species, "species", s.src.ListSpecies)
}

// Breeds returns all breeds.
func (s *Service) Breeds(ctx context.Context) ([]client.Breed, error) {
	return load(ctx, &s.group, s.breeds, "breeds", s.src.ListBreeds)
}

// Shelters returns all shelters.
func (s *Service) Shelters(ctx context.Context) ([]client.Shelter, error) {
	return load(ctx, &s.group, s.shelters, "shelters", s.src.ListShelters)
}

// LoadAll fetches the three catalogs concurrently. Any failure fails the whole load.
func (s *Service) LoadAll(ctx context.Context) (*Catalogs, error) {
	var out Catalogs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Species, err = s.Species(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Breeds, err = s.Breeds(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Shelters, err = s.Shelters(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Invalidate drops cached catalogs, e.g. after an admin edit.
func (s *Service) Invalidate() {
	s.species.ClearAll()
	s.breeds.ClearAll()
	s.shelters.ClearAll()
}

// StartCleanup sweeps expired catalogs every interval until ctx is done.
func (s *Service) StartCleanup(ctx context.Context, interval time.Duration) {
	s.species.StartCleanup(ctx, interval)
	s.breeds.StartCleanup(ctx, interval)
	s.shelters.StartCleanup(ctx, interval)
}

// BreedsForSpecies returns the breeds of speciesID, or all breeds when speciesID is 0.
func BreedsForSpecies(breeds []client.Breed, speciesID int) []client.Breed {
	if speciesID == 0 {
		return breeds
	}
	out := make([]client.Breed, 0, len(breeds))
	for _, b := range breeds {
		if b.IDSpecies == speciesID {
			out = append(out, b)
		}
	}
	return out
}
