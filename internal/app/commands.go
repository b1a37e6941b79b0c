package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"worldacross/internal/adapters/observability"
	"worldacross/internal/domain"
)

var ErrInvalidRecord = errors.New("invalid record")

// Batch is one full catalog snapshot to load into a writable store.
type Batch struct {
	Destinations []domain.Destination
	Packages     []domain.Package
	Memberships  []domain.Membership
}

func (b Batch) Len() int { return len(b.Destinations) + len(b.Packages) + len(b.Memberships) }

// SeedService loads catalog records into a CatalogWriter and evicts the
// cache entries they replace. The cache is optional.
type SeedService struct {
	store domain.CatalogWriter
	cache domain.Cache
}

func NewSeedService(w domain.CatalogWriter, cache domain.Cache) *SeedService {
	return &SeedService{store: w, cache: cache}
}

// FetchRemote pulls every collection from rc and maps it into a Batch.
// A collection the upstream doesn't have (404) is skipped; auth and
// transport failures abort the fetch.
func (s *SeedService) FetchRemote(ctx context.Context, rc domain.RemoteCatalog) (Batch, error) {
	var b Batch

	ds, err := fetchKind(ctx, "destinations", rc.FetchDestinations)
	if err != nil {
		return Batch{}, err
	}
	for _, raw := range ds {
		b.Destinations = append(b.Destinations, mapDestination(raw))
	}

	ps, err := fetchKind(ctx, "packages", rc.FetchPackages)
	if err != nil {
		return Batch{}, err
	}
	for _, raw := range ps {
		b.Packages = append(b.Packages, mapPackage(raw))
	}

	ms, err := fetchKind(ctx, "memberships", rc.FetchMemberships)
	if err != nil {
		return Batch{}, err
	}
	for _, raw := range ms {
		b.Memberships = append(b.Memberships, mapMembership(raw))
	}
	return b, nil
}

func fetchKind(ctx context.Context, kind string, fetch func(context.Context) ([]map[string]any, error)) ([]map[string]any, error) {
	raw, err := fetch(ctx)
	if err == nil {
		return raw, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn().Str("kind", kind).Msg("remote has no such collection, skipping")
		return nil, nil
	}
	return nil, fmt.Errorf("fetch %s: %w", kind, err)
}

// Task upserts a single record. Tasks are independent, so a caller may
// run them concurrently.
type Task struct {
	Kind string
	ID   int64
	run  func(ctx context.Context) error
}

func (t Task) Run(ctx context.Context) error {
	err := t.run(ctx)
	observability.ObserveSeed(t.Kind, err)
	return err
}

// Tasks splits b into one Task per record.
func (s *SeedService) Tasks(b Batch) []Task {
	out := make([]Task, 0, b.Len())
	for _, d := range b.Destinations {
		d := d
		out = append(out, Task{Kind: "destination", ID: d.ID, run: func(ctx context.Context) error {
			if err := validateDestination(d); err != nil {
				return err
			}
			if err := s.store.UpsertDestination(ctx, d); err != nil {
				return fmt.Errorf("upsert destination %d: %w", d.ID, err)
			}
			s.evict(ctx, keyDestinations, keyDestination(d.ID))
			return nil
		}})
	}
	for _, p := range b.Packages {
		p := p
		out = append(out, Task{Kind: "package", ID: p.ID, run: func(ctx context.Context) error {
			if err := validatePackage(p); err != nil {
				return err
			}
			if err := s.store.UpsertPackage(ctx, p); err != nil {
				return fmt.Errorf("upsert package %d: %w", p.ID, err)
			}
			s.evict(ctx, keyPackages, keyPackage(p.ID))
			return nil
		}})
	}
	for _, m := range b.Memberships {
		m := m
		out = append(out, Task{Kind: "membership", ID: m.ID, run: func(ctx context.Context) error {
			if err := validateMembership(m); err != nil {
				return err
			}
			if err := s.store.UpsertMembership(ctx, m); err != nil {
				return fmt.Errorf("upsert membership %d: %w", m.ID, err)
			}
			s.evict(ctx, keyMemberships, keyMembership(m.ID))
			return nil
		}})
	}
	return out
}

func (s *SeedService) evict(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	for _, k := range keys {
		_ = s.cache.Del(ctx, k)
	}
}

/********** record checks **********/

func validateDestination(d domain.Destination) error {
	switch {
	case d.ID <= 0:
		return fmt.Errorf("%w: destination id %d", ErrInvalidRecord, d.ID)
	case d.Name == "":
		return fmt.Errorf("%w: destination %d has no name", ErrInvalidRecord, d.ID)
	case len(d.Categories) == 0 || len(d.Types) == 0:
		return fmt.Errorf("%w: destination %d needs categories and types", ErrInvalidRecord, d.ID)
	case d.PriceRange.Min > d.PriceRange.Max:
		return fmt.Errorf("%w: destination %d price min > max", ErrInvalidRecord, d.ID)
	}
	return nil
}

func validatePackage(p domain.Package) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: package id %d", ErrInvalidRecord, p.ID)
	case p.Title == "":
		return fmt.Errorf("%w: package %d has no title", ErrInvalidRecord, p.ID)
	case p.Type != domain.TypeDomestic && p.Type != domain.TypeInternational:
		return fmt.Errorf("%w: package %d type %q", ErrInvalidRecord, p.ID, p.Type)
	}
	return nil
}

func validateMembership(m domain.Membership) error {
	switch {
	case m.ID <= 0:
		return fmt.Errorf("%w: membership id %d", ErrInvalidRecord, m.ID)
	case m.Name == "":
		return fmt.Errorf("%w: membership %d has no name", ErrInvalidRecord, m.ID)
	}
	return nil
}
