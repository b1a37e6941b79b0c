package memory_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"worldacross/internal/domain"
	"worldacross/internal/storage/memory"
)

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	s, err := memory.NewSeeded()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestSeed_HasSixDestinations(t *testing.T) {
	s := seeded(t)
	ds, err := s.ListDestinations(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(ds) != 6 {
		t.Fatalf("expected 6 destinations, got %d", len(ds))
	}
	if ds[0].Name != "Goa" {
		t.Fatalf("unexpected first destination %q", ds[0].Name)
	}
}

func TestStore_ListReturnsCopies(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	first, _ := s.ListDestinations(ctx)
	first[0].Name = "mutated"
	first[0].Categories[0] = "mutated"

	second, _ := s.ListDestinations(ctx)
	if second[0].Name != "Goa" || second[0].Categories[0] != "Beach" {
		t.Fatalf("store leaked its backing array: %+v", second[0])
	}

	a, _ := s.ListPackages(ctx)
	b, _ := s.ListPackages(ctx)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("package lists differ between calls")
	}
}

func TestStore_GetUnknownIsNotFound(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	if _, err := s.GetPackage(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := s.GetDestination(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := s.GetMembership(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	p, err := s.GetPackage(ctx, 4)
	if err != nil || p.Title != "Dubai Luxury Escape" {
		t.Fatalf("get package 4: %+v %v", p, err)
	}
}

func TestParse_RejectsBrokenInvariants(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `
destinations:
  - {id: 1, name: A, categories: [Beach], types: [Domestic], priceRange: {min: 1, max: 2}}
  - {id: 1, name: B, categories: [Beach], types: [Domestic], priceRange: {min: 1, max: 2}}
`,
		"empty categories": `
destinations:
  - {id: 1, name: A, categories: [], types: [Domestic], priceRange: {min: 1, max: 2}}
`,
		"inverted price": `
destinations:
  - {id: 1, name: A, categories: [Beach], types: [Domestic], priceRange: {min: 3, max: 2}}
`,
		"unknown package type": `
packages:
  - {id: 1, title: A, type: Orbital}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := memory.Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParse_BareNumberRating(t *testing.T) {
	ds, err := memory.Parse([]byte(`
packages:
  - {id: 1, title: A, type: Domestic, rating: 4.5}
  - {id: 2, title: B, type: International, rating: {average: 4.1, count: 7}}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ds.Packages[0].Rating != (domain.Rating{Average: 4.5}) || ds.Packages[1].Rating.Count != 7 {
		t.Fatalf("ratings = %+v / %+v", ds.Packages[0].Rating, ds.Packages[1].Rating)
	}
}

func TestStore_Content(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	ts, _ := s.Testimonials(ctx)
	team, _ := s.Team(ctx)
	stats, _ := s.Stats(ctx)
	ci, _ := s.ContactInfo(ctx)
	if len(ts) == 0 || len(team) == 0 || len(stats) == 0 || ci.Email == "" {
		t.Fatalf("content missing: %d testimonials, %d team, %d stats, contact %+v", len(ts), len(team), len(stats), ci)
	}
}
