package app_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"worldacross/internal/adapters/remote"
	"worldacross/internal/app"
	"worldacross/internal/domain"
)

type fakeWriter struct {
	mu    sync.Mutex
	dests map[int64]domain.Destination
	pkgs  map[int64]domain.Package
	mems  map[int64]domain.Membership
	fail  error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{
		dests: map[int64]domain.Destination{},
		pkgs:  map[int64]domain.Package{},
		mems:  map[int64]domain.Membership{},
	}
}

func (w *fakeWriter) UpsertDestination(ctx context.Context, d domain.Destination) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return w.fail
	}
	w.dests[d.ID] = d
	return nil
}
func (w *fakeWriter) UpsertPackage(ctx context.Context, p domain.Package) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return w.fail
	}
	w.pkgs[p.ID] = p
	return nil
}
func (w *fakeWriter) UpsertMembership(ctx context.Context, m domain.Membership) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return w.fail
	}
	w.mems[m.ID] = m
	return nil
}

type fakeRemote struct {
	dests, pkgs, mems []map[string]any
	pkgErr            error
}

func (f *fakeRemote) FetchDestinations(ctx context.Context) ([]map[string]any, error) {
	return f.dests, nil
}
func (f *fakeRemote) FetchPackages(ctx context.Context) ([]map[string]any, error) {
	return f.pkgs, f.pkgErr
}
func (f *fakeRemote) FetchMemberships(ctx context.Context) ([]map[string]any, error) {
	return f.mems, nil
}

func batch() app.Batch {
	return app.Batch{
		Destinations: []domain.Destination{
			{ID: 1, Name: "Goa", Categories: []string{"Beach"}, Types: []string{domain.TypeDomestic}, PriceRange: domain.PriceRange{Min: 8999, Max: 25999}},
		},
		Packages: []domain.Package{
			{ID: 1, Title: "Goa Beach Getaway", Type: domain.TypeDomestic},
			{ID: 2, Title: "Broken", Type: "Lunar"},
		},
		Memberships: []domain.Membership{{ID: 1, Name: "Silver"}},
	}
}

func TestSeed_TasksUpsertAndEvict(t *testing.T) {
	w := newFakeWriter()
	cache := &fakeCache{}
	s := app.NewSeedService(w, cache)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed []string
	for _, task := range s.Tasks(batch()) {
		wg.Add(1)
		go func(task app.Task) {
			defer wg.Done()
			if err := task.Run(context.Background()); err != nil {
				mu.Lock()
				failed = append(failed, fmt.Sprintf("%s:%d", task.Kind, task.ID))
				mu.Unlock()
				if !errors.Is(err, app.ErrInvalidRecord) {
					t.Errorf("unexpected error kind: %v", err)
				}
			}
		}(task)
	}
	wg.Wait()

	if len(failed) != 1 || failed[0] != "package:2" {
		t.Fatalf("failed = %v", failed)
	}
	if len(w.dests) != 1 || len(w.pkgs) != 1 || len(w.mems) != 1 {
		t.Fatalf("stored %d/%d/%d", len(w.dests), len(w.pkgs), len(w.mems))
	}

	sort.Strings(cache.dels)
	for _, k := range []string{"catalog:destinations", "catalog:destination:1", "catalog:packages", "catalog:package:1", "catalog:memberships", "catalog:membership:1"} {
		i := sort.SearchStrings(cache.dels, k)
		if i == len(cache.dels) || cache.dels[i] != k {
			t.Fatalf("key %q not evicted; dels=%v", k, cache.dels)
		}
	}
}

func TestSeed_StoreErrorSurfaces(t *testing.T) {
	w := newFakeWriter()
	w.fail = errors.New("db down")
	s := app.NewSeedService(w, nil)

	tasks := s.Tasks(app.Batch{Memberships: []domain.Membership{{ID: 3, Name: "Platinum"}}})
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d", len(tasks))
	}
	if err := tasks[0].Run(context.Background()); !errors.Is(err, w.fail) {
		t.Fatalf("want store error, got %v", err)
	}
}

func TestSeed_FetchRemote(t *testing.T) {
	rc := &fakeRemote{
		dests: []map[string]any{{"id": float64(6), "name": "Maldives", "country": "Maldives", "categories": []any{"Luxury"}}},
		pkgs:  []map[string]any{{"id": float64(6), "title": "Maldives Overwater Bliss", "type": "International", "price": float64(159999)}},
		mems:  []map[string]any{{"id": float64(1), "name": "Silver", "tenure": "3 Years"}},
	}
	s := app.NewSeedService(newFakeWriter(), nil)

	b, err := s.FetchRemote(context.Background(), rc)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 3 {
		t.Fatalf("len = %d", b.Len())
	}
	if b.Destinations[0].Types[0] != domain.TypeInternational {
		t.Fatalf("types = %v", b.Destinations[0].Types)
	}
	if b.Packages[0].Pricing.DiscountedPrice != 159999 {
		t.Fatalf("pricing = %+v", b.Packages[0].Pricing)
	}
}

func TestSeed_FetchRemote_MissingCollectionSkipped(t *testing.T) {
	rc := &fakeRemote{
		mems:   []map[string]any{{"id": float64(1), "name": "Silver"}},
		pkgErr: fmt.Errorf("packages: %w", domain.ErrNotFound),
	}
	b, err := app.NewSeedService(newFakeWriter(), nil).FetchRemote(context.Background(), rc)
	if err != nil {
		t.Fatalf("404 collection should be skipped: %v", err)
	}
	if len(b.Packages) != 0 || len(b.Memberships) != 1 {
		t.Fatalf("unexpected batch: %+v", b)
	}
}

func TestSeed_FetchRemote_RemoteNotFoundSkipped(t *testing.T) {
	rc := &fakeRemote{pkgErr: fmt.Errorf("GET /packages: %w", remote.ErrNotFound)}
	if _, err := app.NewSeedService(newFakeWriter(), nil).FetchRemote(context.Background(), rc); err != nil {
		t.Fatalf("remote 404 should be skipped: %v", err)
	}
}

func TestSeed_FetchRemote_NotFoundTextIsNotASkip(t *testing.T) {
	rc := &fakeRemote{pkgErr: errors.New("upstream said: route not found behind proxy")}
	if _, err := app.NewSeedService(newFakeWriter(), nil).FetchRemote(context.Background(), rc); err == nil {
		t.Fatal("only the not-found sentinel may skip a collection")
	}
}

func TestSeed_FetchRemote_AuthErrorAborts(t *testing.T) {
	rc := &fakeRemote{pkgErr: errors.New("remote: unauthorized")}
	if _, err := app.NewSeedService(newFakeWriter(), nil).FetchRemote(context.Background(), rc); err == nil {
		t.Fatal("want error")
	}
}
