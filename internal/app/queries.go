package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"worldacross/internal/domain"
)

// Cache keys shared by the read path and the seeder's invalidation.
const (
	keyDestinations = "catalog:destinations"
	keyPackages     = "catalog:packages"
	keyMemberships  = "catalog:memberships"
)

func keyDestination(id int64) string { return fmt.Sprintf("catalog:destination:%d", id) }
func keyPackage(id int64) string     { return fmt.Sprintf("catalog:package:%d", id) }
func keyMembership(id int64) string  { return fmt.Sprintf("catalog:membership:%d", id) }

// QueryService reads the catalog through an optional cache.
// A nil cache means every read goes to the repository.
type QueryService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return cachedList(ctx, s, keyDestinations, s.repo.ListDestinations)
}

func (s *QueryService) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return cachedGet(ctx, s, keyDestination(id), id, s.repo.GetDestination)
}

func (s *QueryService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return cachedList(ctx, s, keyPackages, s.repo.ListPackages)
}

func (s *QueryService) GetPackage(ctx context.Context, id int64) (domain.Package, error) {
	return cachedGet(ctx, s, keyPackage(id), id, s.repo.GetPackage)
}

func (s *QueryService) ListMemberships(ctx context.Context) ([]domain.Membership, error) {
	return cachedList(ctx, s, keyMemberships, s.repo.ListMemberships)
}

func (s *QueryService) GetMembership(ctx context.Context, id int64) (domain.Membership, error) {
	return cachedGet(ctx, s, keyMembership(id), id, s.repo.GetMembership)
}

func (s *QueryService) ttlSeconds() int { return int(s.cacheTTL.Seconds()) }

func cachedList[T any](ctx context.Context, s *QueryService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var out []T
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// cache a copy so callers can't mutate what went into the cache
		cp := make([]T, len(items))
		copy(cp, items)
		if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, cp, s.ttlSeconds())
		}
	}
	return items, nil
}

// Misses are not cached so a later seed shows up without waiting for the TTL.
func cachedGet[T any](ctx context.Context, s *QueryService, key string, id int64, load func(context.Context, int64) (T, error)) (T, error) {
	if s.cache != nil {
		var out T
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	v, err := load(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, v, s.ttlSeconds())
	}
	return v, nil
}
