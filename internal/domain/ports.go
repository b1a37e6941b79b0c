package domain

import "context"

// CatalogRepository is the read side every catalog store satisfies.
// Get* return ErrNotFound when the id is unknown.
type CatalogRepository interface {
	ListDestinations(ctx context.Context) ([]Destination, error)
	GetDestination(ctx context.Context, id int64) (Destination, error)
	ListPackages(ctx context.Context) ([]Package, error)
	GetPackage(ctx context.Context, id int64) (Package, error)
	ListMemberships(ctx context.Context) ([]Membership, error)
	GetMembership(ctx context.Context, id int64) (Membership, error)
}

// CatalogWriter is implemented by stores the seeder can populate.
type CatalogWriter interface {
	UpsertDestination(ctx context.Context, d Destination) error
	UpsertPackage(ctx context.Context, p Package) error
	UpsertMembership(ctx context.Context, m Membership) error
}

type ContentRepository interface {
	Testimonials(ctx context.Context) ([]Testimonial, error)
	Team(ctx context.Context) ([]TeamMember, error)
	Stats(ctx context.Context) ([]CompanyStat, error)
	ContactInfo(ctx context.Context) (ContactInfo, error)
}

// RemoteCatalog fetches raw records from an upstream catalog service.
type RemoteCatalog interface {
	FetchDestinations(ctx context.Context) ([]map[string]any, error)
	FetchPackages(ctx context.Context) ([]map[string]any, error)
	FetchMemberships(ctx context.Context) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Identity is what a session token carries.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

type TokenIssuer interface {
	Issue(id Identity) (string, error)
	Verify(token string) (Identity, error)
}
