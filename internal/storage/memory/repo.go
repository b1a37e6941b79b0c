package memory

import (
	"context"
	"fmt"

	"worldacross/internal/domain"
)

// Store serves a Dataset. It never hands out its own backing arrays, so
// callers are free to filter or modify what they receive.
type Store struct{ ds Dataset }

func New(ds Dataset) *Store { return &Store{ds: ds} }

// NewSeeded loads the embedded dataset.
func NewSeeded() (*Store, error) {
	ds, err := Seed()
	if err != nil {
		return nil, err
	}
	return New(ds), nil
}

func (s *Store) Dataset() Dataset {
	return Dataset{
		Destinations: cloneDestinations(s.ds.Destinations),
		Packages:     clonePackages(s.ds.Packages),
		Memberships:  cloneMemberships(s.ds.Memberships),
		Testimonials: append([]domain.Testimonial(nil), s.ds.Testimonials...),
		Team:         append([]domain.TeamMember(nil), s.ds.Team...),
		Stats:        append([]domain.CompanyStat(nil), s.ds.Stats...),
		Contact:      s.ds.Contact,
	}
}

func (s *Store) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return cloneDestinations(s.ds.Destinations), nil
}

func (s *Store) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	for _, d := range s.ds.Destinations {
		if d.ID == id {
			return cloneDestination(d), nil
		}
	}
	return domain.Destination{}, fmt.Errorf("destination %d: %w", id, domain.ErrNotFound)
}

func (s *Store) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return clonePackages(s.ds.Packages), nil
}

func (s *Store) GetPackage(ctx context.Context, id int64) (domain.Package, error) {
	for _, p := range s.ds.Packages {
		if p.ID == id {
			return clonePackage(p), nil
		}
	}
	return domain.Package{}, fmt.Errorf("package %d: %w", id, domain.ErrNotFound)
}

func (s *Store) ListMemberships(ctx context.Context) ([]domain.Membership, error) {
	return cloneMemberships(s.ds.Memberships), nil
}

func (s *Store) GetMembership(ctx context.Context, id int64) (domain.Membership, error) {
	for _, m := range s.ds.Memberships {
		if m.ID == id {
			return cloneMembership(m), nil
		}
	}
	return domain.Membership{}, fmt.Errorf("membership %d: %w", id, domain.ErrNotFound)
}

func (s *Store) Testimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return append([]domain.Testimonial(nil), s.ds.Testimonials...), nil
}

func (s *Store) Team(ctx context.Context) ([]domain.TeamMember, error) {
	return append([]domain.TeamMember(nil), s.ds.Team...), nil
}

func (s *Store) Stats(ctx context.Context) ([]domain.CompanyStat, error) {
	return append([]domain.CompanyStat(nil), s.ds.Stats...), nil
}

func (s *Store) ContactInfo(ctx context.Context) (domain.ContactInfo, error) {
	return s.ds.Contact, nil
}

/********** copies **********/

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneDestination(d domain.Destination) domain.Destination {
	d.Categories = cloneStrings(d.Categories)
	d.Types = cloneStrings(d.Types)
	d.Highlights = cloneStrings(d.Highlights)
	return d
}

func cloneDestinations(in []domain.Destination) []domain.Destination {
	out := make([]domain.Destination, len(in))
	for i, d := range in {
		out[i] = cloneDestination(d)
	}
	return out
}

func clonePackage(p domain.Package) domain.Package {
	p.Features = cloneStrings(p.Features)
	return p
}

func clonePackages(in []domain.Package) []domain.Package {
	out := make([]domain.Package, len(in))
	for i, p := range in {
		out[i] = clonePackage(p)
	}
	return out
}

func cloneMembership(m domain.Membership) domain.Membership {
	m.Features = cloneStrings(m.Features)
	return m
}

func cloneMemberships(in []domain.Membership) []domain.Membership {
	out := make([]domain.Membership, len(in))
	for i, m := range in {
		out[i] = cloneMembership(m)
	}
	return out
}
