package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"worldacross/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valJSON(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

// Migrate creates the catalog tables when they are missing.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

/********** write paths **********/

func (r *Repo) UpsertDestination(ctx context.Context, d domain.Destination) error {
	cats, err := valJSON(d.Categories)
	if err != nil {
		return err
	}
	types, err := valJSON(d.Types)
	if err != nil {
		return err
	}
	hl, err := valJSON(d.Highlights)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertDestinationSQL,
		d.ID, d.Name, d.Country, d.State, d.City, d.Description, valStr(d.Image),
		cats, types,
		d.PriceRange.Min, d.PriceRange.Max,
		d.AvgRating, d.PackageCount, d.BestTime, hl,
	)
	return err
}

func (r *Repo) UpsertPackage(ctx context.Context, p domain.Package) error {
	feats, err := valJSON(p.Features)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertPackageSQL,
		p.ID, p.Title, p.Description, p.Destination, p.Category, p.Type,
		p.Duration.Days, p.Duration.Nights,
		p.Pricing.OriginalPrice, p.Pricing.DiscountedPrice,
		p.Rating.Average, p.Rating.Count,
		feats, valStr(p.Badge), p.Featured, valStr(p.Image),
	)
	return err
}

func (r *Repo) UpsertMembership(ctx context.Context, m domain.Membership) error {
	feats, err := valJSON(m.Features)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertMembershipSQL,
		m.ID, m.Name, m.Tenure, m.NightsPerYear, m.OriginalPrice, m.DiscountedPrice, m.Discount,
		m.IsPopular, feats, m.BonusOffer, m.Icon, m.ResortAccess,
	)
	return err
}

/********** read paths **********/

type scanner interface{ Scan(dest ...any) error }

func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d                      domain.Destination
		image                  sql.NullString
		cats, types, highlight []byte
	)
	if err := s.Scan(
		&d.ID, &d.Name, &d.Country, &d.State, &d.City, &d.Description, &image,
		&cats, &types,
		&d.PriceRange.Min, &d.PriceRange.Max,
		&d.AvgRating, &d.PackageCount, &d.BestTime, &highlight,
	); err != nil {
		return domain.Destination{}, err
	}
	d.Image = image.String
	if err := json.Unmarshal(cats, &d.Categories); err != nil {
		return domain.Destination{}, fmt.Errorf("destination %d categories: %w", d.ID, err)
	}
	if err := json.Unmarshal(types, &d.Types); err != nil {
		return domain.Destination{}, fmt.Errorf("destination %d types: %w", d.ID, err)
	}
	if len(highlight) > 0 {
		if err := json.Unmarshal(highlight, &d.Highlights); err != nil {
			return domain.Destination{}, fmt.Errorf("destination %d highlights: %w", d.ID, err)
		}
	}
	return d, nil
}

func scanPackage(s scanner) (domain.Package, error) {
	var (
		p            domain.Package
		badge, image sql.NullString
		feats        []byte
	)
	if err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.Destination, &p.Category, &p.Type,
		&p.Duration.Days, &p.Duration.Nights,
		&p.Pricing.OriginalPrice, &p.Pricing.DiscountedPrice,
		&p.Rating.Average, &p.Rating.Count,
		&feats, &badge, &p.Featured, &image,
	); err != nil {
		return domain.Package{}, err
	}
	p.Badge = badge.String
	p.Image = image.String
	if err := json.Unmarshal(feats, &p.Features); err != nil {
		return domain.Package{}, fmt.Errorf("package %d features: %w", p.ID, err)
	}
	return p, nil
}

func scanMembership(s scanner) (domain.Membership, error) {
	var (
		m     domain.Membership
		feats []byte
	)
	if err := s.Scan(
		&m.ID, &m.Name, &m.Tenure, &m.NightsPerYear, &m.OriginalPrice, &m.DiscountedPrice, &m.Discount,
		&m.IsPopular, &feats, &m.BonusOffer, &m.Icon, &m.ResortAccess,
	); err != nil {
		return domain.Membership{}, err
	}
	if err := json.Unmarshal(feats, &m.Features); err != nil {
		return domain.Membership{}, fmt.Errorf("membership %d features: %w", m.ID, err)
	}
	return m, nil
}

// list runs q and scans every row with scan, keeping id order.
func list[T any](ctx context.Context, db *sql.DB, q string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, q+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0, 16)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func get[T any](ctx context.Context, db *sql.DB, q string, id int64, kind string, scan func(scanner) (T, error)) (T, error) {
	v, err := scan(db.QueryRowContext(ctx, q+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
	}
	return v, err
}

func (r *Repo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return list(ctx, r.db, destinationColumns, scanDestination)
}

func (r *Repo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return get(ctx, r.db, destinationColumns, id, "destination", scanDestination)
}

func (r *Repo) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return list(ctx, r.db, packageColumns, scanPackage)
}

func (r *Repo) GetPackage(ctx context.Context, id int64) (domain.Package, error) {
	return get(ctx, r.db, packageColumns, id, "package", scanPackage)
}

func (r *Repo) ListMemberships(ctx context.Context) ([]domain.Membership, error) {
	return list(ctx, r.db, membershipColumns, scanMembership)
}

func (r *Repo) GetMembership(ctx context.Context, id int64) (domain.Membership, error) {
	return get(ctx, r.db, membershipColumns, id, "membership", scanMembership)
}
