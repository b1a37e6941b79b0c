package catalog

import (
	"strings"

	"worldacross/internal/domain"
)

// DestinationPredicates: exact tag membership for category and type,
// starting price for the bucket, name/description/country for search.
func DestinationPredicates(c Criteria) []Predicate[domain.Destination] {
	var ps []Predicate[domain.Destination]
	if !isDefault(c.Category) {
		ps = append(ps, func(d domain.Destination) bool { return containsExact(d.Categories, c.Category) })
	}
	if !isDefault(c.Type) {
		ps = append(ps, func(d domain.Destination) bool { return containsExact(d.Types, c.Type) })
	}
	if !isDefault(c.PriceRange) {
		ps = append(ps, priceIn(c.PriceRange, func(d domain.Destination) float64 { return d.PriceRange.Min }))
	}
	if c.Query != "" {
		ps = append(ps, textMatch(c.Query, func(d domain.Destination) []string {
			return []string{d.Name, d.Description, d.Country}
		}))
	}
	return ps
}

// PackagePredicates: case-insensitive category and type, discounted price
// for the bucket, title/description/destination for search.
func PackagePredicates(c Criteria) []Predicate[domain.Package] {
	var ps []Predicate[domain.Package]
	if !isDefault(c.Category) {
		ps = append(ps, func(p domain.Package) bool { return strings.EqualFold(p.Category, c.Category) })
	}
	if !isDefault(c.Type) {
		ps = append(ps, func(p domain.Package) bool { return strings.EqualFold(p.Type, c.Type) })
	}
	if !isDefault(c.PriceRange) {
		ps = append(ps, priceIn(c.PriceRange, func(p domain.Package) float64 { return p.Pricing.DiscountedPrice }))
	}
	if c.Query != "" {
		ps = append(ps, textMatch(c.Query, func(p domain.Package) []string {
			return []string{p.Title, p.Description, p.Destination}
		}))
	}
	return ps
}

// MembershipPredicates: Category selects a tenure, Type is ignored.
func MembershipPredicates(c Criteria) []Predicate[domain.Membership] {
	var ps []Predicate[domain.Membership]
	if !isDefault(c.Category) {
		ps = append(ps, func(m domain.Membership) bool { return m.Tenure == c.Category })
	}
	if !isDefault(c.PriceRange) {
		ps = append(ps, priceIn(c.PriceRange, func(m domain.Membership) float64 { return m.DiscountedPrice }))
	}
	if c.Query != "" {
		ps = append(ps, textMatch(c.Query, func(m domain.Membership) []string {
			return []string{m.Name, m.Tenure, m.BonusOffer}
		}))
	}
	return ps
}

func Destinations(all []domain.Destination, c Criteria) []domain.Destination {
	return Apply(all, DestinationPredicates(c)...)
}

func Packages(all []domain.Package, c Criteria) []domain.Package {
	return Apply(all, PackagePredicates(c)...)
}

func Memberships(all []domain.Membership, c Criteria) []domain.Membership {
	return Apply(all, MembershipPredicates(c)...)
}
