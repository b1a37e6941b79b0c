// Package catalog narrows record collections to what the current
// category/type/price/search selection allows.
package catalog

import (
	"math"
	"strings"
)

// All is the default value of every selector; it matches everything.
const All = "All"

// Criteria is the user's filter selection. The zero value behaves like
// Defaults().
type Criteria struct {
	Category   string `json:"category"`
	Type       string `json:"type"`
	PriceRange string `json:"priceRange"`
	Query      string `json:"query"`
}

func Defaults() Criteria {
	return Criteria{Category: All, Type: All, PriceRange: All}
}

func isDefault(v string) bool { return v == "" || v == All }

// IsDefault reports whether c selects the whole collection.
func (c Criteria) IsDefault() bool {
	return isDefault(c.Category) && isDefault(c.Type) && isDefault(c.PriceRange) && c.Query == ""
}

// Predicate keeps a record when it returns true.
type Predicate[T any] func(T) bool

// Apply returns the records every predicate keeps, in input order.
// The input slice is never modified; the result is always a fresh slice.
func Apply[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// Bucket is a price band, inclusive of Min and exclusive of Max.
// The top band has Max = +Inf and is inclusive.
type Bucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (b Bucket) Contains(price float64) bool {
	if math.IsInf(b.Max, 1) {
		return price >= b.Min
	}
	return price >= b.Min && price < b.Max
}

// PriceBuckets is the fixed label table offered by the list pages.
var PriceBuckets = []Bucket{
	{Label: "Under ₹10,000", Min: 0, Max: 10000},
	{Label: "₹10,000 - ₹25,000", Min: 10000, Max: 25000},
	{Label: "₹25,000 - ₹50,000", Min: 25000, Max: 50000},
	{Label: "₹50,000 - ₹1,00,000", Min: 50000, Max: 100000},
	{Label: "Above ₹1,00,000", Min: 100000, Max: math.Inf(1)},
}

// LookupBucket resolves a price label. Unknown labels report false.
func LookupBucket(label string) (Bucket, bool) {
	for _, b := range PriceBuckets {
		if b.Label == label {
			return b, true
		}
	}
	return Bucket{}, false
}

// ---- predicate builders ----

func none[T any](T) bool { return false }

func priceIn[T any](label string, price func(T) float64) Predicate[T] {
	b, ok := LookupBucket(label)
	if !ok {
		return none[T]
	}
	return func(r T) bool { return b.Contains(price(r)) }
}

// textMatch keeps records where the lower-cased query, spaces included,
// occurs in at least one field.
func textMatch[T any](query string, fields func(T) []string) Predicate[T] {
	q := strings.ToLower(query)
	return func(r T) bool {
		for _, f := range fields(r) {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
}

func containsExact(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
