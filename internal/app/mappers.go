package app

import (
	"strconv"
	"strings"

	"worldacross/internal/domain"
)

/********** alias registries (single source of truth) **********/

var destinationAliases = map[string][]string{
	"name":        {"name", "title"},
	"country":     {"country", "location.country"},
	"state":       {"state", "location.state", "region"},
	"city":        {"city", "location.city"},
	"description": {"description", "desc", "summary"},
	"image":       {"image", "imageUrl", "thumbnail"},
	"bestTime":    {"bestTime", "best_time", "bestTimeToVisit"},
}

var packageAliases = map[string][]string{
	"title":       {"title", "name"},
	"description": {"description", "desc", "summary"},
	"destination": {"destination", "destination.name", "location"},
	"category":    {"category", "theme"},
	"type":        {"type", "tripType"},
	"badge":       {"badge", "tag", "label"},
	"image":       {"image", "imageUrl", "thumbnail"},
}

var membershipAliases = map[string][]string{
	"name":       {"name", "title", "plan"},
	"tenure":     {"tenure", "duration", "validity"},
	"discount":   {"discount", "discountLabel"},
	"bonusOffer": {"bonusOffer", "bonus_offer", "bonus"},
	"icon":       {"icon", "iconKey"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstAlias: first non-empty string for a named alias set, or "".
func firstAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0" or "₹12,999").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			if f, ok := parseNumber(v); ok {
				return &f
			}
		}
	}
	return nil
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "$")
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") && len(s)-strings.Index(s, ",") <= 3 {
		// decimal comma, e.g. "4,5"
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *float64, def int) int {
	if p == nil {
		return def
	}
	return int(*p)
}

func firstInt64Flexible(m map[string]any, paths ...string) int64 {
	if f := getFloatFlexible(m, paths...); f != nil {
		return int64(*f)
	}
	return 0
}

func firstBool(m map[string]any, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	}
	return false
}

// firstSliceStrings: accept []any with either strings or {name/label/title},
// or a single string.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		switch raw := lookupAny(m, k).(type) {
		case []any:
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case map[string]any:
					for _, f := range []string{"name", "label", "title"} {
						if s, ok := t[f].(string); ok && s != "" {
							out = append(out, s)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			if s := strings.TrimSpace(raw); s != "" {
				return []string{s}
			}
		}
	}
	return nil
}

// normalizeRating accepts a bare number or {average|value|score, count|reviews}.
func normalizeRating(m map[string]any) domain.Rating {
	switch v := lookupAny(m, "rating").(type) {
	case float64:
		return domain.Rating{Average: v, Count: intOr(getFloatFlexible(m, "reviewCount", "reviews"), 0)}
	case string:
		f, _ := parseNumber(v)
		return domain.Rating{Average: f, Count: intOr(getFloatFlexible(m, "reviewCount", "reviews"), 0)}
	case map[string]any:
		return domain.Rating{
			Average: floatOr(getFloatFlexible(v, "average", "value", "score"), 0),
			Count:   intOr(getFloatFlexible(v, "count", "reviews", "total"), 0),
		}
	}
	return domain.Rating{}
}

// inferTypes falls back to the country when an upstream record has no type tags.
func inferTypes(country string) []string {
	if country == "" {
		return nil
	}
	if strings.EqualFold(country, "India") {
		return []string{domain.TypeDomestic}
	}
	return []string{domain.TypeInternational}
}

func canonicalType(t string) string {
	switch {
	case strings.EqualFold(t, domain.TypeDomestic):
		return domain.TypeDomestic
	case strings.EqualFold(t, domain.TypeInternational):
		return domain.TypeInternational
	}
	return t
}

/********** destination mapper **********/

func mapDestination(p map[string]any) domain.Destination {
	d := domain.Destination{
		ID:           firstInt64Flexible(p, "id", "destinationId"),
		Name:         firstAlias(p, destinationAliases, "name"),
		Country:      firstAlias(p, destinationAliases, "country"),
		State:        firstAlias(p, destinationAliases, "state"),
		City:         firstAlias(p, destinationAliases, "city"),
		Description:  firstAlias(p, destinationAliases, "description"),
		Image:        firstAlias(p, destinationAliases, "image"),
		BestTime:     firstAlias(p, destinationAliases, "bestTime"),
		Categories:   firstSliceStrings(p, "categories", "category", "tags"),
		Types:        firstSliceStrings(p, "types", "type"),
		Highlights:   firstSliceStrings(p, "highlights", "attractions"),
		AvgRating:    floatOr(getFloatFlexible(p, "avgRating", "rating.average", "rating"), 0),
		PackageCount: intOr(getFloatFlexible(p, "packageCount", "packages"), 0),
	}
	lo := getFloatFlexible(p, "priceRange.min", "price_range.min", "startingPrice", "price")
	d.PriceRange.Min = floatOr(lo, 0)
	d.PriceRange.Max = floatOr(getFloatFlexible(p, "priceRange.max", "price_range.max"), d.PriceRange.Min)
	for i, t := range d.Types {
		d.Types[i] = canonicalType(t)
	}
	if len(d.Types) == 0 {
		d.Types = inferTypes(d.Country)
	}
	return d
}

/********** package mapper **********/

func mapPackage(p map[string]any) domain.Package {
	pk := domain.Package{
		ID:          firstInt64Flexible(p, "id", "packageId"),
		Title:       firstAlias(p, packageAliases, "title"),
		Description: firstAlias(p, packageAliases, "description"),
		Destination: firstAlias(p, packageAliases, "destination"),
		Category:    firstAlias(p, packageAliases, "category"),
		Type:        canonicalType(firstAlias(p, packageAliases, "type")),
		Badge:       firstAlias(p, packageAliases, "badge"),
		Image:       firstAlias(p, packageAliases, "image"),
		Features:    firstSliceStrings(p, "features", "inclusions", "highlights"),
		Featured:    firstBool(p, "featured", "isFeatured"),
		Rating:      normalizeRating(p),
		Duration: domain.Duration{
			Days:   intOr(getFloatFlexible(p, "duration.days", "days"), 0),
			Nights: intOr(getFloatFlexible(p, "duration.nights", "nights"), 0),
		},
	}
	orig := getFloatFlexible(p, "pricing.originalPrice", "originalPrice", "price.original")
	disc := getFloatFlexible(p, "pricing.discountedPrice", "discountedPrice", "price.discounted", "price")
	pk.Pricing.OriginalPrice = floatOr(orig, floatOr(disc, 0))
	pk.Pricing.DiscountedPrice = floatOr(disc, pk.Pricing.OriginalPrice)
	return pk
}

/********** membership mapper **********/

func mapMembership(p map[string]any) domain.Membership {
	m := domain.Membership{
		ID:            firstInt64Flexible(p, "id", "membershipId"),
		Name:          firstAlias(p, membershipAliases, "name"),
		Tenure:        firstAlias(p, membershipAliases, "tenure"),
		Discount:      firstAlias(p, membershipAliases, "discount"),
		BonusOffer:    firstAlias(p, membershipAliases, "bonusOffer"),
		Icon:          firstAlias(p, membershipAliases, "icon"),
		Features:      firstSliceStrings(p, "features", "benefits"),
		IsPopular:     firstBool(p, "isPopular", "popular"),
		NightsPerYear: intOr(getFloatFlexible(p, "nightsPerYear", "nights"), 0),
		ResortAccess:  intOr(getFloatFlexible(p, "resortAccess", "resorts"), 0),
	}
	orig := getFloatFlexible(p, "originalPrice", "pricing.originalPrice", "price")
	disc := getFloatFlexible(p, "discountedPrice", "pricing.discountedPrice")
	m.OriginalPrice = floatOr(orig, floatOr(disc, 0))
	m.DiscountedPrice = floatOr(disc, m.OriginalPrice)
	return m
}
