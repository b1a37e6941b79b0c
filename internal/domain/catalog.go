package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

type Destination struct {
	ID           int64      `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Country      string     `json:"country" yaml:"country"`
	State        string     `json:"state" yaml:"state"`
	City         string     `json:"city" yaml:"city"`
	Description  string     `json:"description" yaml:"description"`
	Image        string     `json:"image,omitempty" yaml:"image"`
	Categories   []string   `json:"categories" yaml:"categories"`
	Types        []string   `json:"types" yaml:"types"`
	PriceRange   PriceRange `json:"priceRange" yaml:"priceRange"`
	AvgRating    float64    `json:"avgRating" yaml:"avgRating"`
	PackageCount int        `json:"packageCount" yaml:"packageCount"`
	BestTime     string     `json:"bestTime" yaml:"bestTime"`
	Highlights   []string   `json:"highlights,omitempty" yaml:"highlights"`
}

type Duration struct {
	Days   int `json:"days" yaml:"days"`
	Nights int `json:"nights" yaml:"nights"`
}

type Pricing struct {
	OriginalPrice   float64 `json:"originalPrice" yaml:"originalPrice"`
	DiscountedPrice float64 `json:"discountedPrice" yaml:"discountedPrice"`
}

// Rating is the single rating shape handed to callers. Upstream payloads
// and dataset files carry either a bare number or {average, count}; both
// decoders accept either.
type Rating struct {
	Average float64 `json:"average" yaml:"average"`
	Count   int     `json:"count" yaml:"count"`
}

func (r *Rating) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*r = Rating{Average: n}
		return nil
	}
	type plain Rating
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("rating: %w", err)
	}
	*r = Rating(p)
	return nil
}

func (r *Rating) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var f float64
		if err := n.Decode(&f); err != nil {
			return fmt.Errorf("rating: %w", err)
		}
		*r = Rating{Average: f}
		return nil
	}
	type plain Rating
	var p plain
	if err := n.Decode(&p); err != nil {
		return fmt.Errorf("rating: %w", err)
	}
	*r = Rating(p)
	return nil
}

type Package struct {
	ID          int64    `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Destination string   `json:"destination" yaml:"destination"` // free text, matched against Destination.Name
	Category    string   `json:"category" yaml:"category"`
	Type        string   `json:"type" yaml:"type"`
	Duration    Duration `json:"duration" yaml:"duration"`
	Pricing     Pricing  `json:"pricing" yaml:"pricing"`
	Rating      Rating   `json:"rating" yaml:"rating"`
	Features    []string `json:"features" yaml:"features"`
	Badge       string   `json:"badge,omitempty" yaml:"badge"`
	Featured    bool     `json:"featured" yaml:"featured"`
	Image       string   `json:"image,omitempty" yaml:"image"`
}

type Membership struct {
	ID              int64    `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Tenure          string   `json:"tenure" yaml:"tenure"`
	NightsPerYear   int      `json:"nightsPerYear" yaml:"nightsPerYear"`
	OriginalPrice   float64  `json:"originalPrice" yaml:"originalPrice"`
	DiscountedPrice float64  `json:"discountedPrice" yaml:"discountedPrice"`
	Discount        string   `json:"discount" yaml:"discount"`
	IsPopular       bool     `json:"isPopular" yaml:"isPopular"`
	Features        []string `json:"features" yaml:"features"`
	BonusOffer      string   `json:"bonusOffer" yaml:"bonusOffer"`
	Icon            string   `json:"icon" yaml:"icon"`
	ResortAccess    int      `json:"resortAccess" yaml:"resortAccess"`
}

// Known tag values.
const (
	TypeDomestic      = "Domestic"
	TypeInternational = "International"
)
