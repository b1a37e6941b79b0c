// Package memory is the static, process-lifetime catalog store.
package memory

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"worldacross/internal/domain"
)

//go:embed data/dataset.yaml
var seedYAML []byte

// Dataset is everything the site renders, loaded once at startup.
type Dataset struct {
	Destinations []domain.Destination `yaml:"destinations"`
	Packages     []domain.Package     `yaml:"packages"`
	Memberships  []domain.Membership  `yaml:"memberships"`
	Testimonials []domain.Testimonial `yaml:"testimonials"`
	Team         []domain.TeamMember  `yaml:"team"`
	Stats        []domain.CompanyStat `yaml:"stats"`
	Contact      domain.ContactInfo   `yaml:"contact"`
}

// Seed parses the embedded dataset.
func Seed() (Dataset, error) {
	return Parse(seedYAML)
}

// Parse decodes and validates a YAML dataset.
func Parse(b []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(b, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Validate checks id uniqueness, non-empty tag sets and ordered price ranges.
func (ds Dataset) Validate() error {
	seen := map[int64]struct{}{}
	for _, d := range ds.Destinations {
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("destination %d: duplicate id", d.ID)
		}
		seen[d.ID] = struct{}{}
		if len(d.Categories) == 0 || len(d.Types) == 0 {
			return fmt.Errorf("destination %d: categories and types must be non-empty", d.ID)
		}
		for _, t := range d.Types {
			if t != domain.TypeDomestic && t != domain.TypeInternational {
				return fmt.Errorf("destination %d: unknown type %q", d.ID, t)
			}
		}
		if d.PriceRange.Min > d.PriceRange.Max {
			return fmt.Errorf("destination %d: priceRange.min > priceRange.max", d.ID)
		}
	}

	seen = map[int64]struct{}{}
	for _, p := range ds.Packages {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("package %d: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Type != domain.TypeDomestic && p.Type != domain.TypeInternational {
			return fmt.Errorf("package %d: unknown type %q", p.ID, p.Type)
		}
	}

	seen = map[int64]struct{}{}
	for _, m := range ds.Memberships {
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("membership %d: duplicate id", m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}
