// Package catalog defines the named rescue-type filters the dashboard
// exposes. Each filter is declarative data - a name, a display label, and
// a conjunction of field clauses - so catalogs can be validated and loaded
// from a YAML file as well as compiled in.
package catalog

import (
	"fmt"
	"os"

	"github.com/dyluth/kennel/pkg/shelter"
	"gopkg.in/yaml.v3"
)

// ResetName is the identity filter. It is always present in a catalog and
// always resolves to the match-everything predicate.
const ResetName = "Reset"

// Filter is one named, selectable filter.
type Filter struct {
	Name    string           `yaml:"name" json:"name"`
	Label   string           `yaml:"label,omitempty" json:"label"`
	Clauses []shelter.Clause `yaml:"clauses,omitempty" json:"clauses,omitempty"`
}

// Predicate returns the filter's predicate structure.
func (f Filter) Predicate() shelter.Predicate {
	return shelter.Predicate{Clauses: f.Clauses}
}

// Validate checks the filter definition.
func (f Filter) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("filter name cannot be empty")
	}
	if f.Name == ResetName && len(f.Clauses) > 0 {
		return fmt.Errorf("filter %q must be the identity filter (no clauses)", ResetName)
	}
	if err := f.Predicate().Validate(); err != nil {
		return fmt.Errorf("filter %q: %w", f.Name, err)
	}
	return nil
}

// Catalog is an ordered set of named filters.
type Catalog struct {
	filters []Filter
	byName  map[string]Filter
}

// New builds a catalog from the given filters. The Reset filter is
// appended automatically when missing, so every catalog has a valid reset
// state.
func New(filters ...Filter) (*Catalog, error) {
	byName := make(map[string]Filter, len(filters)+1)
	ordered := make([]Filter, 0, len(filters)+1)

	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byName[f.Name]; exists {
			return nil, fmt.Errorf("duplicate filter name %q", f.Name)
		}
		byName[f.Name] = f
		ordered = append(ordered, f)
	}

	if _, ok := byName[ResetName]; !ok {
		reset := Filter{Name: ResetName, Label: ResetName}
		byName[ResetName] = reset
		ordered = append(ordered, reset)
	}

	return &Catalog{filters: ordered, byName: byName}, nil
}

// Default returns the built-in rescue-type catalog.
func Default() *Catalog {
	c, err := New(
		Filter{
			Name:  "Water",
			Label: "Water Rescue",
			Clauses: []shelter.Clause{
				shelter.In(shelter.FieldBreed, "Labrador Retriever Mix", "Chesapeake Bay Retriever", "Newfoundland"),
				shelter.Eq(shelter.FieldSex, "Intact Female"),
				shelter.Between(shelter.FieldAge, 26, 156),
			},
		},
		Filter{
			Name:  "Mountain",
			Label: "Mountain Rescue",
			Clauses: []shelter.Clause{
				shelter.In(shelter.FieldBreed, "German Shepherd", "Alaskan Malamute", "Old English Sheepdog", "Siberian Husky", "Rottweiler"),
				shelter.Eq(shelter.FieldSex, "Intact Male"),
				shelter.Between(shelter.FieldAge, 26, 156),
			},
		},
		Filter{
			Name:  "Disaster",
			Label: "Disaster Rescue",
			Clauses: []shelter.Clause{
				shelter.In(shelter.FieldBreed, "Doberman Pinscher", "German Shepherd", "Golden Retriever", "Bloodhound", "Rottweiler"),
				shelter.Eq(shelter.FieldSex, "Intact Male"),
				shelter.Between(shelter.FieldAge, 20, 300),
			},
		},
	)
	if err != nil {
		// The built-in catalog is static; a validation failure here is a
		// programming error.
		panic(err)
	}
	return c
}

// Resolve maps a filter name to its predicate. Unknown or empty names
// resolve to the identity predicate, never an error, so the query pipeline
// stays total over all inputs.
func (c *Catalog) Resolve(name string) shelter.Predicate {
	f, ok := c.byName[name]
	if !ok {
		return shelter.Identity()
	}
	return f.Predicate()
}

// IsReset reports whether the name selects the unfiltered state. Unknown
// names resolve to the identity predicate and therefore count as reset.
func (c *Catalog) IsReset(name string) bool {
	return c.Resolve(name).IsIdentity()
}

// Filters returns the catalog's filters in their stable display order.
func (c *Catalog) Filters() []Filter {
	out := make([]Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Names returns the filter names in display order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.filters))
	for i, f := range c.filters {
		names[i] = f.Name
	}
	return names
}

// catalogFile is the on-disk YAML shape.
type catalogFile struct {
	Version string   `yaml:"version"`
	Filters []Filter `yaml:"filters"`
}

// Load reads and validates a filter catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if file.Version != "1.0" {
		return nil, fmt.Errorf("unsupported catalog version: %s (expected: 1.0)", file.Version)
	}
	if len(file.Filters) == 0 {
		return nil, fmt.Errorf("no filters defined")
	}

	c, err := New(file.Filters...)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}
