// Package geo resolves the dashboard's row selection into a renderable
// map state. The resolver is total: no input shape - missing fields, dirty
// coordinates, out-of-range index - may fail a render pass. It always
// yields a valid state, defaulting where necessary.
package geo

import (
	"strconv"
	"strings"

	"github.com/dyluth/kennel/pkg/shelter"
)

// Labels substituted when a selected row is missing display data.
const (
	NoNameLabel  = "No name found"
	NoBreedLabel = "No breed found"
)

// Point is a latitude/longitude pair.
type Point struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Marker is the single map marker for the selected row.
type Marker struct {
	Position Point  `json:"position"`
	Name     string `json:"name"`  // tooltip label
	Breed    string `json:"breed"` // popup secondary label
}

// MapState is what the render surface needs to draw the map: a center and
// at most one marker. A nil Marker means no row is selected.
type MapState struct {
	Center Point   `json:"center"`
	Marker *Marker `json:"marker,omitempty"`
}

// Resolve maps the currently visible rows and the selected row index to a
// map state, falling back to the given default point when data is missing
// or malformed.
//
// Policy, in order: no rows or out-of-range index yields the bare default
// view; a selected row with unparseable coordinates keeps its marker but
// at the default point; missing name or breed values are substituted with
// placeholder labels.
func Resolve(rows []shelter.Record, selected int, fallback Point) MapState {
	if len(rows) == 0 || selected < 0 || selected >= len(rows) {
		return MapState{Center: fallback}
	}

	row := rows[selected]

	pos := fallback
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[shelter.FieldLat]), 64)
	long, longErr := strconv.ParseFloat(strings.TrimSpace(row[shelter.FieldLong]), 64)
	if latErr == nil && longErr == nil {
		pos = Point{Lat: lat, Long: long}
	}

	name := row[shelter.FieldName]
	if name == "" {
		name = NoNameLabel
	}

	breed := strings.TrimSpace(row[shelter.FieldBreed])
	if breed == "" {
		breed = NoBreedLabel
	}

	return MapState{
		Center: pos,
		Marker: &Marker{Position: pos, Name: name, Breed: breed},
	}
}
