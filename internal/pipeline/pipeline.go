// Package pipeline turns a filter name into the tabular result set the
// render surface consumes. It is a pure function over explicit inputs:
// resolve the predicate, fetch matching records, strip the store-internal
// identity field, and normalize every row onto the fixed display schema so
// downstream rendering never faces a shape mismatch - even for zero rows.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/dyluth/kennel/internal/catalog"
	"github.com/dyluth/kennel/pkg/shelter"
)

// Columns is the fixed display schema. Every row in a ResultSet carries
// exactly these fields, in this order, regardless of what the store
// returned.
var Columns = []string{
	shelter.FieldName,
	shelter.FieldBreed,
	shelter.FieldSex,
	shelter.FieldAge,
	shelter.FieldLat,
	shelter.FieldLong,
}

// ResultSet is an ordered set of display rows with a stable column schema.
type ResultSet struct {
	Columns []string         `json:"columns"`
	Rows    []shelter.Record `json:"rows"`
}

// Store is the read capability the pipeline needs from the record store.
type Store interface {
	Read(ctx context.Context, p shelter.Predicate) ([]shelter.Record, error)
}

// Run resolves filterName against the catalog, fetches matching records,
// and normalizes them into a ResultSet.
//
// On store failure the returned ResultSet is still valid - empty rows,
// full column schema - and the error is returned alongside it so callers
// can distinguish an outage from an empty collection. Render-path callers
// are expected to log and keep rendering.
func Run(ctx context.Context, store Store, cat *catalog.Catalog, filterName string) (ResultSet, error) {
	rs := ResultSet{
		Columns: append([]string(nil), Columns...),
		Rows:    []shelter.Record{},
	}

	records, err := store.Read(ctx, cat.Resolve(filterName))
	if err != nil {
		log.Printf("[Pipeline] store read failed for filter %q: %v", filterName, err)
		return rs, fmt.Errorf("failed to run filter %q: %w", filterName, err)
	}

	for _, rec := range records {
		rs.Rows = append(rs.Rows, project(rec))
	}

	return rs, nil
}

// project maps a store record onto the display schema: internal fields
// dropped, missing display fields present as empty strings.
func project(rec shelter.Record) shelter.Record {
	row := make(shelter.Record, len(Columns))
	for _, col := range Columns {
		row[col] = rec[col]
	}
	return row
}
