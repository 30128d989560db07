package shelter

import (
	"fmt"
	"strconv"
)

// Field names the dashboard logic depends on. Records may carry any number
// of additional fields; these are the ones with defined semantics.
const (
	// FieldRecordID is the store-internal identity field. It is assigned on
	// Create and stripped before rows reach the presentation layer.
	FieldRecordID = "record_id"

	FieldName  = "name"
	FieldBreed = "breed"
	FieldSex   = "sex_upon_outcome"
	FieldAge   = "age_upon_outcome_in_weeks"
	FieldLat   = "location_lat"
	FieldLong  = "location_long"
)

// Record represents one animal outcome event as a flat field→value map.
// All values are stored as strings; numeric fields are coerced at the
// point of use so dirty source data cannot break a read.
type Record map[string]string

// Clone returns a copy of the record. Mutating the copy does not affect
// the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ID returns the store-internal record id, or "" if the record has none.
func (r Record) ID() string {
	return r[FieldRecordID]
}

// Op identifies the comparison a clause applies to a single field.
type Op string

const (
	// OpEq matches records whose field value equals Value exactly.
	OpEq Op = "eq"

	// OpIn matches records whose field value is one of Values.
	OpIn Op = "in"

	// OpRange matches records whose field value parses as a number within
	// [Min, Max] inclusive. Records with a missing or non-numeric field
	// value never match.
	OpRange Op = "range"
)

// Clause is a single field constraint. Which of Value/Values/Min/Max is
// meaningful depends on Op.
type Clause struct {
	Field  string   `json:"field" yaml:"field"`
	Op     Op       `json:"op" yaml:"op"`
	Value  string   `json:"value,omitempty" yaml:"value,omitempty"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
	Min    float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max    float64  `json:"max,omitempty" yaml:"max,omitempty"`
}

// Predicate is a conjunction of clauses. The zero value (no clauses) is
// the identity predicate and matches every record.
type Predicate struct {
	Clauses []Clause `json:"clauses,omitempty" yaml:"clauses,omitempty"`
}

// Identity returns the predicate that matches every record.
func Identity() Predicate {
	return Predicate{}
}

// Eq builds an equality clause.
func Eq(field, value string) Clause {
	return Clause{Field: field, Op: OpEq, Value: value}
}

// In builds a set-membership clause.
func In(field string, values ...string) Clause {
	return Clause{Field: field, Op: OpIn, Values: values}
}

// Between builds an inclusive numeric range clause.
func Between(field string, min, max float64) Clause {
	return Clause{Field: field, Op: OpRange, Min: min, Max: max}
}

// Where builds a predicate from the given clauses.
func Where(clauses ...Clause) Predicate {
	return Predicate{Clauses: clauses}
}

// IsIdentity reports whether the predicate matches every record.
func (p Predicate) IsIdentity() bool {
	return len(p.Clauses) == 0
}

// Matches reports whether the record satisfies every clause.
func (p Predicate) Matches(r Record) bool {
	for _, c := range p.Clauses {
		if !c.matches(r) {
			return false
		}
	}
	return true
}

func (c Clause) matches(r Record) bool {
	v, ok := r[c.Field]
	if !ok {
		return false
	}

	switch c.Op {
	case OpEq:
		return v == c.Value
	case OpIn:
		for _, want := range c.Values {
			if v == want {
				return true
			}
		}
		return false
	case OpRange:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return false
		}
		return n >= c.Min && n <= c.Max
	default:
		return false
	}
}

// Validate checks that the predicate's clauses are well-formed.
func (p Predicate) Validate() error {
	for i, c := range p.Clauses {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("clause %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks that the clause is well-formed.
func (c Clause) Validate() error {
	if c.Field == "" {
		return fmt.Errorf("clause field cannot be empty")
	}

	switch c.Op {
	case OpEq:
		return nil
	case OpIn:
		if len(c.Values) == 0 {
			return fmt.Errorf("in clause on %q has no values", c.Field)
		}
		return nil
	case OpRange:
		if c.Min > c.Max {
			return fmt.Errorf("range clause on %q has min %v > max %v", c.Field, c.Min, c.Max)
		}
		return nil
	default:
		return fmt.Errorf("unknown clause op: %q", c.Op)
	}
}
