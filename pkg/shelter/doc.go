// Package shelter provides the record store client for the kennel dashboard.
//
// # Overview
//
// The store holds one logical collection of animal outcome records. Each
// record is a flat field→value map stored as a Redis hash, addressed by an
// opaque record id. A companion Redis set indexes all record ids so the
// collection can be enumerated and filtered.
//
// # Queries
//
// Reads are driven by declarative predicates: a conjunction of field
// clauses (equality, set membership, inclusive numeric range). Predicates
// are plain data with JSON/YAML tags, so filter catalogs can be validated
// and serialized independently of the store. A predicate with no clauses
// is the identity predicate and matches every record.
//
// # Error policy
//
// Construction is cheap; connectivity is verified with Ping, and callers
// are expected to treat a failed Ping at startup as fatal. After startup,
// store failures are returned as errors so callers can distinguish "zero
// matches" from "store failure" - the dashboard logs and degrades, it
// never crashes the render path.
package shelter
