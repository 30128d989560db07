package shelter

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrEmptyRecord is returned when Create or Update is called with no data.
// An empty record indicates a programming mistake upstream, not a store
// failure, so it is reported as a distinct error.
var ErrEmptyRecord = errors.New("no record data provided")

// Client provides CRUD operations over one logical collection of records.
// All keys are namespaced with the database and collection names. The
// client is safe for concurrent use.
type Client struct {
	rdb        *redis.Client
	db         string
	collection string
}

// NewClient creates a store client for the given database and collection.
// Construction does not touch the network; call Ping to verify
// connectivity before serving.
//
// Returns an error if db or collection is empty.
func NewClient(opts *redis.Options, db, collection string) (*Client, error) {
	if db == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}
	if collection == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	return &Client{
		rdb:        redis.NewClient(opts),
		db:         db,
		collection: collection,
	}, nil
}

// Close closes the store connection. Implements io.Closer.
// After calling Close(), the client should not be used.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies store connectivity. A failed Ping at startup should be
// treated as fatal - no subsequent operation can succeed without a
// connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// GenerateID returns a new opaque unique record id.
func (c *Client) GenerateID() string {
	return uuid.New().String()
}

// Create inserts a record into the collection. If the record carries no
// record_id, a generated id is assigned. The input record is not mutated.
//
// Returns ErrEmptyRecord if rec is empty - insertion never silently
// no-ops.
func (c *Client) Create(ctx context.Context, rec Record) error {
	if len(rec) == 0 {
		return ErrEmptyRecord
	}

	rec = rec.Clone()
	id := rec.ID()
	if id == "" {
		id = c.GenerateID()
		rec[FieldRecordID] = id
	}

	key := RecordKey(c.db, c.collection, id)
	if err := c.rdb.HSet(ctx, key, map[string]string(rec)).Err(); err != nil {
		return fmt.Errorf("failed to write record %s: %w", id, err)
	}

	if err := c.rdb.SAdd(ctx, IndexKey(c.db, c.collection), id).Err(); err != nil {
		return fmt.Errorf("failed to index record %s: %w", id, err)
	}

	return nil
}

// Get retrieves a single record by id.
// Returns (nil, redis.Nil) if the record doesn't exist.
// Use IsNotFound() to check for not-found errors.
func (c *Client) Get(ctx context.Context, recordID string) (Record, error) {
	key := RecordKey(c.db, c.collection, recordID)

	hash, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", recordID, err)
	}

	// HGetAll returns an empty map for non-existent keys
	if len(hash) == 0 {
		return nil, redis.Nil
	}

	return Record(hash), nil
}

// Read returns all records matching the predicate, sorted by record id so
// repeated reads against an unchanged store yield identical results. The
// returned records include the internal record_id field; presentation
// layers are expected to strip it.
//
// A store failure is returned as an error, distinguishable from a
// successful read with zero matches.
func (c *Client) Read(ctx context.Context, p Predicate) ([]Record, error) {
	ids, err := c.rdb.SMembers(ctx, IndexKey(c.db, c.collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate records: %w", err)
	}
	sort.Strings(ids)

	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		hash, err := c.rdb.HGetAll(ctx, RecordKey(c.db, c.collection, id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read record %s: %w", id, err)
		}
		if len(hash) == 0 {
			// Index entry with no hash behind it - skip rather than fail the
			// whole read.
			continue
		}

		rec := Record(hash)
		if p.Matches(rec) {
			out = append(out, rec)
		}
	}

	return out, nil
}

// Update applies the field changes to every record matching the predicate
// and returns the count of modified records. The record_id field cannot be
// overwritten.
//
// Returns ErrEmptyRecord if changes is empty.
func (c *Client) Update(ctx context.Context, p Predicate, changes Record) (int, error) {
	if len(changes) == 0 {
		return 0, ErrEmptyRecord
	}

	changes = changes.Clone()
	delete(changes, FieldRecordID)
	if len(changes) == 0 {
		return 0, nil
	}

	matches, err := c.Read(ctx, p)
	if err != nil {
		return 0, err
	}

	modified := 0
	for _, rec := range matches {
		key := RecordKey(c.db, c.collection, rec.ID())
		if err := c.rdb.HSet(ctx, key, map[string]string(changes)).Err(); err != nil {
			return modified, fmt.Errorf("failed to update record %s: %w", rec.ID(), err)
		}
		modified++
	}

	return modified, nil
}

// Delete removes every record matching the predicate and returns the count
// of removed records.
func (c *Client) Delete(ctx context.Context, p Predicate) (int, error) {
	matches, err := c.Read(ctx, p)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, rec := range matches {
		id := rec.ID()
		if err := c.rdb.Del(ctx, RecordKey(c.db, c.collection, id)).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete record %s: %w", id, err)
		}
		if err := c.rdb.SRem(ctx, IndexKey(c.db, c.collection), id).Err(); err != nil {
			return removed, fmt.Errorf("failed to unindex record %s: %w", id, err)
		}
		removed++
	}

	return removed, nil
}

// IsNotFound returns true if the error is the store's "record not found"
// error. Use this to check Get results.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
