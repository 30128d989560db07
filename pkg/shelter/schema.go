package shelter

import "fmt"

// Redis key pattern helpers
//
// All keys are namespaced by database and collection name so multiple
// logical collections can coexist on a single Redis server.
//
// Key pattern: kennel:{db}:{collection}:record:{record_id}
// Index pattern: kennel:{db}:{collection}:records

// RecordKey returns the Redis key for a single record hash.
// Pattern: kennel:{db}:{collection}:record:{record_id}
func RecordKey(db, collection, recordID string) string {
	return fmt.Sprintf("kennel:%s:%s:record:%s", db, collection, recordID)
}

// IndexKey returns the Redis key for the set of all record ids in a
// collection.
// Pattern: kennel:{db}:{collection}:records
func IndexKey(db, collection string) string {
	return fmt.Sprintf("kennel:%s:%s:records", db, collection)
}
