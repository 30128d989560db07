package shelter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordKey(t *testing.T) {
	key := RecordKey("aac", "animals", "A123456")
	assert.Equal(t, "kennel:aac:animals:record:A123456", key)
}

func TestIndexKey(t *testing.T) {
	key := IndexKey("aac", "animals")
	assert.Equal(t, "kennel:aac:animals:records", key)
}

func TestKeysAreNamespaced(t *testing.T) {
	// Two collections on the same server must never collide
	assert.NotEqual(t, RecordKey("aac", "animals", "A1"), RecordKey("aac", "staff", "A1"))
	assert.NotEqual(t, IndexKey("aac", "animals"), IndexKey("test", "animals"))
}
