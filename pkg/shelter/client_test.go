package shelter

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClient creates a test client connected to a miniredis instance
func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&redis.Options{Addr: mr.Addr()}, "aac", "animals")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestNewClient(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		client, _ := setupTestClient(t)
		assert.NotNil(t, client)
		assert.Equal(t, "aac", client.db)
		assert.Equal(t, "animals", client.collection)
	})

	t.Run("rejects empty database name", func(t *testing.T) {
		_, err := NewClient(&redis.Options{Addr: "localhost:6379"}, "", "animals")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database name cannot be empty")
	})

	t.Run("rejects empty collection name", func(t *testing.T) {
		_, err := NewClient(&redis.Options{Addr: "localhost:6379"}, "aac", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "collection name cannot be empty")
	})
}

func TestPing(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	err := client.Ping(ctx)
	assert.NoError(t, err)
}

func TestGenerateID(t *testing.T) {
	client, _ := setupTestClient(t)

	id := client.GenerateID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated id should be a valid UUID")

	assert.NotEqual(t, id, client.GenerateID(), "ids should be unique")
}

func TestCreate(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	t.Run("rejects empty record", func(t *testing.T) {
		err := client.Create(ctx, Record{})
		assert.ErrorIs(t, err, ErrEmptyRecord)

		err = client.Create(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyRecord)
	})

	t.Run("round-trips a record with a natural key", func(t *testing.T) {
		rec := Record{
			FieldRecordID: "A123456",
			FieldName:     "Bella",
			FieldBreed:    "Labrador Retriever Mix",
			FieldSex:      "Intact Female",
			FieldAge:      "40",
			FieldLat:      "30.5066578739455",
			FieldLong:     "-97.3408780722188",
		}

		err := client.Create(ctx, rec)
		require.NoError(t, err)

		// Retrievable via an identity-key predicate with all fields intact
		got, err := client.Read(ctx, Where(Eq(FieldRecordID, "A123456")))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, rec, got[0])
	})

	t.Run("assigns a generated id when none is supplied", func(t *testing.T) {
		rec := Record{FieldName: "Rex", FieldBreed: "Poodle"}

		err := client.Create(ctx, rec)
		require.NoError(t, err)

		// The caller's record must not be mutated
		assert.Empty(t, rec.ID())

		got, err := client.Read(ctx, Where(Eq(FieldName, "Rex")))
		require.NoError(t, err)
		require.Len(t, got, 1)

		_, err = uuid.Parse(got[0].ID())
		assert.NoError(t, err)
	})
}

func TestGet(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Create(ctx, Record{
		FieldRecordID: "A1",
		FieldName:     "Milo",
	}))

	t.Run("returns existing record", func(t *testing.T) {
		rec, err := client.Get(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, "Milo", rec[FieldName])
	})

	t.Run("reports not found", func(t *testing.T) {
		_, err := client.Get(ctx, "missing")
		assert.True(t, IsNotFound(err))
	})
}

func TestRead(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	seed := []Record{
		{FieldRecordID: "A2", FieldName: "Luna", FieldBreed: "Labrador Retriever Mix", FieldSex: "Intact Female", FieldAge: "40"},
		{FieldRecordID: "A1", FieldName: "Coco", FieldBreed: "Poodle", FieldSex: "Intact Male", FieldAge: "60"},
		{FieldRecordID: "A3", FieldName: "Duke", FieldBreed: "German Shepherd", FieldSex: "Intact Male", FieldAge: "52"},
	}
	for _, rec := range seed {
		require.NoError(t, client.Create(ctx, rec))
	}

	t.Run("identity predicate returns everything in id order", func(t *testing.T) {
		got, err := client.Read(ctx, Identity())
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "A1", got[0].ID())
		assert.Equal(t, "A2", got[1].ID())
		assert.Equal(t, "A3", got[2].ID())
	})

	t.Run("conjunction narrows the result", func(t *testing.T) {
		got, err := client.Read(ctx, Where(
			In(FieldBreed, "Labrador Retriever Mix", "Chesapeake Bay Retriever", "Newfoundland"),
			Eq(FieldSex, "Intact Female"),
			Between(FieldAge, 26, 156),
		))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Luna", got[0][FieldName])
	})

	t.Run("zero matches is not an error", func(t *testing.T) {
		got, err := client.Read(ctx, Where(Eq(FieldBreed, "Sphynx")))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("store failure surfaces as an error", func(t *testing.T) {
		_, mr := setupTestClient(t)
		broken, err := NewClient(&redis.Options{Addr: mr.Addr()}, "aac", "animals")
		require.NoError(t, err)
		t.Cleanup(func() { broken.Close() })

		mr.SetError("LOADING Redis is loading the dataset in memory")
		_, err = broken.Read(ctx, Identity())
		assert.Error(t, err)
	})
}

func TestUpdate(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	for _, rec := range []Record{
		{FieldRecordID: "A1", FieldName: "Coco", FieldBreed: "Poodle"},
		{FieldRecordID: "A2", FieldName: "Luna", FieldBreed: "Poodle"},
		{FieldRecordID: "A3", FieldName: "Duke", FieldBreed: "German Shepherd"},
	} {
		require.NoError(t, client.Create(ctx, rec))
	}

	t.Run("modifies every matching record", func(t *testing.T) {
		n, err := client.Update(ctx, Where(Eq(FieldBreed, "Poodle")), Record{FieldBreed: "Standard Poodle"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		got, err := client.Read(ctx, Where(Eq(FieldBreed, "Standard Poodle")))
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("rejects empty changes", func(t *testing.T) {
		_, err := client.Update(ctx, Identity(), Record{})
		assert.ErrorIs(t, err, ErrEmptyRecord)
	})

	t.Run("cannot overwrite the record id", func(t *testing.T) {
		n, err := client.Update(ctx, Where(Eq(FieldRecordID, "A3")), Record{FieldRecordID: "hijacked"})
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		rec, err := client.Get(ctx, "A3")
		require.NoError(t, err)
		assert.Equal(t, "A3", rec.ID())
	})
}

func TestDelete(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	for _, rec := range []Record{
		{FieldRecordID: "A1", FieldBreed: "Poodle"},
		{FieldRecordID: "A2", FieldBreed: "Poodle"},
		{FieldRecordID: "A3", FieldBreed: "German Shepherd"},
	} {
		require.NoError(t, client.Create(ctx, rec))
	}

	n, err := client.Delete(ctx, Where(Eq(FieldBreed, "Poodle")))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	remaining, err := client.Read(ctx, Identity())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "A3", remaining[0].ID())

	// Deleted records are gone from the index too
	_, err = client.Get(ctx, "A1")
	assert.True(t, IsNotFound(err))
}
