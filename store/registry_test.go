package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgekv-dev/edgekv/domain/entities"
	"github.com/edgekv-dev/edgekv/domain/errors"
	"github.com/edgekv-dev/edgekv/domain/ports"
)

func mustKey(t *testing.T, raw string) entities.ObjectKey {
	t.Helper()
	key, err := entities.NewObjectKey(raw)
	require.NoError(t, err)
	return key
}

func TestRegistry_StoreLifecycle(t *testing.T) {
	reg := NewRegistry()

	exists, err := reg.StoreExists("sessions")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, reg.CreateStore("sessions"))

	exists, err = reg.StoreExists("sessions")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegistry_CreateStore_Idempotent(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.CreateStore("sessions"))

	key := mustKey(t, "user")
	require.NoError(t, reg.Insert("sessions", key, []byte("alice"), ports.InsertOptions{}))

	// Re-creating must not wipe existing contents.
	require.NoError(t, reg.CreateStore("sessions"))

	val, err := reg.Lookup("sessions", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), val.Body)
}

func TestRegistry_Lookup_Missing(t *testing.T) {
	reg := NewRegistry()
	key := mustKey(t, "user")

	t.Run("missing store", func(t *testing.T) {
		_, err := reg.Lookup("nope", key)
		assert.ErrorIs(t, err, errors.ErrMissingObject)
	})

	t.Run("missing key", func(t *testing.T) {
		require.NoError(t, reg.CreateStore("sessions"))
		_, err := reg.Lookup("sessions", key)
		assert.ErrorIs(t, err, errors.ErrMissingObject)
	})
}

func TestRegistry_Lookup_ReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	key := mustKey(t, "user")
	require.NoError(t, reg.Insert("sessions", key, []byte("alice"), ports.InsertOptions{}))

	val, err := reg.Lookup("sessions", key)
	require.NoError(t, err)
	val.Body[0] = 'X'

	again, err := reg.Lookup("sessions", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), again.Body)
}

func TestRegistry_Insert_CreatesStore(t *testing.T) {
	reg := NewRegistry()
	key := mustKey(t, "user")

	// Inserting into a store that was never created succeeds and
	// materializes the store.
	require.NoError(t, reg.Insert("sessions", key, []byte("alice"), ports.InsertOptions{}))

	exists, err := reg.StoreExists("sessions")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegistry_Insert_Modes(t *testing.T) {
	key := mustKey(t, "k")

	t.Run("overwrite replaces", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Insert("s", key, []byte("old"), ports.InsertOptions{}))
		require.NoError(t, reg.Insert("s", key, []byte("new"), ports.InsertOptions{Mode: entities.InsertOverwrite}))

		val, err := reg.Lookup("s", key)
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), val.Body)
	})

	t.Run("add fails on existing", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Insert("s", key, []byte("x"), ports.InsertOptions{}))

		err := reg.Insert("s", key, []byte("y"), ports.InsertOptions{Mode: entities.InsertAdd})
		assert.ErrorIs(t, err, errors.KvPreconditionFailed)

		// The stored value is untouched by the failed insert.
		val, lookupErr := reg.Lookup("s", key)
		require.NoError(t, lookupErr)
		assert.Equal(t, []byte("x"), val.Body)
	})

	t.Run("add succeeds on absent", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Insert("s", key, []byte("x"), ports.InsertOptions{Mode: entities.InsertAdd}))

		val, err := reg.Lookup("s", key)
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), val.Body)
	})

	t.Run("append joins after existing", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Insert("s", key, []byte("0"), ports.InsertOptions{}))
		require.NoError(t, reg.Insert("s", key, []byte("12"), ports.InsertOptions{Mode: entities.InsertAppend}))

		val, err := reg.Lookup("s", key)
		require.NoError(t, err)
		assert.Equal(t, []byte("012"), val.Body)
	})

	t.Run("prepend joins before existing", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Insert("s", key, []byte("12"), ports.InsertOptions{}))
		require.NoError(t, reg.Insert("s", key, []byte("0"), ports.InsertOptions{Mode: entities.InsertPrepend}))

		val, err := reg.Lookup("s", key)
		require.NoError(t, err)
		assert.Equal(t, []byte("012"), val.Body)
	})

	t.Run("append to absent key writes as-is", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Insert("s", key, []byte("abc"), ports.InsertOptions{Mode: entities.InsertAppend}))

		val, err := reg.Lookup("s", key)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), val.Body)
	})
}

func TestRegistry_Insert_GenerationPrecondition(t *testing.T) {
	reg := NewRegistry()
	key := mustKey(t, "k")
	require.NoError(t, reg.Insert("s", key, []byte("v1"), ports.InsertOptions{}))

	val, err := reg.Lookup("s", key)
	require.NoError(t, err)

	t.Run("matching generation passes", func(t *testing.T) {
		gen := val.Generation
		require.NoError(t, reg.Insert("s", key, []byte("v2"), ports.InsertOptions{
			ExpectedGeneration: &gen,
		}))
	})

	t.Run("stale generation fails without mutating", func(t *testing.T) {
		stale := val.Generation // superseded by the insert above
		err := reg.Insert("s", key, []byte("v3"), ports.InsertOptions{
			ExpectedGeneration: &stale,
		})
		assert.ErrorIs(t, err, errors.KvPreconditionFailed)

		current, lookupErr := reg.Lookup("s", key)
		require.NoError(t, lookupErr)
		assert.Equal(t, []byte("v2"), current.Body)
	})

	t.Run("precondition beats add mode", func(t *testing.T) {
		stale := val.Generation
		// Add mode would also fail here, but the generation check runs
		// first and decides the error.
		err := reg.Insert("s", key, []byte("v3"), ports.InsertOptions{
			Mode:               entities.InsertAdd,
			ExpectedGeneration: &stale,
		})
		assert.ErrorIs(t, err, errors.KvPreconditionFailed)
	})
}

func TestRegistry_Insert_GenerationChanges(t *testing.T) {
	reg := NewRegistry()
	key := mustKey(t, "k")

	require.NoError(t, reg.Insert("s", key, []byte("v1"), ports.InsertOptions{}))
	first, err := reg.Lookup("s", key)
	require.NoError(t, err)
	assert.NotZero(t, first.Generation)

	require.NoError(t, reg.Insert("s", key, []byte("v2"), ports.InsertOptions{}))
	second, err := reg.Lookup("s", key)
	require.NoError(t, err)
	assert.NotEqual(t, first.Generation, second.Generation)
}

func TestRegistry_Insert_Metadata(t *testing.T) {
	reg := NewRegistry()
	key := mustKey(t, "k")

	require.NoError(t, reg.Insert("s", key, []byte("v1"), ports.InsertOptions{
		Metadata: []byte("meta"),
	}))

	val, err := reg.Lookup("s", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("meta"), val.Metadata)
	assert.Equal(t, 4, val.MetadataLen)

	// An insert without metadata clears what was stored before.
	require.NoError(t, reg.Insert("s", key, []byte("v2"), ports.InsertOptions{}))

	val, err = reg.Lookup("s", key)
	require.NoError(t, err)
	assert.Nil(t, val.Metadata)
	assert.Zero(t, val.MetadataLen)
}

func TestRegistry_Delete(t *testing.T) {
	key := mustKey(t, "k")

	t.Run("removes existing key", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Insert("s", key, []byte("v"), ports.InsertOptions{}))
		require.NoError(t, reg.Delete("s", key))

		_, err := reg.Lookup("s", key)
		assert.ErrorIs(t, err, errors.ErrMissingObject)
	})

	t.Run("missing key is a hard error", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.CreateStore("s"))

		err := reg.Delete("s", key)
		assert.ErrorIs(t, err, errors.KvNotFound)
	})

	t.Run("missing store is a no-op", func(t *testing.T) {
		reg := NewRegistry()
		assert.NoError(t, reg.Delete("nope", key))
	})
}

func TestRegistry_Poisoning(t *testing.T) {
	reg := NewRegistry()
	key := mustKey(t, "k")
	require.NoError(t, reg.Insert("s", key, []byte("v"), ports.InsertOptions{}))

	require.Panics(t, func() {
		_ = reg.write(func() error { panic("corrupted mid-write") })
	})

	// Poisoning is permanent: every later access fails, reads included.
	_, err := reg.Lookup("s", key)
	assert.ErrorIs(t, err, errors.ErrPoisonedLock)

	err = reg.Insert("s", key, []byte("v2"), ports.InsertOptions{})
	assert.Error(t, err)

	_, err = reg.StoreExists("s")
	assert.ErrorIs(t, err, errors.ErrPoisonedLock)
}

func TestRemapGeneration(t *testing.T) {
	assert.Equal(t, uint32(1338), remapGeneration(1337))
	assert.Equal(t, uint32(42), remapGeneration(42))
	assert.Equal(t, uint32(1338), remapGeneration(1338))
}
