package store

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgekv-dev/edgekv/domain/errors"
	"github.com/edgekv-dev/edgekv/domain/ports"
)

func seedRegistry(t *testing.T, keys ...string) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, k := range keys {
		require.NoError(t, reg.Insert("s", mustKey(t, k), []byte("v"), ports.InsertOptions{}))
	}
	return reg
}

func TestRegistry_List_PrefixFilter(t *testing.T) {
	reg := seedRegistry(t, "a1", "a2", "b1")

	doc, err := reg.List("s", ports.ListOptions{Prefix: "a", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "a2"}, doc.Data)
	assert.Equal(t, uint32(10), doc.Meta.Limit)
	assert.Equal(t, "a", doc.Meta.Prefix)
	assert.Empty(t, doc.Meta.NextCursor)
	assert.False(t, doc.Truncated())
}

func TestRegistry_List_Ordering(t *testing.T) {
	reg := seedRegistry(t, "delta", "alpha", "charlie", "bravo")

	doc, err := reg.List("s", ports.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, doc.Data)
}

func TestRegistry_List_Paging(t *testing.T) {
	keys := []string{"k0", "k1", "k2", "k3", "k4"}
	reg := seedRegistry(t, keys...)

	var collected []string
	cursor := ""
	for page := 0; ; page++ {
		require.Less(t, page, 10, "paging must terminate")

		doc, err := reg.List("s", ports.ListOptions{Cursor: cursor, Limit: 2})
		require.NoError(t, err)
		collected = append(collected, doc.Data...)

		if !doc.Truncated() {
			break
		}
		assert.Len(t, doc.Data, 2)
		cursor = doc.Meta.NextCursor
	}

	assert.Equal(t, keys, collected)
}

func TestRegistry_List_CursorIsStrictlyGreater(t *testing.T) {
	reg := seedRegistry(t, "a", "b", "c")

	cursor := base64.StdEncoding.EncodeToString([]byte("b"))
	doc, err := reg.List("s", ports.ListOptions{Cursor: cursor, Limit: 10})
	require.NoError(t, err)

	// The cursor key itself is excluded from the next page.
	assert.Equal(t, []string{"c"}, doc.Data)
}

func TestRegistry_List_RepeatedCursorIsIdempotent(t *testing.T) {
	reg := seedRegistry(t, "a", "b", "c", "d")

	first, err := reg.List("s", ports.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.True(t, first.Truncated())

	second, err := reg.List("s", ports.ListOptions{Cursor: first.Meta.NextCursor, Limit: 2})
	require.NoError(t, err)

	again, err := reg.List("s", ports.ListOptions{Cursor: first.Meta.NextCursor, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, second, again)
}

func TestRegistry_List_EmptyPage(t *testing.T) {
	reg := seedRegistry(t, "a")

	doc, err := reg.List("s", ports.ListOptions{Prefix: "z", Limit: 10})
	require.NoError(t, err)

	// data serializes as [] rather than null even when empty.
	assert.NotNil(t, doc.Data)
	assert.Empty(t, doc.Data)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":[]`)
}

func TestRegistry_List_InvalidCursor(t *testing.T) {
	reg := seedRegistry(t, "a")

	_, err := reg.List("s", ports.ListOptions{Cursor: "%%not-base64%%", Limit: 10})
	assert.ErrorIs(t, err, errors.KvBadRequest)
}

func TestRegistry_List_MissingStore(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.List("nope", ports.ListOptions{Limit: 10})
	assert.ErrorIs(t, err, errors.KvInternalError)
}

func TestRegistry_List_GoldenDocument(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	reg := seedRegistry(t, "a1", "a2", "b1")

	t.Run("full page", func(t *testing.T) {
		doc, err := reg.List("s", ports.ListOptions{Prefix: "a", Limit: 10})
		require.NoError(t, err)

		raw, err := json.Marshal(doc)
		require.NoError(t, err)
		g.Assert(t, "list_prefix", raw)
	})

	t.Run("truncated page", func(t *testing.T) {
		doc, err := reg.List("s", ports.ListOptions{Prefix: "a", Limit: 1})
		require.NoError(t, err)

		raw, err := json.Marshal(doc)
		require.NoError(t, err)
		g.Assert(t, "list_truncated", raw)
	})
}
