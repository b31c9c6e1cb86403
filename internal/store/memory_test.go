package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetPutDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, m.Put(ctx, "k", []byte("v1")))
	value, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)

	// Overwrite
	require.NoError(t, m.Put(ctx, "k", []byte("v2")))
	value, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), value)

	// Delete is idempotent
	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStoreDefensiveCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	in := []byte("original")
	require.NoError(t, m.Put(ctx, "k", in))
	in[0] = 'X'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), out)

	// Mutating a returned value must not leak into the store.
	out[0] = 'Y'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryStoreListKeysByPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, m.Put(ctx, "project:b", []byte("1")))
	require.NoError(t, m.Put(ctx, "project:a", []byte("2")))
	require.NoError(t, m.Put(ctx, "project_feedback:a:x", []byte("3")))
	require.NoError(t, m.Put(ctx, "version:a:1", []byte("4")))

	keys, err := m.ListKeysByPrefix(ctx, "project:")
	require.NoError(t, err)
	assert.Equal(t, []string{"project:a", "project:b"}, keys)

	keys, err = m.ListKeysByPrefix(ctx, "modification:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, PutJSON(ctx, m, "r", &record{Name: "draft", Count: 2}))

	var out record
	require.NoError(t, GetJSON(ctx, m, "r", &out))
	assert.Equal(t, record{Name: "draft", Count: 2}, out)

	err := GetJSON(ctx, m, "missing", &out)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
