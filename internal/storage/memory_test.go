package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissingKey(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), KeyIncidents)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyIncidents, []byte(`[]`)))
	require.NoError(t, store.Set(ctx, KeyComments, []byte(`[{"id":"1"}]`)))

	val, err := store.Get(ctx, KeyIncidents)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(val))

	require.NoError(t, store.Delete(ctx, KeyIncidents, KeyComments, "unknown"))

	_, err = store.Get(ctx, KeyComments)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, store.Set(ctx, KeyOnboarding, buf))
	buf[0] = 'x'

	val, err := store.Get(ctx, KeyOnboarding)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(val))

	val[1] = 'y'
	again, err := store.Get(ctx, KeyOnboarding)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
