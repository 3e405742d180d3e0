package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlane/go-board/client"
)

func TestFileTokenStore(t *testing.T) {
	t.Run("set then get returns exactly the token", func(t *testing.T) {
		store, err := client.NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Set("header.payload.signature"))

		got, err := store.Get()
		require.NoError(t, err)
		assert.Equal(t, "header.payload.signature", got)
	})

	t.Run("empty slot reports not found", func(t *testing.T) {
		store, err := client.NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Get()
		assert.ErrorIs(t, err, client.ErrTokenNotFound)
	})

	t.Run("remove clears the slot", func(t *testing.T) {
		store, err := client.NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Set("token"))
		require.NoError(t, store.Remove())

		_, err = store.Get()
		assert.ErrorIs(t, err, client.ErrTokenNotFound)
	})

	t.Run("remove on an empty slot is not an error", func(t *testing.T) {
		store, err := client.NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		assert.NoError(t, store.Remove())
	})

	t.Run("a second login overwrites the slot", func(t *testing.T) {
		store, err := client.NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Set("first"))
		require.NoError(t, store.Set("second"))

		got, err := store.Get()
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("slot survives a new store instance", func(t *testing.T) {
		dir := t.TempDir()

		first, err := client.NewFileTokenStore(dir)
		require.NoError(t, err)
		require.NoError(t, first.Set("persisted"))

		second, err := client.NewFileTokenStore(dir)
		require.NoError(t, err)

		got, err := second.Get()
		require.NoError(t, err)
		assert.Equal(t, "persisted", got)
	})
}

func TestMemTokenStore(t *testing.T) {
	store := client.NewMemTokenStore()

	_, err := store.Get()
	assert.ErrorIs(t, err, client.ErrTokenNotFound)

	require.NoError(t, store.Set("token"))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "token", got)

	require.NoError(t, store.Remove())

	_, err = store.Get()
	assert.ErrorIs(t, err, client.ErrTokenNotFound)
}
