package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/kv"
)

func drivers(t *testing.T) map[string]kv.Store {
	t.Helper()

	file, err := kv.NewFile(t.TempDir())
	require.NoError(t, err)

	sql, err := kv.NewSQL("sqlite", filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sql.Close() })

	return map[string]kv.Store{
		"memory": kv.NewMemory(),
		"file":   file,
		"sqlite": sql,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "never_written")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, store.Put(ctx, "menu_v1", []byte(`[{"id":"m1"}]`)))
			got, err := store.Get(ctx, "menu_v1")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"m1"}]`, string(got))

			require.NoError(t, store.Put(ctx, "menu_v1", []byte(`[]`)))
			got, err = store.Get(ctx, "menu_v1")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got), "put replaces the previous value")

			require.NoError(t, store.Delete(ctx, "menu_v1"))
			_, err = store.Get(ctx, "menu_v1")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			assert.NoError(t, store.Delete(ctx, "menu_v1"), "delete is idempotent")
		})
	}
}

func TestStoreHoldsLargeValues(t *testing.T) {
	ctx := context.Background()
	big := `["` + strings.Repeat("o", 70<<10) + `"]`

	for name, store := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "orders_v1", []byte(big)))
			got, err := store.Get(ctx, "orders_v1")
			require.NoError(t, err)
			assert.Equal(t, len(big), len(got))
			assert.Equal(t, big, string(got))
		})
	}
}

func TestStoreRejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()

	for name, store := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, store.Put(ctx, "", []byte("x")))
			assert.Error(t, store.Put(ctx, "../escape", []byte("x")))
			assert.Error(t, store.Put(ctx, "a/b", []byte("x")))
		})
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store, err := kv.NewFile(root)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "cart_v1", []byte(`[]`)))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cart_v1.json", entries[0].Name())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	value := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestOpenDriverUnknown(t *testing.T) {
	_, err := kv.OpenDriver(context.Background(), "etcd")
	assert.Error(t, err)
}
