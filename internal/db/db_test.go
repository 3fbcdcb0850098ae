// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/propensive/digression/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Save(&Entry{
		Component:  "com.example",
		ClassName:  "ServiceError",
		Message:    "request rejected",
		FrameCount: 4,
		Rendered:   "com.example/ServiceError: request rejected\n",
	})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "com.example", got.Component)
	assert.Equal(t, "ServiceError", got.ClassName)
	assert.Equal(t, 4, got.FrameCount)
	assert.Contains(t, got.Rendered, "request rejected")
	assert.False(t, got.Timestamp.IsZero())
}

func TestGet_MissingEntry(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(999)
	assert.True(t, errors.Is(err, apperrors.ErrEntryNotFound))
}

func TestList_NewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		_, err := store.Save(&Entry{
			Component:  "com.example",
			ClassName:  "E",
			FrameCount: i,
			Rendered:   "r",
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := store.List(0)
	require.NoError(t, err)
	require.Equal(t, 3, len(entries))
	assert.Equal(t, 2, entries[0].FrameCount)
	assert.Equal(t, 0, entries[2].FrameCount)

	limited, err := store.List(2)
	require.NoError(t, err)
	assert.Equal(t, 2, len(limited))
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 2; i++ {
		_, err := store.Save(&Entry{ClassName: "E", Rendered: "r"})
		require.NoError(t, err)
	}

	deleted, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	entries, err := store.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
