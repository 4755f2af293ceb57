package index

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIndex_UpsertPersists(t *testing.T) {
	t.Parallel()

	fi := NewFile(filepath.Join(t.TempDir(), "index.json"))
	now := time.Now().UTC()

	require.NoError(t, fi.Upsert("ns", "sec", now))

	entries, err := fi.Entries(nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sec", entries[0].Secret)
}

func TestFileIndex_UpsertIsIdempotentPerPair(t *testing.T) {
	t.Parallel()

	fi := NewFile(filepath.Join(t.TempDir(), "index.json"))
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, fi.Upsert("ns", "sec", t1))
	require.NoError(t, fi.Upsert("ns", "sec", t2))

	entries, err := fi.Entries(nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, t2, entries[0].CreatedAt)
}

func TestFileIndex_RemoveThenEnumerate(t *testing.T) {
	t.Parallel()

	fi := NewFile(filepath.Join(t.TempDir(), "index.json"))
	now := time.Now().UTC()
	require.NoError(t, fi.Upsert("ns", "keep", now))
	require.NoError(t, fi.Upsert("ns", "drop", now))

	require.NoError(t, fi.Remove("ns", "drop"))

	ns := "ns"
	entries, err := fi.Entries(&ns)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].Secret)
}

func TestFileIndex_RemoveOnMissingFile(t *testing.T) {
	t.Parallel()

	fi := NewFile(filepath.Join(t.TempDir(), "index.json"))

	// Load of a missing file yields an empty index, so this writes an
	// empty file rather than failing.
	require.NoError(t, fi.Remove("ns", "sec"))

	entries, err := fi.Entries(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
