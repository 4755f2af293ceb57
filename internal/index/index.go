// Package index maintains the flat-file listing of cached secrets. The
// index is a secondary, non-authoritative enumeration of which
// (namespace, name) pairs exist; the keyring remains the source of
// truth. It is loaded fully into memory and rewritten as a whole on
// every mutation.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	herrors "github.com/hoardsec/hoard/internal/errors"
)

// Entry records one cached secret for enumeration.
type Entry struct {
	Namespace string    `json:"namespace"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"created_at"`
}

// Index is the in-memory form of the listing file. Entries keep their
// insertion order.
type Index struct {
	Entries []Entry `json:"entries"`
}

// DefaultPath returns the per-user location of the index file,
// honoring XDG_DATA_HOME.
func DefaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", herrors.BackendError{Op: "locating data directory", Err: err}
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "hoard", "index.json"), nil
}

// Load reads the index file. A missing file is not an error; it yields
// an empty index.
func Load(path string) (*Index, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Index{}, nil
		}
		return nil, herrors.BackendError{Op: "reading listing index", Err: err}
	}

	var idx Index
	if err := json.Unmarshal(contents, &idx); err != nil {
		return nil, herrors.SerializationError{Err: err}
	}
	return &idx, nil
}

// Save writes the index file, creating parent directories as needed.
// The write goes through a temp file in the same directory followed by
// a rename, so a concurrent reader never observes a half-written file.
func Save(path string, idx *Index) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return herrors.BackendError{Op: "creating index directory", Err: err}
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return herrors.SerializationError{Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".index-*.json")
	if err != nil {
		return herrors.BackendError{Op: "creating index temp file", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return herrors.BackendError{Op: "writing listing index", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return herrors.BackendError{Op: "writing listing index", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return herrors.BackendError{Op: fmt.Sprintf("replacing %s", path), Err: err}
	}
	return nil
}

// Upsert adds an entry or, when the (namespace, name) pair already
// exists, refreshes its created_at in place.
func (idx *Index) Upsert(namespace, name string, createdAt time.Time) {
	for i := range idx.Entries {
		if idx.Entries[i].Namespace == namespace && idx.Entries[i].Secret == name {
			idx.Entries[i].CreatedAt = createdAt
			return
		}
	}
	idx.Entries = append(idx.Entries, Entry{
		Namespace: namespace,
		Secret:    name,
		CreatedAt: createdAt,
	})
}

// Remove drops the entry for (namespace, name); absent pairs are a
// no-op.
func (idx *Index) Remove(namespace, name string) {
	kept := idx.Entries[:0]
	for _, e := range idx.Entries {
		if !(e.Namespace == namespace && e.Secret == name) {
			kept = append(kept, e)
		}
	}
	idx.Entries = kept
}

// Filter returns entries in insertion order, restricted to one
// namespace when given.
func (idx *Index) Filter(namespace *string) []Entry {
	if namespace == nil {
		return idx.Entries
	}
	var out []Entry
	for _, e := range idx.Entries {
		if e.Namespace == *namespace {
			out = append(out, e)
		}
	}
	return out
}
