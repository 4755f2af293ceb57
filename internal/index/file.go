package index

import "time"

// FileIndex binds the load → mutate → save cycle to a single file path.
// Each mutation rereads and rewrites the whole file; there is no
// cross-process locking, so concurrent writers race (last save wins).
type FileIndex struct {
	path string
}

// NewFile creates a file-backed index at path.
func NewFile(path string) *FileIndex {
	return &FileIndex{path: path}
}

// Path returns the backing file location.
func (f *FileIndex) Path() string {
	return f.path
}

// Upsert records (namespace, name) with the given created_at,
// replacing any existing entry for the pair.
func (f *FileIndex) Upsert(namespace, name string, createdAt time.Time) error {
	idx, err := Load(f.path)
	if err != nil {
		return err
	}
	idx.Upsert(namespace, name, createdAt)
	return Save(f.path, idx)
}

// Remove drops the entry for (namespace, name) if present.
func (f *FileIndex) Remove(namespace, name string) error {
	idx, err := Load(f.path)
	if err != nil {
		return err
	}
	idx.Remove(namespace, name)
	return Save(f.path, idx)
}

// Entries enumerates recorded pairs in insertion order, restricted to
// one namespace when given.
func (f *FileIndex) Entries(namespace *string) ([]Entry, error) {
	idx, err := Load(f.path)
	if err != nil {
		return nil, err
	}
	return idx.Filter(namespace), nil
}
