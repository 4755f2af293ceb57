// Package keyringstore persists secret records in the operating
// system's native credential store (Keychain, Secret Service, Windows
// Credential Manager) via the go-keyring library.
package keyringstore

import (
	"encoding/json"
	goerrors "errors"

	"github.com/awnumar/memguard"
	"github.com/zalando/go-keyring"

	herrors "github.com/hoardsec/hoard/internal/errors"
	"github.com/hoardsec/hoard/internal/logging"
	"github.com/hoardsec/hoard/internal/secret"
)

// servicePrefix namespaces hoard's entries inside the shared OS store.
const servicePrefix = "hoard:"

// ServiceName derives the credential-store service identifier for a
// namespace. The secret name becomes the account key.
func ServiceName(namespace string) string {
	return servicePrefix + namespace
}

// Store adapts the OS credential store to hoard's record model. The
// zero value is not usable; construct with New.
type Store struct {
	logger *logging.Logger
}

// New creates a credential store adapter.
func New(logger *logging.Logger) *Store {
	return &Store{logger: logger}
}

// Get loads the record stored under (namespace, name). A missing entry
// returns (nil, nil); any other backend failure is an error.
func (s *Store) Get(namespace, name string) (*secret.Record, error) {
	payload, err := keyring.Get(ServiceName(namespace), name)
	if err != nil {
		if goerrors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, herrors.BackendError{Op: "reading keyring entry", Err: err}
	}

	buf := []byte(payload)
	defer memguard.WipeBytes(buf)

	var rec secret.Record
	if err := json.Unmarshal(buf, &rec); err != nil {
		return nil, herrors.SerializationError{Err: err}
	}
	return &rec, nil
}

// Set upserts the record under (namespace, name), overwriting any
// existing entry.
func (s *Store) Set(namespace, name string, rec secret.Record) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return herrors.SerializationError{Err: err}
	}
	defer memguard.WipeBytes(buf)

	if err := keyring.Set(ServiceName(namespace), name, string(buf)); err != nil {
		return herrors.BackendError{Op: "writing keyring entry", Err: err}
	}
	s.logger.Debug("stored secret %s in keyring service %s", name, ServiceName(namespace))
	return nil
}

// Delete removes the entry under (namespace, name). Deleting an absent
// entry is a silent no-op.
func (s *Store) Delete(namespace, name string) error {
	err := keyring.Delete(ServiceName(namespace), name)
	if err != nil && !goerrors.Is(err, keyring.ErrNotFound) {
		return herrors.BackendError{Op: "deleting keyring entry", Err: err}
	}
	return nil
}
