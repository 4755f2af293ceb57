// Package engine contains the refresh-decision logic at the heart of
// hoard: given a cached record (or its absence), explicit CLI overrides
// and a TTL, it decides whether to serve the cache, re-invoke the
// source command, and how to merge and persist the resulting metadata.
package engine

import (
	"context"
	"time"

	herrors "github.com/hoardsec/hoard/internal/errors"
	"github.com/hoardsec/hoard/internal/index"
	"github.com/hoardsec/hoard/internal/logging"
	"github.com/hoardsec/hoard/internal/secret"
)

// SecretStore is the engine's view of the credential store. Get returns
// (nil, nil) when no entry exists under the pair.
type SecretStore interface {
	Get(namespace, name string) (*secret.Record, error)
	Set(namespace, name string, rec secret.Record) error
	Delete(namespace, name string) error
}

// ListingIndex is the engine's view of the enumeration index.
type ListingIndex interface {
	Upsert(namespace, name string, createdAt time.Time) error
	Remove(namespace, name string) error
	Entries(namespace *string) ([]index.Entry, error)
}

// Fetcher runs a source command and returns its trimmed stdout.
type Fetcher interface {
	Fetch(ctx context.Context, command string, mode secret.SourceMode) (string, error)
}

// Engine orchestrates the store, index and source resolver for get,
// edit and delete requests.
type Engine struct {
	store  SecretStore
	index  ListingIndex
	source Fetcher
	logger *logging.Logger

	// now is swapped out in tests to control expiry decisions.
	now func() time.Time
}

// New creates an engine over the given collaborators.
func New(store SecretStore, idx ListingIndex, source Fetcher, logger *logging.Logger) *Engine {
	return &Engine{
		store:  store,
		index:  idx,
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// SourceOverride is an explicit source command passed on the command
// line, taking precedence over whatever the cached record remembers.
type SourceOverride struct {
	Command string
	Mode    secret.SourceMode
}

// GetOptions carries the per-request flags for Get. ForceRefresh and
// NoRefresh are mutually exclusive.
type GetOptions struct {
	ForceRefresh bool
	NoRefresh    bool
	NoStore      bool
	TTLSeconds   *int64
	Source       *SourceOverride
}

// resolvedSource is the outcome of the source precedence rules: either
// a concrete command to run, or nothing.
type resolvedSource struct {
	command string
	mode    secret.SourceMode
}

// resolveSource applies the ordered fallback for where a refresh gets
// its command from: an explicit override wins, then the cached record's
// remembered source, then failure. The precedence lives here, in one
// place, so it can be tested in isolation.
func resolveSource(override *SourceOverride, existing *secret.Record) (resolvedSource, bool) {
	if override != nil {
		return resolvedSource{command: override.Command, mode: override.Mode}, true
	}
	if existing != nil && existing.SourceCommand != "" && existing.SourceMode != "" {
		return resolvedSource{command: existing.SourceCommand, mode: existing.SourceMode}, true
	}
	return resolvedSource{}, false
}

// Get returns the secret value for (namespace, name), refreshing it
// from its source when forced, missing or expired.
func (e *Engine) Get(ctx context.Context, namespace, name string, opts GetOptions) (string, error) {
	if opts.ForceRefresh && opts.NoRefresh {
		return "", herrors.UsageError{
			Message:    "--force-refresh and --no-refresh are mutually exclusive",
			Suggestion: "drop one of the two flags",
		}
	}

	existing, err := e.store.Get(namespace, name)
	if err != nil {
		return "", err
	}

	if opts.NoRefresh {
		// Explicit opt-out of freshness checking: serve whatever is
		// cached, even an expired value.
		if existing == nil {
			return "", herrors.NotFoundError{Namespace: namespace, Name: name}
		}
		return existing.Value, nil
	}

	needsRefresh := opts.ForceRefresh || existing == nil || existing.IsExpired(e.now())
	if !needsRefresh {
		e.logger.Debug("returning cached secret %s/%s", namespace, name)
		return existing.Value, nil
	}

	src, ok := resolveSource(opts.Source, existing)
	if !ok {
		return "", herrors.NoSourceError{}
	}

	e.logger.Debug("fetching secret %s/%s from source (mode %s)", namespace, name, src.mode)
	value, err := e.source.Fetch(ctx, src.command, src.mode)
	if err != nil {
		return "", err
	}

	// The TTL is sticky across refreshes unless explicitly changed.
	ttl := opts.TTLSeconds
	if ttl == nil && existing != nil {
		ttl = existing.TTLSeconds
	}

	// A refresh is a new fetch event: created_at is reset to now.
	rec := secret.New(value, src.command, src.mode, ttl, e.now())

	if !opts.NoStore {
		if err := e.store.Set(namespace, name, rec); err != nil {
			return "", err
		}
		if err := e.index.Upsert(namespace, name, rec.CreatedAt); err != nil {
			return "", err
		}
		e.logger.Debug("stored secret %s/%s in keyring and index", namespace, name)
	}

	return value, nil
}

// EditOptions carries the metadata changes for Edit. TTLSeconds and
// ClearTTL are mutually exclusive; a source override may be combined
// with either.
type EditOptions struct {
	TTLSeconds *int64
	ClearTTL   bool
	Source     *SourceOverride
}

// Edit mutates the metadata of an existing record without invoking its
// source. The value and created_at are untouched; a TTL change
// recomputes expires_at from the original created_at.
func (e *Engine) Edit(ctx context.Context, namespace, name string, opts EditOptions) error {
	if opts.TTLSeconds == nil && !opts.ClearTTL && opts.Source == nil {
		return herrors.NoModificationsError{}
	}

	rec, err := e.store.Get(namespace, name)
	if err != nil {
		return err
	}
	if rec == nil {
		return herrors.NotFoundError{Namespace: namespace, Name: name}
	}

	switch {
	case opts.ClearTTL:
		rec.TTLSeconds = nil
		rec.RecomputeExpiry()
	case opts.TTLSeconds != nil:
		rec.TTLSeconds = opts.TTLSeconds
		rec.RecomputeExpiry()
	}

	if opts.Source != nil {
		rec.SourceCommand = opts.Source.Command
		rec.SourceMode = opts.Source.Mode
	}

	return e.store.Set(namespace, name, *rec)
}

// Delete removes the credential-store entry and the listing entry for
// (namespace, name). Deleting a pair that does not exist succeeds.
func (e *Engine) Delete(ctx context.Context, namespace, name string) error {
	if err := e.store.Delete(namespace, name); err != nil {
		return err
	}
	return e.index.Remove(namespace, name)
}

// Inspect returns the full cached record, metadata included.
func (e *Engine) Inspect(ctx context.Context, namespace, name string) (*secret.Record, error) {
	rec, err := e.store.Get(namespace, name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, herrors.NotFoundError{Namespace: namespace, Name: name}
	}
	return rec, nil
}

// List enumerates cached pairs from the listing index, never touching
// the credential store.
func (e *Engine) List(namespace *string) ([]index.Entry, error) {
	return e.index.Entries(namespace)
}
