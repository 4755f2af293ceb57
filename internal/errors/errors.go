// Package errors defines the error taxonomy surfaced by hoard. Every
// failure mode a user can hit maps to one of these types so the CLI can
// print a message that says which thing went wrong, with a suggestion
// where one exists. Nothing is retried automatically.
package errors

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a lookup against a (namespace, name) pair with
// no cached value.
type NotFoundError struct {
	Namespace string
	Name      string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("secret '%s' not found in namespace '%s'", e.Name, e.Namespace)
}

// NoSourceError indicates a refresh was required but no source command
// was available from either the CLI or the cached record.
type NoSourceError struct{}

func (e NoSourceError) Error() string {
	return "no source command provided and secret is not cached\n  💡 Try: pass --source-sh '<command>' or --source-cmd '<command>'"
}

// NoModificationsError indicates an edit request that changes nothing.
type NoModificationsError struct{}

func (e NoModificationsError) Error() string {
	return "no modifications specified; provide at least one of --ttl, --clear-ttl, --source-sh, or --source-cmd"
}

// SourceError indicates the external source command failed, either by
// exiting non-zero or by being unrunnable in the first place.
type SourceError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e SourceError) Error() string {
	var parts []string
	if e.Err != nil {
		parts = append(parts, fmt.Sprintf("source command failed: %v", e.Err))
	} else {
		parts = append(parts, fmt.Sprintf("source command failed: exit status %d", e.ExitCode))
	}
	if e.Stderr != "" {
		parts = append(parts, e.Stderr)
	}
	return strings.Join(parts, ": ")
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// BackendError wraps a failure in the OS credential store or the
// filesystem hosting the listing index.
type BackendError struct {
	Op  string
	Err error
}

func (e BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e BackendError) Unwrap() error {
	return e.Err
}

// SerializationError indicates a persisted record or index file that
// could not be decoded.
type SerializationError struct {
	Err error
}

func (e SerializationError) Error() string {
	return fmt.Sprintf("corrupt persisted data: %v\n  💡 Try: delete the affected secret and fetch it again", e.Err)
}

func (e SerializationError) Unwrap() error {
	return e.Err
}

// UsageError indicates invalid CLI input that slipped past flag parsing.
type UsageError struct {
	Message    string
	Suggestion string
}

func (e UsageError) Error() string {
	if e.Suggestion == "" {
		return e.Message
	}
	return e.Message + "\n  💡 Try: " + e.Suggestion
}
