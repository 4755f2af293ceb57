// Package secret defines the persisted shape of a cached secret and its
// expiry bookkeeping.
package secret

import "time"

// SourceMode selects how a source command is executed.
type SourceMode string

const (
	// ModeShell hands the whole command string to `sh -c`, enabling
	// pipes, redirects and shell quoting.
	ModeShell SourceMode = "sh"

	// ModeDirect splits the command string on whitespace and executes
	// it without an interpreter.
	ModeDirect SourceMode = "cmd"
)

// Record is a cached secret together with the metadata needed to decide
// whether it is still fresh and how to refresh it. Records are identified
// by a (namespace, name) pair held outside the record itself.
//
// ExpiresAt is derived: it is present iff TTLSeconds is present and always
// equals CreatedAt + TTLSeconds. Never edit it directly; mutate TTLSeconds
// or CreatedAt and call RecomputeExpiry.
type Record struct {
	Value         string     `json:"value"`
	CreatedAt     time.Time  `json:"created_at"`
	SourceCommand string     `json:"source_command,omitempty"`
	SourceMode    SourceMode `json:"source_type,omitempty"`
	TTLSeconds    *int64     `json:"ttl_seconds,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// New builds a Record for a freshly fetched value. CreatedAt is fixed to
// now; ExpiresAt is derived from ttlSeconds when one is given.
func New(value, sourceCommand string, sourceMode SourceMode, ttlSeconds *int64, now time.Time) Record {
	r := Record{
		Value:         value,
		CreatedAt:     now,
		SourceCommand: sourceCommand,
		SourceMode:    sourceMode,
		TTLSeconds:    ttlSeconds,
	}
	r.RecomputeExpiry()
	return r
}

// IsExpired reports whether the record is stale at the given instant.
// Records without a TTL never expire. The comparison is strict: a record
// observed exactly at its expiry instant is still fresh.
func (r Record) IsExpired(now time.Time) bool {
	if r.ExpiresAt == nil {
		return false
	}
	return now.After(*r.ExpiresAt)
}

// RecomputeExpiry rederives ExpiresAt from CreatedAt and TTLSeconds. It
// must be called after any mutation of either field so the two never
// drift apart.
func (r *Record) RecomputeExpiry() {
	if r.TTLSeconds == nil {
		r.ExpiresAt = nil
		return
	}
	exp := r.CreatedAt.Add(time.Duration(*r.TTLSeconds) * time.Second)
	r.ExpiresAt = &exp
}
