// Package store defines the snapshot collaborators the dispatcher hydrates
// context from, plus the audit sink hooks write to. The concrete business
// services behind these snapshots are external; the platform only reads and
// writes the snapshot shapes below.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// SessionSnapshot is the dispatcher-visible view of a chat-like session.
type SessionSnapshot struct {
	ID           string `badgerhold:"key"`
	UserID       string
	State        string
	LastActivity time.Time
}

// CasefileSnapshot is the dispatcher-visible view of a casefile.
type CasefileSnapshot struct {
	ID        string `badgerhold:"key"`
	OwnerID   string
	Title     string
	Tags      []string
	UpdatedAt time.Time
}

// AuditRecord is one audit trail entry emitted by the audit hook. A record
// with Status "started" and no matching "completed" record is a legal,
// queryable state, not an error: callers that cancel mid-dispatch leave one
// behind by design.
type AuditRecord struct {
	ID        string `badgerhold:"key"`
	RequestID string `badgerholdIndex:"RequestID"`
	Operation string
	Stage     string
	Status    string
	UserID    string
	At        time.Time
}

// SessionStore fetches and stores session snapshots.
type SessionStore interface {
	GetSession(ctx context.Context, id string) (*SessionSnapshot, error)
	PutSession(ctx context.Context, s *SessionSnapshot) error
}

// CasefileStore fetches and stores casefile snapshots.
type CasefileStore interface {
	GetCasefile(ctx context.Context, id string) (*CasefileSnapshot, error)
	PutCasefile(ctx context.Context, c *CasefileSnapshot) error
}

// AuditSink receives audit records from the audit hook.
type AuditSink interface {
	WriteAudit(ctx context.Context, rec *AuditRecord) error
}
