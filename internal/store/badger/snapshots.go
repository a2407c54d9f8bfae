package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/vk/toolhub/internal/store"
)

// Snapshots implements store.SessionStore, store.CasefileStore and
// store.AuditSink on one shared DB.
type Snapshots struct {
	db *DB
}

// NewSnapshots returns typed snapshot storage backed by the given DB.
func NewSnapshots(db *DB) *Snapshots {
	return &Snapshots{db: db}
}

// GetSession implements store.SessionStore.
func (s *Snapshots) GetSession(_ context.Context, id string) (*store.SessionSnapshot, error) {
	var snap store.SessionSnapshot
	if err := s.db.store.Get(id, &snap); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}
	return &snap, nil
}

// PutSession implements store.SessionStore.
func (s *Snapshots) PutSession(_ context.Context, snap *store.SessionSnapshot) error {
	if err := s.db.store.Upsert(snap.ID, snap); err != nil {
		return fmt.Errorf("failed to write session %s: %w", snap.ID, err)
	}
	return nil
}

// GetCasefile implements store.CasefileStore.
func (s *Snapshots) GetCasefile(_ context.Context, id string) (*store.CasefileSnapshot, error) {
	var snap store.CasefileSnapshot
	if err := s.db.store.Get(id, &snap); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read casefile %s: %w", id, err)
	}
	return &snap, nil
}

// PutCasefile implements store.CasefileStore.
func (s *Snapshots) PutCasefile(_ context.Context, snap *store.CasefileSnapshot) error {
	if err := s.db.store.Upsert(snap.ID, snap); err != nil {
		return fmt.Errorf("failed to write casefile %s: %w", snap.ID, err)
	}
	return nil
}

// WriteAudit implements store.AuditSink.
func (s *Snapshots) WriteAudit(_ context.Context, rec *store.AuditRecord) error {
	if err := s.db.store.Insert(rec.ID, rec); err != nil {
		return fmt.Errorf("failed to write audit record %s: %w", rec.ID, err)
	}
	return nil
}

// AuditByRequest returns every audit record written for one request, in
// insertion order. Consumers use this to find orphaned "started" records
// left behind by cancelled dispatches.
func (s *Snapshots) AuditByRequest(_ context.Context, requestID string) ([]store.AuditRecord, error) {
	var recs []store.AuditRecord
	err := s.db.store.Find(&recs, badgerhold.Where("RequestID").Eq(requestID).Index("RequestID"))
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records for request %s: %w", requestID, err)
	}
	return recs, nil
}
