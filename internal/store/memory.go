package store

import (
	"context"
	"sync"
)

// Memory is an in-process implementation of all three store interfaces,
// used in tests and as the default when no data path is configured.
type Memory struct {
	mu        sync.RWMutex
	sessions  map[string]SessionSnapshot
	casefiles map[string]CasefileSnapshot
	audits    []AuditRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		sessions:  make(map[string]SessionSnapshot),
		casefiles: make(map[string]CasefileSnapshot),
	}
}

// GetSession implements SessionStore.
func (m *Memory) GetSession(_ context.Context, id string) (*SessionSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// PutSession implements SessionStore.
func (m *Memory) PutSession(_ context.Context, s *SessionSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

// GetCasefile implements CasefileStore.
func (m *Memory) GetCasefile(_ context.Context, id string) (*CasefileSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.casefiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// PutCasefile implements CasefileStore.
func (m *Memory) PutCasefile(_ context.Context, c *CasefileSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.casefiles[c.ID] = *c
	return nil
}

// WriteAudit implements AuditSink.
func (m *Memory) WriteAudit(_ context.Context, rec *AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits = append(m.audits, *rec)
	return nil
}

// AuditTrail returns a copy of all audit records written so far.
func (m *Memory) AuditTrail() []AuditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]AuditRecord, len(m.audits))
	copy(out, m.audits)
	return out
}
