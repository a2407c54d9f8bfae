package hooks

import (
	"context"
	"sync"

	"github.com/vk/toolhub/internal/hub"
)

// Metrics counts dispatches per operation and outcome. Counters are safe for
// concurrent dispatches and idempotent in the sense that a retried dispatch
// simply counts as another attempt.
type Metrics struct {
	mu       sync.Mutex
	started  map[string]int
	statuses map[string]map[hub.Status]int
}

// NewMetrics returns an empty metrics hook.
func NewMetrics() *Metrics {
	return &Metrics{
		started:  make(map[string]int),
		statuses: make(map[string]map[hub.Status]int),
	}
}

// Name implements hub.Hook.
func (m *Metrics) Name() string { return "metrics" }

// Blocking implements hub.Hook. Metrics never block a dispatch.
func (m *Metrics) Blocking() bool { return false }

// Handle implements hub.Hook.
func (m *Metrics) Handle(_ context.Context, stage hub.Stage, req *hub.Request, svc *hub.ServiceContext, resp *hub.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch stage {
	case hub.StagePre:
		m.started[req.Operation]++
		svc.AppendEvent(m.Name(), stage, "metrics_started", req.Operation)
	case hub.StagePost:
		byStatus, ok := m.statuses[req.Operation]
		if !ok {
			byStatus = make(map[hub.Status]int)
			m.statuses[req.Operation] = byStatus
		}
		byStatus[resp.Status]++
		svc.AppendEvent(m.Name(), stage, "metrics_recorded", string(resp.Status))
	}
	return nil
}

// Started returns how many dispatches reached the pre stage for an operation.
func (m *Metrics) Started(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started[operation]
}

// Completed returns how many dispatches finished with the given status.
func (m *Metrics) Completed(operation string, status hub.Status) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statuses[operation][status]
}
