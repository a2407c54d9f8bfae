package hooks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vk/toolhub/internal/hub"
	"github.com/vk/toolhub/internal/store"
)

// Audit writes an audit record before and after the service call. A
// "started" record with no matching "completed" record marks a dispatch the
// caller abandoned; the audit consumer treats that as a distinct queryable
// state, so nothing is rolled back on cancellation.
type Audit struct {
	sink     store.AuditSink
	blocking bool
}

// NewAudit returns an audit hook writing to the given sink. A blocking audit
// hook aborts dispatches when the trail cannot be written.
func NewAudit(sink store.AuditSink, blocking bool) *Audit {
	return &Audit{sink: sink, blocking: blocking}
}

// Name implements hub.Hook.
func (a *Audit) Name() string { return "audit" }

// Blocking implements hub.Hook.
func (a *Audit) Blocking() bool { return a.blocking }

// Handle implements hub.Hook.
func (a *Audit) Handle(ctx context.Context, stage hub.Stage, req *hub.Request, svc *hub.ServiceContext, resp *hub.Response) error {
	rec := &store.AuditRecord{
		ID:        uuid.NewString(),
		RequestID: svc.RequestID,
		Operation: req.Operation,
		Stage:     string(stage),
		UserID:    req.AuthUserID,
		At:        time.Now().UTC(),
	}
	switch stage {
	case hub.StagePre:
		rec.Status = "started"
	case hub.StagePost:
		rec.Status = "completed:" + string(resp.Status)
	}

	if err := a.sink.WriteAudit(ctx, rec); err != nil {
		return err
	}
	svc.AppendEvent(a.Name(), stage, "audit_written", rec.Status)
	return nil
}
