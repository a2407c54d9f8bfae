package hooks

import (
	"context"
	"time"

	"github.com/vk/toolhub/internal/hub"
	"github.com/vk/toolhub/internal/store"
)

// Lifecycle stamps session activity around the service call. It only acts
// when a session snapshot was hydrated; re-stamping the same session on a
// retried dispatch is harmless.
type Lifecycle struct {
	sessions store.SessionStore
}

// NewLifecycle returns a lifecycle hook that touches sessions in the given
// store.
func NewLifecycle(sessions store.SessionStore) *Lifecycle {
	return &Lifecycle{sessions: sessions}
}

// Name implements hub.Hook.
func (l *Lifecycle) Name() string { return "lifecycle" }

// Blocking implements hub.Hook.
func (l *Lifecycle) Blocking() bool { return false }

// Handle implements hub.Hook.
func (l *Lifecycle) Handle(ctx context.Context, stage hub.Stage, _ *hub.Request, svc *hub.ServiceContext, _ *hub.Response) error {
	if svc.Session == nil {
		return nil
	}

	switch stage {
	case hub.StagePre:
		svc.AppendEvent(l.Name(), stage, "session_active", svc.Session.ID)
	case hub.StagePost:
		touched := *svc.Session
		touched.LastActivity = time.Now().UTC()
		if err := l.sessions.PutSession(ctx, &touched); err != nil {
			return err
		}
		svc.AppendEvent(l.Name(), stage, "session_touched", touched.ID)
	}
	return nil
}
