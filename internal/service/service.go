// Package service holds the built-in service operations the hub routes to,
// together with the hub-tagged input structs that define their parameter
// surfaces. The input structs are what the drift scanner compares against
// the definition store, so every exposed parameter carries a `hub` tag.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vk/toolhub/internal/hub"
	"github.com/vk/toolhub/internal/store"
)

// CreateCasefileInput implements the parameter surface of casefile.create.
type CreateCasefileInput struct {
	Title string   `hub:"title"`
	Tags  []string `hub:"tags"`
}

// GetCasefileInput implements the parameter surface of casefile.get.
type GetCasefileInput struct {
	CasefileID string `hub:"casefile_id"`
}

// OpenSessionInput implements the parameter surface of session.open.
type OpenSessionInput struct {
	UserID string `hub:"user_id"`
}

// CloseSessionInput implements the parameter surface of session.close.
type CloseSessionInput struct {
	SessionID string `hub:"session_id"`
	Reason    string `hub:"reason"`
}

// Service implements the built-in casefile and session operations on top of
// the snapshot stores.
type Service struct {
	sessions  store.SessionStore
	casefiles store.CasefileStore
}

// New returns a Service bound to the given stores.
func New(sessions store.SessionStore, casefiles store.CasefileStore) *Service {
	return &Service{sessions: sessions, casefiles: casefiles}
}

// Register binds every built-in operation to its tool name on the hub. This
// is the single orchestration point for what is callable.
func Register(h *hub.Hub, s *Service) {
	h.RegisterOperation("create_casefile", s.CreateCasefile)
	h.RegisterOperation("get_casefile", s.GetCasefile)
	h.RegisterOperation("open_session", s.OpenSession)
	h.RegisterOperation("close_session", s.CloseSession)
}

// CreateCasefile stores a new casefile snapshot. The dry_run parameter is
// orchestration-only: the tool declares it, the method never sees it.
func (s *Service) CreateCasefile(ctx context.Context, req *hub.Request, svc *hub.ServiceContext) (*hub.Response, error) {
	title, ok := req.Payload["title"].(string)
	if !ok || title == "" {
		return nil, fmt.Errorf("payload field 'title' is required")
	}
	var tags []string
	if raw, ok := req.Payload["tags"].([]string); ok {
		tags = raw
	}

	if dryRun, _ := req.Payload["dry_run"].(bool); dryRun {
		return hub.OK(map[string]any{"dry_run": true, "title": title}), nil
	}

	snap := &store.CasefileSnapshot{
		ID:        uuid.NewString(),
		OwnerID:   svc.AuthUserID,
		Title:     title,
		Tags:      tags,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.casefiles.PutCasefile(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to store casefile: %w", err)
	}
	return hub.OK(map[string]any{"casefile_id": snap.ID}), nil
}

// GetCasefile returns the hydrated casefile from the service context; the
// dispatcher already fetched it for the casefile_operation pattern.
func (s *Service) GetCasefile(ctx context.Context, req *hub.Request, svc *hub.ServiceContext) (*hub.Response, error) {
	snap := svc.Casefile
	if snap == nil {
		id, _ := req.Payload["casefile_id"].(string)
		if id == "" {
			id = req.CasefileID
		}
		var err error
		snap, err = s.casefiles.GetCasefile(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("casefile %q: %w", id, err)
		}
	}
	return hub.OK(map[string]any{
		"casefile_id": snap.ID,
		"owner_id":    snap.OwnerID,
		"title":       snap.Title,
		"tags":        snap.Tags,
	}), nil
}

// OpenSession creates a new session snapshot for the given user.
func (s *Service) OpenSession(ctx context.Context, req *hub.Request, _ *hub.ServiceContext) (*hub.Response, error) {
	userID, ok := req.Payload["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("payload field 'user_id' is required")
	}
	snap := &store.SessionSnapshot{
		ID:           uuid.NewString(),
		UserID:       userID,
		State:        "open",
		LastActivity: time.Now().UTC(),
	}
	if err := s.sessions.PutSession(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return hub.OK(map[string]any{"session_id": snap.ID}), nil
}

// CloseSession marks the hydrated session closed.
func (s *Service) CloseSession(ctx context.Context, req *hub.Request, svc *hub.ServiceContext) (*hub.Response, error) {
	if svc.Session == nil {
		return nil, fmt.Errorf("no session hydrated for close")
	}
	closed := *svc.Session
	closed.State = "closed"
	closed.LastActivity = time.Now().UTC()
	if err := s.sessions.PutSession(ctx, &closed); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}
	reason, _ := req.Payload["reason"].(string)
	return hub.OK(map[string]any{"session_id": closed.ID, "state": closed.State, "reason": reason}), nil
}
