package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/toolhub/internal/hub"
	"github.com/vk/toolhub/internal/service"
	"github.com/vk/toolhub/internal/store"
)

func newService() (*service.Service, *store.Memory) {
	mem := store.NewMemory()
	return service.New(mem, mem), mem
}

func TestCreateCasefile(t *testing.T) {
	svc, mem := newService()
	ctx := context.Background()

	resp, err := svc.CreateCasefile(ctx, &hub.Request{
		Operation: "create_casefile",
		Payload:   map[string]any{"title": "Incident 42", "tags": []string{"urgent"}},
	}, &hub.ServiceContext{AuthUserID: "user-1"})
	require.NoError(t, err)
	require.Equal(t, hub.StatusOK, resp.Status)

	id, ok := resp.Payload["casefile_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	stored, err := mem.GetCasefile(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Incident 42", stored.Title)
	require.Equal(t, "user-1", stored.OwnerID)
	require.Equal(t, []string{"urgent"}, stored.Tags)
}

func TestCreateCasefile_TitleRequired(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateCasefile(context.Background(), &hub.Request{
		Payload: map[string]any{},
	}, &hub.ServiceContext{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "title")
}

func TestCreateCasefile_DryRunStoresNothing(t *testing.T) {
	svc, mem := newService()
	ctx := context.Background()

	resp, err := svc.CreateCasefile(ctx, &hub.Request{
		Payload: map[string]any{"title": "Preview", "dry_run": true},
	}, &hub.ServiceContext{})
	require.NoError(t, err)
	require.Equal(t, hub.StatusOK, resp.Status)
	require.Equal(t, true, resp.Payload["dry_run"])

	// Nothing was written.
	_, err = mem.GetCasefile(ctx, "Preview")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetCasefile_PrefersHydratedSnapshot(t *testing.T) {
	svc, _ := newService()

	hydrated := &store.CasefileSnapshot{ID: "case-1", OwnerID: "user-1", Title: "Hydrated"}
	resp, err := svc.GetCasefile(context.Background(), &hub.Request{
		Payload: map[string]any{"casefile_id": "case-1"},
	}, &hub.ServiceContext{Casefile: hydrated})
	require.NoError(t, err)
	require.Equal(t, "Hydrated", resp.Payload["title"])
}

func TestGetCasefile_FallsBackToStore(t *testing.T) {
	svc, mem := newService()
	ctx := context.Background()

	require.NoError(t, mem.PutCasefile(ctx, &store.CasefileSnapshot{ID: "case-2", Title: "Stored"}))

	resp, err := svc.GetCasefile(ctx, &hub.Request{
		Payload: map[string]any{"casefile_id": "case-2"},
	}, &hub.ServiceContext{})
	require.NoError(t, err)
	require.Equal(t, "Stored", resp.Payload["title"])

	_, err = svc.GetCasefile(ctx, &hub.Request{
		Payload: map[string]any{"casefile_id": "missing"},
	}, &hub.ServiceContext{})
	require.Error(t, err)
}

func TestOpenAndCloseSession(t *testing.T) {
	svc, mem := newService()
	ctx := context.Background()

	resp, err := svc.OpenSession(ctx, &hub.Request{
		Payload: map[string]any{"user_id": "user-1"},
	}, &hub.ServiceContext{})
	require.NoError(t, err)

	id := resp.Payload["session_id"].(string)
	opened, err := mem.GetSession(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "open", opened.State)

	closeResp, err := svc.CloseSession(ctx, &hub.Request{
		Payload: map[string]any{"reason": "done"},
	}, &hub.ServiceContext{Session: opened})
	require.NoError(t, err)
	require.Equal(t, "closed", closeResp.Payload["state"])
	require.Equal(t, "done", closeResp.Payload["reason"])

	closed, err := mem.GetSession(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "closed", closed.State)
}

func TestCloseSession_RequiresHydratedSession(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CloseSession(context.Background(), &hub.Request{}, &hub.ServiceContext{})
	require.Error(t, err)
}
