package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/toolhub/internal/store"
)

func TestMemory_SessionRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	_, err := mem.GetSession(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	snap := &store.SessionSnapshot{
		ID:           "sess-1",
		UserID:       "user-1",
		State:        "open",
		LastActivity: time.Now().UTC(),
	}
	require.NoError(t, mem.PutSession(ctx, snap))

	got, err := mem.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, *snap, *got)

	// Mutating the returned snapshot does not affect the stored copy.
	got.State = "closed"
	again, err := mem.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, "open", again.State)
}

func TestMemory_CasefileRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	_, err := mem.GetCasefile(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	snap := &store.CasefileSnapshot{
		ID:      "case-1",
		OwnerID: "user-1",
		Title:   "Quarterly review",
		Tags:    []string{"finance"},
	}
	require.NoError(t, mem.PutCasefile(ctx, snap))

	got, err := mem.GetCasefile(ctx, "case-1")
	require.NoError(t, err)
	require.Equal(t, "Quarterly review", got.Title)
}

func TestMemory_AuditTrailPreservesOrder(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	for i, status := range []string{"started", "completed:ok"} {
		require.NoError(t, mem.WriteAudit(ctx, &store.AuditRecord{
			ID:        string(rune('a' + i)),
			RequestID: "req-1",
			Status:    status,
		}))
	}

	trail := mem.AuditTrail()
	require.Len(t, trail, 2)
	require.Equal(t, "started", trail[0].Status)
	require.Equal(t, "completed:ok", trail[1].Status)
}
