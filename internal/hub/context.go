package hub

import (
	"time"

	"github.com/google/uuid"

	"github.com/vk/toolhub/internal/policy"
	"github.com/vk/toolhub/internal/store"
)

// Stage marks where in the dispatch lifecycle a hook is invoked.
type Stage string

const (
	StagePre  Stage = "pre"
	StagePost Stage = "post"
)

// Event is one hook-emitted record accumulated on the service context and
// attached to the response metadata.
type Event struct {
	ID     string
	Hook   string
	Stage  Stage
	Kind   string
	Detail string
	At     time.Time
}

// ServiceContext is the per-request scratch structure the hub builds at
// dispatch start and discards at dispatch end. It is never shared across
// requests; hooks may append events to it but must not mutate the request.
type ServiceContext struct {
	RequestID    string
	Policy       policy.Pattern
	Requirements []string
	HookNames    []string
	AuthUserID   string

	// PolicyHints carries the request's advisory hints through to hooks and
	// operations unchanged.
	PolicyHints []string

	// Hydrated snapshots; nil when the piece was not required or not
	// resolvable as a soft warning.
	Session  *store.SessionSnapshot
	Casefile *store.CasefileSnapshot

	// HydrationWarnings records non-fatal hydration misses.
	HydrationWarnings []string

	// ResponseStatus is set after the service call, before post-hooks run.
	ResponseStatus Status

	events []Event
}

func newServiceContext(req *Request, pol policy.Pattern) *ServiceContext {
	return &ServiceContext{
		RequestID:    uuid.NewString(),
		Policy:       pol,
		Requirements: policy.MergeLists(pol.Context, req.ContextRequirements),
		HookNames:    policy.MergeLists(pol.Hooks, req.Hooks),
		AuthUserID:   req.AuthUserID,
		PolicyHints:  append([]string(nil), req.PolicyHints...),
	}
}

// AppendEvent records a hook event on the context.
func (c *ServiceContext) AppendEvent(hook string, stage Stage, kind, detail string) {
	c.events = append(c.events, Event{
		ID:     uuid.NewString(),
		Hook:   hook,
		Stage:  stage,
		Kind:   kind,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}

// Events returns a copy of the accumulated hook events in emission order.
func (c *ServiceContext) Events() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Needs reports whether the merged requirements include the given piece.
func (c *ServiceContext) Needs(piece string) bool {
	for _, r := range c.Requirements {
		if r == piece {
			return true
		}
	}
	return false
}
