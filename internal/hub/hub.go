package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/toolhub/internal/ctxlog"
	"github.com/vk/toolhub/internal/policy"
	"github.com/vk/toolhub/internal/registry"
	"github.com/vk/toolhub/internal/store"
)

// Config wires a Hub's collaborators.
type Config struct {
	// Registries returns the currently active registries; typically
	// (*registry.Loader).Registries. It may return nil before the first
	// successful load.
	Registries func() *registry.Registries

	Policies  *policy.Table
	Sessions  store.SessionStore
	Casefiles store.CasefileStore
}

// Hub routes typed requests through policy resolution, context hydration,
// the hook pipeline and the target service operation. It holds no per-request
// state: each dispatch owns an isolated ServiceContext, and the only shared
// reads are the immutable registries and the policy table, so any number of
// dispatches may run concurrently.
type Hub struct {
	registries func() *registry.Registries
	policies   *policy.Table
	sessions   store.SessionStore
	casefiles  store.CasefileStore
	ops        map[string]Operation
	hooks      []Hook
}

// New returns a Hub with no operations or hooks registered yet.
func New(cfg Config) *Hub {
	return &Hub{
		registries: cfg.Registries,
		policies:   cfg.Policies,
		sessions:   cfg.Sessions,
		casefiles:  cfg.Casefiles,
		ops:        make(map[string]Operation),
	}
}

// resolvePolicies prefers an explicitly configured table, then the table
// loaded with the active registries, then the built-ins.
func (h *Hub) resolvePolicies(regs *registry.Registries) *policy.Table {
	if h.policies != nil {
		return h.policies
	}
	if regs != nil && regs.Patterns != nil {
		return regs.Patterns
	}
	return policy.Builtin()
}

// Dispatch routes one request and always returns a response, including for
// failures. The hydration fetch is the only awaiting step; everything else
// is synchronous in-memory work. The hub imposes no timeout of its own.
func (h *Hub) Dispatch(ctx context.Context, req *Request) *Response {
	logger := ctxlog.FromContext(ctx).With("operation", req.Operation)

	// 1. Resolve the operation against the active registries. No hooks run
	// for an unresolvable operation.
	regs := h.registries()
	if regs == nil {
		logger.Error("Dispatch refused: no registries published.")
		return errorResponse(CodeRegistryUnavailable, "registry not initialized")
	}
	tool, ok := regs.Tools.Get(req.Operation)
	if !ok {
		logger.Warn("Dispatch refused: unknown operation.")
		return errorResponse(CodeUnknownOperation, fmt.Sprintf("operation %q is not registered", req.Operation))
	}
	op, ok := h.ops[tool.Name]
	if !ok {
		logger.Error("Tool is registered but has no bound operation.", "tool", tool.Name)
		return errorResponse(CodeUnknownOperation, fmt.Sprintf("operation %q has no implementation bound", req.Operation))
	}

	// 2. Merge policy defaults with the request's own requirements and
	// build the per-request context.
	pol := h.resolvePolicies(regs).Resolve(req.Pattern)
	svc := newServiceContext(req, pol)
	logger = logger.With("request_id", svc.RequestID)

	// 3. Hydrate required context pieces. A missing required piece is fatal
	// before any hook or service call runs.
	if resp := h.hydrate(ctx, logger, req, svc); resp != nil {
		return h.finish(resp, svc)
	}

	// 4. Pre-stage hooks, in registration order.
	if resp := h.runHooks(ctx, StagePre, req, svc, nil); resp != nil {
		return h.finish(resp, svc)
	}

	// 5. The service call.
	resp, err := op(ctx, req, svc)
	if err != nil {
		logger.Error("Service operation failed.", "error", err)
		resp = errorResponse(CodeServiceError, err.Error())
	}
	if resp.Metadata == nil {
		resp.Metadata = map[string]any{}
	}

	// 6. Enrich the context with the response outcome for post-hooks.
	svc.ResponseStatus = resp.Status

	// 7. Post-stage hooks, same order, then attach the event trail.
	if blocked := h.runHooks(ctx, StagePost, req, svc, resp); blocked != nil {
		return h.finish(blocked, svc)
	}
	return h.finish(resp, svc)
}

// hydrate fetches the session and casefile snapshots the merged requirements
// ask for. It returns a non-nil error response when a required piece cannot
// be hydrated; optional misses become warnings on the context.
func (h *Hub) hydrate(ctx context.Context, logger *slog.Logger, req *Request, svc *ServiceContext) *Response {
	if svc.Needs("session") {
		switch {
		case req.SessionID == "":
			if svc.Policy.Requires("session") {
				return errorResponse(CodeHydrationFailed, "pattern requires a session but the request carries no session identifier")
			}
			svc.HydrationWarnings = append(svc.HydrationWarnings, "session requested but no identifier present")
		case h.sessions == nil:
			if svc.Policy.Requires("session") {
				return errorResponse(CodeHydrationFailed, "pattern requires a session but no session store is configured")
			}
			logger.Warn("Session hydration skipped; no session store configured.")
			svc.HydrationWarnings = append(svc.HydrationWarnings, "session requested but no session store configured")
		default:
			snap, err := h.sessions.GetSession(ctx, req.SessionID)
			if err != nil {
				if svc.Policy.Requires("session") {
					return errorResponse(CodeHydrationFailed, fmt.Sprintf("session %q could not be hydrated: %v", req.SessionID, err))
				}
				logger.Warn("Optional session hydration failed.", "session_id", req.SessionID, "error", err)
				svc.HydrationWarnings = append(svc.HydrationWarnings, hydrationWarning("session", req.SessionID, err))
			} else {
				svc.Session = snap
			}
		}
	}

	if svc.Needs("casefile") {
		switch {
		case req.CasefileID == "":
			if svc.Policy.Requires("casefile") {
				return errorResponse(CodeHydrationFailed, "pattern requires a casefile but the request carries no casefile identifier")
			}
			svc.HydrationWarnings = append(svc.HydrationWarnings, "casefile requested but no identifier present")
		case h.casefiles == nil:
			if svc.Policy.Requires("casefile") {
				return errorResponse(CodeHydrationFailed, "pattern requires a casefile but no casefile store is configured")
			}
			logger.Warn("Casefile hydration skipped; no casefile store configured.")
			svc.HydrationWarnings = append(svc.HydrationWarnings, "casefile requested but no casefile store configured")
		default:
			snap, err := h.casefiles.GetCasefile(ctx, req.CasefileID)
			if err != nil {
				if svc.Policy.Requires("casefile") {
					return errorResponse(CodeHydrationFailed, fmt.Sprintf("casefile %q could not be hydrated: %v", req.CasefileID, err))
				}
				logger.Warn("Optional casefile hydration failed.", "casefile_id", req.CasefileID, "error", err)
				svc.HydrationWarnings = append(svc.HydrationWarnings, hydrationWarning("casefile", req.CasefileID, err))
			} else {
				svc.Casefile = snap
			}
		}
	}

	return nil
}

func hydrationWarning(piece, id string, err error) string {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf("%s %q not found", piece, id)
	}
	return fmt.Sprintf("%s %q: %v", piece, id, err)
}

// runHooks invokes the configured hooks for one stage in registration order.
// A failing hook records a hook_error event and the pipeline continues,
// unless the hook is blocking, in which case a non-nil error response is
// returned.
func (h *Hub) runHooks(ctx context.Context, stage Stage, req *Request, svc *ServiceContext, resp *Response) *Response {
	logger := ctxlog.FromContext(ctx)
	enabled := make(map[string]struct{}, len(svc.HookNames))
	for _, name := range svc.HookNames {
		enabled[name] = struct{}{}
	}

	for _, hook := range h.hooks {
		if _, ok := enabled[hook.Name()]; !ok {
			continue
		}
		if err := hook.Handle(ctx, stage, req, svc, resp); err != nil {
			svc.AppendEvent(hook.Name(), stage, "hook_error", err.Error())
			if hook.Blocking() {
				logger.Error("Blocking hook failed; aborting dispatch.", "hook", hook.Name(), "stage", string(stage), "error", err)
				return errorResponse(CodeHookBlocked, fmt.Sprintf("blocking hook %q failed: %v", hook.Name(), err))
			}
			logger.Warn("Hook failed; continuing.", "hook", hook.Name(), "stage", string(stage), "error", err)
		}
	}
	return nil
}

// finish attaches the accumulated hook events and request identity to the
// response metadata. Every dispatch path that ran past operation resolution
// exits through here, so even failed responses carry their event trail.
func (h *Hub) finish(resp *Response, svc *ServiceContext) *Response {
	if resp.Metadata == nil {
		resp.Metadata = map[string]any{}
	}
	resp.Metadata["request_id"] = svc.RequestID
	resp.Metadata["hook_events"] = svc.Events()
	if len(svc.HydrationWarnings) > 0 {
		resp.Metadata["hydration_warnings"] = append([]string(nil), svc.HydrationWarnings...)
	}
	return resp
}
