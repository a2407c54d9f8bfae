package hub

import (
	"context"
	"fmt"
	"log/slog"
)

// Operation is the Go function implementing one tool's service call. The
// concrete business logic lives in external collaborators; the hub only
// routes to it.
type Operation func(ctx context.Context, req *Request, svc *ServiceContext) (*Response, error)

// RegisterOperation binds a Go function to a tool name. All registration
// happens during the hosting process's startup sequence, so what is
// registered is always traceable to one orchestration point. Registering the
// same name twice is a programmer error.
func (h *Hub) RegisterOperation(name string, op Operation) {
	if _, exists := h.ops[name]; exists {
		panic(fmt.Sprintf("operation with name '%s' already registered", name))
	}
	slog.Debug("Registering operation.", "name", name)
	h.ops[name] = op
}

// RegisterHook appends a hook to the hub's ordered hook chain. Within one
// dispatch, hooks run in registration order at both stages.
func (h *Hub) RegisterHook(hook Hook) {
	for _, existing := range h.hooks {
		if existing.Name() == hook.Name() {
			panic(fmt.Sprintf("hook with name '%s' already registered", hook.Name()))
		}
	}
	h.hooks = append(h.hooks, hook)
}
