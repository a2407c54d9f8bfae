package hub

import "context"

// Hook is a small composable unit invoked at the pre and post stages of every
// dispatch it is configured for. Hooks may append events to the service
// context and perform side effects on external collaborators; they must not
// mutate the request, and must tolerate being re-run when a caller retries
// the whole dispatch.
type Hook interface {
	Name() string

	// Blocking hooks abort the dispatch when they fail. Non-blocking hook
	// failures are recorded as events and the pipeline continues.
	Blocking() bool

	// Handle is called once per stage. resp is nil at the pre stage.
	Handle(ctx context.Context, stage Stage, req *Request, svc *ServiceContext, resp *Response) error
}
