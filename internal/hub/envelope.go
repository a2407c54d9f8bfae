package hub

// Status is the coarse outcome of a dispatch.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Error codes surfaced in structured error responses.
const (
	CodeUnknownOperation    = "unknown_operation"
	CodeRegistryUnavailable = "registry_unavailable"
	CodeHydrationFailed     = "context_hydration_failed"
	CodeHookBlocked         = "hook_blocked"
	CodeServiceError        = "service_error"
)

// Request is the envelope every caller sends through the hub: an operation
// identifier, a payload, and optional per-request overrides that are merged
// with the pattern's policy defaults.
type Request struct {
	// Operation names the tool to invoke, as registered in the tool registry.
	Operation string

	// Pattern declares the operation class; empty resolves to "standard".
	Pattern string

	Payload map[string]any

	// Identity and context identifiers already attached upstream.
	SessionID  string
	CasefileID string
	AuthUserID string

	// Per-request additions, set-unioned with the pattern defaults.
	ContextRequirements []string
	Hooks               []string

	// PolicyHints are advisory markers the hub does not interpret; they are
	// copied onto the service context for hooks and operations to read.
	PolicyHints []string
}

// ResponseError is the structured error carried by a failed response.
type ResponseError struct {
	Code    string
	Message string
}

// Response is the envelope returned for every dispatch, including failed
// ones. The hub enriches Metadata with the accumulated hook events under
// "hook_events" and the request ID under "request_id".
type Response struct {
	Status   Status
	Payload  map[string]any
	Error    *ResponseError
	Metadata map[string]any
}

// OK returns a successful response with the given payload.
func OK(payload map[string]any) *Response {
	return &Response{Status: StatusOK, Payload: payload, Metadata: map[string]any{}}
}

func errorResponse(code, message string) *Response {
	return &Response{
		Status:   StatusError,
		Error:    &ResponseError{Code: code, Message: message},
		Metadata: map[string]any{},
	}
}
