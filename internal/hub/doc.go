// Package hub implements the request dispatch orchestrator. A dispatch
// resolves its operation against the active tool registry, merges the
// pattern's policy defaults with per-request overrides, hydrates session and
// casefile context from the snapshot stores, runs the pre-stage hooks,
// invokes the bound service operation, and runs the post-stage hooks before
// attaching the accumulated hook events to the response metadata.
//
// Hook ordering within one dispatch is a hard guarantee: pre-hooks in
// registration order, the service call, then post-hooks in the same order.
// There is no ordering contract between concurrent dispatches.
package hub
