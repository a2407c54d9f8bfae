// Package hooks ships the platform's standard hook handlers: metrics
// counting, audit trail writing and session lifecycle stamping. Each is a
// small unit implementing hub.Hook, permitted only to append events to the
// service context and perform side effects on its own collaborator.
package hooks
