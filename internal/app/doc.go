// Package app contains the hosting process logic: constructing the registry
// loader, wiring the dispatch hub with its stores, hooks and built-in
// operations, and owning the readiness lifecycle. It is decoupled from any
// specific entrypoint like a CLI or server.
package app
