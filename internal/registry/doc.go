// Package registry provides the immutable method and tool registries and the
// transactional loader that populates them.
//
// A load is all-or-nothing: the loader reads the definition store into fresh
// registry instances, runs the coverage, consistency and (optionally) drift
// validators, and only publishes the new registries if the configured
// validation mode accepts the aggregated result. Publication is one atomic
// pointer swap, so concurrent dispatch calls never observe a partially
// loaded registry and keep reading the previous generation while a reload is
// being validated.
package registry
