// Package validate implements the three validators that run against a
// freshly loaded definition set: coverage (every method is exposed by a tool,
// every tool reference resolves), consistency (unique names, tool parameters
// reconcile with their method's parameters) and drift (declared parameters
// match the implementing Go code's input structs).
//
// All three are pure functions producing aggregated reports; none of them
// mutates the definition store or executes any target code. The drift
// scanner in particular works on parsed source text only, so validation
// never needs the service's runtime dependencies.
package validate
