// Package definition holds the format-agnostic model of the declarative
// definition store: method definitions, tool definitions and policy pattern
// records. The model is pure data with no behavior; it is produced by the
// hclstore loader and consumed by the validators and registries.
package definition
