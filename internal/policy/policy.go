// Package policy supplies per-operation-class defaults: which context pieces
// a dispatch must hydrate and which hooks run. The table is a pure lookup,
// built once from the built-in patterns plus any pattern records in the
// definition store, and immutable afterwards.
package policy

import (
	"github.com/vk/toolhub/internal/definition"
)

// Pattern is a named default bundle of context requirements and hooks.
type Pattern struct {
	Name string

	// Context lists the context pieces the dispatcher hydrates when the
	// matching identifier is present on the request.
	Context []string

	// RequiredContext lists the pieces whose absence aborts the dispatch
	// before the service call.
	RequiredContext []string

	// Hooks names the hooks that run for this pattern, in hub registration
	// order.
	Hooks []string
}

// DefaultPattern is used when a request declares no pattern or an unknown one.
const DefaultPattern = "standard"

// builtins covers the operation classes the platform ships with. Store
// records may override any of them.
func builtins() map[string]Pattern {
	return map[string]Pattern{
		"standard": {
			Name:  "standard",
			Hooks: []string{"metrics"},
		},
		"casefile_operation": {
			Name:            "casefile_operation",
			Context:         []string{"casefile"},
			RequiredContext: []string{"casefile"},
			Hooks:           []string{"metrics", "audit"},
		},
		"session_operation": {
			Name:            "session_operation",
			Context:         []string{"session"},
			RequiredContext: []string{"session"},
			Hooks:           []string{"metrics", "audit", "lifecycle"},
		},
	}
}

// Table resolves pattern names to their defaults.
type Table struct {
	patterns map[string]Pattern
}

// Builtin returns a table holding only the built-in patterns.
func Builtin() *Table {
	return &Table{patterns: builtins()}
}

// FromDefinitions returns the built-in table extended and overridden by the
// given pattern records.
func FromDefinitions(defs []*definition.PatternDefinition) *Table {
	patterns := builtins()
	for _, d := range defs {
		patterns[d.Name] = Pattern{
			Name:            d.Name,
			Context:         append([]string(nil), d.Context...),
			RequiredContext: append([]string(nil), d.RequiredContext...),
			Hooks:           append([]string(nil), d.Hooks...),
		}
	}
	return &Table{patterns: patterns}
}

// Resolve returns the pattern with the given name, falling back to the
// standard pattern for empty or unknown names.
func (t *Table) Resolve(name string) Pattern {
	if name == "" {
		name = DefaultPattern
	}
	if p, ok := t.patterns[name]; ok {
		return p
	}
	return t.patterns[DefaultPattern]
}

// Requires reports whether the pattern marks the given context piece as
// required.
func (p Pattern) Requires(piece string) bool {
	for _, r := range p.RequiredContext {
		if r == piece {
			return true
		}
	}
	return false
}

// MergeLists returns the ordered set union of base and extra, de-duplicated,
// base entries first.
func MergeLists(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	var out []string
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
