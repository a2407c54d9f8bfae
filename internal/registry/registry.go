package registry

import (
	"github.com/vk/toolhub/internal/definition"
	"github.com/vk/toolhub/internal/policy"
)

// MethodRegistry is a read-only lookup table from fully-qualified method
// name to definition. It is populated exclusively by the Loader and never
// mutated after publish, so concurrent readers need no locking.
type MethodRegistry struct {
	byName map[string]*definition.MethodDefinition
	names  []string
}

// Get returns the method definition with the given name.
func (r *MethodRegistry) Get(name string) (*definition.MethodDefinition, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Names returns the registered method names in load order, for documentation
// and introspection consumers.
func (r *MethodRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered methods.
func (r *MethodRegistry) Len() int { return len(r.byName) }

// ToolRegistry is the read-only lookup table for tool definitions.
type ToolRegistry struct {
	byName map[string]*definition.ToolDefinition
	names  []string
}

// Get returns the tool definition with the given name.
func (r *ToolRegistry) Get(name string) (*definition.ToolDefinition, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Names returns the registered tool names in load order.
func (r *ToolRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered tools.
func (r *ToolRegistry) Len() int { return len(r.byName) }

// Registries bundles the method and tool registries produced by one load.
// The pair is published atomically so readers never observe a half-loaded
// state.
type Registries struct {
	Methods *MethodRegistry
	Tools   *ToolRegistry

	// Patterns is the policy table assembled from the store's pattern
	// records on top of the built-in patterns.
	Patterns *policy.Table
}

// Build assembles registries from a definition set. On duplicate names the
// first occurrence wins; the consistency validator owns reporting the
// duplicates themselves. Production code populates registries only through
// Loader.Load; Build is the shared assembly step and a test seam.
func Build(set *definition.Set) *Registries {
	methods := &MethodRegistry{byName: make(map[string]*definition.MethodDefinition, len(set.Methods))}
	for _, m := range set.Methods {
		if _, exists := methods.byName[m.Name]; exists {
			continue
		}
		methods.byName[m.Name] = m
		methods.names = append(methods.names, m.Name)
	}

	tools := &ToolRegistry{byName: make(map[string]*definition.ToolDefinition, len(set.Tools))}
	for _, t := range set.Tools {
		if _, exists := tools.byName[t.Name]; exists {
			continue
		}
		tools.byName[t.Name] = t
		tools.names = append(tools.names, t.Name)
	}

	return &Registries{
		Methods:  methods,
		Tools:    tools,
		Patterns: policy.FromDefinitions(set.Patterns),
	}
}
