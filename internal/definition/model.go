package definition

import (
	"github.com/zclconf/go-cty/cty"
)

// Classification carries the taxonomy tags attached to a method definition.
type Classification struct {
	Domain     string
	Capability string
	Complexity string
	Maturity   string
}

// ParamSpec is a single declared parameter on a method or tool.
type ParamSpec struct {
	Name       string
	Type       cty.Type
	Required   bool
	Validation string

	// OrchestrationOnly marks a tool parameter that is consumed by the
	// dispatcher and never forwarded to the referenced method.
	OrchestrationOnly bool
}

// MethodDefinition is the format-agnostic record for one declared method.
// Instances are immutable after load; a reload produces fresh instances.
type MethodDefinition struct {
	Name           string
	Description    string
	Classification Classification
	Params         []ParamSpec
	RequestSchema  string
	ResponseSchema string

	// ImplStruct names the Go input struct implementing this method's
	// parameter surface. Empty disables drift checking for the method.
	ImplStruct string

	// Source is the file the record was loaded from, for error reporting.
	Source string
}

// Param returns the declared parameter with the given name.
func (m *MethodDefinition) Param(name string) (ParamSpec, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// ToolDefinition is the format-agnostic record for one declared tool. A tool
// with an empty MethodRef is a composite/orchestration-only tool.
type ToolDefinition struct {
	Name        string
	Description string
	MethodRef   string
	Params      []ParamSpec
	Source      string
}

// PatternDefinition is a policy pattern record loaded from the store. It
// extends or overrides the built-in pattern table.
type PatternDefinition struct {
	Name            string
	Context         []string
	RequiredContext []string
	Hooks           []string
	Source          string
}

// Set holds everything loaded from one pass over the definition store, in
// file order. Validators consume a Set; registries are built from one.
type Set struct {
	Methods  []*MethodDefinition
	Tools    []*ToolDefinition
	Patterns []*PatternDefinition
}
