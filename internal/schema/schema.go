// Package schema defines the HCL shapes of the definition store. These
// structs are decoded directly with gohcl and then translated into the
// format-agnostic model in the definition package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Classification carries the taxonomy tags attached to a method.
type Classification struct {
	Domain     string `hcl:"domain"`
	Capability string `hcl:"capability,optional"`
	Complexity string `hcl:"complexity,optional"`
	Maturity   string `hcl:"maturity,optional"`
}

// Param declares a single parameter of a method or tool. The type attribute
// is kept as a raw expression so the translator can parse it into a cty.Type.
type Param struct {
	Name              string         `hcl:"name,label"`
	Type              hcl.Expression `hcl:"type"`
	Required          bool           `hcl:"required,optional"`
	Validation        string         `hcl:"validation,optional"`
	OrchestrationOnly bool           `hcl:"orchestration_only,optional"`
}

// Implementation names the Go input struct that implements a method's
// parameter surface. The drift scanner checks declared params against it.
type Implementation struct {
	Struct string `hcl:"struct"`
}

// Method represents a `method` block from the definition store.
type Method struct {
	Name           string          `hcl:"name,label"`
	Description    string          `hcl:"description,optional"`
	Classification *Classification `hcl:"classification,block"`
	Params         []*Param        `hcl:"param,block"`
	RequestSchema  string          `hcl:"request_schema,optional"`
	ResponseSchema string          `hcl:"response_schema,optional"`
	Implementation *Implementation `hcl:"implementation,block"`
}

// Tool represents a `tool` block from the definition store. A tool usually
// exposes exactly one method; composite tools omit the reference.
type Tool struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Method      string   `hcl:"method,optional"`
	Params      []*Param `hcl:"param,block"`
}

// Pattern represents a `pattern` block declaring policy defaults for a class
// of operations.
type Pattern struct {
	Name            string   `hcl:"name,label"`
	Context         []string `hcl:"context,optional"`
	RequiredContext []string `hcl:"required_context,optional"`
	Hooks           []string `hcl:"hooks,optional"`
}

// File represents the top-level structure of any definition store file.
// Methods, tools and patterns may live in the same file or be split across
// directories; the loader does not care.
type File struct {
	Methods  []*Method  `hcl:"method,block"`
	Tools    []*Tool    `hcl:"tool,block"`
	Patterns []*Pattern `hcl:"pattern,block"`
	Body     hcl.Body   `hcl:",remain"`
}
