// This file translates decoded HCL schema structs into the format-agnostic
// definition model, including parameter type expressions.

package hclstore

import (
	"fmt"

	"github.com/vk/toolhub/internal/definition"
	"github.com/vk/toolhub/internal/schema"
)

func (l *Loader) translateFile(set *definition.Set, file *schema.File, source string) error {
	for _, m := range file.Methods {
		def, err := translateMethod(m, source)
		if err != nil {
			return err
		}
		set.Methods = append(set.Methods, def)
	}
	for _, t := range file.Tools {
		def, err := translateTool(t, source)
		if err != nil {
			return err
		}
		set.Tools = append(set.Tools, def)
	}
	for _, p := range file.Patterns {
		set.Patterns = append(set.Patterns, &definition.PatternDefinition{
			Name:            p.Name,
			Context:         p.Context,
			RequiredContext: p.RequiredContext,
			Hooks:           p.Hooks,
			Source:          source,
		})
	}
	return nil
}

func translateParams(params []*schema.Param, ownerKind, ownerName string) ([]definition.ParamSpec, error) {
	out := make([]definition.ParamSpec, 0, len(params))
	for _, p := range params {
		parsedType, err := typeExprToCtyType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("in %s '%s', param '%s': %w", ownerKind, ownerName, p.Name, err)
		}
		out = append(out, definition.ParamSpec{
			Name:              p.Name,
			Type:              parsedType,
			Required:          p.Required,
			Validation:        p.Validation,
			OrchestrationOnly: p.OrchestrationOnly,
		})
	}
	return out, nil
}

func translateMethod(m *schema.Method, source string) (*definition.MethodDefinition, error) {
	params, err := translateParams(m.Params, "method", m.Name)
	if err != nil {
		return nil, err
	}

	def := &definition.MethodDefinition{
		Name:           m.Name,
		Description:    m.Description,
		Params:         params,
		RequestSchema:  m.RequestSchema,
		ResponseSchema: m.ResponseSchema,
		Source:         source,
	}
	if m.Classification != nil {
		def.Classification = definition.Classification{
			Domain:     m.Classification.Domain,
			Capability: m.Classification.Capability,
			Complexity: m.Classification.Complexity,
			Maturity:   m.Classification.Maturity,
		}
	}
	if m.Implementation != nil {
		def.ImplStruct = m.Implementation.Struct
	}
	return def, nil
}

func translateTool(t *schema.Tool, source string) (*definition.ToolDefinition, error) {
	params, err := translateParams(t.Params, "tool", t.Name)
	if err != nil {
		return nil, err
	}
	return &definition.ToolDefinition{
		Name:        t.Name,
		Description: t.Description,
		MethodRef:   t.Method,
		Params:      params,
		Source:      source,
	}, nil
}
