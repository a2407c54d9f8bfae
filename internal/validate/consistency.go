package validate

import (
	"fmt"

	"github.com/vk/toolhub/internal/definition"
)

// Consistency checks name uniqueness within each definition set and that
// every tool's declared parameters are a compatible subset of its referenced
// method's parameters. A tool parameter must either match a method parameter
// by name and type, or be tagged orchestration_only.
//
// A parameter whose type matches but whose required flag disagrees with the
// method's is reported as a distinct partial-compatibility issue at warning
// severity rather than a hard failure.
func Consistency(set *definition.Set) *Report {
	report := newReport("consistency")

	methodsByName := make(map[string]*definition.MethodDefinition, len(set.Methods))
	for _, m := range set.Methods {
		if prev, ok := methodsByName[m.Name]; ok {
			report.add(Issue{
				Kind:     KindDuplicateMethod,
				Severity: SeverityError,
				Method:   m.Name,
				Detail:   fmt.Sprintf("defined in both %s and %s", prev.Source, m.Source),
			})
			continue
		}
		methodsByName[m.Name] = m
	}

	toolsByName := make(map[string]*definition.ToolDefinition, len(set.Tools))
	for _, t := range set.Tools {
		if prev, ok := toolsByName[t.Name]; ok {
			report.add(Issue{
				Kind:     KindDuplicateTool,
				Severity: SeverityError,
				Tool:     t.Name,
				Detail:   fmt.Sprintf("defined in both %s and %s", prev.Source, t.Source),
			})
			continue
		}
		toolsByName[t.Name] = t

		if t.MethodRef == "" {
			continue
		}
		method, ok := methodsByName[t.MethodRef]
		if !ok {
			// Coverage owns the dangling-reference report; nothing to
			// reconcile parameters against here.
			continue
		}
		checkToolParams(report, t, method)
	}

	return report
}

func checkToolParams(report *Report, tool *definition.ToolDefinition, method *definition.MethodDefinition) {
	for _, tp := range tool.Params {
		if tp.OrchestrationOnly {
			continue
		}
		mp, ok := method.Param(tp.Name)
		if !ok {
			report.add(Issue{
				Kind:     KindParamMissing,
				Severity: SeverityError,
				Tool:     tool.Name,
				Method:   method.Name,
				Param:    tp.Name,
				Detail:   fmt.Sprintf("parameter not declared on method %q and not marked orchestration_only", method.Name),
			})
			continue
		}
		if !tp.Type.Equals(mp.Type) {
			report.add(Issue{
				Kind:     KindParamMismatch,
				Severity: SeverityError,
				Tool:     tool.Name,
				Method:   method.Name,
				Param:    tp.Name,
				Detail: fmt.Sprintf("tool declares type %s but method declares %s",
					tp.Type.FriendlyName(), mp.Type.FriendlyName()),
			})
			continue
		}
		if tp.Required != mp.Required {
			report.add(Issue{
				Kind:     KindPartialCompat,
				Severity: SeverityWarning,
				Tool:     tool.Name,
				Method:   method.Name,
				Param:    tp.Name,
				Detail: fmt.Sprintf("types match but requiredness differs (tool required=%t, method required=%t)",
					tp.Required, mp.Required),
			})
		}
	}
}
