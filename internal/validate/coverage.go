package validate

import (
	"fmt"

	"github.com/vk/toolhub/internal/definition"
)

// Coverage checks that every declared method is exposed by at least one tool
// and that every tool's method reference resolves. Composite tools (no
// method reference) take no part in coverage.
func Coverage(set *definition.Set) *Report {
	report := newReport("coverage")

	methods := make(map[string]struct{}, len(set.Methods))
	for _, m := range set.Methods {
		methods[m.Name] = struct{}{}
	}

	covered := make(map[string]struct{})
	for _, t := range set.Tools {
		if t.MethodRef == "" {
			continue
		}
		if _, ok := methods[t.MethodRef]; !ok {
			report.add(Issue{
				Kind:     KindOrphanedTool,
				Severity: SeverityError,
				Tool:     t.Name,
				Method:   t.MethodRef,
				Detail:   fmt.Sprintf("tool references method %q which is not in the registry", t.MethodRef),
			})
			continue
		}
		covered[t.MethodRef] = struct{}{}
	}

	for _, m := range set.Methods {
		if _, ok := covered[m.Name]; !ok {
			report.add(Issue{
				Kind:     KindUncoveredMethod,
				Severity: SeverityError,
				Method:   m.Name,
				Detail:   "no tool exposes this method",
			})
		}
	}

	return report
}
