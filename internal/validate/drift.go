package validate

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/toolhub/internal/definition"
)

// Drift diffs each method's declared parameter list against the parameter
// surface of its implementing Go input struct, as found by a SourceScan.
//
// Severity is asymmetric on purpose: a parameter present in code but absent
// from the definition is merely undeclared (warning), while a parameter
// declared but absent from code promises a contract the implementation does
// not honor (error). Drift only reports; it never touches the store.
func Drift(set *definition.Set, scan *SourceScan) *Report {
	report := newReport("drift")

	for _, m := range set.Methods {
		if m.ImplStruct == "" {
			continue
		}
		st, ok := scan.Structs[m.ImplStruct]
		if !ok {
			report.add(Issue{
				Kind:     KindImplMissing,
				Severity: SeverityError,
				Method:   m.Name,
				Detail:   fmt.Sprintf("input struct %q not found in scanned source", m.ImplStruct),
			})
			continue
		}
		diffMethod(report, m, st)
	}

	return report
}

func diffMethod(report *Report, m *definition.MethodDefinition, st *ScannedStruct) {
	for _, name := range st.ParamNames() {
		if _, ok := m.Param(name); !ok {
			field := st.Fields[name]
			report.add(Issue{
				Kind:     KindUndeclaredParam,
				Severity: SeverityWarning,
				Method:   m.Name,
				Param:    name,
				Detail:   fmt.Sprintf("field %s (%s) in %s is not declared in the definition", field.GoName, field.GoType, st.Name),
			})
		}
	}

	for _, p := range m.Params {
		field, ok := st.Fields[p.Name]
		if !ok {
			report.add(Issue{
				Kind:     KindStaleParam,
				Severity: SeverityError,
				Method:   m.Name,
				Param:    p.Name,
				Detail:   fmt.Sprintf("declared parameter has no hub-tagged field in %s", st.Name),
			})
			continue
		}
		if !field.Mapped {
			// The Go type has no cty equivalent; the declared contract may
			// still hold at runtime, so this stays below error severity.
			report.add(Issue{
				Kind:     KindImplMismatch,
				Severity: SeverityWarning,
				Method:   m.Name,
				Param:    p.Name,
				Detail:   fmt.Sprintf("cannot compare declared type %s with Go type %s", p.Type.FriendlyName(), field.GoType),
			})
			continue
		}
		if p.Type.Equals(cty.DynamicPseudoType) {
			continue
		}
		if !field.Type.Equals(p.Type) {
			report.add(Issue{
				Kind:     KindImplMismatch,
				Severity: SeverityError,
				Method:   m.Name,
				Param:    p.Name,
				Detail: fmt.Sprintf("definition declares %s but %s.%s is %s",
					p.Type.FriendlyName(), st.Name, field.GoName, field.GoType),
			})
		}
	}
}
