package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/toolhub/internal/definition"
	"github.com/vk/toolhub/internal/validate"
)

func method(name string, params ...definition.ParamSpec) *definition.MethodDefinition {
	return &definition.MethodDefinition{Name: name, Params: params, Source: "test.hcl"}
}

func tool(name, methodRef string, params ...definition.ParamSpec) *definition.ToolDefinition {
	return &definition.ToolDefinition{Name: name, MethodRef: methodRef, Params: params, Source: "test.hcl"}
}

func param(name string, ty cty.Type, required bool) definition.ParamSpec {
	return definition.ParamSpec{Name: name, Type: ty, Required: required}
}

func TestCoverage_AllCovered(t *testing.T) {
	set := &definition.Set{
		Methods: []*definition.MethodDefinition{method("a.one"), method("a.two")},
		Tools:   []*definition.ToolDefinition{tool("one", "a.one"), tool("two", "a.two")},
	}

	report := validate.Coverage(set)
	require.True(t, report.Passed)
	require.Empty(t, report.Issues)
}

func TestCoverage_UncoveredMethod(t *testing.T) {
	set := &definition.Set{
		Methods: []*definition.MethodDefinition{method("a.one"), method("a.two")},
		Tools:   []*definition.ToolDefinition{tool("one", "a.one")},
	}

	report := validate.Coverage(set)
	require.False(t, report.Passed)

	uncovered := report.IssuesOfKind(validate.KindUncoveredMethod)
	require.Len(t, uncovered, 1)
	require.Equal(t, "a.two", uncovered[0].Method)
	require.Equal(t, validate.SeverityError, uncovered[0].Severity)
}

func TestCoverage_OrphanedTool(t *testing.T) {
	set := &definition.Set{
		Methods: []*definition.MethodDefinition{method("a.one")},
		Tools: []*definition.ToolDefinition{
			tool("one", "a.one"),
			tool("ghost", "a.gone"),
		},
	}

	report := validate.Coverage(set)
	require.False(t, report.Passed)

	orphaned := report.IssuesOfKind(validate.KindOrphanedTool)
	require.Len(t, orphaned, 1)
	require.Equal(t, "ghost", orphaned[0].Tool)
	require.Equal(t, "a.gone", orphaned[0].Method)
}

func TestCoverage_CompositeToolDoesNotCover(t *testing.T) {
	set := &definition.Set{
		Methods: []*definition.MethodDefinition{method("a.one")},
		Tools: []*definition.ToolDefinition{
			// A composite tool has no method reference and neither covers a
			// method nor counts as orphaned.
			tool("composite", ""),
		},
	}

	report := validate.Coverage(set)
	require.False(t, report.Passed)
	require.Empty(t, report.IssuesOfKind(validate.KindOrphanedTool))
	require.Len(t, report.IssuesOfKind(validate.KindUncoveredMethod), 1)
}
