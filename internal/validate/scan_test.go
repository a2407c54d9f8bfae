package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/toolhub/internal/testutil"
	"github.com/vk/toolhub/internal/validate"
)

func TestScanSource_CollectsTaggedStructs(t *testing.T) {
	root := testutil.WriteSource(t, map[string]string{
		"svc/inputs.go": `package svc

type CreateInput struct {
	Title    string            `+"`hub:\"title\"`"+`
	Count    int               `+"`hub:\"count\"`"+`
	Tags     []string          `+"`hub:\"tags\"`"+`
	Labels   map[string]string `+"`hub:\"labels\"`"+`
	Anything any               `+"`hub:\"anything\"`"+`
	Ignored  string
	hidden   string `+"`hub:\"hidden\"`"+`
	Skipped  string `+"`hub:\"-\"`"+`
}

type plain struct {
	X int
}
`,
		"svc/inputs_test.go": `package svc

type TestOnlyInput struct {
	X string `+"`hub:\"x\"`"+`
}
`,
	})

	scan, err := validate.ScanSource(root)
	require.NoError(t, err)

	require.NotContains(t, scan.Structs, "TestOnlyInput")

	// Untagged structs are still recorded, with an empty parameter surface.
	plain, ok := scan.Structs["plain"]
	require.True(t, ok)
	require.Empty(t, plain.ParamNames())

	st, ok := scan.Structs["CreateInput"]
	require.True(t, ok)
	require.Equal(t, []string{"anything", "count", "labels", "tags", "title"}, st.ParamNames())

	require.True(t, st.Fields["title"].Type.Equals(cty.String))
	require.True(t, st.Fields["count"].Type.Equals(cty.Number))
	require.True(t, st.Fields["tags"].Type.Equals(cty.List(cty.String)))
	require.True(t, st.Fields["labels"].Type.Equals(cty.Map(cty.String)))
	require.True(t, st.Fields["anything"].Mapped)
	require.True(t, st.Fields["anything"].Type.Equals(cty.DynamicPseudoType))
}

func TestScanSource_PointerAndUnmappedTypes(t *testing.T) {
	root := testutil.WriteSource(t, map[string]string{
		"svc/inputs.go": `package svc

import "time"

type EdgeInput struct {
	Maybe *string   `+"`hub:\"maybe\"`"+`
	When  time.Time `+"`hub:\"when\"`"+`
}
`,
	})

	scan, err := validate.ScanSource(root)
	require.NoError(t, err)

	st := scan.Structs["EdgeInput"]
	require.NotNil(t, st)

	require.True(t, st.Fields["maybe"].Mapped)
	require.True(t, st.Fields["maybe"].Type.Equals(cty.String))

	require.False(t, st.Fields["when"].Mapped)
	require.Equal(t, "time.Time", st.Fields["when"].GoType)
}

func TestScanSource_FirstDeclarationWins(t *testing.T) {
	root := testutil.WriteSource(t, map[string]string{
		"a/input.go": `package a

type Input struct {
	X string `+"`hub:\"x\"`"+`
}
`,
		"b/input.go": `package b

type Input struct {
	Y string `+"`hub:\"y\"`"+`
}
`,
	})

	scan, err := validate.ScanSource(root)
	require.NoError(t, err)

	// Files walk in sorted order, so a/input.go declares Input first.
	st := scan.Structs["Input"]
	require.NotNil(t, st)
	require.Equal(t, []string{"x"}, st.ParamNames())
}
