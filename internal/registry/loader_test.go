package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/toolhub/internal/registry"
	"github.com/vk/toolhub/internal/testutil"
	"github.com/vk/toolhub/internal/validate"
)

const cleanStore = `
method "report.create" {
	param "title" {
		type     = string
		required = true
	}
}

tool "create_report" {
	method = "report.create"

	param "title" {
		type     = string
		required = true
	}
}
`

// methodBOnly declares a second method no tool exposes.
const uncoveredStore = cleanStore + `
method "report.archive" {
	param "report_id" {
		type     = string
		required = true
	}
}
`

func newLoader(t *testing.T, cfg registry.Config) *registry.Loader {
	t.Helper()
	loader, err := registry.NewLoader(cfg)
	require.NoError(t, err)
	return loader
}

func offByDefault(t *testing.T) {
	t.Helper()
	// Drift needs a source root; these tests exercise the other validators.
	t.Setenv(registry.EnvDrift, "off")
}

func TestLoad_StrictSuccessPublishes(t *testing.T) {
	offByDefault(t)
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": cleanStore})
	loader := newLoader(t, registry.Config{DefsPath: defs, Mode: registry.ModeStrict})

	require.Nil(t, loader.Registries())

	result, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.True(t, result.Published)
	require.Equal(t, 1, result.MethodCount)
	require.Equal(t, 1, result.ToolCount)
	require.Empty(t, result.Errors)

	regs := loader.Registries()
	require.NotNil(t, regs)
	_, ok := regs.Tools.Get("create_report")
	require.True(t, ok)
}

func TestLoad_StrictUncoveredMethodRejects(t *testing.T) {
	offByDefault(t)
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": uncoveredStore})
	loader := newLoader(t, registry.Config{DefsPath: defs, Mode: registry.ModeStrict})

	result, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.False(t, result.Success)
	require.False(t, result.Published)

	// Exactly one coverage issue: the uncovered method.
	uncovered := result.Coverage.IssuesOfKind(validate.KindUncoveredMethod)
	require.Len(t, uncovered, 1)
	require.Equal(t, "report.archive", uncovered[0].Method)
	require.Len(t, result.Errors, 1)

	// Nothing was published.
	require.Nil(t, loader.Registries())
}

func TestLoad_WarningModePublishesDespiteFailures(t *testing.T) {
	offByDefault(t)
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": uncoveredStore})
	loader := newLoader(t, registry.Config{DefsPath: defs, Mode: registry.ModeWarning})

	result, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.True(t, result.Published)
	require.Len(t, result.Errors, 1)

	require.NotNil(t, loader.Registries())
	require.Equal(t, 2, loader.Registries().Methods.Len())
}

func TestLoad_OffModeSkipsValidators(t *testing.T) {
	offByDefault(t)
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": uncoveredStore})
	loader := newLoader(t, registry.Config{DefsPath: defs, Mode: registry.ModeOff})

	result, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Nil(t, result.Coverage)
	require.Nil(t, result.Consistency)
	require.Nil(t, result.Drift)
	require.Empty(t, result.Errors)
}

func TestLoad_MalformedStoreIsFatalInEveryMode(t *testing.T) {
	offByDefault(t)
	defs := testutil.WriteDefs(t, map[string]string{"bad.hcl": `method "x" {`})

	for _, mode := range []registry.Mode{registry.ModeStrict, registry.ModeWarning, registry.ModeOff} {
		loader := newLoader(t, registry.Config{DefsPath: defs, Mode: mode})
		result, err := loader.Load(context.Background())
		require.Error(t, err, "mode %s", mode)
		require.Nil(t, result, "mode %s", mode)
	}
}

func TestLoad_RejectedReloadKeepsPreviousRegistries(t *testing.T) {
	offByDefault(t)
	good := testutil.WriteDefs(t, map[string]string{"defs.hcl": cleanStore})
	loader := newLoader(t, registry.Config{DefsPath: good, Mode: registry.ModeStrict})

	_, err := loader.Load(context.Background())
	require.NoError(t, err)
	published := loader.Registries()
	require.NotNil(t, published)

	// Break the store in place and reload.
	testutilOverwrite(t, good, uncoveredStore)
	result, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.False(t, result.Success)

	// The previously published registries stay active, same pointer.
	require.Same(t, published, loader.Registries())
}

func TestLoad_Idempotent(t *testing.T) {
	offByDefault(t)
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": cleanStore})
	loader := newLoader(t, registry.Config{DefsPath: defs, Mode: registry.ModeStrict})

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	second, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.Success, second.Success)
	require.Equal(t, first.MethodCount, second.MethodCount)
	require.Equal(t, first.Errors, second.Errors)
	require.Equal(t, first.Warnings, second.Warnings)
	require.Equal(t,
		loader.Registries().Tools.Names(),
		[]string{"create_report"})
}

func TestLoad_DriftRequiresSourceRoot(t *testing.T) {
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": cleanStore})
	on := true
	loader := newLoader(t, registry.Config{DefsPath: defs, Mode: registry.ModeStrict, Drift: &on})

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no source root")
}

func TestLoad_DriftAgainstSource(t *testing.T) {
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": `
		method "report.create" {
			param "title" {
				type     = string
				required = true
			}
			implementation {
				struct = "CreateReportInput"
			}
		}

		tool "create_report" {
			method = "report.create"
			param "title" {
				type     = string
				required = true
			}
		}

		method "system.ping" {
			implementation {
				struct = "PingInput"
			}
		}

		tool "ping" {
			method = "system.ping"
		}
	`})
	src := testutil.WriteSource(t, map[string]string{"svc/inputs.go": `package svc

type CreateReportInput struct {
	Title string ` + "`hub:\"title\"`" + `
}

type PingInput struct{}
`})

	on := true
	loader := newLoader(t, registry.Config{
		DefsPath:   defs,
		SourceRoot: src,
		Mode:       registry.ModeStrict,
		Drift:      &on,
	})

	result, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Drift)
	require.True(t, result.Drift.Passed)
}

func TestNewLoader_EnvPrecedence(t *testing.T) {
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": cleanStore})

	t.Setenv(registry.EnvMode, "warning")
	t.Setenv(registry.EnvDrift, "0")

	// Environment fills in what the config leaves unset.
	fromEnv := newLoader(t, registry.Config{DefsPath: defs})
	require.Equal(t, registry.ModeWarning, fromEnv.Mode())
	require.False(t, fromEnv.DriftEnabled())

	// Explicit config beats the environment.
	on := true
	explicit := newLoader(t, registry.Config{DefsPath: defs, Mode: registry.ModeStrict, Drift: &on})
	require.Equal(t, registry.ModeStrict, explicit.Mode())
	require.True(t, explicit.DriftEnabled())
}

func TestNewLoader_UnparseableEnvFallsBackToStrict(t *testing.T) {
	defs := testutil.WriteDefs(t, map[string]string{"defs.hcl": cleanStore})
	t.Setenv(registry.EnvMode, "permissive")

	loader := newLoader(t, registry.Config{DefsPath: defs})
	require.Equal(t, registry.ModeStrict, loader.Mode())
}

func TestNewLoader_RequiresDefsPath(t *testing.T) {
	_, err := registry.NewLoader(registry.Config{})
	require.Error(t, err)
}

// testutilOverwrite replaces the single defs.hcl written by the tests above.
func testutilOverwrite(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, "defs.hcl"), []byte(content), 0o644))
}
