package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/toolhub/internal/cli"
	"github.com/vk/toolhub/internal/registry"
)

func TestParseValidate_Defaults(t *testing.T) {
	var out bytes.Buffer
	opts, exit, err := cli.ParseValidate([]string{"--defs", "./defs"}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	require.Equal(t, "./defs", opts.DefsPath)
	require.Empty(t, opts.SourceRoot)
	require.Equal(t, registry.Mode(""), opts.Mode)
	require.Nil(t, opts.Drift)
	require.False(t, opts.JSON)
}

func TestParseValidate_PositionalPath(t *testing.T) {
	var out bytes.Buffer
	opts, exit, err := cli.ParseValidate([]string{"./defs"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	require.Equal(t, "./defs", opts.DefsPath)
}

func TestParseValidate_AllFlags(t *testing.T) {
	var out bytes.Buffer
	opts, exit, err := cli.ParseValidate([]string{
		"--defs", "./defs",
		"--src", "./internal",
		"--warning",
		"--no-drift",
		"--json",
		"--log-level", "debug",
		"--log-format", "json",
	}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	require.Equal(t, registry.ModeWarning, opts.Mode)
	require.Equal(t, "./internal", opts.SourceRoot)
	require.NotNil(t, opts.Drift)
	require.False(t, *opts.Drift)
	require.True(t, opts.JSON)
	require.Equal(t, "debug", opts.LogLevel)
	require.Equal(t, "json", opts.LogFormat)
}

func TestParseValidate_StrictAndWarningConflict(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.ParseValidate([]string{"--defs", "x", "--strict", "--warning"}, &out)
	require.Error(t, err)

	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "mutually exclusive")
}

func TestParseValidate_NoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	opts, exit, err := cli.ParseValidate(nil, &out)
	require.NoError(t, err)
	require.True(t, exit)
	require.Nil(t, opts)
	require.True(t, strings.Contains(out.String(), "Usage:"))
}

func TestParseValidate_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.ParseValidate([]string{"--bogus"}, &out)
	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.Code)
}

func TestParseValidate_InvalidLogFlags(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "bad format", args: []string{"--defs", "x", "--log-format", "xml"}},
		{name: "bad level", args: []string{"--defs", "x", "--log-level", "verbose"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := cli.ParseValidate(tc.args, &out)
			require.Error(t, err)
			exitErr, ok := err.(*cli.ExitError)
			require.True(t, ok)
			require.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestParseServe_AllFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.ParseServe([]string{
		"--defs", "./defs",
		"--src", "./internal",
		"--data", "/tmp/data",
		"--healthcheck-port", "8080",
		"--mode", "warning",
		"--no-drift",
		"--no-auto-init",
		"--log-format", "text",
		"--log-level", "warn",
	}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	require.Equal(t, "./defs", cfg.DefsPath)
	require.Equal(t, "./internal", cfg.SourceRoot)
	require.Equal(t, "/tmp/data", cfg.DataPath)
	require.Equal(t, 8080, cfg.HealthcheckPort)
	require.Equal(t, registry.ModeWarning, cfg.Mode)
	require.NotNil(t, cfg.Drift)
	require.False(t, *cfg.Drift)
	require.NotNil(t, cfg.AutoInit)
	require.False(t, *cfg.AutoInit)
}

func TestParseServe_InvalidMode(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.ParseServe([]string{"--defs", "x", "--mode", "loose"}, &out)
	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.Code)
}

func TestParseServe_NoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.ParseServe(nil, &out)
	require.NoError(t, err)
	require.True(t, exit)
	require.Nil(t, cfg)
}
