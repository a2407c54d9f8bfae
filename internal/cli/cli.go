package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/toolhub/internal/app"
	"github.com/vk/toolhub/internal/registry"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ValidateOptions holds the parsed configuration for the validation command.
type ValidateOptions struct {
	DefsPath   string
	SourceRoot string
	Mode       registry.Mode
	Drift      *bool
	JSON       bool
	LogLevel   string
	LogFormat  string
}

// ParseValidate processes arguments for the standalone validation command. It
// returns the options, a boolean indicating a clean early exit (help or no
// path), or an ExitError with code 2 on invalid usage.
func ParseValidate(args []string, output io.Writer) (*ValidateOptions, bool, error) {
	slog.Debug("CLI parser started.", "command", "validate")
	flagSet := flag.NewFlagSet("toolhub-validate", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
toolhub-validate - Load a definition store and run coverage, consistency and
drift validation without starting a hub.

Usage:
  toolhub-validate [options] [DEFS_PATH]

Arguments:
  DEFS_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	defsFlag := flagSet.String("defs", "", "Path to the definition store file or directory.")
	srcFlag := flagSet.String("src", "", "Go source root for implementation drift scanning.")
	strictFlag := flagSet.Bool("strict", false, "Force strict mode: any validation error fails the run.")
	warningFlag := flagSet.Bool("warning", false, "Force warning mode: report issues but exit successfully.")
	noDriftFlag := flagSet.Bool("no-drift", false, "Skip the implementation drift stage.")
	jsonFlag := flagSet.Bool("json", false, "Emit the validation report as JSON.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *defsFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	if *strictFlag && *warningFlag {
		return nil, false, &ExitError{Code: 2, Message: "flags --strict and --warning are mutually exclusive"}
	}
	var mode registry.Mode
	if *strictFlag {
		mode = registry.ModeStrict
	}
	if *warningFlag {
		mode = registry.ModeWarning
	}

	var drift *bool
	if *noDriftFlag {
		off := false
		drift = &off
	}

	logFormat, logLevel, err := validateLogFlags(*logFormatFlag, *logLevelFlag)
	if err != nil {
		return nil, false, err
	}
	slog.Debug("CLI parameter validation complete.")

	return &ValidateOptions{
		DefsPath:   path,
		SourceRoot: *srcFlag,
		Mode:       mode,
		Drift:      drift,
		JSON:       *jsonFlag,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
	}, false, nil
}

// ParseServe processes arguments for the hosting process. It returns a
// populated app.Config, a boolean indicating a clean early exit, or an
// ExitError.
func ParseServe(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.", "command", "serve")
	flagSet := flag.NewFlagSet("toolhub", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
toolhub - A declarative method and tool registry with a dispatch hub.

Usage:
  toolhub [options] [DEFS_PATH]

Arguments:
  DEFS_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	defsFlag := flagSet.String("defs", "", "Path to the definition store file or directory.")
	srcFlag := flagSet.String("src", "", "Go source root for implementation drift scanning.")
	dataFlag := flagSet.String("data", "", "Directory for the persistent store. Empty keeps state in memory.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	modeFlag := flagSet.String("mode", "", "Validation mode: 'strict', 'warning' or 'off'. Empty defers to the environment.")
	noDriftFlag := flagSet.Bool("no-drift", false, "Skip the implementation drift stage.")
	noAutoInitFlag := flagSet.Bool("no-auto-init", false, "Do not load the registry at startup.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *defsFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	var mode registry.Mode
	if *modeFlag != "" {
		m, err := registry.ParseMode(*modeFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		mode = m
	}

	var drift *bool
	if *noDriftFlag {
		off := false
		drift = &off
	}
	var autoInit *bool
	if *noAutoInitFlag {
		off := false
		autoInit = &off
	}

	logFormat, logLevel, err := validateLogFlags(*logFormatFlag, *logLevelFlag)
	if err != nil {
		return nil, false, err
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DefsPath:        path,
		SourceRoot:      *srcFlag,
		DataPath:        *dataFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Mode:            mode,
		Drift:           drift,
		AutoInit:        autoInit,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func validateLogFlags(format, level string) (string, string, error) {
	format = strings.ToLower(format)
	if format != "text" && format != "json" {
		return "", "", &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	level = strings.ToLower(level)
	switch level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return "", "", &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return format, level, nil
}
