package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/toolhub/internal/app"
	"github.com/vk/toolhub/internal/cli"
	"github.com/vk/toolhub/internal/ctxlog"
	"github.com/vk/toolhub/internal/registry"
)

// validationFailed signals a completed run whose validators rejected the
// store. It maps to exit code 1, distinct from usage errors (2).
type validationFailed struct {
	errors int
}

func (e *validationFailed) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", e.errors)
}

// main is the entrypoint for the standalone validation command.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run loads the definition store, runs the validators and renders the report.
func run(outW io.Writer, args []string) error {
	opts, shouldExit, err := cli.ParseValidate(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := app.NewLogger(opts.LogLevel, opts.LogFormat, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	loader, err := registry.NewLoader(registry.Config{
		DefsPath:   opts.DefsPath,
		SourceRoot: opts.SourceRoot,
		Mode:       opts.Mode,
		Drift:      opts.Drift,
	})
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	result, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	if opts.JSON {
		if err := writeJSON(outW, result); err != nil {
			return err
		}
	} else {
		writeText(outW, result)
	}

	if !result.Success {
		return &validationFailed{errors: len(result.Errors)}
	}
	return nil
}

func writeJSON(w io.Writer, result *registry.LoadResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeText(w io.Writer, result *registry.LoadResult) {
	fmt.Fprintf(w, "Methods: %d, Tools: %d\n", result.MethodCount, result.ToolCount)
	for _, rep := range result.Reports() {
		status := "PASS"
		if !rep.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%-12s %s (%d issue(s))\n", rep.Validator, status, len(rep.Issues))
		for _, issue := range rep.Issues {
			fmt.Fprintf(w, "  [%s] %s\n", issue.Severity, issue.String())
		}
	}
	if result.Success {
		fmt.Fprintln(w, "Validation passed.")
	} else {
		fmt.Fprintf(w, "Validation failed: %d error(s), %d warning(s).\n",
			len(result.Errors), len(result.Warnings))
	}
}
