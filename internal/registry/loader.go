package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/toolhub/internal/ctxlog"
	"github.com/vk/toolhub/internal/definition"
	"github.com/vk/toolhub/internal/hclstore"
	"github.com/vk/toolhub/internal/validate"
)

// Config configures a Loader. Zero values defer to the environment toggles
// and then to the built-in defaults.
type Config struct {
	// DefsPath is the root of the definition store. Required.
	DefsPath string

	// SourceRoot is the Go source tree the drift scanner parses. Required
	// only when drift detection is enabled.
	SourceRoot string

	// Mode overrides the validation mode. Empty defers to TOOLHUB_VALIDATION_MODE.
	Mode Mode

	// Drift overrides drift detection. Nil defers to TOOLHUB_DRIFT.
	Drift *bool
}

// LoadResult aggregates everything one load attempt produced. Validation
// issues are collected here rather than returned one at a time, so a single
// attempt always surfaces the full picture.
type LoadResult struct {
	Success     bool
	MethodCount int
	ToolCount   int

	// Drift is nil when drift detection was disabled for the load.
	Coverage    *validate.Report
	Consistency *validate.Report
	Drift       *validate.Report

	Errors   []string
	Warnings []string

	// Published reports whether this load's registries became active.
	Published bool
}

// Reports returns the non-nil validation reports in fixed order.
func (r *LoadResult) Reports() []*validate.Report {
	reports := []*validate.Report{r.Coverage, r.Consistency, r.Drift}
	out := reports[:0]
	for _, rep := range reports {
		if rep != nil {
			out = append(out, rep)
		}
	}
	return out
}

// Loader owns the load-validate-publish lifecycle of the method and tool
// registries. Loads are exclusive; readers keep using the previously active
// registries until the swap, which is a single atomic pointer replacement.
type Loader struct {
	store      *hclstore.Loader
	defsPath   string
	sourceRoot string
	mode       Mode
	drift      bool

	mu     sync.Mutex
	active atomic.Pointer[Registries]
}

// NewLoader resolves the configuration (explicit > environment > default)
// and returns a Loader. No definitions are read until Load is called.
func NewLoader(cfg Config) (*Loader, error) {
	if cfg.DefsPath == "" {
		return nil, fmt.Errorf("DefsPath is a required configuration field and cannot be empty")
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeFromEnv(ModeStrict)
	}
	drift := DriftFromEnv(true)
	if cfg.Drift != nil {
		drift = *cfg.Drift
	}

	return &Loader{
		store:      hclstore.NewLoader(),
		defsPath:   cfg.DefsPath,
		sourceRoot: cfg.SourceRoot,
		mode:       mode,
		drift:      drift,
	}, nil
}

// Mode returns the resolved validation mode.
func (l *Loader) Mode() Mode { return l.mode }

// DriftEnabled reports whether drift detection runs on load.
func (l *Loader) DriftEnabled() bool { return l.drift }

// Registries returns the currently active registries, or nil before the
// first successful publish. The returned value is immutable.
func (l *Loader) Registries() *Registries {
	return l.active.Load()
}

// Load reads the definition store into fresh registries, validates them and,
// if the mode permits, publishes them atomically. A malformed store is a
// fatal error regardless of mode. Validator failures are aggregated into the
// result and governed by the mode; in strict mode a failed load leaves the
// previously active registries untouched.
func (l *Loader) Load(ctx context.Context) (*LoadResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	logger := ctxlog.FromContext(ctx)

	set, err := l.store.Load(ctx, l.defsPath)
	if err != nil {
		return nil, fmt.Errorf("definition store load failed: %w", err)
	}

	result := &LoadResult{
		MethodCount: len(set.Methods),
		ToolCount:   len(set.Tools),
	}

	if l.mode == ModeOff {
		logger.Warn("Validation mode is 'off'; skipping all validators.")
	} else {
		result.Coverage = validate.Coverage(set)
		result.Consistency = validate.Consistency(set)
		if l.drift {
			drift, err := l.runDrift(set)
			if err != nil {
				return nil, err
			}
			result.Drift = drift
		} else {
			logger.Debug("Drift detection disabled for this load.")
		}
		l.collectIssues(result)
	}

	failed := false
	for _, rep := range result.Reports() {
		if !rep.Passed {
			failed = true
			logger.Warn("Validator reported failures.", "validator", rep.Validator, "issues", len(rep.Issues))
		}
	}

	if failed && l.mode == ModeStrict {
		result.Success = false
		logger.Error("Registry load rejected in strict mode; active registries unchanged.",
			"errors", len(result.Errors))
		return result, nil
	}

	result.Success = true
	result.Published = true
	l.active.Store(Build(set))
	logger.Info("Registries published.",
		"methods", result.MethodCount, "tools", result.ToolCount, "mode", string(l.mode))
	return result, nil
}

func (l *Loader) runDrift(set *definition.Set) (*validate.Report, error) {
	if l.sourceRoot == "" {
		return nil, fmt.Errorf("drift detection enabled but no source root configured")
	}
	scan, err := validate.ScanSource(l.sourceRoot)
	if err != nil {
		return nil, fmt.Errorf("drift source scan failed: %w", err)
	}
	return validate.Drift(set, scan), nil
}

// collectIssues flattens every report's issues into the result's error and
// warning lists by severity.
func (l *Loader) collectIssues(result *LoadResult) {
	for _, rep := range result.Reports() {
		for _, issue := range rep.Issues {
			line := fmt.Sprintf("%s: %s", rep.Validator, issue.String())
			if issue.Severity == validate.SeverityError {
				result.Errors = append(result.Errors, line)
			} else {
				result.Warnings = append(result.Warnings, line)
			}
		}
	}
}
