package validate

import "fmt"

// Severity classifies how serious an issue is. Error-severity issues fail
// their report; warning-severity issues are surfaced but do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind identifies the class of a validation issue.
type Kind string

const (
	KindUncoveredMethod Kind = "uncovered_method"
	KindOrphanedTool    Kind = "orphaned_tool"

	KindDuplicateMethod Kind = "duplicate_method"
	KindDuplicateTool   Kind = "duplicate_tool"
	KindParamMissing    Kind = "param_missing_on_method"
	KindParamMismatch   Kind = "param_type_mismatch"
	KindPartialCompat   Kind = "param_partial_compatibility"

	KindStaleParam      Kind = "stale_param"
	KindUndeclaredParam Kind = "undeclared_param"
	KindImplMismatch    Kind = "impl_type_mismatch"
	KindImplMissing     Kind = "impl_struct_missing"
)

// Issue is a single structured validation finding.
type Issue struct {
	Kind     Kind
	Severity Severity
	Method   string
	Tool     string
	Param    string
	Detail   string
}

// String renders the issue in one line for flat error/warning lists.
func (i Issue) String() string {
	subject := i.Method
	if i.Tool != "" {
		subject = i.Tool
	}
	if i.Param != "" {
		subject = fmt.Sprintf("%s/%s", subject, i.Param)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Kind, subject, i.Detail)
}

// Report is the outcome of one validator over one definition set. It is
// produced fresh on every load and never mutated afterwards.
type Report struct {
	Validator string
	Passed    bool
	Issues    []Issue
}

func newReport(validator string) *Report {
	return &Report{Validator: validator, Passed: true}
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityError {
		r.Passed = false
	}
}

// ErrorCount returns the number of error-severity issues.
func (r *Report) ErrorCount() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

// IssuesOfKind returns the issues matching the given kind, preserving order.
func (r *Report) IssuesOfKind(kind Kind) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}
