// Package finding defines the vocabulary the gate checks speak: a Finding is
// one failed rule with its student-facing message, a Result is the ordered
// accumulation of findings and confirmation lines across a run.
package finding

import (
	"fmt"
)

// Code is a stable, machine-readable identifier for a rule. Messages are
// student-facing and localized; codes are not.
type Code string

const (
	CodeEnvMissing  Code = "env.missing"
	CodeBranchName  Code = "branch.name"
	CodeTitleFormat Code = "title.format"

	CodeFileMissing    Code = "file.missing"
	CodeFileUnreadable Code = "file.unreadable"

	CodeYAMLSyntax    Code = "content.yaml-syntax"
	CodeEmptyDocument Code = "content.empty-document"
	CodeFieldMissing  Code = "content.field-missing"
	CodeFieldValue    Code = "content.field-value"
	CodeAgreement     Code = "content.agreement"
	CodeRules         Code = "content.rules"
	CodeUsernameFile  Code = "content.username-file"

	CodeDiffFailed Code = "diff.failed"
	CodeDiffCount  Code = "diff.count"
	CodeDiffStatus Code = "diff.status"
	CodeDiffPath   Code = "diff.path"
)

// Finding represents a single failed rule.
type Finding struct {
	Code        Code     `json:"code"`
	Message     string   `json:"message"`
	Field       string   `json:"field,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Got         string   `json:"got,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// New creates a finding. The message may span multiple lines; the report
// layer indents continuation lines itself.
func New(code Code, format string, args ...interface{}) *Finding {
	return &Finding{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (f *Finding) Error() string {
	if f.Field != "" {
		return fmt.Sprintf("[%s] field '%s': %s", f.Code, f.Field, f.Message)
	}
	return fmt.Sprintf("[%s] %s", f.Code, f.Message)
}

// WithField records which registration field the finding is about.
func (f *Finding) WithField(field string) *Finding {
	f.Field = field
	return f
}

// WithExpected records the expected value for report artifacts.
func (f *Finding) WithExpected(expected string) *Finding {
	f.Expected = expected
	return f
}

// WithGot records the observed value for report artifacts.
func (f *Finding) WithGot(got string) *Finding {
	f.Got = got
	return f
}

// WithSuggestion adds a remediation hint shown to the student.
func (f *Finding) WithSuggestion(suggestion string) *Finding {
	f.Suggestions = append(f.Suggestions, suggestion)
	return f
}

// Result accumulates findings and confirmation lines in check order.
type Result struct {
	Findings []*Finding `json:"findings,omitempty"`
	Passed   []string   `json:"passed,omitempty"`
}

// NewResult creates an empty (passing) result.
func NewResult() *Result {
	return &Result{}
}

// Add appends a finding. Nil is ignored so rule helpers can return nil
// for "satisfied".
func (r *Result) Add(f *Finding) {
	if f == nil {
		return
	}
	r.Findings = append(r.Findings, f)
}

// Passf records one confirmation line for the progress section of the report.
func (r *Result) Passf(format string, args ...interface{}) {
	r.Passed = append(r.Passed, fmt.Sprintf(format, args...))
}

// Merge appends another result, preserving order.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Findings = append(r.Findings, other.Findings...)
	r.Passed = append(r.Passed, other.Passed...)
}

// OK reports whether the run is clean.
func (r *Result) OK() bool {
	return len(r.Findings) == 0
}

// Count returns the number of findings.
func (r *Result) Count() int {
	return len(r.Findings)
}

// String returns a one-line summary for diagnostic logs.
func (r *Result) String() string {
	if r.OK() {
		return fmt.Sprintf("validation passed, %d rules confirmed", len(r.Passed))
	}
	return fmt.Sprintf("validation failed with %d findings", len(r.Findings))
}
