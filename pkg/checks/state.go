// Package checks runs the fixed, ordered validation sequence of a
// registration pull request: branch name, PR title, registration file,
// registration content, changed files.
package checks

import (
	"fmt"
	"io"

	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/finding"
	"acceptance-gate/pkg/registration"
)

// State is shared by all checks of one run. Checks append findings and
// confirmation lines to Result; the registration-file check stores the
// loaded file for the content check.
type State struct {
	Ctx    config.Context
	Course config.Course
	Root   string

	File   *registration.File
	Result *finding.Result
	Out    io.Writer
}

func NewState(ctx config.Context, course config.Course, root string, out io.Writer) *State {
	return &State{
		Ctx:    ctx,
		Course: course,
		Root:   root,
		Result: finding.NewResult(),
		Out:    out,
	}
}

// Passf records a confirmation line and prints it as check progress.
func (s *State) Passf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	s.Result.Passed = append(s.Result.Passed, line)
	fmt.Fprintf(s.Out, "....%s\n", line)
}

// Fail records a finding. Findings are printed together in the summary, not
// as progress.
func (s *State) Fail(f *finding.Finding) {
	s.Result.Add(f)
}
