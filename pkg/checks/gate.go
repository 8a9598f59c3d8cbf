package checks

import (
	"context"
	"fmt"

	"acceptance-gate/pkg/gitdiff"
	"acceptance-gate/pkg/logger"
)

// Outcome is one check's share of a run, kept for report artifacts.
type Outcome struct {
	ID       string `json:"id"`
	Ran      bool   `json:"ran"`
	Findings int    `json:"findings"`
}

// Gate owns the ordered check sequence. Every check runs even after earlier
// failures, so a student sees all problems at once; the single exception is
// a check whose input never materialized.
type Gate struct {
	checks []Check
}

// NewGate builds the standard five-check sequence.
func NewGate(differ *gitdiff.Differ) *Gate {
	return &Gate{
		checks: []Check{
			BranchCheck{},
			TitleCheck{},
			FileCheck{},
			ContentCheck{},
			&ChangedFilesCheck{Differ: differ},
		},
	}
}

// Run executes the sequence against the state and returns per-check
// outcomes in order. Progress goes to the state's writer as checks pass; a
// blank line separates the sections.
func (g *Gate) Run(ctx context.Context, s *State) []Outcome {
	outcomes := make([]Outcome, 0, len(g.checks))
	for i, c := range g.checks {
		before := s.Result.Count()
		ran := c.Run(ctx, s)
		if ran && i < len(g.checks)-1 {
			fmt.Fprintln(s.Out)
		}
		found := s.Result.Count() - before
		outcomes = append(outcomes, Outcome{ID: c.ID(), Ran: ran, Findings: found})
		logger.Debugf("check %s: ran=%v findings=%d", c.ID(), ran, found)
	}
	return outcomes
}
