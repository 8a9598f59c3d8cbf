// Package gitdiff lists the files a pull request touches, via git's
// name-status diff between the PR's base and head commits.
package gitdiff

import (
	"context"
	"fmt"
	"strings"

	"acceptance-gate/pkg/logger"
	"acceptance-gate/pkg/runner"
)

// Change is one record of `git diff --name-status`: a status letter
// (A, M, D, or score-suffixed R/C) and the path it applies to. Rename and
// copy records carry the pre-image path.
type Change struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// Differ runs git through a CommandRunner so tests can substitute canned
// diffs.
type Differ struct {
	Runner runner.CommandRunner
	Root   string
}

func NewDiffer(r runner.CommandRunner, root string) *Differ {
	return &Differ{Runner: r, Root: root}
}

// Changes returns the files changed between base and head. A git failure
// carries the combined output in the returned error.
func (d *Differ) Changes(ctx context.Context, base, head string) ([]Change, error) {
	args := []string{"git"}
	if d.Root != "" {
		args = append(args, "-C", d.Root)
	}
	args = append(args, "diff", "--name-status", base, head)

	out, err := d.Runner.RunCommand(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("git diff --name-status: %w: %s", err, strings.TrimSpace(out))
	}

	changes := parseNameStatus(out)
	logger.Debugf("git diff %s..%s: %d changed files", base, head, len(changes))
	return changes, nil
}

// parseNameStatus reads name-status records. git separates fields with tabs;
// space-separated input is tolerated for hand-written fixtures. Lines with
// fewer than two fields are skipped rather than failing the whole listing.
func parseNameStatus(out string) []Change {
	var changes []Change
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		var fields []string
		if strings.Contains(line, "\t") {
			fields = strings.Split(line, "\t")
		} else {
			fields = strings.Fields(line)
		}
		if len(fields) < 2 {
			logger.Warnf("skipping unparsable diff record: %q", line)
			continue
		}
		changes = append(changes, Change{
			Status: strings.TrimSpace(fields[0]),
			Path:   strings.TrimSpace(fields[1]),
		})
	}
	return changes
}
