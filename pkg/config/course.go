package config

import (
	"os"
	"path"
	"strings"
)

// Defaults for the 2025 intake. Flags may override each one so the same
// binary serves future intakes.
const (
	DefaultCourseName       = "FBB Orchestration 2025"
	DefaultRegistrationsDir = "accepts_2025"
	DefaultBranchSuffix     = "_accept"
	DefaultTitlePrefix      = "acceptance-orch2025-"
)

// Course is the rule set of one course intake.
type Course struct {
	Name             string
	RegistrationsDir string
	BranchSuffix     string
	TitlePrefix      string
}

func DefaultCourse() Course {
	return Course{
		Name:             DefaultCourseName,
		RegistrationsDir: DefaultRegistrationsDir,
		BranchSuffix:     DefaultBranchSuffix,
		TitlePrefix:      DefaultTitlePrefix,
	}
}

// ExpectedBranch is the branch name a registration PR must use.
func (c Course) ExpectedBranch(author string) string {
	return author + c.BranchSuffix
}

// ExpectedTitle is the title a registration PR must use.
func (c Course) ExpectedTitle(author string) string {
	return c.TitlePrefix + author
}

// RegistrationPath is the repository-relative path of the author's
// registration file. Always slash-separated: it is shown to students and
// compared against git diff output.
func (c Course) RegistrationPath(author string) string {
	return path.Join(c.RegistrationsDir, author+".yaml")
}

// Settings are tool-level knobs set by the command layer.
type Settings struct {
	RepoRoot  string
	ReportDir string
	LogLevel  string
	EnvFile   string
}

// ResolveRepoRoot picks the repository root: the explicit flag value, else
// the workspace checkout CI exposes, else the current directory.
func ResolveRepoRoot(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if ws := strings.TrimSpace(os.Getenv("GITHUB_WORKSPACE")); ws != "" {
		return ws
	}
	return "."
}
