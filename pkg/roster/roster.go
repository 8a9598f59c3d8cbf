// Package roster audits every registration file already merged into the
// course repository. Where the check command judges one PR, the audit walks
// the whole registrations directory and reports which files would still
// pass today's rules.
package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/finding"
	"acceptance-gate/pkg/logger"
	"acceptance-gate/pkg/registration"
)

// Course repos keep non-registration helpers next to the YAML files.
var defaultIgnores = []string{
	".git/",
	"_*",
	"template.yaml",
	"example.yaml",
}

// GitHub usernames: alphanumeric and hyphens, no hyphen at either end.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$`)

const maxUsernameLen = 39

// Entry is the audit verdict for one registration file.
type Entry struct {
	Path     string             `json:"path"`
	Username string             `json:"username"`
	Grading  string             `json:"grading,omitempty"`
	Valid    bool               `json:"valid"`
	Findings []*finding.Finding `json:"findings,omitempty"`
}

// Summary aggregates the audit over the registrations directory.
type Summary struct {
	Course  string         `json:"course"`
	Dir     string         `json:"dir"`
	Total   int            `json:"total"`
	Valid   int            `json:"valid"`
	Invalid int            `json:"invalid"`
	ByTrack map[string]int `json:"by_track"`
	Entries []Entry        `json:"entries"`
}

// Auditor walks the registrations directory under Root.
type Auditor struct {
	Root   string
	Course config.Course
}

func NewAuditor(root string, course config.Course) *Auditor {
	return &Auditor{Root: root, Course: course}
}

// Collect validates every YAML file in the registrations directory and
// tallies the result. The filename stem is taken as the claimed GitHub
// username, so every content rule runs against it.
func (a *Auditor) Collect() (*Summary, error) {
	dir := filepath.Join(a.Root, a.Course.RegistrationsDir)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("registrations directory %s: %w", dir, err)
	}

	matcher := a.ignoreMatcher()

	summary := &Summary{
		Course:  a.Course.Name,
		Dir:     a.Course.RegistrationsDir,
		ByTrack: map[string]int{},
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(a.Root, path)
		if err != nil || relPath == "." {
			return nil
		}

		if matcher != nil {
			pathToMatch := relPath
			if info.IsDir() {
				pathToMatch = relPath + string(filepath.Separator)
			}
			if matcher.MatchesPath(pathToMatch) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		summary.add(a.auditFile(path, filepath.ToSlash(relPath), info.Name()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Slice(summary.Entries, func(i, j int) bool {
		return summary.Entries[i].Path < summary.Entries[j].Path
	})
	logger.Debugf("Audited %d registration files under %s", summary.Total, dir)
	return summary, nil
}

func (a *Auditor) auditFile(path, relPath, name string) Entry {
	username := strings.TrimSuffix(name, filepath.Ext(name))
	entry := Entry{Path: relPath, Username: username}

	res := finding.NewResult()
	if !usernameRe.MatchString(username) || len(username) > maxUsernameLen {
		res.Add(finding.New(finding.CodeUsernameFile,
			"Имя файла '%s' не является корректным GitHub username.", name).
			WithField("path").
			WithSuggestion("Файл должен называться <github_username>.yaml"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Add(finding.New(finding.CodeFileUnreadable, "Ошибка с YAML-файлом.\n    %v", err).WithField("path"))
		entry.Findings = res.Findings
		return entry
	}

	f, err := registration.Parse(relPath, data)
	if err != nil {
		res.Add(finding.New(finding.CodeYAMLSyntax, "Ошибка с YAML-файлом.\n    %v", err).WithField("path"))
		entry.Findings = res.Findings
		return entry
	}

	res.Merge(registration.ValidateContent(f, username, a.Course.RegistrationsDir))

	if f.Reg.Grading == registration.GradingHomeworks || f.Reg.Grading == registration.GradingProject {
		entry.Grading = f.Reg.Grading
	}
	entry.Valid = res.OK()
	entry.Findings = res.Findings
	return entry
}

func (s *Summary) add(e Entry) {
	s.Entries = append(s.Entries, e)
	s.Total++
	if e.Valid {
		s.Valid++
		if e.Grading != "" {
			s.ByTrack[e.Grading]++
		}
	} else {
		s.Invalid++
	}
}

// ignoreMatcher combines the built-in patterns with the repository's own
// .gitignore when one exists.
func (a *Auditor) ignoreMatcher() *ignore.GitIgnore {
	patterns := defaultIgnores
	gitignorePath := filepath.Join(a.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		content, err := os.ReadFile(gitignorePath)
		if err == nil {
			patterns = append(patterns, strings.Split(string(content), "\n")...)
		}
	}
	return ignore.CompileIgnoreLines(patterns...)
}
