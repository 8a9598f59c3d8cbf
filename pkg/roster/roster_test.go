package roster

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/finding"
	"acceptance-gate/pkg/registration"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, data, 0644))
}

func registrationYAML(t *testing.T, username, repo, grading string) []byte {
	t.Helper()
	data, err := yaml.Marshal(map[string]any{
		"github_username": username,
		"first_name":      "Анна",
		"last_name":       "Смирнова",
		"repo":            repo,
		"grading":         grading,
		"agreement":       registration.ReferenceAgreement,
		"agree_to_rules":  "yes",
	})
	require.NoError(t, err)
	return data
}

func TestAuditor_Collect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "accepts_2025/alice.yaml",
		registrationYAML(t, "alice", "https://github.com/alice/homeworks", registration.GradingHomeworks))
	writeFile(t, root, "accepts_2025/bob.yml",
		registrationYAML(t, "bob", "None", registration.GradingProject))
	writeFile(t, root, "accepts_2025/carol.yaml",
		registrationYAML(t, "someone-else", "None", registration.GradingProject))
	writeFile(t, root, "accepts_2025/dave.yaml", []byte("github_username: [broken\n"))
	writeFile(t, root, "accepts_2025/README.md", []byte("# Как зарегистрироваться\n"))
	writeFile(t, root, "accepts_2025/_template.yaml",
		registrationYAML(t, "template", "None", registration.GradingProject))
	writeFile(t, root, "accepts_2025/ignored.yaml",
		registrationYAML(t, "ignored", "None", registration.GradingProject))
	writeFile(t, root, ".gitignore", []byte("accepts_2025/ignored.yaml\n"))

	s, err := NewAuditor(root, config.DefaultCourse()).Collect()
	require.NoError(t, err)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Valid)
	assert.Equal(t, 2, s.Invalid)
	assert.Equal(t, 1, s.ByTrack[registration.GradingHomeworks])
	assert.Equal(t, 1, s.ByTrack[registration.GradingProject])

	require.Len(t, s.Entries, 4)
	assert.Equal(t, "accepts_2025/alice.yaml", s.Entries[0].Path)
	assert.Equal(t, "accepts_2025/bob.yml", s.Entries[1].Path)
	assert.Equal(t, "accepts_2025/carol.yaml", s.Entries[2].Path)
	assert.Equal(t, "accepts_2025/dave.yaml", s.Entries[3].Path)

	alice := s.Entries[0]
	assert.True(t, alice.Valid)
	assert.Equal(t, registration.GradingHomeworks, alice.Grading)
	assert.Equal(t, "alice", alice.Username)

	carol := s.Entries[2]
	assert.False(t, carol.Valid)
	require.NotEmpty(t, carol.Findings)
	assert.Equal(t, finding.CodeFieldValue, carol.Findings[0].Code)
	assert.Equal(t, "github_username", carol.Findings[0].Field)

	dave := s.Entries[3]
	assert.False(t, dave.Valid)
	require.Len(t, dave.Findings, 1)
	assert.Equal(t, finding.CodeYAMLSyntax, dave.Findings[0].Code)
}

func TestAuditor_MissingDirectory(t *testing.T) {
	root := t.TempDir()

	_, err := NewAuditor(root, config.DefaultCourse()).Collect()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "registrations directory")
}

func TestAuditor_BadFilename(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "accepts_2025/two words.yaml",
		registrationYAML(t, "two words", "None", registration.GradingProject))

	s, err := NewAuditor(root, config.DefaultCourse()).Collect()
	require.NoError(t, err)

	require.Len(t, s.Entries, 1)
	e := s.Entries[0]
	assert.False(t, e.Valid)
	require.NotEmpty(t, e.Findings)
	assert.Equal(t, finding.CodeUsernameFile, e.Findings[0].Code)
	assert.Contains(t, e.Findings[0].Message, "two words.yaml")
}

func TestAuditor_EmptyDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "accepts_2025"), 0755))

	s, err := NewAuditor(root, config.DefaultCourse()).Collect()
	require.NoError(t, err)

	assert.Zero(t, s.Total)
	assert.Empty(t, s.Entries)
}

func TestWriteTable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "accepts_2025/alice.yaml",
		registrationYAML(t, "alice", "https://github.com/alice/homeworks", registration.GradingHomeworks))
	writeFile(t, root, "accepts_2025/mallory.yaml", []byte("first_name: Мэллори\n"))

	s, err := NewAuditor(root, config.DefaultCourse()).Collect()
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteTable(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "Аудит регистраций на курс FBB Orchestration 2025")
	assert.Contains(t, out, "СТАТУС")
	assert.Contains(t, out, "accepts_2025/alice.yaml")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "accepts_2025/mallory.yaml:")
	assert.Contains(t, out, "!!  В файле отсутствует обязательное поле: 'github_username'")
	assert.Contains(t, out, "Всего файлов: 2, корректных: 1, с ошибками: 1")
	assert.Contains(t, out, "По трекам: homeworks=1, project=0")
}

func TestWriteArtifacts_Roster(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "accepts_2025/alice.yaml",
		registrationYAML(t, "alice", "None", registration.GradingProject))

	s, err := NewAuditor(root, config.DefaultCourse()).Collect()
	require.NoError(t, err)

	reportDir := filepath.Join(root, "out")
	summaryFile := filepath.Join(root, "summary.md")
	t.Setenv("GITHUB_STEP_SUMMARY", summaryFile)

	require.NoError(t, WriteArtifacts(s, reportDir))

	jsonData, err := os.ReadFile(filepath.Join(reportDir, RosterJSONFileName))
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"accepts_2025/alice.yaml"`)

	mdData, err := os.ReadFile(filepath.Join(reportDir, RosterMarkdownFileName))
	require.NoError(t, err)
	assert.Contains(t, string(mdData), "| accepts_2025/alice.yaml | project | ok | 0 |")

	summary, err := os.ReadFile(summaryFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(summary), "# Аудит регистраций"))
}
