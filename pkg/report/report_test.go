package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"acceptance-gate/pkg/checks"
	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/finding"
)

func TestWriteArtifacts(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(StepSummaryEnv, "")

	res := finding.NewResult()
	res.Passf("Ветка имеет корректное имя: octocat_accept")
	res.Add(finding.New(finding.CodeDiffPath,
		"Неверное имя файла.\n    Ожидается: accepts_2025/octocat.yaml\n    Получено:  accepts_2025/wrong.yaml"))

	outcomes := []checks.Outcome{
		{ID: "branch-name", Ran: true, Findings: 0},
		{ID: "changed-files", Ran: true, Findings: 1},
	}
	started := time.Now().Add(-time.Second)
	r := NewRunReport(config.DefaultCourse(), "octocat", outcomes, res, started)

	if err := WriteArtifacts(r, tmpDir); err != nil {
		t.Fatalf("WriteArtifacts returned error: %v", err)
	}

	jsonFile := filepath.Join(tmpDir, RunReportFileName)
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		t.Fatalf("Failed to read JSON report at %s: %v", jsonFile, err)
	}
	var decoded RunReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal JSON report: %v", err)
	}

	if decoded.RunID == "" {
		t.Error("Expected a non-empty run_id")
	}
	if decoded.Author != "octocat" {
		t.Errorf("Expected author %q, got %q", "octocat", decoded.Author)
	}
	if decoded.Outcome != RunOutcomeFailure {
		t.Errorf("Expected outcome %q, got %q", RunOutcomeFailure, decoded.Outcome)
	}
	if len(decoded.Checks) != len(outcomes) {
		t.Errorf("Expected %d checks, got %d", len(outcomes), len(decoded.Checks))
	}
	if len(decoded.Findings) != 1 {
		t.Errorf("Expected 1 finding, got %d", len(decoded.Findings))
	}
	if len(decoded.Confirmed) != 1 {
		t.Errorf("Expected 1 confirmed line, got %d", len(decoded.Confirmed))
	}
	if decoded.FinishedAt.Before(decoded.StartedAt) {
		t.Errorf("Expected finished_at >= started_at, got %s < %s", decoded.FinishedAt, decoded.StartedAt)
	}

	mdFile := filepath.Join(tmpDir, ReportMarkdownFileName)
	mdData, err := os.ReadFile(mdFile)
	if err != nil {
		t.Fatalf("Failed to read Markdown report at %s: %v", mdFile, err)
	}
	mdContent := string(mdData)

	assertContains := func(substr, desc string) {
		if !strings.Contains(mdContent, substr) {
			t.Errorf("Missing %s in Markdown: expected to contain %q", desc, substr)
		}
	}

	assertContains("# Валидация регистрации на курс FBB Orchestration 2025", "title")
	assertContains("**Автор PR:** octocat", "author")
	assertContains(fmt.Sprintf("**Итог:** %s", RunOutcomeFailure), "outcome")
	assertContains("| branch-name | true | 0 |", "branch check table row")
	assertContains("| changed-files | true | 1 |", "changed files table row")
	assertContains("- **diff.path**: Неверное имя файла.<br>Ожидается: accepts_2025/octocat.yaml<br>Получено:  accepts_2025/wrong.yaml", "finding bullet")
}

func TestWriteArtifacts_AppendsStepSummary(t *testing.T) {
	tmpDir := t.TempDir()
	summaryFile := filepath.Join(tmpDir, "summary.md")
	t.Setenv(StepSummaryEnv, summaryFile)

	r := NewRunReport(config.DefaultCourse(), "octocat", nil, finding.NewResult(), time.Now())
	if err := WriteArtifacts(r, filepath.Join(tmpDir, "reports")); err != nil {
		t.Fatalf("WriteArtifacts returned error: %v", err)
	}

	data, err := os.ReadFile(summaryFile)
	if err != nil {
		t.Fatalf("Failed to read step summary file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, fmt.Sprintf("**Итог:** %s", RunOutcomeSuccess)) {
		t.Errorf("Step summary missing outcome, got: %s", content)
	}
	if !strings.Contains(content, "Ошибок не обнаружено.") {
		t.Errorf("Step summary missing findings section, got: %s", content)
	}
}

func TestInlineMessage(t *testing.T) {
	got := inlineMessage("Первая строка.\n    Вторая: 'x'\n    Третья:  'y'")
	want := "Первая строка.<br>Вторая: 'x'<br>Третья:  'y'"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
