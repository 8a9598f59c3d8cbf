package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"acceptance-gate/pkg/checks"
	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/finding"
	"acceptance-gate/pkg/logger"
)

type RunOutcome string

const (
	RunOutcomeSuccess RunOutcome = "success"
	RunOutcomeFailure RunOutcome = "failure"
)

const (
	// DefaultDirName is where the artifact pair lands unless --report-dir
	// points elsewhere.
	DefaultDirName = ".acceptance-gate"

	RunReportFileName      = "run_report.json"
	ReportMarkdownFileName = "report.md"
)

// StepSummaryEnv names the file GitHub Actions renders as the job summary.
const StepSummaryEnv = "GITHUB_STEP_SUMMARY"

// RunReport is the machine-readable record of one validation run.
type RunReport struct {
	RunID      string             `json:"run_id"`
	Course     string             `json:"course"`
	Author     string             `json:"author"`
	Outcome    RunOutcome         `json:"outcome"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Checks     []checks.Outcome   `json:"checks"`
	Confirmed  []string           `json:"confirmed"`
	Findings   []*finding.Finding `json:"findings"`
}

func NewRunReport(course config.Course, author string, outcomes []checks.Outcome, res *finding.Result, startedAt time.Time) *RunReport {
	outcome := RunOutcomeFailure
	if res.OK() {
		outcome = RunOutcomeSuccess
	}

	return &RunReport{
		RunID:      uuid.NewString(),
		Course:     course.Name,
		Author:     author,
		Outcome:    outcome,
		StartedAt:  startedAt.UTC(),
		FinishedAt: time.Now().UTC(),
		Checks:     outcomes,
		Confirmed:  res.Passed,
		Findings:   res.Findings,
	}
}

// formatMarkdown renders the run report for the job summary. Findings keep
// their console wording; line breaks inside a message become <br> so the
// bullets survive markdown rendering.
func formatMarkdown(r *RunReport) string {
	var md strings.Builder

	md.WriteString(fmt.Sprintf("# Валидация регистрации на курс %s\n\n", r.Course))
	md.WriteString(fmt.Sprintf("**Автор PR:** %s\n\n", r.Author))
	md.WriteString(fmt.Sprintf("**Итог:** %s\n\n", r.Outcome))

	md.WriteString("## Проверки\n\n")
	if len(r.Checks) == 0 {
		md.WriteString("Ни одна проверка не была выполнена.\n")
	} else {
		md.WriteString("| Проверка | Выполнена | Ошибок |\n")
		md.WriteString("|----------|-----------|--------|\n")
		for _, c := range r.Checks {
			md.WriteString(fmt.Sprintf("| %s | %t | %d |\n", c.ID, c.Ran, c.Findings))
		}
	}

	md.WriteString("\n## Ошибки\n\n")
	if len(r.Findings) == 0 {
		md.WriteString("Ошибок не обнаружено.\n")
	} else {
		for _, f := range r.Findings {
			md.WriteString(fmt.Sprintf("- **%s**: %s\n", f.Code, inlineMessage(f.Message)))
			for _, s := range f.Suggestions {
				md.WriteString(fmt.Sprintf("  - %s\n", s))
			}
		}
	}

	return md.String()
}

// inlineMessage flattens a multi-line console message to a single markdown
// line, dropping the continuation indent.
func inlineMessage(msg string) string {
	lines := strings.Split(msg, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimLeft(lines[i], " ")
	}
	return strings.Join(lines, "<br>")
}

// WriteArtifacts persists the JSON and markdown reports under dir and
// mirrors the markdown into the GitHub step summary when one is available.
func WriteArtifacts(r *RunReport, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Errorf("Error creating report directory %s: %v", dir, err)
		return fmt.Errorf("creating report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		logger.Warnf("Error marshalling run report: %v", err)
		return fmt.Errorf("marshalling run report: %w", err)
	}
	jsonFile := filepath.Join(dir, RunReportFileName)
	logger.Debugf("Writing run report to %s", jsonFile)
	if err := os.WriteFile(jsonFile, data, 0644); err != nil {
		logger.Errorf("Error writing run report to file: %v", err)
		return fmt.Errorf("writing run report to file: %w", err)
	}

	md := formatMarkdown(r)
	mdFile := filepath.Join(dir, ReportMarkdownFileName)
	logger.Debugf("Writing markdown report to %s", mdFile)
	if err := os.WriteFile(mdFile, []byte(md), 0644); err != nil {
		logger.Errorf("Error writing markdown report to file: %v", err)
		return fmt.Errorf("writing markdown report to file: %w", err)
	}

	AppendStepSummary(md)
	return nil
}

// AppendStepSummary is best effort: a missing or unwritable summary file
// never fails the run.
func AppendStepSummary(md string) {
	path := os.Getenv(StepSummaryEnv)
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Warnf("Cannot open step summary file %s: %v", path, err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(md + "\n"); err != nil {
		logger.Warnf("Cannot append to step summary file %s: %v", path, err)
	}
}
