package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"acceptance-gate/pkg/logger"
	"acceptance-gate/pkg/registration"
	"acceptance-gate/pkg/report"
)

const (
	RosterJSONFileName     = "roster.json"
	RosterMarkdownFileName = "roster.md"
)

// WriteTable prints the audit to the console: one row per file, then the
// findings of every failed file, then the tally.
func WriteTable(w io.Writer, s *Summary) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Аудит регистраций на курс %s\n", s.Course)
	fmt.Fprintf(w, "\tПапка: %s/\n", s.Dir)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "СТАТУС\tТРЕК\tФАЙЛ")
	for _, e := range s.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", statusOf(e), trackOf(e), e.Path)
	}
	tw.Flush()

	for _, e := range s.Entries {
		if e.Valid {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", e.Path)
		for _, f := range e.Findings {
			fmt.Fprintf(w, "!!  %s\n", f.Message)
			for _, sug := range f.Suggestions {
				fmt.Fprintf(w, "    %s\n", sug)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Всего файлов: %d, корректных: %d, с ошибками: %d\n", s.Total, s.Valid, s.Invalid)
	if s.Valid > 0 {
		fmt.Fprintf(w, "По трекам: %s=%d, %s=%d\n",
			registration.GradingHomeworks, s.ByTrack[registration.GradingHomeworks],
			registration.GradingProject, s.ByTrack[registration.GradingProject])
	}
	fmt.Fprintln(w, rule)
}

func statusOf(e Entry) string {
	if e.Valid {
		return "ok"
	}
	return "FAIL"
}

func trackOf(e Entry) string {
	if e.Grading == "" {
		return "-"
	}
	return e.Grading
}

func formatMarkdown(s *Summary) string {
	var md strings.Builder

	md.WriteString(fmt.Sprintf("# Аудит регистраций на курс %s\n\n", s.Course))
	md.WriteString(fmt.Sprintf("**Папка:** %s/\n\n", s.Dir))
	md.WriteString(fmt.Sprintf("**Всего:** %d · **Корректных:** %d · **С ошибками:** %d\n\n", s.Total, s.Valid, s.Invalid))

	md.WriteString("## Файлы\n\n")
	if len(s.Entries) == 0 {
		md.WriteString("Файлы регистраций не найдены.\n")
	} else {
		md.WriteString("| Файл | Трек | Статус | Ошибок |\n")
		md.WriteString("|------|------|--------|--------|\n")
		for _, e := range s.Entries {
			md.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n", e.Path, trackOf(e), statusOf(e), len(e.Findings)))
		}
	}

	return md.String()
}

// WriteArtifacts persists the audit pair under dir and mirrors the markdown
// into the GitHub step summary when one is available.
func WriteArtifacts(s *Summary, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Errorf("Error creating report directory %s: %v", dir, err)
		return fmt.Errorf("creating report directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		logger.Warnf("Error marshalling roster: %v", err)
		return fmt.Errorf("marshalling roster: %w", err)
	}
	jsonFile := filepath.Join(dir, RosterJSONFileName)
	logger.Debugf("Writing roster to %s", jsonFile)
	if err := os.WriteFile(jsonFile, data, 0644); err != nil {
		logger.Errorf("Error writing roster to file: %v", err)
		return fmt.Errorf("writing roster to file: %w", err)
	}

	md := formatMarkdown(s)
	mdFile := filepath.Join(dir, RosterMarkdownFileName)
	logger.Debugf("Writing roster markdown to %s", mdFile)
	if err := os.WriteFile(mdFile, []byte(md), 0644); err != nil {
		logger.Errorf("Error writing roster markdown to file: %v", err)
		return fmt.Errorf("writing roster markdown to file: %w", err)
	}

	report.AppendStepSummary(md)
	return nil
}
