// Package report renders the outcome of a validation run: the console
// blocks students read in the Actions log, and the artifact pair
// (run_report.json, report.md) maintainers collect from the job.
package report

import (
	"fmt"
	"io"
	"strings"

	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/finding"
)

const ruleWidth = 70

func rule() string {
	return strings.Repeat("=", ruleWidth)
}

// Header prints the banner at the top of every validation run.
func Header(w io.Writer, course config.Course, author string) {
	fmt.Fprintln(w, rule())
	fmt.Fprintf(w, "Валидация регистрации на курс %s\n", course.Name)
	fmt.Fprintf(w, "\tАвтор PR (эталонный username): %s\n", author)
	fmt.Fprintln(w, rule())
	fmt.Fprintln(w)
}

// Summary prints the final verdict block. Each finding becomes a "!!  "
// paragraph, its suggestion lines indented beneath it, one blank line
// between paragraphs.
func Summary(w io.Writer, res *finding.Result) {
	fmt.Fprintln(w, rule())
	if res.OK() {
		fmt.Fprintln(w, "ВСЕ ПРОВЕРКИ ПРОЙДЕНЫ УСПЕШНО!")
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "ОБНАРУЖЕНЫ ОШИБКИ (требуют исправления):")
		fmt.Fprintln(w)
		for _, f := range res.Findings {
			fmt.Fprintf(w, "!!  %s\n", f.Message)
			for _, s := range f.Suggestions {
				fmt.Fprintf(w, "    %s\n", s)
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, rule())
}
