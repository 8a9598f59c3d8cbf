package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"acceptance-gate/pkg/checks"
	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/finding"
	"acceptance-gate/pkg/gitdiff"
	"acceptance-gate/pkg/logger"
	"acceptance-gate/pkg/report"
	"acceptance-gate/pkg/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the current registration pull request",
	Long: `The check command reads the pull request context from the environment
(PR_AUTHOR, PR_TITLE, PR_HEAD_REF, BASE_SHA, HEAD_SHA), runs every
registration rule and prints the student-facing report. The exit code is 0
only when no problems were found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		pr := config.FromEnv()
		course := courseFromFlags()
		root := config.ResolveRepoRoot(settings.RepoRoot)
		out := cmd.OutOrStdout()

		report.Header(out, course, pr.Author)

		state := checks.NewState(pr, course, root, out)
		if missing := pr.Missing(); len(missing) > 0 {
			state.Fail(finding.New(finding.CodeEnvMissing,
				"Не заданы обязательные переменные окружения: %s", strings.Join(missing, ", ")).
				WithSuggestion("Запускайте проверку из GitHub Actions или задайте переменные вручную."))
		}

		differ := gitdiff.NewDiffer(&runner.DefaultCommandRunner{}, root)
		outcomes := checks.NewGate(differ).Run(cmd.Context(), state)

		report.Summary(out, state.Result)

		run := report.NewRunReport(course, pr.Author, outcomes, state.Result, started)
		if err := report.WriteArtifacts(run, resolveReportDir(root)); err != nil {
			logger.Warnf("Could not write report artifacts: %v", err)
		}

		if !state.Result.OK() {
			return errValidationFailed
		}
		return nil
	},
}

// resolveReportDir keeps a relative --report-dir inside the repo root.
func resolveReportDir(root string) string {
	if filepath.IsAbs(settings.ReportDir) {
		return settings.ReportDir
	}
	return filepath.Join(root, settings.ReportDir)
}
