package main

import (
	"github.com/spf13/cobra"

	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/logger"
	"acceptance-gate/pkg/roster"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit every registration file in the repository",
	Long: `The audit command re-validates all registration files already merged
into the registrations directory and prints a per-file verdict with a
per-track tally. Useful after a rule change or before grading starts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := config.ResolveRepoRoot(settings.RepoRoot)
		summary, err := roster.NewAuditor(root, courseFromFlags()).Collect()
		if err != nil {
			return err
		}

		roster.WriteTable(cmd.OutOrStdout(), summary)

		if err := roster.WriteArtifacts(summary, resolveReportDir(root)); err != nil {
			logger.Warnf("Could not write roster artifacts: %v", err)
		}

		if summary.Invalid > 0 {
			return errValidationFailed
		}
		return nil
	},
}
