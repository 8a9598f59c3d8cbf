package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"acceptance-gate/pkg/config"
	"acceptance-gate/pkg/logger"
	"acceptance-gate/pkg/report"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version of the application
	Version = "dev"
	// GitCommit is the git commit SHA at build time
	GitCommit = "unknown"
	// BuildTime is the time of the build
	BuildTime = "unknown"
)

// settings gathers the tool-level flag values; the course-rule flags below
// assemble a config.Course instead.
var settings config.Settings

var (
	courseName       string
	registrationsDir string
	branchSuffix     string
	titlePrefix      string
)

// errValidationFailed marks a run that completed and found problems: the
// report is already on the console, only the exit code is left to set.
var errValidationFailed = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "acceptance-gate",
	Short: "Validates course registration pull requests",
	Long: `acceptance-gate checks a registration pull request against the course
rules: branch name, PR title, the registration file and its content, and
the exact set of files the PR changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetLevel(settings.LogLevel)
		return config.LoadEnvFile(settings.EnvFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// courseFromFlags assembles the rule set the flags describe. Defaults match
// the current intake, so CI needs no flags at all.
func courseFromFlags() config.Course {
	return config.Course{
		Name:             courseName,
		RegistrationsDir: registrationsDir,
		BranchSuffix:     branchSuffix,
		TitlePrefix:      titlePrefix,
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errValidationFailed) {
			logger.Errorf("%v", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&settings.RepoRoot, "repo-root", "C", "", "Course repository root (default: $GITHUB_WORKSPACE or the current directory)")
	rootCmd.PersistentFlags().StringVarP(&settings.EnvFile, "env-file", "e", "", "Load environment variables from this file before running")
	rootCmd.PersistentFlags().StringVarP(&settings.LogLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&settings.ReportDir, "report-dir", "o", report.DefaultDirName, "Directory for the JSON and markdown report artifacts")
	rootCmd.PersistentFlags().StringVar(&courseName, "course", config.DefaultCourseName, "Course name shown in the report header")
	rootCmd.PersistentFlags().StringVar(&registrationsDir, "registrations-dir", config.DefaultRegistrationsDir, "Directory holding the registration YAML files")
	rootCmd.PersistentFlags().StringVar(&branchSuffix, "branch-suffix", config.DefaultBranchSuffix, "Required branch name suffix")
	rootCmd.PersistentFlags().StringVar(&titlePrefix, "title-prefix", config.DefaultTitlePrefix, "Required PR title prefix")
}
