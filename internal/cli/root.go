package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prehook/internal/logging"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "prehook",
	Short: "Run pre-commit hook pipelines declared in .pre-commit-config.yaml",
	Long: `Prehook runs the hook pipeline declared in a repository's
.pre-commit-config.yaml: it selects the staged files, resolves each hook
(builtin, local, or a pinned remote source), executes hooks concurrently
where their file sets do not overlap, and reports per-hook results.

Examples:
	# Run all hooks against the staged files
	prehook run

	# Run everything against the whole tree
	prehook run --all-files

	# Install the git pre-commit shim
	prehook install

	# Move remote sources to their latest tags
	prehook autoupdate

	# List builtin hooks
	prehook hooks list

Exit codes for run:
	0 = all hooks passed
	1 = a hook failed or modified files
	2 = partial run (a hook errored or its source could not be resolved)
	3 = fatal error (the run did not execute)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(cfg.Runtime.Verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable diagnostic logging and per-hook output on success")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
