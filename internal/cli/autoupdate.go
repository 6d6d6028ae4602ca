package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prehook/internal/config"
	"prehook/internal/flags"
	"prehook/internal/update"
)

var (
	autoupdateConfigPath string
	autoupdateDryRun     bool
	autoupdateToken      string
)

var autoupdateCmd = &cobra.Command{
	Use:   "autoupdate",
	Short: "Move remote hook sources to their latest tags",
	Long: `Rewrite the rev of every github.com hook source in the pipeline
file to the repository's latest tag (the latest release tag when the
repository publishes releases). Comments and formatting in the file are
preserved. Sources on other forges are left unchanged.

Authentication is optional: anonymous access works for public sources.
A token (--token, GITHUB_TOKEN, or gh auth) raises the API rate limit.

Examples:
  prehook autoupdate
  prehook autoupdate --dry-run
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		token, _, err := update.ResolveAuthToken(ctx, autoupdateToken)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(1)
		}

		client := update.NewGitHubClient(token, cfg.Runtime.Verbose, nil)
		changes, notices, err := update.NewUpdater(client).Update(ctx, autoupdateConfigPath, autoupdateDryRun)

		out := cmd.OutOrStdout()
		for _, n := range notices {
			fmt.Fprintf(out, "skipping %s\n", n)
		}
		for _, c := range changes {
			verb := "updating"
			if autoupdateDryRun {
				verb = "would update"
			}
			fmt.Fprintf(out, "%s %s: %s -> %s\n", verb, c.Repo, c.OldRev, c.NewRev)
		}
		if len(changes) == 0 && err == nil {
			fmt.Fprintln(out, "already up to date")
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(autoupdateCmd)
	autoupdateCmd.Flags().StringVar(&autoupdateConfigPath, flags.FlagConfig, config.DefaultConfigFile, "Pipeline file to update")
	autoupdateCmd.Flags().BoolVar(&autoupdateDryRun, "dry-run", false, "Report what would change without writing the file")
	autoupdateCmd.Flags().StringVar(&autoupdateToken, "token", "", "GitHub access token (default: GITHUB_TOKEN, then gh auth)")
}
