package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"prehook/internal/gitutil"
)

// shimMarker identifies a hook script written by this tool; install refuses
// to overwrite scripts without it and uninstall removes only scripts with it.
const shimMarker = "# installed by prehook"

const hookShim = `#!/bin/sh
` + shimMarker + `
exec prehook run
`

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the git pre-commit shim",
	Long: `Write a pre-commit script into the repository's git hooks directory
that invokes "prehook run" before every commit.

An existing pre-commit script that was not written by this tool is left
alone unless --force is given.

Examples:
  prehook install
  prehook install --force
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := preCommitHookPath(context.Background())
		if err != nil {
			return err
		}

		if existing, err := os.ReadFile(hookPath); err == nil {
			if !strings.Contains(string(existing), shimMarker) && !installForce {
				return fmt.Errorf("%s exists and was not installed by prehook; use --force to overwrite", hookPath)
			}
		}

		if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(hookPath, []byte(hookShim), 0o755); err != nil {
			return fmt.Errorf("write hook script: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "installed pre-commit hook at %s\n", hookPath)
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the git pre-commit shim",
	Long: `Remove the pre-commit script this tool installed. A script written
by something else is left in place.

Examples:
  prehook uninstall
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := preCommitHookPath(context.Background())
		if err != nil {
			return err
		}

		existing, err := os.ReadFile(hookPath)
		if os.IsNotExist(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "no pre-commit hook installed")
			return nil
		}
		if err != nil {
			return err
		}
		if !strings.Contains(string(existing), shimMarker) {
			return fmt.Errorf("%s was not installed by prehook; not removing", hookPath)
		}

		if err := os.Remove(hookPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed pre-commit hook at %s\n", hookPath)
		return nil
	},
}

func preCommitHookPath(ctx context.Context) (string, error) {
	hooksDir, err := gitutil.New(".").HooksDir(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(hooksDir, "pre-commit"), nil
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().BoolVar(&installForce, "force", false, "Overwrite an existing pre-commit script")
	rootCmd.AddCommand(uninstallCmd)
}
