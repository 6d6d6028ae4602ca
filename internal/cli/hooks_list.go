package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"prehook/internal/flags"
	"prehook/internal/hooks"
	"prehook/internal/pipeline"
)

var (
	hooksListQuiet  bool
	hooksListConfig string
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "List and inspect builtin hooks",
	Long: `Inspect the hooks built into this binary.

Builtin hooks run in-process, need no hook source checkout, and are declared
in the pipeline under "repo: builtin". They also serve as stand-ins for the
matching upstream hooks when a remote source needs an interpreter this tool
does not provide.

Examples:
  # List all builtin hooks
  prehook hooks list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var hooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List builtin hooks",
	Long: `List the builtin hooks available in this build, sorted by id.

With --config, list the hooks configured in a pipeline file instead, in
declaration order with their source.

Examples:
  prehook hooks list
  prehook hooks list -q
  prehook hooks list --config .pre-commit-config.yaml
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if hooksListConfig != "" {
			return listConfiguredHooks(cmd.OutOrStdout(), hooksListConfig)
		}
		for _, c := range hooks.List() {
			if hooksListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), c.ID())
			} else {
				printCheck(cmd.OutOrStdout(), c)
			}
		}
		return nil
	},
}

func listConfiguredHooks(w io.Writer, path string) error {
	cfg, err := pipeline.Load(path)
	if err != nil {
		return err
	}
	for _, repo := range cfg.Repos {
		for _, h := range repo.Hooks {
			if hooksListQuiet {
				fmt.Fprintln(w, h.ID)
				continue
			}
			source := repo.Repo
			if repo.IsRemote() {
				source = fmt.Sprintf("%s@%s", repo.Repo, repo.Rev)
			}
			fmt.Fprintf(w, "%-32s %s\n", h.ID, source)
		}
	}
	return nil
}

var hooksShowCmd = &cobra.Command{
	Use:   "show [hook-id]",
	Short: "Show details of a builtin hook",
	Long: `Show details of one builtin hook by its id.

Examples:
  prehook hooks show trailing-whitespace
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := hooks.Lookup(args[0])
		if !ok {
			return fmt.Errorf("hook not found: %s", args[0])
		}
		printCheck(cmd.OutOrStdout(), c)
		return nil
	},
}

func printCheck(w io.Writer, c hooks.Check) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "HOOK: %s\n", c.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, c.Name())
	fmt.Fprintln(w, c.Description())
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(hooksCmd)
	hooksCmd.AddCommand(hooksListCmd)
	hooksListCmd.Flags().BoolVarP(&hooksListQuiet, "quiet", "q", false, "Only print hook ids")
	hooksListCmd.Flags().StringVar(&hooksListConfig, flags.FlagConfig, "", "List hooks configured in this pipeline file instead of builtins")
	hooksCmd.AddCommand(hooksShowCmd)
}
