package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"prehook/internal/config"
	"prehook/internal/engine"
	"prehook/internal/flags"
	"prehook/internal/gitutil"
)

var cfg = config.New()

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured hooks against the staged files",
	Long: `Run the hook pipeline declared in .pre-commit-config.yaml.

File selection:
	By default hooks run against the files staged for commit. Use --all-files
	to run against every tracked file, or --files to name the candidates
	explicitly. Each hook then narrows the candidates with its own files,
	exclude, and type patterns.

Scheduling:
	Hooks whose selected file sets overlap run one at a time, in pipeline
	order. Hooks with disjoint file sets run concurrently up to --concurrency.
	Results are always reported in pipeline order.

Output:
	Console output is controlled by --console-format (default: text).
	Structured output can be written to a file via --out / --out-format.
	NDJSON mode emits one JSON object per line: lifecycle events
	(run.started, run.finished) and one hook.result event per hook.

Exit codes:
	0 = all hooks passed
	1 = a hook failed or modified files
	2 = partial run (a hook errored or its source could not be resolved)
	3 = fatal error (the run did not execute)

Examples:
  # All hooks, staged files
  prehook run

  # One hook against the whole tree
  prehook run --hook trailing-whitespace --all-files

  # Machine-readable results
  prehook run --no-console --out results.ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		ctx := context.Background()

		// Hooks and their patterns assume repo-relative paths; run from the
		// repository top level regardless of the invocation directory.
		top, err := gitutil.New(".").TopLevel(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		// --files paths are relative to where the user ran the command, not
		// to the repository root; re-root them before leaving that directory.
		if len(cfg.Selection.Files) > 0 {
			files, err := rerootFiles(cfg.Selection.Files, top)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(3)
			}
			cfg.Selection.Files = files
		}
		if err := os.Chdir(top); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot enter repository root: %v\n", err)
			os.Exit(3)
		}

		os.Exit(engine.New().Run(ctx, cfg))
	},
}

// rerootFiles rewrites candidate paths to be relative to the repository top
// level. Relative paths are resolved against the current directory first.
func rerootFiles(files []string, top string) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		abs := f
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, f)
		}
		rel, err := filepath.Rel(top, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("file %s is outside the repository", f)
		}
		out = append(out, rel)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Selection
	runCmd.Flags().StringVar(&cfg.Selection.ConfigPath, flags.FlagConfig, cfg.Selection.ConfigPath, "Pipeline file, relative to the repository root")
	runCmd.Flags().BoolVar(&cfg.Selection.AllFiles, flags.FlagAllFiles, false, "Run against every tracked file instead of the staged set")
	runCmd.Flags().StringSliceVar(&cfg.Selection.Files, flags.FlagFiles, nil, "Explicit candidate files (repeatable; comma-separated accepted); replaces git discovery")
	runCmd.Flags().StringVar(&cfg.Selection.HookID, flags.FlagHook, "", "Run only the hook with this id")

	// Output
	runCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	runCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (PASS, FAIL, MODIFIED, SKIPPED, ERROR). Comma-separated.")
	runCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	runCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	runCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out)")
	runCmd.Flags().BoolVar(&cfg.Output.NoColor, flags.FlagNoColor, false, "Disable colors in console output")

	// Runtime
	runCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent hooks (default: number of CPUs)")
	runCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Whole-run timeout (default: 30m)")
	runCmd.Flags().DurationVar(&cfg.Runtime.HookTimeout, flags.FlagHookTimeout, cfg.Runtime.HookTimeout, "Per-hook timeout (default: 2m)")
	runCmd.Flags().BoolVar(&cfg.Runtime.FailFast, flags.FlagFailFast, false, "Skip remaining hooks after the first failure")
}
