package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prehook/internal/config"
	"prehook/internal/flags"
	"prehook/internal/pipeline"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the pipeline file without running anything",
	Long: `Parse and validate the pipeline file: YAML syntax, schema shape,
pattern compilation, and per-repo hook requirements. Nothing is executed.

Examples:
  prehook validate
  prehook validate --config ci/pipeline.yaml
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := pipeline.Load(validateConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		hookCount := 0
		for _, repo := range cfg.Repos {
			hookCount += len(repo.Hooks)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d repos, %d hooks)\n", validateConfigPath, len(cfg.Repos), hookCount)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateConfigPath, flags.FlagConfig, config.DefaultConfigFile, "Pipeline file to validate")
}
