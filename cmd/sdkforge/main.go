package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/cmd/sdkforge/commands"
	"github.com/meridian-os/sdkforge/logger"
)

var rootCmd = &cobra.Command{
	Use:   "sdkforge",
	Short: "sdkforge - SDK assembly and compatibility tooling",
	Long: `sdkforge - Assemble, verify and compare SDK distributions.

sdkforge merges per-build atom manifests into a dependency closure,
enforces publication-category rules, builds the SDK's metadata, and
diffs FIDL APIs between releases.

Available commands:
  gather  - Merge atom manifests into a dependency closure
  verify  - Check category constraints on atom manifests
  meta    - Build the top-level SDK metadata file
  diff    - Compare two FIDL IR files for API changes
  graph   - Render the atom dependency graph
  run     - Run a configured host tool
  cmp     - Compare a build output against its golden file
  init    - Write a default project configuration

Examples:
  sdkforge gather out/*.json -o sdk.json   # Build the closure
  sdkforge verify sdk.json -c partner      # Check publication rules
  sdkforge diff old.json new.json          # Find ABI breaks
  sdkforge graph sdk.json -o sdk.dot       # Visualize dependencies`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON instead of console lines")
	commands.RegisterPersistentFlags(rootCmd)

	rootCmd.AddCommand(commands.GatherCmd)
	rootCmd.AddCommand(commands.VerifyCmd)
	rootCmd.AddCommand(commands.MetaCmd)
	rootCmd.AddCommand(commands.DiffCmd)
	rootCmd.AddCommand(commands.GraphCmd)
	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.CmpCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
