package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/toolrun"
)

var runArgsString string

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run TOOL [ARG...]",
	Short: "Run a configured host tool",
	Long: `Resolve a host tool through the toolchain configuration and run it.
Everything after the tool name is passed through verbatim, so the tool's
own flags never collide with ours. Alternatively, --args takes a single
shell-quoted string; it must come before the tool name.

The tool's stdout is printed; a failing tool fails the command.

Examples:
  sdkforge run fidlc --files foo.fidl
  sdkforge run --args "validate meta/foo.cml" cmc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRunCommand,
}

func init() {
	RunCmd.Flags().StringVar(&runArgsString, "args", "", "Tool arguments as one shell-quoted string")
	// Everything after the tool name belongs to the tool.
	RunCmd.Flags().SetInterspersed(false)
}

func runRunCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tool := args[0]
	toolArgs := args[1:]
	if runArgsString != "" {
		if len(toolArgs) > 0 {
			return errors.New("pass arguments either positionally or via --args, not both")
		}
		toolArgs, err = toolrun.SplitArgs(runArgsString)
		if err != nil {
			return err
		}
	}

	result, err := toolrun.New(cfg).Run(cmd.Context(), tool, toolArgs)
	if result != nil && len(result.Stdout) > 0 {
		fmt.Print(string(result.Stdout))
	}
	return err
}
