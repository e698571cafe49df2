package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/fidl"
	"github.com/meridian-os/sdkforge/fidl/diff"
)

var (
	diffFormat string
	diffStrict bool
)

// DiffCmd represents the diff command
var DiffCmd = &cobra.Command{
	Use:   "diff BEFORE AFTER",
	Short: "Compare two FIDL IR files for API changes",
	Long: `Compare two FIDL intermediate-representation files and classify every
declaration and member change as hard (ABI-breaking) or soft
(source-compatible).

The exit status is non-zero when a hard change is found, or when
--strict is set and any change is found.

Examples:
  sdkforge diff old/library.fidl.json new/library.fidl.json
  sdkforge diff old.json new.json --format json
  sdkforge diff old.json new.json --strict`,
	Args: cobra.ExactArgs(2),
	RunE: runDiffCommand,
}

func init() {
	DiffCmd.Flags().StringVarP(&diffFormat, "format", "f", "text", "Output format (text/table/json)")
	DiffCmd.Flags().BoolVar(&diffStrict, "strict", false, "Fail on any change, not just ABI-breaking ones")
}

func runDiffCommand(cmd *cobra.Command, args []string) error {
	before, err := fidl.LoadLibrary(args[0])
	if err != nil {
		return err
	}
	after, err := fidl.LoadLibrary(args[1])
	if err != nil {
		return err
	}

	changes := diff.Libraries(before, after)

	switch diffFormat {
	case "text":
		diff.RenderText(os.Stdout, changes)
	case "table":
		if err := diff.RenderTable(os.Stdout, changes); err != nil {
			return err
		}
	case "json":
		if err := diff.RenderJSON(os.Stdout, changes); err != nil {
			return err
		}
	default:
		return errors.Newf("unknown diff format %q, expected text, table or json", diffFormat)
	}

	if diff.HasHard(changes) {
		return errors.Wrapf(errors.ErrIncompatible, "%s is not ABI-compatible with %s", args[1], args[0])
	}
	if diffStrict && len(changes) > 0 {
		return errors.Wrapf(errors.ErrIncompatible, "%d change(s) between %s and %s", len(changes), args[0], args[1])
	}
	return nil
}
