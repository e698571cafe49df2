package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/filecmp"
)

var cmpJSON bool

// CmpCmd represents the cmp command
var CmpCmd = &cobra.Command{
	Use:   "cmp GOLDEN CANDIDATE",
	Short: "Compare a build output against its golden file",
	Long: `Compare two files and print a readable report of any difference. With
--json both files are parsed and compared as JSON trees, so formatting
and key order do not matter.

The exit status is non-zero when the files differ.

Examples:
  sdkforge cmp golden/meta.json out/meta.json --json
  sdkforge cmp golden/sdk_manifest out/sdk_manifest`,
	Args: cobra.ExactArgs(2),
	RunE: runCmpCommand,
}

func init() {
	CmpCmd.Flags().BoolVar(&cmpJSON, "json", false, "Compare as JSON trees instead of bytes")
}

func runCmpCommand(cmd *cobra.Command, args []string) error {
	compare := filecmp.Files
	if cmpJSON {
		compare = filecmp.JSONFiles
	}

	result, err := compare(args[0], args[1])
	if err != nil {
		return err
	}
	if result.Equal {
		return nil
	}
	fmt.Print(result.Report)
	return errors.Newf("%s does not match %s", args[1], args[0])
}
