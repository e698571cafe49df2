package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/config"
	"github.com/meridian-os/sdkforge/errors"
)

var initForce bool

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write a default project configuration",
	Long: `Write a ` + config.ProjectConfigName + ` with default settings into the given
directory (current directory if omitted). Edit it to pin the SDK id,
architectures and toolchain directory for the project.

Examples:
  sdkforge init
  sdkforge init path/to/project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInitCommand,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func runInitCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, config.ProjectConfigName)

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return errors.Newf("%s already exists, use --force to overwrite", path)
		}
	}

	cfg, err := config.Default()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
