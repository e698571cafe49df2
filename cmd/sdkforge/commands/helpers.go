package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/config"
	"github.com/meridian-os/sdkforge/errors"
)

var configPath string

// RegisterPersistentFlags adds the flags shared by every subcommand.
func RegisterPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configPath, "config", "", "Use this configuration file instead of the merged defaults")
}

// loadConfig resolves the active configuration: an explicit --config file
// wins, otherwise the usual system/user/project merge applies.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// openOutput returns a writer for path, treating "" and "-" as stdout.
// The returned closer is a no-op for stdout; for files it must be checked,
// since a failed close can lose buffered writes.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output file %s", path)
	}
	return f, func() error {
		return errors.Wrapf(f.Close(), "failed to close output file %s", path)
	}, nil
}
