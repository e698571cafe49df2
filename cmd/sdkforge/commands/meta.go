package commands

import (
	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/atom"
	"github.com/meridian-os/sdkforge/depfile"
	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/sdkmeta"
)

var (
	metaOutput  string
	metaFormat  string
	metaDepfile string
	metaID      string
	metaHost    string
	metaTargets []string
)

// MetaCmd represents the meta command
var MetaCmd = &cobra.Command{
	Use:   "meta [MANIFEST...]",
	Short: "Build the top-level SDK metadata file",
	Long: `Gather the given manifests and emit the SDK's meta file: its version
identifier, host and target architectures, and the list of parts in the
closure.

Examples:
  sdkforge meta sdk.json -o meta.json
  sdkforge meta sdk.json --format yaml --id 12.20240901.1.0`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMetaCommand,
}

func init() {
	MetaCmd.Flags().StringVarP(&metaOutput, "output", "o", "-", "Output path (- for stdout)")
	MetaCmd.Flags().StringVarP(&metaFormat, "format", "f", "json", "Output format (json/yaml)")
	MetaCmd.Flags().StringVar(&metaDepfile, "depfile", "", "Write a Ninja depfile recording the input manifests")
	MetaCmd.Flags().StringVar(&metaID, "id", "", "SDK version identifier (defaults to the configured one)")
	MetaCmd.Flags().StringVar(&metaHost, "host-arch", "", "Host architecture (defaults to the configured one)")
	MetaCmd.Flags().StringSliceVar(&metaTargets, "target-arch", nil, "Target architectures (defaults to the configured ones)")
}

func runMetaCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	id := metaID
	if id == "" {
		id = cfg.SDK.ID
	}
	arch := sdkmeta.Arch{Host: cfg.SDK.HostArch, Target: cfg.SDK.TargetArchs}
	if metaHost != "" {
		arch.Host = metaHost
	}
	if len(metaTargets) > 0 {
		arch.Target = metaTargets
	}

	closure, err := atom.NewGatherer(cfg.Gather.Jobs).Gather(cmd.Context(), args)
	if err != nil {
		return err
	}

	meta, err := sdkmeta.Build(id, arch, closure)
	if err != nil {
		return err
	}

	var data []byte
	switch metaFormat {
	case "json":
		data, err = meta.EncodeJSON()
	case "yaml":
		data, err = meta.EncodeYAML()
	default:
		return errors.Newf("unknown meta format %q, expected json or yaml", metaFormat)
	}
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(metaOutput)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		closeOut()
		return errors.Wrap(err, "failed to write meta file")
	}
	if err := closeOut(); err != nil {
		return err
	}

	if metaDepfile != "" {
		if metaOutput == "" || metaOutput == "-" {
			return errors.New("--depfile requires --output to name a file")
		}
		if err := depfile.Write(metaDepfile, metaOutput, args); err != nil {
			return err
		}
	}
	return nil
}
