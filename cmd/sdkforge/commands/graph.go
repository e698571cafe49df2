package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/atom"
	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/graph"
)

var (
	graphOutput string
	graphFormat string
)

// GraphCmd represents the graph command
var GraphCmd = &cobra.Command{
	Use:   "graph [MANIFEST...]",
	Short: "Render the atom dependency graph",
	Long: `Gather the given manifests and render their dependency graph, either as
Graphviz DOT or as JSON for external visualization tools.

Examples:
  sdkforge graph sdk.json -o sdk.dot
  sdkforge graph out/*.json --format json -o sdk-graph.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGraphCommand,
}

func init() {
	GraphCmd.Flags().StringVarP(&graphOutput, "output", "o", "-", "Output path (- for stdout)")
	GraphCmd.Flags().StringVarP(&graphFormat, "format", "f", "dot", "Output format (dot/json)")
}

func runGraphCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closure, err := atom.NewGatherer(cfg.Gather.Jobs).Gather(cmd.Context(), args)
	if err != nil {
		return err
	}
	g := graph.Build(closure, time.Now())

	out, closeOut, err := openOutput(graphOutput)
	if err != nil {
		return err
	}

	switch graphFormat {
	case "dot":
		err = g.WriteDOT(out)
	case "json":
		err = g.WriteJSON(out)
	default:
		err = errors.Newf("unknown graph format %q, expected dot or json", graphFormat)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}
