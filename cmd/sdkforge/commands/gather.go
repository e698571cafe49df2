package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/atom"
	"github.com/meridian-os/sdkforge/depfile"
	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/watcher"
)

var (
	gatherOutput  string
	gatherDepfile string
	gatherIDsOnly bool
	gatherMinimum string
	gatherWatch   bool
	gatherJobs    int
)

// GatherCmd represents the gather command
var GatherCmd = &cobra.Command{
	Use:   "gather [MANIFEST...]",
	Short: "Merge atom manifests into a dependency closure",
	Long: `Merge one or more atom manifests into a single manifest holding the
transitive dependency closure of their atoms.

Atoms appearing in more than one input must be content-identical; any
mismatch is reported as a collision. Dependencies referenced but never
defined fail the merge. Category constraints are checked on every
dependency edge.

Examples:
  sdkforge gather out/host.json out/target.json -o sdk.json
  sdkforge gather out/*.json --ids-only          # Just the root identifiers
  sdkforge gather out/*.json -o sdk.json --depfile sdk.d
  sdkforge gather out/*.json -o sdk.json --watch # Re-gather on changes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGatherCommand,
}

func init() {
	GatherCmd.Flags().StringVarP(&gatherOutput, "output", "o", "-", "Output path (- for stdout)")
	GatherCmd.Flags().StringVar(&gatherDepfile, "depfile", "", "Write a Ninja depfile recording the input manifests")
	GatherCmd.Flags().BoolVar(&gatherIDsOnly, "ids-only", false, "Emit only the root identifiers, one per line")
	GatherCmd.Flags().StringVar(&gatherMinimum, "minimum-category", "", "Also require every atom to meet this category")
	GatherCmd.Flags().BoolVarP(&gatherWatch, "watch", "w", false, "Keep running and re-gather when inputs change")
	GatherCmd.Flags().IntVarP(&gatherJobs, "jobs", "j", 0, "Concurrent manifest loads (0 = config default)")
}

func runGatherCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobs := gatherJobs
	if jobs <= 0 {
		jobs = cfg.Gather.Jobs
	}
	gatherer := atom.NewGatherer(jobs)

	run := func(ctx context.Context) error {
		return gatherOnce(ctx, gatherer, args, cfg.SDK.MinimumCategory)
	}

	if gatherWatch {
		debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
		w, err := watcher.New(args, debounce)
		if err != nil {
			return err
		}
		return w.Run(cmd.Context(), run)
	}

	return run(cmd.Context())
}

func gatherOnce(ctx context.Context, gatherer *atom.Gatherer, paths []string, configuredMinimum string) error {
	closure, err := gatherer.Gather(ctx, paths)
	if err != nil {
		return err
	}

	if gatherMinimum != "" || configuredMinimum != "" {
		raw := gatherMinimum
		if raw == "" {
			raw = configuredMinimum
		}
		min, err := atom.ParseCategory(raw)
		if err != nil {
			return err
		}
		violations := atom.VerifyMinimum(min, closure.Atoms)
		violations = append(violations, atom.VerifyDeps(closure.Atoms)...)
		if len(violations) > 0 {
			lines := make([]string, len(violations))
			for i, v := range violations {
				lines[i] = v.String()
			}
			return errors.Wrapf(errors.ErrCategoryViolation, "%d violation(s):\n%s",
				len(violations), strings.Join(lines, "\n"))
		}
	}

	out, closeOut, err := openOutput(gatherOutput)
	if err != nil {
		return err
	}

	if gatherIDsOnly {
		for _, id := range closure.Roots {
			fmt.Fprintln(out, id.String())
		}
	} else {
		data, err := closure.Manifest().Encode()
		if err != nil {
			closeOut()
			return err
		}
		if _, err := out.Write(data); err != nil {
			closeOut()
			return errors.Wrap(err, "failed to write manifest")
		}
	}
	if err := closeOut(); err != nil {
		return err
	}

	if gatherDepfile != "" {
		if gatherOutput == "" || gatherOutput == "-" {
			return errors.New("--depfile requires --output to name a file")
		}
		if err := depfile.Write(gatherDepfile, gatherOutput, paths); err != nil {
			return err
		}
	}
	return nil
}
