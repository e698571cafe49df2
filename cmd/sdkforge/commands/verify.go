package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/meridian-os/sdkforge/atom"
	"github.com/meridian-os/sdkforge/errors"
)

var (
	verifyCategory string
	verifyFormat   string
)

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify [MANIFEST...]",
	Short: "Check category constraints on atom manifests",
	Long: `Gather the given manifests and report every publication category
violation: atoms below the required minimum, and atoms depending on
something less published than themselves.

The exit status is non-zero when any violation is found.

Examples:
  sdkforge verify sdk.json --category partner
  sdkforge verify out/*.json --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerifyCommand,
}

func init() {
	VerifyCmd.Flags().StringVarP(&verifyCategory, "category", "c", "", "Minimum category (defaults to the configured one)")
	VerifyCmd.Flags().StringVarP(&verifyFormat, "format", "f", "table", "Output format (table/json)")
}

func runVerifyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	raw := verifyCategory
	if raw == "" {
		raw = cfg.SDK.MinimumCategory
	}
	min, err := atom.ParseCategory(raw)
	if err != nil {
		return err
	}

	closure, err := atom.NewGatherer(cfg.Gather.Jobs).Gather(cmd.Context(), args)
	if err != nil {
		return err
	}

	violations := atom.VerifyMinimum(min, closure.Atoms)
	violations = append(violations, atom.VerifyDeps(closure.Atoms)...)

	if verifyFormat == "json" {
		if err := renderViolationsJSON(violations); err != nil {
			return err
		}
	} else {
		renderViolationsTable(min, violations, len(closure.Atoms))
	}

	if len(violations) > 0 {
		return errors.Wrapf(errors.ErrCategoryViolation, "%d violation(s)", len(violations))
	}
	return nil
}

func renderViolationsJSON(violations []atom.Violation) error {
	// Emit an array even when empty so consumers can always parse.
	if violations == nil {
		violations = []atom.Violation{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(violations)
}

func renderViolationsTable(min atom.Category, violations []atom.Violation, total int) {
	if len(violations) == 0 {
		fmt.Printf("%d atom(s) verified, minimum category %s: no violations\n", total, min)
		return
	}
	for _, v := range violations {
		fmt.Println(pterm.LightRed(v.String()))
	}
	fmt.Printf("\n%d violation(s) in %d atom(s)\n", len(violations), total)
}
