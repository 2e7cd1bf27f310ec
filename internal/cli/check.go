package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashgrid/dashgrid/pkg/breakpoint"
	"github.com/dashgrid/dashgrid/pkg/layout"
)

// checkCommand creates the check command for validating layout files.
func (c *CLI) checkCommand() *cobra.Command {
	var tier string

	cmd := &cobra.Command{
		Use:   "check <layouts.json>",
		Short: "Validate a layout file against the grid invariants",
		Long: `Validate a layout file against the grid invariants.

Each tier is checked for overlapping items, out-of-bounds rectangles, and
minimum-size violations, and flagged when its arrangement is degenerate
(collapsed column, runaway stacking). Exit status is non-zero when any tier
fails validation; degenerate-but-valid tiers only warn.

Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(args[0], tier)
		},
	}

	cmd.Flags().StringVar(&tier, "tier", "", "check a single tier only")

	return cmd
}

// runCheck validates each tier and reports the outcome.
func (c *CLI) runCheck(input, only string) error {
	layouts, err := readLayoutFile(input)
	if err != nil {
		return err
	}

	failures := 0
	checked := 0
	for _, t := range breakpoint.Tiers() {
		if only != "" && t.Name != only {
			continue
		}
		l, ok := layouts[t.Name]
		if !ok {
			if only != "" {
				return fmt.Errorf("tier %q not present in %s", only, input)
			}
			printWarning("%s: missing", t.Name)
			continue
		}
		checked++

		if err := l.Validate(t.Cols); err != nil {
			printError("%s: %v", t.Name, err)
			failures++
			continue
		}
		if layout.IsDegenerate(l, t.Cols) {
			printWarning("%s: valid but degenerate (%d items)", t.Name, len(l))
			continue
		}
		printSuccess("%s: %d items", t.Name, len(l))
	}

	if checked == 0 {
		return fmt.Errorf("no known tiers in %s", input)
	}
	if failures > 0 {
		return fmt.Errorf("%d tier(s) failed validation", failures)
	}
	return nil
}
