package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashgrid/dashgrid/pkg/breakpoint"
	"github.com/dashgrid/dashgrid/pkg/layout"
)

// generateCommand creates the generate command for computing default layouts.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		items     string
		itemsFile string
		templates string
		tier      string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "generate <category>",
		Short: "Generate default layouts for a set of charts",
		Long: `Generate default layouts for a set of charts.

For each breakpoint tier a layout is computed: the curated template for the
category (if one exists) shapes the widest tier, every other tier uses the
hero-first auto heuristic. Output is the same JSON shape the store persists,
so it can be inspected, previewed, or pushed directly.

With --tier only that tier is generated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(args[0], items, itemsFile, templates, tier, output)
		},
	}

	cmd.Flags().StringVar(&items, "items", "", "comma-separated chart item ids")
	cmd.Flags().StringVar(&itemsFile, "items-file", "", "file with one chart item id per line")
	cmd.Flags().StringVar(&templates, "templates", "", "TOML file with curated templates (default: built-in)")
	cmd.Flags().StringVar(&tier, "tier", "", "generate a single tier (lg, md, sm, xs, xxs)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runGenerate computes default layouts and writes them out.
func (c *CLI) runGenerate(category, items, itemsFile, templates, tier, output string) error {
	ids, err := resolveItems(items, itemsFile)
	if err != nil {
		return err
	}

	reg, err := loadTemplates(templates)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	tpl, hasTemplate := reg.Template(category)

	c.Logger.Debug("generating layouts", "category", category, "items", len(ids), "curated", hasTemplate)

	var result layout.Responsive
	if tier != "" {
		cols, ok := breakpoint.Columns(tier)
		if !ok {
			return fmt.Errorf("unknown tier %q", tier)
		}
		t := tpl
		if tier != breakpoint.Widest().Name {
			t = nil
		}
		result = layout.Responsive{tier: layout.Generate(ids, cols, t)}
	} else {
		result = layout.GenerateAll(ids, tpl)
	}

	if err := writeLayoutOutput(result, output); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Layouts generated")
		printFile(output)
		printStats(len(ids), len(result), hasTemplate)
		printNewline()
		printNextStep("Preview", "dashgrid preview "+output)
	}
	return nil
}
