package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashgrid/dashgrid/pkg/layout"
)

// patchCommand creates the patch command for reconciling saved layouts.
func (c *CLI) patchCommand() *cobra.Command {
	var (
		items     string
		itemsFile string
		templates string
		category  string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "patch <layouts.json>",
		Short: "Reconcile a saved layout file with the current chart set",
		Long: `Reconcile a saved layout file with the current chart set.

Entries for charts that no longer exist are dropped, new charts are placed
into free space, broken geometry is repaired, and degenerate tiers are
regenerated from defaults. The result covers exactly the given items in
every tier.

Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPatch(args[0], category, items, itemsFile, templates, output)
		},
	}

	cmd.Flags().StringVar(&items, "items", "", "comma-separated chart item ids")
	cmd.Flags().StringVar(&itemsFile, "items-file", "", "file with one chart item id per line")
	cmd.Flags().StringVar(&templates, "templates", "", "TOML file with curated templates (default: built-in)")
	cmd.Flags().StringVar(&category, "category", "", "category name used to pick the curated template")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runPatch reconciles the file contents against the item set.
func (c *CLI) runPatch(input, category, items, itemsFile, templates, output string) error {
	ids, err := resolveItems(items, itemsFile)
	if err != nil {
		return err
	}

	persisted, err := readLayoutFile(input)
	if err != nil {
		return err
	}

	reg, err := loadTemplates(templates)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	var tpl *layout.Template
	if category != "" {
		tpl, _ = reg.Template(category)
	}

	c.Logger.Debug("patching layouts", "items", len(ids), "tiers", len(persisted))

	merged := layout.PatchAll(persisted, ids, tpl)
	if err := writeLayoutOutput(merged, output); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Layouts reconciled")
		printFile(output)
		printStats(len(ids), len(merged), tpl != nil)
	}
	return nil
}
