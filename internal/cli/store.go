package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashgrid/dashgrid/pkg/breakpoint"
	dgerrors "github.com/dashgrid/dashgrid/pkg/errors"
	"github.com/dashgrid/dashgrid/pkg/layout"
	"github.com/dashgrid/dashgrid/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	flags := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage saved layouts in the configured backend",
	}
	flags.register(cmd)

	cmd.AddCommand(c.storeGetCommand(flags))
	cmd.AddCommand(c.storeSetCommand(flags))
	cmd.AddCommand(c.storeDeleteCommand(flags))
	cmd.AddCommand(c.storePathCommand())

	return cmd
}

// storeGetCommand creates the "store get" subcommand.
func (c *CLI) storeGetCommand(flags *storeFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <category>",
		Short: "Print the saved layouts for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			if err := dgerrors.ValidateCategory(category); err != nil {
				return err
			}

			s, err := flags.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Loading layouts...")
			spinner.Start()
			data, hit, err := s.Get(cmd.Context(), store.LayoutKey(category))
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("load layouts: %w", err)
			}
			if !hit {
				return fmt.Errorf("no saved layouts for %q", category)
			}

			layouts, err := layout.UnmarshalResponsive(data)
			if err != nil {
				return fmt.Errorf("saved layouts unreadable: %w", err)
			}
			return writeLayoutOutput(layouts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// storeSetCommand creates the "store set" subcommand.
func (c *CLI) storeSetCommand(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <layouts.json>",
		Short: "Save layouts for a category (tiers are normalized first)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			if err := dgerrors.ValidateCategory(category); err != nil {
				return err
			}

			candidate, err := readLayoutFile(args[1])
			if err != nil {
				return err
			}

			normalized := make(layout.Responsive)
			for _, tier := range breakpoint.Tiers() {
				if l, ok := candidate[tier.Name]; ok {
					normalized[tier.Name] = layout.Normalize(l, tier.Cols)
				}
			}
			if len(normalized) == 0 {
				return fmt.Errorf("no known tiers in %s", args[1])
			}
			data, err := layout.MarshalResponsive(normalized)
			if err != nil {
				return fmt.Errorf("marshal layouts: %w", err)
			}

			s, err := flags.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Saving layouts...")
			spinner.Start()
			err = s.Set(cmd.Context(), store.LayoutKey(category), data)
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("save layouts: %w", err)
			}

			printSuccess("Saved layouts for %s", category)
			printStats(0, len(normalized), false)
			return nil
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete the saved layouts for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			if err := dgerrors.ValidateCategory(category); err != nil {
				return err
			}

			s, err := flags.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), store.LayoutKey(category)); err != nil {
				return fmt.Errorf("delete layouts: %w", err)
			}
			printSuccess("Deleted layouts for %s", category)
			printDetail("The next load falls back to generated defaults")
			return nil
		},
	}
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file backend's data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir()
			if err != nil {
				return fmt.Errorf("get data dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
