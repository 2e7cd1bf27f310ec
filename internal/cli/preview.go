package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dashgrid/dashgrid/pkg/breakpoint"
	"github.com/dashgrid/dashgrid/pkg/layout"
)

// previewCommand creates the preview command for rendering layouts in the
// terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		tier        string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "preview <layouts.json>",
		Short: "Render a layout file as a terminal grid",
		Long: `Render a layout file as a terminal grid.

Each chart is drawn as a lettered block on the column grid of its tier, with
a legend mapping letters to chart ids. By default every tier is printed;
--tier limits output to one, and --interactive opens a browser where the
arrow keys cycle through tiers.

Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(args[0], tier, interactive)
		},
	}

	cmd.Flags().StringVar(&tier, "tier", "", "preview a single tier only")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse tiers interactively")

	return cmd
}

// runPreview renders the requested tiers.
func (c *CLI) runPreview(input, only string, interactive bool) error {
	layouts, err := readLayoutFile(input)
	if err != nil {
		return err
	}

	if interactive {
		model := newPreviewModel(layouts)
		_, err := tea.NewProgram(model).Run()
		return err
	}

	printed := 0
	for _, t := range breakpoint.Tiers() {
		if only != "" && t.Name != only {
			continue
		}
		l, ok := layouts[t.Name]
		if !ok {
			continue
		}
		printed++

		fmt.Println(StyleTitle.Render(fmt.Sprintf("%s (%d columns)", t.Name, t.Cols)))
		fmt.Println(renderTier(l, t.Cols))
		fmt.Println(renderLegend(l))
		printNewline()
	}
	if printed == 0 {
		return fmt.Errorf("no matching tiers in %s", input)
	}
	return nil
}

// =============================================================================
// Grid Rendering
// =============================================================================

// blockColors cycles through the palette for chart blocks.
var blockColors = []lipgloss.Color{
	colorCyan, colorGreen, colorYellow, colorBlue, colorRed, colorWhite,
}

const cellWidth = 5

// itemLabel returns the display letter for the item at index i.
func itemLabel(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(letters) {
		return string(letters[i])
	}
	return fmt.Sprintf("%d", i+1)
}

// renderTier draws one tier as rows of lettered cells. Empty cells show a
// dim dot.
func renderTier(l layout.Layout, cols int) string {
	if cols < 1 {
		cols = 1
	}

	rows := 0
	for _, it := range l {
		if it.Y+it.H > rows {
			rows = it.Y + it.H
		}
	}

	// cell -> item index, -1 = free
	cells := make([][]int, rows)
	for y := range cells {
		cells[y] = make([]int, cols)
		for x := range cells[y] {
			cells[y][x] = -1
		}
	}
	for i, it := range l {
		for y := it.Y; y < it.Y+it.H && y < rows; y++ {
			for x := it.X; x < it.X+it.W && x < cols; x++ {
				if x >= 0 && y >= 0 {
					cells[y][x] = i
				}
			}
		}
	}

	var b strings.Builder
	empty := StyleDim.Render(pad("·"))
	for y := 0; y < rows; y++ {
		b.WriteString("  ")
		for x := 0; x < cols; x++ {
			i := cells[y][x]
			if i < 0 {
				b.WriteString(empty)
				continue
			}
			style := lipgloss.NewStyle().
				Foreground(blockColors[i%len(blockColors)]).
				Bold(true)
			b.WriteString(style.Render(pad(itemLabel(i))))
		}
		if y < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// pad centers a label in a fixed-width cell.
func pad(s string) string {
	total := cellWidth - len(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// renderLegend maps block letters to chart ids.
func renderLegend(l layout.Layout) string {
	var b strings.Builder
	for i, it := range l {
		b.WriteString("  ")
		b.WriteString(StyleHighlight.Render(itemLabel(i)))
		b.WriteString(StyleDim.Render(fmt.Sprintf(" %s (%d,%d %dx%d)", it.ID, it.X, it.Y, it.W, it.H)))
		if i < len(l)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// =============================================================================
// Interactive Browser
// =============================================================================

// previewModel is the bubbletea model for cycling through tiers.
type previewModel struct {
	layouts layout.Responsive
	tiers   []breakpoint.Tier
	idx     int
}

func newPreviewModel(layouts layout.Responsive) previewModel {
	return previewModel{layouts: layouts, tiers: breakpoint.Tiers()}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.idx > 0 {
				m.idx--
			}
		case "right", "l", "down", "j", "tab":
			if m.idx < len(m.tiers)-1 {
				m.idx++
			}
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	t := m.tiers[m.idx]
	b.WriteString(StyleTitle.Render("Layout Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ switch tier  q quit"))
	b.WriteString("\n\n")

	names := make([]string, len(m.tiers))
	for i, tier := range m.tiers {
		if i == m.idx {
			names[i] = StyleHighlight.Render("[" + tier.Name + "]")
		} else {
			names[i] = StyleDim.Render(tier.Name)
		}
	}
	b.WriteString("  " + strings.Join(names, " "))
	b.WriteString("\n\n")

	l, ok := m.layouts[t.Name]
	if !ok {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  tier %s not present", t.Name)))
		return b.String()
	}

	b.WriteString(renderTier(l, t.Cols))
	b.WriteString("\n\n")
	b.WriteString(renderLegend(l))
	b.WriteString("\n")
	return b.String()
}
