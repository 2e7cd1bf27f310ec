// Package breakpoint defines the fixed viewport tier table shared between
// the layout engine and the rendering frontend.
//
// Every tier maps a named viewport-width band to a column count. Both sides
// of the drag-drop contract must agree on this table exactly, otherwise
// layouts are computed for the wrong column count. Column counts never
// increase as the viewport shrinks; the narrowest tiers collapse to a single
// column.
package breakpoint

// Tier is one named viewport band.
type Tier struct {
	// Name is the tier identifier used as the key in persisted layouts.
	Name string `json:"name" bson:"name"`

	// Cols is the number of grid columns available in this tier.
	Cols int `json:"cols" bson:"cols"`

	// MinWidth is the inclusive lower bound of the band in pixels.
	MinWidth int `json:"min_width" bson:"min_width"`
}

// table lists tiers widest first. MinWidth bounds follow the usual
// bootstrap-style cutoffs.
var table = []Tier{
	{Name: "lg", Cols: 4, MinWidth: 1200},
	{Name: "md", Cols: 3, MinWidth: 996},
	{Name: "sm", Cols: 2, MinWidth: 768},
	{Name: "xs", Cols: 1, MinWidth: 480},
	{Name: "xxs", Cols: 1, MinWidth: 0},
}

// Tiers returns the tier table, widest tier first.
// The returned slice is a copy and safe to modify.
func Tiers() []Tier {
	out := make([]Tier, len(table))
	copy(out, table)
	return out
}

// Widest returns the widest tier. Curated templates are authored for it.
func Widest() Tier { return table[0] }

// Columns returns the column count for a tier name.
func Columns(name string) (int, bool) {
	for _, t := range table {
		if t.Name == name {
			return t.Cols, true
		}
	}
	return 0, false
}

// ForWidth returns the tier whose band contains the given viewport width.
func ForWidth(px int) Tier {
	for _, t := range table {
		if px >= t.MinWidth {
			return t
		}
	}
	return table[len(table)-1]
}
