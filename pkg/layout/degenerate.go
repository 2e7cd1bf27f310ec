package layout

// Degenerate-detection thresholds. These are empirically tuned: they flag
// gross, visually obvious corruption (a wide viewport rendering as a single
// column), nothing subtler. Tune with care.
const (
	// DegenerateSingleRowRatio is the fraction of occupied rows holding
	// exactly one item above which a wide layout counts as collapsed.
	DegenerateSingleRowRatio = 0.8

	// DegenerateMinRows is the number of distinct occupied rows a layout
	// must exceed before the ratio check applies.
	DegenerateMinRows = 2

	// DegenerateMinCols is the narrowest tier the ratio check applies to.
	// One- and two-column tiers legitimately stack.
	DegenerateMinCols = 3
)

// IsDegenerate reports whether a layout is visually broken for the given
// column count. Degenerate layouts are repaired by full regeneration, never
// patched in place.
//
// A layout is degenerate when any of:
//   - the tier has multiple columns, more than one item exists, and every
//     item sits at x=0 with width 1
//   - any item pokes outside the column bounds
//   - the viewport is wide (cols ≥ DegenerateMinCols, item count ≥ cols)
//     yet the arrangement is an effectively single-column stack: more than
//     DegenerateSingleRowRatio of occupied rows hold exactly one item,
//     across more than DegenerateMinRows rows
func IsDegenerate(l Layout, cols int) bool {
	if len(l) == 0 {
		return false
	}

	// Collapsed into the first column. Only meaningful when the tier
	// actually has more than one column to collapse from.
	if cols > 1 && len(l) > 1 {
		collapsed := true
		for _, it := range l {
			if it.X != 0 || it.W != 1 {
				collapsed = false
				break
			}
		}
		if collapsed {
			return true
		}
	}

	for _, it := range l {
		if it.X < 0 || it.X+it.W > cols {
			return true
		}
	}

	if cols >= DegenerateMinCols && len(l) >= cols {
		perRow := make(map[int]int)
		for _, it := range l {
			for y := it.Y; y < it.Y+it.H; y++ {
				perRow[y]++
			}
		}
		singles := 0
		for _, n := range perRow {
			if n == 1 {
				singles++
			}
		}
		if len(perRow) > DegenerateMinRows &&
			float64(singles) > DegenerateSingleRowRatio*float64(len(perRow)) {
			return true
		}
	}

	return false
}
