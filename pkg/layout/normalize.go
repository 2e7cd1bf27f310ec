package layout

import (
	"slices"

	"github.com/dashgrid/dashgrid/pkg/grid"
)

// Normalize turns an arbitrary candidate layout into a valid one for the
// given column count. Geometry coming from the drag-drop frontend is never
// trusted: it is always routed through here before being stored or rendered.
//
// Two passes:
//
//  1. Clamp every item into bounds and to its minimum size.
//  2. Repack in (y, x) order: items keep their clamped position when it is
//     still free, otherwise they move to the first free fit.
//
// The result is collision-free and in-bounds, item identities are preserved,
// and the original visual order survives approximately (stable sort on the
// clamped position). Normalizing an already-normalized layout is a no-op up
// to that ordering.
func Normalize(l Layout, cols int) Layout {
	if cols < 1 {
		cols = 1
	}

	clamped := make(Layout, 0, len(l))
	for _, it := range l {
		clamped = append(clamped, clamp(it, cols))
	}
	slices.SortStableFunc(clamped, func(a, b Item) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})

	g := grid.New(cols)
	out := make(Layout, 0, len(clamped))
	for _, it := range clamped {
		if !g.CanPlace(it.X, it.Y, it.W, it.H) {
			it.X, it.Y = g.FirstFit(it.W, it.H)
		}
		g.Mark(it.X, it.Y, it.W, it.H)
		out = append(out, it)
	}
	return out
}

// clamp forces a single item into bounds. A minimum width wider than the
// tier is capped at the column count, otherwise no x position could satisfy
// both constraints.
func clamp(it Item, cols int) Item {
	minW, minH := it.minSize()
	if minW > cols {
		minW = cols
	}

	if it.W > cols {
		it.W = cols
	}
	if it.W < minW {
		it.W = minW
	}
	if it.H < minH {
		it.H = minH
	}

	if it.X > cols-it.W {
		it.X = cols - it.W
	}
	if it.X < 0 {
		it.X = 0
	}
	if it.Y < 0 {
		it.Y = 0
	}
	return it
}
