package layout

import (
	"github.com/dashgrid/dashgrid/pkg/breakpoint"
	"github.com/dashgrid/dashgrid/pkg/grid"
)

// Auto-layout sizing. The first item (the "hero") gets a larger footprint;
// every fifth item after it gets a wide block to break up the grid visually.
const (
	heroHeight = 2
	wideEvery  = 5

	// CuratedMinCols is the narrowest tier a curated template applies to.
	// Templates are authored for the widest tier; below this the auto
	// heuristic takes over.
	CuratedMinCols = 4
)

// Generate produces the default layout for one tier. The curated path is
// taken when a template is given and the tier is wide enough; otherwise the
// auto heuristic runs. Output is deterministic: one entry per input id, in
// a stable order, non-overlapping and within column bounds.
func Generate(ids []string, cols int, tpl *Template) Layout {
	if cols < 1 {
		cols = 1
	}
	if tpl != nil && len(tpl.Slots) > 0 && cols >= CuratedMinCols {
		return curated(ids, cols, tpl)
	}
	return auto(ids, cols)
}

// GenerateAll produces default layouts for every breakpoint tier. The
// template, if any, only applies to the widest tier.
func GenerateAll(ids []string, tpl *Template) Responsive {
	widest := breakpoint.Widest().Name
	out := make(Responsive)
	for _, tier := range breakpoint.Tiers() {
		t := tpl
		if tier.Name != widest {
			t = nil
		}
		out[tier.Name] = Generate(ids, tier.Cols, t)
	}
	return out
}

// curated places template slots first (matching each slot against item ids
// by filename suffix, first unclaimed match wins), then packs every
// unmatched item 1x1 starting from the row below the curated block.
func curated(ids []string, cols int, tpl *Template) Layout {
	g := grid.New(cols)
	claimed := make(map[string]bool, len(ids))
	out := make(Layout, 0, len(ids))

	for _, slot := range tpl.Slots {
		for _, id := range ids {
			if claimed[id] || !slot.matches(id) {
				continue
			}
			claimed[id] = true
			g.Mark(slot.X, slot.Y, slot.W, slot.H)
			out = append(out, Item{ID: id, X: slot.X, Y: slot.Y, W: slot.W, H: slot.H, MinW: 1, MinH: 1})
			break
		}
	}

	floor := tpl.maxExtent()
	for _, id := range ids {
		if claimed[id] {
			continue
		}
		x, y := g.FirstFitFrom(1, 1, floor)
		g.Mark(x, y, 1, 1)
		out = append(out, Item{ID: id, X: x, Y: y, W: 1, H: 1, MinW: 1, MinH: 1})
	}
	return out
}

// auto lays items out hero-first on a fresh grid. Each placement claims the
// full height of the row band it lands in, so a 1x1 item never tucks into
// the space beside a taller neighbor: bands stay rectangular and the reading
// order stays row by row.
func auto(ids []string, cols int) Layout {
	if cols <= 1 {
		return stack(ids)
	}

	g := grid.New(cols)
	bands := make(map[int]int) // band top row -> band height
	out := make(Layout, 0, len(ids))

	for i, id := range ids {
		w, h := autoSize(i, cols)
		x, y := g.FirstFit(w, h)

		band := bands[y]
		if h > band {
			band = h
			bands[y] = band
		}
		g.Mark(x, y, w, band)

		out = append(out, Item{ID: id, X: x, Y: y, W: w, H: h, MinW: 1, MinH: 1})
	}
	return out
}

// autoSize returns the footprint for the item at the given position.
func autoSize(i, cols int) (w, h int) {
	wide := min(2, cols)
	switch {
	case i == 0:
		return wide, heroHeight
	case i%wideEvery == 0:
		return wide, 1
	default:
		return 1, 1
	}
}

// stack is the single-column path: items in one vertical run, hero double
// height, no horizontal gaps.
func stack(ids []string) Layout {
	out := make(Layout, 0, len(ids))
	y := 0
	for i, id := range ids {
		h := 1
		if i == 0 {
			h = heroHeight
		}
		out = append(out, Item{ID: id, X: 0, Y: y, W: 1, H: h, MinW: 1, MinH: 1})
		y += h
	}
	return out
}
