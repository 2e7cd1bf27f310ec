package layout

import (
	"github.com/dashgrid/dashgrid/pkg/breakpoint"
	"github.com/dashgrid/dashgrid/pkg/grid"
)

// Patch reconciles a persisted tier layout with the current item set:
//
//  1. Persisted entries whose id is no longer current are discarded
//     (duplicates too, first occurrence wins).
//  2. The kept entries are normalized.
//  3. Every current item missing from the kept entries is placed 1x1 at the
//     first free fit, in current-item order, and appended.
//  4. If the combined result is degenerate, it is thrown away and the tier
//     is regenerated from scratch.
//
// The output's id set always equals the current id set exactly - no
// duplicates, no omissions, no overlaps.
func Patch(persisted Layout, ids []string, cols int, tpl *Template) Layout {
	if cols < 1 {
		cols = 1
	}

	current := make(map[string]bool, len(ids))
	for _, id := range ids {
		current[id] = true
	}

	kept := make(Layout, 0, len(persisted))
	seen := make(map[string]bool, len(persisted))
	for _, it := range persisted {
		if current[it.ID] && !seen[it.ID] {
			seen[it.ID] = true
			kept = append(kept, it)
		}
	}
	kept = Normalize(kept, cols)

	g := grid.New(cols)
	for _, it := range kept {
		g.Mark(it.X, it.Y, it.W, it.H)
	}

	out := kept
	for _, id := range ids {
		if seen[id] {
			continue
		}
		x, y := g.FirstFit(1, 1)
		g.Mark(x, y, 1, 1)
		out = append(out, Item{ID: id, X: x, Y: y, W: 1, H: 1, MinW: 1, MinH: 1})
	}

	if IsDegenerate(out, cols) {
		return Generate(ids, cols, tpl)
	}
	return out
}

// PatchAll reconciles a whole persisted Responsive against the current item
// set. Tiers absent from the persisted state are generated fresh. The
// template only applies to the widest tier, matching GenerateAll.
func PatchAll(persisted Responsive, ids []string, tpl *Template) Responsive {
	widest := breakpoint.Widest().Name
	out := make(Responsive)
	for _, tier := range breakpoint.Tiers() {
		t := tpl
		if tier.Name != widest {
			t = nil
		}
		if l, ok := persisted[tier.Name]; ok {
			out[tier.Name] = Patch(l, ids, tier.Cols, t)
		} else {
			out[tier.Name] = Generate(ids, tier.Cols, t)
		}
	}
	return out
}
