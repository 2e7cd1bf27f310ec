package layout

import "testing"

func TestDegenerateCollapsedColumn(t *testing.T) {
	// Five items all at x=0 width 1 under four columns: the classic broken
	// persisted state.
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 1, H: 1},
		{ID: "b", X: 0, Y: 1, W: 1, H: 1},
		{ID: "c", X: 0, Y: 2, W: 1, H: 1},
		{ID: "d", X: 0, Y: 3, W: 1, H: 1},
		{ID: "e", X: 0, Y: 4, W: 1, H: 1},
	}
	if !IsDegenerate(l, 4) {
		t.Error("collapsed single-column layout must be degenerate")
	}
}

func TestDegenerateSingleItemAtOrigin(t *testing.T) {
	// One lone 1x1 item is fine - the collapse check needs more than one.
	l := Layout{{ID: "a", X: 0, Y: 0, W: 1, H: 1}}
	if IsDegenerate(l, 4) {
		t.Error("single item should never be degenerate")
	}
}

func TestDegenerateOutOfBounds(t *testing.T) {
	cases := []struct {
		name string
		item Item
	}{
		{"negative x", Item{ID: "a", X: -1, Y: 0, W: 1, H: 1}},
		{"past last column", Item{ID: "a", X: 3, Y: 0, W: 2, H: 1}},
	}
	for _, c := range cases {
		if !IsDegenerate(Layout{c.item}, 4) {
			t.Errorf("%s: should be degenerate", c.name)
		}
	}
}

func TestDegenerateEffectiveStack(t *testing.T) {
	// Wide viewport, items scattered across x but one per row: reads as a
	// single-column stack.
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 1, H: 1},
		{ID: "b", X: 1, Y: 1, W: 1, H: 1},
		{ID: "c", X: 2, Y: 2, W: 1, H: 1},
		{ID: "d", X: 3, Y: 3, W: 1, H: 1},
		{ID: "e", X: 0, Y: 4, W: 1, H: 1},
	}
	if !IsDegenerate(l, 4) {
		t.Error("one-item-per-row staircase must be degenerate on a wide tier")
	}
}

func TestDegenerateRatioNeedsEnoughRows(t *testing.T) {
	// Two occupied rows are below the row threshold even when every row has
	// a single occupant.
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 1},
		{ID: "b", X: 1, Y: 1, W: 1, H: 1},
		{ID: "c", X: 2, Y: 0, W: 1, H: 1},
	}
	// Rows: 0 has two items, 1 has one. Not degenerate.
	if IsDegenerate(l, 3) {
		t.Error("two occupied rows with shared rows should pass")
	}
}

func TestDegenerateNarrowTiersExempt(t *testing.T) {
	// Stacking is the expected shape for one- and two-column tiers.
	l := Layout{
		{ID: "a", X: 0, Y: 0, W: 1, H: 1},
		{ID: "b", X: 0, Y: 1, W: 1, H: 1},
		{ID: "c", X: 0, Y: 2, W: 1, H: 1},
	}
	if IsDegenerate(l, 1) {
		t.Error("a single-column tier legitimately stacks")
	}
}

func TestDegenerateHealthyGrid(t *testing.T) {
	l := Generate(itemIDs(8), 4, nil)
	if IsDegenerate(l, 4) {
		t.Error("generated default layout flagged as degenerate")
	}
}

func TestDegenerateEmpty(t *testing.T) {
	if IsDegenerate(nil, 4) {
		t.Error("empty layout is not degenerate")
	}
}
