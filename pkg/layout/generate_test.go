package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/dashgrid/dashgrid/pkg/breakpoint"
)

func itemIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("cat-chart_%02d.png", i)
	}
	return ids
}

func findItem(t *testing.T, l Layout, id string) Item {
	t.Helper()
	for _, it := range l {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %s not in layout", id)
	return Item{}
}

func TestGenerateAutoFourItems(t *testing.T) {
	// Hero 2x2 up front, the rest flows into the free 1x1 cells row by row
	// without tucking under the hero's band.
	ids := itemIDs(4)
	l := Generate(ids, 4, nil)

	want := []Item{
		{ID: ids[0], X: 0, Y: 0, W: 2, H: 2, MinW: 1, MinH: 1},
		{ID: ids[1], X: 2, Y: 0, W: 1, H: 1, MinW: 1, MinH: 1},
		{ID: ids[2], X: 3, Y: 0, W: 1, H: 1, MinW: 1, MinH: 1},
		{ID: ids[3], X: 0, Y: 2, W: 1, H: 1, MinW: 1, MinH: 1},
	}
	if !reflect.DeepEqual([]Item(l), want) {
		t.Errorf("Generate(4 items, cols=4) =\n%+v\nwant\n%+v", l, want)
	}
}

func TestGenerateAutoWideItems(t *testing.T) {
	// Every fifth item (but never the hero's index) gets a wide block.
	ids := itemIDs(11)
	l := Generate(ids, 4, nil)

	for i, it := range l {
		wantW := 1
		if i == 0 || i%5 == 0 {
			wantW = 2
		}
		if it.W != wantW {
			t.Errorf("item %d: width %d, want %d", i, it.W, wantW)
		}
	}
	if l[0].H != 2 {
		t.Errorf("hero height %d, want 2", l[0].H)
	}
	if l[5].H != 1 || l[10].H != 1 {
		t.Error("wide items must be one row tall")
	}
	if err := l.Validate(4); err != nil {
		t.Errorf("generated layout invalid: %v", err)
	}
}

func TestGenerateSingleColumnStack(t *testing.T) {
	ids := itemIDs(4)
	l := Generate(ids, 1, nil)

	wantY := []int{0, 2, 3, 4}
	for i, it := range l {
		if it.X != 0 || it.W != 1 {
			t.Errorf("item %d: (x=%d,w=%d), want full-width column", i, it.X, it.W)
		}
		if it.Y != wantY[i] {
			t.Errorf("item %d: y=%d, want %d", i, it.Y, wantY[i])
		}
	}
	if l[0].H != 2 {
		t.Errorf("first stacked item height %d, want 2", l[0].H)
	}
}

func TestGenerateTwoColumnHero(t *testing.T) {
	// Hero width is capped at the column count.
	l := Generate(itemIDs(3), 2, nil)
	if l[0].W != 2 || l[0].H != 2 {
		t.Errorf("hero = %dx%d, want 2x2", l[0].W, l[0].H)
	}
	if err := l.Validate(2); err != nil {
		t.Errorf("invalid: %v", err)
	}
}

func TestGenerateCurated(t *testing.T) {
	reg := BuiltinRegistry()
	tpl, ok := reg.Template("all")
	if !ok {
		t.Fatal("builtin registry is missing the all category")
	}

	ids := []string{
		"all-dashboard_ejecutivo.png",
		"all-distribucion_sentimientos.png",
		"all-tendencia_mensual.png",
	}
	l := Generate(ids, 4, tpl)

	dash := findItem(t, l, "all-dashboard_ejecutivo.png")
	if dash.X != 0 || dash.Y != 0 || dash.W != 2 || dash.H != 2 {
		t.Errorf("curated dashboard at (%d,%d,%d,%d), want (0,0,2,2)", dash.X, dash.Y, dash.W, dash.H)
	}
	dist := findItem(t, l, "all-distribucion_sentimientos.png")
	if dist.X != 2 || dist.Y != 0 || dist.W != 2 || dist.H != 2 {
		t.Errorf("curated distribution at (%d,%d,%d,%d), want (2,0,2,2)", dist.X, dist.Y, dist.W, dist.H)
	}
	extra := findItem(t, l, "all-tendencia_mensual.png")
	if extra.X != 0 || extra.Y != 2 || extra.W != 1 || extra.H != 1 {
		t.Errorf("uncurated extra at (%d,%d,%d,%d), want (0,2,1,1)", extra.X, extra.Y, extra.W, extra.H)
	}
}

func TestGenerateCuratedIgnoredOnNarrowTiers(t *testing.T) {
	reg := BuiltinRegistry()
	tpl, _ := reg.Template("all")

	ids := []string{"all-dashboard_ejecutivo.png", "all-x.png"}
	l := Generate(ids, 2, tpl)

	// Below CuratedMinCols the auto heuristic must run: first item is a hero.
	if l[0].ID != ids[0] || l[0].H != 2 {
		t.Errorf("narrow tier should auto-layout, got %+v", l[0])
	}
}

func TestGenerateCuratedFirstMatchWins(t *testing.T) {
	tpl := &Template{Slots: []Slot{
		{Match: "a.png", X: 0, Y: 0, W: 2, H: 1},
		{Match: "a.png", X: 2, Y: 0, W: 2, H: 1},
	}}
	ids := []string{"cat-a.png"}
	l := Generate(ids, 4, tpl)

	if len(l) != 1 {
		t.Fatalf("got %d items, want 1", len(l))
	}
	if l[0].X != 0 {
		t.Errorf("item claimed by slot at x=%d, want the first slot (x=0)", l[0].X)
	}
}

func TestGenerateCompleteness(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 13, 40} {
		for _, cols := range []int{1, 2, 3, 4} {
			ids := itemIDs(n)
			l := Generate(ids, cols, nil)
			if len(l) != n {
				t.Errorf("n=%d cols=%d: %d entries", n, cols, len(l))
				continue
			}
			if err := l.Validate(cols); err != nil {
				t.Errorf("n=%d cols=%d: %v", n, cols, err)
			}
			if !reflect.DeepEqual(l.IDs(), ids) {
				t.Errorf("n=%d cols=%d: id order changed", n, cols)
			}
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	ids := itemIDs(9)
	a := Generate(ids, 4, nil)
	b := Generate(ids, 4, nil)
	if !reflect.DeepEqual(a, b) {
		t.Error("same inputs must produce identical layouts")
	}
}

func TestGenerateAll(t *testing.T) {
	reg := BuiltinRegistry()
	tpl, _ := reg.Template("all")
	ids := []string{"all-dashboard_ejecutivo.png", "all-distribucion_sentimientos.png", "all-c.png"}

	r := GenerateAll(ids, tpl)

	for _, tier := range breakpoint.Tiers() {
		l, ok := r[tier.Name]
		if !ok {
			t.Errorf("tier %s missing", tier.Name)
			continue
		}
		if err := l.Validate(tier.Cols); err != nil {
			t.Errorf("tier %s: %v", tier.Name, err)
		}
	}

	// Template only applies to the widest tier.
	widest := r[breakpoint.Widest().Name]
	if findItem(t, widest, ids[1]).X != 2 {
		t.Error("widest tier should honor the curated template")
	}
	md := r["md"]
	if md[0].H != 2 {
		t.Error("narrower tiers should use the auto heuristic")
	}
}
