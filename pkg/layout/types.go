package layout

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Item - One Positioned Chart
// =============================================================================

// Item is a single chart placed on the grid. Identity is the ID; geometry is
// in grid cells, not pixels.
type Item struct {
	ID string `json:"id" bson:"id"`

	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
	W int `json:"w" bson:"w"`
	H int `json:"h" bson:"h"`

	// MinW and MinH are the smallest size the user may resize this item to.
	// Zero means unconstrained (effectively 1).
	MinW int `json:"min_w,omitempty" bson:"min_w,omitempty"`
	MinH int `json:"min_h,omitempty" bson:"min_h,omitempty"`
}

// minSize returns the effective minimum dimensions, never below 1.
func (it Item) minSize() (w, h int) {
	w, h = it.MinW, it.MinH
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Intersects reports whether the rectangles of two items overlap.
func (it Item) Intersects(other Item) bool {
	return it.X < other.X+other.W && other.X < it.X+it.W &&
		it.Y < other.Y+other.H && other.Y < it.Y+it.H
}

// =============================================================================
// Layout - One Tier
// =============================================================================

// Layout is the ordered set of items for a single breakpoint tier.
type Layout []Item

// IDs returns the item ids in layout order.
func (l Layout) IDs() []string {
	out := make([]string, len(l))
	for i, it := range l {
		out[i] = it.ID
	}
	return out
}

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Validate checks the layout invariants for the given column count:
// pairwise non-overlapping rectangles, all within bounds, all at least
// their minimum size.
func (l Layout) Validate(cols int) error {
	for i, it := range l {
		minW, minH := it.minSize()
		if it.W < minW || it.H < minH {
			return fmt.Errorf("item %s: size %dx%d below minimum %dx%d", it.ID, it.W, it.H, minW, minH)
		}
		if it.X < 0 || it.Y < 0 || it.X+it.W > cols {
			return fmt.Errorf("item %s: rect (%d,%d,%d,%d) outside %d columns", it.ID, it.X, it.Y, it.W, it.H, cols)
		}
		for _, other := range l[i+1:] {
			if it.Intersects(other) {
				return fmt.Errorf("items %s and %s overlap", it.ID, other.ID)
			}
		}
	}
	return nil
}

// =============================================================================
// Responsive - All Tiers
// =============================================================================

// Responsive maps breakpoint tier names to their layouts. It is the unit of
// persistence: every write is a whole-Responsive overwrite, never a partial
// update.
type Responsive map[string]Layout

// Clone returns a deep copy.
func (r Responsive) Clone() Responsive {
	if r == nil {
		return nil
	}
	out := make(Responsive, len(r))
	for tier, l := range r {
		out[tier] = l.Clone()
	}
	return out
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalResponsive serializes layouts to pretty-printed JSON bytes.
func MarshalResponsive(r Responsive) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalResponsive deserializes JSON bytes into a Responsive. Only
// structural problems are errors; semantically broken geometry is accepted
// here and repaired downstream by Normalize/Patch, so a corrupted persisted
// state degrades to regeneration instead of failing the load.
func UnmarshalResponsive(data []byte) (Responsive, error) {
	var r Responsive
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal layouts: %w", err)
	}
	return r, nil
}
