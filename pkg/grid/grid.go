// Package grid implements the occupancy grid used for dashboard packing.
//
// A Grid is a boolean matrix indexed by row then column. The column count is
// fixed when the grid is created; rows grow downward on demand, so a
// first-fit search for any width that fits the columns is guaranteed to
// terminate. Cells outside the current matrix are free.
package grid

// Grid tracks which cells of a column-bounded, vertically unbounded board
// are already covered.
type Grid struct {
	cols int
	rows [][]bool
}

// New creates an empty grid with the given column count.
// A column count below 1 is treated as 1.
func New(cols int) *Grid {
	if cols < 1 {
		cols = 1
	}
	return &Grid{cols: cols}
}

// Cols returns the fixed column count.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of materialized rows.
func (g *Grid) Rows() int { return len(g.rows) }

// Occupied reports whether the cell at (x, y) is covered.
// Out-of-range cells are free.
func (g *Grid) Occupied(x, y int) bool {
	if x < 0 || y < 0 || x >= g.cols || y >= len(g.rows) {
		return false
	}
	return g.rows[y][x]
}

// Mark covers the w×h rectangle whose top-left cell is (x, y), extending the
// matrix with empty rows as needed. Cells left of column 0 or right of the
// last column are ignored.
func (g *Grid) Mark(x, y, w, h int) {
	if w < 1 || h < 1 || y < 0 {
		return
	}
	g.grow(y + h)
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if xx >= 0 && xx < g.cols {
				g.rows[yy][xx] = true
			}
		}
	}
}

// FirstFit returns the top-most, then left-most position whose w×h rectangle
// is entirely free. Widths larger than the column count are clamped so the
// search always terminates.
func (g *Grid) FirstFit(w, h int) (x, y int) {
	return g.FirstFitFrom(w, h, 0)
}

// FirstFitFrom is FirstFit with the row scan starting at startRow. The
// curated placement path uses it to keep uncurated leftovers below the
// authored block.
func (g *Grid) FirstFitFrom(w, h, startRow int) (x, y int) {
	if w < 1 {
		w = 1
	}
	if w > g.cols {
		w = g.cols
	}
	if h < 1 {
		h = 1
	}
	if startRow < 0 {
		startRow = 0
	}
	for y = startRow; ; y++ {
		for x = 0; x <= g.cols-w; x++ {
			if g.CanPlace(x, y, w, h) {
				return x, y
			}
		}
	}
}

// CanPlace reports whether the w×h rectangle at (x, y) lies within the
// column bounds and is entirely free.
func (g *Grid) CanPlace(x, y, w, h int) bool {
	if x < 0 || y < 0 || x+w > g.cols {
		return false
	}
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if g.Occupied(xx, yy) {
				return false
			}
		}
	}
	return true
}

// grow ensures at least n rows exist.
func (g *Grid) grow(n int) {
	for len(g.rows) < n {
		g.rows = append(g.rows, make([]bool, g.cols))
	}
}
