// Package spatial provides the uniform-grid broad-phase accelerator used
// by the collision system: preallocated row-major cell slices addressed
// by index, not pointers, to keep the structure cache-friendly and
// allocation-free per tick. Cell coordinates are signed so Grid can
// guard every index explicitly instead of relying on unsigned
// wraparound around negative neighbour indices.
package spatial

import "math"

// Grid is a fixed uniform grid over the 1920×1080 world rectangle:
// 64px cells, 31×17 cells (the extra column/row absorbs entities whose
// AABB max exactly touches the world edge).
type Grid struct {
	cellSize   float64
	cols, rows int
	cells      [][]uint32
}

const (
	WorldWidth  = 1920.0
	WorldHeight = 1080.0
	CellSize    = 64.0
)

// NewGrid returns an empty grid sized to the world rectangle.
func NewGrid() *Grid {
	cols := int(math.Floor(WorldWidth/CellSize)) + 1
	rows := int(math.Floor(WorldHeight/CellSize)) + 1
	cells := make([][]uint32, cols*rows)
	return &Grid{cellSize: CellSize, cols: cols, rows: rows, cells: cells}
}

// Dimensions returns the grid's column and row counts.
func (g *Grid) Dimensions() (cols, rows int) { return g.cols, g.rows }

// Clear empties every cell, retaining backing capacity.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *Grid) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *Grid) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}

func (g *Grid) index(col, row int) int { return row*g.cols + col }

// InsertAABB adds entity to every cell its world-space AABB
// [minX,minY]..[maxX,maxY] overlaps.
func (g *Grid) InsertAABB(entity uint32, minX, minY, maxX, maxY float64) {
	c0 := g.clampCol(int(math.Floor(minX / g.cellSize)))
	c1 := g.clampCol(int(math.Floor(maxX / g.cellSize)))
	r0 := g.clampRow(int(math.Floor(minY / g.cellSize)))
	r1 := g.clampRow(int(math.Floor(maxY / g.cellSize)))

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			idx := g.index(col, row)
			g.cells[idx] = append(g.cells[idx], entity)
		}
	}
}

// Cell returns the entities currently registered in cell (col,row). The
// returned slice is reused internally; callers must not retain it across
// the next Clear().
func (g *Grid) Cell(col, row int) []uint32 {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[g.index(col, row)]
}

// ForwardNeighbors returns the four forward-neighbour cells of (col,row)
// used by the collision system's pair-dedup sweep: (col+1,row),
// (col,row+1), (col+1,row+1), (col-1,row+1). This pattern guarantees each
// unordered pair of cells is considered at most once across the whole
// grid sweep.
func (g *Grid) ForwardNeighbors(col, row int) [][2]int {
	candidates := [][2]int{
		{col + 1, row},
		{col, row + 1},
		{col + 1, row + 1},
		{col - 1, row + 1},
	}
	out := candidates[:0]
	for _, c := range candidates {
		if c[0] >= 0 && c[0] < g.cols && c[1] >= 0 && c[1] < g.rows {
			out = append(out, c)
		}
	}
	return out
}

// PopulatedCells invokes f once for every (col,row) whose cell currently
// holds at least one entity.
func (g *Grid) PopulatedCells(f func(col, row int)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if len(g.Cell(col, row)) > 0 {
				f(col, row)
			}
		}
	}
}
