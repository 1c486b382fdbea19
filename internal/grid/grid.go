// Package grid implements the uniform spatial hashes used for visibility,
// neighborhood and enemy-search queries. Accessed only from the tick
// goroutine, so there are no locks.
package grid

import (
	"sort"

	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
)

// NoCell is the index latched before an entity has been enrolled.
const NoCell = -1

// Grid partitions the level rectangle into square cells. Each bucket is kept
// sorted by EntityID so queries return a reproducible order.
type Grid struct {
	name     string
	cellSize float64
	origin   geom.Vec2
	cols     int
	rows     int
	buckets  [][]ecs.EntityID
	scratch  []ecs.EntityID
}

// New creates a grid covering width × height world units from origin.
func New(name string, origin geom.Vec2, width, height, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	return &Grid{
		name:     name,
		cellSize: cellSize,
		origin:   origin,
		cols:     cols,
		rows:     rows,
		buckets:  make([][]ecs.EntityID, cols*rows),
	}
}

func (g *Grid) Name() string      { return g.name }
func (g *Grid) CellSize() float64 { return g.cellSize }
func (g *Grid) Cols() int         { return g.cols }
func (g *Grid) Rows() int         { return g.rows }
func (g *Grid) CellCount() int    { return len(g.buckets) }

func (g *Grid) clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Coords returns the (column, row) of the cell containing (x, y), clamped to
// the grid.
func (g *Grid) Coords(x, y float64) (int, int) {
	cx := int((x - g.origin.X) / g.cellSize)
	cy := int((y - g.origin.Y) / g.cellSize)
	if x < g.origin.X {
		cx = -1
	}
	if y < g.origin.Y {
		cy = -1
	}
	return g.clamp(cx, g.cols), g.clamp(cy, g.rows)
}

// CellIndex returns the flat cell index for a position.
func (g *Grid) CellIndex(x, y float64) int {
	cx, cy := g.Coords(x, y)
	return cy*g.cols + cx
}

// CellRect returns the world-space rectangle of a cell.
func (g *Grid) CellRect(idx int) geom.Rect {
	cx := idx % g.cols
	cy := idx / g.cols
	min := geom.Vec2{X: g.origin.X + float64(cx)*g.cellSize, Y: g.origin.Y + float64(cy)*g.cellSize}
	return geom.Rect{Min: min, Max: min.Add(geom.Vec2{X: g.cellSize, Y: g.cellSize})}
}

func (g *Grid) valid(idx int) bool { return idx >= 0 && idx < len(g.buckets) }

// Insert adds id to bucket idx.
func (g *Grid) Insert(id ecs.EntityID, idx int) {
	if !g.valid(idx) {
		return
	}
	b := g.buckets[idx]
	i := sort.Search(len(b), func(i int) bool { return b[i] >= id })
	if i < len(b) && b[i] == id {
		return
	}
	b = append(b, 0)
	copy(b[i+1:], b[i:])
	b[i] = id
	g.buckets[idx] = b
}

// Remove takes id out of bucket idx.
func (g *Grid) Remove(id ecs.EntityID, idx int) {
	if !g.valid(idx) {
		return
	}
	b := g.buckets[idx]
	i := sort.Search(len(b), func(i int) bool { return b[i] >= id })
	if i < len(b) && b[i] == id {
		g.buckets[idx] = append(b[:i], b[i+1:]...)
	}
}

// Move relocates id from oldIdx to newIdx. No-op when the cell is unchanged.
func (g *Grid) Move(id ecs.EntityID, oldIdx, newIdx int) {
	if oldIdx == newIdx {
		return
	}
	g.Remove(id, oldIdx)
	g.Insert(id, newIdx)
}

// ItemsAt returns the bucket of the cell containing (x, y). The slice is
// owned by the grid; callers verify real distances themselves.
func (g *Grid) ItemsAt(x, y float64) []ecs.EntityID {
	return g.buckets[g.CellIndex(x, y)]
}

// Bucket returns the bucket at a flat index.
func (g *Grid) Bucket(idx int) []ecs.EntityID {
	if !g.valid(idx) {
		return nil
	}
	return g.buckets[idx]
}

// AroundCells appends the indices of the 3×3 block centred on (x, y) to dst
// in ascending order.
func (g *Grid) AroundCells(dst []int, x, y float64) []int {
	cx, cy := g.Coords(x, y)
	for dy := -1; dy <= 1; dy++ {
		ny := cy + dy
		if ny < 0 || ny >= g.rows {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := cx + dx
			if nx < 0 || nx >= g.cols {
				continue
			}
			dst = append(dst, ny*g.cols+nx)
		}
	}
	return dst
}

// ItemsAround returns every entity in the 3×3 block centred on (x, y),
// sorted by id. The returned slice is reused by the next call.
func (g *Grid) ItemsAround(x, y float64) []ecs.EntityID {
	g.scratch = g.scratch[:0]
	var cells [9]int
	for _, idx := range g.AroundCells(cells[:0], x, y) {
		g.scratch = append(g.scratch, g.buckets[idx]...)
	}
	sort.Slice(g.scratch, func(i, j int) bool { return g.scratch[i] < g.scratch[j] })
	return g.scratch
}

// ItemsWithin returns every entity filed in a cell that overlaps the square of
// half-side r centred on (x, y), sorted by id. Unlike ItemsAround the block
// grows with r. The returned slice is reused by the next call.
func (g *Grid) ItemsWithin(x, y, r float64) []ecs.EntityID {
	g.scratch = g.scratch[:0]
	minX, minY := g.Coords(x-r, y-r)
	maxX, maxY := g.Coords(x+r, y+r)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			g.scratch = append(g.scratch, g.buckets[cy*g.cols+cx]...)
		}
	}
	sort.Slice(g.scratch, func(i, j int) bool { return g.scratch[i] < g.scratch[j] })
	return g.scratch
}

// Len returns the number of enrolled entities.
func (g *Grid) Len() int {
	n := 0
	for _, b := range g.buckets {
		n += len(b)
	}
	return n
}
