// Package navmesh answers path, boundary and sampling queries over a baked
// navigation mesh made of convex polygons.
package navmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/l1jgo/arena/internal/geom"
)

// ErrInvalidMesh is returned when the polygon data cannot form a mesh.
var ErrInvalidMesh = errors.New("navmesh: invalid mesh")

// Edge is a boundary segment of the walkable region.
type Edge struct {
	A, B geom.Vec2
}

type neighbor struct {
	poly  int
	left  geom.Vec2
	right geom.Vec2
}

// Polygon is one convex walkable cell, wound counter-clockwise.
type Polygon struct {
	Verts     []geom.Vec2
	Center    geom.Vec2
	Bounds    geom.Rect
	neighbors []neighbor
}

// Mesh is an immutable navmesh. Safe to share between games.
type Mesh struct {
	verts    []geom.Vec2
	polys    []Polygon
	boundary []Edge
	bounds   geom.Rect
}

type edgeKey struct{ a, b int }

// New builds a mesh from a shared vertex array and polygons given as vertex
// index lists. Winding is normalised to counter-clockwise; edges shared by two
// polygons become portals, all others are boundary edges.
func New(verts []geom.Vec2, polys [][]int) (*Mesh, error) {
	if len(verts) < 3 || len(polys) == 0 {
		return nil, fmt.Errorf("%w: need at least one polygon", ErrInvalidMesh)
	}
	m := &Mesh{verts: verts, polys: make([]Polygon, len(polys))}
	rings := make([][]int, len(polys))
	for i, poly := range polys {
		if len(poly) < 3 {
			return nil, fmt.Errorf("%w: polygon %d has %d vertices", ErrInvalidMesh, i, len(poly))
		}
		ring := append([]int(nil), poly...)
		for _, vi := range ring {
			if vi < 0 || vi >= len(verts) {
				return nil, fmt.Errorf("%w: polygon %d references vertex %d", ErrInvalidMesh, i, vi)
			}
		}
		if signedArea(verts, ring) < 0 {
			for l, r := 0, len(ring)-1; l < r; l, r = l+1, r-1 {
				ring[l], ring[r] = ring[r], ring[l]
			}
		}
		rings[i] = ring
		p := &m.polys[i]
		p.Verts = make([]geom.Vec2, len(ring))
		p.Bounds = geom.Rect{Min: verts[ring[0]], Max: verts[ring[0]]}
		for k, vi := range ring {
			p.Verts[k] = verts[vi]
			p.Center = p.Center.Add(verts[vi])
			p.Bounds = p.Bounds.Expand(verts[vi])
		}
		p.Center = p.Center.Scale(1 / float64(len(ring)))
		if i == 0 {
			m.bounds = p.Bounds
		} else {
			m.bounds = m.bounds.Expand(p.Bounds.Min).Expand(p.Bounds.Max)
		}
	}

	// Directed edge a→b belongs to exactly one CCW polygon; its twin b→a, if
	// present, is the neighbor across the portal.
	owner := make(map[edgeKey]int)
	for i, ring := range rings {
		for k := range ring {
			a, b := ring[k], ring[(k+1)%len(ring)]
			owner[edgeKey{a, b}] = i
		}
	}
	for i, ring := range rings {
		for k := range ring {
			a, b := ring[k], ring[(k+1)%len(ring)]
			if j, ok := owner[edgeKey{b, a}]; ok && j != i {
				// Leaving polygon i across a→b: interior is to the left of
				// a→b, so facing outward b is on the left.
				m.polys[i].neighbors = append(m.polys[i].neighbors, neighbor{
					poly: j, left: verts[b], right: verts[a],
				})
				continue
			}
			m.boundary = append(m.boundary, Edge{A: verts[a], B: verts[b]})
		}
	}
	return m, nil
}

func signedArea(verts []geom.Vec2, ring []int) float64 {
	area := 0.0
	for k := range ring {
		a, b := verts[ring[k]], verts[ring[(k+1)%len(ring)]]
		area += geom.Det(a, b)
	}
	return area / 2
}

func (m *Mesh) Polygons() []Polygon { return m.polys }
func (m *Mesh) Boundary() []Edge    { return m.boundary }
func (m *Mesh) Bounds() geom.Rect   { return m.bounds }

func (p *Polygon) contains(pt geom.Vec2) bool {
	if !p.Bounds.Contains(pt) {
		return false
	}
	for k := range p.Verts {
		a, b := p.Verts[k], p.Verts[(k+1)%len(p.Verts)]
		if geom.Cross(a, b, pt) < -geom.Epsilon {
			return false
		}
	}
	return true
}

// Locate returns the polygon containing pt, or -1.
func (m *Mesh) Locate(pt geom.Vec2) int {
	for i := range m.polys {
		if m.polys[i].contains(pt) {
			return i
		}
	}
	return -1
}

// Contains reports whether pt lies on the walkable surface.
func (m *Mesh) Contains(pt geom.Vec2) bool { return m.Locate(pt) >= 0 }

// Sample snaps pt to the walkable surface. Points already inside are returned
// unchanged; otherwise the nearest boundary point, nudged inward, is returned
// when it lies within maxDist.
func (m *Mesh) Sample(pt geom.Vec2, maxDist float64) (geom.Vec2, bool) {
	if m.Contains(pt) {
		return pt, true
	}
	best := geom.Vec2{}
	bestPoly := -1
	bestDist := math.Inf(1)
	for i := range m.polys {
		p := &m.polys[i]
		for k := range p.Verts {
			c := geom.ClosestOnSegment(pt, p.Verts[k], p.Verts[(k+1)%len(p.Verts)])
			if d := c.DistSq(pt); d < bestDist {
				bestDist, best, bestPoly = d, c, i
			}
		}
	}
	if bestPoly < 0 || math.Sqrt(bestDist) > maxDist {
		return pt, false
	}
	// Nudge toward the polygon centre so the sample is strictly inside.
	center := m.polys[bestPoly].Center
	dir := center.Sub(best)
	if l := dir.Len(); l > geom.Epsilon {
		step := math.Min(l, 1e-3)
		best = best.Add(dir.Scale(step / l))
	}
	return best, true
}

// IntersectBoundary returns the smallest t in [0,1] at which the segment a→b
// crosses a boundary edge. hit is false (and t = 1) when the segment stays on
// the walkable surface.
func (m *Mesh) IntersectBoundary(a, b geom.Vec2) (float64, bool) {
	best := 1.0
	hit := false
	for _, e := range m.boundary {
		if t, ok := geom.SegmentIntersect(a, b, e.A, e.B); ok && t < best+geom.Epsilon {
			if !hit || t < best {
				best = t
			}
			hit = true
		}
	}
	return best, hit
}

// ClipSegment moves b back to the first boundary crossing of a→b, minus
// margin along the segment. Segments that stay inside are returned as is.
func (m *Mesh) ClipSegment(a, b geom.Vec2, margin float64) (geom.Vec2, bool) {
	t, hit := m.IntersectBoundary(a, b)
	if !hit {
		return b, false
	}
	d := b.Sub(a)
	l := d.Len()
	if l <= geom.Epsilon {
		return a, true
	}
	dist := t*l - margin
	if dist < 0 {
		dist = 0
	}
	return a.Add(d.Scale(dist / l)), true
}
