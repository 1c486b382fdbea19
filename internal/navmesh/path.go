package navmesh

import (
	"container/heap"
	"math"

	"github.com/l1jgo/arena/internal/geom"
)

type openItem struct {
	poly  int
	f     float64
	index int
}

type openSet []*openItem

func (s openSet) Len() int { return len(s) }
func (s openSet) Less(i, j int) bool {
	if s[i].f != s[j].f {
		return s[i].f < s[j].f
	}
	return s[i].poly < s[j].poly
}
func (s openSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}
func (s *openSet) Push(x any) {
	it := x.(*openItem)
	it.index = len(*s)
	*s = append(*s, it)
}
func (s *openSet) Pop() any {
	old := *s
	n := len(old)
	it := old[n-1]
	*s = old[:n-1]
	return it
}

type portal struct {
	left, right geom.Vec2
}

// SearchPath returns a polyline from start to end across the mesh. Both ends
// are snapped with Sample(maxSample); the result is empty when either end is
// off the mesh or the two polygons are not connected.
func (m *Mesh) SearchPath(start, end geom.Vec2, maxSample float64) []geom.Vec2 {
	s, ok := m.Sample(start, maxSample)
	if !ok {
		return nil
	}
	e, ok := m.Sample(end, maxSample)
	if !ok {
		return nil
	}
	sp, ep := m.Locate(s), m.Locate(e)
	if sp < 0 || ep < 0 {
		return nil
	}
	if sp == ep {
		return []geom.Vec2{s, e}
	}
	corridor := m.astar(sp, ep, s, e)
	if corridor == nil {
		return nil
	}
	portals := make([]portal, 0, len(corridor)+1)
	portals = append(portals, portal{s, s})
	for i := 0; i+1 < len(corridor); i++ {
		for _, n := range m.polys[corridor[i]].neighbors {
			if n.poly == corridor[i+1] {
				portals = append(portals, portal{n.left, n.right})
				break
			}
		}
	}
	portals = append(portals, portal{e, e})
	return funnel(portals)
}

// astar searches the polygon graph. Edge cost is the distance between portal
// midpoints; the heuristic is straight-line distance to the goal point.
func (m *Mesh) astar(start, goal int, from, to geom.Vec2) []int {
	n := len(m.polys)
	g := make([]float64, n)
	came := make([]int, n)
	at := make([]geom.Vec2, n)
	closed := make([]bool, n)
	for i := range g {
		g[i] = math.Inf(1)
		came[i] = -1
	}
	g[start] = 0
	at[start] = from
	open := &openSet{}
	heap.Push(open, &openItem{poly: start, f: from.Dist(to)})
	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem).poly
		if cur == goal {
			break
		}
		if closed[cur] {
			continue
		}
		closed[cur] = true
		for _, nb := range m.polys[cur].neighbors {
			if closed[nb.poly] {
				continue
			}
			mid := nb.left.Add(nb.right).Scale(0.5)
			cost := g[cur] + at[cur].Dist(mid)
			if nb.poly == goal {
				cost += mid.Dist(to)
			}
			if cost < g[nb.poly] {
				g[nb.poly] = cost
				came[nb.poly] = cur
				at[nb.poly] = mid
				heap.Push(open, &openItem{poly: nb.poly, f: cost + mid.Dist(to)})
			}
		}
	}
	if came[goal] < 0 {
		return nil
	}
	var rev []int
	for p := goal; p >= 0; p = came[p] {
		rev = append(rev, p)
		if p == start {
			break
		}
	}
	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}
	return rev
}

// funnel pulls the string through the portal corridor. The first and last
// portals are degenerate (start and end points).
func funnel(portals []portal) []geom.Vec2 {
	apex := portals[0].left
	left, right := portals[0].left, portals[0].right
	apexIdx, leftIdx, rightIdx := 0, 0, 0
	path := []geom.Vec2{apex}

	for i := 1; i < len(portals); i++ {
		pl, pr := portals[i].left, portals[i].right

		// Tighten the right leg.
		if geom.Cross(apex, right, pr) >= 0 {
			if geom.Near(apex, right, geom.Epsilon) || geom.Cross(apex, left, pr) < 0 {
				right, rightIdx = pr, i
			} else {
				// Right crossed over left: left becomes the new apex.
				apex, apexIdx = left, leftIdx
				path = appendPoint(path, apex)
				left, right = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx
				continue
			}
		}

		// Tighten the left leg.
		if geom.Cross(apex, left, pl) <= 0 {
			if geom.Near(apex, left, geom.Epsilon) || geom.Cross(apex, right, pl) > 0 {
				left, leftIdx = pl, i
			} else {
				apex, apexIdx = right, rightIdx
				path = appendPoint(path, apex)
				left, right = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx
				continue
			}
		}
	}
	return appendPoint(path, portals[len(portals)-1].left)
}

func appendPoint(path []geom.Vec2, p geom.Vec2) []geom.Vec2 {
	if len(path) > 0 && geom.Near(path[len(path)-1], p, geom.Epsilon) {
		return path
	}
	return append(path, p)
}

// Offset nudges every interior waypoint by delta along the bisector of its
// incoming and outgoing directions, away from the side the path turns
// toward, so agents keep clear of the wall corner the funnel wrapped around.
// Waypoints adjacent to a near-zero-length edge are left untouched. The path
// is modified in place and returned.
func Offset(path []geom.Vec2, delta float64) []geom.Vec2 {
	if len(path) < 3 || delta == 0 {
		return path
	}
	orig := append([]geom.Vec2(nil), path...)
	for i := 1; i+1 < len(orig); i++ {
		in := orig[i].Sub(orig[i-1])
		out := orig[i+1].Sub(orig[i])
		if in.Len() <= geom.Epsilon || out.Len() <= geom.Epsilon {
			continue
		}
		bis := in.Normalize().Sub(out.Normalize())
		if bis.Len() <= geom.Epsilon {
			continue // straight through
		}
		path[i] = orig[i].Add(bis.Normalize().Scale(delta))
	}
	return path
}

// Length returns the polyline length.
func Length(path []geom.Vec2) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i].Dist(path[i-1])
	}
	return total
}
