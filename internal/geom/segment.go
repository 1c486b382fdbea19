package geom

// SegmentIntersect returns the parametric position t along p→p2 where it
// crosses q→q2, and whether such a crossing exists with both parameters in
// [0,1]. Parallel segments never report a crossing.
func SegmentIntersect(p, p2, q, q2 Vec2) (float64, bool) {
	r := p2.Sub(p)
	s := q2.Sub(q)
	denom := Det(r, s)
	if denom > -Epsilon*Epsilon && denom < Epsilon*Epsilon {
		return 0, false
	}
	qp := q.Sub(p)
	t := Det(qp, s) / denom
	u := Det(qp, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// ClosestOnSegment returns the point of segment a→b nearest to p.
func ClosestOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	l := ab.LenSq()
	if l <= Epsilon*Epsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / l
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Vec2
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand returns the smallest rectangle containing r and p.
func (r Rect) Expand(p Vec2) Rect {
	if p.X < r.Min.X {
		r.Min.X = p.X
	}
	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	}
	if p.X > r.Max.X {
		r.Max.X = p.X
	}
	if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}
	return r
}
