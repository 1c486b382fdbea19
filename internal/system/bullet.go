package system

import (
	"math"
	"time"

	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/handler"
	"github.com/l1jgo/arena/internal/world"
)

// BulletSystem flies projectiles along their heading. A bullet is swept
// over its step each tick and hits the first hostile body it touches; it is
// removed on hit or once its range is used up. Phase 4 (Move), after
// actors have moved.
type BulletSystem struct {
	ws    *world.State
	near  []ecs.EntityID
	queue []ecs.EntityID
}

func NewBulletSystem(ws *world.State) *BulletSystem {
	return &BulletSystem{ws: ws}
}

func (s *BulletSystem) Phase() coresys.Phase { return coresys.PhaseMove }

func (s *BulletSystem) Update(dt time.Duration) {
	sec := world.Seconds(dt)
	s.queue = s.ws.Bullets.Snapshot(s.queue)
	for _, id := range s.queue {
		if s.ws.ECS.PendingDestruction(id) {
			continue
		}
		s.fly(id, sec)
	}
}

func (s *BulletSystem) fly(id ecs.EntityID, sec float64) {
	ws := s.ws
	b, _ := ws.Bullet.Get(id)
	pos, _ := ws.Position.Get(id)

	step := math.Min(b.Speed*sec, b.Range-b.Traveled)
	if step < 0 {
		step = 0
	}
	dir := geom.FromAngle(b.Direction)
	end := pos.Add(dir.Scale(step))

	if target := s.firstHit(b.Owner, *pos, end, b.Radius, id); target != 0 {
		handler.BulletHit(id, target, ws)
		s.remove(id)
		return
	}

	*pos = end
	b.Traveled += step
	if b.Traveled >= b.Range-geom.Epsilon {
		s.remove(id)
		return
	}
	ws.Host.BulletUpdate(ws.BulletSnapshot(id))
}

// firstHit returns the hostile actor met earliest along a→b, ties by id.
func (s *BulletSystem) firstHit(owner ecs.EntityID, a, b geom.Vec2, radius float64, bullet ecs.EntityID) ecs.EntityID {
	ws := s.ws
	bl, _ := ws.Bullet.Get(bullet)
	mid := a.Add(b).Scale(0.5)
	s.near = append(s.near[:0], ws.Neighborhood.ItemsAround(mid.X, mid.Y)...)

	best, bestT := ecs.EntityID(0), math.Inf(1)
	for _, other := range s.near {
		if other == owner || !ws.Action.Has(other) || ws.IsDead(other) {
			continue
		}
		team, ok := ws.Team.Get(other)
		if !ok || bl.Team.Friendly(*team) {
			continue
		}
		op, _ := ws.Position.Get(other)
		c := geom.ClosestOnSegment(*op, a, b)
		if c.Dist(*op) > radius+ws.RadiusOf(other) {
			continue
		}
		if t := c.Dist(a); t < bestT {
			best, bestT = other, t
		}
	}
	return best
}

func (s *BulletSystem) remove(id ecs.EntityID) {
	s.ws.Despawn(id)
	s.ws.Host.BulletRemove(id)
}
