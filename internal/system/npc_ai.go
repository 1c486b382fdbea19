package system

import (
	"math"
	"time"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/handler"
	"github.com/l1jgo/arena/internal/scripting"
	"github.com/l1jgo/arena/internal/world"
)

// MonsterAISystem picks what each idle monster does next: chase the nearest
// known enemy, wander around its spawn point, or pause. Pause length goes
// through the Lua wander_pause hook. Phase 1 (Intent).
type MonsterAISystem struct {
	ws *world.State
}

func NewMonsterAISystem(ws *world.State) *MonsterAISystem {
	return &MonsterAISystem{ws: ws}
}

func (s *MonsterAISystem) Phase() coresys.Phase { return coresys.PhaseIntent }

func (s *MonsterAISystem) Update(_ time.Duration) {
	s.ws.Monsters.Each(func(id ecs.EntityID) {
		if s.ws.IsPlayer(id) {
			return
		}
		st, ok := s.ws.StateOf(id)
		if !ok {
			return
		}
		// Casting, shifting, stunned, dead or shielding actors keep their state.
		switch st {
		case component.StateIdle, component.StateIdleWait, component.StateWalkToPoint:
		default:
			return
		}
		if enemy := s.nearestEnemy(id); enemy != 0 {
			s.engage(id, enemy, st)
			return
		}
		if st != component.StateIdle {
			return
		}
		m, _ := s.ws.Monster.Get(id)
		if m.Rested {
			s.wander(id, m)
			return
		}
		s.pause(id, m)
	})
}

// engage attacks enemy unless the monster is already walking to it.
func (s *MonsterAISystem) engage(id, enemy ecs.EntityID, st component.State) {
	if st == component.StateWalkToPoint {
		if ta, ok := s.ws.TargetAction.Get(id); ok && ta.Kind == component.TargetAttack && ta.Entity == enemy {
			return
		}
	}
	handler.Attack(id, enemy, s.ws)
}

// nearestEnemy returns the closest living, visible enemy still within the
// lose distance, ties broken by id.
func (s *MonsterAISystem) nearestEnemy(id ecs.EntityID) ecs.EntityID {
	e, ok := s.ws.Enemies.Get(id)
	if !ok || len(e.IDs) == 0 {
		return 0
	}
	m, _ := s.ws.Monster.Get(id)
	limit := m.Vision * s.ws.Cfg.AI.LoseDistance
	best, bestDist := ecs.EntityID(0), math.Inf(1)
	for _, other := range e.IDs {
		if !s.ws.Alive(other) || s.ws.IsDead(other) || s.ws.IsHidden(other) {
			continue
		}
		d, ok := s.ws.Distance(id, other)
		if !ok || d > limit {
			continue
		}
		if d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}

// wander walks to a random point within the wander radius of the spawn.
func (s *MonsterAISystem) wander(id ecs.EntityID, m *component.Monster) {
	m.Rested = false
	rng := s.ws.Rand
	dir := geom.FromAngle(rng.Float64() * 2 * math.Pi)
	r := m.WanderRadius * math.Sqrt(rng.Float64())
	goal := geom.V(m.SpawnX, m.SpawnY).Add(dir.Scale(r))
	goal, ok := s.ws.Mesh.Sample(goal, s.ws.Cfg.Path.MaxSampleDistance)
	if !ok {
		return
	}
	handler.MoveToPoint(id, goal, s.ws)
}

// pause starts a randomized IdleWait.
func (s *MonsterAISystem) pause(id ecs.EntityID, m *component.Monster) {
	cfg := s.ws.Cfg.AI
	base := cfg.IdleWaitMin + s.ws.Rand.Float64()*(cfg.IdleWaitMax-cfg.IdleWaitMin)
	ctx := scripting.WanderContext{Template: m.Template, Base: base}
	if l, ok := s.ws.Life.Get(id); ok {
		ctx.Life, ctx.LifeMax = l.Value, l.Max
	}
	handler.StartIdleWait(id, s.ws.Lua.WanderPause(ctx), s.ws)
}
