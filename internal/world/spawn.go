package world

import (
	"fmt"

	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/geom"
	"github.com/l1jgo/arena/internal/grid"
	"go.uber.org/zap"
)

// ActorSpec is everything needed to place a player or monster.
type ActorSpec struct {
	Position geom.Vec2
	Angle    float64
	Team     component.Team
	Life     float64
	Shield   float64
	Regen    float64
	Speed    float64
	Radius   float64
	Weapon   string
	Skills   []string
	Shadow   *data.ShadowInfo
}

// spawnActor attaches the components shared by the player and monsters.
func (s *State) spawnActor(spec ActorSpec) (ecs.EntityID, error) {
	pos, ok := s.Mesh.Sample(spec.Position, s.Cfg.Path.MaxSampleDistance)
	if !ok {
		return 0, fmt.Errorf("spawn at (%.2f, %.2f): off the navmesh", spec.Position.X, spec.Position.Y)
	}
	var weapon *data.WeaponInfo
	if spec.Weapon != "" {
		w, err := s.Tables.Weapons.Lookup(spec.Weapon)
		if err != nil {
			return 0, fmt.Errorf("spawn: %w", err)
		}
		weapon = w
	}
	for _, sk := range spec.Skills {
		if _, err := s.Tables.Skills.Lookup(sk); err != nil {
			return 0, fmt.Errorf("spawn: %w", err)
		}
	}

	id := s.ECS.CreateEntity()
	s.Position.Add(id, pos)
	s.PrevPosition.Add(id, pos)
	s.Velocity.Add(id, geom.Vec2{})
	s.Preferred.Add(id, geom.Vec2{})
	s.Movement.Add(id, component.Movement{Speed: spec.Speed, Radius: spec.Radius, TurnRate: s.Cfg.Combat.TurnRate})
	s.Facing.Add(id, component.Facing{Angle: geom.WrapAngle(spec.Angle)})
	s.Team.Add(id, spec.Team)
	s.Life.Add(id, component.Life{Value: spec.Life, Max: spec.Life})
	regen := spec.Regen
	if regen == 0 {
		regen = s.Cfg.Combat.ShieldRegen
	}
	s.Shield.Add(id, component.Shield{Value: spec.Shield, Max: spec.Shield, RegenRate: regen, Full: true})
	s.Action.Add(id, component.Action{Data: &component.Idle{}})
	s.VisibleIndex.Add(id, component.GridIndex{Cell: grid.NoCell})
	s.NeighborIndex.Add(id, component.GridIndex{Cell: grid.NoCell})
	s.SearchIndex.Add(id, component.GridIndex{Cell: grid.NoCell})
	if weapon != nil {
		s.Weapon.Add(id, weapon.Component())
	}
	if len(spec.Skills) > 0 {
		s.Skills.Add(id, component.Skills{IDs: append([]string(nil), spec.Skills...)})
	}
	if sh := spec.Shadow; sh != nil {
		s.ShadowStrike.Add(id, component.ShadowStrike{
			Distance: sh.Distance,
			Damage:   sh.Damage,
			CastTime: sh.CastTime,
			Cooldown: sh.Cooldown,
		})
	}
	return id, nil
}

// SpawnPlayer places the player. Only one player exists per game.
func (s *State) SpawnPlayer(spec ActorSpec) (ecs.EntityID, error) {
	if s.Alive(s.Player) {
		return 0, fmt.Errorf("spawn player: already spawned as %d", s.Player)
	}
	id, err := s.spawnActor(spec)
	if err != nil {
		return 0, fmt.Errorf("spawn player: %w", err)
	}
	s.PlayerTag.Add(id, component.Player{})
	s.Nearby.Add(id, component.Neighborhood{})
	s.Player = id
	s.Log.Info("player spawned", zap.Uint64("entity", uint64(id)))
	return id, nil
}

// SpawnMonster places a monster from a template. Angle is in radians.
func (s *State) SpawnMonster(tmpl *data.MonsterInfo, at geom.Vec2, angle float64) (ecs.EntityID, error) {
	id, err := s.spawnActor(ActorSpec{
		Position: at,
		Angle:    angle,
		Team:     component.NewTeam(tmpl.Team, tmpl.Friends...),
		Life:     tmpl.Life,
		Shield:   tmpl.Shield,
		Regen:    tmpl.ShieldRegen,
		Speed:    tmpl.Speed,
		Radius:   tmpl.Radius,
		Weapon:   tmpl.Weapon,
		Skills:   tmpl.Skills,
		Shadow:   tmpl.Shadow,
	})
	if err != nil {
		return 0, fmt.Errorf("spawn monster %s: %w", tmpl.ID, err)
	}
	wander := tmpl.WanderRadius
	if wander == 0 {
		wander = s.Cfg.AI.WanderRadius
	}
	pos := *s.mustPosition(id)
	s.Monster.Add(id, component.Monster{
		Template:     tmpl.ID,
		SpawnX:       pos.X,
		SpawnY:       pos.Y,
		WanderRadius: wander,
		Vision:       tmpl.Vision,
	})
	s.Enemies.Add(id, component.Enemies{})
	return id, nil
}

func (s *State) mustPosition(id ecs.EntityID) *geom.Vec2 {
	p, _ := s.Position.Get(id)
	return p
}

// SpawnBullet creates a projectile. The caller notifies the host.
func (s *State) SpawnBullet(at geom.Vec2, b component.Bullet) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Position.Add(id, at)
	s.Bullet.Add(id, b)
	return id
}

// Despawn removes an entity from every grid and queues its destruction.
func (s *State) Despawn(id ecs.EntityID) {
	if !s.Alive(id) || s.ECS.PendingDestruction(id) {
		return
	}
	for _, gs := range s.gridStores() {
		if gi, ok := gs.store.Get(id); ok {
			gs.grid.Remove(id, gi.Cell)
			gi.Cell = grid.NoCell
		}
	}
	s.ECS.MarkForDestruction(id)
}
