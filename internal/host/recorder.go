package host

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
)

// Event is one recorded notification. Only the fields relevant to Name are
// populated.
type Event struct {
	Name   string
	Entity ecs.EntityID
	Other  ecs.EntityID
	Amount float64
	Detail string
	Point  geom.Vec2
	Actor  Actor
}

// Recorder keeps every notification in order. Used by tests.
type Recorder struct {
	Events []Event
	Level  *Level
	Paths  map[ecs.EntityID][]geom.Vec2
}

var _ Host = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{Paths: make(map[ecs.EntityID][]geom.Vec2)}
}

func (r *Recorder) add(e Event) { r.Events = append(r.Events, e) }

// Reset drops recorded events.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }

// Named returns the events called name, in order.
func (r *Recorder) Named(name string) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many name events concern entity (any entity if zero).
func (r *Recorder) Count(name string, entity ecs.EntityID) int {
	n := 0
	for _, e := range r.Events {
		if e.Name == name && (entity == 0 || e.Entity == entity) {
			n++
		}
	}
	return n
}

// For returns the names of events concerning entity, in order.
func (r *Recorder) For(entity ecs.EntityID) []string {
	var out []string
	for _, e := range r.Events {
		if e.Entity == entity {
			out = append(out, e.Name)
		}
	}
	return out
}

func (r *Recorder) DefineLevel(l Level) {
	r.Level = &l
	r.add(Event{Name: "DefineLevel", Detail: l.Name})
}

func (r *Recorder) TileCreate(t Tile) {
	r.add(Event{Name: "TileCreate", Amount: float64(t.ID), Detail: t.Kind, Point: t.Position})
}

func (r *Recorder) TileDelete(t Tile) {
	r.add(Event{Name: "TileDelete", Amount: float64(t.ID), Detail: t.Kind, Point: t.Position})
}

func (r *Recorder) PlayerCreate(a Actor) {
	r.add(Event{Name: "PlayerCreate", Entity: a.ID, Actor: a})
}
func (r *Recorder) PlayerUpdate(a Actor) {
	r.add(Event{Name: "PlayerUpdate", Entity: a.ID, Actor: a})
}
func (r *Recorder) PlayerRemove(id ecs.EntityID) {
	r.add(Event{Name: "PlayerRemove", Entity: id})
}
func (r *Recorder) MonsterCreate(a Actor) {
	r.add(Event{Name: "MonsterCreate", Entity: a.ID, Actor: a})
}
func (r *Recorder) MonsterUpdate(a Actor) {
	r.add(Event{Name: "MonsterUpdate", Entity: a.ID, Actor: a})
}
func (r *Recorder) MonsterRemove(id ecs.EntityID) {
	r.add(Event{Name: "MonsterRemove", Entity: id})
}

func (r *Recorder) BulletCreate(b Bullet) {
	r.add(Event{Name: "BulletCreate", Entity: b.ID, Other: b.Owner, Point: b.Position})
}

func (r *Recorder) BulletUpdate(b Bullet) {
	r.add(Event{Name: "BulletUpdate", Entity: b.ID, Other: b.Owner, Point: b.Position})
}

func (r *Recorder) BulletRemove(id ecs.EntityID) { r.add(Event{Name: "BulletRemove", Entity: id}) }

func (r *Recorder) ShiftStart(id ecs.EntityID, from, to geom.Vec2) {
	r.add(Event{Name: "ShiftStart", Entity: id, Point: to})
}
func (r *Recorder) ShiftFinish(id ecs.EntityID) { r.add(Event{Name: "ShiftFinish", Entity: id}) }

func (r *Recorder) MeleeAttackStart(id, target ecs.EntityID, castTime float64) {
	r.add(Event{Name: "MeleeAttackStart", Entity: id, Other: target, Amount: castTime})
}
func (r *Recorder) MeleeAttackFinish(id ecs.EntityID) {
	r.add(Event{Name: "MeleeAttackFinish", Entity: id})
}
func (r *Recorder) RangeAttackStart(id, target ecs.EntityID, castTime float64) {
	r.add(Event{Name: "RangeAttackStart", Entity: id, Other: target, Amount: castTime})
}
func (r *Recorder) RangeAttackFinish(id ecs.EntityID) {
	r.add(Event{Name: "RangeAttackFinish", Entity: id})
}
func (r *Recorder) HandAttackStart(id, target ecs.EntityID, castTime float64) {
	r.add(Event{Name: "HandAttackStart", Entity: id, Other: target, Amount: castTime})
}
func (r *Recorder) HandAttackFinish(id ecs.EntityID) {
	r.add(Event{Name: "HandAttackFinish", Entity: id})
}
func (r *Recorder) ShadowAttackStart(id, target ecs.EntityID, castTime float64) {
	r.add(Event{Name: "ShadowAttackStart", Entity: id, Other: target, Amount: castTime})
}
func (r *Recorder) ShadowAttackFinish(id ecs.EntityID) {
	r.add(Event{Name: "ShadowAttackFinish", Entity: id})
}
func (r *Recorder) SkillCastStart(id ecs.EntityID, skill string, castTime float64) {
	r.add(Event{Name: "SkillCastStart", Entity: id, Detail: skill, Amount: castTime})
}
func (r *Recorder) SkillCastFinish(id ecs.EntityID, skill string) {
	r.add(Event{Name: "SkillCastFinish", Entity: id, Detail: skill})
}
func (r *Recorder) CastInterrupted(id ecs.EntityID, cast component.CastKind) {
	r.add(Event{Name: "CastInterrupted", Entity: id, Detail: cast.String()})
}
func (r *Recorder) ShieldActivate(id ecs.EntityID) { r.add(Event{Name: "ShieldActivate", Entity: id}) }
func (r *Recorder) ShieldRelease(id ecs.EntityID)  { r.add(Event{Name: "ShieldRelease", Entity: id}) }
func (r *Recorder) StunStart(id ecs.EntityID, duration float64) {
	r.add(Event{Name: "StunStart", Entity: id, Amount: duration})
}
func (r *Recorder) StunFinish(id ecs.EntityID) { r.add(Event{Name: "StunFinish", Entity: id}) }
func (r *Recorder) HideStart(id ecs.EntityID)  { r.add(Event{Name: "HideStart", Entity: id}) }
func (r *Recorder) HideFinish(id ecs.EntityID) { r.add(Event{Name: "HideFinish", Entity: id}) }

func (r *Recorder) CooldownStart(id ecs.EntityID, kind component.CooldownKind, skill string, duration float64) {
	detail := kind.String()
	if skill != "" {
		detail += ":" + skill
	}
	r.add(Event{Name: "CooldownStart", Entity: id, Detail: detail, Amount: duration})
}

func (r *Recorder) Damage(attacker, target ecs.EntityID, amount float64, kind component.DamageKind) {
	r.add(Event{Name: "Damage", Entity: target, Other: attacker, Amount: amount, Detail: kind.String()})
}

func (r *Recorder) Death(id, killer ecs.EntityID) {
	r.add(Event{Name: "Death", Entity: id, Other: killer})
}

func (r *Recorder) Resurrect(id ecs.EntityID) { r.add(Event{Name: "Resurrect", Entity: id}) }

func (r *Recorder) DebugPath(id ecs.EntityID, path []geom.Vec2) {
	r.Paths[id] = append([]geom.Vec2(nil), path...)
	r.add(Event{Name: "DebugPath", Entity: id, Amount: float64(len(path))})
}

func (r *Recorder) DebugNeighbor(a, b ecs.EntityID) {
	r.add(Event{Name: "DebugNeighbor", Entity: a, Other: b})
}

func (r *Recorder) DebugGridCell(grid string, cell int, rect geom.Rect) {
	r.add(Event{Name: "DebugGridCell", Detail: grid, Amount: float64(cell), Point: rect.Min})
}

func (r *Recorder) DebugSearch(monster, enemy ecs.EntityID) {
	r.add(Event{Name: "DebugSearch", Entity: monster, Other: enemy})
}
