package host

import (
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/geom"
	"go.uber.org/zap"
)

// Logger writes notifications to a zap logger. Per-tick updates and debug
// geometry go to Debug; lifecycle and combat outcomes go to Info.
type Logger struct {
	log *zap.Logger
}

var _ Host = (*Logger)(nil)

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log.Named("host")}
}

func eid(key string, id ecs.EntityID) zap.Field { return zap.Uint64(key, uint64(id)) }

func pos(key string, p geom.Vec2) zap.Field {
	return zap.Float64s(key, []float64{p.X, p.Y})
}

func actorFields(a Actor) []zap.Field {
	return []zap.Field{
		eid("entity", a.ID),
		pos("pos", a.Position),
		zap.Float64("angle", a.Angle),
		zap.Stringer("state", a.State),
		zap.Float64("life", a.Life),
		zap.Float64("shield", a.Shield),
	}
}

func (l *Logger) DefineLevel(lv Level) {
	l.log.Info("level defined",
		zap.String("name", lv.Name),
		zap.Int("vertices", len(lv.Vertices)),
		zap.Int("polygons", len(lv.Polygons)))
}

func (l *Logger) TileCreate(t Tile) {
	l.log.Debug("tile create", zap.Int("tile", t.ID), zap.String("kind", t.Kind), pos("pos", t.Position))
}

func (l *Logger) TileDelete(t Tile) {
	l.log.Debug("tile delete", zap.Int("tile", t.ID))
}

func (l *Logger) PlayerCreate(a Actor) { l.log.Info("player create", actorFields(a)...) }
func (l *Logger) PlayerUpdate(a Actor) { l.log.Debug("player update", actorFields(a)...) }
func (l *Logger) PlayerRemove(id ecs.EntityID) {
	l.log.Info("player remove", eid("entity", id))
}

func (l *Logger) MonsterCreate(a Actor) {
	l.log.Info("monster create", append(actorFields(a), zap.String("template", a.Template))...)
}
func (l *Logger) MonsterUpdate(a Actor) { l.log.Debug("monster update", actorFields(a)...) }
func (l *Logger) MonsterRemove(id ecs.EntityID) {
	l.log.Info("monster remove", eid("entity", id))
}

func (l *Logger) BulletCreate(b Bullet) {
	l.log.Debug("bullet create", eid("entity", b.ID), eid("owner", b.Owner), pos("pos", b.Position))
}
func (l *Logger) BulletUpdate(b Bullet) {
	l.log.Debug("bullet update", eid("entity", b.ID), pos("pos", b.Position))
}
func (l *Logger) BulletRemove(id ecs.EntityID) { l.log.Debug("bullet remove", eid("entity", id)) }

func (l *Logger) ShiftStart(id ecs.EntityID, from, to geom.Vec2) {
	l.log.Info("shift start", eid("entity", id), pos("from", from), pos("to", to))
}
func (l *Logger) ShiftFinish(id ecs.EntityID) { l.log.Info("shift finish", eid("entity", id)) }

func (l *Logger) attackStart(kind string, id, target ecs.EntityID, castTime float64) {
	l.log.Info("attack start", zap.String("kind", kind), eid("entity", id), eid("target", target), zap.Float64("cast", castTime))
}

func (l *Logger) attackFinish(kind string, id ecs.EntityID) {
	l.log.Info("attack finish", zap.String("kind", kind), eid("entity", id))
}

func (l *Logger) MeleeAttackStart(id, target ecs.EntityID, c float64) {
	l.attackStart("melee", id, target, c)
}
func (l *Logger) MeleeAttackFinish(id ecs.EntityID) { l.attackFinish("melee", id) }
func (l *Logger) RangeAttackStart(id, target ecs.EntityID, c float64) {
	l.attackStart("range", id, target, c)
}
func (l *Logger) RangeAttackFinish(id ecs.EntityID) { l.attackFinish("range", id) }
func (l *Logger) HandAttackStart(id, target ecs.EntityID, c float64) {
	l.attackStart("hand", id, target, c)
}
func (l *Logger) HandAttackFinish(id ecs.EntityID) { l.attackFinish("hand", id) }
func (l *Logger) ShadowAttackStart(id, target ecs.EntityID, c float64) {
	l.attackStart("shadow", id, target, c)
}
func (l *Logger) ShadowAttackFinish(id ecs.EntityID) { l.attackFinish("shadow", id) }

func (l *Logger) SkillCastStart(id ecs.EntityID, skill string, castTime float64) {
	l.log.Info("skill cast start", eid("entity", id), zap.String("skill", skill), zap.Float64("cast", castTime))
}
func (l *Logger) SkillCastFinish(id ecs.EntityID, skill string) {
	l.log.Info("skill cast finish", eid("entity", id), zap.String("skill", skill))
}
func (l *Logger) CastInterrupted(id ecs.EntityID, cast component.CastKind) {
	l.log.Info("cast interrupted", eid("entity", id), zap.Stringer("cast", cast))
}
func (l *Logger) ShieldActivate(id ecs.EntityID) { l.log.Info("shield activate", eid("entity", id)) }
func (l *Logger) ShieldRelease(id ecs.EntityID)  { l.log.Info("shield release", eid("entity", id)) }
func (l *Logger) StunStart(id ecs.EntityID, d float64) {
	l.log.Info("stun start", eid("entity", id), zap.Float64("duration", d))
}
func (l *Logger) StunFinish(id ecs.EntityID) { l.log.Info("stun finish", eid("entity", id)) }
func (l *Logger) HideStart(id ecs.EntityID)  { l.log.Info("hide start", eid("entity", id)) }
func (l *Logger) HideFinish(id ecs.EntityID) { l.log.Info("hide finish", eid("entity", id)) }

func (l *Logger) CooldownStart(id ecs.EntityID, kind component.CooldownKind, skill string, d float64) {
	l.log.Debug("cooldown start", eid("entity", id), zap.Stringer("kind", kind), zap.String("skill", skill), zap.Float64("duration", d))
}

func (l *Logger) Damage(attacker, target ecs.EntityID, amount float64, kind component.DamageKind) {
	l.log.Info("damage", eid("attacker", attacker), eid("target", target), zap.Float64("amount", amount), zap.Stringer("kind", kind))
}

func (l *Logger) Death(id, killer ecs.EntityID) {
	l.log.Info("death", eid("entity", id), eid("killer", killer))
}

func (l *Logger) Resurrect(id ecs.EntityID) { l.log.Info("resurrect", eid("entity", id)) }

func (l *Logger) DebugPath(id ecs.EntityID, path []geom.Vec2) {
	l.log.Debug("debug path", eid("entity", id), zap.Int("points", len(path)))
}
func (l *Logger) DebugNeighbor(a, b ecs.EntityID) {
	l.log.Debug("debug neighbor", eid("a", a), eid("b", b))
}
func (l *Logger) DebugGridCell(grid string, cell int, rect geom.Rect) {
	l.log.Debug("debug grid cell", zap.String("grid", grid), zap.Int("cell", cell), pos("min", rect.Min), pos("max", rect.Max))
}
func (l *Logger) DebugSearch(monster, enemy ecs.EntityID) {
	l.log.Debug("debug search", eid("monster", monster), eid("enemy", enemy))
}
