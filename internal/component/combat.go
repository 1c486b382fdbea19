package component

import (
	"sort"

	"github.com/l1jgo/arena/internal/core/ecs"
)

// CastKind identifies what a Casting state resolves into.
type CastKind uint8

const (
	CastMelee CastKind = iota
	CastRange
	CastHand
	CastShadow
	CastSkill
	CastHide
)

var castNames = [...]string{"melee", "range", "hand", "shadow", "skill", "hide"}

func (c CastKind) String() string {
	if int(c) < len(castNames) {
		return castNames[c]
	}
	return "unknown"
}

// DamageKind classifies a hit for shield handling.
type DamageKind uint8

const (
	DamageMelee DamageKind = iota
	DamageHand
	DamageShadow
	DamageRange
	DamageSkill
	DamageUltimate
)

var damageNames = [...]string{"melee", "hand", "shadow", "range", "skill", "ultimate"}

func (d DamageKind) String() string {
	if int(d) < len(damageNames) {
		return damageNames[d]
	}
	return "unknown"
}

// Ranged reports whether a parried hit of this kind is blocked outright
// instead of stunning the attacker.
func (d DamageKind) Ranged() bool {
	return d == DamageRange || d == DamageSkill
}

// DamageEntry is one queued hit.
type DamageEntry struct {
	Attacker     ecs.EntityID
	Amount       float64
	Kind         DamageKind
	CastDuration float64 // attacker's cast time, compared against shield age
}

// ApplyDamage accumulates hits during a tick; drained by the damage system.
type ApplyDamage struct {
	Entries []DamageEntry
}

// WeaponKind distinguishes melee from ranged weapons.
type WeaponKind uint8

const (
	WeaponMelee WeaponKind = iota
	WeaponRange
)

func (k WeaponKind) String() string {
	if k == WeaponRange {
		return "range"
	}
	return "melee"
}

// Weapon is the equipped weapon. Absent = bare hands.
type Weapon struct {
	ID           string
	Kind         WeaponKind
	Distance     float64
	Damage       float64
	Spread       float64 // full cone angle in radians
	CastTime     float64
	Cooldown     float64
	BulletSpeed  float64
	BulletRadius float64
}

// Skills lists the skill ids an actor knows.
type Skills struct {
	IDs []string
}

func (s *Skills) Has(id string) bool {
	for _, k := range s.IDs {
		if k == id {
			return true
		}
	}
	return false
}

// ShadowStrike enables the blink attack.
type ShadowStrike struct {
	Distance float64
	Damage   float64
	CastTime float64
	Cooldown float64
}

// Hide marks an actor as hidden from search and targeting.
type Hide struct {
	Elapsed  float64
	Duration float64
}

// Bullet is a projectile in flight.
type Bullet struct {
	Owner        ecs.EntityID
	Team         Team
	Damage       float64
	Kind         DamageKind
	CastDuration float64
	Radius       float64
	Speed        float64
	Direction    float64 // heading in radians
	Traveled     float64
	Range        float64 // already clipped to the navmesh boundary
}

// CooldownKind names a cooldown family for host notifications.
type CooldownKind uint8

const (
	CooldownShift CooldownKind = iota
	CooldownMelee
	CooldownHide
	CooldownShadow
	CooldownSkill
)

var cooldownNames = [...]string{"shift", "melee", "hide", "shadow", "skill"}

func (c CooldownKind) String() string {
	if int(c) < len(cooldownNames) {
		return cooldownNames[c]
	}
	return "unknown"
}

// Cooldown is a count-up timer; its presence blocks the matching action.
type Cooldown struct {
	Elapsed  float64
	Duration float64
}

// SkillTimer is one per-skill cooldown.
type SkillTimer struct {
	SkillID  string
	Elapsed  float64
	Duration float64
}

// SkillCooldowns holds per-skill timers sorted by SkillID.
type SkillCooldowns struct {
	Timers []SkillTimer
}

func (s *SkillCooldowns) find(id string) int {
	return sort.Search(len(s.Timers), func(i int) bool { return s.Timers[i].SkillID >= id })
}

// Active reports whether skill id is cooling down.
func (s *SkillCooldowns) Active(id string) bool {
	i := s.find(id)
	return i < len(s.Timers) && s.Timers[i].SkillID == id
}

// Start (re)starts the timer for id.
func (s *SkillCooldowns) Start(id string, duration float64) {
	i := s.find(id)
	if i < len(s.Timers) && s.Timers[i].SkillID == id {
		s.Timers[i] = SkillTimer{SkillID: id, Duration: duration}
		return
	}
	s.Timers = append(s.Timers, SkillTimer{})
	copy(s.Timers[i+1:], s.Timers[i:])
	s.Timers[i] = SkillTimer{SkillID: id, Duration: duration}
}

// Advance ticks every timer and drops the elapsed ones.
func (s *SkillCooldowns) Advance(dt float64) {
	out := s.Timers[:0]
	for _, t := range s.Timers {
		t.Elapsed += dt
		if t.Elapsed < t.Duration {
			out = append(out, t)
		}
	}
	s.Timers = out
}
