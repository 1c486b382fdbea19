package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/arena/internal/component"
	"gopkg.in/yaml.v3"
)

// SkillKind selects how a skill is aimed and what it does on completion.
type SkillKind uint8

const (
	SkillRoundAttack SkillKind = iota // non-targeted area hit around the caster
	SkillStunArea                     // positional, stuns hostiles around a point
	SkillProjectile                   // positional, fires a bullet toward a point
	SkillUltimate                     // entity-targeted, takes all remaining life
)

var skillKindNames = map[string]SkillKind{
	"round_attack": SkillRoundAttack,
	"stun_area":    SkillStunArea,
	"projectile":   SkillProjectile,
	"ultimate":     SkillUltimate,
}

func (k SkillKind) String() string {
	for name, v := range skillKindNames {
		if v == k {
			return name
		}
	}
	return "unknown"
}

// SkillInfo holds a single skill template.
type SkillInfo struct {
	ID       string
	Name     string
	Kind     SkillKind
	CastTime float64
	Cooldown float64
	Damage   float64
	Distance float64 // max cast distance for aimed skills
	Radius   float64 // effect radius
	Duration float64 // stun duration
	Speed    float64 // projectile speed
	// RequiredWeapon gates the skill on the equipped weapon kind.
	// nil = usable with anything, including bare hands.
	RequiredWeapon *component.WeaponKind
}

// SkillTable holds all skills indexed by ID.
type SkillTable struct {
	skills map[string]*SkillInfo
}

// Get returns a skill by ID, or nil if not found.
func (t *SkillTable) Get(id string) *SkillInfo {
	if t == nil {
		return nil
	}
	return t.skills[id]
}

func (t *SkillTable) Lookup(id string) (*SkillInfo, error) {
	if s := t.Get(id); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSkill, id)
}

// Count returns total loaded skills.
func (t *SkillTable) Count() int { return len(t.skills) }

// --- YAML loading ---

type skillEntry struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Kind           string  `yaml:"kind"`
	CastTime       float64 `yaml:"cast_time"`
	Cooldown       float64 `yaml:"cooldown"`
	Damage         float64 `yaml:"damage"`
	Distance       float64 `yaml:"distance"`
	Radius         float64 `yaml:"radius"`
	Duration       float64 `yaml:"duration"`
	Speed          float64 `yaml:"speed"`
	RequiredWeapon string  `yaml:"required_weapon"` // "", melee, range
}

type skillListFile struct {
	Skills []skillEntry `yaml:"skills"`
}

// LoadSkillTable loads skill definitions from YAML.
func LoadSkillTable(path string) (*SkillTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skills: %w", err)
	}
	return parseSkills(raw)
}

func parseSkills(raw []byte) (*SkillTable, error) {
	var f skillListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse skills: %w", err)
	}
	t := &SkillTable{skills: make(map[string]*SkillInfo, len(f.Skills))}
	for i := range f.Skills {
		e := &f.Skills[i]
		kind, ok := skillKindNames[e.Kind]
		if !ok {
			return nil, fmt.Errorf("parse skills: %s: kind %q", e.ID, e.Kind)
		}
		info := &SkillInfo{
			ID:       e.ID,
			Name:     e.Name,
			Kind:     kind,
			CastTime: e.CastTime,
			Cooldown: e.Cooldown,
			Damage:   e.Damage,
			Distance: e.Distance,
			Radius:   e.Radius,
			Duration: e.Duration,
			Speed:    e.Speed,
		}
		if e.RequiredWeapon != "" {
			wk, err := parseWeaponKind(e.RequiredWeapon)
			if err != nil {
				return nil, fmt.Errorf("parse skills: %s: %w", e.ID, err)
			}
			info.RequiredWeapon = &wk
		}
		t.skills[e.ID] = info
	}
	return t, nil
}
