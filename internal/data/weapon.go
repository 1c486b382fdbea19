package data

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/l1jgo/arena/internal/component"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownWeapon  = errors.New("unknown weapon")
	ErrUnknownSkill   = errors.New("unknown skill")
	ErrUnknownMonster = errors.New("unknown monster")
)

// WeaponInfo holds a single weapon template. Angles are in degrees in YAML
// and radians here.
type WeaponInfo struct {
	ID           string
	Name         string
	Kind         component.WeaponKind
	Distance     float64
	Damage       float64
	Spread       float64
	CastTime     float64
	Cooldown     float64
	BulletSpeed  float64
	BulletRadius float64
}

// Component returns the equip-ready component value.
func (w *WeaponInfo) Component() component.Weapon {
	return component.Weapon{
		ID:           w.ID,
		Kind:         w.Kind,
		Distance:     w.Distance,
		Damage:       w.Damage,
		Spread:       w.Spread,
		CastTime:     w.CastTime,
		Cooldown:     w.Cooldown,
		BulletSpeed:  w.BulletSpeed,
		BulletRadius: w.BulletRadius,
	}
}

// WeaponTable holds all weapons indexed by ID.
type WeaponTable struct {
	weapons map[string]*WeaponInfo
}

// Get returns a weapon by ID, or nil if not found.
func (t *WeaponTable) Get(id string) *WeaponInfo {
	if t == nil {
		return nil
	}
	return t.weapons[id]
}

// Lookup is Get with an error for callers that propagate it.
func (t *WeaponTable) Lookup(id string) (*WeaponInfo, error) {
	if w := t.Get(id); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWeapon, id)
}

func (t *WeaponTable) Count() int { return len(t.weapons) }

// IDs returns every weapon id, sorted.
func (t *WeaponTable) IDs() []string {
	out := make([]string, 0, len(t.weapons))
	for id := range t.weapons {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// --- YAML loading ---

type weaponEntry struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Kind         string  `yaml:"kind"` // melee | range
	Distance     float64 `yaml:"distance"`
	Damage       float64 `yaml:"damage"`
	Spread       float64 `yaml:"spread"` // degrees
	CastTime     float64 `yaml:"cast_time"`
	Cooldown     float64 `yaml:"cooldown"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletRadius float64 `yaml:"bullet_radius"`
}

type weaponListFile struct {
	Weapons []weaponEntry `yaml:"weapons"`
}

func parseWeaponKind(s string) (component.WeaponKind, error) {
	switch s {
	case "", "melee":
		return component.WeaponMelee, nil
	case "range":
		return component.WeaponRange, nil
	}
	return 0, fmt.Errorf("weapon kind %q", s)
}

// LoadWeaponTable loads weapon definitions from YAML.
func LoadWeaponTable(path string) (*WeaponTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapons: %w", err)
	}
	return parseWeapons(raw)
}

func parseWeapons(raw []byte) (*WeaponTable, error) {
	var f weaponListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse weapons: %w", err)
	}
	t := &WeaponTable{weapons: make(map[string]*WeaponInfo, len(f.Weapons))}
	for i := range f.Weapons {
		e := &f.Weapons[i]
		if e.ID == "" {
			return nil, fmt.Errorf("parse weapons: entry %d has no id", i)
		}
		kind, err := parseWeaponKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("parse weapons: %s: %w", e.ID, err)
		}
		t.weapons[e.ID] = &WeaponInfo{
			ID:           e.ID,
			Name:         e.Name,
			Kind:         kind,
			Distance:     e.Distance,
			Damage:       e.Damage,
			Spread:       degToRad(e.Spread),
			CastTime:     e.CastTime,
			Cooldown:     e.Cooldown,
			BulletSpeed:  e.BulletSpeed,
			BulletRadius: e.BulletRadius,
		}
	}
	return t, nil
}
