package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShadowInfo configures the shadow blink-strike ability.
type ShadowInfo struct {
	Distance float64 `yaml:"distance"`
	Damage   float64 `yaml:"damage"`
	CastTime float64 `yaml:"cast_time"`
	Cooldown float64 `yaml:"cooldown"`
}

// MonsterInfo holds a single monster template.
type MonsterInfo struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Team         int         `yaml:"team"`
	Friends      []int       `yaml:"friends"`
	Life         float64     `yaml:"life"`
	Shield       float64     `yaml:"shield"`
	ShieldRegen  float64     `yaml:"shield_regen"`
	Speed        float64     `yaml:"speed"`
	Radius       float64     `yaml:"radius"`
	Vision       float64     `yaml:"vision"`
	WanderRadius float64     `yaml:"wander_radius"`
	Weapon       string      `yaml:"weapon"`
	Skills       []string    `yaml:"skills"`
	Shadow       *ShadowInfo `yaml:"shadow"`
}

// MonsterTable holds all monster templates indexed by ID.
type MonsterTable struct {
	monsters map[string]*MonsterInfo
}

func (t *MonsterTable) Get(id string) *MonsterInfo {
	if t == nil {
		return nil
	}
	return t.monsters[id]
}

func (t *MonsterTable) Lookup(id string) (*MonsterInfo, error) {
	if m := t.Get(id); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMonster, id)
}

func (t *MonsterTable) Count() int { return len(t.monsters) }

type monsterListFile struct {
	Monsters []MonsterInfo `yaml:"monsters"`
}

// LoadMonsterTable loads monster templates from YAML.
func LoadMonsterTable(path string) (*MonsterTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read monsters: %w", err)
	}
	return parseMonsters(raw)
}

func parseMonsters(raw []byte) (*MonsterTable, error) {
	var f monsterListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse monsters: %w", err)
	}
	t := &MonsterTable{monsters: make(map[string]*MonsterInfo, len(f.Monsters))}
	for i := range f.Monsters {
		m := &f.Monsters[i]
		if m.Life <= 0 {
			return nil, fmt.Errorf("parse monsters: %s: life must be positive", m.ID)
		}
		t.monsters[m.ID] = m
	}
	return t, nil
}
