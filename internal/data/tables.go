package data

import "fmt"

// Tables bundles the template tables the simulation consults.
type Tables struct {
	Weapons  *WeaponTable
	Skills   *SkillTable
	Monsters *MonsterTable
}

// LoadTables loads the three template files.
func LoadTables(weapons, skills, monsters string) (*Tables, error) {
	w, err := LoadWeaponTable(weapons)
	if err != nil {
		return nil, err
	}
	s, err := LoadSkillTable(skills)
	if err != nil {
		return nil, err
	}
	m, err := LoadMonsterTable(monsters)
	if err != nil {
		return nil, err
	}
	t := &Tables{Weapons: w, Skills: s, Monsters: m}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseTables builds Tables from in-memory YAML documents.
func ParseTables(weapons, skills, monsters []byte) (*Tables, error) {
	w, err := parseWeapons(weapons)
	if err != nil {
		return nil, err
	}
	s, err := parseSkills(skills)
	if err != nil {
		return nil, err
	}
	m, err := parseMonsters(monsters)
	if err != nil {
		return nil, err
	}
	t := &Tables{Weapons: w, Skills: s, Monsters: m}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// validate checks that monster templates reference known weapons and skills.
func (t *Tables) validate() error {
	for id, m := range t.Monsters.monsters {
		if m.Weapon != "" {
			if _, err := t.Weapons.Lookup(m.Weapon); err != nil {
				return fmt.Errorf("monster %s: %w", id, err)
			}
		}
		for _, sk := range m.Skills {
			if _, err := t.Skills.Lookup(sk); err != nil {
				return fmt.Errorf("monster %s: %w", id, err)
			}
		}
	}
	return nil
}
