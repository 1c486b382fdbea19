package data

import (
	"fmt"
	"math"
	"os"

	"github.com/l1jgo/arena/internal/geom"
	"gopkg.in/yaml.v3"
)

// TileInfo is a static decoration placed in the level.
type TileInfo struct {
	ID   int     `yaml:"id"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// PlayerSpawn describes the player's starting loadout.
type PlayerSpawn struct {
	X       float64     `yaml:"x"`
	Y       float64     `yaml:"y"`
	Team    int         `yaml:"team"`
	Friends []int       `yaml:"friends"`
	Life    float64     `yaml:"life"`
	Shield  float64     `yaml:"shield"`
	Speed   float64     `yaml:"speed"`
	Radius  float64     `yaml:"radius"`
	Weapon  string      `yaml:"weapon"`
	Skills  []string    `yaml:"skills"`
	Shadow  *ShadowInfo `yaml:"shadow"`
}

// MonsterSpawn places one monster from a template.
type MonsterSpawn struct {
	Template string  `yaml:"template"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Angle    float64 `yaml:"angle"` // degrees
}

// Level is a finished navmesh plus what stands on it.
type Level struct {
	Name     string         `yaml:"name"`
	Vertices [][2]float64   `yaml:"vertices"`
	Polygons [][]int        `yaml:"polygons"`
	Tiles    []TileInfo     `yaml:"tiles"`
	Player   PlayerSpawn    `yaml:"player"`
	Monsters []MonsterSpawn `yaml:"monsters"`
}

// Points converts the raw vertex list.
func (l *Level) Points() []geom.Vec2 {
	out := make([]geom.Vec2, len(l.Vertices))
	for i, v := range l.Vertices {
		out[i] = geom.Vec2{X: v[0], Y: v[1]}
	}
	return out
}

// LoadLevel loads a level file from YAML.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(raw)
}

// ParseLevel decodes a level document.
func ParseLevel(raw []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if len(l.Polygons) == 0 {
		return nil, fmt.Errorf("parse level %q: no polygons", l.Name)
	}
	for i, poly := range l.Polygons {
		for _, idx := range poly {
			if idx < 0 || idx >= len(l.Vertices) {
				return nil, fmt.Errorf("parse level %q: polygon %d: vertex %d out of range", l.Name, i, idx)
			}
		}
	}
	return &l, nil
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// Radians returns the spawn facing in radians.
func (m MonsterSpawn) Radians() float64 { return degToRad(m.Angle) }
