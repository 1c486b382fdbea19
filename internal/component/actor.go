// Package component holds the plain data records attached to entities.
// Accessed only from the tick goroutine; systems own every mutation.
package component

import (
	"sort"

	"github.com/l1jgo/arena/internal/core/ecs"
)

// Movement describes how an actor moves.
type Movement struct {
	Speed    float64 // max speed, units per second
	Radius   float64
	TurnRate float64 // radians per second, 0 = instant
}

// Facing is the heading in radians, counter-clockwise from +X.
type Facing struct {
	Angle float64
}

// Player tags the single player-controlled actor.
type Player struct{}

// Monster carries AI parameters for a non-player actor.
type Monster struct {
	Template     string
	SpawnX       float64
	SpawnY       float64
	WanderRadius float64
	Vision       float64
	Rested       bool // IdleWait finished; next idle tick picks a wander point
}

// Team is the team id plus the extra teams this actor treats as friendly.
// Friends is sorted ascending.
type Team struct {
	ID      int
	Friends []int
}

// NewTeam builds a Team with a sorted, de-duplicated friend list.
func NewTeam(id int, friends ...int) Team {
	f := append([]int(nil), friends...)
	sort.Ints(f)
	out := f[:0]
	for i, v := range f {
		if i == 0 || v != f[i-1] {
			out = append(out, v)
		}
	}
	return Team{ID: id, Friends: out}
}

// Friendly reports whether t considers other friendly. One-directional:
// declaring a friend team does not make that team declare back.
func (t Team) Friendly(other Team) bool {
	if t.ID == other.ID {
		return true
	}
	i := sort.SearchInts(t.Friends, other.ID)
	return i < len(t.Friends) && t.Friends[i] == other.ID
}

// Allied reports mutual friendliness.
func Allied(a, b Team) bool {
	return a.Friendly(b) && b.Friendly(a)
}

// Life is a bounded hit-point counter.
type Life struct {
	Value float64
	Max   float64
}

// Sub lowers life by amount, clamped at zero, and returns what was taken.
func (l *Life) Sub(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount > l.Value {
		amount = l.Value
	}
	l.Value -= amount
	return amount
}

// Reset restores full life.
func (l *Life) Reset() { l.Value = l.Max }

// Shield is a bounded absorb counter. Full and Depleted are edge flags:
// Depleted is raised when the shield breaks and cleared only after it has
// regenerated to Full again.
type Shield struct {
	Value     float64
	Max       float64
	RegenRate float64
	Full      bool
	Depleted  bool
}

// Absorb takes up to amount from the shield and returns the absorbed share.
func (s *Shield) Absorb(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount > s.Value {
		amount = s.Value
	}
	s.Value -= amount
	if amount > 0 {
		s.Full = false
	}
	return amount
}

// Regen adds amount, clamped to Max, and reports whether Full was reached.
func (s *Shield) Regen(amount float64) bool {
	if s.Full || amount <= 0 {
		return false
	}
	s.Value += amount
	if s.Value >= s.Max {
		s.Value = s.Max
		s.Full = true
		s.Depleted = false
		return true
	}
	return false
}

// Reset restores a full, healthy shield.
func (s *Shield) Reset() {
	s.Value = s.Max
	s.Full = true
	s.Depleted = false
}

// Enemies is the sorted list of hostile entities a monster knows about.
type Enemies struct {
	IDs []ecs.EntityID
}

// Add inserts id, keeping the list sorted. Returns false if already present.
func (e *Enemies) Add(id ecs.EntityID) bool {
	i := sort.Search(len(e.IDs), func(i int) bool { return e.IDs[i] >= id })
	if i < len(e.IDs) && e.IDs[i] == id {
		return false
	}
	e.IDs = append(e.IDs, 0)
	copy(e.IDs[i+1:], e.IDs[i:])
	e.IDs[i] = id
	return true
}

// Remove drops id. Returns false if it was not present.
func (e *Enemies) Remove(id ecs.EntityID) bool {
	i := sort.Search(len(e.IDs), func(i int) bool { return e.IDs[i] >= id })
	if i < len(e.IDs) && e.IDs[i] == id {
		e.IDs = append(e.IDs[:i], e.IDs[i+1:]...)
		return true
	}
	return false
}

func (e *Enemies) Contains(id ecs.EntityID) bool {
	i := sort.Search(len(e.IDs), func(i int) bool { return e.IDs[i] >= id })
	return i < len(e.IDs) && e.IDs[i] == id
}

// GridIndex latches the last cell an entity was filed under in one grid.
type GridIndex struct {
	Cell int
}

// Neighborhood is the player's view of nearby monsters and visible cells,
// both sorted, as reported to the host on the previous tick.
type Neighborhood struct {
	Monsters []ecs.EntityID
	Cells    []int
}

// Dirty flags an entity whose host-side representation needs an update.
type Dirty struct{}
