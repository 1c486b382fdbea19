package ecs

import "sort"

// View is the live set of entities matching a component mask, kept sorted by
// EntityID so iteration order is reproducible.
type View struct {
	mask    Mask
	members []EntityID
	scratch []EntityID
}

func (v *View) matches(m Mask) bool { return m&v.mask == v.mask }

func (v *View) search(id EntityID) int {
	return sort.Search(len(v.members), func(i int) bool { return v.members[i] >= id })
}

func (v *View) insert(id EntityID) {
	i := v.search(id)
	if i < len(v.members) && v.members[i] == id {
		return
	}
	v.members = append(v.members, 0)
	copy(v.members[i+1:], v.members[i:])
	v.members[i] = id
}

func (v *View) remove(id EntityID) {
	i := v.search(id)
	if i < len(v.members) && v.members[i] == id {
		v.members = append(v.members[:i], v.members[i+1:]...)
	}
}

// Len returns the number of matching entities.
func (v *View) Len() int { return len(v.members) }

// Contains reports whether id currently matches.
func (v *View) Contains(id EntityID) bool {
	i := v.search(id)
	return i < len(v.members) && v.members[i] == id
}

// Snapshot copies the current membership into dst and returns it.
func (v *View) Snapshot(dst []EntityID) []EntityID {
	return append(dst[:0], v.members...)
}

// Each calls fn for every member in ascending id order. It iterates over a
// snapshot, so fn may add or remove components (including its own entity);
// callers must re-check presence for entities that fn could have changed.
func (v *View) Each(fn func(EntityID)) {
	v.scratch = v.Snapshot(v.scratch)
	for _, id := range v.scratch {
		fn(id)
	}
}
