package ecs

import "sort"

// ComponentID is the bit assigned to a store at registration.
type ComponentID uint8

// MaxComponents is the number of stores a Registry can track in a Mask.
const MaxComponents = 64

// Mask is a component-presence bitset.
type Mask uint64

func (m Mask) Has(bit ComponentID) bool { return m&(1<<bit) != 0 }

// Registry tracks all component stores, each entity's presence mask, and the
// views whose membership depends on those masks.
type Registry struct {
	stores []Removable
	masks  []Mask     // entity index -> presence mask
	ids    []EntityID // entity index -> current id carrying that mask
	views  []*View
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 32),
	}
}

// Register adds a component store to the registry and returns its bit.
func (r *Registry) Register(store Removable) ComponentID {
	if len(r.stores) >= MaxComponents {
		panic("ecs: too many component stores")
	}
	r.stores = append(r.stores, store)
	return ComponentID(len(r.stores) - 1)
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// MaskOf returns the presence mask of a live entity.
func (r *Registry) MaskOf(id EntityID) Mask {
	idx := int(id.Index())
	if idx >= len(r.masks) || r.ids[idx] != id {
		return 0
	}
	return r.masks[idx]
}

func (r *Registry) setBit(id EntityID, bit ComponentID) {
	idx := int(id.Index())
	for len(r.masks) <= idx {
		r.masks = append(r.masks, 0)
		r.ids = append(r.ids, 0)
	}
	if r.ids[idx] != id {
		if prev, m := r.ids[idx], r.masks[idx]; prev != 0 && m != 0 {
			for _, v := range r.views {
				if v.matches(m) {
					v.remove(prev)
				}
			}
		}
		r.ids[idx] = id
		r.masks[idx] = 0
	}
	old := r.masks[idx]
	next := old | 1<<bit
	if next == old {
		return
	}
	r.masks[idx] = next
	for _, v := range r.views {
		if !v.matches(old) && v.matches(next) {
			v.insert(id)
		}
	}
}

func (r *Registry) clearBit(id EntityID, bit ComponentID) {
	idx := int(id.Index())
	if idx >= len(r.masks) || r.ids[idx] != id {
		return
	}
	old := r.masks[idx]
	next := old &^ (1 << bit)
	if next == old {
		return
	}
	r.masks[idx] = next
	for _, v := range r.views {
		if v.matches(old) && !v.matches(next) {
			v.remove(id)
		}
	}
}

// NewView creates a view over every entity carrying all the given components.
// Existing entities are enrolled immediately; afterwards membership follows
// Add/Remove incrementally.
func (r *Registry) NewView(components ...interface{ Bit() ComponentID }) *View {
	v := &View{}
	for _, c := range components {
		v.mask |= 1 << c.Bit()
	}
	for idx, m := range r.masks {
		if r.ids[idx] != 0 && v.matches(m) {
			v.members = append(v.members, r.ids[idx])
		}
	}
	sort.Slice(v.members, func(i, j int) bool { return v.members[i] < v.members[j] })
	r.views = append(r.views, v)
	return v
}
