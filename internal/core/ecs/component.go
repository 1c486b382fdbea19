package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store is a sparse-set component store. The sparse slice maps an entity
// index to its slot in the dense arrays; the dense arrays are packed so Len
// and Entities are O(1). Components are held by pointer, so a *T obtained from
// Get stays valid across Add/Remove of other entities. No reflect, no
// interface{}: pure generics.
type Store[T any] struct {
	reg    *Registry
	bit    ComponentID
	sparse []int32 // entity index -> dense slot + 1 (0 = absent)
	dense  []EntityID
	data   []*T
}

// NewStore creates a store and registers it with reg.
func NewStore[T any](reg *Registry) *Store[T] {
	s := &Store[T]{
		reg:   reg,
		dense: make([]EntityID, 0, 64),
		data:  make([]*T, 0, 64),
	}
	s.bit = reg.Register(s)
	return s
}

// Bit returns the component id assigned by the registry.
func (s *Store[T]) Bit() ComponentID { return s.bit }

func (s *Store[T]) slot(id EntityID) int {
	idx := id.Index()
	if int(idx) >= len(s.sparse) {
		return -1
	}
	d := s.sparse[idx] - 1
	if d < 0 || s.dense[d] != id {
		return -1
	}
	return int(d)
}

// Add attaches c to the entity, overwriting any existing value, and returns
// the stored pointer.
func (s *Store[T]) Add(id EntityID, c T) *T {
	if d := s.slot(id); d >= 0 {
		*s.data[d] = c
		return s.data[d]
	}
	idx := int(id.Index())
	for len(s.sparse) <= idx {
		s.sparse = append(s.sparse, 0)
	}
	// A stale slot from an older generation may still be indexed here.
	if old := s.sparse[idx] - 1; old >= 0 {
		s.removeSlot(int(old))
	}
	ptr := new(T)
	*ptr = c
	s.dense = append(s.dense, id)
	s.data = append(s.data, ptr)
	s.sparse[idx] = int32(len(s.dense))
	s.reg.setBit(id, s.bit)
	return ptr
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	d := s.slot(id)
	if d < 0 {
		return nil, false
	}
	return s.data[d], true
}

func (s *Store[T]) Has(id EntityID) bool {
	return s.slot(id) >= 0
}

func (s *Store[T]) Remove(id EntityID) {
	d := s.slot(id)
	if d < 0 {
		return
	}
	s.removeSlot(d)
	s.reg.clearBit(id, s.bit)
}

// removeSlot swap-removes the dense slot d.
func (s *Store[T]) removeSlot(d int) {
	last := len(s.dense) - 1
	removed := s.dense[d]
	if d != last {
		moved := s.dense[last]
		s.dense[d] = moved
		s.data[d] = s.data[last]
		s.sparse[moved.Index()] = int32(d + 1)
	}
	s.dense[last] = 0
	s.data[last] = nil
	s.dense = s.dense[:last]
	s.data = s.data[:last]
	s.sparse[removed.Index()] = 0
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Entities returns the packed entity list in storage order. The slice is
// owned by the store and changes on the next Add/Remove.
func (s *Store[T]) Entities() []EntityID {
	return s.dense
}
