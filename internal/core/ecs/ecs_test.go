package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pos struct{ X, Y float64 }
type hp struct{ V int }

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.False(t, a.IsZero())
	assert.True(t, p.Alive(a))

	p.Destroy(a)
	assert.False(t, p.Alive(a))

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index(), "index is reused")
	assert.NotEqual(t, a, b, "generation differs")
	assert.False(t, p.Alive(a))
	assert.True(t, p.Alive(b))
	assert.Equal(t, 1, p.Count())
}

func TestStoreAddGetRemove(t *testing.T) {
	w := NewWorld()
	s := NewStore[pos](w.Registry())

	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	s.Add(a, pos{1, 1})
	pb := s.Add(b, pos{2, 2})
	s.Add(c, pos{3, 3})
	require.Equal(t, 3, s.Len())

	s.Remove(a)
	assert.False(t, s.Has(a))
	got, ok := s.Get(b)
	require.True(t, ok)
	assert.Same(t, pb, got, "pointer survives swap-remove of another entity")
	got, ok = s.Get(c)
	require.True(t, ok)
	assert.Equal(t, pos{3, 3}, *got)

	s.Add(b, pos{9, 9})
	assert.Equal(t, pos{9, 9}, *pb, "overwrite keeps the same slot")
}

func TestStoreRejectsStaleID(t *testing.T) {
	w := NewWorld()
	s := NewStore[hp](w.Registry())
	a := w.CreateEntity()
	s.Add(a, hp{5})
	w.DestroyEntity(a)

	b := w.CreateEntity()
	require.Equal(t, a.Index(), b.Index())
	assert.False(t, s.Has(a))
	assert.False(t, s.Has(b))
	_, ok := s.Get(a)
	assert.False(t, ok)
}

func TestViewIncrementalMembership(t *testing.T) {
	w := NewWorld()
	ps := NewStore[pos](w.Registry())
	hs := NewStore[hp](w.Registry())

	pre := w.CreateEntity()
	ps.Add(pre, pos{})
	hs.Add(pre, hp{})

	v := w.Registry().NewView(ps, hs)
	assert.True(t, v.Contains(pre), "existing entities enrol on creation")

	e := w.CreateEntity()
	ps.Add(e, pos{})
	assert.False(t, v.Contains(e))
	hs.Add(e, hp{})
	assert.True(t, v.Contains(e))
	assert.Equal(t, 2, v.Len())

	ps.Remove(e)
	assert.False(t, v.Contains(e))

	ps.Add(e, pos{})
	w.DestroyEntity(e)
	assert.False(t, v.Contains(e))
	assert.Equal(t, 1, v.Len())
}

func TestViewEachSortedAndMutationSafe(t *testing.T) {
	w := NewWorld()
	hs := NewStore[hp](w.Registry())
	v := w.Registry().NewView(hs)

	var ids []EntityID
	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		ids = append(ids, id)
	}
	// Add in reverse to prove ordering is by id, not insertion.
	for i := len(ids) - 1; i >= 0; i-- {
		hs.Add(ids[i], hp{i})
	}

	var seen []EntityID
	v.Each(func(id EntityID) {
		seen = append(seen, id)
		hs.Remove(id)
	})
	assert.Equal(t, ids, seen)
	assert.Equal(t, 0, v.Len())
}

func TestWorldDeferredDestruction(t *testing.T) {
	w := NewWorld()
	hs := NewStore[hp](w.Registry())
	e := w.CreateEntity()
	hs.Add(e, hp{1})

	w.MarkForDestruction(e)
	w.MarkForDestruction(e)
	assert.True(t, w.PendingDestruction(e))
	assert.True(t, w.Alive(e))

	w.FlushDestroyQueue()
	assert.False(t, w.Alive(e))
	assert.False(t, hs.Has(e))
	assert.False(t, w.PendingDestruction(e))
}
