package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type csTestPosition struct{ X, Y int }

func TestComponentStorageAssignEnsureRemove(t *testing.T) {
	cs := newComponentStorage[csTestPosition]()
	id := JoinEntityID(1, 0)

	ptr := cs.Assign(id, csTestPosition{X: 1, Y: 2})
	require.Equal(t, csTestPosition{1, 2}, *ptr)
	require.True(t, cs.Has(id))

	// ensure is a no-op when already present.
	cs.Ensure(id, csTestPosition{X: 99, Y: 99})
	found, ok := cs.Find(id)
	require.True(t, ok)
	require.Equal(t, csTestPosition{1, 2}, *found)

	require.True(t, cs.Remove(id))
	_, ok = cs.Find(id)
	require.False(t, ok, "R2: assign-then-remove-then-find yields absence")
}

func TestComponentStorageAssignThenFind(t *testing.T) {
	cs := newComponentStorage[csTestPosition]()
	id := JoinEntityID(2, 0)

	cs.Assign(id, csTestPosition{X: 5, Y: 6})
	found, ok := cs.Find(id)
	require.True(t, ok, "R2: assign-then-find yields the assigned value")
	require.Equal(t, csTestPosition{5, 6}, *found)
}

func TestComponentStorageRemoveAll(t *testing.T) {
	cs := newComponentStorage[csTestPosition]()
	for i := uint32(0); i < 10; i++ {
		cs.Assign(JoinEntityID(i, 0), csTestPosition{X: int(i)})
	}
	require.Equal(t, 10, cs.Count())
	require.Equal(t, 10, cs.RemoveAll())
	require.Equal(t, 0, cs.Count())
}

func TestComponentStorageClone(t *testing.T) {
	cs := newComponentStorage[csTestPosition]()
	from := JoinEntityID(1, 0)
	to := JoinEntityID(2, 0)

	cs.Assign(from, csTestPosition{X: 3, Y: 4})
	require.True(t, cs.Clone(from, to))

	found, ok := cs.Find(to)
	require.True(t, ok)
	require.Equal(t, csTestPosition{3, 4}, *found)

	require.False(t, cs.Clone(JoinEntityID(99, 0), to), "cloning an absent source fails")
}

func TestComponentStorageForEachComponentMutatesInPlace(t *testing.T) {
	cs := newComponentStorage[csTestPosition]()
	cs.Assign(JoinEntityID(1, 0), csTestPosition{X: 1})
	cs.Assign(JoinEntityID(2, 0), csTestPosition{X: 2})

	cs.ForEachComponent(func(_ EntityID, v *csTestPosition) {
		v.X *= 10
	})

	found, _ := cs.Find(JoinEntityID(1, 0))
	require.Equal(t, 10, found.X)
	found, _ = cs.Find(JoinEntityID(2, 0))
	require.Equal(t, 20, found.X)
}

func TestComponentStorageEmptyMarkerType(t *testing.T) {
	type marker struct{}
	cs := newComponentStorage[marker]()
	for i := uint32(0); i < 100; i++ {
		cs.Assign(JoinEntityID(i, 0), marker{})
	}
	require.Equal(t, 100, cs.Count(), "S6: component_count<M>() == 100")

	visited := 0
	cs.ForEachComponentReadOnly(func(EntityID, marker) { visited++ })
	require.Equal(t, 100, visited, "S6: joined iteration over <M> visits all 100 exactly once")
}

func TestComponentStorageBaseErasure(t *testing.T) {
	cs := newComponentStorage[csTestPosition]()
	var base componentStorageBase = cs

	id := JoinEntityID(1, 0)
	cs.Assign(id, csTestPosition{X: 1})
	require.True(t, base.has(id))
	require.True(t, base.remove(id))
	require.False(t, base.has(id))
}
