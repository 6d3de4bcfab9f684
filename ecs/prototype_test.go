package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type ptPosition struct{ X, Y int }
type ptVelocity struct{ X, Y int }

func TestPrototypeComponentChaining(t *testing.T) {
	proto := NewPrototype()
	PrototypeComponent(proto, ptPosition{X: 1, Y: 1})
	PrototypeComponent(proto, ptVelocity{X: 2, Y: 2})

	require.Equal(t, 2, proto.Size())
}

func TestPrototypeMergeWithRespectsOverride(t *testing.T) {
	base := NewPrototype()
	PrototypeComponent(base, ptPosition{X: 1, Y: 1})

	other := NewPrototype()
	PrototypeComponent(other, ptPosition{X: 9, Y: 9})
	PrototypeComponent(other, ptVelocity{X: 5, Y: 5})

	base.MergeWith(other, false)
	reg := NewRegistry()
	e, err := reg.CreateEntity()
	require.NoError(t, err)
	base.ApplyToEntity(e, true)
	require.Equal(t, ptPosition{1, 1}, *GetComponent[ptPosition](e), "override=false on merge keeps base's collision value")
	require.Equal(t, ptVelocity{5, 5}, *GetComponent[ptVelocity](e))

	overridden := NewPrototype()
	PrototypeComponent(overridden, ptPosition{X: 1, Y: 1})
	overridden.MergeWith(other, true)
	e2, err := reg.CreateEntity()
	require.NoError(t, err)
	overridden.ApplyToEntity(e2, true)
	require.Equal(t, ptPosition{9, 9}, *GetComponent[ptPosition](e2), "override=true on merge takes other's collision value")
}

func TestPrototypeCloneIsIndependent(t *testing.T) {
	proto := NewPrototype()
	PrototypeComponent(proto, ptPosition{X: 1, Y: 1})

	clone := proto.Clone()
	PrototypeComponent(clone, ptVelocity{X: 9, Y: 9})

	require.Equal(t, 1, proto.Size(), "mutating the clone must not affect the original")
	require.Equal(t, 2, clone.Size())
}

func TestPrototypeTakeEmptiesSource(t *testing.T) {
	proto := NewPrototype()
	PrototypeComponent(proto, ptPosition{X: 1, Y: 1})

	taken := proto.Take()
	require.Equal(t, 1, taken.Size())
	require.Equal(t, 0, proto.Size(), "prototype after Take is empty")
}

func TestApplyToComponentOverwritesInPlace(t *testing.T) {
	proto := NewPrototype()
	PrototypeComponent(proto, ptPosition{X: 7, Y: 7})

	var target ptPosition
	applied := ApplyToComponent(proto, &target)
	require.True(t, applied)
	require.Equal(t, ptPosition{7, 7}, target)

	var empty ptVelocity
	require.False(t, ApplyToComponent(proto, &empty), "no applier recorded for ptVelocity")
}
