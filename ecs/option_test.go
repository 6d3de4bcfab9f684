package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type optPosition struct{ X int }
type optVelocity struct{ X int }

func TestOptionAlgebraScenario(t *testing.T) {
	// S3: A has only position, B has only velocity, C has both.
	reg := NewRegistry()
	a, err := reg.CreateEntity()
	require.NoError(t, err)
	b, err := reg.CreateEntity()
	require.NoError(t, err)
	c, err := reg.CreateEntity()
	require.NoError(t, err)

	AssignComponent(a, optPosition{X: 1})
	AssignComponent(b, optVelocity{X: 1})
	AssignComponent(c, optPosition{X: 1})
	AssignComponent(c, optVelocity{X: 1})

	collect := func(opts ...Option) []EntityID {
		var ids []EntityID
		ForEachEntity(reg, func(e Entity) { ids = append(ids, e.ID()) }, opts...)
		return ids
	}

	require.ElementsMatch(t, []EntityID{c.ID()},
		collect(And(Exists[optPosition](), Exists[optVelocity]())))

	require.ElementsMatch(t, []EntityID{a.ID(), b.ID(), c.ID()},
		collect(Or(Exists[optPosition](), Exists[optVelocity]())))

	require.ElementsMatch(t, []EntityID{b.ID()},
		collect(Not(Exists[optPosition]())))
}

func TestOptionExistsAnyAllAreSugarForOrAnd(t *testing.T) {
	reg := NewRegistry()
	e, err := reg.CreateEntity()
	require.NoError(t, err)
	AssignComponent(e, optPosition{X: 1})

	require.True(t, ExistsAny(Exists[optPosition](), Exists[optVelocity]())(e.AsReadEntity()))
	require.False(t, ExistsAll(Exists[optPosition](), Exists[optVelocity]())(e.AsReadEntity()))
}

func TestOptionEmptyAndOrDegenerate(t *testing.T) {
	reg := NewRegistry()
	e, err := reg.CreateEntity()
	require.NoError(t, err)

	require.True(t, And()(e.AsReadEntity()), "empty conjunction degenerates to true")
	require.False(t, Or()(e.AsReadEntity()), "empty disjunction degenerates to false")
}

func TestOptionBool(t *testing.T) {
	reg := NewRegistry()
	e, err := reg.CreateEntity()
	require.NoError(t, err)

	require.True(t, Bool(true)(e.AsReadEntity()))
	require.False(t, Bool(false)(e.AsReadEntity()))
}
