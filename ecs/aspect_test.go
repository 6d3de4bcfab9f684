package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type asPosition struct{ X int }
type asVelocity struct{ X int }
type asHealth struct{ V int }

func TestAspect2MatchEntity(t *testing.T) {
	reg := NewRegistry()
	both, err := reg.CreateEntity()
	require.NoError(t, err)
	onlyOne, err := reg.CreateEntity()
	require.NoError(t, err)

	AssignComponent(both, asPosition{X: 1})
	AssignComponent(both, asVelocity{X: 1})
	AssignComponent(onlyOne, asPosition{X: 1})

	aspect := Aspect2[asPosition, asVelocity]{}
	require.True(t, aspect.MatchEntity(both.AsReadEntity()))
	require.False(t, aspect.MatchEntity(onlyOne.AsReadEntity()))
}

func TestAspect2ForJoinedComponents(t *testing.T) {
	reg := NewRegistry()
	e, err := reg.CreateEntity()
	require.NoError(t, err)
	AssignComponent(e, asPosition{X: 3})
	AssignComponent(e, asVelocity{X: 4})

	aspect := Aspect2[asPosition, asVelocity]{}
	visited := 0
	aspect.ForJoinedComponents(reg, func(_ Entity, p *asPosition, v *asVelocity) {
		visited++
		require.Equal(t, 3, p.X)
		require.Equal(t, 4, v.X)
	})
	require.Equal(t, 1, visited)
}

func TestAspect3ToOptionIsConjunction(t *testing.T) {
	reg := NewRegistry()
	full, err := reg.CreateEntity()
	require.NoError(t, err)
	partial, err := reg.CreateEntity()
	require.NoError(t, err)

	AssignComponent(full, asPosition{X: 1})
	AssignComponent(full, asVelocity{X: 1})
	AssignComponent(full, asHealth{V: 1})
	AssignComponent(partial, asPosition{X: 1})
	AssignComponent(partial, asVelocity{X: 1})

	aspect := Aspect3[asPosition, asVelocity, asHealth]{}
	var matched []EntityID
	ForEachEntity(reg, func(e Entity) { matched = append(matched, e.ID()) }, aspect.ToOption())
	require.ElementsMatch(t, []EntityID{full.ID()}, matched)
}

func TestAspect1DegeneratesToSingleExists(t *testing.T) {
	reg := NewRegistry()
	e, err := reg.CreateEntity()
	require.NoError(t, err)
	AssignComponent(e, asHealth{V: 1})

	aspect := Aspect1[asHealth]{}
	require.True(t, aspect.MatchEntity(e.AsReadEntity()))
}
