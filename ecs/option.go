package ecs

// Option is a boolean predicate over an entity, composable with Not, And
// and Or (spec §4.F). Options are evaluated at iteration time against
// each candidate entity before the user functor runs; they never mutate
// state.
type Option func(ReadEntity) bool

// Exists returns an Option true for entities carrying a component of
// type T.
func Exists[T any]() Option {
	return func(e ReadEntity) bool { return ExistsComponent[T](Entity(e)) }
}

// And returns the eager, short-circuiting conjunction of opts. An empty
// opts list degenerates to true (the identity of conjunction).
func And(opts ...Option) Option {
	return func(e ReadEntity) bool {
		for _, o := range opts {
			if !o(e) {
				return false
			}
		}
		return true
	}
}

// Or returns the eager, short-circuiting disjunction of opts. An empty
// opts list degenerates to false (the identity of disjunction).
func Or(opts ...Option) Option {
	return func(e ReadEntity) bool {
		for _, o := range opts {
			if o(e) {
				return true
			}
		}
		return false
	}
}

// Not negates opt.
func Not(opt Option) Option {
	return func(e ReadEntity) bool { return !opt(e) }
}

// ExistsAll is sugar for And: all of opts must hold. Named to mirror
// spec §4.F's exists_all<Ts...>; build it as
// ExistsAll(Exists[A](), Exists[B](), ...).
func ExistsAll(opts ...Option) Option { return And(opts...) }

// ExistsAny is sugar for Or: at least one of opts must hold. Named to
// mirror spec §4.F's exists_any<Ts...>.
func ExistsAny(opts ...Option) Option { return Or(opts...) }

// Bool lifts a constant into an Option, ignoring the entity.
func Bool(v bool) Option {
	return func(ReadEntity) bool { return v }
}

func evalOptions(e ReadEntity, opts []Option) bool {
	for _, o := range opts {
		if !o(e) {
			return false
		}
	}
	return true
}
