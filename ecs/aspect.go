package ecs

// Aspect1..Aspect4 are compile-time bundles of required component types
// (spec §4.G). Go has no variadic type parameters, so the <Ts...> pack in
// the source is expanded here at fixed arities 1-4, matching the same
// arity limit the registry's joined iteration and batch component
// accessors use; every literal scenario in spec §8 fits within 4.

// Aspect1 bundles a single required component type.
type Aspect1[T1 any] struct{}

// ToOption returns the conjunction exists<T1>.
func (Aspect1[T1]) ToOption() Option { return Exists[T1]() }

// MatchEntity reports whether e carries every required component.
func (a Aspect1[T1]) MatchEntity(e ReadEntity) bool { return a.ToOption()(e) }

// ForEachEntity visits every entity matching the aspect and opts, calling
// fn with a read-only handle.
func (a Aspect1[T1]) ForEachEntity(reg *Registry, fn func(ReadEntity), opts ...Option) {
	ForEachEntity(reg, func(e Entity) { fn(e.AsReadEntity()) }, append([]Option{a.ToOption()}, opts...)...)
}

// ForJoinedComponents delegates to the registry's joined iteration over T1.
func (a Aspect1[T1]) ForJoinedComponents(reg *Registry, fn func(Entity, *T1), opts ...Option) {
	ForEachComponent(reg, fn, opts...)
}

// Aspect2 bundles two required component types, driven by T1.
type Aspect2[T1, T2 any] struct{}

// ToOption returns the conjunction exists<T1> && exists<T2>.
func (Aspect2[T1, T2]) ToOption() Option { return And(Exists[T1](), Exists[T2]()) }

// MatchEntity reports whether e carries every required component.
func (a Aspect2[T1, T2]) MatchEntity(e ReadEntity) bool { return a.ToOption()(e) }

// ForEachEntity visits every entity matching the aspect and opts.
func (a Aspect2[T1, T2]) ForEachEntity(reg *Registry, fn func(ReadEntity), opts ...Option) {
	ForEachEntity(reg, func(e Entity) { fn(e.AsReadEntity()) }, append([]Option{a.ToOption()}, opts...)...)
}

// ForJoinedComponents delegates to the registry's joined iteration,
// driven by T1.
func (a Aspect2[T1, T2]) ForJoinedComponents(reg *Registry, fn func(Entity, *T1, *T2), opts ...Option) {
	ForJoined2(reg, fn, opts...)
}

// Aspect3 bundles three required component types, driven by T1.
type Aspect3[T1, T2, T3 any] struct{}

// ToOption returns the conjunction of exists<T1..T3>.
func (Aspect3[T1, T2, T3]) ToOption() Option {
	return And(Exists[T1](), Exists[T2](), Exists[T3]())
}

// MatchEntity reports whether e carries every required component.
func (a Aspect3[T1, T2, T3]) MatchEntity(e ReadEntity) bool { return a.ToOption()(e) }

// ForEachEntity visits every entity matching the aspect and opts.
func (a Aspect3[T1, T2, T3]) ForEachEntity(reg *Registry, fn func(ReadEntity), opts ...Option) {
	ForEachEntity(reg, func(e Entity) { fn(e.AsReadEntity()) }, append([]Option{a.ToOption()}, opts...)...)
}

// ForJoinedComponents delegates to the registry's joined iteration,
// driven by T1.
func (a Aspect3[T1, T2, T3]) ForJoinedComponents(reg *Registry, fn func(Entity, *T1, *T2, *T3), opts ...Option) {
	ForJoined3(reg, fn, opts...)
}

// Aspect4 bundles four required component types, driven by T1.
type Aspect4[T1, T2, T3, T4 any] struct{}

// ToOption returns the conjunction of exists<T1..T4>.
func (Aspect4[T1, T2, T3, T4]) ToOption() Option {
	return And(Exists[T1](), Exists[T2](), Exists[T3](), Exists[T4]())
}

// MatchEntity reports whether e carries every required component.
func (a Aspect4[T1, T2, T3, T4]) MatchEntity(e ReadEntity) bool { return a.ToOption()(e) }

// ForEachEntity visits every entity matching the aspect and opts.
func (a Aspect4[T1, T2, T3, T4]) ForEachEntity(reg *Registry, fn func(ReadEntity), opts ...Option) {
	ForEachEntity(reg, func(e Entity) { fn(e.AsReadEntity()) }, append([]Option{a.ToOption()}, opts...)...)
}

// ForJoinedComponents delegates to the registry's joined iteration,
// driven by T1.
func (a Aspect4[T1, T2, T3, T4]) ForJoinedComponents(reg *Registry, fn func(Entity, *T1, *T2, *T3, *T4), opts ...Option) {
	ForJoined4(reg, fn, opts...)
}
