package ecs

import "unsafe"

// Entity is a mutable handle: a (registry, id) pair. Equality compares
// both fields. A handle with a nil registry or a zero id never matches a
// live id; the zero value Entity{} is the canonical invalid handle, and
// any two zero values compare equal (spec §3, Entity handle).
type Entity struct {
	reg *Registry
	id  EntityID
}

// ReadEntity is the read-only counterpart of Entity, constructible from
// it. It exposes only non-mutating operations.
type ReadEntity struct {
	reg *Registry
	id  EntityID
}

// WrapEntity builds a mutable handle over id without checking liveness;
// callers typically obtain handles from Registry.CreateEntity or
// Registry.WrapEntity instead.
func WrapEntity(reg *Registry, id EntityID) Entity { return Entity{reg: reg, id: id} }

// ID returns the packed (index, version) identifier.
func (e Entity) ID() EntityID { return e.id }

// Registry returns the owning registry, or nil for an invalid handle.
func (e Entity) Registry() *Registry { return e.reg }

// Valid reports whether e currently denotes a live entity.
func (e Entity) Valid() bool {
	return e.reg != nil && e.reg.ValidEntity(e)
}

// Equal compares both the owning registry and the id.
func (e Entity) Equal(other Entity) bool {
	return e.reg == other.reg && e.id == other.id
}

// Less implements the lexicographic (registry address, id) ordering from
// spec §3.
func (e Entity) Less(other Entity) bool {
	ap, bp := uintptr(unsafe.Pointer(e.reg)), uintptr(unsafe.Pointer(other.reg))
	if ap != bp {
		return ap < bp
	}
	return e.id < other.id
}

// Hash combines the owning registry's address with the id, suitable for
// use as a map key component (spec: "hashing is defined on both entity
// and component handles").
func (e Entity) Hash() uint64 {
	return uint64(uintptr(unsafe.Pointer(e.reg)))*31 + uint64(e.id)
}

// AsReadEntity downgrades e to a read-only handle.
func (e Entity) AsReadEntity() ReadEntity { return ReadEntity{reg: e.reg, id: e.id} }

// Destroy destroys the entity e refers to. See Registry.DestroyEntity.
func (e Entity) Destroy() { e.reg.DestroyEntity(e) }

// ID returns the packed (index, version) identifier.
func (e ReadEntity) ID() EntityID { return e.id }

// Registry returns the owning registry, or nil for an invalid handle.
func (e ReadEntity) Registry() *Registry { return e.reg }

// Valid reports whether e currently denotes a live entity.
func (e ReadEntity) Valid() bool {
	return e.reg != nil && e.reg.ValidEntity(Entity(e))
}

// Equal compares both the owning registry and the id.
func (e ReadEntity) Equal(other ReadEntity) bool {
	return e.reg == other.reg && e.id == other.id
}

// Less implements the lexicographic (registry address, id) ordering.
func (e ReadEntity) Less(other ReadEntity) bool {
	return Entity(e).Less(Entity(other))
}

// Hash combines the owning registry's address with the id.
func (e ReadEntity) Hash() uint64 { return Entity(e).Hash() }

// Component is a thin, typed wrapper over an entity handle, giving
// ergonomic exists/get/find/assign/ensure/remove access to a single
// component type T (spec §4: "Component<T> handle").
type Component[T any] struct {
	Entity Entity
}

// ComponentOf builds a Component[T] handle over e. It does not check
// that T is assigned; use Exists/Get/Find to query that.
func ComponentOf[T any](e Entity) Component[T] { return Component[T]{Entity: e} }

// Exists reports whether e has a component of type T.
func (c Component[T]) Exists() bool { return ExistsComponent[T](c.Entity) }

// Get returns a pointer to the component, or panics if absent (mirrors
// GetComponent).
func (c Component[T]) Get() *T { return GetComponent[T](c.Entity) }

// Find returns a pointer to the component and true, or (nil, false).
func (c Component[T]) Find() (*T, bool) { return FindComponent[T](c.Entity) }

// Assign overwrites (or inserts) the component value.
func (c Component[T]) Assign(value T) *T { return AssignComponent(c.Entity, value) }

// Ensure inserts value only if T is absent, returning the (possibly
// pre-existing) stored value.
func (c Component[T]) Ensure(value T) *T { return EnsureComponent(c.Entity, value) }

// Remove deletes the component, returning whether it was present.
func (c Component[T]) Remove() bool { return RemoveComponent[T](c.Entity) }

// Hash combines the owning entity's hash with T's family id.
func (c Component[T]) Hash() uint64 {
	return c.Entity.Hash()*31 + uint64(FamilyOf[T]())
}

// ReadComponent is the read-only counterpart of Component[T].
type ReadComponent[T any] struct {
	Entity ReadEntity
}

// ReadComponentOf builds a ReadComponent[T] handle over e.
func ReadComponentOf[T any](e ReadEntity) ReadComponent[T] { return ReadComponent[T]{Entity: e} }

// Exists reports whether the entity has a component of type T.
func (c ReadComponent[T]) Exists() bool { return ExistsComponent[T](Entity(c.Entity)) }

// Find returns a copy of the component and true, or (zero, false).
func (c ReadComponent[T]) Find() (T, bool) {
	ptr, ok := FindComponent[T](Entity(c.Entity))
	if !ok {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// Hash combines the owning entity's hash with T's family id.
func (c ReadComponent[T]) Hash() uint64 {
	return c.Entity.Hash()*31 + uint64(FamilyOf[T]())
}
