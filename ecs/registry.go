package ecs

import "sync"

// Registry owns every entity, component storage and feature in one
// self-contained instance (spec §3, "Registry state"). It is the sole
// entry point: all component and iteration operations below take a
// *Registry or an Entity bound to one.
type Registry struct {
	entityMu     sync.RWMutex
	lastIndex    uint32
	freeIDs      []EntityID
	entityIDs    *SparseSet[EntityID]

	storageMu sync.RWMutex
	storages  map[FamilyID]componentStorageBase

	featureMu sync.RWMutex
	features  map[FamilyID]*Feature

	iterLock incrementalLocker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entityIDs: NewSparseSet[EntityID](entityIndexer, MaxIndex+1),
		storages:  make(map[FamilyID]componentStorageBase),
		features:  make(map[FamilyID]*Feature),
	}
}

// --- Entity lifecycle -------------------------------------------------

// CreateEntity allocates a fresh entity, reusing a destroyed slot (with
// its version bumped) when one is available (spec §4.I, "Entity-id
// allocation"). It fails only when the index space (2^22 - 1 entities) is
// exhausted, returning ErrIdentityOverflow.
func (r *Registry) CreateEntity() (Entity, error) {
	r.entityMu.Lock()
	defer r.entityMu.Unlock()

	id, err := r.allocateIDLocked()
	if err != nil {
		return Entity{}, err
	}
	r.entityIDs.Insert(id)
	return Entity{reg: r, id: id}, nil
}

// CreateEntityFromPrototype creates an entity and applies every applier in
// proto to it with override=true. If the entity cannot be allocated, proto
// is never touched; proto application itself cannot fail once the entity
// exists, since component assignment in this core is total.
func (r *Registry) CreateEntityFromPrototype(proto *Prototype) (Entity, error) {
	e, err := r.CreateEntity()
	if err != nil {
		return Entity{}, err
	}
	proto.ApplyToEntity(e, true)
	return e, nil
}

// CreateEntityFromSource creates a new entity and clones every component
// source currently carries onto it. source must be live.
func (r *Registry) CreateEntityFromSource(source Entity) (Entity, error) {
	e, err := r.CreateEntity()
	if err != nil {
		return Entity{}, err
	}
	r.storageMu.RLock()
	storages := make([]componentStorageBase, 0, len(r.storages))
	for _, cs := range r.storages {
		storages = append(storages, cs)
	}
	r.storageMu.RUnlock()

	for _, cs := range storages {
		cs.clone(source.id, e.id)
	}
	return e, nil
}

// DestroyEntity removes e from the live set, strips every component it
// carries, and returns its slot to the free list with its version bumped
// on next reuse. Returns false if e was not live.
func (r *Registry) DestroyEntity(e Entity) bool {
	r.entityMu.Lock()
	if !r.entityIDs.Has(e.id) {
		r.entityMu.Unlock()
		return false
	}
	r.entityIDs.UnorderedErase(e.id)
	r.freeIDs = append(r.freeIDs, e.id)
	r.entityMu.Unlock()

	r.storageMu.RLock()
	storages := make([]componentStorageBase, 0, len(r.storages))
	for _, cs := range r.storages {
		storages = append(storages, cs)
	}
	r.storageMu.RUnlock()

	for _, cs := range storages {
		cs.remove(e.id)
	}
	return true
}

// ValidEntity reports whether e currently denotes a live entity.
func (r *Registry) ValidEntity(e Entity) bool {
	if e.reg != r {
		return false
	}
	r.entityMu.RLock()
	defer r.entityMu.RUnlock()
	return r.entityIDs.Has(e.id)
}

// WrapEntity returns a handle over id without checking liveness.
func (r *Registry) WrapEntity(id EntityID) Entity { return Entity{reg: r, id: id} }

// allocateIDLocked must be called with entityMu held for writing. It
// implements spec §4.I's allocation algorithm: reuse a free slot (upgraded)
// first, else extend last_index, failing once the index space is
// exhausted. Before extending, it reserves free-list capacity for every
// live entity plus the new one, so a later DestroyEntity never needs to
// grow the slice (the Go analogue of invariant I6).
func (r *Registry) allocateIDLocked() (EntityID, error) {
	if n := len(r.freeIDs); n > 0 {
		id := r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
		return Upgrade(id), nil
	}
	if r.lastIndex >= MaxIndex {
		return InvalidEntityID, ErrIdentityOverflow
	}
	if need := r.entityIDs.Size() + 1; cap(r.freeIDs) < need {
		grown := make([]EntityID, len(r.freeIDs), 2*need)
		copy(grown, r.freeIDs)
		r.freeIDs = grown
	}
	r.lastIndex++
	return JoinEntityID(r.lastIndex, 0), nil
}

// --- Storage access -----------------------------------------------------

// getOrCreateStorage returns T's storage, creating it on first touch.
// First touch is double-checked under storageMu: an RLock-guarded fast
// path for the common case where the storage already exists, and a
// Lock-guarded slow path that re-checks before creating, so two
// goroutines racing to touch the same T for the first time never create
// two storages (spec §9, Open Question 1).
func getOrCreateStorage[T any](r *Registry) *ComponentStorage[T] {
	fam := FamilyOf[T]()

	r.storageMu.RLock()
	if base, ok := r.storages[fam]; ok {
		r.storageMu.RUnlock()
		return base.(*ComponentStorage[T])
	}
	r.storageMu.RUnlock()

	r.storageMu.Lock()
	defer r.storageMu.Unlock()
	if base, ok := r.storages[fam]; ok {
		return base.(*ComponentStorage[T])
	}
	cs := newComponentStorage[T]()
	r.storages[fam] = cs
	return cs
}

func findStorage[T any](r *Registry) (*ComponentStorage[T], bool) {
	fam := FamilyOf[T]()
	r.storageMu.RLock()
	defer r.storageMu.RUnlock()
	base, ok := r.storages[fam]
	if !ok {
		return nil, false
	}
	return base.(*ComponentStorage[T]), true
}

// --- Component ops ------------------------------------------------------
//
// These are free functions, not methods on Entity or *Registry, because Go
// methods cannot carry their own type parameters (spec §4.I's
// assign_component<T> etc. become AssignComponent[T](e, ...) call shapes).

// AssignComponent overwrites (or inserts) e's component of type T.
func AssignComponent[T any](e Entity, value T) *T {
	return getOrCreateStorage[T](e.reg).Assign(e.id, value)
}

// EnsureComponent inserts value for e only if T is absent, returning a
// pointer to the (possibly pre-existing) stored value.
func EnsureComponent[T any](e Entity, value T) *T {
	return getOrCreateStorage[T](e.reg).Ensure(e.id, value)
}

// RemoveComponent deletes e's component of type T, returning whether one
// was present.
func RemoveComponent[T any](e Entity) bool {
	cs, ok := findStorage[T](e.reg)
	if !ok {
		return false
	}
	return cs.Remove(e.id)
}

// ExistsComponent reports whether e has a component of type T.
func ExistsComponent[T any](e Entity) bool {
	cs, ok := findStorage[T](e.reg)
	if !ok {
		return false
	}
	return cs.Has(e.id)
}

// GetComponent returns a pointer to e's component of type T, panicking
// with a *Error (KindNotFound) if absent. This mirrors the source's
// exception-throwing get_component; use FindComponent for a non-panicking
// lookup.
func GetComponent[T any](e Entity) *T {
	ptr, ok := FindComponent[T](e)
	if !ok {
		panic(newNotFoundError(e.id, FamilyOf[T]()))
	}
	return ptr
}

// FindComponent returns a pointer to e's component of type T and true, or
// (nil, false). Never panics.
func FindComponent[T any](e Entity) (*T, bool) {
	cs, ok := findStorage[T](e.reg)
	if !ok {
		return nil, false
	}
	return cs.Find(e.id)
}

// GetComponents2 returns pointers to e's components of types T1 and T2,
// panicking if either is absent.
func GetComponents2[T1, T2 any](e Entity) (*T1, *T2) {
	return GetComponent[T1](e), GetComponent[T2](e)
}

// FindComponents2 returns pointers to e's components of types T1 and T2
// and true, or (nil, nil, false) if either is absent.
func FindComponents2[T1, T2 any](e Entity) (*T1, *T2, bool) {
	a, ok := FindComponent[T1](e)
	if !ok {
		return nil, nil, false
	}
	b, ok := FindComponent[T2](e)
	if !ok {
		return nil, nil, false
	}
	return a, b, true
}

// GetComponents3 returns pointers to e's components of types T1-T3,
// panicking if any is absent.
func GetComponents3[T1, T2, T3 any](e Entity) (*T1, *T2, *T3) {
	return GetComponent[T1](e), GetComponent[T2](e), GetComponent[T3](e)
}

// FindComponents3 returns pointers to e's components of types T1-T3 and
// true, or (nil, nil, nil, false) if any is absent.
func FindComponents3[T1, T2, T3 any](e Entity) (*T1, *T2, *T3, bool) {
	a, b, ok := FindComponents2[T1, T2](e)
	if !ok {
		return nil, nil, nil, false
	}
	c, ok := FindComponent[T3](e)
	if !ok {
		return nil, nil, nil, false
	}
	return a, b, c, true
}

// GetComponents4 returns pointers to e's components of types T1-T4,
// panicking if any is absent.
func GetComponents4[T1, T2, T3, T4 any](e Entity) (*T1, *T2, *T3, *T4) {
	return GetComponent[T1](e), GetComponent[T2](e), GetComponent[T3](e), GetComponent[T4](e)
}

// FindComponents4 returns pointers to e's components of types T1-T4 and
// true, or (nil, nil, nil, nil, false) if any is absent.
func FindComponents4[T1, T2, T3, T4 any](e Entity) (*T1, *T2, *T3, *T4, bool) {
	a, b, c, ok := FindComponents3[T1, T2, T3](e)
	if !ok {
		return nil, nil, nil, nil, false
	}
	d, ok := FindComponent[T4](e)
	if !ok {
		return nil, nil, nil, nil, false
	}
	return a, b, c, d, true
}

// RemoveAllComponents removes every component e carries, across every
// storage, leaving e itself live (spec §8 P7).
func RemoveAllComponents(e Entity) {
	e.reg.storageMu.RLock()
	storages := make([]componentStorageBase, 0, len(e.reg.storages))
	for _, cs := range e.reg.storages {
		storages = append(storages, cs)
	}
	e.reg.storageMu.RUnlock()

	for _, cs := range storages {
		cs.remove(e.id)
	}
}

// RemoveAllComponentsOfType clears every entity's component of type T,
// returning the count removed.
func RemoveAllComponentsOfType[T any](reg *Registry) int {
	cs, ok := findStorage[T](reg)
	if !ok {
		return 0
	}
	return cs.RemoveAll()
}

// ComponentCount returns the number of entities currently carrying a
// component of type T.
func ComponentCount[T any](reg *Registry) int {
	cs, ok := findStorage[T](reg)
	if !ok {
		return 0
	}
	return cs.Count()
}

// EntityCount returns the number of currently live entities.
func (r *Registry) EntityCount() int {
	r.entityMu.RLock()
	defer r.entityMu.RUnlock()
	return r.entityIDs.Size()
}

// EntityComponentCount returns the number of distinct component types e
// currently carries.
func (r *Registry) EntityComponentCount(e Entity) int {
	r.storageMu.RLock()
	defer r.storageMu.RUnlock()
	n := 0
	for _, cs := range r.storages {
		if cs.has(e.id) {
			n++
		}
	}
	return n
}

// --- Iteration -----------------------------------------------------------

// Iterating reports whether r currently has at least one joined/aspect
// iteration in flight. The core does not use this to forbid anything (spec
// §9, Open Question 2/4 leaves mutation-during-iteration undefined beyond
// ComponentStorage's own documented precondition); it exists so a caller
// can assert its own stricter discipline if it wants one.
func (r *Registry) Iterating() bool { return r.iterLock.IsLocked() }

func (r *Registry) beginIteration() { r.iterLock.Lock() }
func (r *Registry) endIteration()   { r.iterLock.Unlock() }

// ForEachEntity invokes fn for every live entity satisfying the
// conjunction of opts, in the live-entity set's current dense order.
func ForEachEntity(reg *Registry, fn func(Entity), opts ...Option) {
	reg.entityMu.RLock()
	ids := make([]EntityID, len(reg.entityIDs.Dense()))
	copy(ids, reg.entityIDs.Dense())
	reg.entityMu.RUnlock()

	reg.beginIteration()
	defer reg.endIteration()

	for _, id := range ids {
		e := Entity{reg: reg, id: id}
		if !evalOptions(e.AsReadEntity(), opts) {
			continue
		}
		fn(e)
	}
}

// ForEachComponent invokes fn(e, *T) for every entity carrying a component
// of type T and satisfying opts (spec §4.I for_each_component<T>).
func ForEachComponent[T any](reg *Registry, fn func(Entity, *T), opts ...Option) {
	cs, ok := findStorage[T](reg)
	if !ok {
		return
	}
	reg.beginIteration()
	defer reg.endIteration()

	cs.ForEachComponent(func(id EntityID, v *T) {
		e := Entity{reg: reg, id: id}
		if !evalOptions(e.AsReadEntity(), opts) {
			return
		}
		fn(e, v)
	})
}

// ForJoined2 implements the joined-iteration algorithm of spec §4.I for
// two component types: T1's storage is the driver (the leftmost type is
// always the driver — a documented performance contract, not an internal
// heuristic), T2 is probed per candidate. If T2's storage does not exist
// yet, the call returns immediately without visiting anything. No lock is
// held across storages, so an entity destroyed concurrently with the
// iteration may or may not be visited, depending on timing.
func ForJoined2[T1, T2 any](reg *Registry, fn func(Entity, *T1, *T2), opts ...Option) {
	reg.beginIteration()
	defer reg.endIteration()

	cs2, ok := findStorage[T2](reg)
	if !ok {
		return
	}
	cs1, ok := findStorage[T1](reg)
	if !ok {
		return
	}
	cs1.ForEachComponent(func(id EntityID, v1 *T1) {
		e := Entity{reg: reg, id: id}
		if !evalOptions(e.AsReadEntity(), opts) {
			return
		}
		v2, ok := cs2.Find(id)
		if !ok {
			return
		}
		fn(e, v1, v2)
	})
}

// ForJoined3 is ForJoined2 extended to three component types, T1 driving.
func ForJoined3[T1, T2, T3 any](reg *Registry, fn func(Entity, *T1, *T2, *T3), opts ...Option) {
	reg.beginIteration()
	defer reg.endIteration()

	cs2, ok := findStorage[T2](reg)
	if !ok {
		return
	}
	cs3, ok := findStorage[T3](reg)
	if !ok {
		return
	}
	cs1, ok := findStorage[T1](reg)
	if !ok {
		return
	}
	cs1.ForEachComponent(func(id EntityID, v1 *T1) {
		e := Entity{reg: reg, id: id}
		if !evalOptions(e.AsReadEntity(), opts) {
			return
		}
		v2, ok := cs2.Find(id)
		if !ok {
			return
		}
		v3, ok := cs3.Find(id)
		if !ok {
			return
		}
		fn(e, v1, v2, v3)
	})
}

// ForJoined4 is ForJoined2 extended to four component types, T1 driving.
func ForJoined4[T1, T2, T3, T4 any](reg *Registry, fn func(Entity, *T1, *T2, *T3, *T4), opts ...Option) {
	reg.beginIteration()
	defer reg.endIteration()

	cs2, ok := findStorage[T2](reg)
	if !ok {
		return
	}
	cs3, ok := findStorage[T3](reg)
	if !ok {
		return
	}
	cs4, ok := findStorage[T4](reg)
	if !ok {
		return
	}
	cs1, ok := findStorage[T1](reg)
	if !ok {
		return
	}
	cs1.ForEachComponent(func(id EntityID, v1 *T1) {
		e := Entity{reg: reg, id: id}
		if !evalOptions(e.AsReadEntity(), opts) {
			return
		}
		v2, ok := cs2.Find(id)
		if !ok {
			return
		}
		v3, ok := cs3.Find(id)
		if !ok {
			return
		}
		v4, ok := cs4.Find(id)
		if !ok {
			return
		}
		fn(e, v1, v2, v3, v4)
	})
}

// --- Features / events ---------------------------------------------------

// AssignFeature creates (or replaces) the feature keyed by tag type Tag,
// returning it for further configuration (e.g. AddSystem calls).
func AssignFeature[Tag any](reg *Registry) *Feature {
	fam := FamilyOf[Tag]()
	f := NewFeature()
	reg.featureMu.Lock()
	defer reg.featureMu.Unlock()
	reg.features[fam] = f
	return f
}

// EnsureFeature returns the feature keyed by Tag, creating an empty
// enabled one if absent.
func EnsureFeature[Tag any](reg *Registry) *Feature {
	fam := FamilyOf[Tag]()

	reg.featureMu.RLock()
	if f, ok := reg.features[fam]; ok {
		reg.featureMu.RUnlock()
		return f
	}
	reg.featureMu.RUnlock()

	reg.featureMu.Lock()
	defer reg.featureMu.Unlock()
	if f, ok := reg.features[fam]; ok {
		return f
	}
	f := NewFeature()
	reg.features[fam] = f
	return f
}

// HasFeature reports whether a feature keyed by Tag exists.
func HasFeature[Tag any](reg *Registry) bool {
	fam := FamilyOf[Tag]()
	reg.featureMu.RLock()
	defer reg.featureMu.RUnlock()
	_, ok := reg.features[fam]
	return ok
}

// GetFeature returns the feature keyed by Tag, panicking with a *Error
// (KindNotFound) if absent, mirroring GetComponent's exception-style
// accessor.
func GetFeature[Tag any](reg *Registry) *Feature {
	fam := FamilyOf[Tag]()
	reg.featureMu.RLock()
	defer reg.featureMu.RUnlock()
	f, ok := reg.features[fam]
	if !ok {
		panic(newNotFoundError(InvalidEntityID, fam))
	}
	return f
}

// ProcessEvent dispatches event to every feature, in no particular
// cross-feature order (features are independent per spec §4.H); a
// disabled feature is skipped entirely.
func ProcessEvent[E any](reg *Registry, event E) {
	reg.featureMu.RLock()
	features := make([]*Feature, 0, len(reg.features))
	for _, f := range reg.features {
		features = append(features, f)
	}
	reg.featureMu.RUnlock()

	for _, f := range features {
		ProcessFeatureEvent(f, reg, event)
	}
}

// --- Introspection --------------------------------------------------------

// MemoryUsage splits the registry's approximate owned byte count between
// entity bookkeeping (live + free id tables) and component storage.
type MemoryUsage struct {
	Entities   int64
	Components int64
}

// MemoryUsage returns the entity-vs-component byte split (spec §4.I).
func (r *Registry) MemoryUsage() MemoryUsage {
	r.entityMu.RLock()
	entityBytes := r.entityIDs.MemoryUsage() + int64(cap(r.freeIDs))*4
	r.entityMu.RUnlock()

	r.storageMu.RLock()
	var componentBytes int64
	for _, cs := range r.storages {
		componentBytes += cs.memoryUsage()
	}
	r.storageMu.RUnlock()

	return MemoryUsage{Entities: entityBytes, Components: componentBytes}
}

// RegistryStats is a point-in-time, read-only snapshot of registry size,
// useful for tests and diagnostics; it is not part of the hot path.
type RegistryStats struct {
	EntityCount  int
	StorageCount int
	FeatureCount int
}

// Stats returns a snapshot of r's current size.
func (r *Registry) Stats() RegistryStats {
	r.entityMu.RLock()
	entities := r.entityIDs.Size()
	r.entityMu.RUnlock()

	r.storageMu.RLock()
	storages := len(r.storages)
	r.storageMu.RUnlock()

	r.featureMu.RLock()
	features := len(r.features)
	r.featureMu.RUnlock()

	return RegistryStats{EntityCount: entities, StorageCount: storages, FeatureCount: features}
}

// Clear wipes every entity, storage and feature from r, resetting it to
// the state NewRegistry produces (except that family ids already
// allocated for previously-used types remain allocated process-wide, per
// spec §4.A).
func (r *Registry) Clear() {
	r.entityMu.Lock()
	r.entityIDs.Clear()
	r.freeIDs = r.freeIDs[:0]
	r.lastIndex = 0
	r.entityMu.Unlock()

	r.storageMu.Lock()
	r.storages = make(map[FamilyID]componentStorageBase)
	r.storageMu.Unlock()

	r.featureMu.Lock()
	r.features = make(map[FamilyID]*Feature)
	r.featureMu.Unlock()
}
