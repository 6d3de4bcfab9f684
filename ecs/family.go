package ecs

import (
	"reflect"
	"sync"
)

// FamilyID is a process-wide, monotonic small integer assigned to a
// distinct component or feature tag type (spec §4.A). It is stable for
// the life of the process and used only as a dense key into the
// registry's storage/feature tables; its relative ordering carries no
// meaning and must not be serialized across processes.
type FamilyID uint32

var familyRegistry = struct {
	mu     sync.Mutex
	ids    map[reflect.Type]FamilyID
	nextID FamilyID
}{ids: make(map[reflect.Type]FamilyID), nextID: 1}

// familyIDOf returns the FamilyID for T, allocating one on first use.
// Allocation is guarded by a single global mutex since family ids are
// rare (one per distinct type, not per call).
func familyIDOf[T any]() FamilyID {
	var zero T
	t := reflect.TypeOf(&zero).Elem()

	familyRegistry.mu.Lock()
	defer familyRegistry.mu.Unlock()

	if id, ok := familyRegistry.ids[t]; ok {
		return id
	}
	id := familyRegistry.nextID
	familyRegistry.nextID++
	familyRegistry.ids[t] = id
	return id
}

// FamilyOf returns the stable FamilyID for component/feature type T,
// allocating one the first time T is seen by this process.
func FamilyOf[T any]() FamilyID {
	return familyIDOf[T]()
}
