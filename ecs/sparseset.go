package ecs

import (
	"fmt"
	"unsafe"
)

// Indexer maps a value of type K to the sparse-array slot it occupies.
// For EntityID keys this is entityIndexer (index field only, ignoring
// version); for other key types it is typically the identity function.
type Indexer[K any] func(K) uint32

const defaultMinCapacity = 8

// nextCapacitySize implements the growth policy described in spec §4.B:
// once cur is at least half of max, jump straight to max; otherwise double
// cur (floored at min). min must not exceed max.
func nextCapacitySize(cur, min, max int) int {
	if min > max {
		panic(&Error{Kind: KindCapacityOverflow, Message: fmt.Sprintf("nextCapacitySize: min (%d) > max (%d)", min, max)})
	}
	if cur >= max/2 {
		return max
	}
	grown := cur * 2
	if grown < min {
		grown = min
	}
	if grown > max {
		grown = max
	}
	return grown
}

// SparseSet is a dense-array-plus-sparse-index container giving O(1)
// insert, erase and lookup, with contiguous iteration over the dense
// array. K is any value comparable via Indexer; maxSize bounds the index
// space (e.g. the entity index space is 2^22).
type SparseSet[K comparable] struct {
	sparse  []int32
	dense   []K
	indexer Indexer[K]
	maxSize uint32
}

// NewSparseSet creates an empty SparseSet. indexer must return values in
// [0, maxSize).
func NewSparseSet[K comparable](indexer Indexer[K], maxSize uint32) *SparseSet[K] {
	return &SparseSet[K]{
		indexer: indexer,
		maxSize: maxSize,
	}
}

func (s *SparseSet[K]) growSparse(upto uint32) {
	needed := int(upto) + 1
	if needed <= len(s.sparse) {
		return
	}
	min := needed
	if min < defaultMinCapacity {
		min = defaultMinCapacity
	}
	newCap := nextCapacitySize(len(s.sparse), min, int(s.maxSize)+1)
	if newCap < needed {
		newCap = needed
	}
	grown := make([]int32, newCap)
	for i := range grown {
		grown[i] = -1
	}
	copy(grown, s.sparse)
	s.sparse = grown
}

// Has reports whether v is present in the set (spec invariant I4).
func (s *SparseSet[K]) Has(v K) bool {
	idx := s.indexer(v)
	if int(idx) >= len(s.sparse) {
		return false
	}
	denseIdx := s.sparse[idx]
	return denseIdx >= 0 && int(denseIdx) < len(s.dense) && s.dense[denseIdx] == v
}

// Insert adds v to the set. Returns false if v was already present.
func (s *SparseSet[K]) Insert(v K) bool {
	idx := s.indexer(v)
	s.growSparse(idx)
	if s.Has(v) {
		return false
	}
	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, v)
	return true
}

// UnorderedErase removes v from the set via swap-with-last, rewriting the
// sparse back-pointer of whichever element moved into v's old slot.
// Returns false if v was not present.
func (s *SparseSet[K]) UnorderedErase(v K) bool {
	if !s.Has(v) {
		return false
	}
	idx := s.indexer(v)
	denseIdx := s.sparse[idx]
	lastIdx := int32(len(s.dense) - 1)

	if denseIdx != lastIdx {
		last := s.dense[lastIdx]
		s.dense[denseIdx] = last
		s.sparse[s.indexer(last)] = denseIdx
	}
	s.dense = s.dense[:lastIdx]
	s.sparse[idx] = -1
	return true
}

// Find returns v and true if present, else the zero value and false.
func (s *SparseSet[K]) Find(v K) (K, bool) {
	if s.Has(v) {
		return v, true
	}
	var zero K
	return zero, false
}

// GetDenseIndex returns the dense-array slot of v, panicking if absent
// (spec: "throws if absent").
func (s *SparseSet[K]) GetDenseIndex(v K) int {
	idx, ok := s.FindDenseIndex(v)
	if !ok {
		panic("ecs: GetDenseIndex: value not present in sparse set")
	}
	return idx
}

// FindDenseIndex returns the dense-array slot of v, or (-1, false) if
// absent. Never panics.
func (s *SparseSet[K]) FindDenseIndex(v K) (int, bool) {
	idx := s.indexer(v)
	if int(idx) >= len(s.sparse) {
		return -1, false
	}
	denseIdx := s.sparse[idx]
	if denseIdx < 0 || int(denseIdx) >= len(s.dense) || s.dense[denseIdx] != v {
		return -1, false
	}
	return int(denseIdx), true
}

// Clear empties the set without releasing backing capacity.
func (s *SparseSet[K]) Clear() {
	for i := range s.sparse {
		s.sparse[i] = -1
	}
	s.dense = s.dense[:0]
}

// Size returns the number of elements currently in the set.
func (s *SparseSet[K]) Size() int { return len(s.dense) }

// Empty reports whether the set has no elements.
func (s *SparseSet[K]) Empty() bool { return len(s.dense) == 0 }

// Dense exposes the backing dense array in its current (insertion, modulo
// erases) order. Callers must not retain the slice across a mutation.
func (s *SparseSet[K]) Dense() []K { return s.dense }

// ForEach iterates the dense array in its current order, calling fn for
// every element. fn must not mutate the set.
func (s *SparseSet[K]) ForEach(fn func(K)) {
	for _, v := range s.dense {
		fn(v)
	}
}

// Sort reorders the dense array (and rewrites sparse back-pointers to
// match) according to less. Provided for callers that want deterministic
// iteration order; the core itself makes no ordering guarantee across
// erases.
func (s *SparseSet[K]) Sort(less func(a, b K) bool) {
	n := len(s.dense)
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && less(s.dense[j], s.dense[j-1]) {
			s.dense[j], s.dense[j-1] = s.dense[j-1], s.dense[j]
			s.sparse[s.indexer(s.dense[j])] = int32(j)
			s.sparse[s.indexer(s.dense[j-1])] = int32(j - 1)
			j--
		}
	}
}

// MemoryUsage returns an approximation of the bytes owned by the backing
// capacities (sparse + dense slices), for registry memory accounting.
func (s *SparseSet[K]) MemoryUsage() int64 {
	var zero K
	return int64(cap(s.sparse))*4 + int64(cap(s.dense))*int64(unsafe.Sizeof(zero))
}

// SparseMap composes a SparseSet of keys with a parallel dense slice of
// values kept in lock-step (spec §4.B). Insert/InsertOrAssign are
// exception-safe in the C++ original; in Go the equivalent guarantee is
// that a failed key insert never leaves values out of sync, which holds
// here because both slices are grown unconditionally together.
type SparseMap[K comparable, V any] struct {
	keys   *SparseSet[K]
	values []V
}

// NewSparseMap creates an empty SparseMap.
func NewSparseMap[K comparable, V any](indexer Indexer[K], maxSize uint32) *SparseMap[K, V] {
	return &SparseMap[K, V]{keys: NewSparseSet[K](indexer, maxSize)}
}

// Has reports whether k is present.
func (m *SparseMap[K, V]) Has(k K) bool { return m.keys.Has(k) }

// Insert adds k->v. Returns false (no-op on the value) if k was already
// present; use InsertOrAssign to overwrite.
func (m *SparseMap[K, V]) Insert(k K, v V) bool {
	if m.keys.Has(k) {
		return false
	}
	if !m.keys.Insert(k) {
		return false
	}
	m.values = append(m.values, v)
	return true
}

// InsertOrAssign inserts k->v, or overwrites the existing value for k.
// Returns true if k was newly inserted, false if it was overwritten.
func (m *SparseMap[K, V]) InsertOrAssign(k K, v V) bool {
	if idx, ok := m.keys.FindDenseIndex(k); ok {
		m.values[idx] = v
		return false
	}
	m.keys.Insert(k)
	m.values = append(m.values, v)
	return true
}

// Get returns the value for k and true, or the zero value and false.
func (m *SparseMap[K, V]) Get(k K) (V, bool) {
	idx, ok := m.keys.FindDenseIndex(k)
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[idx], true
}

// GetPtr returns a pointer to the stored value for k, or nil if absent.
// The pointer is invalidated by any subsequent mutation of the map.
func (m *SparseMap[K, V]) GetPtr(k K) *V {
	idx, ok := m.keys.FindDenseIndex(k)
	if !ok {
		return nil
	}
	return &m.values[idx]
}

// Erase removes k. Returns false if k was not present.
func (m *SparseMap[K, V]) Erase(k K) bool {
	idx, ok := m.keys.FindDenseIndex(k)
	if !ok {
		return false
	}
	last := len(m.values) - 1
	m.keys.UnorderedErase(k)
	m.values[idx] = m.values[last]
	m.values = m.values[:last]
	return true
}

// Clear empties the map.
func (m *SparseMap[K, V]) Clear() {
	m.keys.Clear()
	m.values = m.values[:0]
}

// Size returns the number of key/value pairs stored.
func (m *SparseMap[K, V]) Size() int { return m.keys.Size() }

// Empty reports whether the map has no entries.
func (m *SparseMap[K, V]) Empty() bool { return m.keys.Size() == 0 }

// Keys exposes the underlying key SparseSet (dense order matches Values).
func (m *SparseMap[K, V]) Keys() *SparseSet[K] { return m.keys }

// Values exposes the dense value slice, index-aligned with Keys().Dense().
func (m *SparseMap[K, V]) Values() []V { return m.values }

// ForEach iterates key/value pairs in dense order.
func (m *SparseMap[K, V]) ForEach(fn func(K, V)) {
	for i, k := range m.keys.Dense() {
		fn(k, m.values[i])
	}
}

// MemoryUsage returns an approximation of the bytes owned by the backing
// key-set and value slice capacities.
func (m *SparseMap[K, V]) MemoryUsage() int64 {
	var zero V
	return m.keys.MemoryUsage() + int64(cap(m.values))*int64(unsafe.Sizeof(zero))
}
