package ecs

// incrementalLocker supports nested "loans" of a resource: Lock bumps a
// counter, Unlock decrements it, and IsLocked is true while the counter
// is nonzero (spec §5, "re-entrant iteration guard"). Registry holds one
// of these (iterLock) and bumps it for the duration of every
// ForEachEntity/ForEachComponent/ForJoined2..4 call, exposed read-only via
// Registry.Iterating().
//
// Per spec §9, the guard is available but not universally enforced: it
// only tracks that an iteration is in flight, it does not forbid or defer
// mutation from inside a user callback. Actual safety during iteration
// still comes from each ComponentStorage's own RWMutex (mutating
// ForEachComponent takes the exclusive lock and documents reentrant
// assign/remove<T> from the callback as a precondition violation — see
// DESIGN.md, Open Question 2) and from joined iteration holding no
// cross-storage lock at all (Open Question 4).
type incrementalLocker struct {
	count int
}

// Lock increments the loan counter.
func (l *incrementalLocker) Lock() { l.count++ }

// Unlock decrements the loan counter. Unlocking an already-unlocked
// locker is a programmer error and panics, mirroring the precondition
// violation the source asserts on.
func (l *incrementalLocker) Unlock() {
	if l.count == 0 {
		panic("ecs: incrementalLocker: Unlock without matching Lock")
	}
	l.count--
}

// IsLocked reports whether any loan is outstanding.
func (l *incrementalLocker) IsLocked() bool { return l.count > 0 }
