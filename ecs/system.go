package ecs

// System is the base type every feature member implements. A system
// declares no fixed set of handled events up front; instead it
// implements Handler[E] for whichever event types it cares about, and
// Feature dispatch finds those via a type assertion at call time (spec
// §4.H: "dispatch at runtime uses type-checked downcasting").
type System interface {
	// Name identifies the system for debugging and tracing.
	Name() string
}

// Handler is implemented by a System for the one event type E it wants to
// receive as the main dispatch phase. Because Go forbids two methods named
// Process with different signatures on the same receiver, a single
// concrete type can only ever satisfy Handler[E] for one E — unlike the
// source's virtual dispatch, a Go System is monomorphic in its main-phase
// event type, not "polymorphic over an event-type set {E1,…,En}" the way
// spec §4.H describes. A system wanting to react to several distinct event
// types needs one EventAdapter[E] per type wrapping the shared logic (see
// EventAdapter below); the before/after phases use their own method names
// (BeforeHandler.Before, AfterHandler.After) for the same reason — the
// direct Go counterpart of the source's three distinctly named virtual
// methods (before/process/after) rather than three overloads of one name.
type Handler[E any] interface {
	Process(reg *Registry, event E)
}

// BeforeHandler is implemented by a System that wants to run before the
// main Handler[E] phase for event type E (spec §4.H's before<E> phase).
type BeforeHandler[E any] interface {
	Before(reg *Registry, event E)
}

// AfterHandler is implemented by a System that wants to run after the
// main Handler[E] phase for event type E (spec §4.H's after<E> phase).
type AfterHandler[E any] interface {
	After(reg *Registry, event E)
}

// BaseSystem gives a concrete system a name without requiring it to
// implement Handler for every event type it might one day care about;
// embed it and add a Process method (plus Before/After if wanted) for the
// event type you handle; use EventAdapter for further event types.
type BaseSystem struct {
	name string
}

// NewBaseSystem creates a BaseSystem with the given debug name.
func NewBaseSystem(name string) *BaseSystem { return &BaseSystem{name: name} }

// Name returns the system's debug name.
func (b *BaseSystem) Name() string { return b.name }

// EventAdapter closes the gap Handler[E]'s doc comment describes: it lets
// one underlying system value participate in a Feature's dispatch for
// several distinct event types, one EventAdapter[E] per type, each
// forwarding to an ordinarily-named method on the shared value instead of
// a same-named Process overload Go cannot express. Add one adapter per
// event type to the Feature; they share Name() and any state through the
// wrapped System, so they act as one logical system split across several
// Feature entries.
type EventAdapter[E any] struct {
	System
	fn func(reg *Registry, event E)
}

// NewEventAdapter wraps sys so that Process(reg, event) for type E calls
// fn, typically a method value on sys itself (e.g. NewEventAdapter(sys,
// sys.OnDamage)).
func NewEventAdapter[E any](sys System, fn func(reg *Registry, event E)) *EventAdapter[E] {
	return &EventAdapter[E]{System: sys, fn: fn}
}

// Process implements Handler[E] by forwarding to the wrapped function.
func (a *EventAdapter[E]) Process(reg *Registry, event E) { a.fn(reg, event) }
