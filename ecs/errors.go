package ecs

import (
	"errors"
	"fmt"
)

// Kind classifies the errors the core can raise (spec §7).
type Kind int

const (
	// KindNotFound marks a failed lookup (component or feature) via a
	// get_* accessor. Recoverable by the caller.
	KindNotFound Kind = iota
	// KindIdentityOverflow marks CreateEntity failing because the index
	// space is exhausted. Not recoverable without destroying entities.
	KindIdentityOverflow
	// KindCapacityOverflow marks nextCapacitySize being asked to grow
	// past an inconsistent [min, max) bound.
	KindCapacityOverflow
)

// Error is the core's structured error type, carrying enough context for
// callers and logs to tell failures apart without string-matching.
type Error struct {
	Kind    Kind
	Message string
	Entity  EntityID
	Family  FamilyID
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Entity != InvalidEntityID {
		return fmt.Sprintf("ecs: %s (entity=%v)", e.Message, e.Entity)
	}
	return fmt.Sprintf("ecs: %s", e.Message)
}

// Is supports errors.Is against the Kind-sentinels below.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Recoverable reports whether the caller can reasonably continue after
// this error (spec §7: not-found is recoverable, overflow is not).
func (e *Error) Recoverable() bool {
	return e.Kind == KindNotFound
}

// Sentinel errors, usable with errors.Is(err, ecs.ErrNotFound) etc.
var (
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrIdentityOverflow  = &Error{Kind: KindIdentityOverflow, Message: "entity index space exhausted"}
	ErrCapacityOverflow  = &Error{Kind: KindCapacityOverflow, Message: "invalid capacity bounds"}
)

func newNotFoundError(entity EntityID, family FamilyID) *Error {
	return &Error{Kind: KindNotFound, Message: "component or feature not found", Entity: entity, Family: family}
}
