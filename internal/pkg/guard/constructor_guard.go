// Package guard provides a defensive construction check for commands, queries,
// and value objects. Embedding a ConstructorGuard in a struct makes zero-value
// instances detectable, so objects can only be used when created through their
// designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value
// fails validation, which prevents direct struct initialization from
// bypassing constructor invariants.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
// Call this inside the owning type's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
