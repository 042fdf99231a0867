package ecs

import (
	"errors"
	"sync/atomic"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

type componentID uint32

var nextComponentID atomic.Uint32

// Handle identifies one component type across every World. Declare one
// per component at package level with NewHandle.
type Handle[T any] struct {
	id componentID
}

// NewHandle registers a new component type.
func NewHandle[T any]() Handle[T] {
	return Handle[T]{id: componentID(nextComponentID.Add(1))}
}
