package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a symbol or annotation lookup fails.
	ErrNotFound = errors.New("not found")

	// ErrCapacityExceeded is returned when an insert would exceed the mask capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidCapacity is returned when a dataset is created with zero capacity.
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

// LookupError describes a failed lookup by key or index.
//
// It matches ErrNotFound via errors.Is.
type LookupError struct {
	Side  Side
	Key   string
	Index uint32
	// ByIndex is true when the lookup was by index rather than by key.
	ByIndex bool
}

func (e *LookupError) Error() string {
	if e.ByIndex {
		return fmt.Sprintf("%s index %d: not found", e.Side.singular(), e.Index)
	}
	return fmt.Sprintf("%s %q: not found", e.Side.singular(), e.Key)
}

func (e *LookupError) Unwrap() error { return ErrNotFound }

// CapacityError indicates that a side of the dataset is full.
//
// It matches ErrCapacityExceeded via errors.Is.
type CapacityError struct {
	Side     Side
	Key      string
	Capacity uint32
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot add %s %q: capacity %d exceeded", e.Side.singular(), e.Key, e.Capacity)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }
