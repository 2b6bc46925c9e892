package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("sign in to manage diagrams")
	ErrNotFound        = errors.New("diagram not found")
	ErrInvalidDiagram  = errors.New("invalid diagram")
)

// PersistenceError is a failure reported by the storage backend.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("diagram %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
