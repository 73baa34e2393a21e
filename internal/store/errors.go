package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no model artifact exists yet.
var ErrNotFound = errors.New("model artifact not found")

// LoadError is returned when an artifact exists but cannot be used.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load model %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load model %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
