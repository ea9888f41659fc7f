package model

import "fmt"

// ErrDimension indicates a vector whose length does not match the model.
type ErrDimension struct {
	Want int
	Got  int
}

func (e *ErrDimension) Error() string {
	return fmt.Sprintf("model expects %d features, got %d", e.Want, e.Got)
}

// ErrBackend wraps a failure inside a classifier backend.
type ErrBackend struct {
	Backend string
	Err     error
}

func (e *ErrBackend) Error() string {
	return fmt.Sprintf("%s classifier: %v", e.Backend, e.Err)
}

func (e *ErrBackend) Unwrap() error { return e.Err }
