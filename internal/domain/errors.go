package domain

import "github.com/go-faster/errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput marks errors caused by a rejected request value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates the request cannot be applied to the current state.
	ErrConflict = errors.New("conflict")
)

type invalidError struct {
	msg string
}

func (e *invalidError) Error() string { return e.msg }

func (e *invalidError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid returns an error carrying msg verbatim that matches ErrInvalidInput.
func Invalid(msg string) error {
	return &invalidError{msg: msg}
}

type conflictError struct {
	msg string
}

func (e *conflictError) Error() string { return e.msg }

func (e *conflictError) Is(target error) bool { return target == ErrConflict }

// Conflict returns an error carrying msg verbatim that matches ErrConflict.
func Conflict(msg string) error {
	return &conflictError{msg: msg}
}
