package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks input rejected before any work is done.
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// ValidationError names the offending field. It matches ErrInvalidInput
// under errors.Is.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Msg)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Msg)
}

func (e ValidationError) Unwrap() error { return ErrInvalidInput }

func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
