package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMatrix     = errors.New("transition matrix declares no states")
	ErrEmptyState      = errors.New("state name cannot be empty")
	ErrDuplicateState  = errors.New("state declared more than once")
	ErrUndeclaredState = errors.New("transition target is not a declared state")
)

// ErrTransitionNotAllowed indicates the matrix has no edge between two states.
type ErrTransitionNotAllowed struct {
	From State
	To   State
}

func (e *ErrTransitionNotAllowed) Error() string {
	return fmt.Sprintf("transition from '%s' to '%s' is not allowed", e.From, e.To)
}

func NewErrTransitionNotAllowed(from, to State) *ErrTransitionNotAllowed {
	return &ErrTransitionNotAllowed{
		From: from,
		To:   to,
	}
}

func IsTransitionNotAllowed(err error) bool {
	var e *ErrTransitionNotAllowed
	return errors.As(err, &e)
}
