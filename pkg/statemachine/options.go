package statemachine

import (
	"errors"
	"fmt"
)

// Option declares part of a transition matrix.
type Option func(*Matrix) error

// Allow declares from as a state whose legal successors are exactly to.
// Self-transitions must be listed explicitly.
func Allow(from State, to ...State) Option {
	return func(m *Matrix) error {
		return m.declare(from, to)
	}
}

// Terminal declares states with no outgoing transitions.
func Terminal(states ...State) Option {
	return func(m *Matrix) error {
		for _, s := range states {
			if err := m.declare(s, nil); err != nil {
				return err
			}
		}
		return nil
	}
}

// New builds a total matrix: every target must itself be declared as a source.
func New(opts ...Option) (*Matrix, error) {
	m := &Matrix{edges: make(map[State]map[State]struct{})}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if len(m.order) == 0 {
		return nil, ErrEmptyMatrix
	}

	for _, from := range m.order {
		for _, to := range m.targets[from] {
			if _, ok := m.edges[to]; !ok {
				return nil, errors.Join(ErrUndeclaredState, fmt.Errorf("%s -> %s", from, to))
			}
		}
	}

	return m, nil
}

// MustNew is like New but panics on an invalid declaration.
func MustNew(opts ...Option) *Matrix {
	m, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create transition matrix: %v", err))
	}
	return m
}
