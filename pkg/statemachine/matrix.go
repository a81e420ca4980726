package statemachine

import (
	"errors"
	"fmt"
	"slices"
)

// State is a status value such as "draft" or "active".
type State string

// Matrix is an immutable, total transition relation over a finite set of
// states. It is safe for concurrent use once built.
type Matrix struct {
	order   []State
	edges   map[State]map[State]struct{}
	targets map[State][]State
}

func (m *Matrix) declare(from State, to []State) error {
	if from == "" {
		return ErrEmptyState
	}
	if _, ok := m.edges[from]; ok {
		return errors.Join(ErrDuplicateState, fmt.Errorf("state %q", from))
	}
	if m.targets == nil {
		m.targets = make(map[State][]State)
	}

	set := make(map[State]struct{}, len(to))
	var list []State
	for _, t := range to {
		if t == "" {
			return ErrEmptyState
		}
		if _, dup := set[t]; dup {
			continue
		}
		set[t] = struct{}{}
		list = append(list, t)
	}

	m.edges[from] = set
	m.targets[from] = list
	m.order = append(m.order, from)
	return nil
}

// Allowed reports whether to is a legal successor of from.
func (m *Matrix) Allowed(from, to State) bool {
	next, ok := m.edges[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Check returns *ErrTransitionNotAllowed when the transition is illegal.
func (m *Matrix) Check(from, to State) error {
	if m.Allowed(from, to) {
		return nil
	}
	return NewErrTransitionNotAllowed(from, to)
}

// Targets returns the legal successors of from in declaration order.
func (m *Matrix) Targets(from State) []State {
	return slices.Clone(m.targets[from])
}

// States returns every declared state in declaration order.
func (m *Matrix) States() []State {
	return slices.Clone(m.order)
}

func (m *Matrix) Has(s State) bool {
	_, ok := m.edges[s]
	return ok
}

// IsTerminal reports whether s is declared and has no successors.
func (m *Matrix) IsTerminal(s State) bool {
	next, ok := m.edges[s]
	return ok && len(next) == 0
}
