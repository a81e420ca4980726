// Package statemachine models entity status lifecycles as total transition
// matrices.
//
// A Matrix is declared once with functional options and never changes
// afterwards. Every state that appears as a target must also be declared as a
// source, so a matrix can never reference a status it knows nothing about.
// Terminal states are declared with an empty successor set. Identity
// transitions are never implied: a status may only stay the same when the
// matrix lists it as its own successor.
//
// # Usage
//
//	const (
//	    Draft     = statemachine.State("draft")
//	    Active    = statemachine.State("active")
//	    Cancelled = statemachine.State("cancelled")
//	)
//
//	m := statemachine.MustNew(
//	    statemachine.Allow(Draft, Draft, Active, Cancelled),
//	    statemachine.Allow(Active, Active, Cancelled),
//	    statemachine.Terminal(Cancelled),
//	)
//
//	if err := m.Check(Active, Draft); statemachine.IsTransitionNotAllowed(err) {
//	    // reject
//	}
//
// Lookups are plain map reads, so a built Matrix can be shared across
// goroutines without locking.
package statemachine
