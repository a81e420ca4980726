package engine

import "errors"

var (
	ErrNilRegistry = errors.New("engine requires a schema registry")
	ErrMissingHook = errors.New("external rule has no configured hook")
	ErrNilHook     = errors.New("hook cannot be nil")
)
