package engine

import (
	"strings"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// Context is the per-call state handed to hooks. It is created for one
// Validate call and must not be retained after the hook returns.
type Context struct {
	CallID    string
	Entity    string
	Operation string
	// Locale is the catalog language messages are rendered in.
	Locale string
	// Value is the sanitized input.
	Value map[string]any
	// Prior is the sanitized stored state, nil on create operations.
	Prior map[string]any
}

// Get returns the sanitized input value at a dotted path.
func (c *Context) Get(path string) (any, bool) {
	return get(c.Value, path)
}

// PriorValue returns the stored value at a dotted path.
func (c *Context) PriorValue(path string) (any, bool) {
	if c.Prior == nil {
		return nil, false
	}
	return get(c.Prior, path)
}

func get(root map[string]any, path string) (any, bool) {
	v, ok := schema.Resolve(root, validator.Path{}, path).Single()
	if !ok {
		return nil, false
	}
	return v.Value, true
}

func dotted(p validator.Path) string {
	return strings.Join(p, ".")
}
