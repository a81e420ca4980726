package validator

import (
	"strconv"
	"strings"
)

// Path locates a value inside a nested input. Segments are field names, map
// keys or decimal array indices.
type Path []string

// NewPath builds a path from its segments.
func NewPath(segments ...string) Path {
	return Path(segments).Clone()
}

// ParsePath splits a dotted expression such as "budget.allocated.email".
func ParsePath(expr string) Path {
	if expr == "" {
		return Path{}
	}
	return Path(strings.Split(expr, "."))
}

// Child returns a new path extended with name. The receiver is never modified.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Index returns a new path extended with an array index.
func (p Path) Index(i int) Path {
	return p.Child(strconv.Itoa(i))
}

func (p Path) Clone() Path {
	if p == nil {
		return Path{}
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of p or equal to it.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Field returns the last segment that is not an array index.
func (p Path) Field() string {
	for i := len(p) - 1; i >= 0; i-- {
		if !isIndex(p[i]) {
			return p[i]
		}
	}
	return ""
}

// String renders the path in the dotted form ParsePath reads, such as
// ageGroups.1.quota. Array indices and numeric map keys look alike; use the
// segments when the difference matters.
func (p Path) String() string {
	return strings.Join(p, ".")
}

func isIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
