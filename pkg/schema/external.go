package schema

import (
	"errors"
	"fmt"
	"slices"
)

// External declares a call to an out-of-process constraint check such as a
// uniqueness lookup. The engine resolves ID to a configured hook.
type External struct {
	// ID names the hook that performs the check.
	ID string
	// Path is the value handed to the hook and the default location of its violation.
	Path string
	// DependsOn lists further paths that must be free of violations for the hook to run.
	DependsOn []string
	// After lists hooks that must pass before this one runs.
	After []string
}

// orderExternals groups hooks into waves: every hook appears in a later wave
// than each hook it runs after. Declaration order is kept within a wave.
func orderExternals(exts []External) ([][]External, error) {
	index := make(map[string]int, len(exts))
	for i, e := range exts {
		if e.ID == "" {
			return nil, errors.Join(ErrUnknownHook, fmt.Errorf("external rule without id at %q", e.Path))
		}
		if _, dup := index[e.ID]; dup {
			return nil, errors.Join(ErrDuplicateHook, fmt.Errorf("%q", e.ID))
		}
		index[e.ID] = i
	}
	for _, e := range exts {
		for _, dep := range e.After {
			if _, ok := index[dep]; !ok {
				return nil, errors.Join(ErrUnknownHook, fmt.Errorf("%q after %q", e.ID, dep))
			}
		}
	}

	level := make([]int, len(exts))
	state := make([]uint8, len(exts)) // 0 new, 1 visiting, 2 done
	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case 1:
			return errors.Join(ErrHookCycle, fmt.Errorf("at %q", exts[i].ID))
		case 2:
			return nil
		}
		state[i] = 1
		for _, dep := range exts[i].After {
			j := index[dep]
			if err := visit(j); err != nil {
				return err
			}
			level[i] = max(level[i], level[j]+1)
		}
		state[i] = 2
		return nil
	}
	for i := range exts {
		if err := visit(i); err != nil {
			return nil, err
		}
	}

	var waves [][]External
	for i, e := range exts {
		for len(waves) <= level[i] {
			waves = append(waves, nil)
		}
		e.DependsOn = slices.Clone(e.DependsOn)
		e.After = slices.Clone(e.After)
		waves[level[i]] = append(waves[level[i]], e)
	}
	return waves, nil
}
