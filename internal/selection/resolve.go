package selection

import (
	"path/filepath"

	"go.uber.org/zap"
)

// Resolve computes the tri-state of dir, memoized through the cache. A
// directory is FullySelected when everything under it is selected,
// NotSelected when nothing is, and PartiallySelected otherwise. An empty or
// unreadable directory resolves from its own explicit flag alone: true →
// FullySelected, otherwise NotSelected.
func (e *Engine) Resolve(dir string) TriState {
	dir = filepath.Clean(dir)
	if state, ok := e.cache.Get(dir); ok {
		return state
	}
	state := e.resolveUncached(dir)
	e.cache.Put(dir, state)
	return state
}

func (e *Engine) resolveUncached(dir string) TriState {
	entries, err := e.fs.List(dir)
	if err != nil {
		e.logger.Debug("treating unreadable directory as empty", zap.String("path", dir), zap.Error(err))
		entries = nil
	}
	if len(entries) == 0 {
		if e.store.Get(dir) {
			return FullySelected
		}
		return NotSelected
	}

	var foundSelected, foundUnselected bool
	for _, entry := range entries {
		if entry.IsDir {
			switch e.Resolve(entry.Path) {
			case FullySelected:
				foundSelected = true
			case PartiallySelected:
				foundSelected = true
				foundUnselected = true
			default:
				foundUnselected = true
			}
		} else if e.store.Get(entry.Path) {
			foundSelected = true
		} else {
			foundUnselected = true
		}

		// Both flags set: the fold is decided, stop scanning siblings.
		if foundSelected && foundUnselected {
			break
		}
	}

	switch {
	case foundSelected && foundUnselected:
		return PartiallySelected
	case foundSelected:
		return FullySelected
	default:
		return NotSelected
	}
}
