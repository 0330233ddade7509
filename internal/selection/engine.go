package selection

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hayeah/treectx/internal/treefs"
)

// Engine owns the selection store and directory-state cache for one
// displayed tree root. All operations are synchronous and run on the
// calling goroutine; the engine is not safe for concurrent use.
type Engine struct {
	fs     treefs.FS
	store  *Store
	cache  StateCache
	root   string
	logger *zap.Logger
}

// NewEngine creates an Engine rooted at root, which is cleaned but not
// resolved. The cache is injected so tests can substitute instrumented
// fakes.
func NewEngine(fsys treefs.FS, root string, cache StateCache, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fs:     fsys,
		store:  NewStore(),
		cache:  cache,
		root:   filepath.Clean(root),
		logger: logger,
	}
}

// Root returns the displayed tree root.
func (e *Engine) Root() string {
	return e.root
}

// Store exposes the underlying selection store for persistence.
func (e *Engine) Store() *Store {
	return e.store
}

// FileSelected reports the explicit flag for path.
func (e *Engine) FileSelected(path string) bool {
	return e.store.Get(filepath.Clean(path))
}

// SetRoot moves the displayed root, discarding all selection state and the
// cache wholesale.
func (e *Engine) SetRoot(root string) {
	e.root = filepath.Clean(root)
	e.store = NewStore()
	e.cache.Clear()
}

// LoadSelection replaces the entire selection state with the given paths
// (all flagged true), clears the cache, and moves the root. Used when
// loading a saved project.
func (e *Engine) LoadSelection(root string, paths []string) {
	e.root = filepath.Clean(root)
	cleaned := make([]string, len(paths))
	for i, path := range paths {
		cleaned[i] = filepath.Clean(path)
	}
	e.store.Replace(cleaned)
	e.cache.Clear()
}

// Recalculate drops every cached directory state without touching
// selections, so the next queries re-walk the live tree.
func (e *Engine) Recalculate() {
	e.cache.Clear()
}

// ToggleFile flips the explicit flag of a single file and invalidates the
// cached states of its ancestors. The file itself has no cache entry.
// Returns the new flag value.
func (e *Engine) ToggleFile(path string) bool {
	path = filepath.Clean(path)
	next := !e.store.Get(path)
	e.store.Set(path, next)
	e.invalidateAncestors(path)
	return next
}

// SetRecursive applies selected to path and, if path is a directory, to
// every entry under it, then invalidates the cached states of path's
// ancestors. Unreadable subtrees are skipped without aborting the walk.
func (e *Engine) SetRecursive(path string, selected bool) {
	path = filepath.Clean(path)
	e.setRecursive(path, selected)
	e.invalidateAncestors(path)
}

func (e *Engine) setRecursive(path string, selected bool) {
	e.store.Set(path, selected)
	// The flag change alone makes any memoized state for path stale, so
	// drop it before consulting the live tree, which can fail below.
	e.cache.Invalidate(path)

	info, err := e.fs.Stat(path)
	if err != nil {
		e.logger.Debug("skipping unreadable path", zap.String("path", path), zap.Error(err))
		return
	}
	if !info.IsDir {
		return
	}

	entries, err := e.fs.List(path)
	if err != nil {
		e.logger.Debug("skipping unreadable directory", zap.String("path", path), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir {
			e.setRecursive(entry.Path, selected)
		} else {
			e.store.Set(entry.Path, selected)
		}
	}
}

// invalidateAncestors drops cached states from path's parent up to and
// including the displayed root. The root's entry is included because it is
// resolvable like any other directory; entries above the root are never
// cached, so walking further is harmless for out-of-tree paths.
func (e *Engine) invalidateAncestors(path string) {
	if path == e.root {
		return
	}
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		e.cache.Invalidate(dir)
		if dir == e.root || dir == filepath.Dir(dir) {
			return
		}
	}
}
