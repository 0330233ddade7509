package selection

// StateCache memoizes directory tri-states between mutations. It is a pure
// memo of a function of (subtree structure, Store): implementations hold
// nothing that cannot be recomputed, and a cached entry must be invalidated
// before the next query whenever selection state anywhere under its
// directory changes.
type StateCache interface {
	Get(dir string) (TriState, bool)
	Put(dir string, state TriState)
	Invalidate(dir string)
	Clear()
}

// MapCache is the default in-memory StateCache.
type MapCache struct {
	states map[string]TriState
}

var _ StateCache = (*MapCache)(nil)

// NewMapCache creates an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{states: make(map[string]TriState)}
}

func (c *MapCache) Get(dir string) (TriState, bool) {
	state, ok := c.states[dir]
	return state, ok
}

func (c *MapCache) Put(dir string, state TriState) {
	c.states[dir] = state
}

func (c *MapCache) Invalidate(dir string) {
	delete(c.states, dir)
}

func (c *MapCache) Clear() {
	c.states = make(map[string]TriState)
}

// Len returns the number of cached directories.
func (c *MapCache) Len() int {
	return len(c.states)
}
