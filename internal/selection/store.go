package selection

// Store maps normalized absolute paths to their explicit selection flag.
// Absence of a key means the path was never observed and is treated as not
// selected. Entries are only removed by wholesale replacement; stale
// entries for paths outside the current root are tolerated and ignored by
// resolution.
type Store struct {
	flags map[string]bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{flags: make(map[string]bool)}
}

// Set records the explicit flag for path. Idempotent.
func (s *Store) Set(path string, selected bool) {
	s.flags[path] = selected
}

// Get returns the stored flag, or false if the path was never flagged.
func (s *Store) Get(path string) bool {
	return s.flags[path]
}

// SelectedPaths returns every path currently flagged true, in map order.
// Callers needing determinism order the result themselves.
func (s *Store) SelectedPaths() []string {
	paths := make([]string, 0, len(s.flags))
	for path, selected := range s.flags {
		if selected {
			paths = append(paths, path)
		}
	}
	return paths
}

// Replace discards all entries and flags each given path true.
func (s *Store) Replace(paths []string) {
	s.flags = make(map[string]bool, len(paths))
	for _, path := range paths {
		s.flags[path] = true
	}
}

// Len returns the number of explicitly flagged paths (true or false).
func (s *Store) Len() int {
	return len(s.flags)
}
