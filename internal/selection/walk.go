package selection

import (
	"sort"

	"go.uber.org/zap"

	"github.com/hayeah/treectx/internal/treefs"
)

// SelectedPathsOrdered returns every flagged-true path in tree-traversal
// order: depth-first from the root, directories before files at each level,
// each group name-sorted. Flagged paths no longer under the current root
// (stale entries from earlier roots) follow in lexicographic order. This is
// the order used for persistence and aggregation, so repeated saves of the
// same selection produce identical documents.
func (e *Engine) SelectedPathsOrdered() []string {
	ordered := []string{}
	visited := map[string]bool{e.root: true}

	if e.store.Get(e.root) {
		ordered = append(ordered, e.root)
	}
	e.walkSelected(e.root, visited, &ordered)

	var stale []string
	for _, path := range e.store.SelectedPaths() {
		if !visited[path] {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale)
	return append(ordered, stale...)
}

func (e *Engine) walkSelected(dir string, visited map[string]bool, ordered *[]string) {
	entries, err := e.fs.List(dir)
	if err != nil {
		e.logger.Debug("skipping unreadable directory", zap.String("path", dir), zap.Error(err))
		return
	}
	dirs, files := SplitEntries(entries)
	for _, d := range dirs {
		visited[d.Path] = true
		if e.store.Get(d.Path) {
			*ordered = append(*ordered, d.Path)
		}
		e.walkSelected(d.Path, visited, ordered)
	}
	for _, f := range files {
		visited[f.Path] = true
		if e.store.Get(f.Path) {
			*ordered = append(*ordered, f.Path)
		}
	}
}

// SplitEntries partitions entries into directories and files, each group
// sorted by name. Tree views and the ordered walk share this so rendering
// and output agree on traversal order.
func SplitEntries(entries []treefs.Entry) (dirs, files []treefs.Entry) {
	for _, entry := range entries {
		if entry.IsDir {
			dirs = append(dirs, entry)
		} else {
			files = append(files, entry)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return dirs, files
}
