package main

import (
	"path/filepath"

	"github.com/sahilm/fuzzy"

	"github.com/hayeah/treectx/fzf"
	"github.com/hayeah/treectx/ignore"
	"github.com/hayeah/treectx/internal/selection"
	"github.com/hayeah/treectx/internal/treefs"
)

// treeItem is one row of a rendered tree: a path with the display state the
// views need.
type treeItem struct {
	Path  string
	Name  string
	Depth int
	IsDir bool
}

// flattenTree lists the visible rows under root, descending only into
// expanded directories. Directories come before files at each level, both
// name-sorted. Listing errors prune the affected subtree.
func flattenTree(fsys treefs.FS, root string, expanded map[string]bool) []treeItem {
	var items []treeItem
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		entries, err := fsys.List(dir)
		if err != nil {
			return
		}
		dirs, files := selection.SplitEntries(entries)
		for _, d := range dirs {
			items = append(items, treeItem{Path: d.Path, Name: d.Name, Depth: depth, IsDir: true})
			if expanded[d.Path] {
				walk(d.Path, depth+1)
			}
		}
		for _, f := range files {
			items = append(items, treeItem{Path: f.Path, Name: f.Name, Depth: depth, IsDir: false})
		}
	}
	walk(root, 0)
	return items
}

// walkTree is flattenTree with every directory expanded.
func walkTree(fsys treefs.FS, root string) []treeItem {
	var items []treeItem
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		entries, err := fsys.List(dir)
		if err != nil {
			return
		}
		dirs, files := selection.SplitEntries(entries)
		for _, d := range dirs {
			items = append(items, treeItem{Path: d.Path, Name: d.Name, Depth: depth, IsDir: true})
			walk(d.Path, depth+1)
		}
		for _, f := range files {
			items = append(items, treeItem{Path: f.Path, Name: f.Name, Depth: depth, IsDir: false})
		}
	}
	walk(root, 0)
	return items
}

// fuzzyFilter narrows items to those whose root-relative path fuzzy-matches
// term, keeping the ancestors of every match so the tree shape survives.
// Items must be in tree-traversal order; the result preserves it.
func fuzzyFilter(items []treeItem, root, term string) []treeItem {
	if term == "" {
		return items
	}

	paths := make([]string, len(items))
	for i, it := range items {
		rel, err := filepath.Rel(root, it.Path)
		if err != nil {
			rel = it.Path
		}
		paths[i] = filepath.ToSlash(rel)
	}

	keep := make(map[string]bool)
	for _, match := range fuzzy.Find(term, paths) {
		it := items[match.Index]
		keep[it.Path] = true
		for dir := filepath.Dir(it.Path); dir != root && dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			keep[dir] = true
		}
	}

	var out []treeItem
	for _, it := range items {
		if keep[it.Path] {
			out = append(out, it)
		}
	}
	return out
}

// matchFiles returns the non-ignored files under root whose paths satisfy
// the pattern, in sorted order.
func matchFiles(root, pattern string) ([]string, error) {
	ig, err := ignore.NewIgnore(root)
	if err != nil {
		return nil, err
	}
	files, err := ig.Files(root)
	if err != nil {
		return nil, err
	}
	matcher, err := fzf.NewMatcher(pattern)
	if err != nil {
		return nil, err
	}
	return matcher.Match(files)
}
