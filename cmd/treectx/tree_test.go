package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayeah/treectx/internal/treefs"
)

// writeTree materializes the given relative path -> content map under a
// fresh temp dir and returns its root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		err := os.MkdirAll(filepath.Dir(path), 0o755)
		assert.NoError(t, err)
		err = os.WriteFile(path, []byte(content), 0o644)
		assert.NoError(t, err)
	}
	return root
}

func itemPaths(t *testing.T, root string, items []treeItem) []string {
	t.Helper()
	rels := make([]string, 0, len(items))
	for _, it := range items {
		rel, err := filepath.Rel(root, it.Path)
		assert.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestFlattenTreeCollapsed(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":           "a",
		"sub/b.txt":       "b",
		"sub/inner/c.txt": "c",
	})

	items := flattenTree(treefs.OS{}, root, map[string]bool{})

	assert.Equal([]string{"sub", "a.txt"}, itemPaths(t, root, items))
	assert.True(items[0].IsDir)
	assert.False(items[1].IsDir)
	assert.Equal(0, items[0].Depth)
	assert.Equal("sub", items[0].Name)
}

func TestFlattenTreeExpanded(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":           "a",
		"sub/b.txt":       "b",
		"sub/inner/c.txt": "c",
	})

	expanded := map[string]bool{filepath.Join(root, "sub"): true}
	items := flattenTree(treefs.OS{}, root, expanded)

	// Directories sort before files at each level; inner stays collapsed.
	assert.Equal([]string{"sub", "sub/inner", "sub/b.txt", "a.txt"}, itemPaths(t, root, items))
	assert.Equal(1, items[1].Depth)
	assert.Equal(1, items[2].Depth)
	assert.Equal(0, items[3].Depth)
}

func TestWalkTree(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":           "a",
		"sub/b.txt":       "b",
		"sub/inner/c.txt": "c",
	})

	items := walkTree(treefs.OS{}, root)

	assert.Equal([]string{
		"sub",
		"sub/inner",
		"sub/inner/c.txt",
		"sub/b.txt",
		"a.txt",
	}, itemPaths(t, root, items))
}

func TestFuzzyFilterKeepsAncestors(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":           "a",
		"sub/b.txt":       "b",
		"sub/inner/c.txt": "c",
	})

	items := fuzzyFilter(walkTree(treefs.OS{}, root), root, "c")

	assert.Equal([]string{"sub", "sub/inner", "sub/inner/c.txt"}, itemPaths(t, root, items))
}

func TestFuzzyFilterNoMatches(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{"a.txt": "a"})

	items := fuzzyFilter(walkTree(treefs.OS{}, root), root, "zzz")
	assert.Empty(items)
}

func TestMatchFiles(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		".gitignore": "*.log\n",
		"a.go":       "package a",
		"b.log":      "noise",
		"sub/c.go":   "package c",
	})

	matched, err := matchFiles(root, ".go$")
	assert.NoError(err)

	assert.Equal([]string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "sub", "c.go"),
	}, matched)
}
