package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIsIgnored(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\nbuild/\n")
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "debug.log", "noise\n")
	writeFile(t, root, "build/out.bin", "bin\n")

	ig, err := NewIgnore(root)
	assert.NoError(err)

	ignored, err := ig.IsIgnored(filepath.Join(root, "debug.log"), false)
	assert.NoError(err)
	assert.True(ignored)

	ignored, err = ig.IsIgnored(filepath.Join(root, "build"), true)
	assert.NoError(err)
	assert.True(ignored)

	ignored, err = ig.IsIgnored(filepath.Join(root, "main.go"), false)
	assert.NoError(err)
	assert.False(ignored)

	// the root itself is never ignored
	ignored, err = ig.IsIgnored(root, true)
	assert.NoError(err)
	assert.False(ignored)
}

func TestIsIgnoredHidesGitDir(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeFile(t, root, ".git/HEAD", "ref: refs/heads/main\n")

	ig, err := NewIgnore(root)
	assert.NoError(err)

	ignored, err := ig.IsIgnored(filepath.Join(root, ".git"), true)
	assert.NoError(err)
	assert.True(ignored)
}

func TestNestedGitignore(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeFile(t, root, "sub/.gitignore", "secret.txt\n")
	writeFile(t, root, "sub/secret.txt", "hidden\n")
	writeFile(t, root, "sub/open.txt", "visible\n")
	writeFile(t, root, "secret.txt", "not covered by the nested file\n")

	ig, err := NewIgnore(root)
	assert.NoError(err)

	ignored, err := ig.IsIgnored(filepath.Join(root, "sub", "secret.txt"), false)
	assert.NoError(err)
	assert.True(ignored)

	ignored, err = ig.IsIgnored(filepath.Join(root, "secret.txt"), false)
	assert.NoError(err)
	assert.False(ignored)
}

func TestFiles(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, "b.go", "package b\n")
	writeFile(t, root, "a.go", "package a\n")
	writeFile(t, root, "trace.log", "noise\n")
	writeFile(t, root, "sub/c.go", "package c\n")

	ig, err := NewIgnore(root)
	assert.NoError(err)

	files, err := ig.Files(root)
	assert.NoError(err)
	assert.Equal([]string{
		filepath.Join(root, ".gitignore"),
		filepath.Join(root, "a.go"),
		filepath.Join(root, "b.go"),
		filepath.Join(root, "sub", "c.go"),
	}, files)
}

func TestWalkDirPrunesIgnoredDirs(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "vendor/\n")
	writeFile(t, root, "vendor/dep/dep.go", "package dep\n")
	writeFile(t, root, "main.go", "package main\n")

	ig, err := NewIgnore(root)
	assert.NoError(err)

	var seen []string
	err = ig.WalkDir(root, func(path string, isDir bool) error {
		seen = append(seen, path)
		return nil
	})
	assert.NoError(err)

	assert.Contains(seen, filepath.Join(root, "main.go"))
	assert.NotContains(seen, filepath.Join(root, "vendor"))
	assert.NotContains(seen, filepath.Join(root, "vendor", "dep", "dep.go"))
}
