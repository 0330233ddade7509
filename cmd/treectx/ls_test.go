package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayeah/treectx/internal/project"
)

func TestNewLsRunnerRejectsConflictingFilters(t *testing.T) {
	assert := assert.New(t)

	_, err := NewLsRunner(LsCmd{DirsOnly: true, FilesOnly: true}, newTestConfig(t))
	assert.Error(err)
}

func TestLsDefaultMarkers(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
	})

	r, err := NewLsRunner(LsCmd{Root: root}, newTestConfig(t))
	assert.NoError(err)

	var buf bytes.Buffer
	err = r.run(&buf)
	assert.NoError(err)

	want := fmt.Sprintf("[ ] %s\n[ ] %s\n[ ] %s\n",
		filepath.Join(root, "sub"),
		filepath.Join(root, "sub", "b.txt"),
		filepath.Join(root, "a.txt"))
	assert.Equal(want, buf.String())
}

func TestLsProjectMarkers(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
		"sub/c.txt": "again",
	})
	cfg := newTestConfig(t)

	store := project.NewStore(cfg.ProjectsFile, nil)
	err := store.Upsert(project.Project{
		Name:          "demo",
		RootPath:      root,
		SelectedPaths: []string{filepath.Join(root, "sub", "b.txt")},
	})
	assert.NoError(err)

	r, err := NewLsRunner(LsCmd{Project: "demo", Root: root}, cfg)
	assert.NoError(err)

	var buf bytes.Buffer
	err = r.run(&buf)
	assert.NoError(err)

	want := fmt.Sprintf("[~] %s\n[x] %s\n[ ] %s\n[ ] %s\n",
		filepath.Join(root, "sub"),
		filepath.Join(root, "sub", "b.txt"),
		filepath.Join(root, "sub", "c.txt"),
		filepath.Join(root, "a.txt"))
	assert.Equal(want, buf.String())
}

func TestLsDirsOnly(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
	})

	r, err := NewLsRunner(LsCmd{DirsOnly: true, Root: root}, newTestConfig(t))
	assert.NoError(err)

	var buf bytes.Buffer
	err = r.run(&buf)
	assert.NoError(err)

	want := fmt.Sprintf("[ ] %s\n", filepath.Join(root, "sub"))
	assert.Equal(want, buf.String())
}

func TestLsSelectPattern(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world",
	})

	r, err := NewLsRunner(LsCmd{Select: "b.txt", Root: root}, newTestConfig(t))
	assert.NoError(err)

	var buf bytes.Buffer
	err = r.run(&buf)
	assert.NoError(err)

	want := fmt.Sprintf("[ ] %s\n", filepath.Join(root, "sub", "b.txt"))
	assert.Equal(want, buf.String())
}

func TestLsMissingProject(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{"a.txt": "hello"})

	r, err := NewLsRunner(LsCmd{Project: "nope", Root: root}, newTestConfig(t))
	assert.NoError(err)

	var buf bytes.Buffer
	err = r.run(&buf)
	assert.ErrorIs(err, project.ErrNotFound)
}
