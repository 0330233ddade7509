package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hayeah/treectx/internal/assert"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "projects.json"), nil)
}

func TestLoadMissingFile(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	projects, err := store.Load()
	assert.NoError(err)
	assert.NotNil(projects)
	assert.Empty(projects)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	saved := []Project{
		{
			Name:          "alpha",
			RootPath:      "/work/alpha",
			SelectedPaths: []string{"/work/alpha/src", "/work/alpha/src/main.go"},
		},
		{
			Name:          "beta",
			RootPath:      "/work/beta",
			SelectedPaths: []string{},
		},
	}
	assert.NoError(store.Save(saved))

	loaded, err := store.Load()
	assert.NoError(err)
	assert.Equal(saved, loaded)

	raw, err := os.ReadFile(store.Path())
	assert.NoError(err)
	assert.True(strings.HasSuffix(string(raw), "\n"))
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	assert := assert.New(t)
	store := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "projects.json"), nil)

	assert.NoError(store.Save([]Project{{Name: "a", RootPath: "/a", SelectedPaths: []string{}}}))

	projects, err := store.Load()
	assert.NoError(err)
	assert.Len(projects, 1)
}

func TestLoadTolerantSyntax(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	doc := `{
	// saved selections
	"projects": [
		{
			"name": "alpha",
			"root_path": "/work/alpha",
			"selected_paths": [
				"/work/alpha/src",
				"/work/alpha/src/main.go",
			],
		},
	],
}`
	assert.NoError(os.WriteFile(store.Path(), []byte(doc), 0o644))

	projects, err := store.Load()
	assert.NoError(err)
	assert.EqualToJSONFixture("projects", projects)
}

func TestLoadRepairsDamagedEntries(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	doc := `{
	"projects": [
		{"root_path": "/work/alpha", "selected_paths": ["/work/alpha/a.txt"]},
		{"name": "beta", "selected_paths": ["/work/beta/b.txt"]},
		{"name": "gamma", "root_path": "/work/gamma"}
	]
}`
	assert.NoError(os.WriteFile(store.Path(), []byte(doc), 0o644))

	projects, err := store.Load()
	assert.NoError(err)
	assert.Len(projects, 3)

	wd, err := os.Getwd()
	assert.NoError(err)

	assert.Equal("unnamed", projects[0].Name)
	assert.Equal("/work/alpha", projects[0].RootPath)

	assert.Equal("beta", projects[1].Name)
	assert.Equal(wd, projects[1].RootPath)

	assert.Equal("gamma", projects[2].Name)
	assert.NotNil(projects[2].SelectedPaths)
	assert.Empty(projects[2].SelectedPaths)
}

func TestLoadRepairsWronglyTypedField(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	doc := `{
	"projects": [
		{"name": 42, "root_path": "/work/alpha", "selected_paths": []},
		{"name": "beta", "root_path": "/work/beta", "selected_paths": []}
	]
}`
	assert.NoError(os.WriteFile(store.Path(), []byte(doc), 0o644))

	projects, err := store.Load()
	assert.NoError(err)
	assert.Len(projects, 2)
	assert.Equal("unnamed", projects[0].Name)
	assert.Equal("/work/alpha", projects[0].RootPath)
	assert.Equal("beta", projects[1].Name)
}

func TestLoadMalformedDocument(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	assert.NoError(os.WriteFile(store.Path(), []byte(`{"projects": [`), 0o644))

	_, err := store.Load()
	assert.ErrorIs(err, ErrMalformed)
}

func TestGet(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	assert.NoError(store.Save([]Project{
		{Name: "alpha", RootPath: "/work/alpha", SelectedPaths: []string{}},
	}))

	p, err := store.Get("alpha")
	assert.NoError(err)
	assert.Equal("/work/alpha", p.RootPath)

	_, err = store.Get("missing")
	assert.ErrorIs(err, ErrNotFound)
}

func TestUpsert(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	assert.NoError(store.Upsert(Project{Name: "alpha", RootPath: "/v1", SelectedPaths: []string{}}))
	assert.NoError(store.Upsert(Project{Name: "beta", RootPath: "/b", SelectedPaths: []string{}}))
	assert.NoError(store.Upsert(Project{Name: "alpha", RootPath: "/v2", SelectedPaths: []string{"/v2/x"}}))

	projects, err := store.Load()
	assert.NoError(err)
	assert.Len(projects, 2)
	assert.Equal("alpha", projects[0].Name)
	assert.Equal("/v2", projects[0].RootPath)
	assert.Equal([]string{"/v2/x"}, projects[0].SelectedPaths)
	assert.Equal("beta", projects[1].Name)
}

func TestDelete(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	assert.NoError(store.Save([]Project{
		{Name: "alpha", RootPath: "/a", SelectedPaths: []string{}},
		{Name: "beta", RootPath: "/b", SelectedPaths: []string{}},
	}))

	assert.NoError(store.Delete("alpha"))

	projects, err := store.Load()
	assert.NoError(err)
	assert.Len(projects, 1)
	assert.Equal("beta", projects[0].Name)

	assert.ErrorIs(store.Delete("alpha"), ErrNotFound)
}
