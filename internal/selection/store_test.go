package selection

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreDefaultsToUnselected(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()

	assert.False(store.Get("/never/seen"))
	assert.Zero(store.Len())

	store.Set("/a", true)
	store.Set("/a", true)
	assert.True(store.Get("/a"))
	assert.Equal(1, store.Len())

	// Deselecting keeps the entry but flips the flag.
	store.Set("/a", false)
	assert.False(store.Get("/a"))
	assert.Equal(1, store.Len())
}

func TestStoreSelectedPaths(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	store.Set("/a", true)
	store.Set("/b", false)
	store.Set("/c", true)

	paths := store.SelectedPaths()
	sort.Strings(paths)
	assert.Equal([]string{"/a", "/c"}, paths)
}

func TestStoreReplace(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	store.Set("/old", true)

	store.Replace([]string{"/new1", "/new2"})
	assert.False(store.Get("/old"))
	assert.True(store.Get("/new1"))
	assert.True(store.Get("/new2"))
	assert.Equal(2, store.Len())
}

func TestMapCache(t *testing.T) {
	assert := assert.New(t)
	cache := NewMapCache()

	_, ok := cache.Get("/d")
	assert.False(ok)

	cache.Put("/d", PartiallySelected)
	state, ok := cache.Get("/d")
	assert.True(ok)
	assert.Equal(PartiallySelected, state)

	cache.Invalidate("/d")
	_, ok = cache.Get("/d")
	assert.False(ok)

	cache.Put("/d", FullySelected)
	cache.Put("/e", NotSelected)
	cache.Clear()
	assert.Zero(cache.Len())
}

func TestTriStateString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("[ ]", NotSelected.String())
	assert.Equal("[~]", PartiallySelected.String())
	assert.Equal("[x]", FullySelected.String())
}
