// Package treefs defines the read-only filesystem view the selection
// engine and aggregator operate on. Implementations report permission and
// IO failures as ordinary errors; callers decide how to recover.
package treefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hayeah/treectx/ignore"
)

// Entry is one direct child of a directory.
type Entry struct {
	Name  string
	Path  string // parent dir joined with Name
	IsDir bool
}

// Info describes a single path.
type Info struct {
	IsDir     bool
	IsRegular bool
	Size      int64
}

// FS is the tree view presented to the engine. List returns direct
// children in no particular order.
type FS interface {
	Stat(path string) (Info, error)
	List(dir string) ([]Entry, error)
	ReadFile(path string) ([]byte, error)
}

// OS reads the live filesystem.
type OS struct{}

var _ FS = OS{}

func (OS) Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return Info{
		IsDir:     fi.IsDir(),
		IsRegular: fi.Mode().IsRegular(),
		Size:      fi.Size(),
	}, nil
}

func (OS) List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{
			Name:  de.Name(),
			Path:  filepath.Join(dir, de.Name()),
			IsDir: de.IsDir(),
		})
	}
	return entries, nil
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Filtered wraps another FS and hides gitignored entries from List. Stat
// and ReadFile pass through so explicitly addressed paths stay reachable.
type Filtered struct {
	inner FS
	ig    *ignore.Ignore
}

var _ FS = (*Filtered)(nil)

// NewFiltered builds a Filtered view over inner using the gitignore
// patterns found under root.
func NewFiltered(inner FS, root string) (*Filtered, error) {
	ig, err := ignore.NewIgnore(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	return &Filtered{inner: inner, ig: ig}, nil
}

func (f *Filtered) Stat(path string) (Info, error) {
	return f.inner.Stat(path)
}

func (f *Filtered) List(dir string) ([]Entry, error) {
	entries, err := f.inner.List(dir)
	if err != nil {
		return nil, err
	}
	kept := entries[:0]
	for _, ent := range entries {
		ignored, err := f.ig.IsIgnored(ent.Path, ent.IsDir)
		if err != nil || ignored {
			continue
		}
		kept = append(kept, ent)
	}
	return kept, nil
}

func (f *Filtered) ReadFile(path string) ([]byte, error) {
	return f.inner.ReadFile(path)
}
