// Package ignore answers whether a path is hidden by gitignore rules.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Ignore matches paths against the gitignore patterns found under a root.
type Ignore struct {
	matcher  gitignore.Matcher
	rootPath string
}

// NewIgnore reads every .gitignore under rootPath, including nested ones,
// and returns a matcher over them.
func NewIgnore(rootPath string) (*Ignore, error) {
	fs := osfs.New(rootPath)
	patterns, err := gitignore.ReadPatterns(fs, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to read gitignore patterns: %w", err)
	}

	return &Ignore{
		matcher:  gitignore.NewMatcher(patterns),
		rootPath: rootPath,
	}, nil
}

// IsIgnored reports whether path should be hidden. The .git directory is
// always hidden; the root itself never is.
func (ig *Ignore) IsIgnored(path string, isDir bool) (bool, error) {
	if isDir && filepath.Base(path) == ".git" {
		return true, nil
	}

	relPath, err := filepath.Rel(ig.rootPath, path)
	if err != nil {
		return false, err
	}
	if relPath == "." {
		return false, nil
	}

	parts := strings.Split(relPath, string(os.PathSeparator))
	return ig.matcher.Match(parts, isDir), nil
}

// WalkDir walks the tree rooted at root, calling fn for every path the
// gitignore rules keep, including root itself. Ignored directories are
// pruned without descending.
func (ig *Ignore) WalkDir(root string, fn func(path string, isDir bool) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		isDir := d.IsDir()
		ignored, err := ig.IsIgnored(path, isDir)
		if err != nil {
			return err
		}
		if ignored {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		return fn(path, isDir)
	})
}

// Files returns every non-ignored regular file under root, sorted. This is
// the candidate list pattern matching runs against.
func (ig *Ignore) Files(root string) ([]string, error) {
	var files []string
	err := ig.WalkDir(root, func(path string, isDir bool) error {
		if !isDir {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
