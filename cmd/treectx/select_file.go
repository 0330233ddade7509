package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// selectEntry is one [[file]] block in a selection document.
type selectEntry struct {
	Path string `toml:"path"`
}

// selectDocument is the TOML shape of a checked-in selection:
//
//	[[file]]
//	path = "internal/selection/engine.go"
//
//	[[file]]
//	path = "cmd/treectx/main.go"
type selectDocument struct {
	Files []selectEntry `toml:"file"`
}

// ParseSelectFile reads a TOML selection document and resolves each entry
// against rootPath. Duplicates collapse to the first occurrence.
func ParseSelectFile(r io.Reader, rootPath string) ([]string, error) {
	var doc selectDocument
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	seen := make(map[string]bool, len(doc.Files))
	var paths []string
	for _, f := range doc.Files {
		if f.Path == "" {
			return nil, fmt.Errorf("file entry with empty path")
		}
		p := f.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(rootPath, p)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths, nil
}

func readSelectFile(path, rootPath string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSelectFile(f, rootPath)
}
