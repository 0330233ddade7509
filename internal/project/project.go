// Package project persists named file selections as a single JSON document.
//
// The document is a list of projects, each pairing a display name with the
// tree root it was captured against and the explicitly selected paths. Every
// mutation rewrites the whole document; there are no partial updates.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"go.uber.org/zap"
)

var (
	// ErrNotFound reports that no saved project carries the requested name.
	ErrNotFound = errors.New("project not found")

	// ErrMalformed reports that the projects document could not be parsed.
	ErrMalformed = errors.New("malformed projects document")
)

// Project is one saved selection.
type Project struct {
	Name          string   `json:"name"`
	RootPath      string   `json:"root_path"`
	SelectedPaths []string `json:"selected_paths"`
}

type document struct {
	Projects []Project `json:"projects"`
}

// Store reads and writes the projects document at a fixed path.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore returns a store backed by the file at path. A nil logger is
// replaced with a no-op logger.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the location of the projects document.
func (s *Store) Path() string {
	return s.path
}

// Load returns every saved project. A missing document yields an empty list.
// Comments and trailing commas are tolerated, and entries with missing or
// wrongly typed fields are repaired with defaults instead of failing the
// whole load. Only a document that cannot be parsed at all is an error.
func (s *Store) Load() ([]Project, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file: %w", err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var doc document
	if err := json.Unmarshal(std, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		// A type mismatch leaves the offending field at its zero value and
		// the rest of the document decoded. Repair below.
		s.logger.Warn("recovering wrongly typed field in projects document",
			zap.String("field", typeErr.Field))
	}

	for i := range doc.Projects {
		s.repair(&doc.Projects[i], i)
	}
	return doc.Projects, nil
}

// repair fills the defaults for fields a damaged entry is missing: a
// placeholder name, the working directory as root, and an empty selection.
func (s *Store) repair(p *Project, index int) {
	if p.Name == "" {
		p.Name = "unnamed"
		s.logger.Warn("project missing name, using placeholder", zap.Int("index", index))
	}
	if p.RootPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		p.RootPath = wd
		s.logger.Warn("project missing root path, using working directory",
			zap.String("name", p.Name))
	}
	if p.SelectedPaths == nil {
		p.SelectedPaths = []string{}
	}
}

// Save writes the full project list, replacing whatever the document held.
// The parent directory is created if needed.
func (s *Store) Save(projects []Project) error {
	if projects == nil {
		projects = []Project{}
	}
	data, err := json.MarshalIndent(document{Projects: projects}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create projects directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write projects file: %w", err)
	}
	return nil
}

// Get returns the saved project with the given name.
func (s *Store) Get(name string) (Project, error) {
	projects, err := s.Load()
	if err != nil {
		return Project{}, err
	}
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Upsert saves p, replacing an existing project of the same name or
// appending a new one.
func (s *Store) Upsert(p Project) error {
	projects, err := s.Load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range projects {
		if projects[i].Name == p.Name {
			projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, p)
	}
	return s.Save(projects)
}

// Delete removes the named project. Deleting a name that is not saved
// returns ErrNotFound.
func (s *Store) Delete(name string) error {
	projects, err := s.Load()
	if err != nil {
		return err
	}
	kept := make([]Project, 0, len(projects))
	found := false
	for _, p := range projects {
		if p.Name == name {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.Save(kept)
}
