package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/hayeah/treectx/internal/config"
	"github.com/hayeah/treectx/internal/logutil"
	"github.com/hayeah/treectx/internal/project"
)

// ProjectsCmd defines the command-line arguments for the projects subcommand
type ProjectsCmd struct {
	List *ProjectsListCmd `arg:"subcommand:list" help:"List saved projects"`
	Rm   *ProjectsRmCmd   `arg:"subcommand:rm" help:"Delete a saved project"`
}

// ProjectsListCmd has no arguments.
type ProjectsListCmd struct{}

// ProjectsRmCmd names the project to delete.
type ProjectsRmCmd struct {
	Name string `arg:"positional,required" help:"Name of the project to delete"`
}

// ProjectsRunner encapsulates the state and behavior for the projects subcommand
type ProjectsRunner struct {
	Args  ProjectsCmd
	Store *project.Store
}

// NewProjectsRunner creates and initializes a new ProjectsRunner.
func NewProjectsRunner(cmdArgs ProjectsCmd, cfg *config.Config) (*ProjectsRunner, error) {
	logger, err := logutil.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &ProjectsRunner{
		Args:  cmdArgs,
		Store: project.NewStore(cfg.ProjectsFile, logger),
	}, nil
}

// Run dispatches to list or rm.
func (r *ProjectsRunner) Run() error {
	switch {
	case r.Args.List != nil:
		return r.list(os.Stdout)
	case r.Args.Rm != nil:
		return r.Store.Delete(r.Args.Rm.Name)
	default:
		return fmt.Errorf("no subcommand specified, use 'list' or 'rm'")
	}
}

func (r *ProjectsRunner) list(w io.Writer) error {
	projects, err := r.Store.Load()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%d paths\n", p.Name, p.RootPath, len(p.SelectedPaths))
	}
	return tw.Flush()
}
