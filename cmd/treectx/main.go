package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/hayeah/treectx/internal/config"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Pick     *PickCmd     `arg:"subcommand:pick" help:"Interactively select files and copy their aggregate"`
	Out      *OutCmd      `arg:"subcommand:out" help:"Aggregate a selection without the UI"`
	Ls       *LsCmd       `arg:"subcommand:ls" help:"Print the tree with selection markers"`
	Projects *ProjectsCmd `arg:"subcommand:projects" help:"Manage saved projects"`

	Config string `arg:"--config" help:"Path to a config file (defaults to .treectx.yml, then ~/.treectx/config.yml)"`
}

// Runner encapsulates the state and behavior for the CLI
type Runner struct {
	Args   Args
	Config *config.Config
}

// NewRunner creates and initializes a new Runner
func NewRunner(args Args) (*Runner, error) {
	cfg, err := config.Load(args.Config)
	if err != nil {
		return nil, err
	}
	return &Runner{Args: args, Config: cfg}, nil
}

// Run dispatches to the appropriate subcommand. With no subcommand the
// interactive picker runs against the working directory.
func (r *Runner) Run() error {
	switch {
	case r.Args.Out != nil:
		outRunner, err := NewOutRunner(*r.Args.Out, r.Config)
		if err != nil {
			return err
		}
		return outRunner.Run()
	case r.Args.Ls != nil:
		lsRunner, err := NewLsRunner(*r.Args.Ls, r.Config)
		if err != nil {
			return err
		}
		return lsRunner.Run()
	case r.Args.Projects != nil:
		projectsRunner, err := NewProjectsRunner(*r.Args.Projects, r.Config)
		if err != nil {
			return err
		}
		return projectsRunner.Run()
	default:
		pick := PickCmd{}
		if r.Args.Pick != nil {
			pick = *r.Args.Pick
		}
		pickRunner, err := NewPickRunner(pick, r.Config)
		if err != nil {
			return err
		}
		return pickRunner.Run()
	}
}

// main is our entrypoint: parse args and run the application
func main() {
	var args Args
	arg.MustParse(&args)

	runner, err := NewRunner(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := runner.Run(); err != nil {
		log.Fatal(err)
	}
}
