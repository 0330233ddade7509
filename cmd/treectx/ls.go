package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hayeah/treectx/fzf"
	"github.com/hayeah/treectx/internal/config"
	"github.com/hayeah/treectx/internal/selection"
)

// LsCmd defines the command-line arguments for the ls subcommand
type LsCmd struct {
	Project   string `arg:"-p,--project" help:"Mark entries against a saved project's selection"`
	Select    string `arg:"-s,--select" help:"Only list entries matching a pattern"`
	DirsOnly  bool   `arg:"--dirs-only" help:"List directories only"`
	FilesOnly bool   `arg:"--files-only" help:"List files only"`
	Root      string `arg:"positional" help:"Tree root (defaults to the working directory)"`
}

// LsRunner encapsulates the state and behavior for the ls subcommand
type LsRunner struct {
	Args     LsCmd
	Config   *config.Config
	RootPath string
}

// NewLsRunner validates the arguments and creates a new LsRunner.
func NewLsRunner(cmdArgs LsCmd, cfg *config.Config) (*LsRunner, error) {
	if cmdArgs.DirsOnly && cmdArgs.FilesOnly {
		return nil, fmt.Errorf("--dirs-only and --files-only are mutually exclusive")
	}
	root := cmdArgs.Root
	if root == "" {
		root = "."
	}
	return &LsRunner{Args: cmdArgs, Config: cfg, RootPath: root}, nil
}

// Run prints one `<marker> <path>` line per tree entry in traversal order.
func (r *LsRunner) Run() error {
	return r.run(os.Stdout)
}

func (r *LsRunner) run(w io.Writer) error {
	app, err := BuildPickApp(r.RootPath, r.Config, PickCmd{})
	if err != nil {
		return err
	}
	if r.Args.Project != "" {
		proj, err := app.Projects.Get(r.Args.Project)
		if err != nil {
			return err
		}
		// Rebuild over the project root so gitignore rules come from the
		// right tree.
		app, err = app.Reroot(proj.RootPath)
		if err != nil {
			return err
		}
		app.Engine.LoadSelection(proj.RootPath, proj.SelectedPaths)
	}
	engine := app.Engine

	items := walkTree(app.FS, engine.Root())

	if r.Args.Select != "" {
		matcher, err := fzf.NewMatcher(r.Args.Select)
		if err != nil {
			return err
		}
		paths := make([]string, len(items))
		for i, it := range items {
			paths[i] = it.Path
		}
		matched, err := matcher.Match(paths)
		if err != nil {
			return err
		}
		keep := make(map[string]bool, len(matched))
		for _, p := range matched {
			keep[p] = true
		}
		var filtered []treeItem
		for _, it := range items {
			if keep[it.Path] {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	for _, it := range items {
		if it.IsDir && r.Args.FilesOnly {
			continue
		}
		if !it.IsDir && r.Args.DirsOnly {
			continue
		}

		var marker string
		if it.IsDir {
			marker = engine.Resolve(it.Path).String()
		} else if engine.FileSelected(it.Path) {
			marker = selection.FullySelected.String()
		} else {
			marker = selection.NotSelected.String()
		}
		fmt.Fprintf(w, "%s %s\n", marker, it.Path)
	}
	return nil
}
