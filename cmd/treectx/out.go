package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/hayeah/treectx/internal/config"
)

// OutCmd contains the arguments for the 'out' subcommand
type OutCmd struct {
	Project        string `arg:"-p,--project" help:"Aggregate a saved project's selection"`
	All            bool   `arg:"-a,--all" help:"Select every file under the root"`
	Select         string `arg:"-s,--select" help:"Select files matching a pattern"`
	SelectFile     string `arg:"--select-file" help:"Select the files listed in a TOML document"`
	Output         string `arg:"-o,--output" help:"Output destination: '-' for stdout; file path to write; if not set, copy to clipboard"`
	TokenEstimator string `arg:"--token-estimator" help:"Token counter for the breakdown: 'simple' (size/4) or 'tiktoken'; defaults to the configured value"`
	Metrics        string `arg:"-m,--metrics" help:"Write metrics JSON ('-' = stdout)"`
	Chart          bool   `arg:"--chart" help:"Render a per-directory token chart to stderr"`
	Root           string `arg:"positional" help:"Tree root (defaults to the working directory)"`
}

// OutRunner encapsulates the state and behavior for the out subcommand
type OutRunner struct {
	Args     OutCmd
	Config   *config.Config
	RootPath string
}

// NewOutRunner validates the arguments and creates a new OutRunner.
func NewOutRunner(cmdArgs OutCmd, cfg *config.Config) (*OutRunner, error) {
	root := cmdArgs.Root
	if root == "" {
		root = "."
	}

	sources := 0
	if cmdArgs.Project != "" {
		sources++
	}
	if cmdArgs.All {
		sources++
	}
	if cmdArgs.Select != "" {
		sources++
	}
	if cmdArgs.SelectFile != "" {
		sources++
	}
	if sources != 1 {
		return nil, fmt.Errorf("exactly one of --project, --all, --select, or --select-file must be given")
	}

	switch cmdArgs.TokenEstimator {
	case "", "simple", "tiktoken":
	default:
		return nil, fmt.Errorf("unknown token estimator: %s", cmdArgs.TokenEstimator)
	}

	return &OutRunner{Args: cmdArgs, Config: cfg, RootPath: root}, nil
}

// Run aggregates the selection and writes it to the chosen destination.
func (r *OutRunner) Run() error {
	var buf bytes.Buffer
	var dest io.Writer
	switch {
	case r.Args.Output == "-":
		dest = os.Stdout
	case r.Args.Output != "":
		file, err := os.Create(r.Args.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", r.Args.Output, err)
		}
		defer file.Close()
		dest = file
	default:
		dest = &buf
	}

	pipe, err := BuildOutPipeline(r.RootPath, r.Config, r.Args)
	if err != nil {
		return err
	}
	if r.Args.Project != "" {
		proj, err := pipe.Projects.Get(r.Args.Project)
		if err != nil {
			return err
		}
		// Rebuild over the project root so gitignore rules come from the
		// right tree.
		pipe, err = BuildOutPipeline(proj.RootPath, r.Config, r.Args)
		if err != nil {
			return err
		}
	}

	if err := pipe.Run(dest); err != nil {
		return err
	}

	if r.Args.Output == "" {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Output copied to clipboard")
	}

	return nil
}
