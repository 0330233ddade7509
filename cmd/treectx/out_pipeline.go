package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/hayeah/treectx"
	"github.com/hayeah/treectx/internal/metrics"
	"github.com/hayeah/treectx/internal/metrics/chart"
	"github.com/hayeah/treectx/internal/project"
	"github.com/hayeah/treectx/internal/selection"
)

// OutPipeline groups all services needed by the out command.
type OutPipeline struct {
	Args       OutCmd
	Engine     *selection.Engine
	Aggregator *treectx.Aggregator
	Projects   *project.Store
	Metrics    *metrics.OutputMetrics
	Logger     *zap.Logger
}

// Run loads the requested selection, aggregates it, writes the document to
// dest, and reports token usage to stderr.
func (p *OutPipeline) Run(dest io.Writer) error {
	if err := p.loadSelection(); err != nil {
		return err
	}

	res := p.Aggregator.Aggregate()

	if _, err := io.WriteString(dest, res.Text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := p.writeMetricsJSON(); err != nil {
		return err
	}

	PrintTokenBreakdown(os.Stderr, p.Metrics, 0, '█')
	if p.Args.Chart {
		opts := chart.DefaultOptions(termWidth, os.Stderr)
		if err := chart.Print(p.Metrics, opts); err != nil {
			return err
		}
	}
	return nil
}

// loadSelection primes the engine from the single selection source the
// arguments name.
func (p *OutPipeline) loadSelection() error {
	switch {
	case p.Args.Project != "":
		proj, err := p.Projects.Get(p.Args.Project)
		if err != nil {
			return err
		}
		p.Engine.LoadSelection(proj.RootPath, proj.SelectedPaths)
	case p.Args.All:
		p.Engine.SetRecursive(p.Engine.Root(), true)
	case p.Args.SelectFile != "":
		paths, err := readSelectFile(p.Args.SelectFile, p.Engine.Root())
		if err != nil {
			return err
		}
		p.Engine.LoadSelection(p.Engine.Root(), paths)
	default:
		paths, err := matchFiles(p.Engine.Root(), p.Args.Select)
		if err != nil {
			return err
		}
		p.Engine.LoadSelection(p.Engine.Root(), paths)
	}
	return nil
}

// writeMetricsJSON honors the --metrics flag.
func (p *OutPipeline) writeMetricsJSON() error {
	if p.Args.Metrics == "" {
		return nil
	}
	data, err := json.MarshalIndent(p.Metrics, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	data = append(data, '\n')

	if p.Args.Metrics == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(p.Args.Metrics, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
