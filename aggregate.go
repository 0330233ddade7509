// Package treectx turns a file selection into a single aggregate document
// ready to paste into an AI chat.
package treectx

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hayeah/treectx/internal/metrics"
	"github.com/hayeah/treectx/internal/selection"
	"github.com/hayeah/treectx/internal/treefs"
)

// Result is one generated aggregate.
type Result struct {
	// Text is the full document.
	Text string
	// FileCount is the number of files included.
	FileCount int
	// TokenCount estimates the document's token cost using the bytes/4
	// rule over file contents. Headers and separators are not counted.
	TokenCount int
}

// Aggregator renders an engine's selected files into a Result.
type Aggregator struct {
	FS     treefs.FS
	Engine *selection.Engine
	Logger *zap.Logger

	// Metrics, when set, receives per-file byte/token/line measurements
	// keyed by root-relative path for the breakdown report.
	Metrics *metrics.OutputMetrics
}

// NewAggregator returns an aggregator over the engine's selection. A nil
// logger is replaced with a no-op logger.
func NewAggregator(fsys treefs.FS, engine *selection.Engine, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{FS: fsys, Engine: engine, Logger: logger}
}

// Aggregate concatenates every selected file in tree-traversal order. Each
// file contributes a header line naming its path, the raw content, and a
// blank separator line:
//
//	--- path/to/file ---
//	<content>
//
// Directories carry no content of their own. Paths that cannot be read are
// skipped without failing the run, so one bad file never loses the rest of
// the selection.
func (a *Aggregator) Aggregate() *Result {
	var b strings.Builder
	res := &Result{}

	for _, path := range a.Engine.SelectedPathsOrdered() {
		info, err := a.FS.Stat(path)
		if err != nil {
			a.Logger.Debug("skipping unreadable path", zap.String("path", path), zap.Error(err))
			continue
		}
		if !info.IsRegular {
			continue
		}
		content, err := a.FS.ReadFile(path)
		if err != nil {
			a.Logger.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
			continue
		}

		header := fmt.Sprintf("--- %s ---\n", path)
		b.WriteString(header)
		b.Write(content)
		b.WriteByte('\n')

		res.FileCount++
		res.TokenCount += metrics.EstimateTokens(string(content))

		if a.Metrics != nil {
			rel := a.relativeKey(path)
			a.Metrics.Add("header", rel, []byte(header))
			a.Metrics.Add("file", rel, content)
		}
	}

	res.Text = b.String()
	return res
}

// relativeKey shortens path to be root-relative for metrics labels.
func (a *Aggregator) relativeKey(path string) string {
	rel, err := filepath.Rel(a.Engine.Root(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
