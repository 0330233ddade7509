package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayeah/treectx/internal/config"
	"github.com/hayeah/treectx/internal/metrics"
	"github.com/hayeah/treectx/internal/project"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ProjectsFile:     filepath.Join(t.TempDir(), "projects.json"),
		RespectGitignore: false,
		TokenEstimator:   "simple",
		TiktokenModel:    "gpt-4o",
		LogLevel:         "error",
	}
}

func TestNewOutRunnerRequiresOneSource(t *testing.T) {
	assert := assert.New(t)
	cfg := newTestConfig(t)

	_, err := NewOutRunner(OutCmd{}, cfg)
	assert.Error(err)

	_, err = NewOutRunner(OutCmd{All: true, Select: "foo"}, cfg)
	assert.Error(err)

	_, err = NewOutRunner(OutCmd{Project: "p", All: true}, cfg)
	assert.Error(err)

	_, err = NewOutRunner(OutCmd{All: true, SelectFile: "sel.toml"}, cfg)
	assert.Error(err)

	r, err := NewOutRunner(OutCmd{All: true}, cfg)
	assert.NoError(err)
	assert.Equal(".", r.RootPath)
}

func TestNewOutRunnerRejectsUnknownEstimator(t *testing.T) {
	assert := assert.New(t)

	_, err := NewOutRunner(OutCmd{All: true, TokenEstimator: "bogus"}, newTestConfig(t))
	assert.ErrorContains(err, "unknown token estimator")

	_, err = NewOutRunner(OutCmd{All: true, TokenEstimator: "tiktoken"}, newTestConfig(t))
	assert.NoError(err)
}

func TestOutPipelineAll(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world!!",
	})
	cfg := newTestConfig(t)

	pipe, err := BuildOutPipeline(root, cfg, OutCmd{All: true})
	assert.NoError(err)

	var buf bytes.Buffer
	err = pipe.Run(&buf)
	assert.NoError(err)

	want := fmt.Sprintf("--- %s ---\nworld!!\n--- %s ---\nhello\n",
		filepath.Join(root, "sub", "b.txt"),
		filepath.Join(root, "a.txt"))
	assert.Equal(want, buf.String())
}

func TestOutPipelineSelect(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world!!",
	})
	cfg := newTestConfig(t)

	pipe, err := BuildOutPipeline(root, cfg, OutCmd{Select: "b.txt"})
	assert.NoError(err)

	var buf bytes.Buffer
	err = pipe.Run(&buf)
	assert.NoError(err)

	want := fmt.Sprintf("--- %s ---\nworld!!\n", filepath.Join(root, "sub", "b.txt"))
	assert.Equal(want, buf.String())
}

func TestOutPipelineProject(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world!!",
	})
	cfg := newTestConfig(t)

	store := project.NewStore(cfg.ProjectsFile, nil)
	err := store.Upsert(project.Project{
		Name:          "demo",
		RootPath:      root,
		SelectedPaths: []string{filepath.Join(root, "a.txt")},
	})
	assert.NoError(err)

	pipe, err := BuildOutPipeline(root, cfg, OutCmd{Project: "demo"})
	assert.NoError(err)

	var buf bytes.Buffer
	err = pipe.Run(&buf)
	assert.NoError(err)

	want := fmt.Sprintf("--- %s ---\nhello\n", filepath.Join(root, "a.txt"))
	assert.Equal(want, buf.String())
}

func TestOutPipelineMissingProject(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{"a.txt": "hello"})
	cfg := newTestConfig(t)

	pipe, err := BuildOutPipeline(root, cfg, OutCmd{Project: "nope"})
	assert.NoError(err)

	var buf bytes.Buffer
	err = pipe.Run(&buf)
	assert.ErrorIs(err, project.ErrNotFound)
}

func TestOutPipelineWritesMetricsJSON(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":     "hello",
		"sub/b.txt": "world!!",
	})
	cfg := newTestConfig(t)
	metricsPath := filepath.Join(t.TempDir(), "metrics.json")

	pipe, err := BuildOutPipeline(root, cfg, OutCmd{All: true, Metrics: metricsPath})
	assert.NoError(err)

	var buf bytes.Buffer
	err = pipe.Run(&buf)
	assert.NoError(err)

	data, err := os.ReadFile(metricsPath)
	assert.NoError(err)

	var items map[string]metrics.MetricItem
	err = json.Unmarshal(data, &items)
	assert.NoError(err)

	assert.Len(items, 4)
	assert.Equal(5, items["file:a.txt"].Bytes)
	assert.Equal(7, items[fmt.Sprintf("file:%s", filepath.Join("sub", "b.txt"))].Bytes)
}
