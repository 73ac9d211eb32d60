package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vexdoc/internal/config"
	"vexdoc/internal/renderer"
)

const annotatedRust = `//! Test Function
/*startsummary
This is a test function that does something useful.
endsummary*/

fn test_function() {
    println!("Hello, world!");
}
// ENDVEXDOC
`

func rustConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		InlineComments: "//",
		MultiComments:  []string{"/*", "*/"},
		FileExtensions: []string{"rs"},
		OutputDir:      filepath.Join(root, "docs"),
	}
	return cfg, root
}

func writeSource(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerate_WritesPages(t *testing.T) {
	cfg, root := rustConfig(t)
	file := writeSource(t, root, "test.rs", annotatedRust)

	var out bytes.Buffer
	p := New(cfg, renderer.NewHTML(), &out, Options{})

	report, err := p.Generate(context.Background(), []string{file})
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.Equal(t, 1, report.Documented())
	assert.Equal(t, 1, report.Files[0].Blocks)
	assert.Empty(t, report.Files[0].Warnings)

	pagePath := filepath.Join(cfg.OutputDir, report.Files[0].Output)
	page, err := os.ReadFile(pagePath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Test Function")
	assert.Contains(t, string(page), "This is a test function")

	// The run report lands next to the pages.
	raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, ReportName))
	require.NoError(t, err)
	var saved Report
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, report.Documented(), saved.Documented())
}

func TestGenerate_NoticeForUnannotatedFile(t *testing.T) {
	cfg, root := rustConfig(t)
	file := writeSource(t, root, "plain.rs", "fn nothing_here() {}\n")

	var out bytes.Buffer
	p := New(cfg, renderer.NewHTML(), &out, Options{})

	report, err := p.Generate(context.Background(), []string{file})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Documented())
	assert.Contains(t, out.String(), "contained no annotations")
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, renderer.OutputName("plain.rs", "html")))
}

func TestGenerate_QuietSuppressesNotices(t *testing.T) {
	cfg, root := rustConfig(t)
	file := writeSource(t, root, "plain.rs", "fn nothing_here() {}\n")

	var out bytes.Buffer
	p := New(cfg, renderer.NewHTML(), &out, Options{Quiet: true})

	_, err := p.Generate(context.Background(), []string{file})
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestGenerate_VerboseAnnouncesFiles(t *testing.T) {
	cfg, root := rustConfig(t)
	file := writeSource(t, root, "test.rs", annotatedRust)

	var out bytes.Buffer
	p := New(cfg, renderer.NewHTML(), &out, Options{Verbose: true})

	_, err := p.Generate(context.Background(), []string{file})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Documenting")
	assert.Contains(t, out.String(), "Done with")
}

func TestGenerate_UnreadableFileDoesNotAbortRun(t *testing.T) {
	cfg, root := rustConfig(t)
	good := writeSource(t, root, "good.rs", annotatedRust)
	missing := filepath.Join(root, "missing.rs")

	var out bytes.Buffer
	p := New(cfg, renderer.NewHTML(), &out, Options{})

	report, err := p.Generate(context.Background(), []string{missing, good})
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.NotEmpty(t, report.Files[0].Error)
	assert.Equal(t, 1, report.Documented())
	assert.Contains(t, out.String(), "could not be processed")
}

func TestGenerate_WarningsSurfaceInReport(t *testing.T) {
	cfg, root := rustConfig(t)
	file := writeSource(t, root, "warn.rs", "//! Unfinished\n/*startsummary\nnever closed")

	var out bytes.Buffer
	p := New(cfg, renderer.NewHTML(), &out, Options{})

	report, err := p.Generate(context.Background(), []string{file})
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.Equal(t, 1, report.WarningCount())
	assert.Contains(t, out.String(), "WARNING")
}

func TestGenerate_NoFiles(t *testing.T) {
	cfg, _ := rustConfig(t)

	var out bytes.Buffer
	p := New(cfg, renderer.NewHTML(), &out, Options{})

	report, err := p.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.Contains(t, out.String(), "no files were documented")
}

func TestGenerate_MarkdownFormat(t *testing.T) {
	cfg, root := rustConfig(t)
	file := writeSource(t, root, "test.rs", annotatedRust)

	var out bytes.Buffer
	p := New(cfg, renderer.NewMarkdown(), &out, Options{})

	report, err := p.Generate(context.Background(), []string{file})
	require.NoError(t, err)
	require.Equal(t, 1, report.Documented())
	assert.True(t, strings.HasSuffix(report.Files[0].Output, ".md"))

	page, err := os.ReadFile(filepath.Join(cfg.OutputDir, report.Files[0].Output))
	require.NoError(t, err)
	assert.Contains(t, string(page), "## Test Function")
}

func TestClean_RemovesOrphanedPages(t *testing.T) {
	cfg, root := rustConfig(t)
	file := writeSource(t, root, "test.rs", annotatedRust)

	var out bytes.Buffer
	p := New(cfg, renderer.NewHTML(), &out, Options{Quiet: true})

	_, err := p.Generate(context.Background(), []string{file})
	require.NoError(t, err)

	// Simulate a page left behind by a deleted source file, plus a stray
	// non-generated file that clean must not touch.
	orphan := filepath.Join(cfg.OutputDir, "deleted-rs.html")
	require.NoError(t, os.WriteFile(orphan, []byte("<html></html>"), 0o644))
	stray := filepath.Join(cfg.OutputDir, "notes.txt")
	require.NoError(t, os.WriteFile(stray, []byte("keep me"), 0o644))

	removed, err := p.Clean([]string{file})
	require.NoError(t, err)

	assert.Equal(t, []string{"deleted-rs.html"}, removed)
	assert.NoFileExists(t, orphan)
	assert.FileExists(t, stray)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, ReportName))
	// The live page survives.
	pages, err := filepath.Glob(filepath.Join(cfg.OutputDir, "*-rs.html"))
	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestClean_NoOutputDir(t *testing.T) {
	cfg, _ := rustConfig(t)
	p := New(cfg, renderer.NewHTML(), os.Stdout, Options{Quiet: true})

	removed, err := p.Clean(nil)
	require.NoError(t, err)
	assert.Empty(t, removed)
}
