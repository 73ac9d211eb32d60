// Package pipeline drives a documentation run: scan the selected files,
// render a page per file, and report what happened.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"vexdoc/internal/config"
	"vexdoc/internal/renderer"
	"vexdoc/internal/scanner"
)

// Options control a generation run's chattiness.
type Options struct {
	Verbose bool
	Quiet   bool
}

// Pipeline wires the scanner and a renderer to the configured output
// directory. Files are processed concurrently; status output goes to out.
type Pipeline struct {
	cfg    *config.Config
	scan   *scanner.Scanner
	render renderer.Renderer
	out    io.Writer
	outMu  sync.Mutex // workers print progress concurrently
	opts   Options
}

// New builds a pipeline for the given config and renderer. Marker syntax is
// derived from the config's comment delimiters.
func New(cfg *config.Config, r renderer.Renderer, out io.Writer, opts Options) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		scan:   scanner.New(scanner.FromDelimiters(cfg.InlineComments, cfg.MultiComments)),
		render: r,
		out:    out,
		opts:   opts,
	}
}

// Generate processes files and writes one page per file into the output
// directory, plus a report.json describing the run. A file that cannot be
// read is recorded in the report and does not stop the others.
func (p *Pipeline) Generate(ctx context.Context, files []string) (*Report, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", p.cfg.OutputDir, err)
	}

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		OutputDir:   p.cfg.OutputDir,
		Format:      p.render.Extension(),
	}

	if len(files) == 0 {
		p.notice("NOTICE: no files were documented. Ensure your config has the appropriate file extensions")
		return report, report.Save(filepath.Join(p.cfg.OutputDir, ReportName))
	}

	results := make([]FileReport, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.verbose("Documenting %s ...", file)
			results[i] = p.processFile(file)
			p.verbose("Done with %s", file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		report.Files = append(report.Files, res)
		if res.Error != "" {
			p.notice("NOTICE: %s could not be processed: %s", res.Source, res.Error)
			continue
		}
		if res.Output == "" {
			p.notice("NOTICE: %s contained no annotations, so nothing was actually written to its documentation. Ensure it has correct annotations", res.Source)
		}
		for _, w := range res.Warnings {
			p.notice("WARNING: %s: %s", res.Source, w)
		}
	}

	return report, report.Save(filepath.Join(p.cfg.OutputDir, ReportName))
}

func (p *Pipeline) processFile(file string) FileReport {
	source := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(file)), "./")
	res := FileReport{Source: source}

	raw, err := os.ReadFile(file)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	doc := p.scan.Scan(string(raw))
	res.Blocks = len(doc.Blocks)
	for _, w := range doc.Warnings {
		res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: %s", w.Line, w.Message))
	}

	if !doc.HasBlocks() {
		return res
	}

	page, err := p.render.Render(source, doc)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	name := renderer.OutputName(source, p.render.Extension())
	if err := os.WriteFile(filepath.Join(p.cfg.OutputDir, name), page, 0o644); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Output = name
	return res
}

// Clean removes generated pages in the output directory that no current
// source file maps to, returning the removed names. The run report and
// non-generated files are left alone.
func (p *Pipeline) Clean(files []string) ([]string, error) {
	expected := make(map[string]struct{}, len(files)*2)
	for _, f := range files {
		source := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(f)), "./")
		expected[renderer.OutputName(source, "html")] = struct{}{}
		expected[renderer.OutputName(source, "md")] = struct{}{}
	}

	entries, err := os.ReadDir(p.cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read output directory %s: %w", p.cfg.OutputDir, err)
	}

	var removed []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == ReportName {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".html", ".md":
		default:
			continue
		}
		if _, ok := expected[e.Name()]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(p.cfg.OutputDir, e.Name())); err != nil {
			return removed, fmt.Errorf("remove orphaned page %s: %w", e.Name(), err)
		}
		removed = append(removed, e.Name())
	}
	return removed, nil
}

func (p *Pipeline) notice(format string, args ...any) {
	if p.opts.Quiet {
		return
	}
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Pipeline) verbose(format string, args ...any) {
	if !p.opts.Verbose || p.opts.Quiet {
		return
	}
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format+"\n", args...)
}
