package renderer

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"vexdoc/internal/scanner"
)

//go:embed styles.css
var stylesCSS string

//go:embed page.html.tmpl
var pageTemplate string

// HTML renders documents as standalone HTML pages with highlight.js syntax
// highlighting. Summaries are treated as Markdown and rendered through
// goldmark; code fragments are escaped verbatim. The renderer is stateless
// and safe for concurrent use.
type HTML struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// NewHTML builds the HTML renderer. Raw HTML in summaries is escaped by
// goldmark's defaults.
func NewHTML() *HTML {
	return &HTML{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify),
		),
		tmpl: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

func (r *HTML) Extension() string { return "html" }

type htmlPage struct {
	Filename    string
	Styles      template.CSS
	FileSummary template.HTML
	Blocks      []htmlBlock
}

type htmlBlock struct {
	Title   string
	Summary template.HTML
	Code    string
}

// Render produces the full page for one scanned file.
func (r *HTML) Render(relPath string, doc scanner.Document) ([]byte, error) {
	page := htmlPage{
		Filename: filepath.Base(relPath),
		Styles:   template.CSS(stylesCSS),
	}

	var err error
	if page.FileSummary, err = r.summaryHTML(doc.Summary); err != nil {
		return nil, err
	}

	for _, b := range doc.Blocks {
		summary, err := r.summaryHTML(b.Summary)
		if err != nil {
			return nil, err
		}
		page.Blocks = append(page.Blocks, htmlBlock{
			Title:   b.Title,
			Summary: summary,
			Code:    b.Code,
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render page for %s: %w", relPath, err)
	}
	return buf.Bytes(), nil
}

func (r *HTML) summaryHTML(summary string) (template.HTML, error) {
	if summary == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(summary), &buf); err != nil {
		return "", fmt.Errorf("render summary markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
