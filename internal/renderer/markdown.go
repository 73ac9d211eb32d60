package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"vexdoc/internal/scanner"
)

// Markdown renders documents as Markdown pages, for projects that feed
// generated docs into a site generator instead of serving HTML directly.
type Markdown struct{}

// NewMarkdown builds the Markdown renderer.
func NewMarkdown() *Markdown { return &Markdown{} }

func (r *Markdown) Extension() string { return "md" }

// Render produces the Markdown page for one scanned file. Code fragments are
// fenced with the source file's extension as the language tag.
func (r *Markdown) Render(relPath string, doc scanner.Document) ([]byte, error) {
	lang := strings.TrimPrefix(filepath.Ext(relPath), ".")

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", filepath.Base(relPath))

	if doc.Summary != "" {
		fmt.Fprintf(&sb, "> %s\n\n", doc.Summary)
	}

	for _, b := range doc.Blocks {
		fmt.Fprintf(&sb, "## %s\n\n", b.Title)
		if b.Summary != "" {
			sb.WriteString(b.Summary)
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "```%s\n", lang)
		if b.Code != "" {
			sb.WriteString(b.Code)
			sb.WriteString("\n")
		}
		sb.WriteString("```\n\n")
	}

	return []byte(sb.String()), nil
}
