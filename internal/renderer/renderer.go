// Package renderer turns scanned documents into documentation pages.
package renderer

import (
	"strings"

	"vexdoc/internal/scanner"
)

// Renderer produces one documentation page from one scanned source file.
type Renderer interface {
	// Render formats the document extracted from the file at relPath.
	Render(relPath string, doc scanner.Document) ([]byte, error)
	// Extension is the output file extension, without the period.
	Extension() string
}

var outputNameReplacer = strings.NewReplacer(".", "-", "/", "_", "\\", "_")

// OutputName maps a source path to its page name: periods become dashes,
// path separators become underscores ("src/test.rs" -> "src_test-rs.html").
// Pages from every subdirectory land flat in the output directory without
// colliding.
func OutputName(relPath, ext string) string {
	return outputNameReplacer.Replace(relPath) + "." + ext
}
