package scanner

// Block is one documentation block extracted from a source file: the title
// from the block-start line, the summary between the summary markers, and the
// code that follows up to the next block or end marker.
type Block struct {
	Title   string
	Summary string
	Code    string
	Line    int // 1-based line of the block-start marker
}

// Document holds everything extracted from a single source file. It is built
// once per scan and never mutated afterwards.
type Document struct {
	Summary  string // file-level summary, empty if none
	Blocks   []Block
	Warnings []Warning
}

// WarningKind classifies a malformed-input condition. None of these abort a
// scan; the affected block is emitted best-effort.
type WarningKind string

const (
	// UnterminatedSummary: a summary was opened but never closed before EOF.
	UnterminatedSummary WarningKind = "unterminated_summary"
	// MissingEndMarker: EOF arrived while a block was still collecting code.
	MissingEndMarker WarningKind = "missing_end_marker"
	// MissingSummary: a block title was not followed by a summary section.
	MissingSummary WarningKind = "missing_summary"
)

// Warning records one malformed-input condition with its source location.
type Warning struct {
	Kind    WarningKind
	Line    int
	Message string
}

// HasBlocks reports whether the scan found any documentation at all,
// counting a bare file summary as documentation.
func (d *Document) HasBlocks() bool {
	return len(d.Blocks) > 0 || d.Summary != ""
}
