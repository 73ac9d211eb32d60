package scanner

import "strings"

// Markers is the set of line prefixes that delimit documentation blocks.
// They are normally derived from the configured comment delimiters so the
// same conventions work across languages.
type Markers struct {
	BlockStart   string // e.g. "#!" — opens a block, remainder is the title
	SummaryStart string // e.g. `"""startsummary`
	SummaryEnd   string // e.g. `endsummary"""`
	FileSummary  string // e.g. `"""filesummary` — file-level summary opener
	blockEnd     string // end marker with interior spaces stripped
}

// FromDelimiters builds the marker set for a language's comment syntax.
// multi holds the multiline comment delimiters; a single entry means the
// same token opens and closes (Python's `"""`).
func FromDelimiters(inline string, multi []string) Markers {
	open := ""
	if len(multi) > 0 {
		open = multi[0]
	}
	closing := open
	if len(multi) > 1 {
		closing = multi[1]
	}
	return Markers{
		BlockStart:   inline + "!",
		SummaryStart: open + "startsummary",
		SummaryEnd:   "endsummary" + closing,
		FileSummary:  open + "filesummary",
		blockEnd:     strings.ReplaceAll(inline, " ", "") + "ENDVEXDOC",
	}
}

// DefaultMarkers is the hash-comment instantiation: `#!`, `"""startsummary`,
// `endsummary"""` and `# ENDVEXDOC`.
func DefaultMarkers() Markers {
	return FromDelimiters("#", []string{`"""`})
}

// isEnd matches the end-of-block marker ignoring interior whitespace, so
// `# ENDVEXDOC` and `#ENDVEXDOC` are equivalent.
func (m Markers) isEnd(line string) bool {
	if m.blockEnd == "" {
		return false
	}
	return strings.HasPrefix(strings.ReplaceAll(line, " ", ""), m.blockEnd)
}
