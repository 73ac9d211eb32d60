// Package scanner extracts VexDoc documentation blocks from source text.
//
// A block looks like this in a hash-comment language:
//
//	#! My Function
//	"""startsummary
//	What the function does, in plain prose.
//	endsummary"""
//	def my_function(): ...
//	# ENDVEXDOC
//
// Scan walks the input line by line with a small state machine and never
// fails: malformed regions produce warnings and best-effort blocks instead
// of errors.
package scanner

import "strings"

type state int

const (
	stateOutside state = iota
	stateFileSummary
	stateAwaitingSummary
	stateInSummary
	stateInCode
)

// Scanner extracts documentation blocks using a fixed marker set. The zero
// cost of construction and the absence of internal state make a single
// instance safe to share across goroutines.
type Scanner struct {
	markers Markers
}

// New returns a Scanner for the given marker set.
func New(m Markers) *Scanner {
	return &Scanner{markers: m}
}

// Scan extracts documentation blocks using DefaultMarkers.
func Scan(src string) Document {
	return New(DefaultMarkers()).Scan(src)
}

// Scan reads src and returns the ordered blocks it contains, together with
// warnings for any malformed regions. Scanning the same input twice yields
// equal Documents.
func (s *Scanner) Scan(src string) Document {
	var (
		doc     Document
		st      = stateOutside
		cur     Block
		lines   []string // accumulator for the current summary or code region
		sawDocs bool     // a block marker was seen; disables file summaries
	)

	warn := func(kind WarningKind, line int, msg string) {
		doc.Warnings = append(doc.Warnings, Warning{Kind: kind, Line: line, Message: msg})
	}

	emit := func() {
		doc.Blocks = append(doc.Blocks, cur)
		cur = Block{}
		lines = lines[:0]
	}

	openBlock := func(line string, n int) {
		cur = Block{
			Title: strings.TrimSpace(line[len(s.markers.BlockStart):]),
			Line:  n,
		}
		lines = lines[:0]
		sawDocs = true
		st = stateAwaitingSummary
	}

	n := 0
	for _, line := range splitLines(src) {
		n++
		switch st {
		case stateOutside:
			switch {
			case strings.HasPrefix(line, s.markers.BlockStart):
				openBlock(line, n)
			case !sawDocs && doc.Summary == "" && strings.HasPrefix(line, s.markers.FileSummary):
				lines = lines[:0]
				st = stateFileSummary
			default:
				// An end marker with no open block is ignored.
			}

		case stateFileSummary:
			if strings.HasPrefix(line, s.markers.SummaryEnd) {
				doc.Summary = joinSummary(lines)
				lines = lines[:0]
				st = stateOutside
			} else {
				lines = append(lines, line)
			}

		case stateAwaitingSummary:
			switch {
			case strings.HasPrefix(line, s.markers.SummaryStart):
				st = stateInSummary
			case strings.TrimSpace(line) == "":
				// Blank lines between the title and its summary are fine.
			case strings.HasPrefix(line, s.markers.BlockStart):
				warn(MissingSummary, cur.Line, "section title must be followed by a summary")
				emit()
				openBlock(line, n)
			case s.markers.isEnd(line):
				warn(MissingSummary, cur.Line, "section title must be followed by a summary")
				emit()
				st = stateOutside
			default:
				warn(MissingSummary, cur.Line, "section title must be followed by a summary")
				lines = append(lines, line)
				st = stateInCode
			}

		case stateInSummary:
			// Block markers inside a summary are literal text.
			if strings.HasPrefix(line, s.markers.SummaryEnd) {
				cur.Summary = joinSummary(lines)
				lines = lines[:0]
				st = stateInCode
			} else {
				lines = append(lines, line)
			}

		case stateInCode:
			switch {
			case s.markers.isEnd(line):
				cur.Code = joinCode(lines)
				emit()
				st = stateOutside
			case strings.HasPrefix(line, s.markers.BlockStart):
				cur.Code = joinCode(lines)
				emit()
				openBlock(line, n)
			default:
				lines = append(lines, line)
			}
		}
	}

	// Lenient EOF: whatever is open is emitted with a warning rather than
	// dropped.
	switch st {
	case stateFileSummary:
		warn(UnterminatedSummary, n, "file summary was never closed")
		doc.Summary = joinSummary(lines)
	case stateAwaitingSummary:
		warn(MissingSummary, cur.Line, "section title must be followed by a summary")
		emit()
	case stateInSummary:
		warn(UnterminatedSummary, cur.Line, "summary was never closed")
		cur.Summary = joinSummary(lines)
		emit()
	case stateInCode:
		warn(MissingEndMarker, cur.Line, "missing end-of-document marker")
		cur.Code = joinCode(lines)
		emit()
	}

	return doc
}

// splitLines splits on newlines without producing a phantom final line for
// inputs ending in "\n".
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	src = strings.TrimSuffix(src, "\n")
	return strings.Split(src, "\n")
}

// joinSummary normalizes a summary region: lines are trimmed and joined with
// single spaces, blank lines dropped. An empty region yields "".
func joinSummary(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// joinCode keeps code verbatim, trimming only leading and trailing blank
// lines.
func joinCode(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
