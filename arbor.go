package arbor

import (
	"fmt"
	"go/token"
)

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a range of bytes in a source buffer.
// Analyses and rewriters will track which part of the input a tree node
// covers. A span denotes a start offset and the offset just behind the end.
type Span [2]uint64 // (x…y)

// SpanOf creates a span from the position range of a syntax-tree node.
func SpanOf(from, to token.Pos) Span {
	return Span{uint64(from), uint64(to)}
}

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	if s[1] < s[0] {
		return 0
	}
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Locations --------------------------------------------------------

// Location is a file/line/column triple for diagnostics. The zero value is
// an unknown location.
type Location struct {
	File   string
	Line   int
	Column int
}

// LocationFor converts a token position, resolved against a file set, into
// a Location.
func LocationFor(fset *token.FileSet, pos token.Pos) Location {
	if fset == nil || !pos.IsValid() {
		return Location{}
	}
	p := fset.Position(pos)
	return Location{File: p.Filename, Line: p.Line, Column: p.Column}
}

func (loc Location) IsKnown() bool {
	return loc.Line > 0
}

func (loc Location) String() string {
	if !loc.IsKnown() {
		return "-"
	}
	if loc.File == "" {
		return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}
