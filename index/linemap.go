package index

import "sort"

// LineMap maps byte offsets in a source buffer to zero-based line and
// column positions. Columns count bytes, which matches display columns
// for the ASCII sources XDR files are in practice.
type LineMap struct {
	starts []int
}

// NewLineMap scans src once and records where each line begins.
func NewLineMap(src []byte) *LineMap {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineMap{starts: starts}
}

// Position resolves a byte offset to the line containing it.
func (m *LineMap) Position(off int) Point {
	line := sort.Search(len(m.starts), func(i int) bool { return m.starts[i] > off }) - 1
	return Point{Line: line, Col: off - m.starts[line]}
}

// Span resolves the half-open byte range [start, end). Both endpoints
// are placed on the line the range starts on, so a span never straddles
// a line break.
func (m *LineMap) Span(start, end int) (Point, Point) {
	s := m.Position(start)
	return s, Point{Line: s.Line, Col: end - m.starts[s.Line]}
}
