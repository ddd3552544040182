package index

import "fmt"

// Point is a zero-based line and byte column in a source file.
type Point struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Location is the half-open span [Start, End) of an identifier in a
// file. Both endpoints sit on the same line.
type Location struct {
	Path  string `json:"path"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

// String renders the location one-based, the way editors and compilers
// print positions.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Start.Line+1, l.Start.Col+1)
}

// Token is an identifier occurrence on a single line, keyed by its
// column range.
type Token struct {
	Start int
	End   int
	Name  string
}
