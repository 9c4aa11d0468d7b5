package lib

import "fmt"

// DefaultFilename is reported for sources that were not given a name.
const DefaultFilename = "(unknown)"

// Position is a source coordinate. Values are never modified in place; the
// methods return the next position instead.
type Position struct {
	Filename string
	Line     uint
	Column   uint
}

// StartPosition is where a source sits before its first character has been
// loaded. The first advance moves it to column 1.
func StartPosition(filename string) Position {
	if filename == "" {
		filename = DefaultFilename
	}
	return Position{Filename: filename, Line: 1, Column: 0}
}

func (p Position) NextLine() Position {
	return Position{Filename: p.Filename, Line: p.Line + 1, Column: 1}
}

func (p Position) Advance(n uint) Position {
	return Position{Filename: p.Filename, Line: p.Line, Column: p.Column + n}
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
