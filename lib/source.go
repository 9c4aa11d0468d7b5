package lib

import (
	"bufio"
	"errors"
	"io"
)

// CharSource feeds the Tokenizer one character at a time. Exactly one
// character of lookahead is visible and there is no pushback.
type CharSource interface {
	// Current returns the lookahead character, or ok=false at end of input.
	Current() (ch byte, ok bool)
	// Pos returns the position of the lookahead character.
	Pos() Position
	// Advance discards the lookahead and loads the next character.
	Advance()
}

// charInfo is the lookahead state shared by the concrete sources.
type charInfo struct {
	ch       byte
	ok       bool
	location Position
}

func (c *charInfo) Current() (byte, bool) {
	return c.ch, c.ok
}

func (c *charInfo) Pos() Position {
	return c.location
}

// load replaces the lookahead, moving the position past the character that
// is being discarded.
func (c *charInfo) load(ch byte, ok bool) {
	if c.ok && c.ch == '\n' {
		c.location = c.location.NextLine()
	} else {
		c.location = c.location.Advance(1)
	}
	c.ch = ch
	c.ok = ok
}

// StringSource reads characters from an in-memory string.
type StringSource struct {
	charInfo
	text  string
	index int
}

func NewStringSource(filename string, text string) *StringSource {
	s := &StringSource{
		charInfo: charInfo{location: StartPosition(filename)},
		text:     text,
	}
	s.Advance()
	return s
}

func (s *StringSource) Advance() {
	if s.index >= len(s.text) {
		s.load(0, false)
		return
	}
	s.load(s.text[s.index], true)
	s.index++
}

// ReaderSource streams characters from an io.Reader. A read error ends the
// input; it is kept for Err.
type ReaderSource struct {
	charInfo
	r   *bufio.Reader
	err error
}

func NewReaderSource(filename string, r io.Reader) *ReaderSource {
	s := &ReaderSource{
		charInfo: charInfo{location: StartPosition(filename)},
		r:        bufio.NewReader(r),
	}
	s.Advance()
	return s
}

func (s *ReaderSource) Advance() {
	if s.err != nil {
		s.load(0, false)
		return
	}
	b, err := s.r.ReadByte()
	if err != nil {
		s.err = err
		s.load(0, false)
		return
	}
	s.load(b, true)
}

// Err returns the read error that ended the input, or nil if the reader was
// simply exhausted.
func (s *ReaderSource) Err() error {
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}
