package lib

var simpleEscapes = map[byte]byte{
	'a':  0x07,
	'b':  0x08,
	'f':  0x0C,
	'n':  0x0A,
	'r':  0x0D,
	't':  0x09,
	'v':  0x0B,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// lexEscapedChar decodes one possibly escaped character of a string or
// character literal. ok is false at end of input and for escapes that are
// not recognised.
func (t *Tokenizer) lexEscapedChar() (byte, bool) {
	if !t.maybe('\\') {
		ch, ok := t.peek()
		if ok {
			t.advance()
		}
		return ch, ok
	}

	c, ok := t.peek()
	if !ok {
		return 0, false
	}
	t.advance()

	if isOctalDigit(c) {
		value := digitValue(c)
		for ch, ok := t.peek(); ok && isOctalDigit(ch); ch, ok = t.peek() {
			value = value*8 + digitValue(ch)
			t.advance()
			if value >= 256 {
				return 0, false
			}
		}
		return byte(value), true
	}

	esc, ok := simpleEscapes[c]
	return esc, ok
}
