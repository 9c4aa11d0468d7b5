package lib

// TokenReader is how a parser consumes tokens. done is true once the stream
// has reached EndOfFile; the EndOfFile token itself is not returned.
type TokenReader interface {
	Next() (tok Token, done bool, err error)
	Peek() (tok Token, done bool, err error)
}

// PeekReader reads straight from a Tokenizer on the caller's goroutine.
type PeekReader struct {
	tokenizer *Tokenizer
	peeked    *Token
}

func NewPeekReader(t *Tokenizer) *PeekReader {
	return &PeekReader{tokenizer: t}
}

func (r *PeekReader) Next() (Token, bool, error) {
	tok, done, err := r.Peek()
	r.peeked = nil
	return tok, done, err
}

func (r *PeekReader) Peek() (Token, bool, error) {
	if r.peeked == nil {
		tok := r.tokenizer.NextToken()
		r.peeked = &tok
	}
	if r.peeked.Type == EndOfFile {
		return Token{}, true, nil
	}
	return *r.peeked, false, nil
}
