package lib

import (
	"context"
	"errors"
	"time"
)

const TokenBufSize = 100

// TokenReadTimeout bounds how long Next waits for the producer.
var TokenReadTimeout = 1 * time.Second

// ErrTokenReadTimeout is returned by a streamed reader whose producer has
// stalled.
var ErrTokenReadTimeout = errors.New("timed out waiting for next token")

type peekResult struct {
	tok  Token
	done bool
	err  error
}

// tokenBuffer carries tokens from a lexing goroutine to the consumer.
type tokenBuffer struct {
	tokChan chan Token
	peeked  *peekResult
	err     error
}

func newTokenBuffer() *tokenBuffer {
	return &tokenBuffer{
		tokChan: make(chan Token, TokenBufSize),
	}
}

// Stream lexes t on a new goroutine, which owns t from then on. Cancelling
// ctx stops the producer; the reader then reports ctx.Err().
func Stream(ctx context.Context, t *Tokenizer) TokenReader {
	buf := newTokenBuffer()
	go func() {
		defer close(buf.tokChan)
		for {
			tok := t.NextToken()
			if tok.Type == EndOfFile {
				buf.err = t.Err()
				return
			}
			if err := buf.Write(ctx, tok); err != nil {
				buf.err = err
				return
			}
		}
	}()
	return buf
}

func (tb *tokenBuffer) Next() (tok Token, done bool, err error) {
	if tb.peeked != nil {
		res := tb.peeked
		tb.peeked = nil
		return res.tok, res.done, res.err
	}

	select {
	case tok, ok := <-tb.tokChan:
		if !ok {
			// err was set before the channel was closed
			return Token{}, tb.err == nil, tb.err
		}
		return tok, false, nil
	case <-time.After(TokenReadTimeout):
		return Token{}, false, ErrTokenReadTimeout
	}
}

func (tb *tokenBuffer) Peek() (Token, bool, error) {
	if tb.peeked != nil {
		return tb.peeked.tok, tb.peeked.done, tb.peeked.err
	}
	tok, done, err := tb.Next()
	tb.peeked = &peekResult{tok: tok, done: done, err: err}
	return tok, done, err
}

func (tb *tokenBuffer) Write(ctx context.Context, tok Token) error {
	select {
	case tb.tokChan <- tok:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
