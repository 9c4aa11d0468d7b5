package lib

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/merryhime/StaMINA/lib/invariant"
)

// tokenRecord is the wire form of a Token in a CBOR token stream.
type tokenRecord struct {
	File   string  `cbor:"file"`
	Line   uint    `cbor:"line"`
	Column uint    `cbor:"col"`
	Type   string  `cbor:"type"`
	Text   *string `cbor:"text,omitempty"`
	Int    *int64  `cbor:"int,omitempty"`
	Source string  `cbor:"src"`
	Kind   string  `cbor:"kind,omitempty"`
}

var tokenEncMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	invariant.ExpectNoError(err, "building CBOR encoder")
	return em
}()

// EncodeTokens writes tokens as one canonical CBOR array, so the same tokens
// always produce the same bytes.
func EncodeTokens(w io.Writer, tokens []Token) error {
	records := make([]tokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		rec := tokenRecord{
			File:   tok.Pos.Filename,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
			Type:   tok.Type.String(),
			Source: tok.Source,
		}
		switch tok.Payload.Kind() {
		case PayloadText:
			text := tok.Text()
			rec.Text = &text
		case PayloadInt:
			v := tok.Int()
			rec.Int = &v
		}
		if tok.Type == Error {
			rec.Kind = tok.ErrKind.String()
		}
		records = append(records, rec)
	}
	if err := tokenEncMode.NewEncoder(w).Encode(records); err != nil {
		return fmt.Errorf("encoding token stream: %w", err)
	}
	return nil
}

// DecodeTokens reads a stream written by EncodeTokens.
func DecodeTokens(r io.Reader) ([]Token, error) {
	var records []tokenRecord
	if err := cbor.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding token stream: %w", err)
	}

	tokens := make([]Token, 0, len(records))
	for i, rec := range records {
		tok, err := rec.token()
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (rec tokenRecord) token() (Token, error) {
	typ, ok := ParseTokenType(rec.Type)
	if !ok {
		return Token{}, fmt.Errorf("unknown token type %q", rec.Type)
	}
	pos := Position{Filename: rec.File, Line: rec.Line, Column: rec.Column}

	payload := NoPayload()
	switch {
	case rec.Text != nil && rec.Int != nil:
		return Token{}, fmt.Errorf("%s token has both text and integer payloads", typ)
	case rec.Text != nil:
		payload = TextPayload(*rec.Text)
	case rec.Int != nil:
		payload = IntPayload(*rec.Int)
	}
	if payload.Kind() != typ.PayloadKind() {
		return Token{}, fmt.Errorf("%s token has the wrong payload", typ)
	}

	if typ == Error {
		kind, ok := ParseErrorKind(rec.Kind)
		if !ok || kind == ErrNone {
			return Token{}, fmt.Errorf("unknown error kind %q", rec.Kind)
		}
		return NewErrorToken(pos, kind, *rec.Text, rec.Source), nil
	}
	return NewToken(pos, typ, payload, rec.Source), nil
}
