package lib

import (
	"fmt"
	"strconv"

	"github.com/merryhime/StaMINA/lib/invariant"
)

type TokenType int

const (
	Error TokenType = iota
	EndOfFile
	NewLine
	Identifier
	Mnemonic
	Directive
	StringLit
	NumericLit
	Comma
	LParen
	RParen
	Plus
	Minus
	Mul
	Div
	Mod
	Xor
	ShLeft
	LessEqual
	Less
	ShRight
	GreaterEqual
	Greater
	Equal
	NotEqual
	LogicNot
	BitNot
	LogicAnd
	BitAnd
	LogicOr
	BitOr
	TokCat

	numTokenTypes
)

var tokenTypeNames = [numTokenTypes]string{
	Error:        "Error",
	EndOfFile:    "EndOfFile",
	NewLine:      "NewLine",
	Identifier:   "Identifier",
	Mnemonic:     "Mnemonic",
	Directive:    "Directive",
	StringLit:    "StringLit",
	NumericLit:   "NumericLit",
	Comma:        "Comma",
	LParen:       "LParen",
	RParen:       "RParen",
	Plus:         "Plus",
	Minus:        "Minus",
	Mul:          "Mul",
	Div:          "Div",
	Mod:          "Mod",
	Xor:          "Xor",
	ShLeft:       "ShLeft",
	LessEqual:    "LessEqual",
	Less:         "Less",
	ShRight:      "ShRight",
	GreaterEqual: "GreaterEqual",
	Greater:      "Greater",
	Equal:        "Equal",
	NotEqual:     "NotEqual",
	LogicNot:     "LogicNot",
	BitNot:       "BitNot",
	LogicAnd:     "LogicAnd",
	BitAnd:       "BitAnd",
	LogicOr:      "LogicOr",
	BitOr:        "BitOr",
	TokCat:       "TokCat",
}

func (t TokenType) String() string {
	if t < 0 || t >= numTokenTypes {
		return "TokenType(" + strconv.Itoa(int(t)) + ")"
	}
	return tokenTypeNames[t]
}

// ParseTokenType is the inverse of TokenType.String.
func ParseTokenType(name string) (TokenType, bool) {
	for i, n := range tokenTypeNames {
		if n == name {
			return TokenType(i), true
		}
	}
	return Error, false
}

// PayloadKind returns the only payload kind a token of this type may carry.
func (t TokenType) PayloadKind() PayloadKind {
	switch t {
	case Identifier, Mnemonic, Directive, StringLit, Error:
		return PayloadText
	case NumericLit:
		return PayloadInt
	default:
		return PayloadNone
	}
}

type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadText
	PayloadInt
)

// Payload is the value attached to a token: nothing, text or an integer.
type Payload struct {
	kind  PayloadKind
	text  string
	value int64
}

func NoPayload() Payload {
	return Payload{}
}

func TextPayload(s string) Payload {
	return Payload{kind: PayloadText, text: s}
}

func IntPayload(v int64) Payload {
	return Payload{kind: PayloadInt, value: v}
}

func (p Payload) Kind() PayloadKind {
	return p.kind
}

func (p Payload) Text() (string, bool) {
	return p.text, p.kind == PayloadText
}

func (p Payload) Int() (int64, bool) {
	return p.value, p.kind == PayloadInt
}

func (p Payload) String() string {
	switch p.kind {
	case PayloadText:
		return "`" + p.text + "`"
	case PayloadInt:
		return strconv.FormatInt(p.value, 10)
	default:
		return "(empty)"
	}
}

type Token struct {
	Pos     Position
	Type    TokenType
	Payload Payload
	// Source is the raw input consumed for this token.
	Source string
	// ErrKind classifies Error tokens and is ErrNone for everything else.
	ErrKind ErrorKind
}

// NewToken builds a token, enforcing the type/payload pairing.
func NewToken(pos Position, typ TokenType, payload Payload, source string) Token {
	invariant.Precondition(typ != Error, "error tokens are built with NewErrorToken")
	checkPayload(typ, payload)
	return Token{Pos: pos, Type: typ, Payload: payload, Source: source}
}

func NewErrorToken(pos Position, kind ErrorKind, msg string, source string) Token {
	invariant.Precondition(kind != ErrNone, "error token needs a kind")
	return Token{Pos: pos, Type: Error, Payload: TextPayload(msg), Source: source, ErrKind: kind}
}

func checkPayload(typ TokenType, payload Payload) {
	invariant.Invariant(
		payload.Kind() == typ.PayloadKind(),
		"%s token cannot carry payload kind %d", typ, payload.Kind())
}

// Text returns the text payload of Identifier, Mnemonic, Directive,
// StringLit and Error tokens.
func (t Token) Text() string {
	s, _ := t.Payload.Text()
	return s
}

// Int returns the value of a NumericLit token.
func (t Token) Int() int64 {
	v, _ := t.Payload.Int()
	return v
}

// Err returns the lexical error carried by an Error token, or nil.
func (t Token) Err() error {
	if t.Type != Error {
		return nil
	}
	return &LexError{Kind: t.ErrKind, Pos: t.Pos, Msg: t.Text()}
}

func (t Token) String() string {
	return fmt.Sprintf("%s - %s - %s - `%s`", t.Pos, t.Type, t.Payload, t.Source)
}
