package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenTypeNames(t *testing.T) {
	for typ := Error; typ < numTokenTypes; typ++ {
		name := typ.String()
		require.NotEmpty(t, name)
		back, ok := ParseTokenType(name)
		require.True(t, ok, name)
		require.Equal(t, typ, back)
	}
	require.Equal(t, "TokCat", TokCat.String())
	require.Equal(t, "TokenType(99)", TokenType(99).String())

	_, ok := ParseTokenType("Semicolon")
	require.False(t, ok)
}

func TestTokenString(t *testing.T) {
	tokens := Tokenize(".def x 3")
	require.Equal(t, "(unknown):1:1 - Directive - `def` - `.def`", tokens[0].String())
	require.Equal(t, "(unknown):1:8 - NumericLit - 3 - `3`", tokens[2].String())
	require.Equal(t, "(unknown):1:9 - NewLine - (empty) - ``", tokens[3].String())
}

func TestPayloadAccessors(t *testing.T) {
	p := TextPayload("x")
	s, ok := p.Text()
	require.True(t, ok)
	require.Equal(t, "x", s)
	_, ok = p.Int()
	require.False(t, ok)

	v, ok := IntPayload(-4).Int()
	require.True(t, ok)
	require.Equal(t, int64(-4), v)

	require.Equal(t, PayloadNone, NoPayload().Kind())
	require.Equal(t, "(empty)", NoPayload().String())
}

func TestPayloadMatchesType(t *testing.T) {
	for typ := Error; typ < numTokenTypes; typ++ {
		switch typ {
		case Identifier, Mnemonic, Directive, StringLit, Error:
			require.Equal(t, PayloadText, typ.PayloadKind(), typ.String())
		case NumericLit:
			require.Equal(t, PayloadInt, typ.PayloadKind())
		default:
			require.Equal(t, PayloadNone, typ.PayloadKind(), typ.String())
		}
	}
}

func TestTokenConstructionInvariants(t *testing.T) {
	pos := StartPosition("").Advance(1)
	require.Panics(t, func() { NewToken(pos, NumericLit, TextPayload("1"), "1") })
	require.Panics(t, func() { NewToken(pos, Plus, IntPayload(1), "+") })
	require.Panics(t, func() { NewToken(pos, Error, TextPayload("x"), "") })
	require.Panics(t, func() { NewErrorToken(pos, ErrNone, "x", "") })
	require.NotPanics(t, func() { NewToken(pos, Comma, NoPayload(), ",") })
}

func TestDigitValueInvariant(t *testing.T) {
	require.Equal(t, int64(15), digitValue('F'))
	require.Equal(t, int64(10), digitValue('a'))
	require.Panics(t, func() { digitValue('g') })
}

func TestErrorKindNames(t *testing.T) {
	for k := ErrNone; k <= UnknownCharacter; k++ {
		back, ok := ParseErrorKind(k.String())
		require.True(t, ok)
		require.Equal(t, k, back)
	}
	require.Equal(t, "NumericOverflow", NumericOverflow.String())
}
