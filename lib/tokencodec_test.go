package lib

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	tokens := Tokenize(".org 0x10\nfoo cmp/lt r1, 'a' @@ \"x\\q\" ~r2")

	var buf bytes.Buffer
	require.NoError(t, EncodeTokens(&buf, tokens))

	decoded, err := DecodeTokens(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(tokens, decoded, cmp.AllowUnexported(Payload{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	require.Contains(t, tokenTypes(decoded), Error)
}

func TestTokenCodecIsDeterministic(t *testing.T) {
	tokens := Tokenize("movi r0, 42")

	var a, b bytes.Buffer
	require.NoError(t, EncodeTokens(&a, tokens))
	require.NoError(t, EncodeTokens(&b, tokens))
	require.Equal(t, a.Bytes(), b.Bytes())
}

func encodeRecords(t *testing.T, records []tokenRecord) *bytes.Buffer {
	t.Helper()
	data, err := cbor.Marshal(records)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestDecodeTokensRejects(t *testing.T) {
	text := "x"
	value := int64(1)

	cases := []struct {
		name    string
		records []tokenRecord
	}{
		{"unknown type", []tokenRecord{{Line: 1, Column: 1, Type: "Semicolon"}}},
		{"missing payload", []tokenRecord{{Line: 1, Column: 1, Type: "Identifier"}}},
		{"wrong payload", []tokenRecord{{Line: 1, Column: 1, Type: "Comma", Int: &value}}},
		{"two payloads", []tokenRecord{{Line: 1, Column: 1, Type: "StringLit", Text: &text, Int: &value}}},
		{"error without kind", []tokenRecord{{Line: 1, Column: 1, Type: "Error", Text: &text}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeTokens(encodeRecords(t, tc.records))
			require.Error(t, err)
		})
	}

	_, err := DecodeTokens(bytes.NewReader([]byte{0xff}))
	require.Error(t, err)
}
