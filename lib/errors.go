package lib

import "fmt"

// ErrorKind classifies the lexical failures reported as Error tokens.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	UnterminatedString
	InvalidEscapeOrCharacter
	UnterminatedCharLiteral
	MultiCharLiteral
	UnterminatedRawString
	BareEqualsSign
	MissingCompareSlash
	InvalidCompareCondition
	NumericOverflow
	UnknownCharacter
)

var errorKindNames = [...]string{
	ErrNone:                  "None",
	UnterminatedString:       "UnterminatedString",
	InvalidEscapeOrCharacter: "InvalidEscapeOrCharacter",
	UnterminatedCharLiteral:  "UnterminatedCharLiteral",
	MultiCharLiteral:         "MultiCharLiteral",
	UnterminatedRawString:    "UnterminatedRawString",
	BareEqualsSign:           "BareEqualsSign",
	MissingCompareSlash:      "MissingCompareSlash",
	InvalidCompareCondition:  "InvalidCompareCondition",
	NumericOverflow:          "NumericOverflow",
	UnknownCharacter:         "UnknownCharacter",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// ParseErrorKind is the inverse of ErrorKind.String.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for i, n := range errorKindNames {
		if n == name {
			return ErrorKind(i), true
		}
	}
	return ErrNone, false
}

// LexError is the error form of an Error token.
type LexError struct {
	Kind ErrorKind
	Pos  Position
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}
