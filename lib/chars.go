package lib

import "github.com/merryhime/StaMINA/lib/invariant"

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

func isOctalDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentifierStart(ch byte) bool {
	return isLetter(ch) || ch == '_'
}

func isIdentifierChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '.' || ch == '_'
}

// Newline is significant and handled by the tokenizer itself.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

// digitValue is only called once a digit predicate has accepted ch.
func digitValue(ch byte) int64 {
	switch {
	case ch >= '0' && ch <= '9':
		return int64(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int64(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int64(ch-'A') + 10
	}
	invariant.Unreachable("digit value of non-digit %q", ch)
	return 0
}
