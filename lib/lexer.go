package lib

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/merryhime/StaMINA/lib/invariant"
)

// Lex pulls tokens from t until EndOfFile, which is not passed to emit.
func Lex(t *Tokenizer, emit func(Token)) {
	for {
		tok := t.NextToken()
		if tok.Type == EndOfFile {
			return
		}
		emit(tok)
	}
}

// Tokenize lexes an in-memory string and returns every token before
// EndOfFile.
func Tokenize(text string, opts ...Option) []Token {
	tokens := []Token{}
	Lex(NewStringTokenizer(text, opts...), func(tok Token) {
		tokens = append(tokens, tok)
	})
	return tokens
}

// Tokenizer turns assembly source into tokens, one per NextToken call. It is
// not safe for concurrent use.
type Tokenizer struct {
	src    CharSource
	table  *InstructionTable
	logger *slog.Logger

	tokenLocation Position
	text          strings.Builder

	// canNewline is set once the current statement has something that may
	// end it. A newline seen while it is clear is a line continuation.
	canNewline bool
}

type Option func(*Tokenizer)

// WithInstructions replaces the process-wide instruction table.
func WithInstructions(table *InstructionTable) Option {
	return func(t *Tokenizer) {
		t.table = table
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tokenizer) {
		t.logger = logger
	}
}

func NewTokenizer(src CharSource, opts ...Option) *Tokenizer {
	invariant.NotNil(src, "src")
	t := &Tokenizer{
		src:        src,
		canNewline: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.table == nil {
		t.table = DefaultInstructions()
	}
	if t.logger == nil {
		t.logger = defaultLogger()
	}
	return t
}

func NewStringTokenizer(text string, opts ...Option) *Tokenizer {
	return NewTokenizer(NewStringSource(DefaultFilename, text), opts...)
}

// NextToken returns the next token. Once the input is exhausted and the
// final statement has been terminated it returns EndOfFile forever.
func (t *Tokenizer) NextToken() Token {
	tok := t.next()
	if t.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.logger.Debug("token",
			"pos", tok.Pos.String(),
			"type", tok.Type.String(),
			"payload", tok.Payload.String())
	}
	return tok
}

// Err returns the error that cut the input short, if the source can report
// one. Sources that cannot fail always return nil.
func (t *Tokenizer) Err() error {
	if s, ok := t.src.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}

func (t *Tokenizer) peek() (byte, bool) {
	return t.src.Current()
}

func (t *Tokenizer) is(ch byte) bool {
	c, ok := t.src.Current()
	return ok && c == ch
}

// advance consumes the lookahead into the current token's source text.
func (t *Tokenizer) advance() {
	if ch, ok := t.src.Current(); ok {
		t.text.WriteByte(ch)
	}
	t.src.Advance()
}

func (t *Tokenizer) maybe(ch byte) bool {
	if t.is(ch) {
		t.advance()
		return true
	}
	return false
}

func (t *Tokenizer) atEnd() bool {
	_, ok := t.src.Current()
	return !ok
}

func (t *Tokenizer) emit(typ TokenType, payload Payload) Token {
	return NewToken(t.tokenLocation, typ, payload, t.text.String())
}

func (t *Tokenizer) errorf(kind ErrorKind, msg string) Token {
	return NewErrorToken(t.tokenLocation, kind, msg, t.text.String())
}

func (t *Tokenizer) skipWhitespace() {
	for ch, ok := t.peek(); ok && isWhitespace(ch); ch, ok = t.peek() {
		t.src.Advance()
	}
}

func (t *Tokenizer) skipComment() {
	if !t.is(';') {
		return
	}
	for ch, ok := t.peek(); ok && ch != '\n'; ch, ok = t.peek() {
		t.src.Advance()
	}
}

func (t *Tokenizer) next() Token {
	for {
		t.skipWhitespace()
		t.skipComment()

		t.tokenLocation = t.src.Pos()
		t.text.Reset()

		ch, ok := t.peek()
		if !ok {
			if t.canNewline {
				t.canNewline = false
				return t.emit(NewLine, NoPayload())
			}
			return t.emit(EndOfFile, NoPayload())
		}

		if ch == '\n' {
			t.advance()
			if t.canNewline {
				t.canNewline = false
				return t.emit(NewLine, NoPayload())
			}
			continue
		}

		t.canNewline = false
		t.advance()
		return t.dispatch(ch)
	}
}

func (t *Tokenizer) dispatch(ch byte) Token {
	switch ch {
	case '"':
		t.canNewline = true
		return t.lexString()
	case '\'':
		t.canNewline = true
		return t.lexChar()
	case '`':
		t.canNewline = true
		return t.lexRawString()
	case '@':
		if t.maybe('@') {
			return t.emit(TokCat, NoPayload())
		}
		t.canNewline = true
		return t.lexDirective()
	case '.':
		t.canNewline = true
		return t.lexDirective()
	case ',':
		return t.emit(Comma, NoPayload())
	case '(':
		return t.emit(LParen, NoPayload())
	case ')':
		t.canNewline = true
		return t.emit(RParen, NoPayload())
	case '+':
		return t.emit(Plus, NoPayload())
	case '-':
		return t.emit(Minus, NoPayload())
	case '*':
		return t.emit(Mul, NoPayload())
	case '/':
		return t.emit(Div, NoPayload())
	case '%':
		return t.emit(Mod, NoPayload())
	case '^':
		return t.emit(Xor, NoPayload())
	case '~':
		return t.emit(BitNot, NoPayload())
	case '<':
		if t.maybe('<') {
			return t.emit(ShLeft, NoPayload())
		}
		if t.maybe('=') {
			return t.emit(LessEqual, NoPayload())
		}
		return t.emit(Less, NoPayload())
	case '>':
		if t.maybe('>') {
			return t.emit(ShRight, NoPayload())
		}
		if t.maybe('=') {
			return t.emit(GreaterEqual, NoPayload())
		}
		return t.emit(Greater, NoPayload())
	case '=':
		if t.maybe('=') {
			return t.emit(Equal, NoPayload())
		}
		return t.errorf(BareEqualsSign, "Single equals sign is not a valid token")
	case '!':
		if t.maybe('=') {
			return t.emit(NotEqual, NoPayload())
		}
		return t.emit(LogicNot, NoPayload())
	case '&':
		if t.maybe('&') {
			return t.emit(LogicAnd, NoPayload())
		}
		return t.emit(BitAnd, NoPayload())
	case '|':
		if t.maybe('|') {
			return t.emit(LogicOr, NoPayload())
		}
		return t.emit(BitOr, NoPayload())
	}

	if isDigit(ch) {
		t.canNewline = true
		return t.lexNumber(ch)
	}
	if isIdentifierStart(ch) {
		t.canNewline = true
		return t.lexIdentifier()
	}

	return t.errorf(UnknownCharacter, "Unknown character")
}

func (t *Tokenizer) lexString() Token {
	var str strings.Builder
	for !t.is('"') {
		if t.atEnd() {
			return t.errorf(UnterminatedString, "invalid character in string")
		}
		ch, ok := t.lexEscapedChar()
		if !ok {
			if t.atEnd() {
				return t.errorf(UnterminatedString, "invalid character in string")
			}
			t.skipStringRest()
			return t.errorf(InvalidEscapeOrCharacter, "invalid character in string")
		}
		str.WriteByte(ch)
	}
	t.advance()
	return t.emit(StringLit, TextPayload(str.String()))
}

// skipStringRest folds the remainder of a broken string literal, up to its
// closing quote on the current line, into the error token. It never consumes
// a newline, so a broken literal spanning lines yields more than one Error.
func (t *Tokenizer) skipStringRest() {
	src := t.text.String()
	if strings.HasSuffix(src, "\n") {
		return
	}
	for ch, ok := t.peek(); ok && ch != '\n'; ch, ok = t.peek() {
		t.advance()
		switch ch {
		case '"':
			return
		case '\\':
			if next, ok := t.peek(); ok && next != '\n' {
				t.advance()
			}
		}
	}
}

func (t *Tokenizer) lexChar() Token {
	if t.atEnd() {
		return t.errorf(UnterminatedCharLiteral, "invalid character")
	}
	ch, ok := t.lexEscapedChar()
	if !ok {
		if t.atEnd() {
			return t.errorf(UnterminatedCharLiteral, "invalid character")
		}
		return t.errorf(InvalidEscapeOrCharacter, "invalid character")
	}
	if !t.maybe('\'') {
		if t.atEnd() {
			return t.errorf(UnterminatedCharLiteral, "character literal can only contain single character")
		}
		return t.errorf(MultiCharLiteral, "character literal can only contain single character")
	}
	return t.emit(NumericLit, IntPayload(int64(ch)))
}

func (t *Tokenizer) lexRawString() Token {
	for !t.is('`') {
		if t.atEnd() {
			return t.errorf(UnterminatedRawString, "invalid end-of-file in raw string")
		}
		t.advance()
	}
	t.advance()
	src := t.text.String()
	return t.emit(StringLit, TextPayload(src[1:len(src)-1]))
}

func (t *Tokenizer) lexDirective() Token {
	t.eatIdentifierChars()
	return t.emit(Directive, TextPayload(t.text.String()[1:]))
}

func (t *Tokenizer) eatIdentifierChars() {
	for ch, ok := t.peek(); ok && isIdentifierChar(ch); ch, ok = t.peek() {
		t.advance()
	}
}

func (t *Tokenizer) lexIdentifier() Token {
	t.eatIdentifierChars()
	ident := t.text.String()
	upper := strings.ToUpper(ident)

	if t.table.IsCompare(upper) {
		return t.lexCompare(ident, upper)
	}
	if t.table.IsMnemonic(upper) {
		return t.emit(Mnemonic, TextPayload(upper))
	}
	return t.emit(Identifier, TextPayload(ident))
}

// lexCompare reads the "/COND" suffix a compare-family mnemonic requires.
func (t *Tokenizer) lexCompare(ident string, upper string) Token {
	if !t.maybe('/') {
		return t.errorf(MissingCompareSlash, ident+" must be followed by /")
	}

	start := t.text.Len()
	for ch, ok := t.peek(); ok && isLetter(ch); ch, ok = t.peek() {
		t.advance()
	}
	cond := t.text.String()[start:]
	upperCond := strings.ToUpper(cond)

	if !t.table.IsCondition(upperCond) {
		return t.errorf(InvalidCompareCondition,
			ident+" must be followed by a valid condition, "+cond+" is not a valid condition")
	}
	return t.emit(Mnemonic, TextPayload(upper+"/"+upperCond))
}

func (t *Tokenizer) lexNumber(first byte) Token {
	if first == '0' {
		switch {
		case t.maybe('b') || t.maybe('B'):
			return t.lexDigits(0, 2, isBinaryDigit)
		case t.maybe('o') || t.maybe('O'):
			return t.lexDigits(0, 8, isOctalDigit)
		case t.maybe('x') || t.maybe('X'):
			return t.lexDigits(0, 16, isHexDigit)
		}
	}
	return t.lexDigits(digitValue(first), 10, isDigit)
}

func (t *Tokenizer) lexDigits(value int64, radix int64, accept func(byte) bool) Token {
	for ch, ok := t.peek(); ok && accept(ch); ch, ok = t.peek() {
		d := digitValue(ch)
		t.advance()
		if value > (math.MaxInt64-d)/radix {
			return t.errorf(NumericOverflow, "number literal overflow")
		}
		value = value*radix + d
	}
	return t.emit(NumericLit, IntPayload(value))
}
