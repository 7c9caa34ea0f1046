package lexer

import (
	"math"
	"strings"

	"github.com/tacc-lang/tacc/internal/errors"
)

// Lexer scans source text into a token stream.
//
// Unlike a general-purpose scripting language lexer, this one only ever
// sees ASCII: decimal integers, single-line '#' comments, a fixed set of
// punctuation/operators, and identifiers that start with a letter and
// continue with letters, digits, or underscores. There is no UTF-8
// handling, no string/char literals, and no source position tracking --
// the language's tokens report only their lexeme on failure.
type Lexer struct {
	input string
	pos   int // byte offset of the next unconsumed rune
}

// New creates a Lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// UnidentifiedSymbolError reports a lexeme the lexer could not classify.
// It is an alias for the shared taxonomy's LexError so callers can match
// on either name.
type UnidentifiedSymbolError = errors.LexError

// Lex tokenizes the full input, returning the ordered token sequence or the
// first UnidentifiedSymbolError encountered. The returned slice is not
// terminated with an explicit EOF token; token-at-a-time iteration exists
// only as the unexported next method, since the driver always wants the
// whole list up front.
func Lex(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// next consumes and returns the next token. ok is false at end of input.
func (l *Lexer) next() (Token, bool, error) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		if isDigit(ch) {
			return l.lexNumber()
		}

		if isSpace(ch) {
			l.pos++
			continue
		}

		if ch == '#' {
			l.skipComment()
			continue
		}

		if tok, matched := l.lexFixedPunctuation(); matched {
			return tok, true, nil
		}

		if isLetter(ch) {
			return l.lexIdentifier(), true, nil
		}

		return Token{}, false, &UnidentifiedSymbolError{Lexeme: l.unrecognizedSymbol()}
	}
	return Token{}, false, nil
}

// lexNumber reads a maximal run of decimal digits. A digit run immediately
// followed by a letter is rejected -- integer literals do not absorb
// alphabetic characters.
func (l *Lexer) lexNumber() (Token, bool, error) {
	start := l.pos
	for isDigit(l.peekByte()) {
		l.pos++
	}
	if isLetter(l.peekByte()) {
		return Token{}, false, &UnidentifiedSymbolError{Lexeme: l.input[start:l.invalidLiteralEnd(start)]}
	}
	lexeme := l.input[start:l.pos]
	num, ok := parseInt32(lexeme)
	if !ok {
		return Token{}, false, &UnidentifiedSymbolError{Lexeme: lexeme}
	}
	return Token{Type: NUM, Literal: lexeme, Num: num}, true, nil
}

// invalidLiteralEnd extends past the trailing letters of a rejected literal
// like "12abc" so the reported lexeme covers the whole offending run.
func (l *Lexer) invalidLiteralEnd(start int) int {
	end := l.pos
	for end < len(l.input) && (isLetter(l.input[end]) || isDigit(l.input[end])) {
		end++
	}
	return end
}

// parseInt32 accumulates a decimal digit run as int64 and returns it as
// int32, reporting ok=false as soon as the total exceeds math.MaxInt32
// instead of silently wrapping or truncating.
func parseInt32(s string) (int32, bool) {
	var n int64
	for i := 0; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32 {
			return 0, false
		}
	}
	return int32(n), true
}

// lexFixedPunctuation matches multi-character operators before their
// single-character prefixes (== before =, <= before <, >= before >), then
// falls back to single-character punctuation. Returns matched=false for
// anything else, including a lone '!' which has no single-char fallback.
func (l *Lexer) lexFixedPunctuation() (Token, bool) {
	two := l.input[l.pos:min(l.pos+2, len(l.input))]
	switch two {
	case "==":
		l.pos += 2
		return NewToken(EQ, "=="), true
	case "<=":
		l.pos += 2
		return NewToken(LE, "<="), true
	case ">=":
		l.pos += 2
		return NewToken(GE, ">="), true
	case "!=":
		l.pos += 2
		return NewToken(NEQ, "!="), true
	}

	single := map[byte]TokenType{
		'+': PLUS,
		'-': MINUS,
		'*': STAR,
		'/': SLASH,
		'%': PERCENT,
		'=': ASSIGN,
		'(': LPAREN,
		')': RPAREN,
		'{': LBRACE,
		'}': RBRACE,
		'[': LBRACKET,
		']': RBRACKET,
		',': COMMA,
		';': SEMICOLON,
		'<': LT,
		'>': GT,
	}
	if tt, ok := single[l.peekByte()]; ok {
		lexeme := string(l.input[l.pos])
		l.pos++
		return NewToken(tt, lexeme), true
	}
	return Token{}, false
}

func (l *Lexer) lexIdentifier() Token {
	start := l.pos
	for isLetter(l.peekByte()) || isDigit(l.peekByte()) || l.peekByte() == '_' {
		l.pos++
	}
	lexeme := l.input[start:l.pos]
	return NewToken(LookupIdent(lexeme), lexeme)
}

// skipComment discards from '#' through and including the next newline, or
// to end of input if no newline follows.
func (l *Lexer) skipComment() {
	idx := strings.IndexByte(l.input[l.pos:], '\n')
	if idx == -1 {
		l.pos = len(l.input)
		return
	}
	l.pos += idx + 1
}

// unrecognizedSymbol returns the maximal non-whitespace run starting at the
// current position, for use in an UnidentifiedSymbolError.
func (l *Lexer) unrecognizedSymbol() string {
	start := l.pos
	for l.pos < len(l.input) && !isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		l.pos++
	}
	return l.input[start:l.pos]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
