package main

import "strings"

// TokenKind enumerates the lexemes of the tiny SQL front-end (§4.7). The
// grammar is deliberately small -- this is not a general SQL lexer.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokNumber
	TokString

	// Punctuation
	TokLParen
	TokRParen
	TokComma
	TokEquals
	TokStar

	// Keywords
	TokCreate
	TokTable
	TokIndex
	TokSelect
	TokFrom
	TokWhere
	TokPrimary
	TokKey
	TokOn
)

var keywords = map[string]TokenKind{
	"create":  TokCreate,
	"table":   TokTable,
	"index":   TokIndex,
	"select":  TokSelect,
	"from":    TokFrom,
	"where":   TokWhere,
	"primary": TokPrimary,
	"key":     TokKey,
	"on":      TokOn,
}

// Token is one lexed unit. Text carries the literal for identifiers,
// numbers, and strings, and the source spelling of keywords; it's empty
// for punctuation tokens (whose kind is self-describing).
type Token struct {
	Kind TokenKind
	Text string
}

// Lexer produces a stream of tokens from a SQL string in one pass.
type Lexer struct {
	src []rune
	pos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

func (l *Lexer) peekByte() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Next scans and returns the next token, or a SqlError if the input
// contains a character the grammar doesn't recognize.
func (l *Lexer) Next() (Token, error) {
	for {
		r, ok := l.peekByte()
		if !ok {
			return Token{Kind: TokEOF}, nil
		}
		if isSpace(r) {
			l.pos++
			continue
		}
		break
	}

	r, _ := l.peekByte()

	switch {
	case isIdentRune(r):
		start := l.pos
		for {
			r, ok := l.peekByte()
			if !ok || !isIdentRune(r) {
				break
			}
			l.pos++
		}
		text := string(l.src[start:l.pos])
		if kind, isKeyword := keywords[strings.ToLower(text)]; isKeyword {
			return Token{Kind: kind, Text: text}, nil
		}
		return Token{Kind: TokIdent, Text: text}, nil

	case isDigit(r):
		start := l.pos
		for {
			r, ok := l.peekByte()
			if !ok || !isDigit(r) {
				break
			}
			l.pos++
		}
		return Token{Kind: TokNumber, Text: string(l.src[start:l.pos])}, nil

	case r == '\'' || r == '"':
		quote := r
		l.pos++
		start := l.pos
		for {
			r, ok := l.peekByte()
			if !ok {
				return Token{}, NewSqlError("lex_string", ErrUnexpectedToken, map[string]interface{}{
					"reason": "unterminated string literal",
				})
			}
			if r == quote {
				break
			}
			l.pos++
		}
		text := string(l.src[start:l.pos])
		l.pos++ // consume closing quote
		return Token{Kind: TokString, Text: text}, nil

	case r == '(':
		l.pos++
		return Token{Kind: TokLParen}, nil
	case r == ')':
		l.pos++
		return Token{Kind: TokRParen}, nil
	case r == ',':
		l.pos++
		return Token{Kind: TokComma}, nil
	case r == '=':
		l.pos++
		return Token{Kind: TokEquals}, nil
	case r == '*':
		l.pos++
		return Token{Kind: TokStar}, nil

	default:
		return Token{}, NewSqlError("lex", ErrUnexpectedToken, map[string]interface{}{
			"char": string(r),
		})
	}
}

// Tokenize drains a lexer into a slice, ending with exactly one TokEOF.
// NewParser uses it to build the parser's pre-lexed token window.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			return tokens, nil
		}
	}
}
