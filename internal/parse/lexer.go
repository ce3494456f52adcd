package parse

import (
	"github.com/pinelang/pinec/internal/sourcecode"
)

// A lexer turns source text into a token stream. Blocks are layout-based:
// the lexer synthesizes NEWLINE tokens at logical line ends and INDENT/DEDENT
// tokens when the indentation level changes. Layout is suppressed inside
// parentheses and brackets so calls can span several lines.
type lexer struct {
	s   []rune
	i   int32
	len int32

	tokens     []Token
	errors     []Error
	indents    []int32 //stack of indentation widths, always starts with 0
	parenDepth int32
}

// Error is a parsing or tokenization error located by the span of the token
// or node it was attached to.
type Error struct {
	Err  *sourcecode.ParsingError
	Span sourcecode.NodeSpan
}

func (e Error) Error() string {
	return e.Err.Message
}

const indentWidthOfTab = 4

// Tokenize never fails: invalid input produces INVALID_TOKEN tokens plus
// located errors. The returned stream always ends with an EOF token and is
// balanced with respect to INDENT/DEDENT.
func Tokenize(code string) ([]Token, []Error) {
	l := &lexer{
		s:       []rune(code),
		len:     int32(len([]rune(code))),
		indents: []int32{0},
	}
	l.tokenize()
	return l.tokens, l.errors
}

func (l *lexer) addError(kind string, msg string, span sourcecode.NodeSpan) {
	l.errors = append(l.errors, Error{
		Err:  &sourcecode.ParsingError{Kind: kind, Message: msg},
		Span: span,
	})
}

func (l *lexer) emit(t TokenType, start int32) {
	l.tokens = append(l.tokens, Token{
		Type: t,
		Raw:  string(l.s[start:l.i]),
		Span: sourcecode.NodeSpan{Start: start, End: l.i},
	})
}

func (l *lexer) lastTokenType() TokenType {
	if len(l.tokens) == 0 {
		return EOF_TOKEN
	}
	return l.tokens[len(l.tokens)-1].Type
}

func (l *lexer) tokenize() {
	atLineStart := true

	for l.i < l.len {
		if atLineStart && l.parenDepth == 0 {
			atLineStart = false
			if l.handleIndentation() {
				atLineStart = true
				continue
			}
			if l.i >= l.len {
				break
			}
		}

		c := l.s[l.i]

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.i++
		case c == '\n':
			if l.parenDepth == 0 {
				switch l.lastTokenType() {
				case EOF_TOKEN, NEWLINE, INDENT, DEDENT:
				default:
					l.emitNewline()
				}
				atLineStart = true
			}
			l.i++
		case c == '/' && l.i+1 < l.len && l.s[l.i+1] == '/':
			for l.i < l.len && l.s[l.i] != '\n' {
				l.i++
			}
		case isDigit(c):
			l.readNumber()
		case isIdentStart(c):
			l.readIdentifierOrKeyword()
		case c == '"' || c == '\'':
			l.readString()
		default:
			l.readOperator()
		}
	}

	if last := l.lastTokenType(); last != NEWLINE && last != EOF_TOKEN {
		l.emitNewline()
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emitZeroWidth(DEDENT)
	}

	l.emitZeroWidth(EOF_TOKEN)
}

func (l *lexer) emitNewline() {
	l.tokens = append(l.tokens, Token{
		Type: NEWLINE,
		Raw:  "\n",
		Span: sourcecode.NodeSpan{Start: l.i, End: l.i + 1},
	})
}

func (l *lexer) emitZeroWidth(t TokenType) {
	l.tokens = append(l.tokens, Token{
		Type: t,
		Span: sourcecode.NodeSpan{Start: l.i, End: l.i},
	})
}

// handleIndentation measures the leading whitespace of the current line and
// emits INDENT/DEDENT tokens. It returns true if the line is blank or only
// holds a comment, in which case the line was fully consumed.
func (l *lexer) handleIndentation() bool {
	start := l.i
	width := int32(0)

	for l.i < l.len {
		switch l.s[l.i] {
		case ' ':
			width++
		case '\t':
			width += indentWidthOfTab
		case '\r':
		default:
			goto measured
		}
		l.i++
	}

measured:
	//skip blank lines and comment-only lines without touching the indent stack
	if l.i >= l.len || l.s[l.i] == '\n' || (l.s[l.i] == '/' && l.i+1 < l.len && l.s[l.i+1] == '/') {
		for l.i < l.len && l.s[l.i] != '\n' {
			l.i++
		}
		if l.i < l.len {
			l.i++ //consume '\n'
		}
		return true
	}

	top := l.indents[len(l.indents)-1]

	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.tokens = append(l.tokens, Token{
			Type: INDENT,
			Raw:  string(l.s[start:l.i]),
			Span: sourcecode.NodeSpan{Start: start, End: l.i},
		})
	case width < top:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			l.tokens = append(l.tokens, Token{
				Type: DEDENT,
				Span: sourcecode.NodeSpan{Start: start, End: l.i},
			})
		}
		if l.indents[len(l.indents)-1] != width {
			l.addError(
				sourcecode.InconsistentIndentation,
				"inconsistent indentation: dedent does not match any outer indentation level",
				sourcecode.NodeSpan{Start: start, End: l.i},
			)
		}
	}

	return false
}

func (l *lexer) readNumber() {
	start := l.i
	isFloat := false

	for l.i < l.len && isDigit(l.s[l.i]) {
		l.i++
	}

	if l.i+1 < l.len && l.s[l.i] == '.' && isDigit(l.s[l.i+1]) {
		isFloat = true
		l.i++
		for l.i < l.len && isDigit(l.s[l.i]) {
			l.i++
		}
	}

	if isFloat {
		l.emit(FLOAT_LITERAL, start)
	} else {
		l.emit(INT_LITERAL, start)
	}
}

func (l *lexer) readIdentifierOrKeyword() {
	start := l.i

	for l.i < l.len && isIdentChar(l.s[l.i]) {
		l.i++
	}

	name := string(l.s[start:l.i])
	if keywordType, ok := keywordTokenTypes[name]; ok {
		l.emit(keywordType, start)
		return
	}
	l.emit(IDENTIFIER, start)
}

func (l *lexer) readString() {
	start := l.i
	quote := l.s[l.i]
	l.i++

	for l.i < l.len && l.s[l.i] != quote && l.s[l.i] != '\n' {
		if l.s[l.i] == '\\' && l.i+1 < l.len {
			l.i++
		}
		l.i++
	}

	if l.i >= l.len || l.s[l.i] != quote {
		l.addError(
			sourcecode.UnterminatedString,
			"unterminated string literal",
			sourcecode.NodeSpan{Start: start, End: l.i},
		)
	} else {
		l.i++ //consume closing quote
	}

	l.emit(STRING_LITERAL, start)
}

func (l *lexer) readOperator() {
	start := l.i
	c := l.s[l.i]

	two := func(t TokenType) bool {
		if l.i+1 < l.len {
			l.i += 2
			l.emit(t, start)
			return true
		}
		return false
	}

	switch c {
	case '+':
		l.i++
		l.emit(PLUS, start)
	case '-':
		l.i++
		l.emit(MINUS, start)
	case '*':
		l.i++
		l.emit(ASTERISK, start)
	case '/':
		l.i++
		l.emit(SLASH, start)
	case '%':
		l.i++
		l.emit(PERCENT, start)
	case '?':
		l.i++
		l.emit(QUESTION_MARK, start)
	case ',':
		l.i++
		l.emit(COMMA, start)
	case '.':
		l.i++
		l.emit(DOT, start)
	case '(':
		l.parenDepth++
		l.i++
		l.emit(OPENING_PARENTHESIS, start)
	case ')':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		l.i++
		l.emit(CLOSING_PARENTHESIS, start)
	case '[':
		l.parenDepth++
		l.i++
		l.emit(OPENING_BRACKET, start)
	case ']':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		l.i++
		l.emit(CLOSING_BRACKET, start)
	case ':':
		if l.i+1 < l.len && l.s[l.i+1] == '=' {
			two(COLON_EQUAL)
			return
		}
		l.i++
		l.emit(COLON, start)
	case '=':
		if l.i+1 < l.len && l.s[l.i+1] == '=' {
			two(EQUAL_EQUAL)
			return
		}
		if l.i+1 < l.len && l.s[l.i+1] == '>' {
			two(ARROW)
			return
		}
		l.i++
		l.emit(EQUAL, start)
	case '>':
		if l.i+1 < l.len && l.s[l.i+1] == '=' {
			two(GREATER_OR_EQUAL)
			return
		}
		l.i++
		l.emit(GREATER_THAN, start)
	case '<':
		if l.i+1 < l.len && l.s[l.i+1] == '=' {
			two(LESS_OR_EQUAL)
			return
		}
		l.i++
		l.emit(LESS_THAN, start)
	case '!':
		if l.i+1 < l.len && l.s[l.i+1] == '=' {
			two(NOT_EQUAL)
			return
		}
		fallthrough
	default:
		l.i++
		l.emit(INVALID_TOKEN, start)
		l.addError(
			sourcecode.InvalidCharacter,
			"invalid character '"+string(c)+"'",
			sourcecode.NodeSpan{Start: start, End: l.i},
		)
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
