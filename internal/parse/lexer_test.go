package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, token := range tokens {
		types[i] = token.Type
	}
	return types
}

func TestTokenizeBasic(t *testing.T) {

	t.Run("empty input", func(t *testing.T) {
		tokens, errs := Tokenize("")
		assert.Empty(t, errs)
		assert.Equal(t, []TokenType{EOF_TOKEN}, tokenTypes(tokens))
	})

	t.Run("single declaration", func(t *testing.T) {
		tokens, errs := Tokenize("x = 1")
		assert.Empty(t, errs)
		assert.Equal(t,
			[]TokenType{IDENTIFIER, EQUAL, INT_LITERAL, NEWLINE, EOF_TOKEN},
			tokenTypes(tokens),
		)
		assert.Equal(t, "x", tokens[0].Raw)
		assert.Equal(t, "1", tokens[2].Raw)
	})

	t.Run("number literals", func(t *testing.T) {
		tokens, errs := Tokenize("14 2.5 0.001")
		assert.Empty(t, errs)
		assert.Equal(t,
			[]TokenType{INT_LITERAL, FLOAT_LITERAL, FLOAT_LITERAL, NEWLINE, EOF_TOKEN},
			tokenTypes(tokens),
		)
		assert.Equal(t, "2.5", tokens[1].Raw)
	})

	t.Run("string literal", func(t *testing.T) {
		tokens, errs := Tokenize(`s = "hello"`)
		assert.Empty(t, errs)
		assert.Equal(t, STRING_LITERAL, tokens[2].Type)
		assert.Equal(t, `"hello"`, tokens[2].Raw)
	})

	t.Run("keywords are not identifiers", func(t *testing.T) {
		tokens, errs := Tokenize("if else for to var break continue true false na not and or")
		assert.Empty(t, errs)
		assert.Equal(t,
			[]TokenType{
				IF_KEYWORD, ELSE_KEYWORD, FOR_KEYWORD, TO_KEYWORD, VAR_KEYWORD,
				BREAK_KEYWORD, CONTINUE_KEYWORD, TRUE_LITERAL, FALSE_LITERAL,
				NA_LITERAL_TOKEN, NOT_KEYWORD, AND_KEYWORD, OR_KEYWORD,
				NEWLINE, EOF_TOKEN,
			},
			tokenTypes(tokens),
		)
	})

	t.Run("two-char operators", func(t *testing.T) {
		tokens, errs := Tokenize("a := b == c != d >= e <= f => g")
		assert.Empty(t, errs)
		assert.Equal(t, COLON_EQUAL, tokens[1].Type)
		assert.Equal(t, EQUAL_EQUAL, tokens[3].Type)
		assert.Equal(t, NOT_EQUAL, tokens[5].Type)
		assert.Equal(t, GREATER_OR_EQUAL, tokens[7].Type)
		assert.Equal(t, LESS_OR_EQUAL, tokens[9].Type)
		assert.Equal(t, ARROW, tokens[11].Type)
	})

	t.Run("comment is skipped", func(t *testing.T) {
		tokens, errs := Tokenize("x = 1 // trailing comment")
		assert.Empty(t, errs)
		assert.Equal(t,
			[]TokenType{IDENTIFIER, EQUAL, INT_LITERAL, NEWLINE, EOF_TOKEN},
			tokenTypes(tokens),
		)
	})

	t.Run("spans are rune offsets", func(t *testing.T) {
		tokens, errs := Tokenize("ab = 12")
		assert.Empty(t, errs)
		assert.EqualValues(t, 0, tokens[0].Span.Start)
		assert.EqualValues(t, 2, tokens[0].Span.End)
		assert.EqualValues(t, 5, tokens[2].Span.Start)
		assert.EqualValues(t, 7, tokens[2].Span.End)
	})
}

func TestTokenizeLayout(t *testing.T) {

	t.Run("indent and dedent around a block", func(t *testing.T) {
		tokens, errs := Tokenize("if x\n    y = 1\nz = 2\n")
		assert.Empty(t, errs)
		assert.Equal(t,
			[]TokenType{
				IF_KEYWORD, IDENTIFIER, NEWLINE,
				INDENT, IDENTIFIER, EQUAL, INT_LITERAL, NEWLINE, DEDENT,
				IDENTIFIER, EQUAL, INT_LITERAL, NEWLINE,
				EOF_TOKEN,
			},
			tokenTypes(tokens),
		)
	})

	t.Run("all dedents flushed at EOF", func(t *testing.T) {
		tokens, errs := Tokenize("if a\n    if b\n        c = 1")
		assert.Empty(t, errs)

		dedents := 0
		for _, token := range tokens {
			if token.Type == DEDENT {
				dedents++
			}
		}
		assert.Equal(t, 2, dedents)
		assert.Equal(t, EOF_TOKEN, tokens[len(tokens)-1].Type)
	})

	t.Run("blank and comment-only lines produce no layout", func(t *testing.T) {
		tokens, errs := Tokenize("x = 1\n\n// comment\n\ny = 2\n")
		assert.Empty(t, errs)
		assert.Equal(t,
			[]TokenType{
				IDENTIFIER, EQUAL, INT_LITERAL, NEWLINE,
				IDENTIFIER, EQUAL, INT_LITERAL, NEWLINE,
				EOF_TOKEN,
			},
			tokenTypes(tokens),
		)
	})

	t.Run("layout suppressed inside parentheses", func(t *testing.T) {
		tokens, errs := Tokenize("x = f(1,\n    2)\n")
		assert.Empty(t, errs)

		for _, token := range tokens[:len(tokens)-2] {
			assert.NotEqual(t, INDENT, token.Type)
		}
	})

	t.Run("tab counts as four columns", func(t *testing.T) {
		tokens, errs := Tokenize("if x\n\ty = 1\n")
		assert.Empty(t, errs)
		assert.Contains(t, tokenTypes(tokens), INDENT)
	})
}

func TestTokenizeErrors(t *testing.T) {

	t.Run("unterminated string", func(t *testing.T) {
		_, errs := Tokenize(`s = "oops`)
		if assert.Len(t, errs, 1) {
			assert.Equal(t, "unterminated-string", errs[0].Err.Kind)
		}
	})

	t.Run("invalid character", func(t *testing.T) {
		tokens, errs := Tokenize("x = 1 @")
		if assert.Len(t, errs, 1) {
			assert.Equal(t, "invalid-character", errs[0].Err.Kind)
		}
		assert.Contains(t, tokenTypes(tokens), INVALID_TOKEN)
	})

	t.Run("invalid input still ends with EOF", func(t *testing.T) {
		tokens, _ := Tokenize("@@@")
		assert.Equal(t, EOF_TOKEN, tokens[len(tokens)-1].Type)
	})
}
