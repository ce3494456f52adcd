package parse

import (
	"github.com/pinelang/pinec/internal/sourcecode"
)

type TokenType uint8

const (
	EOF_TOKEN TokenType = iota

	//layout
	NEWLINE
	INDENT
	DEDENT

	//literals & names
	INT_LITERAL
	FLOAT_LITERAL
	STRING_LITERAL
	IDENTIFIER

	//keywords
	IF_KEYWORD
	ELSE_KEYWORD
	FOR_KEYWORD
	TO_KEYWORD
	VAR_KEYWORD
	BREAK_KEYWORD
	CONTINUE_KEYWORD
	TRUE_LITERAL
	FALSE_LITERAL
	NA_LITERAL_TOKEN
	NOT_KEYWORD
	AND_KEYWORD
	OR_KEYWORD

	//operators & punctuation
	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	GREATER_THAN
	GREATER_OR_EQUAL
	LESS_THAN
	LESS_OR_EQUAL
	EQUAL_EQUAL
	NOT_EQUAL
	EQUAL
	COLON_EQUAL
	QUESTION_MARK
	COLON
	COMMA
	DOT
	ARROW
	OPENING_PARENTHESIS
	CLOSING_PARENTHESIS
	OPENING_BRACKET
	CLOSING_BRACKET

	INVALID_TOKEN
)

var tokenTypeNames = [...]string{
	EOF_TOKEN:           "EOF",
	NEWLINE:             "NEWLINE",
	INDENT:              "INDENT",
	DEDENT:              "DEDENT",
	INT_LITERAL:         "INT_LITERAL",
	FLOAT_LITERAL:       "FLOAT_LITERAL",
	STRING_LITERAL:      "STRING_LITERAL",
	IDENTIFIER:          "IDENTIFIER",
	IF_KEYWORD:          "IF_KEYWORD",
	ELSE_KEYWORD:        "ELSE_KEYWORD",
	FOR_KEYWORD:         "FOR_KEYWORD",
	TO_KEYWORD:          "TO_KEYWORD",
	VAR_KEYWORD:         "VAR_KEYWORD",
	BREAK_KEYWORD:       "BREAK_KEYWORD",
	CONTINUE_KEYWORD:    "CONTINUE_KEYWORD",
	TRUE_LITERAL:        "TRUE_LITERAL",
	FALSE_LITERAL:       "FALSE_LITERAL",
	NA_LITERAL_TOKEN:    "NA_LITERAL",
	NOT_KEYWORD:         "NOT_KEYWORD",
	AND_KEYWORD:         "AND_KEYWORD",
	OR_KEYWORD:          "OR_KEYWORD",
	PLUS:                "PLUS",
	MINUS:               "MINUS",
	ASTERISK:            "ASTERISK",
	SLASH:               "SLASH",
	PERCENT:             "PERCENT",
	GREATER_THAN:        "GREATER_THAN",
	GREATER_OR_EQUAL:    "GREATER_OR_EQUAL",
	LESS_THAN:           "LESS_THAN",
	LESS_OR_EQUAL:       "LESS_OR_EQUAL",
	EQUAL_EQUAL:         "EQUAL_EQUAL",
	NOT_EQUAL:           "NOT_EQUAL",
	EQUAL:               "EQUAL",
	COLON_EQUAL:         "COLON_EQUAL",
	QUESTION_MARK:       "QUESTION_MARK",
	COLON:               "COLON",
	COMMA:               "COMMA",
	DOT:                 "DOT",
	ARROW:               "ARROW",
	OPENING_PARENTHESIS: "OPENING_PARENTHESIS",
	CLOSING_PARENTHESIS: "CLOSING_PARENTHESIS",
	OPENING_BRACKET:     "OPENING_BRACKET",
	CLOSING_BRACKET:     "CLOSING_BRACKET",
	INVALID_TOKEN:       "INVALID_TOKEN",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN_TOKEN_TYPE"
}

var keywordTokenTypes = map[string]TokenType{
	"if":       IF_KEYWORD,
	"else":     ELSE_KEYWORD,
	"for":      FOR_KEYWORD,
	"to":       TO_KEYWORD,
	"var":      VAR_KEYWORD,
	"break":    BREAK_KEYWORD,
	"continue": CONTINUE_KEYWORD,
	"true":     TRUE_LITERAL,
	"false":    FALSE_LITERAL,
	"na":       NA_LITERAL_TOKEN,
	"not":      NOT_KEYWORD,
	"and":      AND_KEYWORD,
	"or":       OR_KEYWORD,
}

type Token struct {
	Type TokenType           `json:"type"`
	Raw  string              `json:"raw"`
	Span sourcecode.NodeSpan `json:"span"`
}
