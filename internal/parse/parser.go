package parse

import (
	"strconv"
	"strings"

	"github.com/pinelang/pinec/internal/sourcecode"
)

// A parser parses a single chunk of indicator script, it recovers from errors:
// malformed input yields a best-effort partial tree plus located errors, never
// a panic.
type parser struct {
	tokens []Token
	i      int

	errors []Error
}

// ParseChunk parses a whole compilation unit. The returned chunk is never nil;
// the error list contains the tokenization and parsing errors in discovery
// order.
func ParseChunk(code string) (*Chunk, []Error) {
	tokens, lexErrors := Tokenize(code)

	p := &parser{
		tokens: tokens,
		errors: lexErrors,
	}

	chunk := p.parseChunk(int32(len([]rune(code))))
	return chunk, p.errors
}

func (p *parser) current() Token {
	return p.tokens[p.i]
}

func (p *parser) at(t TokenType) bool {
	return p.tokens[p.i].Type == t
}

func (p *parser) next() Token {
	tok := p.tokens[p.i]
	if tok.Type != EOF_TOKEN {
		p.i++
	}
	return tok
}

func (p *parser) eat(t TokenType) (Token, bool) {
	if p.at(t) {
		return p.next(), true
	}
	return p.current(), false
}

func (p *parser) addError(kind, msg string, span sourcecode.NodeSpan) {
	p.errors = append(p.errors, Error{
		Err:  &sourcecode.ParsingError{Kind: kind, Message: msg},
		Span: span,
	})
}

func (p *parser) expect(t TokenType, what string) (Token, bool) {
	if tok, ok := p.eat(t); ok {
		return tok, true
	}
	tok := p.current()
	p.addError(
		sourcecode.UnexpectedToken,
		"unexpected token '"+strings.TrimSpace(tok.Raw)+"', expected "+what,
		tok.Span,
	)
	return tok, false
}

func (p *parser) skipNewlines() {
	for p.at(NEWLINE) {
		p.next()
	}
}

// resyncStatement skips tokens until a statement boundary so that the
// statements after a malformed one are still parsed.
func (p *parser) resyncStatement() {
	for {
		switch p.current().Type {
		case NEWLINE:
			p.next()
			return
		case DEDENT, EOF_TOKEN:
			return
		}
		p.next()
	}
}

func (p *parser) parseChunk(codeLen int32) *Chunk {
	chunk := &Chunk{
		NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: 0, End: codeLen}},
	}

	p.skipNewlines()

	for !p.at(EOF_TOKEN) {
		if p.at(DEDENT) || p.at(INDENT) {
			//stray layout token, e.g. after an indentation error
			p.next()
			continue
		}

		before := p.i
		stmt := p.parseStatement()
		if stmt != nil {
			chunk.Statements = append(chunk.Statements, stmt)
		}
		if p.i == before {
			p.next() //always make progress
		}
		p.skipNewlines()
	}

	return chunk
}

func (p *parser) parseStatement() Node {
	switch p.current().Type {
	case BREAK_KEYWORD:
		tok := p.next()
		stmt := &BreakStatement{NodeBase: NodeBase{Span: tok.Span}}
		p.endStatement()
		return stmt
	case CONTINUE_KEYWORD:
		tok := p.next()
		stmt := &ContinueStatement{NodeBase: NodeBase{Span: tok.Span}}
		p.endStatement()
		return stmt
	case IF_KEYWORD:
		return p.parseIfStatement()
	case FOR_KEYWORD:
		return p.parseForStatement()
	case VAR_KEYWORD:
		return p.parseVarDeclaration()
	case IDENTIFIER:
		switch p.tokens[p.i+1].Type {
		case EQUAL:
			return p.parseConstDeclaration()
		case COLON_EQUAL:
			return p.parseAssignment()
		case OPENING_PARENTHESIS:
			if p.isFunctionDeclarationAhead() {
				return p.parseFunctionDeclaration()
			}
		}
	}

	expr := p.parseExpression()
	p.endStatement()
	return expr
}

// endStatement consumes the statement terminator, reporting an error and
// resynchronizing when other tokens remain on the line.
func (p *parser) endStatement() {
	switch p.current().Type {
	case NEWLINE:
		p.next()
	case DEDENT, EOF_TOKEN:
	default:
		tok := p.current()
		p.addError(
			sourcecode.UnexpectedToken,
			"unexpected token '"+strings.TrimSpace(tok.Raw)+"' at end of statement",
			tok.Span,
		)
		p.resyncStatement()
	}
}

// isFunctionDeclarationAhead reports whether the tokens at an
// IDENTIFIER '(' position form the head of a function declaration, i.e.
// whether an '=>' follows the matching ')'.
func (p *parser) isFunctionDeclarationAhead() bool {
	depth := 0

	for j := p.i + 1; j < len(p.tokens); j++ {
		switch p.tokens[j].Type {
		case OPENING_PARENTHESIS, OPENING_BRACKET:
			depth++
		case CLOSING_PARENTHESIS, CLOSING_BRACKET:
			depth--
			if depth == 0 {
				return j+1 < len(p.tokens) && p.tokens[j+1].Type == ARROW
			}
		case NEWLINE, EOF_TOKEN:
			return false
		}
	}
	return false
}

func (p *parser) parseConstDeclaration() Node {
	nameTok := p.next()
	name := &IdentifierLiteral{NodeBase: NodeBase{Span: nameTok.Span}, Name: nameTok.Raw}

	p.next() //'='
	right := p.parseExpression()
	p.endStatement()

	return &VariableDeclaration{
		NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: nameTok.Span.Start, End: right.Base().Span.End}},
		Name:     name,
		Right:    right,
	}
}

func (p *parser) parseVarDeclaration() Node {
	varTok := p.next()

	nameTok, ok := p.expect(IDENTIFIER, "a variable name")
	if !ok {
		p.resyncStatement()
		return &VariableDeclaration{
			NodeBase: NodeBase{
				Span: varTok.Span,
				Err:  &sourcecode.ParsingError{Kind: sourcecode.UnexpectedToken, Message: "missing variable name after 'var'"},
			},
			Name:  &IdentifierLiteral{NodeBase: NodeBase{Span: varTok.Span}, Name: "_"},
			Right: &MissingExpression{NodeBase: NodeBase{Span: varTok.Span}},
		}
	}
	name := &IdentifierLiteral{NodeBase: NodeBase{Span: nameTok.Span}, Name: nameTok.Raw}

	p.expect(EQUAL, "'='")
	right := p.parseExpression()
	p.endStatement()

	return &VariableDeclaration{
		NodeBase:     NodeBase{Span: sourcecode.NodeSpan{Start: varTok.Span.Start, End: right.Base().Span.End}},
		Name:         name,
		Right:        right,
		Reassignable: true,
	}
}

func (p *parser) parseAssignment() Node {
	nameTok := p.next()
	name := &IdentifierLiteral{NodeBase: NodeBase{Span: nameTok.Span}, Name: nameTok.Raw}

	p.next() //':='
	right := p.parseExpression()
	p.endStatement()

	return &AssignmentStatement{
		NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: nameTok.Span.Start, End: right.Base().Span.End}},
		Name:     name,
		Right:    right,
	}
}

func (p *parser) parseIfStatement() Node {
	ifTok := p.next()

	condition := p.parseExpression()
	consequent := p.parseBlock()

	stmt := &IfStatement{
		NodeBase:   NodeBase{Span: sourcecode.NodeSpan{Start: ifTok.Span.Start, End: consequent.Span.End}},
		Condition:  condition,
		Consequent: consequent,
	}

	p.skipNewlines()

	if p.at(ELSE_KEYWORD) {
		p.next()
		if p.at(IF_KEYWORD) {
			stmt.Alternate = p.parseIfStatement()
		} else {
			stmt.Alternate = p.parseBlock()
		}
		stmt.Span.End = stmt.Alternate.Base().Span.End
	}

	return stmt
}

func (p *parser) parseForStatement() Node {
	forTok := p.next()

	nameTok, ok := p.expect(IDENTIFIER, "a loop counter name")
	if !ok {
		p.resyncStatement()
		return &ForStatement{
			NodeBase: NodeBase{
				Span: forTok.Span,
				Err:  &sourcecode.ParsingError{Kind: sourcecode.UnexpectedToken, Message: "missing counter in for statement"},
			},
			Counter: &IdentifierLiteral{NodeBase: NodeBase{Span: forTok.Span}, Name: "_"},
			From:    &MissingExpression{NodeBase: NodeBase{Span: forTok.Span}},
			To:      &MissingExpression{NodeBase: NodeBase{Span: forTok.Span}},
			Body:    &Block{NodeBase: NodeBase{Span: forTok.Span}},
		}
	}
	counter := &IdentifierLiteral{NodeBase: NodeBase{Span: nameTok.Span}, Name: nameTok.Raw}

	p.expect(EQUAL, "'='")
	from := p.parseExpression()
	p.expect(TO_KEYWORD, "'to'")
	to := p.parseExpression()
	body := p.parseBlock()

	return &ForStatement{
		NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: forTok.Span.Start, End: body.Span.End}},
		Counter:  counter,
		From:     from,
		To:       to,
		Body:     body,
	}
}

func (p *parser) parseFunctionDeclaration() Node {
	nameTok := p.next()
	name := &IdentifierLiteral{NodeBase: NodeBase{Span: nameTok.Span}, Name: nameTok.Raw}

	p.next() //'('

	var params []*FunctionParameter
	for !p.at(CLOSING_PARENTHESIS) && !p.at(EOF_TOKEN) {
		paramTok, ok := p.expect(IDENTIFIER, "a parameter name")
		if !ok {
			break
		}
		params = append(params, &FunctionParameter{
			NodeBase: NodeBase{Span: paramTok.Span},
			Name:     &IdentifierLiteral{NodeBase: NodeBase{Span: paramTok.Span}, Name: paramTok.Raw},
		})
		if _, ok := p.eat(COMMA); !ok {
			break
		}
	}
	p.expect(CLOSING_PARENTHESIS, "')'")
	p.expect(ARROW, "'=>'")

	var body *Block
	if p.at(NEWLINE) {
		body = p.parseBlock()
	} else {
		expr := p.parseExpression()
		p.endStatement()
		body = &Block{
			NodeBase:   NodeBase{Span: expr.Base().Span},
			Statements: []Node{expr},
		}
	}

	return &FunctionDeclaration{
		NodeBase:   NodeBase{Span: sourcecode.NodeSpan{Start: nameTok.Span.Start, End: body.Span.End}},
		Name:       name,
		Parameters: params,
		Body:       body,
	}
}

// parseBlock parses NEWLINE INDENT statements DEDENT. A missing indented
// block yields an empty block with an attached error.
func (p *parser) parseBlock() *Block {
	start := p.current().Span.Start

	if _, ok := p.eat(NEWLINE); !ok {
		block := &Block{NodeBase: NodeBase{
			Span: p.current().Span,
			Err:  &sourcecode.ParsingError{Kind: sourcecode.MissingBlock, Message: "missing indented block"},
		}}
		p.addError(sourcecode.MissingBlock, "missing indented block", p.current().Span)
		p.resyncStatement()
		return block
	}

	if _, ok := p.eat(INDENT); !ok {
		block := &Block{NodeBase: NodeBase{
			Span: p.current().Span,
			Err:  &sourcecode.ParsingError{Kind: sourcecode.MissingBlock, Message: "missing indented block"},
		}}
		p.addError(sourcecode.MissingBlock, "missing indented block", p.current().Span)
		return block
	}

	block := &Block{NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: start, End: start}}}

	p.skipNewlines()
	for !p.at(DEDENT) && !p.at(EOF_TOKEN) {
		before := p.i
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
			block.Span.End = stmt.Base().Span.End
		}
		if p.i == before {
			p.next()
		}
		p.skipNewlines()
	}
	p.eat(DEDENT)

	return block
}

func (p *parser) parseExpression() Node {
	return p.parseTernary()
}

func (p *parser) parseTernary() Node {
	condition := p.parseOr()

	if _, ok := p.eat(QUESTION_MARK); !ok {
		return condition
	}

	consequent := p.parseTernary()
	p.expect(COLON, "':'")
	alternate := p.parseTernary()

	return &TernaryExpression{
		NodeBase: NodeBase{
			Span: sourcecode.NodeSpan{Start: condition.Base().Span.Start, End: alternate.Base().Span.End},
		},
		Condition:  condition,
		Consequent: consequent,
		Alternate:  alternate,
	}
}

func (p *parser) parseOr() Node {
	left := p.parseAnd()

	for p.at(OR_KEYWORD) {
		p.next()
		right := p.parseAnd()
		left = makeBinary(Or, left, right)
	}
	return left
}

func (p *parser) parseAnd() Node {
	left := p.parseComparison()

	for p.at(AND_KEYWORD) {
		p.next()
		right := p.parseComparison()
		left = makeBinary(And, left, right)
	}
	return left
}

var comparisonOperators = map[TokenType]BinaryOperator{
	GREATER_THAN:     GreaterThan,
	GREATER_OR_EQUAL: GreaterOrEqual,
	LESS_THAN:        LessThan,
	LESS_OR_EQUAL:    LessOrEqual,
	EQUAL_EQUAL:      Equal,
	NOT_EQUAL:        NotEqual,
}

func (p *parser) parseComparison() Node {
	left := p.parseAdditive()

	for {
		op, ok := comparisonOperators[p.current().Type]
		if !ok {
			return left
		}
		p.next()
		right := p.parseAdditive()
		left = makeBinary(op, left, right)
	}
}

func (p *parser) parseAdditive() Node {
	left := p.parseMultiplicative()

	for {
		var op BinaryOperator
		switch p.current().Type {
		case PLUS:
			op = Add
		case MINUS:
			op = Sub
		default:
			return left
		}
		p.next()
		right := p.parseMultiplicative()
		left = makeBinary(op, left, right)
	}
}

func (p *parser) parseMultiplicative() Node {
	left := p.parseUnary()

	for {
		var op BinaryOperator
		switch p.current().Type {
		case ASTERISK:
			op = Mul
		case SLASH:
			op = Div
		case PERCENT:
			op = Mod
		default:
			return left
		}
		p.next()
		right := p.parseUnary()
		left = makeBinary(op, left, right)
	}
}

func (p *parser) parseUnary() Node {
	switch p.current().Type {
	case MINUS:
		tok := p.next()
		operand := p.parseUnary()
		return &UnaryExpression{
			NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: tok.Span.Start, End: operand.Base().Span.End}},
			Operator: NumberNegate,
			Operand:  operand,
		}
	case NOT_KEYWORD:
		tok := p.next()
		operand := p.parseUnary()
		return &UnaryExpression{
			NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: tok.Span.Start, End: operand.Base().Span.End}},
			Operator: BoolNegate,
			Operand:  operand,
		}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() Node {
	expr := p.parsePrimary()

	for {
		switch p.current().Type {
		case DOT:
			p.next()
			propTok, ok := p.expect(IDENTIFIER, "a property name")
			if !ok {
				return expr
			}
			expr = &MemberExpression{
				NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: expr.Base().Span.Start, End: propTok.Span.End}},
				Object:   expr,
				Property: &IdentifierLiteral{NodeBase: NodeBase{Span: propTok.Span}, Name: propTok.Raw},
			}
		case OPENING_PARENTHESIS:
			expr = p.parseCall(expr)
		case OPENING_BRACKET:
			p.next()
			offset := p.parseExpression()
			closing, _ := p.expect(CLOSING_BRACKET, "']'")
			expr = &HistoryExpression{
				NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: expr.Base().Span.Start, End: closing.Span.End}},
				Target:   expr,
				Offset:   offset,
			}
		default:
			return expr
		}
	}
}

func (p *parser) parseCall(callee Node) Node {
	p.next() //'('

	call := &CallExpression{
		NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: callee.Base().Span.Start, End: callee.Base().Span.End}},
		Callee:   callee,
	}

	for !p.at(CLOSING_PARENTHESIS) && !p.at(EOF_TOKEN) {
		call.Arguments = append(call.Arguments, p.parseCallArgument())
		if _, ok := p.eat(COMMA); !ok {
			break
		}
	}

	closing, _ := p.expect(CLOSING_PARENTHESIS, "')'")
	call.Span.End = closing.Span.End
	return call
}

func (p *parser) parseCallArgument() *CallArgument {
	//keyword argument: name=value
	if p.at(IDENTIFIER) && p.tokens[p.i+1].Type == EQUAL {
		nameTok := p.next()
		p.next() //'='
		value := p.parseExpression()
		return &CallArgument{
			NodeBase: NodeBase{Span: sourcecode.NodeSpan{Start: nameTok.Span.Start, End: value.Base().Span.End}},
			Name:     &IdentifierLiteral{NodeBase: NodeBase{Span: nameTok.Span}, Name: nameTok.Raw},
			Value:    value,
		}
	}

	value := p.parseExpression()
	return &CallArgument{
		NodeBase: NodeBase{Span: value.Base().Span},
		Value:    value,
	}
}

func (p *parser) parsePrimary() Node {
	tok := p.current()

	switch tok.Type {
	case INT_LITERAL:
		p.next()
		value, err := strconv.ParseInt(tok.Raw, 10, 64)
		node := &IntLiteral{NodeBase: NodeBase{Span: tok.Span}, Raw: tok.Raw, Value: value}
		if err != nil {
			node.Err = &sourcecode.ParsingError{Kind: sourcecode.UnspecifiedParsingError, Message: "invalid integer literal: " + tok.Raw}
			p.addError(node.Err.Kind, node.Err.Message, tok.Span)
		}
		return node
	case FLOAT_LITERAL:
		p.next()
		value, err := strconv.ParseFloat(tok.Raw, 64)
		node := &FloatLiteral{NodeBase: NodeBase{Span: tok.Span}, Raw: tok.Raw, Value: value}
		if err != nil {
			node.Err = &sourcecode.ParsingError{Kind: sourcecode.UnspecifiedParsingError, Message: "invalid float literal: " + tok.Raw}
			p.addError(node.Err.Kind, node.Err.Message, tok.Span)
		}
		return node
	case STRING_LITERAL:
		p.next()
		return &StringLiteral{NodeBase: NodeBase{Span: tok.Span}, Raw: tok.Raw, Value: decodeStringLiteral(tok.Raw)}
	case TRUE_LITERAL:
		p.next()
		return &BooleanLiteral{NodeBase: NodeBase{Span: tok.Span}, Value: true}
	case FALSE_LITERAL:
		p.next()
		return &BooleanLiteral{NodeBase: NodeBase{Span: tok.Span}, Value: false}
	case NA_LITERAL_TOKEN:
		p.next()
		return &NaLiteral{NodeBase: NodeBase{Span: tok.Span}}
	case IDENTIFIER:
		p.next()
		return &IdentifierLiteral{NodeBase: NodeBase{Span: tok.Span}, Name: tok.Raw}
	case OPENING_PARENTHESIS:
		p.next()
		expr := p.parseExpression()
		p.expect(CLOSING_PARENTHESIS, "')'")
		return expr
	}

	missing := &MissingExpression{
		NodeBase: NodeBase{
			Span: tok.Span,
			Err:  &sourcecode.ParsingError{Kind: sourcecode.MissingExpr, Message: "an expression was expected"},
		},
	}
	p.addError(sourcecode.MissingExpr, "an expression was expected", tok.Span)

	//consume the offending token unless it can close an enclosing construct
	switch tok.Type {
	case NEWLINE, DEDENT, EOF_TOKEN, CLOSING_PARENTHESIS, CLOSING_BRACKET, COLON, COMMA:
	default:
		p.next()
	}

	return missing
}

func makeBinary(op BinaryOperator, left, right Node) *BinaryExpression {
	return &BinaryExpression{
		NodeBase: NodeBase{
			Span: sourcecode.NodeSpan{Start: left.Base().Span.Start, End: right.Base().Span.End},
		},
		Operator: op,
		Left:     left,
		Right:    right,
	}
}

func decodeStringLiteral(raw string) string {
	if len(raw) < 2 {
		return ""
	}

	quote := raw[0]
	body := raw[1:]
	if body[len(body)-1] == quote {
		body = body[:len(body)-1]
	}

	var b strings.Builder
	escaped := false

	for _, r := range body {
		if escaped {
			switch r {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteRune(r)
			default:
				b.WriteByte('\\')
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
