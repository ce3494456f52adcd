package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustParseChunk(t *testing.T, code string) *Chunk {
	t.Helper()
	chunk, errs := ParseChunk(code)
	assert.Empty(t, errs)
	return chunk
}

func TestParseDeclarations(t *testing.T) {

	t.Run("constant binding", func(t *testing.T) {
		chunk := mustParseChunk(t, "length = 14")

		if assert.Len(t, chunk.Statements, 1) {
			decl := chunk.Statements[0].(*VariableDeclaration)
			assert.Equal(t, "length", decl.Name.Name)
			assert.False(t, decl.Reassignable)

			lit := decl.Right.(*IntLiteral)
			assert.EqualValues(t, 14, lit.Value)
			assert.Equal(t, "14", lit.Raw)
		}
	})

	t.Run("var binding is reassignable", func(t *testing.T) {
		chunk := mustParseChunk(t, "var total = 0.0")

		decl := chunk.Statements[0].(*VariableDeclaration)
		assert.Equal(t, "total", decl.Name.Name)
		assert.True(t, decl.Reassignable)
		assert.IsType(t, &FloatLiteral{}, decl.Right)
	})

	t.Run("reassignment statement", func(t *testing.T) {
		chunk := mustParseChunk(t, "var x = 1\nx := 2")

		if assert.Len(t, chunk.Statements, 2) {
			assign := chunk.Statements[1].(*AssignmentStatement)
			assert.Equal(t, "x", assign.Name.Name)
		}
	})

	t.Run("node spans nest inside their parent", func(t *testing.T) {
		chunk := mustParseChunk(t, "length = 14")

		decl := chunk.Statements[0].(*VariableDeclaration)
		assert.True(t, decl.Base().IncludedIn(chunk))
		assert.True(t, decl.Name.Base().IncludedIn(decl))
		assert.True(t, decl.Right.Base().IncludedIn(decl))
		assert.False(t, decl.Right.Base().IncludedIn(decl.Name))
	})

	t.Run("string and boolean literals", func(t *testing.T) {
		chunk := mustParseChunk(t, "s = \"a\\nb\"\nb = true")

		s := chunk.Statements[0].(*VariableDeclaration).Right.(*StringLiteral)
		assert.Equal(t, "a\nb", s.Value)

		b := chunk.Statements[1].(*VariableDeclaration).Right.(*BooleanLiteral)
		assert.True(t, b.Value)
	})

	t.Run("na literal", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = na")
		assert.IsType(t, &NaLiteral{}, chunk.Statements[0].(*VariableDeclaration).Right)
	})
}

func TestParseExpressions(t *testing.T) {

	t.Run("multiplication binds tighter than addition", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = 1 + 2 * 3")

		add := chunk.Statements[0].(*VariableDeclaration).Right.(*BinaryExpression)
		assert.Equal(t, Add, add.Operator)
		assert.IsType(t, &IntLiteral{}, add.Left)

		mul := add.Right.(*BinaryExpression)
		assert.Equal(t, Mul, mul.Operator)
	})

	t.Run("comparison binds tighter than and", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = a > b and c < d")

		and := chunk.Statements[0].(*VariableDeclaration).Right.(*BinaryExpression)
		assert.Equal(t, And, and.Operator)
		assert.Equal(t, GreaterThan, and.Left.(*BinaryExpression).Operator)
		assert.Equal(t, LessThan, and.Right.(*BinaryExpression).Operator)
	})

	t.Run("and binds tighter than or", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = a or b and c")

		or := chunk.Statements[0].(*VariableDeclaration).Right.(*BinaryExpression)
		assert.Equal(t, Or, or.Operator)
		assert.Equal(t, And, or.Right.(*BinaryExpression).Operator)
	})

	t.Run("additive operators are left associative", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = a - b - c")

		outer := chunk.Statements[0].(*VariableDeclaration).Right.(*BinaryExpression)
		assert.Equal(t, Sub, outer.Operator)
		assert.Equal(t, Sub, outer.Left.(*BinaryExpression).Operator)
		assert.Equal(t, "c", outer.Right.(*IdentifierLiteral).Name)
	})

	t.Run("parentheses override precedence", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = (1 + 2) * 3")

		mul := chunk.Statements[0].(*VariableDeclaration).Right.(*BinaryExpression)
		assert.Equal(t, Mul, mul.Operator)
		assert.Equal(t, Add, mul.Left.(*BinaryExpression).Operator)
	})

	t.Run("ternary is right associative", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = a ? b : c ? d : e")

		outer := chunk.Statements[0].(*VariableDeclaration).Right.(*TernaryExpression)
		assert.IsType(t, &IdentifierLiteral{}, outer.Consequent)
		assert.IsType(t, &TernaryExpression{}, outer.Alternate)
	})

	t.Run("unary operators", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = -a + not b")

		add := chunk.Statements[0].(*VariableDeclaration).Right.(*BinaryExpression)
		assert.Equal(t, NumberNegate, add.Left.(*UnaryExpression).Operator)
		assert.Equal(t, BoolNegate, add.Right.(*UnaryExpression).Operator)
	})

	t.Run("member access chain", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = ta.sma(close, 14)")

		call := chunk.Statements[0].(*VariableDeclaration).Right.(*CallExpression)
		member := call.Callee.(*MemberExpression)
		assert.Equal(t, "ta", member.Object.(*IdentifierLiteral).Name)
		assert.Equal(t, "sma", member.Property.Name)
		assert.Len(t, call.Arguments, 2)
	})

	t.Run("history access", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = close[1]")

		history := chunk.Statements[0].(*VariableDeclaration).Right.(*HistoryExpression)
		assert.Equal(t, "close", history.Target.(*IdentifierLiteral).Name)
		assert.EqualValues(t, 1, history.Offset.(*IntLiteral).Value)
	})

	t.Run("keyword call arguments", func(t *testing.T) {
		chunk := mustParseChunk(t, `indicator("RSI", overlay=false)`)

		call := chunk.Statements[0].(*CallExpression)
		if assert.Len(t, call.Arguments, 2) {
			assert.Nil(t, call.Arguments[0].Name)
			assert.Equal(t, "overlay", call.Arguments[1].Name.Name)
			assert.False(t, call.Arguments[1].Value.(*BooleanLiteral).Value)
		}
	})

	t.Run("multi-line call", func(t *testing.T) {
		chunk := mustParseChunk(t, "x = ta.sma(\n    close,\n    14)")

		call := chunk.Statements[0].(*VariableDeclaration).Right.(*CallExpression)
		assert.Len(t, call.Arguments, 2)
	})
}

func TestParseStatements(t *testing.T) {

	t.Run("if with else", func(t *testing.T) {
		chunk := mustParseChunk(t, "if x > 0\n    y = 1\nelse\n    y = 2\n")

		stmt := chunk.Statements[0].(*IfStatement)
		assert.Len(t, stmt.Consequent.Statements, 1)

		alternate := stmt.Alternate.(*Block)
		assert.Len(t, alternate.Statements, 1)
	})

	t.Run("else if chain", func(t *testing.T) {
		chunk := mustParseChunk(t, "if a\n    x = 1\nelse if b\n    x = 2\nelse\n    x = 3\n")

		stmt := chunk.Statements[0].(*IfStatement)
		nested := stmt.Alternate.(*IfStatement)
		assert.IsType(t, &Block{}, nested.Alternate)
	})

	t.Run("for loop with break and continue", func(t *testing.T) {
		chunk := mustParseChunk(t, "for i = 0 to 9\n    if i > 4\n        break\n    continue\n")

		loop := chunk.Statements[0].(*ForStatement)
		assert.Equal(t, "i", loop.Counter.Name)
		assert.EqualValues(t, 0, loop.From.(*IntLiteral).Value)
		assert.EqualValues(t, 9, loop.To.(*IntLiteral).Value)

		if assert.Len(t, loop.Body.Statements, 2) {
			nested := loop.Body.Statements[0].(*IfStatement)
			assert.IsType(t, &BreakStatement{}, nested.Consequent.Statements[0])
			assert.IsType(t, &ContinueStatement{}, loop.Body.Statements[1])
		}
	})

	t.Run("single-expression function declaration", func(t *testing.T) {
		chunk := mustParseChunk(t, "double(x) => x * 2")

		fn := chunk.Statements[0].(*FunctionDeclaration)
		assert.Equal(t, "double", fn.Name.Name)
		if assert.Len(t, fn.Parameters, 1) {
			assert.Equal(t, "x", fn.Parameters[0].Name.Name)
		}
		assert.Len(t, fn.Body.Statements, 1)
	})

	t.Run("block-bodied function declaration", func(t *testing.T) {
		chunk := mustParseChunk(t, "f(a, b) =>\n    s = a + b\n    s * 2\n")

		fn := chunk.Statements[0].(*FunctionDeclaration)
		assert.Len(t, fn.Parameters, 2)
		assert.Len(t, fn.Body.Statements, 2)
	})

	t.Run("call statement is not a function declaration", func(t *testing.T) {
		chunk := mustParseChunk(t, "plot(close)")
		assert.IsType(t, &CallExpression{}, chunk.Statements[0])
	})
}

func TestParseErrorRecovery(t *testing.T) {

	t.Run("missing right-hand side", func(t *testing.T) {
		chunk, errs := ParseChunk("x =\ny = 2\n")
		assert.NotEmpty(t, errs)

		if assert.Len(t, chunk.Statements, 2) {
			decl := chunk.Statements[0].(*VariableDeclaration)
			assert.IsType(t, &MissingExpression{}, decl.Right)

			//the statement after the broken one is still parsed
			assert.Equal(t, "y", chunk.Statements[1].(*VariableDeclaration).Name.Name)
		}
	})

	t.Run("missing block after if", func(t *testing.T) {
		chunk, errs := ParseChunk("if x > 0\ny = 1\n")

		found := false
		for _, err := range errs {
			if err.Err.Kind == "missing-block" {
				found = true
			}
		}
		assert.True(t, found)
		assert.Len(t, chunk.Statements, 2)
	})

	t.Run("unclosed call still yields a call node", func(t *testing.T) {
		chunk, errs := ParseChunk("x = f(1, 2")
		assert.NotEmpty(t, errs)

		decl := chunk.Statements[0].(*VariableDeclaration)
		call := decl.Right.(*CallExpression)
		assert.Len(t, call.Arguments, 2)
	})

	t.Run("node errors are collectable from the tree", func(t *testing.T) {
		chunk, _ := ParseChunk("x = * 2\n")
		assert.NotEmpty(t, CollectErrors(chunk))
	})

	t.Run("garbage input never panics and keeps the chunk", func(t *testing.T) {
		chunk, errs := ParseChunk(") : , to else\n")
		assert.NotNil(t, chunk)
		assert.NotEmpty(t, errs)
	})
}
