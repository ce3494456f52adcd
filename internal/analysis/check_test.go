package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinelang/pinec/internal/parse"
	"github.com/pinelang/pinec/internal/sourcecode"
)

func checkSource(t *testing.T, code string) *CheckResult {
	t.Helper()
	chunk, errs := parse.ParseChunk(code)
	assert.Empty(t, errs)
	return Check(CheckInput{
		Chunk: chunk,
		File:  sourcecode.NewFile("test.pine", code),
	})
}

func errorKinds(result *CheckResult) []ErrorKind {
	kinds := make([]ErrorKind, len(result.Errors))
	for i, err := range result.Errors {
		kinds[i] = err.Kind
	}
	return kinds
}

func warningKinds(result *CheckResult) []WarningKind {
	kinds := make([]WarningKind, len(result.Warnings))
	for i, warning := range result.Warnings {
		kinds[i] = warning.Kind
	}
	return kinds
}

func TestCheckCleanScripts(t *testing.T) {

	t.Run("constant history offset via binding", func(t *testing.T) {
		result := checkSource(t, "length = 9\nx = close[length]\n")
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("full indicator script", func(t *testing.T) {
		result := checkSource(t, `indicator("RSI", overlay=false)
length = input(14, "Length")
up = ta.rma(math.max(ta.change(close), 0), length)
down = ta.rma(-math.min(ta.change(close), 0), length)
rsi = 100 - 100 / (1 + up / down)
plot(rsi, "RSI", color.purple)
`)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("shadowing an outer binding is allowed", func(t *testing.T) {
		result := checkSource(t, "x = 1\nif close > open\n    x = 2.0\n    plot(x)\n")
		assert.Empty(t, result.Errors)
	})

	t.Run("function declaration and call", func(t *testing.T) {
		result := checkSource(t, "double(v) => v * 2\nplot(double(close))\n")
		assert.Empty(t, result.Errors)
	})

	t.Run("var binding reassignment", func(t *testing.T) {
		result := checkSource(t, "var total = 0.0\ntotal := total + close[0]\n")
		assert.Empty(t, result.Errors)
	})
}

func TestCheckErrors(t *testing.T) {

	t.Run("undefined variable", func(t *testing.T) {
		result := checkSource(t, "x = unknownSeries + 1\n")
		assert.Contains(t, errorKinds(result), UndefinedVariable)
	})

	t.Run("undefined function", func(t *testing.T) {
		result := checkSource(t, "x = mystery(close)\n")
		assert.Contains(t, errorKinds(result), UndefinedFunction)
	})

	t.Run("undefined namespace", func(t *testing.T) {
		result := checkSource(t, "x = talib.sma(close, 14)\n")
		assert.Contains(t, errorKinds(result), UndefinedVariable)
	})

	t.Run("assignment to an undeclared variable", func(t *testing.T) {
		result := checkSource(t, "x := 1\n")
		assert.Contains(t, errorKinds(result), InvalidAssignment)
	})

	t.Run("assignment to a builtin", func(t *testing.T) {
		result := checkSource(t, "close := 1\n")
		assert.Contains(t, errorKinds(result), InvalidAssignment)
	})

	t.Run("reassignment of a constant binding", func(t *testing.T) {
		result := checkSource(t, "x = 1\nx := 2\n")
		assert.Contains(t, errorKinds(result), ConstReassignment)
	})

	t.Run("assignment type mismatch", func(t *testing.T) {
		result := checkSource(t, "var s = \"text\"\ns := 1\n")
		assert.Contains(t, errorKinds(result), TypeMismatch)
	})

	t.Run("history access on a scalar", func(t *testing.T) {
		result := checkSource(t, "x = 1\ny = x[1]\nplot(y)\n")
		assert.Contains(t, errorKinds(result), InvalidHistoryAccess)
	})

	t.Run("non-integer history offset", func(t *testing.T) {
		result := checkSource(t, "x = close[\"two\"]\n")
		assert.Contains(t, errorKinds(result), TypeMismatch)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		result := checkSource(t, "x = nz(close, 0, 1)\n")
		assert.Contains(t, errorKinds(result), WrongArgumentCount)
	})

	t.Run("wrong argument count of a user function", func(t *testing.T) {
		result := checkSource(t, "double(v) => v * 2\nx = double(close, 1)\nplot(x)\n")
		assert.Contains(t, errorKinds(result), WrongArgumentCount)
	})

	t.Run("wrong argument type", func(t *testing.T) {
		result := checkSource(t, "indicator(42)\n")
		assert.Contains(t, errorKinds(result), WrongArgumentType)
	})

	t.Run("series default value of input", func(t *testing.T) {
		result := checkSource(t, "x = input(close)\n")
		assert.Contains(t, errorKinds(result), WrongArgumentType)
	})

	t.Run("break outside a loop", func(t *testing.T) {
		result := checkSource(t, "break\n")
		assert.Contains(t, errorKinds(result), BreakOutsideLoop)
	})

	t.Run("continue outside a loop", func(t *testing.T) {
		result := checkSource(t, "if close > open\n    continue\n")
		assert.Contains(t, errorKinds(result), ContinueOutsideLoop)
	})

	t.Run("break inside a loop is fine", func(t *testing.T) {
		result := checkSource(t, "for i = 0 to 9\n    break\n")
		assert.Empty(t, result.Errors)
	})

	t.Run("duplicate declaration in the same scope", func(t *testing.T) {
		result := checkSource(t, "x = 1\nx = 2\n")
		assert.Contains(t, errorKinds(result), DuplicateDeclaration)
	})

	t.Run("arithmetic on a string", func(t *testing.T) {
		result := checkSource(t, "x = \"a\" + 1\n")
		assert.Contains(t, errorKinds(result), InvalidOperator)
	})

	t.Run("logical operator on numbers", func(t *testing.T) {
		result := checkSource(t, "x = 1 and 2\n")
		assert.Contains(t, errorKinds(result), InvalidOperator)
	})

	t.Run("unary minus on a string", func(t *testing.T) {
		result := checkSource(t, "x = -\"a\"\n")
		assert.Contains(t, errorKinds(result), InvalidOperator)
	})

	t.Run("non-boolean condition", func(t *testing.T) {
		result := checkSource(t, "if close\n    x = 1\n")
		assert.Contains(t, errorKinds(result), TypeMismatch)
	})

	t.Run("diagnostics are collected, not thrown", func(t *testing.T) {
		result := checkSource(t, "a := 1\nbreak\nx = mystery(unknown)\n")
		assert.GreaterOrEqual(t, len(result.Errors), 3)
	})

	t.Run("errors carry position and context", func(t *testing.T) {
		result := checkSource(t, "x = 1\ny = missing\n")
		if assert.Len(t, result.Errors, 1) {
			err := result.Errors[0]
			assert.EqualValues(t, 2, err.Line)
			assert.EqualValues(t, 5, err.Column)
			assert.Equal(t, "y = missing", err.Context)
		}
	})
}

func TestCheckWarnings(t *testing.T) {

	t.Run("unused local variable", func(t *testing.T) {
		result := checkSource(t, "f(a) =>\n    temp = a * 2\n    a + 1\nplot(f(close))\n")
		assert.Empty(t, result.Errors)
		assert.Contains(t, warningKinds(result), UnusedVariable)
	})

	t.Run("unused global binding is not reported", func(t *testing.T) {
		result := checkSource(t, "x = close + 1\n")
		assert.Empty(t, result.Warnings)
	})

	t.Run("na comparison", func(t *testing.T) {
		result := checkSource(t, "x = close == na\n")
		assert.Contains(t, warningKinds(result), NaComparison)
	})

	t.Run("warnings never block", func(t *testing.T) {
		result := checkSource(t, "x = close == na\n")
		assert.False(t, result.HasErrors())
	})
}
