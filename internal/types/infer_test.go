package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinelang/pinec/internal/parse"
)

type mapResolver map[string]Type

func (r mapResolver) ResolveType(name string) (Type, bool) {
	t, ok := r[name]
	return t, ok
}

func exprOf(t *testing.T, code string) parse.Node {
	t.Helper()
	chunk, errs := parse.ParseChunk("x = " + code)
	assert.Empty(t, errs)
	return chunk.Statements[0].(*parse.VariableDeclaration).Right
}

func TestPromoteScalar(t *testing.T) {
	assert.Equal(t, IntKind, PromoteScalar(IntKind, IntKind))
	assert.Equal(t, FloatKind, PromoteScalar(IntKind, FloatKind))
	assert.Equal(t, FloatKind, PromoteScalar(FloatKind, IntKind))
	assert.Equal(t, FloatKind, PromoteScalar(NaKind, FloatKind))
	assert.Equal(t, IntKind, PromoteScalar(IntKind, NaKind))
	assert.Equal(t, BoolKind, PromoteScalar(BoolKind, BoolKind))
	assert.Equal(t, UnknownKind, PromoteScalar(BoolKind, StringKind))
}

func TestSeriesOfNeverNests(t *testing.T) {
	nested := SeriesOf(SeriesKind)
	assert.True(t, nested.IsSeries())
	assert.Equal(t, UnknownKind, nested.ElemKind())
}

func TestInferLiterals(t *testing.T) {
	resolver := mapResolver{}

	assert.Equal(t, IntType, Infer(exprOf(t, "14"), resolver))
	assert.Equal(t, FloatType, Infer(exprOf(t, "2.5"), resolver))
	assert.Equal(t, StringType, Infer(exprOf(t, `"s"`), resolver))
	assert.Equal(t, BoolType, Infer(exprOf(t, "true"), resolver))
	assert.Equal(t, NaType, Infer(exprOf(t, "na"), resolver))
}

func TestInferIdentifiers(t *testing.T) {
	resolver := mapResolver{
		"close":  SeriesOf(FloatKind),
		"length": IntType,
	}

	t.Run("resolved binding", func(t *testing.T) {
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "close"), resolver))
		assert.Equal(t, IntType, Infer(exprOf(t, "length"), resolver))
	})

	t.Run("unresolved binding degrades to unknown", func(t *testing.T) {
		assert.Equal(t, UnknownType, Infer(exprOf(t, "mystery"), resolver))
	})
}

func TestInferBinary(t *testing.T) {
	resolver := mapResolver{
		"close": SeriesOf(FloatKind),
		"open":  SeriesOf(FloatKind),
		"n":     IntType,
	}

	t.Run("series-ness is contagious", func(t *testing.T) {
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "close + 1"), resolver))
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "1 + close"), resolver))
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "close - open"), resolver))
	})

	t.Run("scalar arithmetic stays scalar", func(t *testing.T) {
		assert.Equal(t, IntType, Infer(exprOf(t, "n + 1"), resolver))
		assert.Equal(t, FloatType, Infer(exprOf(t, "n + 1.5"), resolver))
	})

	t.Run("comparison of series yields a bool series", func(t *testing.T) {
		assert.Equal(t, SeriesOf(BoolKind), Infer(exprOf(t, "close > open"), resolver))
		assert.Equal(t, BoolType, Infer(exprOf(t, "n > 1"), resolver))
	})

	t.Run("logical operators", func(t *testing.T) {
		assert.Equal(t, SeriesOf(BoolKind), Infer(exprOf(t, "close > open and close > 1"), resolver))
		assert.Equal(t, BoolType, Infer(exprOf(t, "true or false"), resolver))
	})

	t.Run("na absorbs the other element kind", func(t *testing.T) {
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "close + na"), resolver))
	})
}

func TestInferUnaryAndTernary(t *testing.T) {
	resolver := mapResolver{
		"close": SeriesOf(FloatKind),
		"cond":  BoolType,
	}

	t.Run("negation preserves the operand type", func(t *testing.T) {
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "-close"), resolver))
		assert.Equal(t, IntType, Infer(exprOf(t, "-1"), resolver))
	})

	t.Run("not yields bool", func(t *testing.T) {
		assert.Equal(t, BoolType, Infer(exprOf(t, "not cond"), resolver))
		assert.Equal(t, SeriesOf(BoolKind), Infer(exprOf(t, "not (close > 1)"), resolver))
	})

	t.Run("ternary with a series branch is a series", func(t *testing.T) {
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "cond ? close : 0"), resolver))
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "cond ? na : close"), resolver))
	})

	t.Run("scalar ternary keeps the then-branch type", func(t *testing.T) {
		assert.Equal(t, IntType, Infer(exprOf(t, "cond ? 1 : 2"), resolver))
	})
}

func TestInferCallsAndHistory(t *testing.T) {
	resolver := mapResolver{
		"close": SeriesOf(FloatKind),
		"crossed": FunctionType(&FuncSignature{
			Result:      BoolType,
			MinArgCount: 2,
			MaxArgCount: 2,
		}),
	}

	t.Run("unknown calls default to a float series", func(t *testing.T) {
		assert.Equal(t, SeriesOf(FloatKind), Infer(exprOf(t, "ta.sma(close, 14)"), resolver))
	})

	t.Run("known signature result wins", func(t *testing.T) {
		assert.Equal(t, BoolType, Infer(exprOf(t, "crossed(close, open)"), resolver))
	})

	t.Run("na test call yields bool", func(t *testing.T) {
		assert.Equal(t, BoolType, Infer(exprOf(t, "na(close)"), resolver))
	})

	t.Run("history access strips one series level", func(t *testing.T) {
		assert.Equal(t, FloatType, Infer(exprOf(t, "close[1]"), resolver))
		assert.Equal(t, UnknownType, Infer(exprOf(t, "1[1]"), resolver))
	})

	t.Run("member namespaces", func(t *testing.T) {
		assert.Equal(t, StringType, Infer(exprOf(t, "color.red"), resolver))
		assert.Equal(t, BoolType, Infer(exprOf(t, "barstate.islast"), resolver))
	})
}
