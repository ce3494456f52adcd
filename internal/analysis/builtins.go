package analysis

import (
	"github.com/pinelang/pinec/internal/symbols"
	"github.com/pinelang/pinec/internal/types"
)

// The builtin vocabulary of the runtime consumed by the compiler: per-bar
// value series, the metadata/input/plot declarations and the runtime
// namespaces. The numerical semantics live in the runtime, not here.
var (
	builtinFloatSeries = []string{
		"open", "high", "low", "close", "volume",
		"hl2", "hlc3", "ohlc4",
	}

	builtinIntSeries = []string{
		"time", "bar_index",
		"year", "month", "dayofmonth", "dayofweek", "hour", "minute", "second",
	}

	builtinNamespaces = []string{
		"ta", "core", "math", "array",
		"color", "barstate", "syminfo", "timeframe",
	}
)

type builtinFunction struct {
	name        string
	minArgCount int
	maxArgCount int //-1: unbounded
	result      types.Type
}

var builtinFunctions = []builtinFunction{
	{name: "indicator", minArgCount: 1, maxArgCount: 3, result: types.NaType},
	{name: "study", minArgCount: 1, maxArgCount: 3, result: types.NaType},
	{name: "input", minArgCount: 1, maxArgCount: 4, result: types.UnknownType},
	{name: "plot", minArgCount: 1, maxArgCount: 4, result: types.NaType},
	{name: "hline", minArgCount: 1, maxArgCount: 3, result: types.NaType},
	{name: "plotshape", minArgCount: 1, maxArgCount: -1, result: types.NaType},
	{name: "nz", minArgCount: 1, maxArgCount: 2, result: types.SeriesOf(types.FloatKind)},
	{name: "na", minArgCount: 1, maxArgCount: 1, result: types.BoolType},
}

// DeclareBuiltins fills the global scope of the table with the runtime
// vocabulary.
func DeclareBuiltins(table *symbols.Table) {
	for _, name := range builtinFloatSeries {
		table.Declare(&symbols.Symbol{
			Name:      name,
			Kind:      symbols.VariableSymbol,
			Type:      types.SeriesOf(types.FloatKind),
			IsConst:   true,
			IsSeries:  true,
			IsBuiltin: true,
		})
	}

	for _, name := range builtinIntSeries {
		table.Declare(&symbols.Symbol{
			Name:      name,
			Kind:      symbols.VariableSymbol,
			Type:      types.SeriesOf(types.IntKind),
			IsConst:   true,
			IsSeries:  true,
			IsBuiltin: true,
		})
	}

	for _, name := range builtinNamespaces {
		table.Declare(&symbols.Symbol{
			Name:      name,
			Kind:      symbols.TypeSymbol,
			Type:      types.UnknownType,
			IsConst:   true,
			IsBuiltin: true,
		})
	}

	//this resolves to the current evaluation context in the target
	table.Declare(&symbols.Symbol{
		Name:      "this",
		Kind:      symbols.VariableSymbol,
		Type:      types.UnknownType,
		IsConst:   true,
		IsBuiltin: true,
	})

	for _, fn := range builtinFunctions {
		table.Declare(&symbols.Symbol{
			Name: fn.name,
			Kind: symbols.FunctionSymbol,
			Type: types.FunctionType(&types.FuncSignature{
				Result:      fn.result,
				MinArgCount: fn.minArgCount,
				MaxArgCount: fn.maxArgCount,
			}),
			IsConst:   true,
			IsBuiltin: true,
		})
	}
}
