package jsast

// The builtin per-bar value names: the canonical OHLCV fields, the derived
// composite price fields, the calendar components and the bar index. An
// identifier with one of these names always denotes a series.
var builtinSeriesNames = map[string]struct{}{
	"open":       {},
	"high":       {},
	"low":        {},
	"close":      {},
	"volume":     {},
	"time":       {},
	"hl2":        {},
	"hlc3":       {},
	"ohlc4":      {},
	"bar_index":  {},
	"year":       {},
	"month":      {},
	"dayofmonth": {},
	"dayofweek":  {},
	"hour":       {},
	"minute":     {},
	"second":     {},
}

const taNamespace = "ta"

// IsSeriesExpr determines whether an expression denotes a series value. The
// rules are applied in order and short-circuit on the first match:
//
//	(a) identifier with a builtin series name
//	(b) call on the technical-analysis namespace, or whose callee object is
//	    itself series-valued
//	(c) member access on a series-valued object
//	(d) binary/logical expression with a series-valued operand
//	(e) unary expression with a series-valued operand
//	(f) identifier bound to a declaration whose initializer is series-valued,
//	    resolved by one level of binding lookup
//
// The analysis never mutates anything: it only inspects nodes and performs
// read-only binding lookups.
func IsSeriesExpr(e Expr, scope BindingResolver) bool {
	return isSeries(e, scope, true)
}

func isSeries(e Expr, scope BindingResolver, resolveBindings bool) bool {
	switch n := e.(type) {
	case *Ident:
		if _, ok := builtinSeriesNames[n.Name]; ok {
			return true
		}
		if resolveBindings && scope != nil {
			if init, ok := scope.ResolveBinding(n.Name); ok {
				//recurse on the initializer with binding lookup disabled:
				//rule (f) resolves a single level
				return isSeries(init, scope, false)
			}
		}
		return false
	case *Call:
		callee, ok := n.Callee.(*Member)
		if !ok {
			return false
		}
		if object, ok := callee.Object.(*Ident); ok && object.Name == taNamespace {
			return true
		}
		return isSeries(callee.Object, scope, resolveBindings)
	case *Member:
		return isSeries(n.Object, scope, resolveBindings)
	case *Index:
		return isSeries(n.Object, scope, resolveBindings)
	case *Binary:
		return isSeries(n.Left, scope, resolveBindings) || isSeries(n.Right, scope, resolveBindings)
	case *Unary:
		return isSeries(n.Operand, scope, resolveBindings)
	}
	return false
}
