package types

import (
	"github.com/pinelang/pinec/internal/parse"
)

// A Resolver gives Infer read-only access to the types of named bindings.
// *symbols.Table implements it.
type Resolver interface {
	ResolveType(name string) (Type, bool)
}

// Infer assigns a type to an expression node. It never mutates the AST or
// the resolver and is total over any input tree. Unresolvable constructs
// degrade to unknown, they never fail. Callers may cache results.
func Infer(node parse.Node, r Resolver) Type {
	switch n := node.(type) {
	case *parse.IntLiteral:
		return IntType
	case *parse.FloatLiteral:
		return FloatType
	case *parse.StringLiteral:
		return StringType
	case *parse.BooleanLiteral:
		return BoolType
	case *parse.NaLiteral:
		return NaType
	case *parse.IdentifierLiteral:
		if t, ok := r.ResolveType(n.Name); ok {
			return t
		}
		return UnknownType
	case *parse.MemberExpression:
		return inferMember(n)
	case *parse.CallExpression:
		return inferCall(n, r)
	case *parse.BinaryExpression:
		return inferBinary(n, r)
	case *parse.UnaryExpression:
		return inferUnary(n, r)
	case *parse.TernaryExpression:
		return inferTernary(n, r)
	case *parse.HistoryExpression:
		return Infer(n.Target, r).Elem()
	}
	return UnknownType
}

func inferMember(n *parse.MemberExpression) Type {
	//color constants are translated to string literals
	if object, ok := n.Object.(*parse.IdentifierLiteral); ok {
		switch object.Name {
		case "color":
			return StringType
		case "barstate":
			return BoolType
		}
	}
	return UnknownType
}

// inferCall returns the return type of the callee if it is known, and
// series<float> otherwise: most builtin and user functions yield a per-bar
// series, making it the dominant case in this domain.
func inferCall(n *parse.CallExpression, r Resolver) Type {
	//na parses as a literal, a call on it is the na() test function
	if _, ok := n.Callee.(*parse.NaLiteral); ok {
		return BoolType
	}
	if callee, ok := n.Callee.(*parse.IdentifierLiteral); ok {
		if t, ok := r.ResolveType(callee.Name); ok && t.IsFunction() {
			if sig := t.Signature(); sig != nil && !sig.Result.IsUnknown() {
				return sig.Result
			}
		}
	}
	return SeriesOf(FloatKind)
}

func inferBinary(n *parse.BinaryExpression, r Resolver) Type {
	left := Infer(n.Left, r)
	right := Infer(n.Right, r)
	isSeries := left.IsSeries() || right.IsSeries()

	if n.Operator.IsComparison() || n.Operator.IsLogical() {
		if isSeries {
			return SeriesOf(BoolKind)
		}
		return BoolType
	}

	elem := PromoteScalar(left.ElemKind(), right.ElemKind())
	if isSeries {
		return SeriesOf(elem)
	}
	return Type{kind: elem}
}

func inferUnary(n *parse.UnaryExpression, r Resolver) Type {
	operand := Infer(n.Operand, r)

	if n.Operator == parse.BoolNegate {
		if operand.IsSeries() {
			return SeriesOf(BoolKind)
		}
		return BoolType
	}

	//unary minus preserves the operand type
	return operand
}

func inferTernary(n *parse.TernaryExpression, r Resolver) Type {
	consequent := Infer(n.Consequent, r)
	alternate := Infer(n.Alternate, r)

	if consequent.IsSeries() || alternate.IsSeries() {
		//na branches absorb the element type of the other branch
		return SeriesOf(PromoteScalar(consequent.ElemKind(), alternate.ElemKind()))
	}
	return consequent
}
