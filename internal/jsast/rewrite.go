package jsast

// The fixed operator -> series method table.
var binaryMethods = map[string]string{
	"+":   "add",
	"-":   "sub",
	"*":   "mul",
	"/":   "div",
	"%":   "mod",
	">":   "gt",
	"<":   "lt",
	">=":  "gte",
	"<=":  "lte",
	"==":  "eq",
	"===": "eq",
	"!=":  "neq",
	"!==": "neq",
	"&&":  "and",
	"||":  "or",
}

var unaryMethods = map[string]string{
	"-": "neg",
	"!": "not",
}

// RewriteExpr rewrites, bottom-up, every operator node with at least one
// series-valued operand into a method call on the series: a OP b becomes
// a.method(b), computed indexing a[b] becomes a.offset(b). Dot-notation
// member access is never rewritten and nodes with no series-valued operand
// are left untouched, preserving ordinary scalar arithmetic. A node is always
// replaced through its parent's child slot, the tree stays acyclic.
func RewriteExpr(e Expr, scope BindingResolver) Expr {
	switch n := e.(type) {
	case *Binary:
		n.Left = RewriteExpr(n.Left, scope)
		n.Right = RewriteExpr(n.Right, scope)

		if IsSeriesExpr(n.Left, scope) || IsSeriesExpr(n.Right, scope) {
			return &Call{
				Callee: &Member{Object: n.Left, Property: binaryMethods[n.Op]},
				Args:   []Expr{n.Right},
			}
		}
		return n
	case *Unary:
		n.Operand = RewriteExpr(n.Operand, scope)

		if IsSeriesExpr(n.Operand, scope) {
			return &Call{
				Callee: &Member{Object: n.Operand, Property: unaryMethods[n.Op]},
			}
		}
		return n
	case *Index:
		n.Object = RewriteExpr(n.Object, scope)
		n.Key = RewriteExpr(n.Key, scope)

		if IsSeriesExpr(n.Object, scope) {
			return &Call{
				Callee: &Member{Object: n.Object, Property: "offset"},
				Args:   []Expr{n.Key},
			}
		}
		return n
	case *Call:
		n.Callee = RewriteExpr(n.Callee, scope)
		for i, arg := range n.Args {
			n.Args[i] = RewriteExpr(arg, scope)
		}
		return n
	case *Member:
		n.Object = RewriteExpr(n.Object, scope)
		return n
	case *Cond:
		n.Test = RewriteExpr(n.Test, scope)
		n.Consequent = RewriteExpr(n.Consequent, scope)
		n.Alternate = RewriteExpr(n.Alternate, scope)
		return n
	case *Arrow:
		inner, _ := scope.(*Scope)
		fnScope := NewScope(inner)
		for _, param := range n.Params {
			fnScope.Bind(param, nil) //parameters are scalars unless proven otherwise
		}
		if n.Expr != nil {
			n.Expr = RewriteExpr(n.Expr, fnScope)
		}
		RewriteStmts(n.Body, fnScope)
		return n
	}
	return e
}

// RewriteStmts rewrites the expressions of a statement list in place,
// extending the scope with the declarations it encounters so rule (f) sees
// them.
func RewriteStmts(stmts []Stmt, scope *Scope) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ConstDecl:
			n.Value = RewriteExpr(n.Value, scope)
			scope.Bind(n.Name, n.Value)
		case *LetDecl:
			n.Value = RewriteExpr(n.Value, scope)
			scope.Bind(n.Name, n.Value)
		case *Assign:
			n.Target = RewriteExpr(n.Target, scope)
			n.Value = RewriteExpr(n.Value, scope)
			if target, ok := n.Target.(*Ident); ok {
				scope.Bind(target.Name, n.Value)
			}
		case *ExprStmt:
			n.X = RewriteExpr(n.X, scope)
		case *If:
			n.Test = RewriteExpr(n.Test, scope)
			RewriteStmts(n.Then, NewScope(scope))
			RewriteStmts(n.Else, NewScope(scope))
		case *For:
			n.From = RewriteExpr(n.From, scope)
			n.To = RewriteExpr(n.To, scope)
			bodyScope := NewScope(scope)
			bodyScope.Bind(n.Counter, nil)
			RewriteStmts(n.Body, bodyScope)
		case *Return:
			if n.X != nil {
				n.X = RewriteExpr(n.X, scope)
			}
		}
	}
}
