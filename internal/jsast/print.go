package jsast

import (
	"strconv"
	"strings"
)

// Operator precedence levels used to decide parenthesization.
const (
	precCond    = 1
	precOr      = 2
	precAnd     = 3
	precEq      = 4
	precCompare = 5
	precAdd     = 6
	precMul     = 7
	precUnary   = 8
	precPostfix = 9
	precPrimary = 10
)

func binaryPrec(op string) int {
	switch op {
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "===", "!==", "==", "!=":
		return precEq
	case ">", "<", ">=", "<=":
		return precCompare
	case "+", "-":
		return precAdd
	case "*", "/", "%":
		return precMul
	}
	return precPrimary
}

func exprPrec(e Expr) int {
	switch n := e.(type) {
	case *Cond:
		return precCond
	case *Binary:
		return binaryPrec(n.Op)
	case *Unary:
		return precUnary
	case *Member, *Index, *Call:
		return precPostfix
	case *Arrow:
		return precCond
	}
	return precPrimary
}

// PrintExpr renders an expression as JavaScript source.
func PrintExpr(e Expr) string {
	var b strings.Builder
	printExpr(&b, e, 0, 0)
	return b.String()
}

func printExpr(b *strings.Builder, e Expr, parentPrec int, indent int) {
	if exprPrec(e) < parentPrec {
		b.WriteByte('(')
		printExpr(b, e, 0, indent)
		b.WriteByte(')')
		return
	}

	switch n := e.(type) {
	case *Ident:
		b.WriteString(n.Name)
	case *NumberLit:
		b.WriteString(n.Raw)
	case *StringLit:
		b.WriteString(strconv.Quote(n.Value))
	case *BoolLit:
		if n.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *Member:
		//a number-literal receiver needs parens: 1.add is a syntax error
		if _, isNumber := n.Object.(*NumberLit); isNumber {
			b.WriteByte('(')
			printExpr(b, n.Object, 0, indent)
			b.WriteByte(')')
		} else {
			printExpr(b, n.Object, precPostfix, indent)
		}
		b.WriteByte('.')
		b.WriteString(n.Property)
	case *Index:
		printExpr(b, n.Object, precPostfix, indent)
		b.WriteByte('[')
		printExpr(b, n.Key, 0, indent)
		b.WriteByte(']')
	case *Call:
		printExpr(b, n.Callee, precPostfix, indent)
		b.WriteByte('(')
		for i, arg := range n.Args {
			if i != 0 {
				b.WriteString(", ")
			}
			printExpr(b, arg, 0, indent)
		}
		b.WriteByte(')')
	case *Binary:
		prec := binaryPrec(n.Op)
		printExpr(b, n.Left, prec, indent)
		b.WriteByte(' ')
		b.WriteString(n.Op)
		b.WriteByte(' ')
		printExpr(b, n.Right, prec+1, indent)
	case *Unary:
		b.WriteString(n.Op)
		printExpr(b, n.Operand, precUnary, indent)
	case *Cond:
		printExpr(b, n.Test, precOr, indent)
		b.WriteString(" ? ")
		printExpr(b, n.Consequent, precCond, indent)
		b.WriteString(" : ")
		printExpr(b, n.Alternate, precCond, indent)
	case *Arrow:
		b.WriteByte('(')
		for i, param := range n.Params {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(param)
		}
		b.WriteString(") => ")
		if n.Expr != nil {
			printExpr(b, n.Expr, precCond, indent)
			return
		}
		b.WriteString("{\n")
		printStmts(b, n.Body, indent+1)
		writeIndent(b, indent)
		b.WriteByte('}')
	}
}

// PrintStmts renders a statement list as JavaScript source at the given
// indentation depth.
func PrintStmts(stmts []Stmt, indent int) string {
	var b strings.Builder
	printStmts(&b, stmts, indent)
	return b.String()
}

const indentUnit = "  "

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}

func printStmts(b *strings.Builder, stmts []Stmt, indent int) {
	for _, stmt := range stmts {
		printStmt(b, stmt, indent)
	}
}

func printStmt(b *strings.Builder, stmt Stmt, indent int) {
	writeIndent(b, indent)

	switch n := stmt.(type) {
	case *ConstDecl:
		b.WriteString("const ")
		b.WriteString(n.Name)
		b.WriteString(" = ")
		printExpr(b, n.Value, 0, indent)
		b.WriteString(";\n")
	case *LetDecl:
		b.WriteString("let ")
		b.WriteString(n.Name)
		b.WriteString(" = ")
		printExpr(b, n.Value, 0, indent)
		b.WriteString(";\n")
	case *Assign:
		printExpr(b, n.Target, 0, indent)
		b.WriteString(" = ")
		printExpr(b, n.Value, 0, indent)
		b.WriteString(";\n")
	case *ExprStmt:
		printExpr(b, n.X, 0, indent)
		b.WriteString(";\n")
	case *If:
		printIf(b, n, indent)
	case *For:
		b.WriteString("for (let ")
		b.WriteString(n.Counter)
		b.WriteString(" = ")
		printExpr(b, n.From, 0, indent)
		b.WriteString("; ")
		b.WriteString(n.Counter)
		b.WriteString(" <= ")
		printExpr(b, n.To, 0, indent)
		b.WriteString("; ")
		b.WriteString(n.Counter)
		b.WriteString("++) {\n")
		printStmts(b, n.Body, indent+1)
		writeIndent(b, indent)
		b.WriteString("}\n")
	case *Return:
		b.WriteString("return")
		if n.X != nil {
			b.WriteByte(' ')
			printExpr(b, n.X, 0, indent)
		}
		b.WriteString(";\n")
	case *Break:
		b.WriteString("break;\n")
	case *Continue:
		b.WriteString("continue;\n")
	}
}

func printIf(b *strings.Builder, n *If, indent int) {
	b.WriteString("if (")
	printExpr(b, n.Test, 0, indent)
	b.WriteString(") {\n")
	printStmts(b, n.Then, indent+1)
	writeIndent(b, indent)
	b.WriteByte('}')

	if len(n.Else) == 0 {
		b.WriteByte('\n')
		return
	}

	//flatten else-if chains
	if len(n.Else) == 1 {
		if elseIf, ok := n.Else[0].(*If); ok {
			b.WriteString(" else ")
			printIf(b, elseIf, indent)
			return
		}
	}

	b.WriteString(" else {\n")
	printStmts(b, n.Else, indent+1)
	writeIndent(b, indent)
	b.WriteString("}\n")
}
