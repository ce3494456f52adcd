// Package jsast models the emitted JavaScript: a small typed expression and
// statement tree, a deterministic printer, and the series-ness analysis that
// rewrites natural operators into method calls on the runtime series
// abstraction.
package jsast

type Node interface {
	isNode()
}

type Expr interface {
	Node
	isExpr()
}

type Stmt interface {
	Node
	isStmt()
}

type Ident struct {
	Name string
}

// NumberLit keeps the raw source spelling so emission is byte-stable.
type NumberLit struct {
	Raw string
}

type StringLit struct {
	Value string
}

type BoolLit struct {
	Value bool
}

type Member struct {
	Object   Expr
	Property string
}

// Index is the computed indexing a[b].
type Index struct {
	Object Expr
	Key    Expr
}

type Call struct {
	Callee Expr
	Args   []Expr
}

type Binary struct {
	Op    string //JS operator: + - * / % > < >= <= === !== && ||
	Left  Expr
	Right Expr
}

type Unary struct {
	Op      string //- or !
	Operand Expr
}

type Cond struct {
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

// Arrow is an arrow function. Expr is set for a concise body, otherwise Body
// holds the statements.
type Arrow struct {
	Params []string
	Expr   Expr
	Body   []Stmt
}

type ConstDecl struct {
	Name  string
	Value Expr
}

type LetDecl struct {
	Name  string
	Value Expr
}

type Assign struct {
	Target Expr
	Value  Expr
}

type ExprStmt struct {
	X Expr
}

type If struct {
	Test Expr
	Then []Stmt
	Else []Stmt //may hold a single *If for an else-if chain
}

// For is the counted loop emitted for the source 'for i = a to b' construct,
// bounds inclusive.
type For struct {
	Counter string
	From    Expr
	To      Expr
	Body    []Stmt
}

type Return struct {
	X Expr //may be nil
}

type Break struct{}

type Continue struct{}

func (*Ident) isNode()     {}
func (*NumberLit) isNode() {}
func (*StringLit) isNode() {}
func (*BoolLit) isNode()   {}
func (*Member) isNode()    {}
func (*Index) isNode()     {}
func (*Call) isNode()      {}
func (*Binary) isNode()    {}
func (*Unary) isNode()     {}
func (*Cond) isNode()      {}
func (*Arrow) isNode()     {}
func (*ConstDecl) isNode() {}
func (*LetDecl) isNode()   {}
func (*Assign) isNode()    {}
func (*ExprStmt) isNode()  {}
func (*If) isNode()        {}
func (*For) isNode()       {}
func (*Return) isNode()    {}
func (*Break) isNode()     {}
func (*Continue) isNode()  {}

func (*Ident) isExpr()     {}
func (*NumberLit) isExpr() {}
func (*StringLit) isExpr() {}
func (*BoolLit) isExpr()   {}
func (*Member) isExpr()    {}
func (*Index) isExpr()     {}
func (*Call) isExpr()      {}
func (*Binary) isExpr()    {}
func (*Unary) isExpr()     {}
func (*Cond) isExpr()      {}
func (*Arrow) isExpr()     {}

func (*ConstDecl) isStmt() {}
func (*LetDecl) isStmt()   {}
func (*Assign) isStmt()    {}
func (*ExprStmt) isStmt()  {}
func (*If) isStmt()        {}
func (*For) isStmt()       {}
func (*Return) isStmt()    {}
func (*Break) isStmt()     {}
func (*Continue) isStmt()  {}
