package parse

import (
	"github.com/pinelang/pinec/internal/sourcecode"
)

// A Node represents an immutable AST Node, all node types embed NodeBase that
// implements the Node interface. The only mutation allowed after parsing is a
// rewrite pass replacing a child through its parent's slot.
type Node interface {
	Base() NodeBase
	BasePtr() *NodeBase
}

// NodeBase implements the Node interface.
type NodeBase struct {
	Span sourcecode.NodeSpan      `json:"span"`
	Err  *sourcecode.ParsingError `json:"error,omitempty"`
}

func (base NodeBase) Base() NodeBase {
	return base
}

func (base *NodeBase) BasePtr() *NodeBase {
	return base
}

func (base NodeBase) IncludedIn(node Node) bool {
	return base.Span.Start >= node.Base().Span.Start && base.Span.End <= node.Base().Span.End
}

// A Chunk is the root of the AST of a single compilation unit.
type Chunk struct {
	NodeBase   `json:"base:chunk"`
	Statements []Node `json:"statements"`
}

type IntLiteral struct {
	NodeBase `json:"base:int-lit"`
	Raw      string `json:"raw"`
	Value    int64  `json:"value"`
}

type FloatLiteral struct {
	NodeBase `json:"base:float-lit"`
	Raw      string  `json:"raw"`
	Value    float64 `json:"value"`
}

type StringLiteral struct {
	NodeBase `json:"base:string-lit"`
	Raw      string `json:"raw"`
	Value    string `json:"value"`
}

type BooleanLiteral struct {
	NodeBase `json:"base:bool-lit"`
	Value    bool `json:"value"`
}

// NaLiteral is the 'na' (not available) literal.
type NaLiteral struct {
	NodeBase `json:"base:na-lit"`
}

type IdentifierLiteral struct {
	NodeBase `json:"base:identifier"`
	Name     string `json:"name"`
}

// MemberExpression is a dotted access such as ta.sma or color.red.
type MemberExpression struct {
	NodeBase `json:"base:member-expr"`
	Object   Node               `json:"object"`
	Property *IdentifierLiteral `json:"property"`
}

// A CallArgument is a positional or keyword (name=value) argument.
type CallArgument struct {
	NodeBase `json:"base:call-arg"`
	Name     *IdentifierLiteral `json:"name,omitempty"` //nil if positional
	Value    Node               `json:"value"`
}

type CallExpression struct {
	NodeBase  `json:"base:call-expr"`
	Callee    Node            `json:"callee"`
	Arguments []*CallArgument `json:"arguments"`
}

// HistoryExpression is the history access expr[n]: the value of a series n
// bars in the past.
type HistoryExpression struct {
	NodeBase `json:"base:history-expr"`
	Target   Node `json:"target"`
	Offset   Node `json:"offset"`
}

type BinaryOperator uint8

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
	Mod
	GreaterThan
	GreaterOrEqual
	LessThan
	LessOrEqual
	Equal
	NotEqual
	And
	Or
)

var binaryOperatorStrings = [...]string{
	Add:            "+",
	Sub:            "-",
	Mul:            "*",
	Div:            "/",
	Mod:            "%",
	GreaterThan:    ">",
	GreaterOrEqual: ">=",
	LessThan:       "<",
	LessOrEqual:    "<=",
	Equal:          "==",
	NotEqual:       "!=",
	And:            "and",
	Or:             "or",
}

func (op BinaryOperator) String() string {
	return binaryOperatorStrings[op]
}

// IsArithmetic reports whether the operator is one of + - * / %.
func (op BinaryOperator) IsArithmetic() bool {
	return op <= Mod
}

// IsComparison reports whether the operator compares its operands, equality
// included.
func (op BinaryOperator) IsComparison() bool {
	return op >= GreaterThan && op <= NotEqual
}

func (op BinaryOperator) IsLogical() bool {
	return op == And || op == Or
}

type BinaryExpression struct {
	NodeBase `json:"base:binary-expr"`
	Operator BinaryOperator `json:"operator"`
	Left     Node           `json:"left"`
	Right    Node           `json:"right"`
}

type UnaryOperator uint8

const (
	NumberNegate UnaryOperator = iota
	BoolNegate
)

func (op UnaryOperator) String() string {
	if op == NumberNegate {
		return "-"
	}
	return "not"
}

type UnaryExpression struct {
	NodeBase `json:"base:unary-expr"`
	Operator UnaryOperator `json:"operator"`
	Operand  Node          `json:"operand"`
}

// TernaryExpression is cond ? consequent : alternate, right-associative.
type TernaryExpression struct {
	NodeBase   `json:"base:ternary-expr"`
	Condition  Node `json:"condition"`
	Consequent Node `json:"consequent"`
	Alternate  Node `json:"alternate"`
}

// VariableDeclaration covers both binding forms: x = e (const-like) and
// var x = e (reassignable).
type VariableDeclaration struct {
	NodeBase     `json:"base:var-decl"`
	Name         *IdentifierLiteral `json:"name"`
	Right        Node               `json:"right"`
	Reassignable bool               `json:"reassignable"`
}

// AssignmentStatement is the mutable reassignment x := e, it requires a prior
// reassignable declaration.
type AssignmentStatement struct {
	NodeBase `json:"base:assignment"`
	Name     *IdentifierLiteral `json:"name"`
	Right    Node               `json:"right"`
}

type Block struct {
	NodeBase   `json:"base:block"`
	Statements []Node `json:"statements"`
}

type IfStatement struct {
	NodeBase   `json:"base:if-stmt"`
	Condition  Node   `json:"condition"`
	Consequent *Block `json:"consequent"`
	Alternate  Node   `json:"alternate,omitempty"` //*Block, *IfStatement or nil
}

// ForStatement is the counted loop: for i = from to to.
type ForStatement struct {
	NodeBase `json:"base:for-stmt"`
	Counter  *IdentifierLiteral `json:"counter"`
	From     Node               `json:"from"`
	To       Node               `json:"to"`
	Body     *Block             `json:"body"`
}

type FunctionParameter struct {
	NodeBase `json:"base:fn-param"`
	Name     *IdentifierLiteral `json:"name"`
}

// A FunctionDeclaration is name(params) => <expr> or name(params) => plus an
// indented block whose last expression is the return value.
type FunctionDeclaration struct {
	NodeBase   `json:"base:fn-decl"`
	Name       *IdentifierLiteral   `json:"name"`
	Parameters []*FunctionParameter `json:"parameters"`
	Body       *Block               `json:"body"`
}

type BreakStatement struct {
	NodeBase `json:"base:break-stmt"`
}

type ContinueStatement struct {
	NodeBase `json:"base:continue-stmt"`
}

// MissingExpression is a placeholder inserted by the parser where an
// expression was expected but could not be parsed.
type MissingExpression struct {
	NodeBase `json:"base:missing-expr"`
}
