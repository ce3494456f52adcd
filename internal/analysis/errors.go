package analysis

import (
	"fmt"

	"github.com/pinelang/pinec/internal/types"
)

// ErrorKind is the closed taxonomy of semantic errors.
type ErrorKind string

const (
	UndefinedVariable    ErrorKind = "UNDEFINED_VARIABLE"
	UndefinedFunction    ErrorKind = "UNDEFINED_FUNCTION"
	TypeMismatch         ErrorKind = "TYPE_MISMATCH"
	InvalidAssignment    ErrorKind = "INVALID_ASSIGNMENT"
	ConstReassignment    ErrorKind = "CONST_REASSIGNMENT"
	InvalidHistoryAccess ErrorKind = "INVALID_HISTORY_ACCESS"
	WrongArgumentCount   ErrorKind = "WRONG_ARGUMENT_COUNT"
	WrongArgumentType    ErrorKind = "WRONG_ARGUMENT_TYPE"
	BreakOutsideLoop     ErrorKind = "BREAK_OUTSIDE_LOOP"
	ContinueOutsideLoop  ErrorKind = "CONTINUE_OUTSIDE_LOOP"
	DuplicateDeclaration ErrorKind = "DUPLICATE_DECLARATION"
	InvalidOperator      ErrorKind = "INVALID_OPERATOR"
)

type WarningKind string

const (
	UnusedVariable WarningKind = "UNUSED_VARIABLE"
	NaComparison   WarningKind = "NA_COMPARISON"
)

const (
	BREAK_STMTS_ONLY_ALLOWED_IN_LOOPS    = "break statements are only allowed inside for loops"
	CONTINUE_STMTS_ONLY_ALLOWED_IN_LOOPS = "continue statements are only allowed inside for loops"
	NA_COMPARISON_IS_ALWAYS_NA           = "comparing with 'na' never holds, use the na() function instead"
	CONDITION_SHOULD_BE_A_BOOLEAN        = "the condition should be a boolean expression"
	LOOP_BOUNDS_SHOULD_BE_NUMERIC        = "the bounds of a for loop should be numeric expressions"
)

// A SemanticError is an immutable diagnostic record, it is collected, never
// thrown.
type SemanticError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Line    int32     `json:"line"`
	Column  int32     `json:"column"`

	//Context is the text of the offending source line, it may be empty.
	Context string `json:"context,omitempty"`
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

type SemanticWarning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
	Line    int32       `json:"line"`
	Column  int32       `json:"column"`
	Context string      `json:"context,omitempty"`
}

func (w SemanticWarning) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", w.Line, w.Column, w.Kind, w.Message)
}

func fmtVarIsNotDeclared(name string) string {
	return fmt.Sprintf("variable '%s' is not declared", name)
}

func fmtFunctionIsNotDeclared(name string) string {
	return fmt.Sprintf("function '%s' is not declared", name)
}

func fmtNamespaceIsNotDeclared(name string) string {
	return fmt.Sprintf("namespace '%s' is not declared", name)
}

func fmtCalleeIsNotAFunction(name string) string {
	return fmt.Sprintf("'%s' is not a function", name)
}

func fmtDuplicateDeclaration(name string) string {
	return fmt.Sprintf("'%s' is already declared in this scope", name)
}

func fmtInvalidAssignmentVarDoesNotExist(name string) string {
	return fmt.Sprintf("invalid assignment: '%s' is not declared, declare it first with 'var %s = ...'", name, name)
}

func fmtCannotReassignConstBinding(name string) string {
	return fmt.Sprintf("'%s' was declared with '=' and cannot be reassigned, declare it with 'var' to make it mutable", name)
}

func fmtCannotAssign(name string, from, to types.Type) string {
	return fmt.Sprintf("cannot assign a %s value to '%s' of type %s", from.String(), name, to.String())
}

func fmtHistoryAccessOnNonSeries(t types.Type) string {
	return fmt.Sprintf("the history access operator [] requires a series, not a %s value", t.String())
}

func fmtHistoryOffsetShouldBeAnInteger(t types.Type) string {
	return fmt.Sprintf("the history offset should be an integer, not a %s value", t.String())
}

func fmtWrongArgCount(name string, min, max, got int) string {
	if min == max {
		return fmt.Sprintf("'%s' expects %d argument(s), got %d", name, min, got)
	}
	if max < 0 {
		return fmt.Sprintf("'%s' expects at least %d argument(s), got %d", name, min, got)
	}
	return fmt.Sprintf("'%s' expects between %d and %d arguments, got %d", name, min, max, got)
}

func fmtWrongArgType(name string, index int, want string, got types.Type) string {
	return fmt.Sprintf("argument %d of '%s' should be %s, got a %s value", index+1, name, want, got.String())
}

func fmtInvalidOperandsOfArithmeticOp(op string, left, right types.Type) string {
	return fmt.Sprintf("operator '%s' requires numeric operands, got %s and %s", op, left.String(), right.String())
}

func fmtInvalidOperandsOfLogicalOp(op string, left, right types.Type) string {
	return fmt.Sprintf("operator '%s' requires boolean operands, got %s and %s", op, left.String(), right.String())
}

func fmtInvalidOperandOfUnaryOp(op string, operand types.Type) string {
	return fmt.Sprintf("unary operator '%s' cannot be applied to a %s value", op, operand.String())
}

func fmtVarIsNeverUsed(name string) string {
	return fmt.Sprintf("variable '%s' is declared but never used", name)
}
