// Package analysis implements the semantic checks of the compiler: scope
// resolution, assignment rules, placement rules and argument checks.
// Diagnostics are accumulated in discovery order and never thrown, so one
// pass surfaces every detectable problem.
package analysis

import (
	"github.com/pinelang/pinec/internal/parse"
	"github.com/pinelang/pinec/internal/sourcecode"
	"github.com/pinelang/pinec/internal/symbols"
	"github.com/pinelang/pinec/internal/types"
)

type CheckInput struct {
	Chunk *parse.Chunk
	File  *sourcecode.File
}

type CheckResult struct {
	Errors   []SemanticError
	Warnings []SemanticWarning

	//Table holds the builtin and user declarations gathered during the
	//check, positioned back at the global scope.
	Table *symbols.Table
}

func (r *CheckResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Check walks the chunk and returns the accumulated diagnostics. The caller
// owns the emission policy: compilations with errors must not be emitted,
// warnings do not block.
func Check(input CheckInput) *CheckResult {
	table := symbols.NewTable()
	DeclareBuiltins(table)

	c := &checker{
		table: table,
		file:  input.File,
		used:  map[*symbols.Symbol]bool{},
	}

	for _, stmt := range input.Chunk.Statements {
		c.checkStatement(stmt)
	}

	for _, sym := range c.declared {
		if !c.used[sym] && sym.Name != "_" {
			c.addWarning(UnusedVariable, fmtVarIsNeverUsed(sym.Name), sym.DeclaredAt)
		}
	}

	return &CheckResult{
		Errors:   c.errors,
		Warnings: c.warnings,
		Table:    table,
	}
}

type checker struct {
	table *symbols.Table
	file  *sourcecode.File

	errors   []SemanticError
	warnings []SemanticWarning

	//user variable declarations in declaration order, for the unused check
	declared []*symbols.Symbol
	used     map[*symbols.Symbol]bool
}

func (c *checker) addError(kind ErrorKind, msg string, span sourcecode.NodeSpan) {
	line, col := c.file.GetSpanLineColumn(span)
	c.errors = append(c.errors, SemanticError{
		Kind:    kind,
		Message: msg,
		Line:    line,
		Column:  col,
		Context: c.file.GetLineText(line),
	})
}

func (c *checker) addWarning(kind WarningKind, msg string, span sourcecode.NodeSpan) {
	line, col := c.file.GetSpanLineColumn(span)
	c.warnings = append(c.warnings, SemanticWarning{
		Kind:    kind,
		Message: msg,
		Line:    line,
		Column:  col,
		Context: c.file.GetLineText(line),
	})
}

func (c *checker) checkStatement(node parse.Node) {
	switch n := node.(type) {
	case *parse.VariableDeclaration:
		c.checkVariableDeclaration(n)
	case *parse.AssignmentStatement:
		c.checkAssignment(n)
	case *parse.IfStatement:
		c.checkIfStatement(n)
	case *parse.ForStatement:
		c.checkForStatement(n)
	case *parse.FunctionDeclaration:
		c.checkFunctionDeclaration(n)
	case *parse.BreakStatement:
		if !c.table.IsInsideLoop() {
			c.addError(BreakOutsideLoop, BREAK_STMTS_ONLY_ALLOWED_IN_LOOPS, n.Span)
		}
	case *parse.ContinueStatement:
		if !c.table.IsInsideLoop() {
			c.addError(ContinueOutsideLoop, CONTINUE_STMTS_ONLY_ALLOWED_IN_LOOPS, n.Span)
		}
	default:
		c.checkExpression(node)
	}
}

func (c *checker) checkVariableDeclaration(n *parse.VariableDeclaration) {
	c.checkExpression(n.Right)

	if c.table.IsInCurrentScope(n.Name.Name) {
		c.addError(DuplicateDeclaration, fmtDuplicateDeclaration(n.Name.Name), n.Name.Span)
		return
	}

	declType := c.declarationType(n.Right)

	sym := &symbols.Symbol{
		Name:           n.Name.Name,
		Kind:           symbols.VariableSymbol,
		Type:           declType,
		IsConst:        !n.Reassignable,
		IsSeries:       declType.IsSeries(),
		IsReassignable: n.Reassignable,
		DeclaredAt:     n.Name.Span,
	}

	if err := c.table.Declare(sym); err == nil {
		//top-level bindings are part of the script surface (plots read them),
		//only locals get the unused warning
		if c.table.CurrentScope().Kind() != symbols.GlobalScope {
			c.declared = append(c.declared, sym)
		}
	}
}

// declarationType infers the type of a declaration initializer. Declarations
// initialized by an input(...) call take the scalar type of the default
// value: inputs are per-compilation constants, not per-bar series.
func (c *checker) declarationType(right parse.Node) types.Type {
	if call, ok := right.(*parse.CallExpression); ok {
		if callee, ok := call.Callee.(*parse.IdentifierLiteral); ok && callee.Name == "input" {
			if sym, found := c.table.Lookup("input"); found && sym.IsBuiltin {
				if defval := defaultInputArgument(call); defval != nil {
					t := types.Infer(defval, c.table)
					if t.IsSeries() {
						return t.Elem()
					}
					return t
				}
			}
		}
	}
	return types.Infer(right, c.table)
}

// defaultInputArgument returns the default-value argument of an input(...)
// call: the argument named defval, or the first positional one.
func defaultInputArgument(call *parse.CallExpression) parse.Node {
	for _, arg := range call.Arguments {
		if arg.Name != nil && arg.Name.Name == "defval" {
			return arg.Value
		}
	}
	for _, arg := range call.Arguments {
		if arg.Name == nil {
			return arg.Value
		}
	}
	return nil
}

func (c *checker) checkAssignment(n *parse.AssignmentStatement) {
	c.checkExpression(n.Right)

	sym, found := c.table.Lookup(n.Name.Name)
	if !found {
		c.addError(InvalidAssignment, fmtInvalidAssignmentVarDoesNotExist(n.Name.Name), n.Name.Span)
		return
	}

	if sym.IsBuiltin {
		c.addError(InvalidAssignment, "cannot assign to builtin '"+n.Name.Name+"'", n.Name.Span)
		return
	}

	if !sym.IsReassignable {
		c.addError(ConstReassignment, fmtCannotReassignConstBinding(n.Name.Name), n.Name.Span)
		return
	}

	rightType := types.Infer(n.Right, c.table)
	if !assignable(rightType, sym.Type) {
		c.addError(TypeMismatch, fmtCannotAssign(n.Name.Name, rightType, sym.Type), n.Name.Span)
		return
	}

	sym.Type = widen(sym.Type, rightType)
	sym.IsSeries = sym.Type.IsSeries()
}

// assignable reports whether a value of type 'from' may be assigned to a
// binding of type 'to'. Numeric kinds mix freely, na and unknown are always
// accepted.
func assignable(from, to types.Type) bool {
	fromKind := from.ElemKind()
	toKind := to.ElemKind()

	if fromKind == types.NaKind || fromKind == types.UnknownKind ||
		toKind == types.NaKind || toKind == types.UnknownKind {
		return true
	}
	if from.IsNumeric() && to.IsNumeric() {
		return true
	}
	return fromKind == toKind
}

func widen(to, from types.Type) types.Type {
	elem := types.PromoteScalar(to.ElemKind(), from.ElemKind())
	if to.IsSeries() || from.IsSeries() {
		return types.SeriesOf(elem)
	}
	return scalarOf(elem)
}

func scalarOf(kind types.Kind) types.Type {
	switch kind {
	case types.IntKind:
		return types.IntType
	case types.FloatKind:
		return types.FloatType
	case types.BoolKind:
		return types.BoolType
	case types.StringKind:
		return types.StringType
	case types.NaKind:
		return types.NaType
	}
	return types.UnknownType
}

func (c *checker) checkIfStatement(n *parse.IfStatement) {
	c.checkExpression(n.Condition)

	if t := types.Infer(n.Condition, c.table); !t.IsBoolish() {
		c.addError(TypeMismatch, CONDITION_SHOULD_BE_A_BOOLEAN, n.Condition.Base().Span)
	}

	c.checkScopedBlock(n.Consequent, symbols.BlockScope)

	switch alt := n.Alternate.(type) {
	case *parse.IfStatement:
		c.checkIfStatement(alt)
	case *parse.Block:
		c.checkScopedBlock(alt, symbols.BlockScope)
	}
}

func (c *checker) checkForStatement(n *parse.ForStatement) {
	c.checkExpression(n.From)
	c.checkExpression(n.To)

	fromType := types.Infer(n.From, c.table)
	toType := types.Infer(n.To, c.table)
	if !fromType.IsNumeric() || !toType.IsNumeric() {
		c.addError(TypeMismatch, LOOP_BOUNDS_SHOULD_BE_NUMERIC, n.From.Base().Span)
	}

	c.table.EnterScope(symbols.LoopScope)
	defer c.table.ExitScope()

	counter := &symbols.Symbol{
		Name:       n.Counter.Name,
		Kind:       symbols.VariableSymbol,
		Type:       scalarOf(types.PromoteScalar(fromType.ElemKind(), toType.ElemKind())),
		IsConst:    true,
		DeclaredAt: n.Counter.Span,
	}
	c.table.Declare(counter)
	c.used[counter] = true //loop counters are used by the loop itself

	for _, stmt := range n.Body.Statements {
		c.checkStatement(stmt)
	}
}

func (c *checker) checkFunctionDeclaration(n *parse.FunctionDeclaration) {
	if c.table.IsInCurrentScope(n.Name.Name) {
		c.addError(DuplicateDeclaration, fmtDuplicateDeclaration(n.Name.Name), n.Name.Span)
		return
	}

	sig := &types.FuncSignature{
		MinArgCount: len(n.Parameters),
		MaxArgCount: len(n.Parameters),
		Result:      types.UnknownType,
	}

	//declare before checking the body so the function can call itself
	c.table.Declare(&symbols.Symbol{
		Name:       n.Name.Name,
		Kind:       symbols.FunctionSymbol,
		Type:       types.FunctionType(sig),
		IsConst:    true,
		DeclaredAt: n.Name.Span,
	})

	c.table.EnterScope(symbols.FunctionScope)
	defer c.table.ExitScope()

	for _, param := range n.Parameters {
		paramSym := &symbols.Symbol{
			Name:       param.Name.Name,
			Kind:       symbols.ParameterSymbol,
			Type:       types.UnknownType,
			DeclaredAt: param.Name.Span,
		}
		if err := c.table.Declare(paramSym); err != nil {
			c.addError(DuplicateDeclaration, fmtDuplicateDeclaration(param.Name.Name), param.Name.Span)
		}
	}

	for _, stmt := range n.Body.Statements {
		c.checkStatement(stmt)
	}

	//the last expression of the body is the return value
	if len(n.Body.Statements) > 0 {
		last := n.Body.Statements[len(n.Body.Statements)-1]
		sig.Result = types.Infer(last, c.table)
	}
}

func (c *checker) checkScopedBlock(block *parse.Block, kind symbols.ScopeKind) {
	if block == nil {
		return
	}
	c.table.EnterScope(kind)
	defer c.table.ExitScope()

	for _, stmt := range block.Statements {
		c.checkStatement(stmt)
	}
}

func (c *checker) checkExpression(node parse.Node) {
	switch n := node.(type) {
	case *parse.IdentifierLiteral:
		sym, found := c.table.Lookup(n.Name)
		if !found {
			c.addError(UndefinedVariable, fmtVarIsNotDeclared(n.Name), n.Span)
			return
		}
		c.used[sym] = true
	case *parse.MemberExpression:
		c.checkMemberObject(n)
	case *parse.CallExpression:
		c.checkCall(n)
	case *parse.HistoryExpression:
		c.checkHistoryAccess(n)
	case *parse.BinaryExpression:
		c.checkBinary(n)
	case *parse.UnaryExpression:
		c.checkUnary(n)
	case *parse.TernaryExpression:
		c.checkExpression(n.Condition)
		if t := types.Infer(n.Condition, c.table); !t.IsBoolish() {
			c.addError(TypeMismatch, CONDITION_SHOULD_BE_A_BOOLEAN, n.Condition.Base().Span)
		}
		c.checkExpression(n.Consequent)
		c.checkExpression(n.Alternate)
	}
}

// checkMemberObject resolves the object of a member access. Property names
// are not validated: each namespace's function set is an external runtime
// contract.
func (c *checker) checkMemberObject(n *parse.MemberExpression) {
	if object, ok := n.Object.(*parse.IdentifierLiteral); ok {
		sym, found := c.table.Lookup(object.Name)
		if !found {
			c.addError(UndefinedVariable, fmtNamespaceIsNotDeclared(object.Name), object.Span)
			return
		}
		c.used[sym] = true
		return
	}
	c.checkExpression(n.Object)
}

func (c *checker) checkCall(n *parse.CallExpression) {
	for _, arg := range n.Arguments {
		c.checkExpression(arg.Value)
	}

	switch callee := n.Callee.(type) {
	case *parse.IdentifierLiteral:
		sym, found := c.table.Lookup(callee.Name)
		if !found {
			c.addError(UndefinedFunction, fmtFunctionIsNotDeclared(callee.Name), callee.Span)
			return
		}
		c.used[sym] = true

		if sym.Kind != symbols.FunctionSymbol && !sym.Type.IsFunction() {
			c.addError(TypeMismatch, fmtCalleeIsNotAFunction(callee.Name), callee.Span)
			return
		}

		c.checkCallArity(callee.Name, sym, n)
		c.checkBuiltinCallArguments(callee.Name, n)
	case *parse.MemberExpression:
		c.checkMemberObject(callee)
	default:
		c.checkExpression(n.Callee)
	}
}

func (c *checker) checkCallArity(name string, sym *symbols.Symbol, n *parse.CallExpression) {
	sig := sym.Type.Signature()
	if sig == nil {
		return
	}

	got := len(n.Arguments)
	if got < sig.MinArgCount || (sig.MaxArgCount >= 0 && got > sig.MaxArgCount) {
		c.addError(WrongArgumentCount, fmtWrongArgCount(name, sig.MinArgCount, sig.MaxArgCount, got), n.Span)
	}
}

// checkBuiltinCallArguments validates the argument types of the declaration
// builtins whose contract is known to the compiler.
func (c *checker) checkBuiltinCallArguments(name string, n *parse.CallExpression) {
	switch name {
	case "indicator", "study":
		if len(n.Arguments) > 0 && n.Arguments[0].Name == nil {
			if t := types.Infer(n.Arguments[0].Value, c.table); t.ElemKind() != types.StringKind && !t.IsUnknown() {
				c.addError(WrongArgumentType, fmtWrongArgType(name, 0, "a string title", t), n.Arguments[0].Span)
			}
		}
	case "input":
		if defval := defaultInputArgument(n); defval != nil {
			if t := types.Infer(defval, c.table); t.IsSeries() {
				c.addError(WrongArgumentType, fmtWrongArgType(name, 0, "a scalar default value", t), defval.Base().Span)
			}
		}
	case "nz":
		if len(n.Arguments) > 0 {
			if t := types.Infer(n.Arguments[0].Value, c.table); !t.IsNumeric() {
				c.addError(WrongArgumentType, fmtWrongArgType(name, 0, "a numeric series", t), n.Arguments[0].Span)
			}
		}
	case "plot", "hline":
		if len(n.Arguments) > 1 && n.Arguments[1].Name == nil {
			if t := types.Infer(n.Arguments[1].Value, c.table); t.ElemKind() != types.StringKind && !t.IsUnknown() {
				c.addError(WrongArgumentType, fmtWrongArgType(name, 1, "a string title", t), n.Arguments[1].Span)
			}
		}
	}
}

func (c *checker) checkHistoryAccess(n *parse.HistoryExpression) {
	c.checkExpression(n.Target)
	c.checkExpression(n.Offset)

	targetType := types.Infer(n.Target, c.table)
	if !targetType.IsSeries() && !targetType.IsUnknown() {
		c.addError(InvalidHistoryAccess, fmtHistoryAccessOnNonSeries(targetType), n.Target.Base().Span)
	}

	offsetType := types.Infer(n.Offset, c.table)
	switch offsetType.ElemKind() {
	case types.IntKind, types.NaKind, types.UnknownKind:
	default:
		c.addError(TypeMismatch, fmtHistoryOffsetShouldBeAnInteger(offsetType), n.Offset.Base().Span)
	}
}

func (c *checker) checkBinary(n *parse.BinaryExpression) {
	c.checkExpression(n.Left)
	c.checkExpression(n.Right)

	left := types.Infer(n.Left, c.table)
	right := types.Infer(n.Right, c.table)
	op := n.Operator

	switch {
	case op.IsArithmetic():
		if !left.IsNumeric() || !right.IsNumeric() {
			c.addError(InvalidOperator, fmtInvalidOperandsOfArithmeticOp(op.String(), left, right), n.Span)
		}
	case op.IsLogical():
		if !left.IsBoolish() || !right.IsBoolish() {
			c.addError(InvalidOperator, fmtInvalidOperandsOfLogicalOp(op.String(), left, right), n.Span)
		}
	case op == parse.Equal || op == parse.NotEqual:
		if isNaLiteral(n.Left) || isNaLiteral(n.Right) {
			c.addWarning(NaComparison, NA_COMPARISON_IS_ALWAYS_NA, n.Span)
		}
	default: //ordering comparison
		if !left.IsNumeric() || !right.IsNumeric() {
			c.addError(InvalidOperator, fmtInvalidOperandsOfArithmeticOp(op.String(), left, right), n.Span)
		}
	}
}

func (c *checker) checkUnary(n *parse.UnaryExpression) {
	c.checkExpression(n.Operand)

	operand := types.Infer(n.Operand, c.table)

	switch n.Operator {
	case parse.NumberNegate:
		if !operand.IsNumeric() {
			c.addError(InvalidOperator, fmtInvalidOperandOfUnaryOp("-", operand), n.Span)
		}
	case parse.BoolNegate:
		if !operand.IsBoolish() {
			c.addError(InvalidOperator, fmtInvalidOperandOfUnaryOp("not", operand), n.Span)
		}
	}
}

func isNaLiteral(node parse.Node) bool {
	_, ok := node.(*parse.NaLiteral)
	return ok
}
