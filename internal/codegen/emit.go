// Package codegen lowers a diagnostic-clean AST to JavaScript targeting the
// series runtime, accumulating the minimal runtime import set as a side
// effect of emission and extracting the Indicator IR from the metadata,
// input and plot declarations.
package codegen

import (
	"strconv"
	"strings"

	"github.com/pinelang/pinec/internal/jsast"
	"github.com/pinelang/pinec/internal/parse"
)

type EmitInput struct {
	Chunk *parse.Chunk
}

type Output struct {
	JS      string
	IR      *IndicatorIR
	Imports []string
}

// Emit produces the target source text and the Indicator IR. Emission is a
// pure function of the AST: emitting twice from the same tree yields
// byte-identical output. The caller is responsible for refusing to emit a
// chunk with semantic errors.
func Emit(input EmitInput) *Output {
	e := &emitter{
		imports:    NewImportSet(),
		ir:         NewIndicatorIR(),
		referenced: map[string]bool{},
	}

	//the series container is always part of the runtime contract
	e.imports.Add("Series")

	body := e.lowerStatements(input.Chunk.Statements)
	jsast.RewriteStmts(body, jsast.NewScope(nil))

	return &Output{
		JS:      e.assemble(body),
		IR:      e.ir,
		Imports: e.imports.List(),
	}
}

type emitter struct {
	imports *ImportSet
	ir      *IndicatorIR

	//derived and calendar prelude fields referenced by the body
	referenced map[string]bool
}

func (e *emitter) lowerStatements(stmts []parse.Node) []jsast.Stmt {
	var out []jsast.Stmt
	for _, stmt := range stmts {
		out = append(out, e.lowerStatement(stmt)...)
	}
	return out
}

func (e *emitter) lowerStatement(node parse.Node) []jsast.Stmt {
	switch n := node.(type) {
	case *parse.VariableDeclaration:
		return e.lowerVariableDeclaration(n)
	case *parse.AssignmentStatement:
		return []jsast.Stmt{&jsast.Assign{
			Target: &jsast.Ident{Name: SanitizeIdentifier(n.Name.Name)},
			Value:  e.lowerExpr(n.Right),
		}}
	case *parse.IfStatement:
		return []jsast.Stmt{e.lowerIfStatement(n)}
	case *parse.ForStatement:
		return []jsast.Stmt{&jsast.For{
			Counter: SanitizeIdentifier(n.Counter.Name),
			From:    e.lowerExpr(n.From),
			To:      e.lowerExpr(n.To),
			Body:    e.lowerStatements(n.Body.Statements),
		}}
	case *parse.FunctionDeclaration:
		return []jsast.Stmt{e.lowerFunctionDeclaration(n)}
	case *parse.BreakStatement:
		return []jsast.Stmt{&jsast.Break{}}
	case *parse.ContinueStatement:
		return []jsast.Stmt{&jsast.Continue{}}
	case *parse.CallExpression:
		if stmts, handled := e.lowerDeclarationCall(n); handled {
			return stmts
		}
	}

	return []jsast.Stmt{&jsast.ExprStmt{X: e.lowerExpr(node)}}
}

// lowerDeclarationCall handles the script-surface declarations: metadata
// (indicator/study) produces no emitted statement, plot-family calls are
// recorded in the IR and lowered to chart callback invocations.
func (e *emitter) lowerDeclarationCall(n *parse.CallExpression) ([]jsast.Stmt, bool) {
	callee, ok := n.Callee.(*parse.IdentifierLiteral)
	if !ok {
		return nil, false
	}

	switch callee.Name {
	case "indicator", "study":
		e.collectMetadata(n)
		return nil, true
	case "plot":
		return []jsast.Stmt{e.lowerPlotCall(n, "plot", "plot")}, true
	case "hline":
		return []jsast.Stmt{e.lowerPlotCall(n, "hline", "hline")}, true
	case "plotshape":
		return []jsast.Stmt{e.lowerPlotCall(n, "plotshape", "shape")}, true
	}

	return nil, false
}

func (e *emitter) lowerVariableDeclaration(n *parse.VariableDeclaration) []jsast.Stmt {
	jsName := SanitizeIdentifier(n.Name.Name)

	//an input(...) initializer binds the declaration to the host-provided
	//input value and contributes an input descriptor
	if call, ok := n.Right.(*parse.CallExpression); ok {
		if callee, ok := call.Callee.(*parse.IdentifierLiteral); ok && callee.Name == "input" {
			e.collectInput(jsName, call)
			return []jsast.Stmt{&jsast.ConstDecl{
				Name:  jsName,
				Value: &jsast.Member{Object: &jsast.Ident{Name: "inputs"}, Property: jsName},
			}}
		}
	}

	value := e.lowerExpr(n.Right)
	if n.Reassignable {
		return []jsast.Stmt{&jsast.LetDecl{Name: jsName, Value: value}}
	}
	return []jsast.Stmt{&jsast.ConstDecl{Name: jsName, Value: value}}
}

func (e *emitter) lowerIfStatement(n *parse.IfStatement) *jsast.If {
	out := &jsast.If{
		Test: e.lowerExpr(n.Condition),
		Then: e.lowerStatements(n.Consequent.Statements),
	}

	switch alt := n.Alternate.(type) {
	case *parse.IfStatement:
		out.Else = []jsast.Stmt{e.lowerIfStatement(alt)}
	case *parse.Block:
		out.Else = e.lowerStatements(alt.Statements)
	}

	return out
}

func (e *emitter) lowerFunctionDeclaration(n *parse.FunctionDeclaration) jsast.Stmt {
	params := make([]string, len(n.Parameters))
	for i, param := range n.Parameters {
		params[i] = SanitizeIdentifier(param.Name.Name)
	}

	body := e.lowerStatements(n.Body.Statements)

	arrow := &jsast.Arrow{Params: params}

	if len(body) == 1 {
		if exprStmt, ok := body[0].(*jsast.ExprStmt); ok {
			arrow.Expr = exprStmt.X
			return &jsast.ConstDecl{Name: SanitizeIdentifier(n.Name.Name), Value: arrow}
		}
	}

	//the last expression of the body is the return value
	if len(body) > 0 {
		if exprStmt, ok := body[len(body)-1].(*jsast.ExprStmt); ok {
			body[len(body)-1] = &jsast.Return{X: exprStmt.X}
		}
	}
	arrow.Body = body

	return &jsast.ConstDecl{Name: SanitizeIdentifier(n.Name.Name), Value: arrow}
}

var jsBinaryOperators = map[parse.BinaryOperator]string{
	parse.Add:            "+",
	parse.Sub:            "-",
	parse.Mul:            "*",
	parse.Div:            "/",
	parse.Mod:            "%",
	parse.GreaterThan:    ">",
	parse.GreaterOrEqual: ">=",
	parse.LessThan:       "<",
	parse.LessOrEqual:    "<=",
	parse.Equal:          "===",
	parse.NotEqual:       "!==",
	parse.And:            "&&",
	parse.Or:             "||",
}

func (e *emitter) lowerExpr(node parse.Node) jsast.Expr {
	switch n := node.(type) {
	case *parse.IntLiteral:
		return &jsast.NumberLit{Raw: n.Raw}
	case *parse.FloatLiteral:
		return &jsast.NumberLit{Raw: n.Raw}
	case *parse.StringLiteral:
		return &jsast.StringLit{Value: n.Value}
	case *parse.BooleanLiteral:
		return &jsast.BoolLit{Value: n.Value}
	case *parse.NaLiteral:
		//the na literal becomes the target-native NaN, it needs no import
		return &jsast.Ident{Name: "NaN"}
	case *parse.IdentifierLiteral:
		return e.lowerIdentifier(n.Name)
	case *parse.MemberExpression:
		return e.lowerMember(n)
	case *parse.CallExpression:
		return e.lowerCall(n)
	case *parse.HistoryExpression:
		return &jsast.Index{
			Object: e.lowerExpr(n.Target),
			Key:    e.lowerExpr(n.Offset),
		}
	case *parse.BinaryExpression:
		return &jsast.Binary{
			Op:    jsBinaryOperators[n.Operator],
			Left:  e.lowerExpr(n.Left),
			Right: e.lowerExpr(n.Right),
		}
	case *parse.UnaryExpression:
		op := "-"
		if n.Operator == parse.BoolNegate {
			op = "!"
		}
		return &jsast.Unary{Op: op, Operand: e.lowerExpr(n.Operand)}
	case *parse.TernaryExpression:
		return &jsast.Cond{
			Test:       e.lowerExpr(n.Condition),
			Consequent: e.lowerExpr(n.Consequent),
			Alternate:  e.lowerExpr(n.Alternate),
		}
	}

	//unreachable on a diagnostic-clean tree
	return &jsast.Ident{Name: "undefined"}
}

func (e *emitter) lowerIdentifier(name string) jsast.Expr {
	if name == "this" {
		return &jsast.Ident{Name: "self"}
	}
	if derivedFields[name] || calendarFields[name] {
		e.referenced[name] = true
	}
	return &jsast.Ident{Name: SanitizeIdentifier(name)}
}

func (e *emitter) lowerMember(n *parse.MemberExpression) jsast.Expr {
	if object, ok := n.Object.(*parse.IdentifierLiteral); ok {
		prop := n.Property.Name

		switch {
		case object.Name == "color":
			if hex, ok := colorPalette[prop]; ok {
				return &jsast.StringLit{Value: hex}
			}
			return &jsast.StringLit{Value: prop}
		case object.Name == "barstate":
			return &jsast.BoolLit{Value: barstateConstants[prop]}
		case contextNamespaces[object.Name]:
			return &jsast.Member{
				Object:   &jsast.Member{Object: &jsast.Ident{Name: "$"}, Property: object.Name},
				Property: prop,
			}
		case runtimeNamespaces[object.Name]:
			e.imports.Add(object.Name)
			return &jsast.Member{Object: &jsast.Ident{Name: object.Name}, Property: prop}
		}
	}

	return &jsast.Member{
		Object:   e.lowerExpr(n.Object),
		Property: SanitizeIdentifier(n.Property.Name),
	}
}

func (e *emitter) lowerCall(n *parse.CallExpression) jsast.Expr {
	//na is a keyword literal, a call on it is the runtime na() test function
	if _, ok := n.Callee.(*parse.NaLiteral); ok {
		e.imports.Add("na")
		return &jsast.Call{Callee: &jsast.Ident{Name: "na"}, Args: e.lowerArguments(n)}
	}

	if callee, ok := n.Callee.(*parse.IdentifierLiteral); ok {
		switch callee.Name {
		case "nz":
			e.imports.Add("nz")
			return &jsast.Call{Callee: &jsast.Ident{Name: "nz"}, Args: e.lowerArguments(n)}
		case "input":
			//an input call outside a declaration degrades to its default value
			if defval := defaultInputArgument(n); defval != nil {
				return e.lowerExpr(defval)
			}
			return &jsast.Ident{Name: "NaN"}
		}
		return &jsast.Call{Callee: e.lowerIdentifier(callee.Name), Args: e.lowerArguments(n)}
	}

	return &jsast.Call{Callee: e.lowerExpr(n.Callee), Args: e.lowerArguments(n)}
}

func (e *emitter) lowerArguments(n *parse.CallExpression) []jsast.Expr {
	args := make([]jsast.Expr, len(n.Arguments))
	for i, arg := range n.Arguments {
		args[i] = e.lowerExpr(arg.Value)
	}
	return args
}

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

// argument returns the call argument bound to the given keyword, or the
// positional argument at the given index.
func argument(call *parse.CallExpression, keyword string, index int) parse.Node {
	for _, arg := range call.Arguments {
		if arg.Name != nil && arg.Name.Name == keyword {
			return arg.Value
		}
	}

	positional := 0
	for _, arg := range call.Arguments {
		if arg.Name != nil {
			continue
		}
		if positional == index {
			return arg.Value
		}
		positional++
	}
	return nil
}

func (e *emitter) collectMetadata(call *parse.CallExpression) {
	if title, ok := argument(call, "title", 0).(*parse.StringLiteral); ok {
		e.ir.Meta.Title = title.Value
	}
	if shortTitle, ok := argument(call, "shorttitle", 1).(*parse.StringLiteral); ok {
		e.ir.Meta.ShortTitle = shortTitle.Value
	}
	if overlay, ok := argument(call, "overlay", 2).(*parse.BooleanLiteral); ok {
		e.ir.Meta.Overlay = overlay.Value
	}
	if e.ir.Meta.ShortTitle == "" {
		e.ir.Meta.ShortTitle = e.ir.Meta.Title
	}
}

func (e *emitter) collectInput(name string, call *parse.CallExpression) {
	descriptor := InputDescriptor{Name: name, Type: "float"}

	switch defval := defaultInputArgument(call).(type) {
	case *parse.IntLiteral:
		descriptor.Type = "int"
		descriptor.Default = defval.Value
	case *parse.FloatLiteral:
		descriptor.Type = "float"
		descriptor.Default = defval.Value
	case *parse.BooleanLiteral:
		descriptor.Type = "bool"
		descriptor.Default = defval.Value
	case *parse.StringLiteral:
		descriptor.Type = "string"
		descriptor.Default = defval.Value
	}

	if title, ok := argument(call, "title", 1).(*parse.StringLiteral); ok {
		descriptor.Title = title.Value
	}

	e.ir.Inputs = append(e.ir.Inputs, descriptor)
	e.ir.DefaultInputs[name] = descriptor.Default
}

// lowerPlotCall records a plot descriptor and lowers the call to the chart
// callback: chart.plot(expr, title, color).
func (e *emitter) lowerPlotCall(call *parse.CallExpression, method, kind string) jsast.Stmt {
	descriptor := PlotDescriptor{Kind: kind}

	args := []jsast.Expr{}
	if value := argument(call, "series", 0); value != nil {
		args = append(args, e.lowerExpr(value))
	}

	//the descriptor only records literal values, non-literal arguments still
	//have to reach the chart callback
	var titleExpr, colorExpr jsast.Expr
	if titleArg := argument(call, "title", 1); titleArg != nil {
		if title, ok := titleArg.(*parse.StringLiteral); ok {
			descriptor.Title = title.Value
			titleExpr = &jsast.StringLit{Value: title.Value}
		} else {
			titleExpr = e.lowerExpr(titleArg)
		}
	}
	if colorArg := argument(call, "color", 2); colorArg != nil {
		if value := colorValue(colorArg); value != "" {
			descriptor.Color = value
			colorExpr = &jsast.StringLit{Value: value}
		} else {
			colorExpr = e.lowerExpr(colorArg)
		}
	}

	if titleExpr == nil && colorExpr != nil {
		titleExpr = &jsast.StringLit{Value: ""}
	}
	if titleExpr != nil {
		args = append(args, titleExpr)
	}
	if colorExpr != nil {
		args = append(args, colorExpr)
	}

	e.ir.Plots = append(e.ir.Plots, descriptor)

	return &jsast.ExprStmt{X: &jsast.Call{
		Callee: &jsast.Member{Object: &jsast.Ident{Name: "chart"}, Property: method},
		Args:   args,
	}}
}

func colorValue(node parse.Node) string {
	switch n := node.(type) {
	case *parse.MemberExpression:
		if object, ok := n.Object.(*parse.IdentifierLiteral); ok && object.Name == "color" {
			if hex, ok := colorPalette[n.Property.Name]; ok {
				return hex
			}
			return n.Property.Name
		}
	case *parse.StringLiteral:
		return n.Value
	}
	return ""
}

func contextField(field string) jsast.Expr {
	return &jsast.Member{Object: &jsast.Ident{Name: "$"}, Property: field}
}

func seriesMethod(object jsast.Expr, method string, args ...jsast.Expr) jsast.Expr {
	return &jsast.Call{
		Callee: &jsast.Member{Object: object, Property: method},
		Args:   args,
	}
}

// buildPrelude declares the shared value containers in deterministic order:
// the canonical OHLCV fields, the referenced derived composite price fields,
// the referenced calendar fields, then the bar-index constant.
func (e *emitter) buildPrelude() []jsast.Stmt {
	var stmts []jsast.Stmt

	for _, field := range ohlcvFields {
		stmts = append(stmts, &jsast.ConstDecl{Name: field, Value: contextField(field)})
	}

	for _, field := range derivedFieldOrder {
		if !e.referenced[field] {
			continue
		}
		var value jsast.Expr
		switch field {
		case "hl2":
			value = seriesMethod(
				seriesMethod(&jsast.Ident{Name: "high"}, "add", &jsast.Ident{Name: "low"}),
				"div", &jsast.NumberLit{Raw: "2"},
			)
		case "hlc3":
			value = seriesMethod(
				seriesMethod(
					seriesMethod(&jsast.Ident{Name: "high"}, "add", &jsast.Ident{Name: "low"}),
					"add", &jsast.Ident{Name: "close"},
				),
				"div", &jsast.NumberLit{Raw: "3"},
			)
		case "ohlc4":
			value = seriesMethod(
				seriesMethod(
					seriesMethod(
						seriesMethod(&jsast.Ident{Name: "open"}, "add", &jsast.Ident{Name: "high"}),
						"add", &jsast.Ident{Name: "low"},
					),
					"add", &jsast.Ident{Name: "close"},
				),
				"div", &jsast.NumberLit{Raw: "4"},
			)
		}
		stmts = append(stmts, &jsast.ConstDecl{Name: field, Value: value})
	}

	for _, field := range calendarFieldOrder {
		if e.referenced[field] {
			stmts = append(stmts, &jsast.ConstDecl{Name: field, Value: contextField(field)})
		}
	}

	stmts = append(stmts, &jsast.ConstDecl{Name: "bar_index", Value: contextField("index")})

	return stmts
}

func (e *emitter) assemble(body []jsast.Stmt) string {
	var b strings.Builder

	b.WriteString("// Code generated by pinec. DO NOT EDIT.\n")
	b.WriteString(e.imports.ImportStatement())
	b.WriteString("\n\n")

	b.WriteString("export function run($, inputs, chart) {\n")
	b.WriteString(jsast.PrintStmts(e.buildPrelude(), 1))
	if len(body) > 0 {
		b.WriteString("\n")
		b.WriteString(jsast.PrintStmts(body, 1))
	}
	b.WriteString("}\n\n")

	meta := e.ir.Meta
	b.WriteString("export const meta = { title: ")
	b.WriteString(strconv.Quote(meta.Title))
	b.WriteString(", shortTitle: ")
	b.WriteString(strconv.Quote(meta.ShortTitle))
	b.WriteString(", overlay: ")
	b.WriteString(strconv.FormatBool(meta.Overlay))
	b.WriteString(" };\n")

	b.WriteString("export const defaultInputs = {")
	for i, input := range e.ir.Inputs {
		if i != 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(input.Name)
		b.WriteString(": ")
		b.WriteString(jsValue(input.Default))
	}
	if len(e.ir.Inputs) > 0 {
		b.WriteString(" ")
	}
	b.WriteString("};\n")

	b.WriteString("export const inputs = [")
	for i, input := range e.ir.Inputs {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString("{ name: ")
		b.WriteString(strconv.Quote(input.Name))
		if input.Title != "" {
			b.WriteString(", title: ")
			b.WriteString(strconv.Quote(input.Title))
		}
		b.WriteString(", type: ")
		b.WriteString(strconv.Quote(input.Type))
		b.WriteString(", default: ")
		b.WriteString(jsValue(input.Default))
		b.WriteString(" }")
	}
	b.WriteString("];\n")

	b.WriteString("export const plots = [")
	for i, plot := range e.ir.Plots {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString("{ kind: ")
		b.WriteString(strconv.Quote(plot.Kind))
		if plot.Title != "" {
			b.WriteString(", title: ")
			b.WriteString(strconv.Quote(plot.Title))
		}
		if plot.Color != "" {
			b.WriteString(", color: ")
			b.WriteString(strconv.Quote(plot.Color))
		}
		b.WriteString(" }")
	}
	b.WriteString("];\n")

	return b.String()
}

func jsValue(v any) string {
	switch value := v.(type) {
	case string:
		return strconv.Quote(value)
	case bool:
		return strconv.FormatBool(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
	return "NaN"
}
