// Package symbols implements the lexical scope tree and the symbol table of
// the checker: declarations go to the innermost active scope plus a flat
// whole-program index, lookups walk the scope chain from the inside out.
package symbols

import (
	"errors"

	"github.com/pinelang/pinec/internal/sourcecode"
	"github.com/pinelang/pinec/internal/types"
)

var ErrDuplicateDeclaration = errors.New("symbol already declared in the current scope")

type ScopeKind uint8

const (
	GlobalScope ScopeKind = iota
	FunctionScope
	BlockScope
	LoopScope
)

func (k ScopeKind) String() string {
	switch k {
	case GlobalScope:
		return "global"
	case FunctionScope:
		return "function"
	case BlockScope:
		return "block"
	case LoopScope:
		return "loop"
	}
	return "unknown"
}

type SymbolKind uint8

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	TypeSymbol
	MethodSymbol
	ParameterSymbol
)

type Symbol struct {
	Name           string
	Kind           SymbolKind
	Type           types.Type
	IsConst        bool
	IsSeries       bool
	IsReassignable bool
	IsBuiltin      bool
	DeclaredAt     sourcecode.NodeSpan

	//Scope is a non-owning back-reference to the scope holding the
	//declaration, it always points to a live ancestor of the scope that is
	//active when the symbol is read.
	Scope *Scope
}

// A Scope holds the bindings of one lexical construct. Scopes form a tree
// owned by the Table; Parent is a non-owning back-reference.
type Scope struct {
	id      int
	kind    ScopeKind
	parent  *Scope
	symbols map[string]*Symbol
}

func (s *Scope) Kind() ScopeKind {
	return s.kind
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// A Table tracks the active scope chain during a walk of the AST and keeps a
// flat name index for whole-program queries. Not safe for concurrent use.
type Table struct {
	global  *Scope
	current *Scope
	nextID  int

	//flat whole-program index, independent of scope nesting
	index map[string][]*Symbol
}

func NewTable() *Table {
	global := &Scope{
		id:      0,
		kind:    GlobalScope,
		symbols: map[string]*Symbol{},
	}
	return &Table{
		global:  global,
		current: global,
		nextID:  1,
		index:   map[string][]*Symbol{},
	}
}

func (t *Table) GlobalScope() *Scope {
	return t.global
}

func (t *Table) CurrentScope() *Scope {
	return t.current
}

// EnterScope creates a child of the current scope and makes it active.
func (t *Table) EnterScope(kind ScopeKind) *Scope {
	scope := &Scope{
		id:      t.nextID,
		kind:    kind,
		parent:  t.current,
		symbols: map[string]*Symbol{},
	}
	t.nextID++
	t.current = scope
	return scope
}

// ExitScope pops the current scope. The global scope is never destroyed:
// exiting it is a no-op.
func (t *Table) ExitScope() {
	if t.current.parent != nil {
		t.current = t.current.parent
	}
}

// Declare inserts the symbol into the innermost active scope and the flat
// index. Redeclaring a name bound in the same scope is rejected; shadowing a
// binding of an enclosing scope is allowed.
func (t *Table) Declare(sym *Symbol) error {
	if _, ok := t.current.symbols[sym.Name]; ok {
		return ErrDuplicateDeclaration
	}
	sym.Scope = t.current
	t.current.symbols[sym.Name] = sym
	t.index[sym.Name] = append(t.index[sym.Name], sym)
	return nil
}

// Lookup walks the scope chain from the innermost scope outwards and returns
// the nearest binding.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for scope := t.current; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// IsInCurrentScope checks only the innermost scope, it is used to tell
// redeclarations apart from shadowing.
func (t *Table) IsInCurrentScope(name string) bool {
	_, ok := t.current.symbols[name]
	return ok
}

// ResolveType implements types.Resolver.
func (t *Table) ResolveType(name string) (types.Type, bool) {
	sym, ok := t.Lookup(name)
	if !ok {
		return types.UnknownType, false
	}
	return sym.Type, true
}

func (t *Table) IsInsideLoop() bool {
	return t.isInsideScopeOfKind(LoopScope)
}

func (t *Table) IsInsideFunction() bool {
	return t.isInsideScopeOfKind(FunctionScope)
}

func (t *Table) isInsideScopeOfKind(kind ScopeKind) bool {
	for scope := t.current; scope != nil; scope = scope.parent {
		if scope.kind == kind {
			return true
		}
	}
	return false
}

// AllDeclarations returns all the symbols ever declared under the given name,
// in declaration order, regardless of scope nesting.
func (t *Table) AllDeclarations(name string) []*Symbol {
	return t.index[name]
}
