package jsast

// A BindingResolver gives the series-ness analysis read-only access to the
// initializer of a named binding.
type BindingResolver interface {
	ResolveBinding(name string) (Expr, bool)
}

// A Scope is an immutable-lookup binding environment for emitted code:
// name -> initializer expression. Scopes form a chain, lookups walk outwards.
type Scope struct {
	parent   *Scope
	bindings map[string]Expr
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:   parent,
		bindings: map[string]Expr{},
	}
}

func (s *Scope) Bind(name string, initializer Expr) {
	s.bindings[name] = initializer
}

func (s *Scope) ResolveBinding(name string) (Expr, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if init, ok := scope.bindings[name]; ok {
			return init, init != nil
		}
	}
	return nil, false
}
