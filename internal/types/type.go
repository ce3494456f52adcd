// Package types implements the script type algebra and the structural
// inference of the "time-series vs scalar" distinction: the language has no
// series annotations, so series-ness is propagated transitively through
// expression nesting.
package types

type Kind uint8

const (
	UnknownKind Kind = iota
	IntKind
	FloatKind
	BoolKind
	StringKind
	NaKind
	SeriesKind
	FunctionKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case NaKind:
		return "na"
	case SeriesKind:
		return "series"
	case FunctionKind:
		return "function"
	}
	return "unknown"
}

type FuncSignature struct {
	Parameters []Type
	Result     Type

	//MinArgCount/MaxArgCount delimit the accepted argument counts,
	//MaxArgCount is -1 when unbounded.
	MinArgCount int
	MaxArgCount int
}

// A Type is a small tagged union: int | float | bool | string | na |
// series<scalar> | function | unknown. A series only wraps a scalar element
// kind, series<series<T>> is unrepresentable.
type Type struct {
	kind Kind
	elem Kind //element kind, only meaningful when kind == SeriesKind
	fn   *FuncSignature
}

var (
	UnknownType = Type{kind: UnknownKind}
	IntType     = Type{kind: IntKind}
	FloatType   = Type{kind: FloatKind}
	BoolType    = Type{kind: BoolKind}
	StringType  = Type{kind: StringKind}
	NaType      = Type{kind: NaKind}
)

// SeriesOf returns series<elem>. Wrapping a series or a function collapses
// the element to the scalar it carries, preserving the no-nested-series
// invariant.
func SeriesOf(elem Kind) Type {
	if elem == SeriesKind || elem == FunctionKind {
		elem = UnknownKind
	}
	return Type{kind: SeriesKind, elem: elem}
}

func FunctionType(sig *FuncSignature) Type {
	return Type{kind: FunctionKind, fn: sig}
}

func (t Type) Kind() Kind {
	return t.kind
}

func (t Type) IsSeries() bool {
	return t.kind == SeriesKind
}

func (t Type) IsUnknown() bool {
	return t.kind == UnknownKind
}

func (t Type) IsFunction() bool {
	return t.kind == FunctionKind
}

// ElemKind returns the element kind of a series, or the type's own kind for
// a scalar.
func (t Type) ElemKind() Kind {
	if t.kind == SeriesKind {
		return t.elem
	}
	return t.kind
}

// Elem strips one level of series wrapping: series<T> -> T. Applying it to a
// non-series yields unknown.
func (t Type) Elem() Type {
	if t.kind != SeriesKind {
		return UnknownType
	}
	return Type{kind: t.elem}
}

func (t Type) Signature() *FuncSignature {
	return t.fn
}

// IsNumeric reports whether the type is int, float, na, unknown or a series
// of those. na and unknown are permissive on purpose: inference must stay
// total and diagnostics are reported elsewhere.
func (t Type) IsNumeric() bool {
	switch t.ElemKind() {
	case IntKind, FloatKind, NaKind, UnknownKind:
		return true
	}
	return false
}

// IsBoolish reports whether the type can be used as a condition.
func (t Type) IsBoolish() bool {
	switch t.ElemKind() {
	case BoolKind, NaKind, UnknownKind:
		return true
	}
	return false
}

func (t Type) Equal(other Type) bool {
	return t.kind == other.kind && t.elem == other.elem && t.fn == other.fn
}

func (t Type) String() string {
	switch t.kind {
	case SeriesKind:
		return "series<" + t.elem.String() + ">"
	case FunctionKind:
		return "function"
	}
	return t.kind.String()
}

// PromoteScalar applies the arithmetic promotion rule to two scalar element
// kinds: float wins over int, na absorbs the other kind.
func PromoteScalar(a, b Kind) Kind {
	if a == NaKind {
		return b
	}
	if b == NaKind {
		return a
	}
	if a == FloatKind || b == FloatKind {
		return FloatKind
	}
	if a == IntKind && b == IntKind {
		return IntKind
	}
	if a == b {
		return a
	}
	return UnknownKind
}
