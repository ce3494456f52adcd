package codegen

import (
	"sort"
	"strings"
)

const runtimeModulePath = "@pinelang/runtime"

// The canonical ordering of runtime symbols in the emitted import statement.
var canonicalImportOrder = []string{"Series", "ta", "core", "math", "array", "na", "nz"}

// An ImportSet accumulates the runtime symbol names referenced during
// emission. It grows monotonically: imports are never removed mid-pass.
type ImportSet struct {
	names map[string]bool
}

func NewImportSet() *ImportSet {
	return &ImportSet{names: map[string]bool{}}
}

func (s *ImportSet) Add(name string) {
	s.names[name] = true
}

func (s *ImportSet) Has(name string) bool {
	return s.names[name]
}

// List returns the imports in canonical order, unknown names last in
// alphabetical order.
func (s *ImportSet) List() []string {
	var list []string
	seen := map[string]bool{}

	for _, name := range canonicalImportOrder {
		if s.names[name] {
			list = append(list, name)
			seen[name] = true
		}
	}

	var rest []string
	for name := range s.names {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(list, rest...)
}

// ImportStatement renders the JS import line for the accumulated set.
func (s *ImportSet) ImportStatement() string {
	return "import { " + strings.Join(s.List(), ", ") + " } from \"" + runtimeModulePath + "\";"
}
