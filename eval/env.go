package eval

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

// Env maps names to the unevaluated terms most recently bound to them.
type Env struct {
	terms map[string]syntax.Term
}

func NewEnv() *Env {
	return &Env{terms: make(map[string]syntax.Term)}
}

func (e *Env) Get(name string) (syntax.Term, bool) {
	t, ok := e.terms[name]
	return t, ok
}

// Set binds name to t, replacing any earlier binding. t is stored as is.
func (e *Env) Set(name string, t syntax.Term) {
	e.terms[name] = t
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := maps.Keys(e.terms)
	sort.Strings(names)
	return names
}

func (e *Env) Len() int {
	return len(e.terms)
}

// Clear removes every binding.
func (e *Env) Clear() {
	e.terms = make(map[string]syntax.Term)
}

// resolve looks name up, following bindings to other variables until it
// reaches a non-variable term or a name with no binding. An unbound name
// resolves to itself.
func (e *Env) resolve(v syntax.Var) syntax.Term {
	t, ok := e.terms[v.Name]
	if !ok {
		return v
	}
	for {
		next, ok := t.(syntax.Var)
		if !ok {
			return t
		}
		bound, ok := e.terms[next.Name]
		if !ok {
			return t
		}
		t = bound
	}
}
