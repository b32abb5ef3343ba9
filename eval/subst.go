// Package eval reduces terms to normal form.
//
// Reduction is normal order: the outermost redex fires first and arguments
// are substituted unevaluated. Free variables are resolved lazily through an
// Env, which is what lets a binding refer to itself.
package eval

import (
	"github.com/hashicorp/go-set/v2"

	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

// FreeVars collects the variables of t that no enclosing abstraction binds.
//
// See https://en.wikipedia.org/wiki/Lambda_calculus#Free_and_bound_variables.
func FreeVars(t syntax.Term) *set.Set[string] {
	switch t := t.(type) {
	case syntax.Var:
		return set.From([]string{t.Name})
	case syntax.Abs:
		s := FreeVars(t.Body)
		s.Remove(t.Param)
		return s
	case syntax.App:
		s := FreeVars(t.Fn)
		s.InsertSet(FreeVars(t.Arg))
		return s
	}
	panic("unreachable")
}

// names collects every variable and parameter name occurring in t.
func names(t syntax.Term, acc *set.Set[string]) *set.Set[string] {
	switch t := t.(type) {
	case syntax.Var:
		acc.Insert(t.Name)
	case syntax.Abs:
		acc.Insert(t.Param)
		names(t.Body, acc)
	case syntax.App:
		names(t.Fn, acc)
		names(t.Arg, acc)
	}
	return acc
}

// pickFreshName primes name until it is not in taken.
func pickFreshName(taken *set.Set[string], name string) string {
	if taken.Contains(name) {
		return pickFreshName(taken, name+"'")
	}
	return name
}

// Substitute replaces the free occurrences of name in t with value, renaming
// bound variables that would capture a free variable of value.
//
// See https://en.wikipedia.org/wiki/Lambda_calculus#Substitution.
func Substitute(t syntax.Term, name string, value syntax.Term) syntax.Term {
	return subst(t, name, value, FreeVars(value))
}

func subst(t syntax.Term, name string, value syntax.Term, fv *set.Set[string]) syntax.Term {
	switch t := t.(type) {
	case syntax.Var:
		if t.Name == name {
			return value
		}
		return t
	case syntax.App:
		return syntax.App{Fn: subst(t.Fn, name, value, fv), Arg: subst(t.Arg, name, value, fv), At: t.At}
	case syntax.Abs:
		if t.Param == name {
			return t
		}
		if fv.Contains(t.Param) {
			// The fresh name must not occur anywhere in the body either, or
			// renaming would capture it.
			fresh := pickFreshName(names(t.Body, fv.Copy()), t.Param)
			body := subst(RenameVar(t.Body, t.Param, fresh), name, value, fv)
			return syntax.Abs{Param: fresh, Type: t.Type, Body: body, At: t.At}
		}
		return syntax.Abs{Param: t.Param, Type: t.Type, Body: subst(t.Body, name, value, fv), At: t.At}
	}
	panic("unreachable")
}

// RenameVar renames every occurrence of old in t, binders included.
func RenameVar(t syntax.Term, old, new string) syntax.Term {
	switch t := t.(type) {
	case syntax.Var:
		if t.Name == old {
			t.Name = new
		}
		return t
	case syntax.Abs:
		if t.Param == old {
			t.Param = new
		}
		t.Body = RenameVar(t.Body, old, new)
		return t
	case syntax.App:
		t.Fn = RenameVar(t.Fn, old, new)
		t.Arg = RenameVar(t.Arg, old, new)
		return t
	}
	panic("unreachable")
}
