package eval

import (
	"github.com/hashicorp/go-set/v2"

	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

// StepFunc receives a rendering of an intermediate term. It is purely
// observational.
type StepFunc func(step string)

// Stepper decides whether and how intermediate terms are reported.
type Stepper struct {
	Verbose bool
	Printer syntax.Printer
	Step    StepFunc
}

func (s Stepper) tracing() bool {
	return s.Verbose && s.Step != nil
}

// BetaReduce performs one round of normal-order β-reduction. Names in bound
// are parameters of enclosing abstractions and are never looked up in env.
func BetaReduce(t syntax.Term, env *Env, bound *set.Set[string]) syntax.Term {
	switch t := t.(type) {
	case syntax.Var:
		return t
	case syntax.Abs:
		if bound.Insert(t.Param) {
			defer bound.Remove(t.Param)
		}
		return syntax.Abs{Param: t.Param, Type: t.Type, Body: BetaReduce(t.Body, env, bound), At: t.At}
	case syntax.App:
		// Free variables in function position are resolved only here, when
		// they are about to be applied.
		fn := t.Fn
		if v, ok := fn.(syntax.Var); ok && !bound.Contains(v.Name) {
			fn = env.resolve(v)
		}
		if abs, ok := fn.(syntax.Abs); ok {
			return Substitute(abs.Body, abs.Param, t.Arg)
		}
		return syntax.App{Fn: BetaReduce(fn, env, bound), Arg: BetaReduce(t.Arg, env, bound), At: t.At}
	}
	panic("unreachable")
}

// InlineVars replaces every free variable that has a binding in env with
// its resolved value. Inlined values are not themselves inlined.
func InlineVars(t syntax.Term, env *Env) syntax.Term {
	return inline(t, env, set.New[string](0))
}

func inline(t syntax.Term, env *Env, bound *set.Set[string]) syntax.Term {
	switch t := t.(type) {
	case syntax.Var:
		if bound.Contains(t.Name) {
			return t
		}
		return env.resolve(t)
	case syntax.Abs:
		if bound.Insert(t.Param) {
			defer bound.Remove(t.Param)
		}
		return syntax.Abs{Param: t.Param, Type: t.Type, Body: inline(t.Body, env, bound), At: t.At}
	case syntax.App:
		return syntax.App{Fn: inline(t.Fn, env, bound), Arg: inline(t.Arg, env, bound), At: t.At}
	}
	panic("unreachable")
}

// ReduceToNormalForm alternates β-reduction and inlining until neither
// changes the term. It does not return for terms without a normal form.
func ReduceToNormalForm(t syntax.Term, env *Env, s Stepper) syntax.Term {
	for {
		next := BetaReduce(t, env, set.New[string](0))
		if syntax.TermEqual(next, t) {
			next = InlineVars(next, env)
			if syntax.TermEqual(next, t) {
				return t
			}
		}
		t = next
		if s.tracing() {
			s.Step(s.Printer.Term(t))
		}
	}
}

// EvalCommand evaluates one command. A binding stores its body unevaluated
// and returns it, so recursive definitions only unfold when used. A bare
// term is inlined and reduced to normal form. Type definitions have no
// runtime meaning and yield nil.
func EvalCommand(cmd syntax.Command, env *Env, s Stepper) syntax.Term {
	switch cmd := cmd.(type) {
	case syntax.Bind:
		if s.tracing() {
			s.Step(s.Printer.Assign(cmd.Name, cmd.Type, cmd.Term))
		}
		env.Set(cmd.Name, cmd.Term)
		return cmd.Term
	case syntax.Eval:
		t := InlineVars(cmd.Term, env)
		if s.tracing() {
			s.Step(s.Printer.Term(t))
		}
		return ReduceToNormalForm(t, env, s)
	case syntax.TypeDef:
		return nil
	}
	panic("unreachable")
}
