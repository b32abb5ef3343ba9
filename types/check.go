// Package types implements a bidirectional type checker. Types are either
// declared or synthesized from the structure of a term; nothing is solved
// for. The wildcard * matches every type.
package types

import (
	"errors"

	"github.com/samber/lo"

	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

// ResolveType replaces type names bound in ctx by their bindings.
func ResolveType(ctx *Context, ty syntax.Ty) syntax.Ty {
	switch ty := ty.(type) {
	case syntax.TyAny:
		return ty
	case syntax.TyId:
		if bound, ok := ctx.Lookup(string(ty)); ok {
			return bound
		}
		return ty
	case syntax.TyArr:
		return syntax.TyArr{From: ResolveType(ctx, ty.From), To: ResolveType(ctx, ty.To)}
	}
	panic("unreachable")
}

// TypeEquals is structural equality in which * matches anything on either
// side. It is not transitive: Nat and Bool both match *, but not each other.
func TypeEquals(l, r syntax.Ty) bool {
	if _, ok := l.(syntax.TyAny); ok {
		return true
	}
	switch r := r.(type) {
	case syntax.TyAny:
		return true
	case syntax.TyId:
		l, ok := l.(syntax.TyId)
		return ok && l == r
	case syntax.TyArr:
		l, ok := l.(syntax.TyArr)
		return ok && TypeEquals(l.From, r.From) && TypeEquals(l.To, r.To)
	}
	return false
}

// arrow returns ty as a function type, looking through an alias name. The
// wildcard is not a function type.
func arrow(ctx *Context, ty syntax.Ty) (syntax.TyArr, bool) {
	if id, ok := ty.(syntax.TyId); ok {
		ty = ResolveType(ctx, id)
	}
	arr, ok := ty.(syntax.TyArr)
	return arr, ok
}

// TypeOf synthesizes the type of t: Γ ⊢ t ⇒ T.
func TypeOf(ctx *Context, t syntax.Term) (syntax.Ty, error) {
	switch t := t.(type) {
	case syntax.Var:
		ty, ok := ctx.Lookup(t.Name)
		if t.Type != nil && ok {
			if want := ResolveType(ctx, t.Type); !TypeEquals(ty, want) {
				return nil, &MismatchError{Expected: want, Found: ty, Pos: t.At}
			}
		}
		if !ok {
			return nil, &UnboundError{Name: t.Name, Pos: t.At}
		}
		return ty, nil
	case syntax.Abs:
		var paramTy syntax.Ty = syntax.TyId(t.Param)
		if t.Type != nil {
			paramTy = ResolveType(ctx, t.Type)
		}
		var bodyTy syntax.Ty
		err := ctx.With(t.Param, paramTy, func() (err error) {
			bodyTy, err = TypeOf(ctx, t.Body)
			return err
		})
		if err != nil {
			return nil, err
		}
		return syntax.TyArr{From: paramTy, To: bodyTy}, nil
	case syntax.App:
		fnTy, err := TypeOf(ctx, t.Fn)
		if err != nil {
			return nil, err
		}
		arr, ok := arrow(ctx, fnTy)
		if !ok {
			return nil, &NotAFunctionError{Type: fnTy, Pos: t.At}
		}
		if err := checkArg(ctx, t, arr.From); err != nil {
			return nil, err
		}
		return arr.To, nil
	}
	panic("unreachable")
}

// checkArg checks the argument of app against the parameter type. A
// mismatch of a synthesized argument is reported at the application.
func checkArg(ctx *Context, app syntax.App, param syntax.Ty) error {
	if _, ok := app.Arg.(syntax.Abs); ok {
		return Check(ctx, app.Arg, param)
	}
	argTy, err := TypeOf(ctx, app.Arg)
	if err != nil {
		return err
	}
	if !TypeEquals(param, argTy) {
		return &MismatchError{Expected: param, Found: argTy, Pos: app.At}
	}
	return nil
}

// Check verifies that t has type expected: Γ ⊢ t ⇐ T.
func Check(ctx *Context, t syntax.Term, expected syntax.Ty) error {
	if abs, ok := t.(syntax.Abs); ok {
		if arr, ok := arrow(ctx, expected); ok {
			paramTy := arr.From
			if abs.Type != nil {
				paramTy = ResolveType(ctx, abs.Type)
				if !TypeEquals(arr.From, paramTy) {
					return &MismatchError{Expected: arr.From, Found: paramTy, Pos: abs.At}
				}
			}
			return ctx.With(abs.Param, paramTy, func() error {
				return Check(ctx, abs.Body, arr.To)
			})
		}
	}
	ty, err := TypeOf(ctx, t)
	if err != nil {
		return err
	}
	if !TypeEquals(expected, ty) {
		return &MismatchError{Expected: expected, Found: ty, Pos: t.Pos()}
	}
	return nil
}

// CheckBind checks name [: T] = body and records the type of name in ctx.
//
// If name already has a type, body is checked against it and a declared T
// must match it: the first declaration wins. Otherwise name is bound to the
// declared T before body is checked against it, so body may refer to name,
// or, with no declaration, to the type synthesized for body.
func CheckBind(ctx *Context, b syntax.Bind) (syntax.Ty, error) {
	ty, err := TypeOf(ctx, syntax.Var{Name: b.Name, Type: b.Type, At: b.At})
	if err == nil {
		if err := Check(ctx, b.Term, ty); err != nil {
			return nil, err
		}
		return ty, nil
	}
	var unbound *UnboundError
	if !errors.As(err, &unbound) {
		return nil, err
	}
	if b.Type != nil {
		declared := ResolveType(ctx, b.Type)
		ctx.Bind(b.Name, declared)
		if err := Check(ctx, b.Term, declared); err != nil {
			ctx.Unbind(b.Name)
			return nil, err
		}
		return declared, nil
	}
	inferred, err := TypeOf(ctx, b.Term)
	if err != nil {
		return nil, err
	}
	ctx.Bind(b.Name, inferred)
	return inferred, nil
}

// CheckCommand checks one command against ctx, updating ctx with bindings
// and type aliases.
func CheckCommand(ctx *Context, cmd syntax.Command) (syntax.Ty, error) {
	switch cmd := cmd.(type) {
	case syntax.Bind:
		return CheckBind(ctx, cmd)
	case syntax.TypeDef:
		ty := ResolveType(ctx, cmd.Type)
		ctx.Bind(cmd.Name, ty)
		return ty, nil
	case syntax.Eval:
		return TypeOf(ctx, cmd.Term)
	}
	panic("unreachable")
}

// CheckProgram checks every command in order and stops at the first error.
// On success the type definitions, which mean nothing at run time, are
// removed from prog.
func CheckProgram(ctx *Context, prog *syntax.Program) error {
	for _, cmd := range *prog {
		if _, err := CheckCommand(ctx, cmd); err != nil {
			return err
		}
	}
	*prog = lo.Filter(*prog, func(cmd syntax.Command, _ int) bool {
		_, isDef := cmd.(syntax.TypeDef)
		return !isDef
	})
	return nil
}
