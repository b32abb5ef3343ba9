// Package syntax defines terms, types and commands of the calculus together
// with the scanner, parser and printers that produce and consume them.
package syntax

import "strconv"

// Pos is a 1-based source position.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

type Term interface {
	isTerm()
	Pos() Pos
	String() string
}

// Var is a variable occurrence. Type is nil unless the occurrence is
// annotated, as in (x: Nat).
type Var struct {
	Name string
	Type Ty
	At   Pos
}

func (Var) isTerm()    {}
func (v Var) Pos() Pos { return v.At }

func (v Var) String() string {
	if v.Type == nil {
		return v.Name
	}
	return "(" + v.Name + ": " + v.Type.String() + ")"
}

type Abs struct {
	Param string
	Type  Ty
	Body  Term
	At    Pos
}

func (Abs) isTerm()    {}
func (a Abs) Pos() Pos { return a.At }

func (a Abs) String() string {
	if a.Type == nil {
		return "λ" + a.Param + ". " + a.Body.String()
	}
	return "λ" + a.Param + ": " + a.Type.String() + ". " + a.Body.String()
}

type App struct {
	Fn  Term
	Arg Term
	At  Pos
}

func (App) isTerm()    {}
func (a App) Pos() Pos { return a.At }

func (a App) String() string {
	if _, ok := a.Fn.(Abs); ok {
		return "((" + a.Fn.String() + ") " + a.Arg.String() + ")"
	}
	return "(" + a.Fn.String() + " " + a.Arg.String() + ")"
}

type Ty interface {
	isType()
	String() string
}

// TyAny is the wildcard type *. It matches every type.
type TyAny struct{}

func (TyAny) isType()        {}
func (TyAny) String() string { return "*" }

type TyId string

func (TyId) isType()          {}
func (t TyId) String() string { return string(t) }

type TyArr struct {
	From, To Ty
}

func (TyArr) isType() {}

func (t TyArr) String() string {
	if _, ok := t.From.(TyArr); ok {
		return "(" + t.From.String() + ") -> " + t.To.String()
	}
	return t.From.String() + " -> " + t.To.String()
}

type Command interface {
	isCommand()
	Pos() Pos
}

// Bind assigns Term to Name. Type is the declared type, or nil.
type Bind struct {
	Name string
	Type Ty
	Term Term
	At   Pos
}

func (Bind) isCommand() {}
func (b Bind) Pos() Pos { return b.At }

// TypeDef introduces the alias Name for Type.
type TypeDef struct {
	Name string
	Type Ty
	At   Pos
}

func (TypeDef) isCommand() {}
func (d TypeDef) Pos() Pos { return d.At }

type Eval struct {
	Term Term
}

func (Eval) isCommand() {}
func (e Eval) Pos() Pos { return e.Term.Pos() }

type Program []Command

// TermEqual reports whether a and b are the same term. Positions are
// ignored; annotations are not.
func TermEqual(a, b Term) bool {
	switch a := a.(type) {
	case Var:
		b, ok := b.(Var)
		return ok && a.Name == b.Name && TypeEqual(a.Type, b.Type)
	case Abs:
		b, ok := b.(Abs)
		return ok && a.Param == b.Param && TypeEqual(a.Type, b.Type) && TermEqual(a.Body, b.Body)
	case App:
		b, ok := b.(App)
		return ok && TermEqual(a.Fn, b.Fn) && TermEqual(a.Arg, b.Arg)
	}
	return a == nil && b == nil
}

// TypeEqual is strict structural equality; * only equals *.
func TypeEqual(a, b Ty) bool {
	switch a := a.(type) {
	case TyAny:
		_, ok := b.(TyAny)
		return ok
	case TyId:
		b, ok := b.(TyId)
		return ok && a == b
	case TyArr:
		b, ok := b.(TyArr)
		return ok && TypeEqual(a.From, b.From) && TypeEqual(a.To, b.To)
	}
	return a == nil && b == nil
}
