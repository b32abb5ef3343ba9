// Package session runs programs against one evaluation environment and one
// typing context, the way the REPL and the file runner share them.
package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/samber/lo"

	"github.com/WilliamRagstad/tlc-bidir/eval"
	"github.com/WilliamRagstad/tlc-bidir/std"
	"github.com/WilliamRagstad/tlc-bidir/syntax"
	"github.com/WilliamRagstad/tlc-bidir/types"
)

// separatorWidth is the width of the line printed between the traces of
// consecutive terms in verbose mode.
const separatorWidth = 20

type Options struct {
	Verbose   bool
	TypeCheck bool
	Printer   syntax.Printer
}

type Session struct {
	Env *eval.Env
	Ctx *types.Context
	Options
}

func New(opts Options) *Session {
	return &Session{Env: eval.NewEnv(), Ctx: types.NewContext(), Options: opts}
}

func (s *Session) stepper(out eval.StepFunc) eval.Stepper {
	return eval.Stepper{Verbose: s.Verbose, Printer: s.Printer, Step: out}
}

// Run parses, optionally type checks, and evaluates src. Statements that
// fail to parse are reported in the returned error and skipped. A type
// error stops the whole program before anything is evaluated and leaves the
// typing context as it was.
//
// Without Verbose only the result of the last statement is sent to out,
// and only if that statement is a bare term. With Verbose every binding
// and reduction step is sent, and a separator line follows every bare term
// except the last statement.
func (s *Session) Run(src string, out eval.StepFunc) error {
	prog, parseErr := syntax.Parse(src)
	if s.TypeCheck {
		saved := s.Ctx.Clone()
		if err := types.CheckProgram(s.Ctx, &prog); err != nil {
			s.Ctx.Restore(saved)
			return errors.Join(parseErr, err)
		}
	}
	st := s.stepper(out)
	for i, cmd := range prog {
		res := eval.EvalCommand(cmd, s.Env, st)
		if _, ok := cmd.(syntax.Eval); !ok || out == nil {
			continue
		}
		last := i == len(prog)-1
		switch {
		case s.Verbose && !last:
			out(s.Printer.Line(separatorWidth))
		case !s.Verbose && last:
			out(s.Printer.Term(res))
		}
	}
	return parseErr
}

// RunFile runs the program in the file at path.
func (s *Session) RunFile(path string, out eval.StepFunc) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := s.Run(string(src), out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadStd runs the standard library. It is untyped, so it is never type
// checked.
func (s *Session) LoadStd(out eval.StepFunc) error {
	typeCheck := s.TypeCheck
	s.TypeCheck = false
	defer func() { s.TypeCheck = typeCheck }()
	if err := s.Run(std.Source, out); err != nil {
		return fmt.Errorf("%s: %w", std.Name, err)
	}
	return nil
}

// TypeOf synthesizes the type of the single term in src.
func (s *Session) TypeOf(src string) (syntax.Ty, error) {
	t, err := syntax.ParseTerm(src)
	if err != nil {
		return nil, err
	}
	return types.TypeOf(s.Ctx, t)
}

// Bindings renders every binding in the environment as source, with its
// type when the context has one.
func (s *Session) Bindings() []string {
	return lo.Map(s.Env.Names(), func(name string, _ int) string {
		t, _ := s.Env.Get(name)
		ty, _ := s.Ctx.Lookup(name)
		return s.Printer.Assign(name, ty, t)
	})
}

// Types renders every entry of the typing context as name : T.
func (s *Session) Types() []string {
	return lo.Map(s.Ctx.Names(), func(name string, _ int) string {
		ty, _ := s.Ctx.Lookup(name)
		return s.Printer.Var(name) + " : " + s.Printer.Type(ty)
	})
}

func (s *Session) ClearEnv() {
	s.Env.Clear()
}

func (s *Session) ClearContext() {
	s.Ctx.Clear()
}

// Reset forgets every binding and type.
func (s *Session) Reset() {
	s.ClearEnv()
	s.ClearContext()
}
