package syntax

import (
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
)

const (
	darkGray = "\x1b[90m"
	yellow   = "\x1b[33m"
	cyan     = "\x1b[36m"
	green    = "\x1b[32m"
	pink     = "\x1b[35m"
	italic   = "\x1b[3m"
	reset    = "\x1b[0m"
)

// ColorEnabled reports whether ANSI colors should be written to f.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer renders terms for people. The zero value prints plain text that
// matches Term.String.
type Printer struct {
	Color bool
}

func (p Printer) paint(color, s string) string {
	if !p.Color {
		return s
	}
	return color + s + reset
}

func (p Printer) Var(v string) string {
	if !p.Color || v == "" {
		return v
	}
	switch {
	case v == "true" || v == "false":
		return cyan + italic + v + reset
	case unicode.IsUpper([]rune(v)[0]):
		return pink + v + reset
	case strings.IndexFunc(v, func(r rune) bool { return !unicode.IsDigit(r) }) < 0:
		return green + v + reset
	}
	return italic + v + reset
}

func (p Printer) Type(t Ty) string {
	switch t := t.(type) {
	case TyAny:
		return p.paint(yellow, "*")
	case TyId:
		return p.paint(pink, string(t))
	case TyArr:
		from := p.Type(t.From)
		if _, ok := t.From.(TyArr); ok {
			from = p.paint(darkGray, "(") + from + p.paint(darkGray, ")")
		}
		return from + p.paint(darkGray, " -> ") + p.Type(t.To)
	}
	return ""
}

func (p Printer) Term(t Term) string {
	switch t := t.(type) {
	case Var:
		if t.Type == nil {
			return p.Var(t.Name)
		}
		return p.paint(darkGray, "(") + p.Var(t.Name) + p.paint(darkGray, ": ") + p.Type(t.Type) + p.paint(darkGray, ")")
	case Abs:
		param := p.Var(t.Param)
		if t.Type != nil {
			param += p.paint(darkGray, ": ") + p.Type(t.Type)
		}
		return p.paint(yellow, "λ") + param + p.paint(darkGray, ".") + " " + p.Term(t.Body)
	case App:
		fn := p.Term(t.Fn)
		if _, ok := t.Fn.(Abs); ok {
			fn = p.paint(darkGray, "(") + fn + p.paint(darkGray, ")")
		}
		return p.paint(darkGray, "(") + fn + " " + p.Term(t.Arg) + p.paint(darkGray, ")")
	}
	return ""
}

// Assign renders a binding as it appears in source.
func (p Printer) Assign(name string, ty Ty, t Term) string {
	head := p.Var(name)
	if ty != nil {
		head += p.paint(darkGray, ":") + " " + p.Type(ty)
	}
	return head + " = " + p.Term(t) + p.paint(darkGray, ";")
}

func (p Printer) Line(n int) string {
	return p.paint(darkGray, strings.Repeat("-", n))
}
