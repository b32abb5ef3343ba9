package syntax

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

type parser struct {
	tokens []token
	end    Pos
}

func isIdent(t token) bool {
	return !slices.Contains(punctuation, t.Text)
}

func (p *parser) peek(i int) (token, bool) {
	if i >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[i], true
}

func (p *parser) peekIs(i int, text string) bool {
	t, ok := p.peek(i)
	return ok && t.Text == text
}

func (p *parser) next() (token, error) {
	if len(p.tokens) == 0 {
		return token{}, fmt.Errorf("%v: unexpected end of statement", p.end)
	}
	t := p.tokens[0]
	p.tokens = p.tokens[1:]
	return t, nil
}

func (p *parser) expect(text string) (token, error) {
	if len(p.tokens) == 0 {
		return token{}, fmt.Errorf("%v: expected %q, got end of statement", p.end, text)
	}
	t := p.tokens[0]
	if t.Text != text {
		return token{}, fmt.Errorf("%v: expected %q, got %q", t.At, text, t.Text)
	}
	p.tokens = p.tokens[1:]
	return t, nil
}

func (p *parser) ident() (token, error) {
	t, err := p.next()
	if err != nil {
		return token{}, fmt.Errorf("%v: expected identifier, got end of statement", p.end)
	}
	if !isIdent(t) {
		return token{}, fmt.Errorf("%v: expected identifier, got %q", t.At, t.Text)
	}
	return t, nil
}

func (p *parser) parseArrowType(from Ty) (Ty, error) {
	if _, err := p.expect("->"); err != nil {
		return nil, err
	}
	to, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return TyArr{from, to}, nil
}

func (p *parser) parseType() (Ty, error) {
	t, err := p.next()
	if err != nil {
		return nil, fmt.Errorf("%v: expected type, got end of statement", p.end)
	}
	var from Ty
	switch {
	case t.Text == "*":
		from = TyAny{}
	case t.Text == "(":
		if from, err = p.parseType(); err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
	case isIdent(t):
		from = TyId(t.Text)
	default:
		return nil, fmt.Errorf("%v: expected type, got %q", t.At, t.Text)
	}
	if p.peekIs(0, "->") {
		return p.parseArrowType(from)
	}
	return from, nil
}

func (p *parser) parseLambda(at Pos) (Term, error) {
	param, err := p.ident()
	if err != nil {
		return nil, err
	}
	var ty Ty
	if p.peekIs(0, ":") {
		p.tokens = p.tokens[1:]
		if ty, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect("."); err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return Abs{param.Text, ty, body, at}, nil
}

func (p *parser) parseParenExpr() (Term, error) {
	// (x: T) annotates a variable occurrence.
	if x, ok := p.peek(0); ok && isIdent(x) && p.peekIs(1, ":") {
		p.tokens = p.tokens[2:]
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return Var{x.Text, ty, x.At}, nil
	}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.peekIs(0, ":") {
		return nil, fmt.Errorf("%v: only variables can be annotated", p.tokens[0].At)
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *parser) startsAtom() bool {
	t, ok := p.peek(0)
	if !ok {
		return false
	}
	switch t.Text {
	case "(", "λ", `\`:
		return true
	}
	return isIdent(t)
}

func (p *parser) parseSingle() (Term, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch t.Text {
	case "(":
		return p.parseParenExpr()
	case "λ", `\`:
		return p.parseLambda(t.At)
	}
	if !isIdent(t) {
		return nil, fmt.Errorf("%v: unexpected token %q", t.At, t.Text)
	}
	return Var{Name: t.Text, At: t.At}, nil
}

// parseTerm parses a left-associative sequence of atoms. An abstraction
// body extends as far to the right as possible.
func (p *parser) parseTerm() (Term, error) {
	start, ok := p.peek(0)
	if !ok {
		return nil, fmt.Errorf("%v: expected term, got end of statement", p.end)
	}
	t, err := p.parseSingle()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		arg, err := p.parseSingle()
		if err != nil {
			return nil, err
		}
		t = App{t, arg, start.At}
	}
	return t, nil
}

func (p *parser) parseCommand() (Command, error) {
	first := p.tokens[0]
	switch {
	case first.Text == "type" && p.peekIs(2, "="):
		if name, _ := p.peek(1); isIdent(name) {
			p.tokens = p.tokens[3:]
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return TypeDef{name.Text, ty, first.At}, nil
		}
	case isIdent(first) && (p.peekIs(1, "=") || p.peekIs(1, ":")):
		p.tokens = p.tokens[1:]
		var ty Ty
		if p.peekIs(0, ":") {
			p.tokens = p.tokens[1:]
			var err error
			if ty, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect("="); err != nil {
			return nil, err
		}
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return Bind{first.Text, ty, body, first.At}, nil
	}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return Eval{t}, nil
}

func (p *parser) done() error {
	if len(p.tokens) != 0 {
		t := p.tokens[0]
		return fmt.Errorf("%v: unexpected token %q", t.At, t.Text)
	}
	return nil
}

// splitStatements groups tokens into statements separated by ";". Empty
// statements are dropped.
func splitStatements(tokens []token) (stmts [][]token, ends []Pos) {
	var cur []token
	for _, t := range tokens {
		if t.Text == ";" {
			if len(cur) > 0 {
				stmts, ends = append(stmts, cur), append(ends, t.At)
			}
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		last := cur[len(cur)-1]
		stmts = append(stmts, cur)
		ends = append(ends, Pos{last.At.Line, last.At.Col + len([]rune(last.Text))})
	}
	return stmts, ends
}

// Parse parses a program. A statement that fails to parse is dropped; the
// remaining statements are returned together with the joined errors.
func Parse(src string) (Program, error) {
	tokens, err := scan(src)
	if err != nil {
		return nil, err
	}
	stmts, ends := splitStatements(tokens)
	var prog Program
	var errs []error
	for i, stmt := range stmts {
		p := &parser{tokens: stmt, end: ends[i]}
		cmd, err := p.parseCommand()
		if err == nil {
			err = p.done()
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		prog = append(prog, cmd)
	}
	return prog, errors.Join(errs...)
}

// ParseTerm parses exactly one bare term.
func ParseTerm(src string) (Term, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	terms := lo.Filter(prog, func(c Command, _ int) bool {
		_, ok := c.(Eval)
		return ok
	})
	if len(prog) != 1 || len(terms) != 1 {
		return nil, fmt.Errorf("expected a single term, got %d statements", len(prog))
	}
	return terms[0].(Eval).Term, nil
}

// ParseType parses a single type such as (A -> B) -> *.
func ParseType(src string) (Ty, error) {
	tokens, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, end: Pos{1, len([]rune(src)) + 1}}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.done(); err != nil {
		return nil, err
	}
	return ty, nil
}
