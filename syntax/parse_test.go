package syntax

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func v(name string) Var { return Var{Name: name} }

func lam(param string, body Term) Abs { return Abs{Param: param, Body: body} }

func app(fn, arg Term) App { return App{Fn: fn, Arg: arg} }

func TestScanPositions(t *testing.T) {
	toks, err := scan("x = λy.(y z);\n  f->g")
	if err != nil {
		t.Fatal(err)
	}
	want := []token{
		{"x", Pos{1, 1}}, {"=", Pos{1, 3}}, {"λ", Pos{1, 5}}, {"y", Pos{1, 6}},
		{".", Pos{1, 7}}, {"(", Pos{1, 8}}, {"y", Pos{1, 9}}, {"z", Pos{1, 11}},
		{")", Pos{1, 12}}, {";", Pos{1, 13}},
		{"f", Pos{2, 3}}, {"->", Pos{2, 4}}, {"g", Pos{2, 6}},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d:\n%s", len(toks), len(want), spew.Sdump(toks))
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, toks[i], want[i])
		}
	}
}

func TestScanRejectsInvalidRunes(t *testing.T) {
	if _, err := scan("x = y + z"); err == nil {
		t.Fatal("expected an error for '+'")
	}
}

func TestScanComments(t *testing.T) {
	toks, err := scan("# leading comment\nx # trailing\r\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Text != "x" || toks[0].At != (Pos{2, 1}) {
		t.Fatalf("unexpected tokens:\n%s", spew.Sdump(toks))
	}
}

func TestParse(t *testing.T) {
	prog, err := Parse("x = y; λx. (x y); x y;")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog) != 3 {
		t.Fatalf("got %d commands, want 3", len(prog))
	}
	bind, ok := prog[0].(Bind)
	if !ok || bind.Name != "x" || bind.Type != nil || !TermEqual(bind.Term, v("y")) {
		t.Errorf("command 0: %s", spew.Sdump(prog[0]))
	}
	want := []Term{lam("x", app(v("x"), v("y"))), app(v("x"), v("y"))}
	for i, w := range want {
		e, ok := prog[i+1].(Eval)
		if !ok || !TermEqual(e.Term, w) {
			t.Errorf("command %d: got %s, want %v", i+1, spew.Sdump(prog[i+1]), w)
		}
	}
}

func TestParseApplicationIsLeftAssociative(t *testing.T) {
	got, err := ParseTerm(`\x. \y. \z. x y z`)
	if err != nil {
		t.Fatal(err)
	}
	want := lam("x", lam("y", lam("z", app(app(v("x"), v("y")), v("z")))))
	if !TermEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseAnnotations(t *testing.T) {
	prog, err := Parse(`
		type Fn = Nat -> Nat;
		f: (Nat -> Nat) -> * = λg: Fn. (g: Fn);
	`)
	if err != nil {
		t.Fatal(err)
	}
	def, ok := prog[0].(TypeDef)
	if !ok || def.Name != "Fn" || !TypeEqual(def.Type, TyArr{TyId("Nat"), TyId("Nat")}) {
		t.Fatalf("command 0: %s", spew.Sdump(prog[0]))
	}
	if def.At != (Pos{2, 3}) {
		t.Errorf("typedef at %v, want 2:3", def.At)
	}
	bind := prog[1].(Bind)
	wantTy := TyArr{TyArr{TyId("Nat"), TyId("Nat")}, TyAny{}}
	if !TypeEqual(bind.Type, wantTy) {
		t.Errorf("declared type %v, want %v", bind.Type, wantTy)
	}
	wantTerm := Abs{Param: "g", Type: TyId("Fn"), Body: Var{Name: "g", Type: TyId("Fn")}}
	if !TermEqual(bind.Term, wantTerm) {
		t.Errorf("body %v, want %v", bind.Term, wantTerm)
	}
}

func TestParseApplicationPosition(t *testing.T) {
	term, err := ParseTerm("(λx: Nat. x) true")
	if err != nil {
		t.Fatal(err)
	}
	a, ok := term.(App)
	if !ok {
		t.Fatalf("got %T, want App", term)
	}
	if a.Pos() != (Pos{1, 1}) || a.Arg.Pos() != (Pos{1, 14}) {
		t.Errorf("positions: app %v, arg %v", a.Pos(), a.Arg.Pos())
	}
}

func TestParseDropsBadStatements(t *testing.T) {
	prog, err := Parse("a = b; λ. x; c; (d e; f")
	if err == nil {
		t.Fatal("expected parse errors")
	}
	if n := strings.Count(err.Error(), "\n") + 1; n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, err)
	}
	if len(prog) != 3 {
		t.Fatalf("got %d commands, want 3:\n%s", len(prog), spew.Sdump(prog))
	}
	if e := prog[2].(Eval); !TermEqual(e.Term, v("f")) {
		t.Errorf("last command %v, want f", e.Term)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"x =",
		"λx x",
		"(f x",
		"(f x: Nat)",
		"f: = x",
		"a b )",
		"type T = ->",
	} {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q): expected an error", src)
		}
	}
}

func TestParseType(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want Ty
	}{
		{"*", TyAny{}},
		{"Nat", TyId("Nat")},
		{"A -> B -> C", TyArr{TyId("A"), TyArr{TyId("B"), TyId("C")}}},
		{"(A -> B) -> C", TyArr{TyArr{TyId("A"), TyId("B")}, TyId("C")}},
		{"(*)", TyAny{}},
	} {
		got, err := ParseType(tt.src)
		if err != nil {
			t.Errorf("ParseType(%q): %v", tt.src, err)
			continue
		}
		if !TypeEqual(got, tt.want) {
			t.Errorf("ParseType(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"x",
		"λx. x",
		"λf: (A -> B) -> C. (f (x: *))",
		"((a b) c)",
		"(a λx. (x x))",
		"((λx. x) λy. y)",
	} {
		term, err := ParseTerm(src)
		if err != nil {
			t.Errorf("ParseTerm(%q): %v", src, err)
			continue
		}
		if got := term.String(); got != src {
			t.Errorf("String() = %q, want %q", got, src)
		}
		if got := (Printer{}).Term(term); got != src {
			t.Errorf("Printer.Term = %q, want %q", got, src)
		}
	}
}
