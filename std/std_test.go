package std_test

import (
	"testing"

	"github.com/WilliamRagstad/tlc-bidir/std"
	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

func TestSourceParses(t *testing.T) {
	prog, err := syntax.Parse(std.Source)
	if err != nil {
		t.Fatal(err)
	}
	defined := make(map[string]bool)
	for _, cmd := range prog {
		b, ok := cmd.(syntax.Bind)
		if !ok {
			t.Errorf("%v: not a binding", cmd.Pos())
			continue
		}
		if b.Type != nil {
			t.Errorf("%v: %s is typed", b.At, b.Name)
		}
		defined[b.Name] = true
	}
	for _, name := range []string{
		"I", "K", "S", "B", "C", "W", "Y",
		"true", "false", "not", "and", "or", "if",
		"0", "1", "2", "3", "4", "5",
		"succ", "plus", "mult", "pred", "iszero",
		"pair", "fst", "snd",
	} {
		if !defined[name] {
			t.Errorf("%s is not defined", name)
		}
	}
}
