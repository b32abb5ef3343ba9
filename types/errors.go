package types

import (
	"fmt"

	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

// UnboundError reports a variable or type name with no entry in Γ.
type UnboundError struct {
	Name string
	Pos  syntax.Pos
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("%v: unbound variable %q", e.Pos, e.Name)
}

// NotAFunctionError reports an application whose function position does
// not have a function type.
type NotAFunctionError struct {
	Type syntax.Ty
	Pos  syntax.Pos
}

func (e *NotAFunctionError) Error() string {
	return fmt.Sprintf("%v: arrow type expected, got %v", e.Pos, e.Type)
}

// MismatchError reports a term whose type does not match the expected one.
type MismatchError struct {
	Expected syntax.Ty
	Found    syntax.Ty
	Pos      syntax.Pos
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: type mismatch: expected %v, found %v", e.Pos, e.Expected, e.Found)
}
