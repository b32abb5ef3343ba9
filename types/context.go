package types

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

// Context is Γ. Variables and type aliases share one namespace.
type Context struct {
	types map[string]syntax.Ty
}

func NewContext() *Context {
	return &Context{types: make(map[string]syntax.Ty)}
}

func (c *Context) Lookup(name string) (syntax.Ty, bool) {
	ty, ok := c.types[name]
	return ty, ok
}

func (c *Context) Bind(name string, ty syntax.Ty) {
	c.types[name] = ty
}

func (c *Context) Unbind(name string) {
	delete(c.types, name)
}

// With binds name to ty for the duration of fn and then restores whatever
// name was bound to before, or removes it, however fn returns.
func (c *Context) With(name string, ty syntax.Ty, fn func() error) error {
	prev, had := c.types[name]
	c.types[name] = ty
	defer func() {
		if had {
			c.types[name] = prev
		} else {
			delete(c.types, name)
		}
	}()
	return fn()
}

// Clone returns an independent copy of c.
func (c *Context) Clone() *Context {
	return &Context{types: maps.Clone(c.types)}
}

// Restore replaces the bindings of c by those of a clone.
func (c *Context) Restore(from *Context) {
	c.types = maps.Clone(from.types)
}

func (c *Context) Names() []string {
	names := maps.Keys(c.types)
	sort.Strings(names)
	return names
}

func (c *Context) Len() int {
	return len(c.types)
}

func (c *Context) Clear() {
	c.types = make(map[string]syntax.Ty)
}
