// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package internal holds the plumbing pkg/corelang and pkg/native build
// their primitives on: a Builtin/Package pair describing one family of
// primitives, and a CallCtxt that type-checks and converts a primitive's
// already-evaluated argument Values the way a hand-written primitive
// implementation would, but in one place instead of at every call site.
package internal

import (
	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/internal/core/namespace"
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/token"
)

// Param documents one parameter's expected Kind. Sigil has no static arity
// or type checking ahead of a call, so Param is informational only: nothing
// reads it when a call is made, and argument errors come from the CallCtxt
// accessors Func calls.
type Param struct {
	Kind value.Kind
}

// Builtin is one primitive or constant a Package exports. A primitive sets
// Func, which CallCtxt.Do gates on clean argument conversion; a constant
// sets Const directly and is interned as-is.
type Builtin struct {
	Name   string
	Params []Param
	Result value.Kind
	Func   func(c *CallCtxt)
	Const  value.Value
}

// Package groups a family of Builtins, the way each cue/pkg/* subpackage
// groups one family of CUE builtins (pkg/corelang's numeric, collection,
// predicate, atom and error groups are each one Package).
type Package struct {
	Native []*Builtin
}

var registry = map[string]*Package{}

// Register records pkg under name for later retrieval by Lookup. Called
// from each group's init, mirroring cue/pkg/math's
// `internal.Register("math", pkg)`.
func Register(name string, pkg *Package) {
	registry[name] = pkg
}

// Lookup returns the Package registered under name, or nil if none was.
func Lookup(name string) *Package { return registry[name] }

// CallCtxt carries one primitive call's already-evaluated arguments to its
// Func. Each accessor converts argument i to the type Func expects,
// recording a descriptive Err instead of panicking on a mismatch; Func
// should check Do before using its result and before committing Ret.
type CallCtxt struct {
	Pos  token.Pos
	Name string

	args []value.Value

	Err error
	Ret value.Value
}

// NewCallCtxt builds the context for one call to a Builtin named name at
// pos, carrying args.
func NewCallCtxt(pos token.Pos, name string, args []value.Value) *CallCtxt {
	return &CallCtxt{Pos: pos, Name: name, args: args}
}

// Do reports whether the call should proceed: every accessor called so far
// converted cleanly.
func (c *CallCtxt) Do() bool { return c.Err == nil }

// Len returns the number of arguments actually supplied.
func (c *CallCtxt) Len() int { return len(c.args) }

func (c *CallCtxt) invalidArgType(i int, want string) {
	kind := "nil"
	if i < len(c.args) && c.args[i] != nil {
		kind = c.args[i].Kind().String()
	}
	c.Err = errors.Newf(c.Pos, "argument %d of %s should be %s, but got %s", i, c.Name, want, kind)
}

// Value returns argument i unconverted.
func (c *CallCtxt) Value(i int) value.Value {
	if i >= len(c.args) {
		c.Err = errors.Newf(c.Pos, "%s: missing argument %d", c.Name, i)
		return nil
	}
	return c.args[i]
}

// Int64 converts argument i to a number.
func (c *CallCtxt) Int64(i int) int64 {
	v := c.Value(i)
	if !c.Do() {
		return 0
	}
	n, ok := v.(value.Number)
	if !ok {
		c.invalidArgType(i, "number")
		return 0
	}
	return int64(n)
}

// String converts argument i to a string.
func (c *CallCtxt) String(i int) string {
	v := c.Value(i)
	if !c.Do() {
		return ""
	}
	s, ok := v.(value.String)
	if !ok {
		c.invalidArgType(i, "string")
		return ""
	}
	return string(s)
}

// Bool converts argument i to a bool.
func (c *CallCtxt) Bool(i int) bool {
	v := c.Value(i)
	if !c.Do() {
		return false
	}
	b, ok := v.(value.Bool)
	if !ok {
		c.invalidArgType(i, "bool")
		return false
	}
	return bool(b)
}

// List converts argument i to a slice of its elements.
func (c *CallCtxt) List(i int) []value.Value {
	v := c.Value(i)
	if !c.Do() {
		return nil
	}
	l, ok := v.(*value.List)
	if !ok {
		c.invalidArgType(i, "list")
		return nil
	}
	return l.Slice()
}

// Rest returns every argument from index from onward, for a variadic
// primitive's trailing arguments.
func (c *CallCtxt) Rest(from int) []value.Value {
	if from >= len(c.args) {
		return nil
	}
	return c.args[from:]
}

// Primitive converts a Func-bearing Builtin into a callable *value.Primitive,
// routing every call through a fresh CallCtxt. Calling Primitive on a
// constant Builtin (Func nil) panics; callers intern Const builtins
// directly instead.
func (b *Builtin) Primitive() *value.Primitive {
	if b.Func == nil {
		panic("internal: Primitive called on a constant Builtin " + b.Name)
	}
	return &value.Primitive{Name: b.Name, Fn: func(args []value.Value) (value.Value, error) {
		c := NewCallCtxt(token.NoPos, b.Name, args)
		b.Func(c)
		if c.Err != nil {
			return nil, c.Err
		}
		return c.Ret, nil
	}}
}

// Install interns every Builtin in pkg into ns: a constant directly, a
// primitive via Builtin.Primitive.
func Install(ns *namespace.Namespace, pkg *Package) {
	for _, b := range pkg.Native {
		if b.Func == nil {
			ns.Intern(b.Name, b.Const)
			continue
		}
		ns.Intern(b.Name, b.Primitive())
	}
}
