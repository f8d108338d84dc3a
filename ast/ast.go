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

// Package ast defines the syntactic form tree produced by the reader.
//
// Form is deliberately an exported-method-only interface (mirroring the
// standard library's go/ast.Node) rather than one guarded by an unexported
// marker method: the analyzer package needs to introduce its own Form
// implementation (a rewritten parameter/capture slot) without creating an
// import cycle back into ast, and an unexported marker method can only be
// satisfied from within the package that declares it.
package ast

import "github.com/SummerRolf/sigil/token"

// Form is a node of the syntax tree the reader produces.
type Form interface {
	Pos() token.Pos
}

// Symbol is an identifier that resolves against the lexical scope stack or
// a namespace; Namespace is empty for an unqualified symbol.
type Symbol struct {
	Position  token.Pos
	Namespace string
	Name      string
}

func (s *Symbol) Pos() token.Pos { return s.Position }

// Keyword is a self-evaluating identifier, optionally namespaced.
type Keyword struct {
	Position  token.Pos
	Namespace string
	Name      string
}

func (k *Keyword) Pos() token.Pos { return k.Position }

// Nil is the literal nil.
type Nil struct {
	Position token.Pos
}

func (n *Nil) Pos() token.Pos { return n.Position }

// Bool is a literal true/false.
type Bool struct {
	Position token.Pos
	Value    bool
}

func (b *Bool) Pos() token.Pos { return b.Position }

// Number is a literal signed 64-bit integer.
type Number struct {
	Position token.Pos
	Value    int64
}

func (n *Number) Pos() token.Pos { return n.Position }

// String is a literal, already-unescaped string.
type String struct {
	Position token.Pos
	Value    string
}

func (s *String) Pos() token.Pos { return s.Position }

// List is a parenthesized form sequence: (a b c).
type List struct {
	Position token.Pos
	Items    []Form
}

func (l *List) Pos() token.Pos { return l.Position }

// Vector is a bracketed form sequence: [a b c].
type Vector struct {
	Position token.Pos
	Items    []Form
}

func (v *Vector) Pos() token.Pos { return v.Position }

// Map is a braced, flat key/value form sequence: {k1 v1 k2 v2}.
type Map struct {
	Position token.Pos
	Items    []Form // len(Items) is always even
}

func (m *Map) Pos() token.Pos { return m.Position }

// Set is a #{...} braced form sequence.
type Set struct {
	Position token.Pos
	Items    []Form
}

func (s *Set) Pos() token.Pos { return s.Position }

// Head returns the symbol heading a List, or "" if l is empty or its first
// element is not a Symbol. Used pervasively by the analyzer and evaluator
// to dispatch on special forms.
func Head(l *List) string {
	if len(l.Items) == 0 {
		return ""
	}
	sym, ok := l.Items[0].(*Symbol)
	if !ok {
		return ""
	}
	return sym.Name
}
