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

// Package analyze rewrites the body of a fn* or catch* form so the
// evaluator can address every parameter reference positionally instead of
// by name, and reports the set of free variables ("captures") the body
// closes over from outside its own parameter list.
//
// Slot is declared here, in its own package, rather than as a method added
// to ast.Symbol: ast.Form's method set is exported-only precisely so that a
// type living outside package ast — Slot — can implement it without ast
// importing analyze back.
package analyze

import (
	"github.com/SummerRolf/sigil/ast"
	"github.com/SummerRolf/sigil/token"
)

// Slot replaces a symbol reference to a fn*/catch* parameter once the
// analyzer has determined which parameter it refers to. Level is the
// lambda-nesting depth (0 for the outermost fn* in an analysis pass) at
// which the parameter was declared, and Ordinal is its position in that
// lambda's parameter list; together they are the address the evaluator
// installs operand values under in the runtime scope stack.
type Slot struct {
	Position token.Pos
	Ordinal  int
	Level    int
}

func (s *Slot) Pos() token.Pos { return s.Position }

// SlotKey is the comparable, position-free twin of Slot used both as a map
// key in a lambda's capture set (a Slot itself can't be a map key since two
// Slot nodes for the same parameter, at different occurrences, carry
// different Position values) and by the evaluator to key the runtime scope
// frame it pushes for a function application — the same (Ordinal, Level)
// pair addresses a parameter on both sides.
type SlotKey struct {
	Ordinal int
	Level   int
}

// FnResult is everything the analyzer determines about one fn*/catch*
// body: its arity, the lambda level it was analyzed at, the rewritten
// body, and its capture set.
//
// Captures maps each free variable the body closes over to the lambda
// level at which that variable was originally bound. A key is either a
// SlotKey (a captured fn*/catch* parameter, addressed positionally) or a
// plain string (a captured let*/loop*-bound local, resolved dynamically by
// name) — the spec's capture-detection rule is phrased only in terms of
// parameters rewritten to reserved tokens, but a let*-bound local closed
// over by a nested fn* needs the same creation-time capture treatment or
// the closure would dangle once the let*'s scope frame is popped; this
// dual-key capture set is the implementation's resolution of that gap.
// The level value survives only to drive further hoisting, by whoever
// merges this result into an enclosing capture set (see analyzeFn).
type FnResult struct {
	Params   int
	Variadic bool
	Level    int
	Body     []ast.Form
	Captures map[interface{}]int
}

// NestedFn replaces a (fn* ...) or (catch* ...) form found while analyzing
// an enclosing fn*/catch* body: the inner lambda has already been fully
// analyzed by the time the enclosing walk finishes, so it is spliced back
// into the rewritten tree as this node rather than left as raw source the
// evaluator would have to re-analyze from scratch when it reaches it.
type NestedFn struct {
	Position token.Pos
	Result   *FnResult
}

func (n *NestedFn) Pos() token.Pos { return n.Position }
