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

package value

import "github.com/SummerRolf/sigil/ast"

// Fn is the analyzed, closure-free body of a fn* form: the parameter count,
// whether the last parameter collects a variadic rest-arg, the lambda
// nesting level the analyzer assigned it (used to address captures from
// further-nested closures), and the rewritten body forms (parameter
// references already lowered to analyze.Slot).
type Fn struct {
	Params   int
	Variadic bool
	Level    int
	Body     []ast.Form
}

func (*Fn) Kind() Kind { return FnKind }

// FnWithCaptures pairs an Fn with the bindings its body closed over at the
// moment the fn* form was evaluated. Captures is keyed by whatever the
// analyzer used to address the captured binding: an analyze.SlotKey for a
// captured fn*/catch* parameter (mapping to the parameter's resolved
// Value directly), or a plain string for a captured let*/loop*-bound local
// (mapping to the evaluator's internal forward-reference cell for that
// binding, so a closure built before a mutually-recursive let* binding is
// assigned still observes the assignment once it runs). The map is always
// fully populated at construction time; only what a captured value
// resolves to may still be pending.
type FnWithCaptures struct {
	Fn       *Fn
	Captures map[interface{}]interface{}
}

func (*FnWithCaptures) Kind() Kind { return FnKind }

// Macro wraps a callable (an *Fn, *FnWithCaptures or *Primitive) that runs
// at macroexpansion time instead of at evaluation time.
type Macro struct {
	Fn Value
}

func (*Macro) Kind() Kind { return MacroKind }

// Primitive is a built-in implemented directly in Go.
type Primitive struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*Primitive) Kind() Kind { return PrimitiveKind }

// Recur carries the rebound values for a recur form back to the tail-call
// loop that installed the recursion point; it is never allowed to escape
// to anything outside the evaluator.
type Recur struct {
	Values []Value
}

func (*Recur) Kind() Kind { return RecurKind }
