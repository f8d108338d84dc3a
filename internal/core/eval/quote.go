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

package eval

import (
	"github.com/SummerRolf/sigil/ast"
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/token"
)

// formToValue turns a syntax form into the data value it denotes when
// quoted, without evaluating it. The analyzer never rewrites the inside
// of a (quote x) form (quote is fully opaque to capture analysis), so x
// is always built from the plain ast node types here — never an
// analyze.Slot or analyze.NestedFn.
func formToValue(f ast.Form) value.Value {
	switch x := f.(type) {
	case *ast.Nil:
		return value.Nil{}
	case *ast.Bool:
		return value.Bool(x.Value)
	case *ast.Number:
		return value.Number(x.Value)
	case *ast.String:
		return value.String(x.Value)
	case *ast.Keyword:
		return value.Keyword{Namespace: x.Namespace, Name: x.Name}
	case *ast.Symbol:
		return value.Symbol{Namespace: x.Namespace, Name: x.Name}
	case *ast.List:
		items := make([]value.Value, len(x.Items))
		for i, it := range x.Items {
			items[i] = formToValue(it)
		}
		return value.NewList(items...)
	case *ast.Vector:
		vec := value.EmptyVector
		for _, it := range x.Items {
			vec = vec.PushBack(formToValue(it))
		}
		return vec
	case *ast.Map:
		kvs := make([]value.Value, len(x.Items))
		for i, it := range x.Items {
			kvs[i] = formToValue(it)
		}
		return value.NewMap(kvs...)
	case *ast.Set:
		set := value.EmptySet
		for _, it := range x.Items {
			set = set.Conj(formToValue(it))
		}
		return set
	default:
		// Unreachable for a well-formed quoted form; fall back to nil
		// rather than panic on a malformed tree.
		return value.Nil{}
	}
}

// valueToForm is formToValue's inverse, needed wherever evaluated data has
// to be spliced back into source to be evaluated again: macroexpansion
// (macro operands are forms, but a macro's own arguments coming from a
// nested macro call have already been fully formed) and read-string's
// result feeding eval. Composite values become literal, self-quoting List
// /Vector/Map/Set nodes; a Symbol value becomes a bare symbol form so that
// evaluating it resolves exactly as if it had been typed directly.
// ValueToForm exports valueToForm for the eval and read-string primitives
// (pkg/corelang), which need to hand an already-evaluated data Value back
// to Eval as code.
func ValueToForm(v value.Value) ast.Form { return valueToForm(v) }

func valueToForm(v value.Value) ast.Form {
	switch x := v.(type) {
	case value.Nil:
		return &ast.Nil{}
	case value.Bool:
		return &ast.Bool{Value: bool(x)}
	case value.Number:
		return &ast.Number{Value: int64(x)}
	case value.String:
		return &ast.String{Value: string(x)}
	case value.Keyword:
		return &ast.Keyword{Namespace: x.Namespace, Name: x.Name}
	case value.Symbol:
		return &ast.Symbol{Namespace: x.Namespace, Name: x.Name}
	case *value.List:
		items := make([]ast.Form, x.Len())
		for i, it := range x.Slice() {
			items[i] = valueToForm(it)
		}
		return &ast.List{Items: items}
	case *value.Vector:
		items := make([]ast.Form, x.Len())
		for i, it := range x.ToSlice() {
			items[i] = valueToForm(it)
		}
		return &ast.Vector{Items: items}
	case *value.Map:
		var items []ast.Form
		x.Each(func(k, val value.Value) bool {
			items = append(items, valueToForm(k), valueToForm(val))
			return true
		})
		return &ast.Map{Items: items}
	case *value.Set:
		var items []ast.Form
		x.Each(func(val value.Value) bool {
			items = append(items, valueToForm(val))
			return true
		})
		return &ast.Set{Items: items}
	default:
		// Fn, Primitive, Var, Atom and the like have no literal syntax;
		// wrapping them in a constant form lets the evaluator hand back
		// exactly this value without attempting to re-derive it.
		return &constForm{value: v}
	}
}

// constForm lets an already-evaluated, non-literal Value (a closure, an
// Atom, a Var, ...) be re-entered into the form tree evaluate() walks,
// for example when a macro expansion's operands include a value with no
// source syntax of its own.
type constForm struct {
	value value.Value
}

func (c *constForm) Pos() token.Pos { return token.NoPos }
