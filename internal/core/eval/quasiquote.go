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
	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/token"
)

// evalQuasiquoteForm implements (quasiquote x) (§4.5): expand x into a
// form built from cons/concat/vec/quote calls, then evaluate that
// expansion as ordinary code.
func (in *Interp) evalQuasiquoteForm(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) != 2 {
		return nil, errors.Newf(x.Position, "quasiquote requires exactly one form")
	}
	return in.Eval(quasiquoteExpand(x.Items[1]), scope)
}

// quasiquoteExpand implements the §4.5 algorithm directly: the resulting
// form, evaluated normally, reconstructs x with every unquote/
// splice-unquote hole filled in.
func quasiquoteExpand(x ast.Form) ast.Form {
	switch v := x.(type) {
	case *ast.List:
		if ast.Head(v) == "unquote" && len(v.Items) == 2 {
			return v.Items[1]
		}
		return quasiquoteFoldList(v.Position, v.Items)
	case *ast.Vector:
		return symCall(v.Position, "vec", quasiquoteFoldList(v.Position, v.Items))
	case *ast.Map, *ast.Symbol:
		return symCall(x.Pos(), "quote", x)
	default:
		// Nil, Bool, Number, String, Keyword, Set: self-evaluating, left
		// unchanged.
		return x
	}
}

// quasiquoteFoldList implements the fold-right over a list's (or a
// vector's) elements: (splice-unquote e) produces (concat e acc); any
// other element y produces (cons (quasiquote y) acc).
func quasiquoteFoldList(pos token.Pos, items []ast.Form) ast.Form {
	acc := symCall(pos, "quote", &ast.List{Position: pos})
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if l, ok := it.(*ast.List); ok && ast.Head(l) == "splice-unquote" && len(l.Items) == 2 {
			acc = symCall(pos, "concat", l.Items[1], acc)
			continue
		}
		acc = symCall(pos, "cons", quasiquoteExpand(it), acc)
	}
	return acc
}

func symCall(pos token.Pos, name string, args ...ast.Form) ast.Form {
	items := make([]ast.Form, 0, len(args)+1)
	items = append(items, &ast.Symbol{Position: pos, Name: name})
	items = append(items, args...)
	return &ast.List{Position: pos, Items: items}
}
