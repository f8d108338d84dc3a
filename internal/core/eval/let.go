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
)

// evalLet implements both let* and loop* (§4.4): each binding name is
// pre-inserted as a forward-reference cell so a binding's init expression
// (or the body) may refer to an earlier, or mutually recursive, sibling
// binding; evaluating the init then commits the cell. loop's distinct
// behavior — re-running body with rebound names on a trailing Recur — is
// the only difference from let*.
func (in *Interp) evalLet(x *ast.List, scope *Scope, isLoop bool) (value.Value, error) {
	head := ast.Head(x)
	if len(x.Items) < 2 {
		return nil, errors.Newf(x.Position, "%s requires a binding vector", head)
	}
	bvec, ok := x.Items[1].(*ast.Vector)
	if !ok {
		return nil, errors.Newf(x.Items[1].Pos(), "%s binding list must be a vector", head)
	}
	if len(bvec.Items)%2 != 0 {
		return nil, errors.Newf(bvec.Position, "%s binding vector must have an even number of forms", head)
	}

	names := make([]string, 0, len(bvec.Items)/2)
	for i := 0; i < len(bvec.Items); i += 2 {
		sym, ok := bvec.Items[i].(*ast.Symbol)
		if !ok || sym.Namespace != "" {
			return nil, errors.Newf(bvec.Items[i].Pos(), "%s binding name must be an unqualified symbol", head)
		}
		names = append(names, sym.Name)
	}

	inner := NewScope(scope)
	cells := make([]*cell, len(names))
	for i, n := range names {
		c := newCell(bvec.Items[i*2].Pos(), n)
		cells[i] = c
		inner.Set(n, c)
	}

	for i := 0; i < len(bvec.Items); i += 2 {
		val, err := in.Eval(bvec.Items[i+1], inner)
		if err != nil {
			return nil, err
		}
		if ex, ok := Thrown(val); ok {
			return ex, nil
		}
		if _, ok := val.(*value.Recur); ok {
			return nil, errors.Newf(bvec.Items[i+1].Pos(), "recur used outside of loop*/fn* tail position")
		}
		cells[i/2].assign(val)
	}

	body := x.Items[2:]
	for {
		result, err := in.evalBody(body, inner)
		if err != nil {
			return nil, err
		}
		if !isLoop {
			return result, nil
		}
		r, ok := result.(*value.Recur)
		if !ok {
			return result, nil
		}
		if len(r.Values) != len(names) {
			return nil, errors.Newf(x.Position, "%s recur expects %d argument(s), got %d", head, len(names), len(r.Values))
		}
		rebound := NewScope(scope)
		for i, n := range names {
			c := newCell(bvec.Items[i*2].Pos(), n)
			c.assign(r.Values[i])
			rebound.Set(n, c)
		}
		inner = rebound
	}
}
