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
	"github.com/SummerRolf/sigil/internal/core/analyze"
	"github.com/SummerRolf/sigil/internal/core/value"
)

// evalDefmacro implements (defmacro! sym fn-expr): evaluate exactly like
// def!, then promote the bound value to a Macro. The fn-expr must
// evaluate to a capture-free *value.Fn — defmacro! is always evaluated at
// the point a fn* literal is reached directly, so a FnWithCaptures here
// would mean the macro's body closed over something from an enclosing
// fn*/let*, which a top-level macro definition can never have.
func (in *Interp) evalDefmacro(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) != 3 {
		return nil, errors.Newf(x.Position, "defmacro! requires a symbol and a fn expression")
	}
	result, err := in.evalDef(x, scope)
	if err != nil {
		return nil, err
	}
	if ex, ok := Thrown(result); ok {
		return ex, nil
	}
	v := result.(*value.Var)
	fn, ok := v.Deref().(*value.Fn)
	if !ok {
		return nil, errors.Newf(x.Position, "defmacro! requires a capture-free fn* expression")
	}
	v.Bind(&value.Macro{Fn: fn})
	return v, nil
}

// evalMacroexpand implements (macroexpand x): evaluate x to a form value,
// then expand it once if its head resolves to a macro, without
// recursively re-expanding or evaluating the result.
func (in *Interp) evalMacroexpand(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) != 2 {
		return nil, errors.Newf(x.Position, "macroexpand requires exactly one form")
	}
	v, err := in.Eval(x.Items[1], scope)
	if err != nil {
		return nil, err
	}
	if ex, ok := Thrown(v); ok {
		return ex, nil
	}
	macro, ok := in.resolveExpansionMacro(v)
	if !ok {
		return v, nil
	}
	list := v.(*value.List)
	return in.Apply(macro.Fn, list.Slice()[1:], x.Position)
}

// evalTry implements (try* e1 ... en (catch* ex body...)): the non-catch
// forms run in do-sequence order, short-circuiting on a thrown exception;
// a catch*, if present, catches that exception by applying its clause
// (already analyzed as a unary lambda over the exception-binding symbol)
// to the caught value, un-flagging it from Thrown first so it behaves as
// an ordinary value inside the clause.
func (in *Interp) evalTry(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) < 2 {
		return nil, errors.Newf(x.Position, "try* requires at least one form")
	}

	body := x.Items[1:]
	last := body[len(body)-1]
	catchResult, isCatch, err := in.catchResultFor(last)
	if err != nil {
		return nil, err
	}
	if isCatch {
		body = body[:len(body)-1]
	}

	result, err := in.evalBody(body, scope)
	if err != nil {
		return nil, err
	}
	ex, thrown := Thrown(result)
	if !thrown {
		return result, nil
	}
	if !isCatch {
		return ex, nil
	}

	caught := &value.Exception{Message: ex.Message, Data: ex.Data, Thrown: false}
	clause, err := in.buildFn(catchResult, scope)
	if err != nil {
		return nil, err
	}
	return in.Apply(clause, []value.Value{caught}, last.Pos())
}

// catchResultFor recognizes a trailing (catch* ex body...) clause, either
// as raw unanalyzed syntax (a try* evaluated at the top level) or as the
// *analyze.NestedFn the analyzer already produced for it (a try* nested
// inside an enclosing, already-analyzed fn*/catch*).
func (in *Interp) catchResultFor(f ast.Form) (*analyze.FnResult, bool, error) {
	switch x := f.(type) {
	case *analyze.NestedFn:
		return x.Result, true, nil
	case *ast.List:
		if ast.Head(x) != "catch*" {
			return nil, false, nil
		}
		if len(x.Items) < 2 {
			return nil, false, errors.Newf(x.Position, "catch* requires an exception-binding symbol")
		}
		exSym, ok := x.Items[1].(*ast.Symbol)
		if !ok || exSym.Namespace != "" {
			return nil, false, errors.Newf(x.Items[1].Pos(), "catch* binding must be an unqualified symbol")
		}
		result, err := analyze.Catch(exSym.Name, x.Items[2:])
		if err != nil {
			return nil, false, err
		}
		return result, true, nil
	default:
		return nil, false, nil
	}
}
