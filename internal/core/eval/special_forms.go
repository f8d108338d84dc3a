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

// evalList dispatches a non-empty List on its head symbol to a special
// form, falling through to macro expansion or function/primitive
// application (§4.4).
func (in *Interp) evalList(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) == 0 {
		return value.EmptyList, nil
	}
	if sym, ok := x.Items[0].(*ast.Symbol); ok && sym.Namespace == "" {
		switch sym.Name {
		case "def!":
			return in.evalDef(x, scope)
		case "var":
			return in.evalVarForm(x, scope)
		case "let*":
			return in.evalLet(x, scope, false)
		case "loop*":
			return in.evalLet(x, scope, true)
		case "recur":
			return in.evalRecur(x, scope)
		case "if":
			return in.evalIf(x, scope)
		case "do":
			return in.evalBody(x.Items[1:], scope)
		case "fn*":
			return in.evalFnForm(x, scope)
		case "quote":
			return in.evalQuote(x)
		case "quasiquote":
			return in.evalQuasiquoteForm(x, scope)
		case "defmacro!":
			return in.evalDefmacro(x, scope)
		case "macroexpand":
			return in.evalMacroexpand(x, scope)
		case "try*":
			return in.evalTry(x, scope)
		}
	}
	return in.evalApplication(x, scope)
}

// evalDef implements (def! sym expr): §4.4's pre-intern/evaluate/commit
// (or revert) sequence, which lets expr reference sym itself for
// recursive definitions.
func (in *Interp) evalDef(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) != 3 {
		return nil, errors.Newf(x.Position, "def! requires a symbol and an expression")
	}
	nameSym, ok := x.Items[1].(*ast.Symbol)
	if !ok || nameSym.Namespace != "" {
		return nil, errors.Newf(x.Items[1].Pos(), "def! name must be an unqualified symbol")
	}

	ns := in.Current
	_, existed := ns.Get(nameSym.Name)
	v := ns.InternUnbound(nameSym.Name)

	val, err := in.Eval(x.Items[2], scope)
	if err != nil {
		if !existed {
			ns.Remove(nameSym.Name)
		}
		return nil, err
	}
	if ex, ok := Thrown(val); ok {
		if !existed {
			ns.Remove(nameSym.Name)
		}
		return ex, nil
	}

	v.Bind(val)
	return v, nil
}

// evalVarForm implements (var sym): resolve and return the Var cell
// itself, not its value.
func (in *Interp) evalVarForm(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) != 2 {
		return nil, errors.Newf(x.Position, "var requires a single symbol")
	}
	sym, ok := x.Items[1].(*ast.Symbol)
	if !ok {
		return nil, errors.Newf(x.Items[1].Pos(), "var requires a symbol")
	}
	ns := in.Current
	if sym.Namespace != "" {
		found, ok := in.Registry.Get(sym.Namespace)
		if !ok {
			return nil, errors.Newf(sym.Position, "no such namespace: %s", sym.Namespace)
		}
		ns = found
	}
	v, ok := ns.Get(sym.Name)
	if !ok {
		return nil, errors.Newf(sym.Position, "unable to resolve var: %s", value.QualifiedName(sym.Namespace, sym.Name))
	}
	return v, nil
}

// evalIf implements (if p c a?).
func (in *Interp) evalIf(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) < 3 || len(x.Items) > 4 {
		return nil, errors.Newf(x.Position, "if requires a test and a consequent, with an optional alternate")
	}
	test, err := in.Eval(x.Items[1], scope)
	if err != nil {
		return nil, err
	}
	if ex, ok := Thrown(test); ok {
		return ex, nil
	}
	if _, ok := test.(*value.Recur); ok {
		return nil, errors.Newf(x.Items[1].Pos(), "recur used outside of loop*/fn* tail position")
	}
	if value.Truthy(test) {
		return in.Eval(x.Items[2], scope)
	}
	if len(x.Items) == 4 {
		return in.Eval(x.Items[3], scope)
	}
	return value.Nil{}, nil
}

// evalQuote implements (quote x): return x unevaluated.
func (in *Interp) evalQuote(x *ast.List) (value.Value, error) {
	if len(x.Items) != 2 {
		return nil, errors.Newf(x.Position, "quote requires exactly one form")
	}
	return formToValue(x.Items[1]), nil
}

// evalRecur implements (recur e1 e2 ...): evaluate each operand and wrap
// the results into a Recur, which only evalLet's loop* trampoline
// interprets; any other consumer, applyFn included, treats a bare Recur
// result as a runtime error (see evalIf, evalApplication and applyFn).
func (in *Interp) evalRecur(x *ast.List, scope *Scope) (value.Value, error) {
	vals := make([]value.Value, 0, len(x.Items)-1)
	for _, it := range x.Items[1:] {
		v, err := in.Eval(it, scope)
		if err != nil {
			return nil, err
		}
		if ex, ok := Thrown(v); ok {
			return ex, nil
		}
		if _, ok := v.(*value.Recur); ok {
			return nil, errors.Newf(it.Pos(), "recur used outside of loop*/fn* tail position")
		}
		vals = append(vals, v)
	}
	return &value.Recur{Values: vals}, nil
}

// evalFnForm implements (fn* [params...] body...) encountered as raw,
// unanalyzed syntax: this only happens at the top level (REPL input, a
// freshly loaded file, or any point the analyzer never walked), since a
// fn*/catch* nested inside an already-analyzed enclosing fn* has already
// been rewritten to an *analyze.NestedFn by the time Eval reaches it.
func (in *Interp) evalFnForm(x *ast.List, scope *Scope) (value.Value, error) {
	if len(x.Items) < 2 {
		return nil, errors.Newf(x.Position, "fn* requires a parameter vector")
	}
	pvec, ok := x.Items[1].(*ast.Vector)
	if !ok {
		return nil, errors.Newf(x.Items[1].Pos(), "fn* parameter list must be a vector")
	}
	params, variadic, err := analyze.ParseParams(pvec)
	if err != nil {
		return nil, err
	}
	result, err := analyze.Fn(params, variadic, x.Items[2:])
	if err != nil {
		return nil, err
	}
	return in.buildFn(result, scope)
}
