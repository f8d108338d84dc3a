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
	"github.com/SummerRolf/sigil/token"
)

// evalApplication implements macro expansion and function/primitive
// application (§4.4). The reserved special-form heads are intercepted
// earlier in evalList, so by the time a List reaches here its head is
// either a macro, a callable value, or an error.
func (in *Interp) evalApplication(x *ast.List, scope *Scope) (value.Value, error) {
	head, err := in.Eval(x.Items[0], scope)
	if err != nil {
		return nil, err
	}
	if ex, ok := Thrown(head); ok {
		return ex, nil
	}
	if _, ok := head.(*value.Recur); ok {
		return nil, errors.Newf(x.Items[0].Pos(), "recur used outside of loop*/fn* tail position")
	}

	if macro, ok := head.(*value.Macro); ok {
		expansion, err := in.expandMacro(macro, x.Items[1:], x.Position)
		if err != nil {
			return nil, err
		}
		if ex, ok := Thrown(expansion); ok {
			return ex, nil
		}
		return in.Eval(valueToForm(expansion), scope)
	}

	args := make([]value.Value, 0, len(x.Items)-1)
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
		args = append(args, v)
	}
	return in.Apply(head, args, x.Position)
}

// expandMacro applies a macro's function to its call site's operand
// forms, unevaluated, then recursively re-expands the result until its
// head no longer resolves to a macro (§4.4's "Macro application").
func (in *Interp) expandMacro(macro *value.Macro, operandForms []ast.Form, pos token.Pos) (value.Value, error) {
	args := make([]value.Value, len(operandForms))
	for i, f := range operandForms {
		args[i] = formToValue(f)
	}
	expansion, err := in.Apply(macro.Fn, args, pos)
	if err != nil {
		return nil, err
	}
	if ex, ok := Thrown(expansion); ok {
		return ex, nil
	}
	if next, ok := in.resolveExpansionMacro(expansion); ok {
		list := expansion.(*value.List)
		return in.applyMacroValues(next, list.Slice()[1:], pos)
	}
	return expansion, nil
}

// applyMacroValues re-expands a macro using already-evaluated operand
// values (an intermediate expansion's own arguments), as opposed to
// expandMacro's call-site entry point, which converts source forms first.
func (in *Interp) applyMacroValues(macro *value.Macro, args []value.Value, pos token.Pos) (value.Value, error) {
	expansion, err := in.Apply(macro.Fn, args, pos)
	if err != nil {
		return nil, err
	}
	if ex, ok := Thrown(expansion); ok {
		return ex, nil
	}
	if next, ok := in.resolveExpansionMacro(expansion); ok {
		list := expansion.(*value.List)
		return in.applyMacroValues(next, list.Slice()[1:], pos)
	}
	return expansion, nil
}

// resolveExpansionMacro reports whether a freshly expanded form's own
// head resolves to another macro, for macroexpand's "expand until the
// head no longer resolves to a macro" loop.
func (in *Interp) resolveExpansionMacro(expansion value.Value) (*value.Macro, bool) {
	list, ok := expansion.(*value.List)
	if !ok || list.Empty() {
		return nil, false
	}
	headSym, ok := list.First().(value.Symbol)
	if !ok {
		return nil, false
	}
	var v *value.Var
	var ok2 bool
	if headSym.Namespace != "" {
		ns, nsOK := in.Registry.Get(headSym.Namespace)
		if !nsOK {
			return nil, false
		}
		v, ok2 = ns.Get(headSym.Name)
	} else {
		v, ok2 = in.Current.Get(headSym.Name)
		if !ok2 {
			v, ok2 = in.Core.Get(headSym.Name)
		}
	}
	if !ok2 {
		return nil, false
	}
	m, ok := v.Deref().(*value.Macro)
	return m, ok
}

// Apply invokes a callable Value (*value.Fn, *value.FnWithCaptures or
// *value.Primitive) with already-evaluated args, checking arity. recur/loop*
// tail-call optimization is loop*'s own trampoline (evalLet in let.go); a
// plain function call here never rebinds and re-enters.
func (in *Interp) Apply(head value.Value, args []value.Value, pos token.Pos) (value.Value, error) {
	switch fnv := head.(type) {
	case *value.Primitive:
		return fnv.Fn(args)
	case *value.Fn:
		return in.applyFn(fnv, nil, args, pos)
	case *value.FnWithCaptures:
		return in.applyFn(fnv.Fn, fnv.Captures, args, pos)
	default:
		kind := "non-callable value"
		if head != nil {
			kind = head.Kind().String()
		}
		return nil, errors.Newf(pos, "cannot call a value of kind %s", kind)
	}
}

// applyFn runs one fn* call: bind params, evaluate the body, and return its
// result. Unlike loop* (evalLet's isLoop trampoline in let.go), a bare fn*
// grants no tail-call optimization of its own — a Recur escaping the body
// (self-recursion without an enclosing loop*) is the same error every other
// non-tail Recur use already raises, not a rebind-and-reenter.
func (in *Interp) applyFn(fn *value.Fn, captures map[interface{}]interface{}, args []value.Value, pos token.Pos) (value.Value, error) {
	base := NewScope(nil)
	for k, v := range captures {
		base.Set(k, v)
	}

	callScope, err := bindParams(fn, base, args, pos)
	if err != nil {
		return nil, err
	}
	result, err := in.evalBody(fn.Body, callScope)
	if err != nil {
		return nil, err
	}
	if _, ok := result.(*value.Recur); ok {
		return nil, errors.Newf(pos, "recur used outside of loop*/fn* tail position")
	}
	return result, nil
}

// bindParams pushes one function-application scope frame, keyed by
// analyze.SlotKey{Ordinal, Level: fn.Level}, checking arity and
// collecting the variadic tail into a list.
func bindParams(fn *value.Fn, base *Scope, args []value.Value, pos token.Pos) (*Scope, error) {
	required := requiredArity(fn)
	if fn.Variadic {
		if len(args) < required {
			return nil, errors.Newf(pos, "expects %s, got %d argument(s)", arityDescription(fn), len(args))
		}
	} else if len(args) != required {
		return nil, errors.Newf(pos, "expects %s, got %d argument(s)", arityDescription(fn), len(args))
	}

	call := NewScope(base)
	for i := 0; i < required; i++ {
		call.Set(analyze.SlotKey{Ordinal: i, Level: fn.Level}, args[i])
	}
	if fn.Variadic {
		rest := value.NewList(args[required:]...)
		call.Set(analyze.SlotKey{Ordinal: required, Level: fn.Level}, rest)
	}
	return call, nil
}

func requiredArity(fn *value.Fn) int {
	if fn.Variadic {
		return fn.Params - 1
	}
	return fn.Params
}

func arityDescription(fn *value.Fn) string {
	n := requiredArity(fn)
	if fn.Variadic {
		return errors.NewMessage("at least %d argument(s)", []interface{}{n}).String()
	}
	return errors.NewMessage("%d argument(s)", []interface{}{n}).String()
}
