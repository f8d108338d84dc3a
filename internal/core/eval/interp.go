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

// Package eval implements sigil's evaluator: the public evaluate(form) ->
// Value | Error operation of §4.4, its runtime lexical-scope stack, and
// the quasiquote expansion of §4.5. It sits above internal/core/analyze
// and internal/core/value, translating an *analyze.FnResult produced for
// a fn*/catch* form into a *value.Fn/*value.FnWithCaptures, and applying
// those at call sites.
package eval

import (
	"github.com/SummerRolf/sigil/ast"
	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/internal/core/analyze"
	"github.com/SummerRolf/sigil/internal/core/namespace"
	"github.com/SummerRolf/sigil/internal/core/value"
)

// Interp is one sigil interpreter instance: the namespace registry plus
// the two namespaces §4.2 names explicitly. All mutable state the
// evaluator touches (namespaces, Vars, Atoms, the lexical-scope stack) is
// reachable only through an Interp, so a host may run several interpreter
// instances independently in the same process.
type Interp struct {
	Registry *namespace.Registry
	Core     *namespace.Namespace
	Current  *namespace.Namespace
}

// NewInterp creates an interpreter with its "core" and "default"
// namespaces already registered, empty. The caller (normally
// bootstrap.Install) populates Core with the prelude's primitives and
// self-hosted definitions before any user code runs.
func NewInterp() *Interp {
	reg := namespace.NewRegistry()
	return &Interp{
		Registry: reg,
		Core:     reg.GetOrCreate("core"),
		Current:  reg.GetOrCreate("default"),
	}
}

// Eval evaluates a single form in scope, which is nil at the top level
// (REPL input or a freshly loaded file, with no enclosing fn*/catch*).
// The returned error is a host-level evaluation failure (bad special-form
// syntax, an unresolved symbol, a primitive's internal error); a sigil
// exception in flight is instead carried as an ordinary *value.Exception
// return value with Thrown set, per the evaluator's single-return-value
// threading (see Thrown() and SPEC_FULL.md's note on this choice).
func (in *Interp) Eval(f ast.Form, scope *Scope) (value.Value, error) {
	switch x := f.(type) {
	case *ast.Nil:
		return value.Nil{}, nil
	case *ast.Bool:
		return value.Bool(x.Value), nil
	case *ast.Number:
		return value.Number(x.Value), nil
	case *ast.String:
		return value.String(x.Value), nil
	case *ast.Keyword:
		return value.Keyword{Namespace: x.Namespace, Name: x.Name}, nil
	case *ast.Symbol:
		return in.resolveSymbol(x, scope)
	case *analyze.Slot:
		return in.resolveSlot(x, scope)
	case *analyze.NestedFn:
		return in.buildFn(x.Result, scope)
	case *constForm:
		if v, ok := x.value.(*value.Var); ok {
			return v.Deref(), nil
		}
		return x.value, nil
	case *ast.Vector:
		return in.evalVector(x, scope)
	case *ast.Map:
		return in.evalMap(x, scope)
	case *ast.Set:
		return in.evalSet(x, scope)
	case *ast.List:
		return in.evalList(x, scope)
	default:
		return nil, errors.Newf(f.Pos(), "cannot evaluate form of type %T", f)
	}
}

// Thrown reports whether v is an in-flight sigil exception, i.e. the
// sentinel a caller evaluating a sub-form must check for before treating
// the sub-form's result as ordinary data (see do's "short-circuit if any
// yields a thrown exception").
func Thrown(v value.Value) (*value.Exception, bool) {
	ex, ok := v.(*value.Exception)
	return ex, ok && ex.Thrown
}

// resolveSymbol implements §4.4's Symbol dispatch: namespace-qualified
// symbols resolve directly against that namespace; unqualified symbols
// search the lexical scope stack innermost-out, then the current
// namespace, falling back to core (so unqualified references to prelude
// primitives and bootstrap definitions resolve without every namespace
// having to re-intern them — see SPEC_FULL.md's note on this fallback).
func (in *Interp) resolveSymbol(sym *ast.Symbol, scope *Scope) (value.Value, error) {
	if sym.Namespace != "" {
		ns, ok := in.Registry.Get(sym.Namespace)
		if !ok {
			return nil, errors.Newf(sym.Position, "no such namespace: %s", sym.Namespace)
		}
		v, ok := ns.Get(sym.Name)
		if !ok {
			return nil, errors.Newf(sym.Position, "unable to resolve symbol: %s/%s", sym.Namespace, sym.Name)
		}
		return v.Deref(), nil
	}

	if scope != nil {
		if raw, ok := scope.Get(sym.Name); ok {
			return derefBinding(raw)
		}
	}

	if v, ok := in.Current.Get(sym.Name); ok {
		return v.Deref(), nil
	}
	if v, ok := in.Core.Get(sym.Name); ok {
		return v.Deref(), nil
	}
	return nil, errors.Newf(sym.Position, "unable to resolve symbol: %s", sym.Name)
}

// resolveSlot looks up a rewritten fn*/catch* parameter reference by its
// (Ordinal, Level) address.
func (in *Interp) resolveSlot(s *analyze.Slot, scope *Scope) (value.Value, error) {
	key := analyze.SlotKey{Ordinal: s.Ordinal, Level: s.Level}
	if scope != nil {
		if raw, ok := scope.Get(key); ok {
			v, ok := raw.(value.Value)
			if !ok {
				return nil, errors.Newf(s.Position, "internal error: slot %d/%d holds no value", s.Level, s.Ordinal)
			}
			return v, nil
		}
	}
	return nil, errors.Newf(s.Position, "internal error: unresolved parameter slot %d/%d", s.Level, s.Ordinal)
}

// derefBinding unwraps whatever a string-keyed scope entry actually holds:
// a *cell for a let*/loop* local (transparently dereferenced, surfacing a
// forward-reference error if read before assignment), or a plain
// value.Value for anything else.
func derefBinding(raw interface{}) (value.Value, error) {
	switch x := raw.(type) {
	case *cell:
		v, err := x.get()
		if err != nil {
			return nil, err
		}
		return v.(value.Value), nil
	case value.Value:
		return x, nil
	default:
		return nil, errors.New("internal error: malformed scope binding")
	}
}

func (in *Interp) evalVector(x *ast.Vector, scope *Scope) (value.Value, error) {
	vec := value.EmptyVector
	for _, it := range x.Items {
		v, err := in.Eval(it, scope)
		if err != nil {
			return nil, err
		}
		if ex, ok := Thrown(v); ok {
			return ex, nil
		}
		vec = vec.PushBack(v)
	}
	return vec, nil
}

func (in *Interp) evalMap(x *ast.Map, scope *Scope) (value.Value, error) {
	kvs := make([]value.Value, 0, len(x.Items))
	for _, it := range x.Items {
		v, err := in.Eval(it, scope)
		if err != nil {
			return nil, err
		}
		if ex, ok := Thrown(v); ok {
			return ex, nil
		}
		kvs = append(kvs, v)
	}
	return value.NewMap(kvs...), nil
}

func (in *Interp) evalSet(x *ast.Set, scope *Scope) (value.Value, error) {
	set := value.EmptySet
	for _, it := range x.Items {
		v, err := in.Eval(it, scope)
		if err != nil {
			return nil, err
		}
		if ex, ok := Thrown(v); ok {
			return ex, nil
		}
		set = set.Conj(v)
	}
	return set, nil
}

// evalBody runs items in do-sequence order: each is evaluated in turn,
// and a thrown exception immediately short-circuits the rest, becoming
// the body's result. An empty body evaluates to nil.
func (in *Interp) evalBody(items []ast.Form, scope *Scope) (value.Value, error) {
	var result value.Value = value.Nil{}
	for _, it := range items {
		v, err := in.Eval(it, scope)
		if err != nil {
			return nil, err
		}
		result = v
		if ex, ok := Thrown(v); ok {
			return ex, nil
		}
	}
	return result, nil
}
