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

package analyze

import (
	"github.com/SummerRolf/sigil/ast"
	"github.com/SummerRolf/sigil/errors"
)

// Fn analyzes a top-level fn* form: params is its parameter list with the
// trailing "&" already stripped (variadic reports whether the last
// parameter collects the remainder), and body is its sequence of body
// forms.
func Fn(params []string, variadic bool, body []ast.Form) (*FnResult, error) {
	a := &analyzer{}
	return a.analyzeFn(params, variadic, body)
}

// Catch analyzes a catch* clause, which the spec treats as a unary lambda
// over the exception-binding symbol.
func Catch(exceptionSymbol string, body []ast.Form) (*FnResult, error) {
	a := &analyzer{}
	return a.analyzeFn([]string{exceptionSymbol}, false, body)
}

// scopeEntry records how a single name is bound in one analyzer scope
// frame: either as a positionally-addressed fn*/catch* parameter (isParam)
// or as a plain let*/loop*-bound local resolved dynamically by name.
type scopeEntry struct {
	isParam bool
	ordinal int
	level   int
}

// lambdaCtx is the capture-set accumulator for one currently-open fn*/
// catch* analysis.
type lambdaCtx struct {
	level    int
	captures map[interface{}]int
}

// analyzer walks one fn*/catch* body (and, transitively, any fn*/catch*
// nested within it) maintaining a stack of lexical scopes and a stack of
// open lambda capture-sets.
type analyzer struct {
	scopes  []map[string]scopeEntry
	lambdas []*lambdaCtx
}

func (a *analyzer) currentLevel() int {
	return a.lambdas[len(a.lambdas)-1].level
}

func (a *analyzer) currentCaptures() map[interface{}]int {
	return a.lambdas[len(a.lambdas)-1].captures
}

// analyzeFn is the shared implementation behind Fn, Catch, and any
// fn*/catch* encountered mid-walk: it opens a new lambda level and scope
// frame, walks body, then hoists any capture that still reaches further
// out into the enclosing lambda's own capture set.
func (a *analyzer) analyzeFn(params []string, variadic bool, body []ast.Form) (*FnResult, error) {
	level := len(a.lambdas)
	lc := &lambdaCtx{level: level, captures: map[interface{}]int{}}
	a.lambdas = append(a.lambdas, lc)

	frame := make(map[string]scopeEntry, len(params))
	for i, p := range params {
		frame[p] = scopeEntry{isParam: true, ordinal: i, level: level}
	}
	a.scopes = append(a.scopes, frame)

	rewritten := make([]ast.Form, len(body))
	var werr error
	for i, f := range body {
		rf, err := a.walk(f)
		if err != nil {
			werr = err
			break
		}
		rewritten[i] = rf
	}

	a.scopes = a.scopes[:len(a.scopes)-1]
	a.lambdas = a.lambdas[:len(a.lambdas)-1]

	if werr != nil {
		return nil, werr
	}

	if len(a.lambdas) > 0 {
		outer := a.lambdas[len(a.lambdas)-1]
		for k, ownerLevel := range lc.captures {
			if ownerLevel < outer.level {
				if _, seen := outer.captures[k]; !seen {
					outer.captures[k] = ownerLevel
				}
			}
		}
	}

	return &FnResult{
		Params:   len(params),
		Variadic: variadic,
		Level:    level,
		Body:     rewritten,
		Captures: lc.captures,
	}, nil
}

func (a *analyzer) walk(f ast.Form) (ast.Form, error) {
	switch x := f.(type) {
	case *ast.Symbol:
		return a.resolveSymbol(x), nil
	case *ast.List:
		return a.walkListForm(x)
	case *ast.Vector:
		items, err := a.walkAll(x.Items)
		if err != nil {
			return nil, err
		}
		return &ast.Vector{Position: x.Position, Items: items}, nil
	case *ast.Map:
		items, err := a.walkAll(x.Items)
		if err != nil {
			return nil, err
		}
		return &ast.Map{Position: x.Position, Items: items}, nil
	case *ast.Set:
		items, err := a.walkAll(x.Items)
		if err != nil {
			return nil, err
		}
		return &ast.Set{Position: x.Position, Items: items}, nil
	default:
		// Nil, Bool, Number, String, Keyword: self-evaluating leaves, never
		// rewritten.
		return f, nil
	}
}

func (a *analyzer) walkAll(items []ast.Form) ([]ast.Form, error) {
	out := make([]ast.Form, len(items))
	for i, it := range items {
		ri, err := a.walk(it)
		if err != nil {
			return nil, err
		}
		out[i] = ri
	}
	return out, nil
}

// resolveSymbol rewrites a free, unqualified symbol to the Slot it
// lexically refers to if it names a fn*/catch* parameter, recording a
// capture when that parameter (or local) belongs to a less-nested lambda
// than the one currently being analyzed. A namespace-qualified symbol, or
// one that resolves to nothing in scope, is left untouched for the
// evaluator to resolve dynamically.
func (a *analyzer) resolveSymbol(sym *ast.Symbol) ast.Form {
	if sym.Namespace != "" {
		return sym
	}
	cur := a.currentLevel()
	for i := len(a.scopes) - 1; i >= 0; i-- {
		entry, ok := a.scopes[i][sym.Name]
		if !ok {
			continue
		}
		if entry.isParam {
			if entry.level < cur {
				key := SlotKey{Ordinal: entry.ordinal, Level: entry.level}
				caps := a.currentCaptures()
				if _, seen := caps[key]; !seen {
					caps[key] = entry.level
				}
			}
			return &Slot{Position: sym.Position, Ordinal: entry.ordinal, Level: entry.level}
		}
		if entry.level < cur {
			caps := a.currentCaptures()
			if _, seen := caps[sym.Name]; !seen {
				caps[sym.Name] = entry.level
			}
		}
		return sym
	}
	return sym
}

// walkListForm dispatches on a list's head symbol before falling back to
// treating it as a plain application/special form whose every sub-form is
// walked uniformly.
func (a *analyzer) walkListForm(x *ast.List) (ast.Form, error) {
	if len(x.Items) == 0 {
		return x, nil
	}
	switch ast.Head(x) {
	case "quote":
		// Fully opaque: quoted data is never rewritten or captured.
		return x, nil
	case "quasiquote":
		return a.walkQuasiquote(x)
	case "var":
		// (var sym) names a namespace var directly; sym is never a lexical
		// reference.
		return x, nil
	case "def!", "defmacro!":
		return a.walkDef(x)
	case "fn*":
		return a.walkNestedFn(x)
	case "catch*":
		return a.walkNestedCatch(x)
	case "let*", "loop*":
		return a.walkLet(x)
	default:
		return a.walkGenericList(x)
	}
}

func (a *analyzer) walkGenericList(x *ast.List) (ast.Form, error) {
	items, err := a.walkAll(x.Items)
	if err != nil {
		return nil, err
	}
	return &ast.List{Position: x.Position, Items: items}, nil
}

// walkDef handles (def! sym expr) and (defmacro! sym fn-expr): sym names
// the var being defined, not a lexical reference, so only expr is walked.
func (a *analyzer) walkDef(x *ast.List) (ast.Form, error) {
	if len(x.Items) != 3 {
		return x, nil
	}
	val, err := a.walk(x.Items[2])
	if err != nil {
		return nil, err
	}
	return &ast.List{Position: x.Position, Items: []ast.Form{x.Items[0], x.Items[1], val}}, nil
}

// walkQuasiquote walks the single quasiquoted template of a (quasiquote x)
// form, descending only into unquote/splice-unquote subforms as live code;
// everything else in the template is opaque data, matching how the
// evaluator's own quasiquote expansion (§4.5) wraps bare template symbols
// in (quote ...) itself.
func (a *analyzer) walkQuasiquote(x *ast.List) (ast.Form, error) {
	if len(x.Items) != 2 {
		return x, nil
	}
	tmpl, err := a.walkQuasiquoteTemplate(x.Items[1])
	if err != nil {
		return nil, err
	}
	return &ast.List{Position: x.Position, Items: []ast.Form{x.Items[0], tmpl}}, nil
}

func (a *analyzer) walkQuasiquoteTemplate(f ast.Form) (ast.Form, error) {
	switch x := f.(type) {
	case *ast.List:
		if h := ast.Head(x); (h == "unquote" || h == "splice-unquote") && len(x.Items) == 2 {
			inner, err := a.walk(x.Items[1])
			if err != nil {
				return nil, err
			}
			return &ast.List{Position: x.Position, Items: []ast.Form{x.Items[0], inner}}, nil
		}
		items := make([]ast.Form, len(x.Items))
		for i, it := range x.Items {
			ri, err := a.walkQuasiquoteTemplate(it)
			if err != nil {
				return nil, err
			}
			items[i] = ri
		}
		return &ast.List{Position: x.Position, Items: items}, nil
	case *ast.Vector:
		items := make([]ast.Form, len(x.Items))
		for i, it := range x.Items {
			ri, err := a.walkQuasiquoteTemplate(it)
			if err != nil {
				return nil, err
			}
			items[i] = ri
		}
		return &ast.Vector{Position: x.Position, Items: items}, nil
	default:
		// Maps, sets, symbols and scalars are opaque template data (§4.5
		// returns (quote x) unchanged for a map or symbol).
		return f, nil
	}
}

// walkNestedFn handles a (fn* [params...] body...) form found while
// analyzing an enclosing fn*/catch*: it is analyzed now, at the correct
// nesting level, and spliced back in as a NestedFn so the evaluator never
// has to re-analyze it.
func (a *analyzer) walkNestedFn(x *ast.List) (ast.Form, error) {
	if len(x.Items) < 2 {
		return nil, errors.Newf(x.Position, "fn* requires a parameter vector")
	}
	pvec, ok := x.Items[1].(*ast.Vector)
	if !ok {
		return nil, errors.Newf(x.Items[1].Pos(), "fn* parameter list must be a vector")
	}
	params, variadic, err := ParseParams(pvec)
	if err != nil {
		return nil, err
	}
	result, err := a.analyzeFn(params, variadic, x.Items[2:])
	if err != nil {
		return nil, err
	}
	return &NestedFn{Position: x.Position, Result: result}, nil
}

// walkNestedCatch handles a (catch* ex body...) clause wherever it is
// found during a walk; it is always a direct child of a try* form in
// practice, but the analyzer does not need to assume that.
func (a *analyzer) walkNestedCatch(x *ast.List) (ast.Form, error) {
	if len(x.Items) < 2 {
		return nil, errors.Newf(x.Position, "catch* requires an exception-binding symbol")
	}
	exSym, ok := x.Items[1].(*ast.Symbol)
	if !ok || exSym.Namespace != "" {
		return nil, errors.Newf(x.Items[1].Pos(), "catch* binding must be an unqualified symbol")
	}
	result, err := a.analyzeFn([]string{exSym.Name}, false, x.Items[2:])
	if err != nil {
		return nil, err
	}
	return &NestedFn{Position: x.Position, Result: result}, nil
}

// walkLet handles let*/loop* uniformly: both introduce a plain lexical
// scope (no new lambda level) with forward-visible binding names, so that
// mutually-referential bindings and any parameter references inside their
// exprs or body are rewritten correctly. loop*'s repeat-on-recur behavior
// is purely an evaluator concern.
func (a *analyzer) walkLet(x *ast.List) (ast.Form, error) {
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

	level := a.currentLevel()
	frame := make(map[string]scopeEntry, len(names))
	for _, n := range names {
		frame[n] = scopeEntry{level: level}
	}
	a.scopes = append(a.scopes, frame)
	defer func() { a.scopes = a.scopes[:len(a.scopes)-1] }()

	newBindings := make([]ast.Form, len(bvec.Items))
	for i := 0; i < len(bvec.Items); i += 2 {
		newBindings[i] = bvec.Items[i]
		val, err := a.walk(bvec.Items[i+1])
		if err != nil {
			return nil, err
		}
		newBindings[i+1] = val
	}

	body, err := a.walkAll(x.Items[2:])
	if err != nil {
		return nil, err
	}

	items := make([]ast.Form, 0, 2+len(body))
	items = append(items, x.Items[0], &ast.Vector{Position: bvec.Position, Items: newBindings})
	items = append(items, body...)
	return &ast.List{Position: x.Position, Items: items}, nil
}

// ParseParams splits a fn* parameter vector into its plain names and
// whether it ends with a "& rest" variadic tail. It is exported so the
// evaluator can parse a (fn* [params...] ...) form's parameter vector the
// same way before handing the names to Fn.
func ParseParams(pvec *ast.Vector) ([]string, bool, error) {
	var params []string
	for i := 0; i < len(pvec.Items); i++ {
		sym, ok := pvec.Items[i].(*ast.Symbol)
		if !ok || sym.Namespace != "" {
			return nil, false, errors.Newf(pvec.Items[i].Pos(), "fn* parameter must be an unqualified symbol")
		}
		if sym.Name != "&" {
			params = append(params, sym.Name)
			continue
		}
		if i+1 >= len(pvec.Items) {
			return nil, false, errors.Newf(sym.Position, "missing variadic parameter name after '&'")
		}
		restSym, ok := pvec.Items[i+1].(*ast.Symbol)
		if !ok || restSym.Namespace != "" {
			return nil, false, errors.Newf(pvec.Items[i+1].Pos(), "variadic parameter must be an unqualified symbol")
		}
		if i+2 < len(pvec.Items) {
			return nil, false, errors.Newf(pvec.Items[i+2].Pos(), "no parameters allowed after the variadic parameter")
		}
		params = append(params, restSym.Name)
		return params, true, nil
	}
	return params, false, nil
}
