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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SummerRolf/sigil/ast"
	"github.com/SummerRolf/sigil/reader"
)

// readFn parses "(fn* [params...] body...)" and returns its parsed
// parameter names, variadic flag, and body forms, the same shape the
// evaluator would hand to Fn.
func readFn(t *testing.T, src string) ([]string, bool, []ast.Form) {
	t.Helper()
	form, err := reader.ReadOne("test", src)
	require.NoError(t, err)
	list := form.(*ast.List)
	require.Equal(t, "fn*", ast.Head(list))
	params, variadic, err := ParseParams(list.Items[1].(*ast.Vector))
	require.NoError(t, err)
	return params, variadic, list.Items[2:]
}

func TestFnRewritesParameters(t *testing.T) {
	params, variadic, body := readFn(t, "(fn* [a b] (+ a b))")
	result, err := Fn(params, variadic, body)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Params)
	assert.False(t, result.Variadic)
	assert.Equal(t, 0, result.Level)
	assert.Empty(t, result.Captures)

	call := result.Body[0].(*ast.List)
	a := call.Items[1].(*Slot)
	b := call.Items[2].(*Slot)
	assert.Equal(t, Slot{Ordinal: 0, Level: 0}, Slot{Ordinal: a.Ordinal, Level: a.Level})
	assert.Equal(t, Slot{Ordinal: 1, Level: 0}, Slot{Ordinal: b.Ordinal, Level: b.Level})
}

func TestNestedClosureCapturesOuterParameter(t *testing.T) {
	// Scenario 1 from the spec: ((fn* [a] ((fn* [b] (+ a b)) 2)) 3) -> 5
	params, variadic, body := readFn(t, "(fn* [a] ((fn* [b] (+ a b)) 2))")
	result, err := Fn(params, variadic, body)
	require.NoError(t, err)
	assert.Empty(t, result.Captures, "the outer lambda captures nothing")

	outerCall := result.Body[0].(*ast.List)
	nested := outerCall.Items[0].(*NestedFn)
	require.Equal(t, 1, nested.Result.Level)
	require.Len(t, nested.Result.Captures, 1)

	key := SlotKey{Ordinal: 0, Level: 0}
	ownerLevel, ok := nested.Result.Captures[key]
	require.True(t, ok, "inner lambda must capture outer parameter a")
	assert.Equal(t, 0, ownerLevel)

	innerCall := nested.Result.Body[0].(*ast.List)
	aRef := innerCall.Items[1].(*Slot)
	assert.Equal(t, 0, aRef.Ordinal)
	assert.Equal(t, 0, aRef.Level)
}

func TestVariadicParameter(t *testing.T) {
	params, variadic, _ := readFn(t, "(fn* [a & rest] rest)")
	assert.True(t, variadic)
	assert.Equal(t, []string{"a", "rest"}, params)
}

func TestLetBindingCapturedByNestedFn(t *testing.T) {
	params, variadic, body := readFn(t, "(fn* [] (let* [x 1] (fn* [] x)))")
	result, err := Fn(params, variadic, body)
	require.NoError(t, err)

	letForm := result.Body[0].(*ast.List)
	// (let* [x 1] (fn* [] x)) rewritten: body[2] is the nested fn*.
	nested := letForm.Items[2].(*NestedFn)
	ownerLevel, ok := nested.Result.Captures["x"]
	require.True(t, ok, "let*-bound local closed over by a nested fn* must be captured")
	assert.Equal(t, 0, ownerLevel)

	// Inside the nested fn*, the reference to x stays a plain symbol (not a
	// Slot), since it was never a fn* parameter.
	sym := nested.Result.Body[0].(*ast.Symbol)
	assert.Equal(t, "x", sym.Name)
}

func TestQuoteIsOpaque(t *testing.T) {
	params, variadic, body := readFn(t, "(fn* [a] (quote a))")
	result, err := Fn(params, variadic, body)
	require.NoError(t, err)
	assert.Empty(t, result.Captures)

	quoted := result.Body[0].(*ast.List)
	sym := quoted.Items[1].(*ast.Symbol)
	assert.Equal(t, "a", sym.Name, "quoted a is left as a plain symbol, never a Slot")
}

func TestQuasiquoteOnlyRewritesUnquote(t *testing.T) {
	params, variadic, body := readFn(t, "(fn* [a] `(x ~a y))")
	result, err := Fn(params, variadic, body)
	require.NoError(t, err)

	qq := result.Body[0].(*ast.List)
	require.Equal(t, "quasiquote", ast.Head(qq))
	tmpl := qq.Items[1].(*ast.List)

	// Literal template symbols x, y stay plain symbols.
	assert.Equal(t, "x", tmpl.Items[0].(*ast.Symbol).Name)
	assert.Equal(t, "y", tmpl.Items[2].(*ast.Symbol).Name)

	// ~a is live code: a is rewritten to a Slot and recorded as captured
	// only if referencing an outer level (it does not here, since a is
	// this lambda's own parameter, not a capture).
	unq := tmpl.Items[1].(*ast.List)
	require.Equal(t, "unquote", ast.Head(unq))
	slot := unq.Items[1].(*Slot)
	assert.Equal(t, 0, slot.Ordinal)
}

func TestCatchAnalyzedAsUnaryLambda(t *testing.T) {
	form, err := reader.ReadOne("test", "(catch* e (str e))")
	require.NoError(t, err)
	list := form.(*ast.List)
	exSym := list.Items[1].(*ast.Symbol)

	result, err := Catch(exSym.Name, list.Items[2:])
	require.NoError(t, err)
	assert.Equal(t, 1, result.Params)

	call := result.Body[0].(*ast.List)
	slot := call.Items[1].(*Slot)
	assert.Equal(t, 0, slot.Ordinal)
}
