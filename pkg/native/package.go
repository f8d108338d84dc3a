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

// Package native turns an arbitrary Go value's exported methods into sigil
// primitives by reflection, for the embedding API's "register additional
// primitives by interning vars into a namespace" (§6): a host can hand
// Register a plain Go struct instead of hand-writing *value.Primitive
// wrappers and a CallCtxt-driven Builtin for each one.
package native

import (
	"fmt"
	"go/ast"
	"reflect"

	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/pkg/internal"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()
var valueType = reflect.TypeOf((*value.Value)(nil)).Elem()

// newInternalPackage reflects over pkg's exported methods, turning each
// into a Builtin: a niladic method with one non-error result becomes a
// constant; any other supported shape becomes a primitive whose arguments
// are converted from value.Value to the method's declared Go parameter
// types.
func newInternalPackage(pkg interface{}) *internal.Package {
	p := &internal.Package{}

	rv := reflect.ValueOf(pkg)
	t := rv.Type()

	for i := 0; i < rv.NumMethod(); i++ {
		m := rv.Method(i)
		name := t.Method(i).Name
		if !ast.IsExported(name) {
			continue
		}
		mt := m.Type()

		switch {
		case mt.NumIn() == 0 && mt.NumOut() == 1:
			p.Native = append(p.Native, &internal.Builtin{
				Name:  name,
				Const: goToValue(m.Call(nil)[0].Interface()),
			})
		case mt.NumOut() == 1 || (mt.NumOut() == 2 && mt.Out(1).AssignableTo(errorType)):
			p.Native = append(p.Native, &internal.Builtin{
				Name: name,
				Func: methodBuiltin(name, m),
			})
		}
	}

	return p
}

// methodBuiltin wraps m (a bound reflect.Value method with NumIn() typed
// parameters and either one result or a (result, error) pair) as a
// Builtin.Func: convert each CallCtxt argument to the parameter's Go type,
// call m, and convert the result back.
func methodBuiltin(name string, m reflect.Value) func(c *internal.CallCtxt) {
	mt := m.Type()
	returnsErr := mt.NumOut() == 2
	return func(c *internal.CallCtxt) {
		if c.Len() != mt.NumIn() {
			c.Err = fmt.Errorf("%s: expects %d argument(s), got %d", name, mt.NumIn(), c.Len())
			return
		}
		args := make([]reflect.Value, mt.NumIn())
		for i := range args {
			arg, err := argFor(c, i, mt.In(i))
			if err != nil {
				c.Err = err
				return
			}
			args[i] = arg
		}
		if !c.Do() {
			return
		}
		out := m.Call(args)
		if returnsErr {
			if errv := out[1].Interface(); errv != nil {
				c.Err = errv.(error)
				return
			}
		}
		c.Ret = goToValue(out[0].Interface())
	}
}

// argFor converts CallCtxt argument i to want, the method parameter's
// declared Go type.
func argFor(c *internal.CallCtxt, i int, want reflect.Type) (reflect.Value, error) {
	switch {
	case want.AssignableTo(valueType):
		return reflect.ValueOf(c.Value(i)), nil
	case want.Kind() == reflect.Int64 || want.Kind() == reflect.Int:
		n := c.Int64(i)
		return reflect.ValueOf(n).Convert(want), nil
	case want.Kind() == reflect.String:
		return reflect.ValueOf(c.String(i)), nil
	case want.Kind() == reflect.Bool:
		return reflect.ValueOf(c.Bool(i)), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type %s in argument %d", want, i)
	}
}

// goToValue wraps a Go return value in the value.Value it denotes. A
// result that is already a value.Value (the common case, since most
// embedding methods build their own collections) passes through unchanged.
func goToValue(v interface{}) value.Value {
	switch x := v.(type) {
	case value.Value:
		return x
	case nil:
		return value.Nil{}
	case string:
		return value.String(x)
	case bool:
		return value.Bool(x)
	case int:
		return value.Number(x)
	case int64:
		return value.Number(x)
	default:
		panic(fmt.Sprintf("native: unsupported return value %#v", v))
	}
}
