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

// Package corelang implements the prelude's primitive groups: numeric,
// collection, predicate, print, atom, error and introspection builtins
// live in their own files as internal.Package literals in the teacher's
// cue/pkg/* style (see pkg/internal), registered into an interpreter's
// core namespace by Install. A handful of primitives — apply, map, eval,
// read-string, swap! and load-file — need a live callback into the
// evaluator itself rather than operating on already-evaluated Values
// alone, so Install interns those directly instead of routing them
// through the internal.Package/CallCtxt machinery; gensym and the
// pkg/ioutil wrappers (slurp, spit, readline, time-ms) are interned the
// same way.
package corelang

import (
	"strconv"
	"sync/atomic"

	"github.com/SummerRolf/sigil/ast"
	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/internal/core/eval"
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/pkg/internal"
	"github.com/SummerRolf/sigil/pkg/ioutil"
	"github.com/SummerRolf/sigil/reader"
	"github.com/SummerRolf/sigil/token"
)

// groups lists the internal.Package names every pkg/corelang file
// registers itself under, installed in this fixed order so that a
// collision between two groups' builtin names (there are none today)
// would fail loudly rather than depend on map iteration order.
var groups = []string{"numeric", "collection", "predicate", "print", "atom", "error", "introspect"}

// Install populates in.Core with every prelude primitive: the
// self-contained internal.Package groups, then the handful that need to
// call back into in itself.
func Install(in *eval.Interp) {
	for _, name := range groups {
		pkg := internal.Lookup(name)
		if pkg == nil {
			panic("corelang: group not registered: " + name)
		}
		internal.Install(in.Core, pkg)
	}
	installInterpPrimitives(in)
}

func prim(name string, fn func(args []value.Value) (value.Value, error)) *value.Primitive {
	return &value.Primitive{Name: name, Fn: fn}
}

func installInterpPrimitives(in *eval.Interp) {
	in.Core.Intern("apply", prim("apply", func(args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return nil, errors.New("apply: requires a function and at least one argument")
		}
		last, ok := args[len(args)-1].(*value.List)
		if !ok {
			return nil, errors.New("apply: last argument must be a list")
		}
		callArgs := append(append([]value.Value{}, args[1:len(args)-1]...), last.Slice()...)
		return in.Apply(args[0], callArgs, token.NoPos)
	}))

	in.Core.Intern("map", prim("map", func(args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return nil, errors.New("map: requires a function and at least one collection")
		}
		seqs := make([][]value.Value, len(args)-1)
		n := -1
		for i, coll := range args[1:] {
			elems, ok := elementsOf(coll)
			if !ok {
				return nil, errors.New("map: not a sequable collection")
			}
			seqs[i] = elems
			if n == -1 || len(elems) < n {
				n = len(elems)
			}
		}
		out := make([]value.Value, 0, n)
		for i := 0; i < n; i++ {
			callArgs := make([]value.Value, len(seqs))
			for j, s := range seqs {
				callArgs[j] = s[i]
			}
			v, err := in.Apply(args[0], callArgs, token.NoPos)
			if err != nil {
				return nil, err
			}
			if ex, thrown := eval.Thrown(v); thrown {
				return ex, nil
			}
			out = append(out, v)
		}
		return value.NewList(out...), nil
	}))

	in.Core.Intern("eval", prim("eval", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errors.New("eval: requires exactly one argument")
		}
		// scope is nil: eval always runs at the top lexical scope, so a
		// def! inside the evaluated form mutates the namespace rather
		// than some enclosing call's local scope.
		return in.Eval(eval.ValueToForm(args[0]), nil)
	}))

	in.Core.Intern("read-string", prim("read-string", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errors.New("read-string: requires exactly one argument")
		}
		s, ok := args[0].(value.String)
		if !ok {
			return nil, errors.New("read-string: argument must be a string")
		}
		form, err := reader.ReadOne("read-string", string(s))
		if err != nil {
			return nil, errors.Wrapf(err, token.NoPos, "read-string: parse failure")
		}
		quoted := &ast.List{Items: []ast.Form{&ast.Symbol{Name: "quote"}, form}}
		return in.Eval(quoted, nil)
	}))

	in.Core.Intern("gensym", prim("gensym", func(args []value.Value) (value.Value, error) {
		prefix := "G__"
		if len(args) == 1 {
			s, ok := args[0].(value.String)
			if !ok {
				return nil, errors.New("gensym: argument must be a string")
			}
			prefix = string(s)
		} else if len(args) != 0 {
			return nil, errors.New("gensym: takes zero or one argument")
		}
		n := atomic.AddInt64(&gensymCounter, 1)
		return value.Symbol{Name: prefix + strconv.FormatInt(n, 10)}, nil
	}))

	in.Core.Intern("swap!", prim("swap!", func(args []value.Value) (value.Value, error) {
		if len(args) < 2 {
			return nil, errors.New("swap!: requires an atom and a function")
		}
		a, ok := args[0].(*value.Atom)
		if !ok {
			return nil, errors.New("swap!: argument 0 should be atom")
		}
		callArgs := append([]value.Value{a.Deref()}, args[2:]...)
		v, err := in.Apply(args[1], callArgs, token.NoPos)
		if err != nil {
			return nil, err
		}
		// A thrown exception leaves the atom untouched, the same way a
		// failed def! leaves the var untouched (see evalDef).
		if ex, thrown := eval.Thrown(v); thrown {
			return ex, nil
		}
		return a.Reset(v), nil
	}))

	in.Core.Intern("slurp", prim("slurp", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errors.New("slurp: requires exactly one argument")
		}
		path, ok := args[0].(value.String)
		if !ok {
			return nil, errors.New("slurp: argument must be a string")
		}
		content, err := ioutil.Slurp(string(path))
		if err != nil {
			return nil, errors.Wrapf(err, token.NoPos, "slurp: %s", string(path))
		}
		return value.String(content), nil
	}))

	in.Core.Intern("spit", prim("spit", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, errors.New("spit: requires a path and content")
		}
		path, ok1 := args[0].(value.String)
		content, ok2 := args[1].(value.String)
		if !ok1 || !ok2 {
			return nil, errors.New("spit: both arguments must be strings")
		}
		if err := ioutil.Spit(string(path), string(content)); err != nil {
			return nil, errors.Wrapf(err, token.NoPos, "spit: %s", string(path))
		}
		return value.Nil{}, nil
	}))

	in.Core.Intern("readline", prim("readline", func(args []value.Value) (value.Value, error) {
		if len(args) != 0 {
			return nil, errors.New("readline: takes no arguments")
		}
		line, ok, err := ioutil.Readline()
		if err != nil {
			return nil, errors.Wrapf(err, token.NoPos, "readline")
		}
		if !ok {
			return value.Nil{}, nil
		}
		return value.String(line), nil
	}))

	// load-file is a primitive rather than a core.sg function (see
	// SPEC_FULL.md §14): read-string only ever parses one form, and
	// nothing bootstrap code can call exposes where that form ended in
	// the source text — so a loop of read-string calls can't recover
	// the rest of the file. This primitive uses reader.Read directly to
	// parse every top-level form at once.
	in.Core.Intern("load-file", prim("load-file", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errors.New("load-file: requires exactly one argument")
		}
		path, ok := args[0].(value.String)
		if !ok {
			return nil, errors.New("load-file: argument must be a string")
		}
		content, err := ioutil.Slurp(string(path))
		if err != nil {
			return nil, errors.Wrapf(err, token.NoPos, "load-file: %s", string(path))
		}
		forms, err := reader.Read(string(path), content)
		if err != nil {
			return nil, errors.Wrapf(err, token.NoPos, "load-file: parse failure in %s", string(path))
		}
		var result value.Value = value.Nil{}
		for _, f := range forms {
			result, err = in.Eval(f, nil)
			if err != nil {
				return nil, err
			}
			if ex, thrown := eval.Thrown(result); thrown {
				return ex, nil
			}
		}
		return result, nil
	}))

	in.Core.Intern("time-ms", prim("time-ms", func(args []value.Value) (value.Value, error) {
		if len(args) != 0 {
			return nil, errors.New("time-ms: takes no arguments")
		}
		return value.Number(ioutil.TimeMs()), nil
	}))
}

var gensymCounter int64
