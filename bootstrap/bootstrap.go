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

// Package bootstrap wires pkg/corelang's native primitives and this
// package's self-hosted core.sg into a fresh Interp's core namespace, the
// two-stage startup every entry point (the cmd/sigil REPL, a script run,
// a host embedding the interpreter) performs before evaluating user code.
package bootstrap

import (
	_ "embed"

	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/internal/core/eval"
	"github.com/SummerRolf/sigil/pkg/corelang"
	"github.com/SummerRolf/sigil/pkg/ioutil"
	"github.com/SummerRolf/sigil/reader"
	"github.com/SummerRolf/sigil/token"
)

//go:embed core.sg
var coreSource string

// Install populates in.Core with every native primitive, then the
// self-hosted definitions in core.sg, or the file at overridePath if it
// is non-empty (the --core flag, for running against a modified prelude
// without a rebuild).
func Install(in *eval.Interp, overridePath string) error {
	corelang.Install(in)

	src, name := coreSource, "core.sg"
	if overridePath != "" {
		content, err := ioutil.Slurp(overridePath)
		if err != nil {
			return errors.Wrapf(err, token.NoPos, "bootstrap: --core override")
		}
		src, name = content, overridePath
	}
	forms, err := reader.Read(name, src)
	if err != nil {
		return errors.Wrapf(err, token.NoPos, "bootstrap: parse failure in %s", name)
	}
	for _, f := range forms {
		v, err := in.Eval(f, nil)
		if err != nil {
			return errors.Wrapf(err, token.NoPos, "bootstrap: %s", name)
		}
		if ex, thrown := eval.Thrown(v); thrown {
			return errors.Newf(token.NoPos, "bootstrap: uncaught exception loading %s: %s", name, ex.Message)
		}
	}
	return nil
}
