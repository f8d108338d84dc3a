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

package cmd

import (
	"fmt"

	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/internal/core/eval"
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/pkg/ioutil"
	"github.com/SummerRolf/sigil/reader"
	"github.com/SummerRolf/sigil/token"
)

// runScript interns *command-line-args* into in's default namespace, then
// evaluates every top-level form of path in order. An uncaught thrown
// exception or a host evaluation error aborts the run and is reported to
// stderr, matching the teacher's exitOnErr.
func runScript(c *Command, in *eval.Interp, path string, extra []string) error {
	args := make([]value.Value, len(extra))
	for i, a := range extra {
		args[i] = value.String(a)
	}
	in.Current.Intern("*command-line-args*", value.NewList(args...))

	content, err := ioutil.Slurp(path)
	if err != nil {
		return errors.Wrapf(err, token.NoPos, "sigil: %s", path)
	}
	forms, err := reader.Read(path, content)
	if err != nil {
		return errors.Wrapf(err, token.NoPos, "sigil: parse failure in %s", path)
	}

	for _, f := range forms {
		v, err := in.Eval(f, nil)
		if err != nil {
			return err
		}
		if ex, thrown := eval.Thrown(v); thrown {
			fmt.Fprintf(c.Stderr(), "uncaught exception: %s\n", ex.Message)
			return errPrintedError
		}
	}
	return nil
}

var errPrintedError = errors.New("sigil: uncaught exception")
