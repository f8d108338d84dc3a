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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/SummerRolf/sigil/internal/core/eval"
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/reader"
)

// runREPL reads one form per prompt from stdin, evaluates it against in,
// and prints its pr-str representation — until stdin is exhausted. A
// read or host evaluation error is reported and does not end the
// session; an uncaught thrown exception is reported the same way.
func runREPL(c *Command, in *eval.Interp, cfg replConfig) error {
	out := c.OutOrStdout()
	stdin := bufio.NewScanner(c.InOrStdin())
	stdin.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			fmt.Fprint(out, cfg.Prompt)
		}
		if !stdin.Scan() {
			break
		}
		buf.WriteString(stdin.Text())
		buf.WriteByte('\n')

		src := buf.String()
		if !formsBalanced(src) {
			continue
		}
		buf.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}

		form, err := reader.ReadOne("repl", src)
		if err != nil {
			fmt.Fprintln(c.Stderr(), err)
			continue
		}
		v, err := in.Eval(form, nil)
		if err != nil {
			fmt.Fprintln(c.Stderr(), err)
			continue
		}
		if ex, thrown := eval.Thrown(v); thrown {
			fmt.Fprintf(c.Stderr(), "uncaught exception: %s\n", ex.Message)
			continue
		}
		fmt.Fprintln(out, value.PrStr(v))
	}
	if err := stdin.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// formsBalanced reports whether src contains no unclosed (), [], {},
// ignoring brackets inside a string literal, so the REPL knows when to
// stop collecting lines and hand a complete form to the reader.
func formsBalanced(src string) bool {
	depth := 0
	inString := false
	escaped := false
	for _, r := range src {
		switch {
		case escaped:
			escaped = false
		case inString && r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case inString:
			// inside a string, brackets don't count
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		}
	}
	return depth <= 0 && !inString
}
