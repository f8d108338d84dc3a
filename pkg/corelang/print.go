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

package corelang

import (
	"fmt"
	"os"
	"strings"

	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/pkg/internal"
)

func init() {
	internal.Register("print", printPkg)
}

func joinPrStr(args []value.Value) string {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = value.PrStr(v)
	}
	return strings.Join(parts, " ")
}

func joinStr(args []value.Value) string {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = value.Str(v)
	}
	return strings.Join(parts, " ")
}

var printPkg = &internal.Package{
	Native: []*internal.Builtin{{
		Name:   "pr-str",
		Result: value.StringKind,
		Func: func(c *internal.CallCtxt) {
			c.Ret = value.String(joinPrStr(c.Rest(0)))
		},
	}, {
		Name:   "print-str",
		Result: value.StringKind,
		Func: func(c *internal.CallCtxt) {
			c.Ret = value.String(joinStr(c.Rest(0)))
		},
	}, {
		Name: "str",
		Result: value.StringKind,
		Func: func(c *internal.CallCtxt) {
			var b strings.Builder
			for _, v := range c.Rest(0) {
				if _, ok := v.(value.Nil); ok {
					continue
				}
				b.WriteString(value.Str(v))
			}
			c.Ret = value.String(b.String())
		},
	}, {
		Name: "pr",
		Func: func(c *internal.CallCtxt) {
			fmt.Fprint(os.Stdout, joinPrStr(c.Rest(0)))
			c.Ret = value.Nil{}
		},
	}, {
		Name: "prn",
		Func: func(c *internal.CallCtxt) {
			fmt.Fprintln(os.Stdout, joinPrStr(c.Rest(0)))
			c.Ret = value.Nil{}
		},
	}, {
		Name: "print",
		Func: func(c *internal.CallCtxt) {
			fmt.Fprint(os.Stdout, joinStr(c.Rest(0)))
			c.Ret = value.Nil{}
		},
	}, {
		Name: "println",
		Func: func(c *internal.CallCtxt) {
			fmt.Fprintln(os.Stdout, joinStr(c.Rest(0)))
			c.Ret = value.Nil{}
		},
	}},
}
