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
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/pkg/internal"
)

func init() {
	internal.Register("predicate", predicatePkg)
}

// typePredicate builds a one-argument Builtin named name reporting
// whether its argument's concrete Go type matches test.
func typePredicate(name string, test func(value.Value) bool) *internal.Builtin {
	return &internal.Builtin{
		Name:   name,
		Params: []internal.Param{{}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if c.Do() {
				c.Ret = value.Bool(test(v))
			}
		},
	}
}

var predicatePkg = &internal.Package{
	Native: []*internal.Builtin{
		typePredicate("nil?", func(v value.Value) bool {
			_, ok := v.(value.Nil)
			return ok
		}),
		typePredicate("true?", func(v value.Value) bool {
			b, ok := v.(value.Bool)
			return ok && bool(b)
		}),
		typePredicate("false?", func(v value.Value) bool {
			b, ok := v.(value.Bool)
			return ok && !bool(b)
		}),
		typePredicate("symbol?", func(v value.Value) bool {
			_, ok := v.(value.Symbol)
			return ok
		}),
		typePredicate("keyword?", func(v value.Value) bool {
			_, ok := v.(value.Keyword)
			return ok
		}),
		typePredicate("number?", func(v value.Value) bool {
			_, ok := v.(value.Number)
			return ok
		}),
		typePredicate("string?", func(v value.Value) bool {
			_, ok := v.(value.String)
			return ok
		}),
		typePredicate("fn?", func(v value.Value) bool {
			switch v.(type) {
			case *value.Fn, *value.FnWithCaptures, *value.Primitive:
				return true
			default:
				return false
			}
		}),
		typePredicate("macro?", func(v value.Value) bool {
			_, ok := v.(*value.Macro)
			return ok
		}),
	},
}
