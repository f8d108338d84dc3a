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
	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/pkg/internal"
)

func init() {
	internal.Register("introspect", introspectPkg)
}

// Only a Var carries metadata (SPEC_FULL.md's :doc-on-defn supplement),
// so meta/with-meta only ever see (var sym) as their first argument, not
// an arbitrary value.
var introspectPkg = &internal.Package{
	Native: []*internal.Builtin{{
		Name:   "meta",
		Params: []internal.Param{{Kind: value.VarKind}},
		Func: func(c *internal.CallCtxt) {
			v, ok := c.Value(0).(*value.Var)
			if !c.Do() {
				return
			}
			if !ok {
				c.Err = errors.Newf(c.Pos, "meta: argument 0 should be a var")
				return
			}
			if v.Meta == nil {
				c.Ret = value.Nil{}
				return
			}
			c.Ret = v.Meta
		},
	}, {
		Name:   "with-meta",
		Params: []internal.Param{{Kind: value.VarKind}, {Kind: value.MapKind}},
		Result: value.VarKind,
		Func: func(c *internal.CallCtxt) {
			v, ok := c.Value(0).(*value.Var)
			m, mOK := c.Value(1).(*value.Map)
			if !c.Do() {
				return
			}
			if !ok {
				c.Err = errors.Newf(c.Pos, "with-meta: argument 0 should be a var")
				return
			}
			if !mOK {
				c.Err = errors.Newf(c.Pos, "with-meta: argument 1 should be a map")
				return
			}
			v.Meta = m
			c.Ret = v
		},
	}},
}
