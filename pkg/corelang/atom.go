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
	internal.Register("atom", atomPkg)
}

var atomPkg = &internal.Package{
	Native: []*internal.Builtin{{
		Name:   "atom",
		Params: []internal.Param{{}},
		Result: value.AtomKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if c.Do() {
				c.Ret = value.NewAtom(v)
			}
		},
	}, {
		Name:   "atom?",
		Params: []internal.Param{{}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if c.Do() {
				_, ok := v.(*value.Atom)
				c.Ret = value.Bool(ok)
			}
		},
	}, {
		Name:   "deref",
		Params: []internal.Param{{Kind: value.AtomKind}},
		Func: func(c *internal.CallCtxt) {
			a, ok := c.Value(0).(*value.Atom)
			if !c.Do() {
				return
			}
			if !ok {
				c.Err = errors.Newf(c.Pos, "deref: argument 0 should be atom")
				return
			}
			c.Ret = a.Deref()
		},
	}, {
		Name:   "reset!",
		Params: []internal.Param{{Kind: value.AtomKind}, {}},
		Func: func(c *internal.CallCtxt) {
			a, ok := c.Value(0).(*value.Atom)
			v := c.Value(1)
			if !c.Do() {
				return
			}
			if !ok {
				c.Err = errors.Newf(c.Pos, "reset!: argument 0 should be atom")
				return
			}
			c.Ret = a.Reset(v)
		},
	}},
}
