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
	internal.Register("error", errorPkg)
}

var errorPkg = &internal.Package{
	Native: []*internal.Builtin{{
		// ex-info builds an untriggered exception value: evaluating
		// (ex-info msg data) on its own just returns that Exception, the
		// way any other value would be returned; only throw flags it as
		// in-flight.
		Name:   "ex-info",
		Params: []internal.Param{{Kind: value.StringKind}, {}},
		Result: value.ExceptionKind,
		Func: func(c *internal.CallCtxt) {
			msg, data := c.String(0), c.Value(1)
			if c.Do() {
				c.Ret = &value.Exception{Message: msg, Data: data}
			}
		},
	}, {
		Name:   "throw",
		Params: []internal.Param{{Kind: value.ExceptionKind}},
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			ex, ok := v.(*value.Exception)
			if !ok {
				c.Err = errors.Newf(c.Pos, "throw: argument must be an exception built by ex-info")
				return
			}
			c.Ret = &value.Exception{Message: ex.Message, Data: ex.Data, Thrown: true}
		},
	}},
}
