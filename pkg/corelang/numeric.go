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
	internal.Register("numeric", numericPkg)
}

var numericPkg = &internal.Package{
	Native: []*internal.Builtin{{
		Name:   "+",
		Params: []internal.Param{{Kind: value.NumberKind}},
		Result: value.NumberKind,
		Func: func(c *internal.CallCtxt) {
			acc := int64(0)
			for i := 0; i < c.Len() && c.Do(); i++ {
				n := c.Int64(i)
				sum, overflow := checkedAdd(acc, n)
				if overflow {
					c.Err = errors.Newf(c.Pos, "+: integer overflow")
					return
				}
				acc = sum
			}
			c.Ret = value.Number(acc)
		},
	}, {
		Name:   "-",
		Params: []internal.Param{{Kind: value.NumberKind}},
		Result: value.NumberKind,
		Func: func(c *internal.CallCtxt) {
			if c.Len() == 0 {
				c.Err = errors.Newf(c.Pos, "-: requires at least 1 argument")
				return
			}
			if c.Len() == 1 {
				n := c.Int64(0)
				diff, overflow := checkedSub(0, n)
				if overflow {
					c.Err = errors.Newf(c.Pos, "-: integer overflow")
					return
				}
				c.Ret = value.Number(diff)
				return
			}
			acc := c.Int64(0)
			for i := 1; i < c.Len() && c.Do(); i++ {
				n := c.Int64(i)
				diff, overflow := checkedSub(acc, n)
				if overflow {
					c.Err = errors.Newf(c.Pos, "-: integer overflow")
					return
				}
				acc = diff
			}
			c.Ret = value.Number(acc)
		},
	}, {
		Name:   "*",
		Params: []internal.Param{{Kind: value.NumberKind}},
		Result: value.NumberKind,
		Func: func(c *internal.CallCtxt) {
			acc := int64(1)
			for i := 0; i < c.Len() && c.Do(); i++ {
				n := c.Int64(i)
				prod, overflow := checkedMul(acc, n)
				if overflow {
					c.Err = errors.Newf(c.Pos, "*: integer overflow")
					return
				}
				acc = prod
			}
			c.Ret = value.Number(acc)
		},
	}, {
		Name:   "/",
		Params: []internal.Param{{Kind: value.NumberKind}},
		Result: value.NumberKind,
		Func: func(c *internal.CallCtxt) {
			if c.Len() == 0 {
				c.Err = errors.Newf(c.Pos, "/: requires at least 1 argument")
				return
			}
			if c.Len() == 1 {
				n := c.Int64(0)
				if n == 0 {
					c.Err = errors.Newf(c.Pos, "/: division by zero")
					return
				}
				c.Ret = value.Number(1 / n)
				return
			}
			acc := c.Int64(0)
			for i := 1; i < c.Len() && c.Do(); i++ {
				n := c.Int64(i)
				if n == 0 {
					c.Err = errors.Newf(c.Pos, "/: division by zero")
					return
				}
				acc /= n
			}
			c.Ret = value.Number(acc)
		},
	}, {
		Name:   "<",
		Params: []internal.Param{{Kind: value.NumberKind}, {Kind: value.NumberKind}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			a, b := c.Int64(0), c.Int64(1)
			if c.Do() {
				c.Ret = value.Bool(a < b)
			}
		},
	}, {
		Name:   "<=",
		Params: []internal.Param{{Kind: value.NumberKind}, {Kind: value.NumberKind}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			a, b := c.Int64(0), c.Int64(1)
			if c.Do() {
				c.Ret = value.Bool(a <= b)
			}
		},
	}, {
		Name:   ">",
		Params: []internal.Param{{Kind: value.NumberKind}, {Kind: value.NumberKind}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			a, b := c.Int64(0), c.Int64(1)
			if c.Do() {
				c.Ret = value.Bool(a > b)
			}
		},
	}, {
		Name:   ">=",
		Params: []internal.Param{{Kind: value.NumberKind}, {Kind: value.NumberKind}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			a, b := c.Int64(0), c.Int64(1)
			if c.Do() {
				c.Ret = value.Bool(a >= b)
			}
		},
	}, {
		Name:   "=",
		Params: []internal.Param{{}, {}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			a, b := c.Value(0), c.Value(1)
			if c.Do() {
				c.Ret = value.Bool(value.Equal(a, b))
			}
		},
	}},
}

func checkedAdd(a, b int64) (sum int64, overflow bool) {
	sum = a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, true
	}
	return sum, false
}

func checkedSub(a, b int64) (diff int64, overflow bool) {
	diff = a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, true
	}
	return diff, false
}

func checkedMul(a, b int64) (prod int64, overflow bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	prod = a * b
	if prod/b != a {
		return 0, true
	}
	return prod, false
}
