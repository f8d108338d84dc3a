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
	internal.Register("collection", collectionPkg)
}

// elementsOf returns v's elements in iteration order for every sequential
// or set-like collection count/first/rest/conj/concat/seq need to treat
// uniformly, and false if v isn't one of those kinds.
func elementsOf(v value.Value) ([]value.Value, bool) {
	switch x := v.(type) {
	case *value.List:
		return x.Slice(), true
	case *value.Vector:
		return x.ToSlice(), true
	case *value.Set:
		var out []value.Value
		x.Each(func(e value.Value) bool { out = append(out, e); return true })
		return out, true
	}
	return nil, false
}

var collectionPkg = &internal.Package{
	Native: []*internal.Builtin{{
		Name: "list",
		Func: func(c *internal.CallCtxt) {
			c.Ret = value.NewList(c.Rest(0)...)
		},
	}, {
		Name:   "list?",
		Params: []internal.Param{{}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if c.Do() {
				_, ok := v.(*value.List)
				c.Ret = value.Bool(ok)
			}
		},
	}, {
		Name:   "empty?",
		Params: []internal.Param{{}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			n, err := lengthOf("empty?", v)
			if err != nil {
				c.Err = err
				return
			}
			c.Ret = value.Bool(n == 0)
		},
	}, {
		Name:   "count",
		Params: []internal.Param{{}},
		Result: value.NumberKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			n, err := lengthOf("count", v)
			if err != nil {
				c.Err = err
				return
			}
			c.Ret = value.Number(n)
		},
	}, {
		Name:   "first",
		Params: []internal.Param{{}},
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			elems, ok := elementsOf(v)
			if !ok {
				c.Err = errors.Newf(c.Pos, "first: not a sequable collection")
				return
			}
			if len(elems) == 0 {
				c.Ret = value.Nil{}
				return
			}
			c.Ret = elems[0]
		},
	}, {
		Name:   "rest",
		Params: []internal.Param{{}},
		Result: value.ListKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			elems, ok := elementsOf(v)
			if !ok {
				c.Err = errors.Newf(c.Pos, "rest: not a sequable collection")
				return
			}
			if len(elems) == 0 {
				c.Ret = value.EmptyList
				return
			}
			c.Ret = value.NewList(elems[1:]...)
		},
	}, {
		Name:   "last",
		Params: []internal.Param{{}},
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			elems, ok := elementsOf(v)
			if !ok {
				c.Err = errors.Newf(c.Pos, "last: not a sequable collection")
				return
			}
			if len(elems) == 0 {
				c.Ret = value.Nil{}
				return
			}
			c.Ret = elems[len(elems)-1]
		},
	}, {
		Name:   "nth",
		Params: []internal.Param{{}, {Kind: value.NumberKind}},
		Func: func(c *internal.CallCtxt) {
			v, i := c.Value(0), c.Int64(1)
			if !c.Do() {
				return
			}
			elems, ok := elementsOf(v)
			if !ok {
				c.Err = errors.Newf(c.Pos, "nth: not a sequable collection")
				return
			}
			if i < 0 || int(i) >= len(elems) {
				c.Err = errors.Newf(c.Pos, "nth: index %d out of range", i)
				return
			}
			c.Ret = elems[i]
		},
	}, {
		Name:   "cons",
		Params: []internal.Param{{}, {}},
		Result: value.ListKind,
		Func: func(c *internal.CallCtxt) {
			head, coll := c.Value(0), c.Value(1)
			if !c.Do() {
				return
			}
			elems, ok := elementsOf(coll)
			if !ok {
				c.Err = errors.Newf(c.Pos, "cons: not a sequable collection")
				return
			}
			c.Ret = value.NewList(append([]value.Value{head}, elems...)...)
		},
	}, {
		Name:   "concat",
		Result: value.ListKind,
		Func: func(c *internal.CallCtxt) {
			var out []value.Value
			for i := 0; i < c.Len() && c.Do(); i++ {
				elems, ok := elementsOf(c.Value(i))
				if !ok {
					c.Err = errors.Newf(c.Pos, "concat: argument %d is not a sequable collection", i)
					return
				}
				out = append(out, elems...)
			}
			c.Ret = value.NewList(out...)
		},
	}, {
		Name:   "vec",
		Params: []internal.Param{{}},
		Result: value.VectorKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			elems, ok := elementsOf(v)
			if !ok {
				c.Err = errors.Newf(c.Pos, "vec: not a sequable collection")
				return
			}
			c.Ret = value.NewVector(elems...)
		},
	}, {
		Name:   "vector",
		Result: value.VectorKind,
		Func: func(c *internal.CallCtxt) {
			c.Ret = value.NewVector(c.Rest(0)...)
		},
	}, {
		Name:   "vector?",
		Params: []internal.Param{{}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if c.Do() {
				_, ok := v.(*value.Vector)
				c.Ret = value.Bool(ok)
			}
		},
	}, {
		Name:   "sequential?",
		Params: []internal.Param{{}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			switch v.(type) {
			case *value.List, *value.Vector:
				c.Ret = value.Bool(true)
			default:
				c.Ret = value.Bool(false)
			}
		},
	}, {
		Name:   "hash-map",
		Result: value.MapKind,
		Func: func(c *internal.CallCtxt) {
			kvs := c.Rest(0)
			if len(kvs)%2 != 0 {
				c.Err = errors.Newf(c.Pos, "hash-map: requires an even number of arguments")
				return
			}
			c.Ret = value.NewMap(kvs...)
		},
	}, {
		Name:   "map?",
		Params: []internal.Param{{}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if c.Do() {
				_, ok := v.(*value.Map)
				c.Ret = value.Bool(ok)
			}
		},
	}, {
		Name:   "assoc",
		Result: value.MapKind,
		Func: func(c *internal.CallCtxt) {
			m, ok := c.Value(0).(*value.Map)
			if !c.Do() {
				return
			}
			if !ok {
				c.Err = errors.Newf(c.Pos, "assoc: argument 0 should be map")
				return
			}
			kvs := c.Rest(1)
			if len(kvs)%2 != 0 {
				c.Err = errors.Newf(c.Pos, "assoc: requires an even number of key/value arguments")
				return
			}
			for i := 0; i+1 < len(kvs); i += 2 {
				m = m.Assoc(kvs[i], kvs[i+1])
			}
			c.Ret = m
		},
	}, {
		Name:   "dissoc",
		Result: value.MapKind,
		Func: func(c *internal.CallCtxt) {
			m, ok := c.Value(0).(*value.Map)
			if !c.Do() {
				return
			}
			if !ok {
				c.Err = errors.Newf(c.Pos, "dissoc: argument 0 should be map")
				return
			}
			for _, k := range c.Rest(1) {
				m = m.Dissoc(k)
			}
			c.Ret = m
		},
	}, {
		Name: "get",
		Func: func(c *internal.CallCtxt) {
			coll := c.Value(0)
			key := c.Value(1)
			if !c.Do() {
				return
			}
			var dflt value.Value = value.Nil{}
			if c.Len() > 2 {
				dflt = c.Value(2)
			}
			switch x := coll.(type) {
			case *value.Map:
				if v, ok := x.Get(key); ok {
					c.Ret = v
					return
				}
			case *value.Set:
				if x.Has(key) {
					c.Ret = key
					return
				}
			case *value.Vector:
				if n, ok := key.(value.Number); ok && n >= 0 && int(n) < x.Len() {
					c.Ret = x.Nth(int(n))
					return
				}
			default:
				c.Err = errors.Newf(c.Pos, "get: argument 0 is not a map, set or vector")
				return
			}
			c.Ret = dflt
		},
	}, {
		Name:   "contains?",
		Params: []internal.Param{{}, {}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			coll, key := c.Value(0), c.Value(1)
			if !c.Do() {
				return
			}
			switch x := coll.(type) {
			case *value.Map:
				_, ok := x.Get(key)
				c.Ret = value.Bool(ok)
			case *value.Set:
				c.Ret = value.Bool(x.Has(key))
			case *value.Vector:
				n, ok := key.(value.Number)
				c.Ret = value.Bool(ok && n >= 0 && int(n) < x.Len())
			default:
				c.Err = errors.Newf(c.Pos, "contains?: argument 0 is not a map, set or vector")
			}
		},
	}, {
		Name:   "keys",
		Params: []internal.Param{{Kind: value.MapKind}},
		Result: value.ListKind,
		Func: func(c *internal.CallCtxt) {
			m, ok := c.Value(0).(*value.Map)
			if !c.Do() {
				return
			}
			if !ok {
				c.Err = errors.Newf(c.Pos, "keys: argument 0 should be map")
				return
			}
			var out []value.Value
			m.Each(func(k, _ value.Value) bool { out = append(out, k); return true })
			c.Ret = value.NewList(out...)
		},
	}, {
		Name:   "vals",
		Params: []internal.Param{{Kind: value.MapKind}},
		Result: value.ListKind,
		Func: func(c *internal.CallCtxt) {
			m, ok := c.Value(0).(*value.Map)
			if !c.Do() {
				return
			}
			if !ok {
				c.Err = errors.Newf(c.Pos, "vals: argument 0 should be map")
				return
			}
			var out []value.Value
			m.Each(func(_, v value.Value) bool { out = append(out, v); return true })
			c.Ret = value.NewList(out...)
		},
	}, {
		Name:   "set",
		Params: []internal.Param{{}},
		Result: value.SetKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			elems, ok := elementsOf(v)
			if !ok {
				c.Err = errors.Newf(c.Pos, "set: not a sequable collection")
				return
			}
			c.Ret = value.NewSet(elems...)
		},
	}, {
		Name:   "set?",
		Params: []internal.Param{{}},
		Result: value.BoolKind,
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if c.Do() {
				_, ok := v.(*value.Set)
				c.Ret = value.Bool(ok)
			}
		},
	}, {
		Name: "conj",
		Func: func(c *internal.CallCtxt) {
			coll := c.Value(0)
			if !c.Do() {
				return
			}
			xs := c.Rest(1)
			switch x := coll.(type) {
			case *value.List:
				l := x
				for _, v := range xs {
					l = l.PushFront(v)
				}
				c.Ret = l
			case *value.Vector:
				v := x
				for _, e := range xs {
					v = v.PushBack(e)
				}
				c.Ret = v
			case *value.Set:
				s := x
				for _, e := range xs {
					s = s.Conj(e)
				}
				c.Ret = s
			case *value.Map:
				m := x
				for _, e := range xs {
					pair, ok := elementsOf(e)
					if !ok || len(pair) != 2 {
						c.Err = errors.Newf(c.Pos, "conj: map entries must be a 2-element pair")
						return
					}
					m = m.Assoc(pair[0], pair[1])
				}
				c.Ret = m
			default:
				c.Err = errors.Newf(c.Pos, "conj: argument 0 is not a collection")
			}
		},
	}, {
		Name: "seq",
		Func: func(c *internal.CallCtxt) {
			v := c.Value(0)
			if !c.Do() {
				return
			}
			if m, ok := v.(*value.Map); ok {
				var out []value.Value
				m.Each(func(k, val value.Value) bool {
					out = append(out, value.NewVector(k, val))
					return true
				})
				if len(out) == 0 {
					c.Ret = value.Nil{}
					return
				}
				c.Ret = value.NewList(out...)
				return
			}
			elems, ok := elementsOf(v)
			if !ok {
				c.Err = errors.Newf(c.Pos, "seq: not a sequable collection")
				return
			}
			if len(elems) == 0 {
				c.Ret = value.Nil{}
				return
			}
			c.Ret = value.NewList(elems...)
		},
	}},
}

func lengthOf(name string, v value.Value) (int, error) {
	switch x := v.(type) {
	case *value.List:
		return x.Len(), nil
	case *value.Vector:
		return x.Len(), nil
	case *value.Map:
		return x.Len(), nil
	case *value.Set:
		return x.Len(), nil
	case value.String:
		return len([]rune(string(x))), nil
	default:
		return 0, errors.New(name + ": not a countable collection")
	}
}
