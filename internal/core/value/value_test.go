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

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	testCases := []struct {
		in  Value
		out bool
	}{
		{Nil{}, false},
		{Bool(false), false},
		{Bool(true), true},
		{Number(0), true},
		{String(""), true},
		{NewList(), true},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.out, Truthy(tc.in))
	}
}

func TestListOps(t *testing.T) {
	l := NewList(Number(1), Number(2), Number(3))
	require.Equal(t, 3, l.Len())
	assert.Equal(t, Number(1), l.First())
	assert.Equal(t, 2, l.Rest().Len())
	assert.True(t, EmptyList.Rest().Empty())
	assert.Equal(t, Nil{}, EmptyList.First())

	cat := Concat(NewList(Number(1), Number(2)), NewList(Number(3)))
	assert.Equal(t, []Value{Number(1), Number(2), Number(3)}, cat.Slice())
}

func TestListEqual(t *testing.T) {
	a := NewList(Number(1), Number(2))
	b := NewList(Number(1), Number(2))
	c := NewList(Number(1), Number(3))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, NewVector(Number(1), Number(2))))
}

func TestVectorPushAndNth(t *testing.T) {
	v := EmptyVector
	const n = 200
	for i := 0; i < n; i++ {
		v = v.PushBack(Number(i))
	}
	require.Equal(t, n, v.Len())
	for i := 0; i < n; i++ {
		assert.Equal(t, Number(i), v.Nth(i))
	}
	assert.Equal(t, n, len(v.ToSlice()))
}

func TestVectorEqual(t *testing.T) {
	a := NewVector(Number(1), Number(2), Number(3))
	b := NewVector(Number(1), Number(2), Number(3))
	c := NewVector(Number(1), Number(2))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestMapAssocDissoc(t *testing.T) {
	m := NewMap(Keyword{Name: "a"}, Number(1), Keyword{Name: "b"}, Number(2))
	require.Equal(t, 2, m.Len())

	v, ok := m.Get(Keyword{Name: "a"})
	require.True(t, ok)
	assert.Equal(t, Number(1), v)

	m2 := m.Assoc(Keyword{Name: "c"}, Number(3))
	assert.Equal(t, 3, m2.Len())
	assert.Equal(t, 2, m.Len(), "Assoc must not mutate the receiver")

	m3 := m.Dissoc(Keyword{Name: "a"})
	assert.Equal(t, 1, m3.Len())
	_, ok = m3.Get(Keyword{Name: "a"})
	assert.False(t, ok)
}

func TestMapEachIsSorted(t *testing.T) {
	m := NewMap(
		Keyword{Name: "z"}, Number(1),
		Keyword{Name: "a"}, Number(2),
		Keyword{Name: "m"}, Number(3),
	)
	var keys []string
	m.Each(func(k, v Value) bool {
		keys = append(keys, PrStr(k))
		return true
	})
	assert.Equal(t, []string{":a", ":m", ":z"}, keys)
}

func TestSetConjDisj(t *testing.T) {
	s := NewSet(Number(1), Number(2), Number(1))
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(Number(1)))

	s2 := s.Disj(Number(1))
	assert.Equal(t, 1, s2.Len())
	assert.False(t, s2.Has(Number(1)))
	assert.True(t, s.Has(Number(1)), "Disj must not mutate the receiver")
}

func TestPrStrVsStr(t *testing.T) {
	assert.Equal(t, `"hi"`, PrStr(String("hi")))
	assert.Equal(t, "hi", Str(String("hi")))

	m := NewMap(Keyword{Name: "cause"}, String("no memory"))
	exc := &Exception{Message: "test", Data: m}
	assert.Equal(t, `exception: test, {:cause "no memory"}`, Str(exc))
}

func TestVarBinding(t *testing.T) {
	v := NewVar("user", "x")
	assert.False(t, v.IsBound())
	assert.Equal(t, v, v.Deref())

	v.Bind(Number(42))
	assert.True(t, v.IsBound())
	assert.Equal(t, Number(42), v.Deref())

	v.Unbind()
	assert.False(t, v.IsBound())
}

func TestAtomSwap(t *testing.T) {
	a := NewAtom(Number(1))
	out, err := a.Swap(func(v Value) (Value, error) {
		return Number(v.(Number) + 1), nil
	})
	require.NoError(t, err)
	assert.Equal(t, Number(2), out)
	assert.Equal(t, Number(2), a.Deref())
}
