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

package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SummerRolf/sigil/internal/core/namespace"
	"github.com/SummerRolf/sigil/internal/core/value"
)

type custom struct{}

func (custom) Greeting() string { return "hello" }

func (custom) Double(n int64) (int64, error) { return n * 2, nil }

func (custom) Concat(a, b string) string { return a + b }

func TestRegisterExposesConstantsAndMethods(t *testing.T) {
	ns := namespace.New("user")
	Register(ns, custom{})

	v, ok := ns.Get("Greeting")
	require.True(t, ok)
	assert.Equal(t, value.String("hello"), v.Deref())

	v, ok = ns.Get("Double")
	require.True(t, ok)
	prim, ok := v.Deref().(*value.Primitive)
	require.True(t, ok)
	out, err := prim.Fn([]value.Value{value.Number(21)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(42), out)

	v, ok = ns.Get("Concat")
	require.True(t, ok)
	prim = v.Deref().(*value.Primitive)
	out, err = prim.Fn([]value.Value{value.String("foo"), value.String("bar")})
	require.NoError(t, err)
	assert.Equal(t, value.String("foobar"), out)
}

func TestRegisterReportsArityMismatch(t *testing.T) {
	ns := namespace.New("user")
	Register(ns, custom{})

	v, _ := ns.Get("Double")
	prim := v.Deref().(*value.Primitive)
	_, err := prim.Fn([]value.Value{})
	assert.Error(t, err)
}
