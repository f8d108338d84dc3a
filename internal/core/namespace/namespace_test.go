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

package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SummerRolf/sigil/internal/core/value"
)

func TestInternAndGet(t *testing.T) {
	ns := New("user")
	v := ns.Intern("x", value.Number(1))
	require.True(t, v.IsBound())
	assert.Equal(t, value.Number(1), v.Deref())

	got, ok := ns.Get("x")
	require.True(t, ok)
	assert.Same(t, v, got)

	ns.Intern("x", value.Number(2))
	assert.Equal(t, value.Number(2), v.Deref(), "re-interning rebinds the existing var")
}

func TestInternUnbound(t *testing.T) {
	ns := New("user")
	v := ns.InternUnbound("declared")
	assert.False(t, v.IsBound())

	_, ok := ns.Get("declared")
	assert.True(t, ok)
}

func TestRemove(t *testing.T) {
	ns := New("user")
	ns.Intern("x", value.Number(1))
	ns.Remove("x")
	_, ok := ns.Get("x")
	assert.False(t, ok)
}

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry()
	a := r.GetOrCreate("core")
	b := r.GetOrCreate("core")
	assert.Same(t, a, b)

	_, ok := r.Get("missing")
	assert.False(t, ok)
}

func TestMergeRightWins(t *testing.T) {
	dst := New("user")
	dst.Intern("a", value.Number(1))
	dst.Intern("b", value.Number(2))

	src := New("core")
	src.Intern("a", value.Number(99))
	src.Intern("c", value.Number(3))

	Merge(dst, src)

	v, _ := dst.Get("a")
	assert.Equal(t, value.Number(99), v.Deref(), "conflicting key takes src's var")
	v, _ = dst.Get("b")
	assert.Equal(t, value.Number(2), v.Deref(), "key only in dst is untouched")
	v, _ = dst.Get("c")
	assert.Equal(t, value.Number(3), v.Deref(), "key only in src is added")
}
