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

// Var is a mutable, namespace-owned binding cell. def! interns a Var and
// binds it; a Var may also be interned unbound (declared but not yet
// def!'d), which IsBound reports.
type Var struct {
	Namespace string
	Name      string
	Meta      *Map

	value Value
	bound bool
}

func (*Var) Kind() Kind { return VarKind }

// NewVar returns a new unbound Var; interning it into a namespace is
// Namespace.Intern's job.
func NewVar(ns, name string) *Var {
	return &Var{Namespace: ns, Name: name}
}

// Bind sets the Var's value, marking it bound.
func (v *Var) Bind(val Value) { v.value, v.bound = val, true }

// Unbind clears the Var's value, marking it unbound again.
func (v *Var) Unbind() { v.value, v.bound = nil, false }

// IsBound reports whether the Var currently holds a value.
func (v *Var) IsBound() bool { return v.bound }

// Deref returns the Var's current value. Dereferencing an unbound Var
// returns the Var itself, matching the reader-visible `#'ns/name` form
// printed for it, since there is no sensible value to substitute.
func (v *Var) Deref() Value {
	if !v.bound {
		return v
	}
	return v.value
}

// Atom is a mutable reference cell supporting atomic reset/swap.
type Atom struct {
	value Value
}

func (*Atom) Kind() Kind { return AtomKind }

// NewAtom creates an Atom holding v.
func NewAtom(v Value) *Atom { return &Atom{value: v} }

// Deref returns the Atom's current value.
func (a *Atom) Deref() Value { return a.value }

// Reset replaces the Atom's value unconditionally and returns it.
func (a *Atom) Reset(v Value) Value {
	a.value = v
	return v
}

// Swap replaces the Atom's value with f(current value) and returns the
// new value. f's error, if any, is propagated and the Atom is left
// unchanged.
func (a *Atom) Swap(f func(Value) (Value, error)) (Value, error) {
	nv, err := f(a.value)
	if err != nil {
		return nil, err
	}
	a.value = nv
	return nv, nil
}
