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

// Package namespace holds the mutable environment of named vars the
// evaluator resolves unqualified and namespace-qualified symbols against:
// a Namespace is a mapping from unqualified identifier to Var, and a
// Registry maps namespace name to Namespace.
package namespace

import "github.com/SummerRolf/sigil/internal/core/value"

// Namespace is a mapping from unqualified identifier to Var. It is owned
// by a single Registry and mutated only from within the evaluator, so it
// needs no synchronization of its own.
type Namespace struct {
	Name string
	vars map[string]*value.Var
}

// New creates an empty namespace named name.
func New(name string) *Namespace {
	return &Namespace{Name: name, vars: map[string]*value.Var{}}
}

// Intern creates the var id if absent and binds it to val, or rebinds an
// existing var to val. Either way it returns the var.
func (n *Namespace) Intern(id string, val value.Value) *value.Var {
	v, ok := n.vars[id]
	if !ok {
		v = value.NewVar(n.Name, id)
		n.vars[id] = v
	}
	v.Bind(val)
	return v
}

// InternUnbound creates the var id if absent, marked unbound, and returns
// it. If id is already interned its current binding is left untouched.
func (n *Namespace) InternUnbound(id string) *value.Var {
	v, ok := n.vars[id]
	if !ok {
		v = value.NewVar(n.Name, id)
		n.vars[id] = v
	}
	return v
}

// Remove unconditionally deletes id from the namespace.
func (n *Namespace) Remove(id string) {
	delete(n.vars, id)
}

// Get looks up id, returning (nil, false) if it is not interned.
func (n *Namespace) Get(id string) (*value.Var, bool) {
	v, ok := n.vars[id]
	return v, ok
}

// Each calls f for every interned var, in no particular order.
func (n *Namespace) Each(f func(id string, v *value.Var) bool) {
	for id, v := range n.vars {
		if !f(id, v) {
			return
		}
	}
}

// Registry maps namespace name to Namespace.
type Registry struct {
	spaces map[string]*Namespace
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{spaces: map[string]*Namespace{}}
}

// GetOrCreate returns the namespace named name, creating it empty first if
// this is the first reference to it.
func (r *Registry) GetOrCreate(name string) *Namespace {
	ns, ok := r.spaces[name]
	if !ok {
		ns = New(name)
		r.spaces[name] = ns
	}
	return ns
}

// Get returns the namespace named name, or (nil, false) if it does not
// exist yet.
func (r *Registry) Get(name string) (*Namespace, bool) {
	ns, ok := r.spaces[name]
	return ns, ok
}

// Merge folds src's vars into dst as a keyed union: a name present in both
// keeps src's var (right-wins), any name present only in dst is left
// alone. dst is mutated in place and returned.
func Merge(dst, src *Namespace) *Namespace {
	for id, v := range src.vars {
		dst.vars[id] = v
	}
	return dst
}
