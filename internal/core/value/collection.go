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
	"sort"

	"github.com/mpvl/unique"
)

// Map is a persistent, copy-on-write associative structure. The spec makes
// no Big-O promise for maps (unlike Vector), so the simplest correct
// implementation wins: a fresh Go map on every Assoc/Dissoc, keyed by each
// entry's canonical printed form so that two structurally-equal keys (two
// equal numbers, two equal vectors, ...) always collide into the same slot
// regardless of their concrete Go representation.
type Map struct {
	entries map[string]mapEntry
}

type mapEntry struct {
	key Value
	val Value
}

func (*Map) Kind() Kind { return MapKind }

// EmptyMap is the canonical empty map.
var EmptyMap = &Map{}

// NewMap builds a map from alternating key, value, key, value... values.
func NewMap(kvs ...Value) *Map {
	m := EmptyMap
	for i := 0; i+1 < len(kvs); i += 2 {
		m = m.Assoc(kvs[i], kvs[i+1])
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Get looks up k.
func (m *Map) Get(k Value) (Value, bool) {
	e, ok := m.entries[hashKey(k)]
	if !ok {
		return nil, false
	}
	return e.val, true
}

// Assoc returns a new map with k bound to v.
func (m *Map) Assoc(k, v Value) *Map {
	nm := &Map{entries: make(map[string]mapEntry, len(m.entries)+1)}
	for hk, e := range m.entries {
		nm.entries[hk] = e
	}
	nm.entries[hashKey(k)] = mapEntry{key: k, val: v}
	return nm
}

// Dissoc returns a new map with k removed, or m itself if k was absent.
func (m *Map) Dissoc(k Value) *Map {
	hk := hashKey(k)
	if _, ok := m.entries[hk]; !ok {
		return m
	}
	nm := &Map{entries: make(map[string]mapEntry, len(m.entries))}
	for ehk, e := range m.entries {
		if ehk != hk {
			nm.entries[ehk] = e
		}
	}
	return nm
}

// Each calls f for every entry in a deterministic (sorted by canonical
// printed key) order, stopping early if f returns false.
func (m *Map) Each(f func(k, v Value) bool) {
	for _, hk := range sortedKeys(m.entries) {
		e := m.entries[hk]
		if !f(e.key, e.val) {
			return
		}
	}
}

func sortedKeys(entries map[string]mapEntry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	ss := sort.StringSlice(keys)
	n := unique.Sort(ss)
	return []string(ss)[:n]
}

func (m *Map) equal(o *Map) bool {
	if len(m.entries) != len(o.entries) {
		return false
	}
	for hk, e := range m.entries {
		oe, ok := o.entries[hk]
		if !ok || !Equal(e.val, oe.val) {
			return false
		}
	}
	return true
}

// Set is a persistent, copy-on-write collection of distinct values,
// compared and stored the same canonical-printed-form way as Map keys.
type Set struct {
	elems map[string]Value
}

func (*Set) Kind() Kind { return SetKind }

// EmptySet is the canonical empty set.
var EmptySet = &Set{}

// NewSet builds a set from vals, discarding duplicates.
func NewSet(vals ...Value) *Set {
	s := EmptySet
	for _, v := range vals {
		s = s.Conj(v)
	}
	return s
}

// Len returns the number of distinct elements.
func (s *Set) Len() int { return len(s.elems) }

// Has reports whether v is a member.
func (s *Set) Has(v Value) bool {
	_, ok := s.elems[hashKey(v)]
	return ok
}

// Conj returns a new set with v added.
func (s *Set) Conj(v Value) *Set {
	ns := &Set{elems: make(map[string]Value, len(s.elems)+1)}
	for k, e := range s.elems {
		ns.elems[k] = e
	}
	ns.elems[hashKey(v)] = v
	return ns
}

// Disj returns a new set with v removed, or s itself if v was absent.
func (s *Set) Disj(v Value) *Set {
	hk := hashKey(v)
	if _, ok := s.elems[hk]; !ok {
		return s
	}
	ns := &Set{elems: make(map[string]Value, len(s.elems))}
	for ehk, e := range s.elems {
		if ehk != hk {
			ns.elems[ehk] = e
		}
	}
	return ns
}

// Each calls f for every element in canonical sorted order, stopping early
// if f returns false.
func (s *Set) Each(f func(Value) bool) {
	keys := make([]string, 0, len(s.elems))
	for k := range s.elems {
		keys = append(keys, k)
	}
	ss := sort.StringSlice(keys)
	n := unique.Sort(ss)
	for _, hk := range []string(ss)[:n] {
		if !f(s.elems[hk]) {
			return
		}
	}
}

func (s *Set) equal(o *Set) bool {
	if len(s.elems) != len(o.elems) {
		return false
	}
	for hk := range s.elems {
		if _, ok := o.elems[hk]; !ok {
			return false
		}
	}
	return true
}

// hashKey derives the canonical string a Map or Set uses to compare two
// values for equality: two values collide in the same slot exactly when
// their printed forms (and hence their structure) are identical.
func hashKey(v Value) string { return PrStr(v) }
