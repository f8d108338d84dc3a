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

package eval

import (
	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/token"
)

// Scope is one frame of the runtime lexical-scope stack: a single parent
// pointer plus a binding map, mirroring the teacher's Environment{Up,
// Vertex} chain. A frame holds either analyze.SlotKey-keyed fn*/catch*
// parameter values, or plain-string-keyed let*/loop* locals (stored as
// *cell, see below) — the same dual-key split the analyzer's capture sets
// use.
type Scope struct {
	Up       *Scope
	Bindings map[interface{}]interface{}
}

// NewScope opens a fresh frame chained onto up (nil for the outermost
// frame of a top-level evaluation).
func NewScope(up *Scope) *Scope {
	return &Scope{Up: up, Bindings: map[interface{}]interface{}{}}
}

// Get searches outward from s for key, returning the raw stored entry
// (either a value.Value or a *cell) and whether it was found.
func (s *Scope) Get(key interface{}) (interface{}, bool) {
	for sc := s; sc != nil; sc = sc.Up {
		if v, ok := sc.Bindings[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set installs key in s's own frame, shadowing any outer binding of the
// same key.
func (s *Scope) Set(key interface{}, v interface{}) {
	s.Bindings[key] = v
}

// cell is the evaluator's internal forward-reference slot for a single
// let*/loop* binding: it lets a binding be captured by a closure built
// before the binding's value is known (mutual or self recursion) since the
// closure captures the *cell pointer itself, and later assignment is
// visible through it.
type cell struct {
	position token.Pos
	name     string
	value    interface{}
	bound    bool
}

func newCell(pos token.Pos, name string) *cell {
	return &cell{position: pos, name: name}
}

func (c *cell) assign(v interface{}) {
	c.value, c.bound = v, true
}

// get returns the cell's value, or an error if it is read before being
// assigned — a genuinely circular non-function forward reference, e.g.
// (let* [x x] x).
func (c *cell) get() (interface{}, error) {
	if !c.bound {
		return nil, errors.Newf(c.position, "forward reference to uninitialized binding %q", c.name)
	}
	return c.value, nil
}
