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

// Equal reports structural equality: scalars compare by value, List/Vector
// compare elementwise (a List is never equal to a Vector, even with
// matching elements), Map/Set compare by entries, and every other kind
// (Fn, Var, Atom, ...) compares by identity.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Keyword:
		y, ok := b.(Keyword)
		return ok && x == y
	case Symbol:
		y, ok := b.(Symbol)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		return ok && x.equal(y)
	case *Vector:
		y, ok := b.(*Vector)
		return ok && x.equal(y)
	case *Map:
		y, ok := b.(*Map)
		return ok && x.equal(y)
	case *Set:
		y, ok := b.(*Set)
		return ok && x.equal(y)
	default:
		return a == b
	}
}
