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

// Vector is a persistent bit-partitioned vector trie, the same structure
// Clojure's PersistentVector uses: a 32-way branching tree of full nodes
// plus a small "tail" buffer absorbing the most recent appends, giving
// effectively O(1) push-back and O(log32 n) (indistinguishable from O(1)
// for any vector anyone will build by hand, but genuinely logarithmic as n
// grows) indexed lookup.
type Vector struct {
	count int
	shift uint // bits below the root; 0 when the whole vector fits in the tail or one leaf
	root  *vnode
	tail  []Value
}

const (
	vbits  = 5
	vwidth = 1 << vbits
	vmask  = vwidth - 1
)

// vnode is either an internal node (kids populated) or a leaf (leaves
// populated), never both.
type vnode struct {
	kids   []*vnode
	leaves []Value
}

func (*Vector) Kind() Kind { return VectorKind }

// EmptyVector is the canonical zero-length vector.
var EmptyVector = &Vector{}

// NewVector builds a vector containing vals in order.
func NewVector(vals ...Value) *Vector {
	v := EmptyVector
	for _, val := range vals {
		v = v.PushBack(val)
	}
	return v
}

// Len returns the number of elements.
func (v *Vector) Len() int { return v.count }

func (v *Vector) tailOffset() int {
	if v.count < vwidth {
		return 0
	}
	return ((v.count - 1) >> vbits) << vbits
}

// Nth returns the element at index i. The caller is responsible for bounds
// checking; Nth panics on an out-of-range index the same way a slice would.
func (v *Vector) Nth(i int) Value {
	if i < 0 || i >= v.count {
		panic("value: vector index out of range")
	}
	if i >= v.tailOffset() {
		return v.tail[i-v.tailOffset()]
	}
	node := v.root
	for shift := v.shift; shift > 0; shift -= vbits {
		node = node.kids[(i>>shift)&vmask]
	}
	return node.leaves[i&vmask]
}

// PushBack returns a new vector with val appended.
func (v *Vector) PushBack(val Value) *Vector {
	if len(v.tail) < vwidth {
		newTail := make([]Value, len(v.tail)+1)
		copy(newTail, v.tail)
		newTail[len(v.tail)] = val
		return &Vector{count: v.count + 1, shift: v.shift, root: v.root, tail: newTail}
	}

	tailNode := &vnode{leaves: v.tail}
	newShift := v.shift
	var newRoot *vnode
	switch {
	case v.root == nil:
		newRoot = tailNode
	case (v.count>>vbits) > (1 << v.shift):
		newRoot = &vnode{kids: []*vnode{v.root, newPath(v.shift, tailNode)}}
		newShift = v.shift + vbits
	default:
		newRoot = pushTail(v.count, v.shift, v.root, tailNode)
	}
	return &Vector{count: v.count + 1, shift: newShift, root: newRoot, tail: []Value{val}}
}

func newPath(shift uint, node *vnode) *vnode {
	if shift == 0 {
		return node
	}
	return &vnode{kids: []*vnode{newPath(shift-vbits, node)}}
}

func pushTail(count int, shift uint, node, tailNode *vnode) *vnode {
	sub := ((count - 1) >> shift) & vmask
	kids := make([]*vnode, len(node.kids), len(node.kids)+1)
	copy(kids, node.kids)
	var child *vnode
	switch {
	case shift == vbits:
		child = tailNode
	case sub < len(kids):
		child = pushTail(count, shift-vbits, kids[sub], tailNode)
	default:
		child = newPath(shift-vbits, tailNode)
	}
	if sub < len(kids) {
		kids[sub] = child
		return &vnode{kids: kids}
	}
	return &vnode{kids: append(kids, child)}
}

// ToSlice materializes the vector into a fresh Go slice in order.
func (v *Vector) ToSlice() []Value {
	out := make([]Value, 0, v.count)
	if v.root != nil {
		collectLeaves(v.root, &out)
	}
	out = append(out, v.tail...)
	return out
}

func collectLeaves(n *vnode, out *[]Value) {
	if n.leaves != nil {
		*out = append(*out, n.leaves...)
		return
	}
	for _, k := range n.kids {
		collectLeaves(k, out)
	}
}

func (v *Vector) equal(o *Vector) bool {
	if v.count != o.count {
		return false
	}
	as, bs := v.ToSlice(), o.ToSlice()
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}
