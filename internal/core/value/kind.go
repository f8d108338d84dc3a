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

// Package value implements sigil's central sum type: the immutable value
// algebra of §3 of the specification (persistent List/Vector/Map/Set,
// Fn/FnWithCaptures/Macro/Primitive, Var/Atom, Recur, Exception) plus
// structural equality and printing.
package value

// Kind identifies which variant of Value a node is.
type Kind int

const (
	NilKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	KeywordKind
	SymbolKind
	ListKind
	VectorKind
	MapKind
	SetKind
	FnKind
	MacroKind
	PrimitiveKind
	VarKind
	AtomKind
	RecurKind
	ExceptionKind
)

func (k Kind) String() string {
	switch k {
	case NilKind:
		return "nil"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case KeywordKind:
		return "keyword"
	case SymbolKind:
		return "symbol"
	case ListKind:
		return "list"
	case VectorKind:
		return "vector"
	case MapKind:
		return "map"
	case SetKind:
		return "set"
	case FnKind:
		return "fn"
	case MacroKind:
		return "macro"
	case PrimitiveKind:
		return "primitive"
	case VarKind:
		return "var"
	case AtomKind:
		return "atom"
	case RecurKind:
		return "recur"
	case ExceptionKind:
		return "exception"
	default:
		return "unknown"
	}
}

// Value is the sum type every evaluated sigil value implements.
type Value interface {
	Kind() Kind
}
