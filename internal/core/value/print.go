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
	"strconv"
	"strings"
)

// PrStr renders v in readable form: a String comes back quoted and
// escaped, the way the reader would need to see it to read it back.
// Collections always render their elements this way, nested or not.
func PrStr(v Value) string { return render(v) }

// Str renders v for human consumption: a top-level String comes back raw,
// with no surrounding quotes. Nested strings inside a collection are still
// quoted, since Str(v) for a collection is just PrStr(v) with special-casing
// only at the outermost call, matching how pr-str's counterpart behaves in
// every Lisp that has one.
func Str(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return render(v)
}

func render(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case Nil:
		return "nil"
	case Bool:
		if x {
			return "true"
		}
		return "false"
	case Number:
		return strconv.FormatInt(int64(x), 10)
	case String:
		return quoteString(string(x))
	case Keyword:
		return ":" + QualifiedName(x.Namespace, x.Name)
	case Symbol:
		return QualifiedName(x.Namespace, x.Name)
	case *List:
		return "(" + joinRendered(x.Slice()) + ")"
	case *Vector:
		return "[" + joinRendered(x.ToSlice()) + "]"
	case *Map:
		var parts []string
		x.Each(func(k, v Value) bool {
			parts = append(parts, render(k)+" "+render(v))
			return true
		})
		return "{" + strings.Join(parts, ", ") + "}"
	case *Set:
		var parts []string
		x.Each(func(e Value) bool {
			parts = append(parts, render(e))
			return true
		})
		return "#{" + strings.Join(parts, " ") + "}"
	case *Fn, *FnWithCaptures:
		return "#<fn>"
	case *Macro:
		return "#<macro>"
	case *Primitive:
		return "#<primitive " + x.Name + ">"
	case *Var:
		return "#'" + QualifiedName(x.Namespace, x.Name)
	case *Atom:
		return "#<atom " + render(x.value) + ">"
	case *Recur:
		return "#<recur>"
	case *Exception:
		return "exception: " + x.Message + ", " + render(x.Data)
	default:
		return "#<unknown>"
	}
}

func joinRendered(vals []Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = render(v)
	}
	return strings.Join(parts, " ")
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
