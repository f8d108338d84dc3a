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

// Package reader turns source text into the ast.Form tree described by the
// grammar: atoms, lists, vectors, maps, sets, strings and comments, plus
// the quote/quasiquote/unquote/splice-unquote/deref reader sugar.
package reader

import (
	"strings"

	"github.com/SummerRolf/sigil/ast"
	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/literal"
	"github.com/SummerRolf/sigil/token"
)

type reader struct {
	runes []rune
	pos   int
	file  *token.File
}

// Read parses every top-level form in src. name is used only to annotate
// positions in diagnostics (pass "" when the source has no file of its
// own, e.g. a REPL line or a read-string argument). A parse error is
// returned alongside whatever forms were read before it, mirroring the
// teacher's "Files may return a completed parse even if it has errors"
// convention, except sigil stops at the first error since forms, unlike
// CUE packages, depend on strict left-to-right sequencing.
func Read(name, src string) ([]ast.Form, error) {
	r := &reader{runes: []rune(src), file: token.NewFile(name, src)}
	var forms []ast.Form
	for {
		r.skipTrivia()
		if r.atEOF() {
			return forms, nil
		}
		f, err := r.readForm()
		if err != nil {
			return forms, err
		}
		forms = append(forms, f)
	}
}

// ReadOne parses exactly the first form in src and ignores anything after
// it; used by read-string and the REPL prompt.
func ReadOne(name, src string) (ast.Form, error) {
	r := &reader{runes: []rune(src), file: token.NewFile(name, src)}
	r.skipTrivia()
	if r.atEOF() {
		return nil, errors.Newf(r.curPos(), "unexpected EOF, expected a form")
	}
	return r.readForm()
}

func (r *reader) atEOF() bool { return r.pos >= len(r.runes) }

func (r *reader) peek() rune { return r.runes[r.pos] }

func (r *reader) peekAt(n int) rune {
	if r.pos+n >= len(r.runes) {
		return 0
	}
	return r.runes[r.pos+n]
}

func (r *reader) curPos() token.Pos { return r.file.Pos(r.pos) }

func (r *reader) errf(pos token.Pos, format string, args ...interface{}) error {
	return errors.Newf(pos, format, args...)
}

func (r *reader) skipTrivia() {
	for !r.atEOF() {
		c := r.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			r.pos++
		case c == ';':
			for !r.atEOF() && r.peek() != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) readForm() (ast.Form, error) {
	r.skipTrivia()
	if r.atEOF() {
		return nil, r.errf(r.curPos(), "unexpected EOF")
	}
	pos := r.curPos()
	switch c := r.peek(); c {
	case '(':
		r.pos++
		items, err := r.readSeq(')')
		if err != nil {
			return nil, err
		}
		return &ast.List{Position: pos, Items: items}, nil
	case '[':
		r.pos++
		items, err := r.readSeq(']')
		if err != nil {
			return nil, err
		}
		return &ast.Vector{Position: pos, Items: items}, nil
	case '{':
		r.pos++
		items, err := r.readSeq('}')
		if err != nil {
			return nil, err
		}
		if len(items)%2 != 0 {
			return nil, r.errf(pos, "map literal requires an even number of forms")
		}
		return &ast.Map{Position: pos, Items: items}, nil
	case '#':
		if r.peekAt(1) == '{' {
			r.pos += 2
			items, err := r.readSeq('}')
			if err != nil {
				return nil, err
			}
			return &ast.Set{Position: pos, Items: items}, nil
		}
		return nil, r.errf(pos, "unsupported reader macro '#%c'", r.peekAt(1))
	case ')', ']', '}':
		return nil, r.errf(pos, "unexpected %q", string(c))
	case '"':
		return r.readString()
	case '\'':
		r.pos++
		return r.readSugar(pos, "quote")
	case '`':
		r.pos++
		return r.readSugar(pos, "quasiquote")
	case '~':
		r.pos++
		name := "unquote"
		if !r.atEOF() && r.peek() == '@' {
			r.pos++
			name = "splice-unquote"
		}
		return r.readSugar(pos, name)
	case '@':
		r.pos++
		return r.readSugar(pos, "deref")
	default:
		return r.readAtom()
	}
}

func (r *reader) readSugar(pos token.Pos, head string) (ast.Form, error) {
	inner, err := r.readForm()
	if err != nil {
		return nil, err
	}
	return &ast.List{
		Position: pos,
		Items: []ast.Form{
			&ast.Symbol{Position: pos, Name: head},
			inner,
		},
	}, nil
}

func (r *reader) readSeq(close rune) ([]ast.Form, error) {
	var items []ast.Form
	for {
		r.skipTrivia()
		if r.atEOF() {
			return items, r.errf(r.curPos(), "unexpected EOF, expected %q", string(close))
		}
		if r.peek() == close {
			r.pos++
			return items, nil
		}
		f, err := r.readForm()
		if err != nil {
			return items, err
		}
		items = append(items, f)
	}
}

func (r *reader) readString() (ast.Form, error) {
	pos := r.curPos()
	r.pos++ // opening quote
	start := r.pos
	for {
		if r.atEOF() {
			return nil, r.errf(pos, "unterminated string literal")
		}
		c := r.runes[r.pos]
		if c == '\\' {
			r.pos += 2
			continue
		}
		if c == '"' {
			break
		}
		r.pos++
	}
	body := string(r.runes[start:r.pos])
	r.pos++ // closing quote
	val, err := literal.Unquote(body)
	if err != nil {
		return nil, r.errf(pos, "%s", err)
	}
	return &ast.String{Position: pos, Value: val}, nil
}

func (r *reader) readToken() string {
	start := r.pos
	for !r.atEOF() {
		c := r.peek()
		if ast.IsIdentRune(c) || c == '/' {
			r.pos++
			continue
		}
		break
	}
	return string(r.runes[start:r.pos])
}

func (r *reader) readAtom() (ast.Form, error) {
	pos := r.curPos()
	if r.peek() == ':' {
		r.pos++
		tok := r.readToken()
		if tok == "" {
			return nil, r.errf(pos, "invalid keyword")
		}
		ns, name := splitNamespace(tok)
		return &ast.Keyword{Position: pos, Namespace: ns, Name: name}, nil
	}
	tok := r.readToken()
	if tok == "" {
		return nil, r.errf(pos, "unexpected character %q", string(r.peek()))
	}
	switch tok {
	case "nil":
		return &ast.Nil{Position: pos}, nil
	case "true":
		return &ast.Bool{Position: pos, Value: true}, nil
	case "false":
		return &ast.Bool{Position: pos, Value: false}, nil
	}
	if looksLikeNumber(tok) {
		n, err := literal.ParseInt(tok)
		if err != nil {
			return nil, r.errf(pos, "%s", err)
		}
		return &ast.Number{Position: pos, Value: n}, nil
	}
	ns, name := splitNamespace(tok)
	return &ast.Symbol{Position: pos, Namespace: ns, Name: name}, nil
}

func looksLikeNumber(tok string) bool {
	i := 0
	if len(tok) > 0 && (tok[0] == '+' || tok[0] == '-') {
		i = 1
	}
	if i >= len(tok) {
		return false
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// splitNamespace splits "ns/name" into its two parts. A bare "/" (the
// division primitive's name) is never treated as a namespace separator.
func splitNamespace(tok string) (ns, name string) {
	if tok == "/" {
		return "", "/"
	}
	if idx := strings.IndexByte(tok, '/'); idx > 0 && idx < len(tok)-1 {
		return tok[:idx], tok[idx+1:]
	}
	return "", tok
}
