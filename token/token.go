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

// Package token tracks source positions for reader output and diagnostics.
package token

import "fmt"

// A Pos identifies a single rune offset in a source file.
type Pos struct {
	File   string
	Offset int
	Line   int
	Column int
}

// NoPos is the zero value for Pos; it has no position information.
var NoPos = Pos{}

// IsValid reports whether the position is known.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// A File tracks line offsets for a single named source so that a rune
// offset can be turned into a line/column pair.
type File struct {
	Name    string
	lineOff []int // offset of the first rune of each line
}

// NewFile creates a File tracking newlines in src.
func NewFile(name, src string) *File {
	f := &File{Name: name, lineOff: []int{0}}
	for i, r := range []rune(src) {
		if r == '\n' {
			f.lineOff = append(f.lineOff, i+1)
		}
	}
	return f
}

// Pos returns the Pos for a given rune offset into the file's source.
func (f *File) Pos(offset int) Pos {
	line := 1
	for i, off := range f.lineOff {
		if off > offset {
			break
		}
		line = i + 1
	}
	col := offset - f.lineOff[line-1] + 1
	return Pos{File: f.Name, Offset: offset, Line: line, Column: col}
}
