// Copyright 2019 CUE Authors
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

package ast

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
)

// identSymbols holds the punctuation runes the grammar allows inside an
// identifier in addition to letters and digits: * + ! - _ ' ? < > =
var identSymbols = runes.Predicate(func(r rune) bool {
	switch r {
	case '*', '+', '!', '-', '_', '\'', '?', '<', '>', '=':
		return true
	}
	return false
})

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' ||
		ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || ch >= utf8.RuneSelf && unicode.IsDigit(ch)
}

// IsIdentRune reports whether r may appear in a symbol or keyword name.
func IsIdentRune(r rune) bool {
	return isLetter(r) || isDigit(r) || identSymbols.Contains(r)
}

// IsValidIdent reports whether name is non-empty and every rune in it is a
// valid identifier rune.
func IsValidIdent(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !IsIdentRune(r) {
			return false
		}
	}
	return true
}
