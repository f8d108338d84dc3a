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

// Package literal scans the scalar literals of the grammar: signed 64-bit
// integers and double-quoted strings with \n \\ \" escapes.
package literal

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInt parses a decimal integer literal, reporting an error on
// overflow of a signed 64-bit integer rather than silently wrapping.
func ParseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if strings.Contains(err.Error(), "value out of range") {
			return 0, fmt.Errorf("number %q overflows a 64-bit signed integer", s)
		}
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

// Unquote decodes the body of a double-quoted string literal (without the
// surrounding quotes), recognizing \n, \\ and \" escapes. A lone backslash
// followed by an unrecognized rune is an error.
func Unquote(body string) (string, error) {
	var b strings.Builder
	r := []rune(body)
	for i := 0; i < len(r); i++ {
		c := r[i]
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		i++
		if i >= len(r) {
			return "", fmt.Errorf("unterminated escape sequence in string")
		}
		switch r[i] {
		case 'n':
			b.WriteRune('\n')
		case '\\':
			b.WriteRune('\\')
		case '"':
			b.WriteRune('"')
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c in string", r[i])
		}
	}
	return b.String(), nil
}
