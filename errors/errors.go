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

// Package errors provides the shared error value used across the reader,
// analyzer, evaluator and prelude so that failures carry source position
// and a dotted namespace/call path rather than a bare string.
package errors

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"

	"github.com/SummerRolf/sigil/token"
)

// Error is the interface satisfied by every diagnostic sigil produces.
type Error interface {
	error
	Position() token.Pos
	InputPositions() []token.Pos
	Path() []string
}

// Message holds a lazily-formatted error message.
type Message struct {
	format string
	args   []interface{}
}

// NewMessage creates a Message from a format string and its arguments.
func NewMessage(format string, args []interface{}) Message {
	return Message{format: format, args: args}
}

func (m Message) String() string {
	return fmt.Sprintf(m.format, m.args...)
}

type posError struct {
	pos  token.Pos
	path []string
	Message
	wrapped error
}

func (e *posError) Error() string {
	return String(e)
}

func (e *posError) Unwrap() error { return e.wrapped }

func (e *posError) Position() token.Pos        { return e.pos }
func (e *posError) InputPositions() []token.Pos { return nil }
func (e *posError) Path() []string              { return e.path }

// New creates an Error with no position information.
func New(msg string) Error {
	return &posError{pos: token.NoPos, Message: NewMessage("%s", []interface{}{msg})}
}

// Newf creates a positioned Error.
func Newf(pos token.Pos, format string, args ...interface{}) Error {
	return &posError{pos: pos, Message: NewMessage(format, args)}
}

// Wrapf wraps err with a positioned message, preserving err as the cause
// via golang.org/x/xerrors so %+v formatting can recover a frame trace.
func Wrapf(err error, pos token.Pos, format string, args ...interface{}) Error {
	wrapped := xerrors.Errorf(format+": %w", append(append([]interface{}{}, args...), err)...)
	return &posError{pos: pos, Message: NewMessage("%s", []interface{}{wrapped.Error()}), wrapped: err}
}

// String renders an Error the way the teacher's errors.String helper does:
// "message" with no trailing position noise in the common case, falling
// back to "pos: message" when a position is known.
func String(e Error) string {
	msg := e.(interface{ String() string })
	if pos := e.Position(); pos.IsValid() {
		return fmt.Sprintf("%s: %s", pos, msg.String())
	}
	return msg.String()
}

// List aggregates zero or more Errors into a single error value.
type List []Error

// Append adds errs to a, flattening any List values, and returns the
// combined Error (nil if both a and errs are empty).
func Append(a Error, errs ...Error) Error {
	var l List
	if a != nil {
		if al, ok := a.(List); ok {
			l = append(l, al...)
		} else {
			l = append(l, a)
		}
	}
	for _, e := range errs {
		if e == nil {
			continue
		}
		if el, ok := e.(List); ok {
			l = append(l, el...)
		} else {
			l = append(l, e)
		}
	}
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

func (l List) Position() token.Pos {
	if len(l) == 0 {
		return token.NoPos
	}
	return l[0].Position()
}

func (l List) InputPositions() []token.Pos { return nil }

func (l List) Path() []string {
	if len(l) == 0 {
		return nil
	}
	return l[0].Path()
}
