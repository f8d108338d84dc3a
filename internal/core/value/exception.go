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

// Exception is the payload a throw form raises and a try*/catch* clause
// binds. Thrown distinguishes a live, in-flight exception (carried back up
// through the evaluator as an ordinary return value, not as a Go error)
// from the same value once it has been caught and bound in a catch*
// clause, where it behaves like any other value.
type Exception struct {
	Message string
	Data    Value
	Thrown  bool
}

func (*Exception) Kind() Kind { return ExceptionKind }

// Error renders the exception the way str does, so an *Exception also
// satisfies the error interface.
func (e *Exception) Error() string { return Str(e) }
