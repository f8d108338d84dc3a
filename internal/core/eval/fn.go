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

package eval

import (
	"github.com/SummerRolf/sigil/errors"
	"github.com/SummerRolf/sigil/internal/core/analyze"
	"github.com/SummerRolf/sigil/internal/core/value"
)

// buildFn turns an analyzed fn*/catch* result into a callable Value,
// resolving any captures from the live scope at the moment the fn* form
// is reached — for a captured parameter, the resolved argument value
// itself; for a captured let*/loop* local, the forward-reference cell, so
// a later assignment to that cell (still pending in a mutually recursive
// let*) stays visible to the closure (see SPEC_FULL.md's note on this).
func (in *Interp) buildFn(result *analyze.FnResult, scope *Scope) (value.Value, error) {
	fn := &value.Fn{Params: result.Params, Variadic: result.Variadic, Level: result.Level, Body: result.Body}
	if len(result.Captures) == 0 {
		return fn, nil
	}

	captures := make(map[interface{}]interface{}, len(result.Captures))
	for key := range result.Captures {
		switch k := key.(type) {
		case analyze.SlotKey:
			raw, ok := scope.Get(k)
			if !ok {
				return nil, errors.New("internal error: captured parameter slot not found in scope")
			}
			captures[k] = raw
		case string:
			raw, ok := scope.Get(k)
			if !ok {
				return nil, errors.New("internal error: captured local not found in scope")
			}
			c, ok := raw.(*cell)
			if !ok {
				return nil, errors.New("internal error: captured local is not a forward-reference cell")
			}
			captures[k] = c
		default:
			return nil, errors.New("internal error: unrecognized capture key kind")
		}
	}
	return &value.FnWithCaptures{Fn: fn, Captures: captures}, nil
}
