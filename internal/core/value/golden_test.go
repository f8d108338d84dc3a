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

package value_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/kylelemons/godebug/diff"

	"github.com/SummerRolf/sigil/internal/core/eval"
	"github.com/SummerRolf/sigil/internal/core/value"
	"github.com/SummerRolf/sigil/reader"
)

// diffOpts lets cmp walk a Value tree without ever reaching into List's,
// Vector's, or Map's unexported fields: every Value comparison bottoms out
// in value.Equal, the same way the rest of the package already defines
// structural equality.
var diffOpts = []cmp.Option{
	cmp.Comparer(func(x, y value.Value) bool {
		return value.Equal(x, y)
	}),
}

// TestGoldenNestedValues parses a handful of nested literals and checks the
// resulting Value tree against one built directly through the
// constructors, the same table-of-(source, expected-node) shape as the
// teacher's literal-parsing golden test.
func TestGoldenNestedValues(t *testing.T) {
	testCases := []struct {
		src  string
		want value.Value
	}{
		{
			"[1 2 3]",
			value.NewVector(value.Number(1), value.Number(2), value.Number(3)),
		},
		{
			`{:a 1 :b [2 3]}`,
			value.NewMap(
				value.Keyword{Name: "a"}, value.Number(1),
				value.Keyword{Name: "b"}, value.NewVector(value.Number(2), value.Number(3)),
			),
		},
		{
			`#{1 2 2 3}`,
			value.NewSet(value.Number(1), value.Number(2), value.Number(3)),
		},
		{
			`[{:name "a" :tags #{:x :y}} {:name "b" :tags #{}}]`,
			value.NewVector(
				value.NewMap(
					value.Keyword{Name: "name"}, value.String("a"),
					value.Keyword{Name: "tags"}, value.NewSet(value.Keyword{Name: "x"}, value.Keyword{Name: "y"}),
				),
				value.NewMap(
					value.Keyword{Name: "name"}, value.String("b"),
					value.Keyword{Name: "tags"}, value.EmptySet,
				),
			),
		},
	}

	in := eval.NewInterp()
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%d/%s", i, tc.src), func(t *testing.T) {
			form, err := reader.ReadOne("golden", tc.src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got, err := in.Eval(form, nil)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}

			if !cmp.Equal(got, tc.want, diffOpts...) {
				t.Errorf("mismatch (-got +want):\n%s", cmp.Diff(got, tc.want, diffOpts...))
				t.Logf("got:  %s", pretty.Sprint(got))
				t.Logf("want: %s", pretty.Sprint(tc.want))
				t.Logf("printed form diff:\n%s", diff.Diff(value.PrStr(got), value.PrStr(tc.want)))
			}
		})
	}
}
