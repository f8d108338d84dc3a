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

package native

import (
	"github.com/SummerRolf/sigil/internal/core/namespace"
	"github.com/SummerRolf/sigil/pkg/internal"
)

// Register reflects over each pkg's exported methods and interns the
// resulting primitives (and constants) directly into ns. A host embedding
// sigil calls this to expose plain Go structs as callable sigil values
// without writing any evaluator-facing code itself.
func Register(ns *namespace.Namespace, pkgs ...interface{}) {
	for _, pkg := range pkgs {
		if pkg == nil {
			continue
		}
		ip := newInternalPackage(pkg)
		if ip == nil || len(ip.Native) == 0 {
			continue
		}
		internal.Install(ns, ip)
	}
}
