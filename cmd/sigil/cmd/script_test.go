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

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets testscript re-exec this test binary as the sigil command
// itself, the same trick the teacher uses to drive cue from testdata/script
// without a separately built binary.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"sigil": Main,
	}))
}

// TestScript runs every txtar script under testdata/script through the real
// CLI, end to end: files on disk, a subprocess boundary, stdout/stderr and
// exit codes, unlike cmd_test.go's in-process Command manipulation. sigil
// has no module resolution to fake, so unlike the teacher's TestScript this
// needs no goproxytest/gotooltest harness around it.
func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
	})
}
