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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI drives the command the way Main does, except into buffers. Note
// that diagnostics written through Command.Stderr() land in out, not a
// separate stream — Stderr() routes through cobra's OutOrStderr, which
// resolves to whatever SetOut configured (see root.go's errWriter); only
// hasErr (reflected in code) distinguishes an error from ordinary output.
func runCLI(t *testing.T, stdin string, args ...string) (out string, code int) {
	t.Helper()
	c := newRootCmd()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetIn(strings.NewReader(stdin))
	c.SetArgs(args)

	err := c.Execute()
	if err != nil && err != errPrintedError {
		buf.WriteString(err.Error())
	}
	code = 0
	if err != nil || c.hasErr {
		code = 1
	}
	return buf.String(), code
}

func TestScriptModeEvaluatesFileAndExits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.sg")
	require.NoError(t, os.WriteFile(path, []byte("(def! x 41)\n(+ x 1)\n"), 0o644))

	_, code := runCLI(t, "", path)
	assert.Equal(t, 0, code)
}

func TestScriptModeWithCommandLineArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "args.sg")
	require.NoError(t, os.WriteFile(path, []byte("(count *command-line-args*)\n"), 0o644))

	_, code := runCLI(t, "", path, "a", "b", "c")
	assert.Equal(t, 0, code)
}

func TestScriptModeUncaughtExceptionExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fail.sg")
	require.NoError(t, os.WriteFile(path, []byte(`(throw (ex-info "boom" nil))`+"\n"), 0o644))

	out, code := runCLI(t, "", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "boom")
}

func TestScriptModeParseFailureExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sg")
	require.NoError(t, os.WriteFile(path, []byte("(+ 1 2"), 0o644))

	_, code := runCLI(t, "", path)
	assert.Equal(t, 1, code)
}

func TestREPLEvaluatesEachFormAndPrintsResult(t *testing.T) {
	out, code := runCLI(t, "(+ 1 2)\n(* 3 3)\n")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "9")
}

// A read error reports and continues the session rather than aborting it
// (the next form still evaluates), but still marks the run as having
// produced an error for the final exit code, the same as any other
// Command.Stderr() write.
func TestREPLReportsReadErrorsAndContinues(t *testing.T) {
	out, code := runCLI(t, ")\n(+ 3 4)\n")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "7")
}

func TestFormsBalanced(t *testing.T) {
	assert.True(t, formsBalanced("(+ 1 2)"))
	assert.False(t, formsBalanced("(+ 1 (2)"))
	assert.True(t, formsBalanced(`(str "(")`))
	assert.False(t, formsBalanced(`(str "("`))
}
