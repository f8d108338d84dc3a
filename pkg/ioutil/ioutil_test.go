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

package ioutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpitThenSlurpRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, Spit(path, "hello, sigil"))

	got, err := Slurp(path)
	require.NoError(t, err)
	assert.Equal(t, "hello, sigil", got)
}

func TestSlurpMissingFileErrors(t *testing.T) {
	_, err := Slurp(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestTrimNewlineHandlesCRLFAndBare(t *testing.T) {
	assert.Equal(t, "abc", trimNewline("abc\r\n"))
	assert.Equal(t, "abc", trimNewline("abc\n"))
	assert.Equal(t, "abc", trimNewline("abc"))
}

func TestTimeMsIsCloseToNow(t *testing.T) {
	before := time.Now().UnixMilli()
	got := TimeMs()
	after := time.Now().UnixMilli()
	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}
